package postgresadapter

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"vellum/contexts/content-management/content-service/domain/entities"
	domainerrors "vellum/contexts/content-management/content-service/domain/errors"
	"vellum/contexts/content-management/content-service/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

func (r *Repository) CreateContent(ctx context.Context, item entities.ContentItem, audit ports.AuditEntry) error {
	row, err := contentModelFromEntity(item)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&row).Error; err != nil {
			if isUniqueViolation(err) {
				return domainerrors.ErrSlugConflict
			}
			return err
		}
		return insertAuditTx(tx, audit, time.Now().UTC())
	})
}

func (r *Repository) UpdateContent(ctx context.Context, item entities.ContentItem, snapshot entities.ContentVersion, audit ports.AuditEntry) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := r.updateContentTx(tx, item); err != nil {
			return err
		}
		if err := insertVersionTx(tx, snapshot); err != nil {
			return err
		}
		return insertAuditTx(tx, audit, item.UpdatedAt.UTC())
	})
}

func (r *Repository) DeleteContent(ctx context.Context, contentID string, audit ports.AuditEntry) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("content_id = ?", strings.TrimSpace(contentID)).
			Delete(&contentVersionModel{}).
			Error; err != nil {
			return err
		}
		result := tx.Where("content_id = ?", strings.TrimSpace(contentID)).
			Delete(&contentModel{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainerrors.ErrContentNotFound
		}
		return insertAuditTx(tx, audit, time.Now().UTC())
	})
}

func (r *Repository) GetContent(ctx context.Context, contentID string) (entities.ContentItem, bool, error) {
	var row contentModel
	err := r.db.WithContext(ctx).
		Where("content_id = ?", strings.TrimSpace(contentID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.ContentItem{}, false, nil
		}
		return entities.ContentItem{}, false, err
	}
	item, err := row.toEntity()
	if err != nil {
		return entities.ContentItem{}, false, err
	}
	return item, true, nil
}

func (r *Repository) ListContent(ctx context.Context, filter ports.ContentFilter) ([]entities.ContentItem, int64, error) {
	tx := r.db.WithContext(ctx).Model(&contentModel{})
	if filter.Status != "" {
		tx = tx.Where("status = ?", filter.Status)
	}
	if filter.ContentTypeID != "" {
		tx = tx.Where("content_type_id = ?", filter.ContentTypeID)
	}
	if filter.AuthorID != "" {
		tx = tx.Where("author_id = ?", filter.AuthorID)
	}
	if filter.DepartmentID != "" {
		tx = tx.Where("department_id = ?", filter.DepartmentID)
	}
	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		tx = tx.Where("LOWER(title) LIKE ? OR LOWER(slug) LIKE ? OR LOWER(excerpt) LIKE ?", pattern, pattern, pattern)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.Limit > 0 {
		tx = tx.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		tx = tx.Offset(filter.Offset)
	}

	var rows []contentModel
	if err := tx.Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	items := make([]entities.ContentItem, 0, len(rows))
	for _, row := range rows {
		item, err := row.toEntity()
		if err != nil {
			return nil, 0, err
		}
		items = append(items, item)
	}
	return items, total, nil
}

func (r *Repository) GetVersion(ctx context.Context, versionID string) (entities.ContentVersion, bool, error) {
	var row contentVersionModel
	err := r.db.WithContext(ctx).
		Where("version_id = ?", strings.TrimSpace(versionID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.ContentVersion{}, false, nil
		}
		return entities.ContentVersion{}, false, err
	}
	version, err := row.toEntity()
	if err != nil {
		return entities.ContentVersion{}, false, err
	}
	return version, true, nil
}

func (r *Repository) GetVersionByNumber(ctx context.Context, contentID string, number int) (entities.ContentVersion, bool, error) {
	var row contentVersionModel
	err := r.db.WithContext(ctx).
		Where("content_id = ? AND version_number = ?", strings.TrimSpace(contentID), number).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.ContentVersion{}, false, nil
		}
		return entities.ContentVersion{}, false, err
	}
	version, err := row.toEntity()
	if err != nil {
		return entities.ContentVersion{}, false, err
	}
	return version, true, nil
}

func (r *Repository) ListVersions(ctx context.Context, contentID string, filter ports.VersionFilter) ([]entities.ContentVersion, int64, error) {
	tx := r.db.WithContext(ctx).
		Model(&contentVersionModel{}).
		Where("content_id = ?", strings.TrimSpace(contentID))

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.Limit > 0 {
		tx = tx.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		tx = tx.Offset(filter.Offset)
	}

	var rows []contentVersionModel
	if err := tx.Order("version_number DESC").Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	versions := make([]entities.ContentVersion, 0, len(rows))
	for _, row := range rows {
		version, err := row.toEntity()
		if err != nil {
			return nil, 0, err
		}
		versions = append(versions, version)
	}
	return versions, total, nil
}

func (r *Repository) RollbackContent(ctx context.Context, item entities.ContentItem, snapshot entities.ContentVersion, audit ports.AuditEntry) error {
	return r.UpdateContent(ctx, item, snapshot, audit)
}

func (r *Repository) updateContentTx(tx *gorm.DB, item entities.ContentItem) error {
	row, err := contentModelFromEntity(item)
	if err != nil {
		return err
	}
	result := tx.Model(&contentModel{}).
		Where("content_id = ?", row.ContentID).
		Updates(map[string]any{
			"content_type_id":  row.ContentTypeID,
			"title":            row.Title,
			"slug":             row.Slug,
			"excerpt":          row.Excerpt,
			"hero_image_url":   row.HeroImageURL,
			"page_data":        row.PageData,
			"meta_title":       row.MetaTitle,
			"meta_description": row.MetaDescription,
			"meta_keywords":    row.MetaKeywords,
			"status":           row.Status,
			"department_id":    row.DepartmentID,
			"publish_at":       row.PublishAt,
			"unpublish_at":     row.UnpublishAt,
			"updated_at":       row.UpdatedAt,
		})
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return domainerrors.ErrSlugConflict
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrContentNotFound
	}
	return nil
}

// insertVersionTx assigns the next per-content version number under the row
// lock taken by the surrounding update. The unique (content_id,
// version_number) index backstops concurrent writers.
func insertVersionTx(tx *gorm.DB, snapshot entities.ContentVersion) error {
	var current int
	if err := tx.Model(&contentVersionModel{}).
		Where("content_id = ?", snapshot.ContentID).
		Select("COALESCE(MAX(version_number), 0)").
		Scan(&current).
		Error; err != nil {
		return err
	}
	snapshot.VersionNumber = current + 1

	row, err := versionModelFromEntity(snapshot)
	if err != nil {
		return err
	}
	if row.VersionID == "" {
		row.VersionID = uuid.NewString()
	}
	if err := tx.Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			// Another writer slipped in between MAX and INSERT.
			return domainerrors.ErrVersionConflict
		}
		return err
	}
	return nil
}

func insertAuditTx(tx *gorm.DB, entry ports.AuditEntry, at time.Time) error {
	metadata := []byte("{}")
	if len(entry.Metadata) > 0 {
		payload, err := json.Marshal(entry.Metadata)
		if err != nil {
			return err
		}
		metadata = payload
	}
	row := auditLogModel{
		LogID:        uuid.NewString(),
		UserID:       strings.TrimSpace(entry.UserID),
		Action:       strings.TrimSpace(entry.Action),
		ResourceType: strings.TrimSpace(entry.ResourceType),
		ResourceID:   strings.TrimSpace(entry.ResourceID),
		ResourceName: strings.TrimSpace(entry.ResourceName),
		Metadata:     metadata,
		CreatedAt:    at,
	}
	return tx.Create(&row).Error
}

type contentModel struct {
	ContentID       string     `gorm:"column:content_id;primaryKey"`
	ContentTypeID   string     `gorm:"column:content_type_id"`
	Title           string     `gorm:"column:title"`
	Slug            string     `gorm:"column:slug"`
	Excerpt         string     `gorm:"column:excerpt"`
	HeroImageURL    string     `gorm:"column:hero_image_url"`
	PageData        []byte     `gorm:"column:page_data;type:jsonb"`
	MetaTitle       string     `gorm:"column:meta_title"`
	MetaDescription string     `gorm:"column:meta_description"`
	MetaKeywords    []byte     `gorm:"column:meta_keywords;type:jsonb"`
	Status          string     `gorm:"column:status"`
	AuthorID        string     `gorm:"column:author_id"`
	DepartmentID    string     `gorm:"column:department_id"`
	PublishAt       *time.Time `gorm:"column:publish_at"`
	UnpublishAt     *time.Time `gorm:"column:unpublish_at"`
	CreatedAt       time.Time  `gorm:"column:created_at"`
	UpdatedAt       time.Time  `gorm:"column:updated_at"`
}

func (contentModel) TableName() string {
	return "content_items"
}

func contentModelFromEntity(item entities.ContentItem) (contentModel, error) {
	pageData, err := marshalPageData(item.PageData)
	if err != nil {
		return contentModel{}, err
	}
	keywords, err := marshalKeywords(item.MetaKeywords)
	if err != nil {
		return contentModel{}, err
	}
	return contentModel{
		ContentID:       strings.TrimSpace(item.ContentID),
		ContentTypeID:   strings.TrimSpace(item.ContentTypeID),
		Title:           strings.TrimSpace(item.Title),
		Slug:            strings.TrimSpace(item.Slug),
		Excerpt:         strings.TrimSpace(item.Excerpt),
		HeroImageURL:    strings.TrimSpace(item.HeroImageURL),
		PageData:        pageData,
		MetaTitle:       strings.TrimSpace(item.MetaTitle),
		MetaDescription: strings.TrimSpace(item.MetaDescription),
		MetaKeywords:    keywords,
		Status:          string(item.Status),
		AuthorID:        strings.TrimSpace(item.AuthorID),
		DepartmentID:    strings.TrimSpace(item.DepartmentID),
		PublishAt:       normalizeOptionalTime(item.PublishAt),
		UnpublishAt:     normalizeOptionalTime(item.UnpublishAt),
		CreatedAt:       item.CreatedAt.UTC(),
		UpdatedAt:       item.UpdatedAt.UTC(),
	}, nil
}

func (m contentModel) toEntity() (entities.ContentItem, error) {
	pageData, err := unmarshalPageData(m.PageData)
	if err != nil {
		return entities.ContentItem{}, err
	}
	keywords, err := unmarshalKeywords(m.MetaKeywords)
	if err != nil {
		return entities.ContentItem{}, err
	}
	return entities.ContentItem{
		ContentID:       m.ContentID,
		ContentTypeID:   m.ContentTypeID,
		Title:           m.Title,
		Slug:            m.Slug,
		Excerpt:         m.Excerpt,
		HeroImageURL:    m.HeroImageURL,
		PageData:        pageData,
		MetaTitle:       m.MetaTitle,
		MetaDescription: m.MetaDescription,
		MetaKeywords:    keywords,
		Status:          entities.ContentStatus(m.Status),
		AuthorID:        m.AuthorID,
		DepartmentID:    m.DepartmentID,
		PublishAt:       normalizeOptionalTime(m.PublishAt),
		UnpublishAt:     normalizeOptionalTime(m.UnpublishAt),
		CreatedAt:       m.CreatedAt.UTC(),
		UpdatedAt:       m.UpdatedAt.UTC(),
	}, nil
}

type contentVersionModel struct {
	VersionID       string    `gorm:"column:version_id;primaryKey"`
	ContentID       string    `gorm:"column:content_id"`
	VersionNumber   int       `gorm:"column:version_number"`
	Title           string    `gorm:"column:title"`
	Slug            string    `gorm:"column:slug"`
	Excerpt         string    `gorm:"column:excerpt"`
	HeroImageURL    string    `gorm:"column:hero_image_url"`
	PageData        []byte    `gorm:"column:page_data;type:jsonb"`
	MetaTitle       string    `gorm:"column:meta_title"`
	MetaDescription string    `gorm:"column:meta_description"`
	MetaKeywords    []byte    `gorm:"column:meta_keywords;type:jsonb"`
	CreatedBy       string    `gorm:"column:created_by"`
	CreatedAt       time.Time `gorm:"column:created_at"`
}

func (contentVersionModel) TableName() string {
	return "content_versions"
}

func versionModelFromEntity(item entities.ContentVersion) (contentVersionModel, error) {
	pageData, err := marshalPageData(item.PageData)
	if err != nil {
		return contentVersionModel{}, err
	}
	keywords, err := marshalKeywords(item.MetaKeywords)
	if err != nil {
		return contentVersionModel{}, err
	}
	return contentVersionModel{
		VersionID:       strings.TrimSpace(item.VersionID),
		ContentID:       strings.TrimSpace(item.ContentID),
		VersionNumber:   item.VersionNumber,
		Title:           item.Title,
		Slug:            item.Slug,
		Excerpt:         item.Excerpt,
		HeroImageURL:    item.HeroImageURL,
		PageData:        pageData,
		MetaTitle:       item.MetaTitle,
		MetaDescription: item.MetaDescription,
		MetaKeywords:    keywords,
		CreatedBy:       strings.TrimSpace(item.CreatedBy),
		CreatedAt:       item.CreatedAt.UTC(),
	}, nil
}

func (m contentVersionModel) toEntity() (entities.ContentVersion, error) {
	pageData, err := unmarshalPageData(m.PageData)
	if err != nil {
		return entities.ContentVersion{}, err
	}
	keywords, err := unmarshalKeywords(m.MetaKeywords)
	if err != nil {
		return entities.ContentVersion{}, err
	}
	return entities.ContentVersion{
		VersionID:       m.VersionID,
		ContentID:       m.ContentID,
		VersionNumber:   m.VersionNumber,
		Title:           m.Title,
		Slug:            m.Slug,
		Excerpt:         m.Excerpt,
		HeroImageURL:    m.HeroImageURL,
		PageData:        pageData,
		MetaTitle:       m.MetaTitle,
		MetaDescription: m.MetaDescription,
		MetaKeywords:    keywords,
		CreatedBy:       m.CreatedBy,
		CreatedAt:       m.CreatedAt.UTC(),
	}, nil
}

type auditLogModel struct {
	LogID        string    `gorm:"column:log_id;primaryKey"`
	UserID       string    `gorm:"column:user_id"`
	Action       string    `gorm:"column:action"`
	ResourceType string    `gorm:"column:resource_type"`
	ResourceID   string    `gorm:"column:resource_id"`
	ResourceName string    `gorm:"column:resource_name"`
	Metadata     []byte    `gorm:"column:metadata;type:jsonb"`
	CreatedAt    time.Time `gorm:"column:created_at"`
}

func (auditLogModel) TableName() string {
	return "audit_logs"
}

func marshalPageData(value *entities.PageData) ([]byte, error) {
	if value == nil {
		return nil, nil
	}
	return json.Marshal(value)
}

func unmarshalPageData(raw []byte) (*entities.PageData, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var value entities.PageData
	if err := json.Unmarshal(raw, &value); err != nil {
		return nil, err
	}
	return &value, nil
}

func marshalKeywords(items []string) ([]byte, error) {
	if len(items) == 0 {
		return nil, nil
	}
	return json.Marshal(items)
}

func unmarshalKeywords(raw []byte) ([]string, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var items []string
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func normalizeOptionalTime(value *time.Time) *time.Time {
	if value == nil {
		return nil
	}
	timestamp := value.UTC()
	return &timestamp
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
