package postgresadapter

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"gorm.io/gorm"

	"vellum/contexts/audit-trail/audit-service/domain/entities"
	domainerrors "vellum/contexts/audit-trail/audit-service/domain/errors"
	"vellum/contexts/audit-trail/audit-service/ports"
)

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{db: db, logger: logger}
}

type auditLogModel struct {
	LogID        string    `gorm:"column:log_id;primaryKey"`
	UserID       string    `gorm:"column:user_id;index"`
	Action       string    `gorm:"column:action;index"`
	ResourceType string    `gorm:"column:resource_type"`
	ResourceID   string    `gorm:"column:resource_id;index"`
	ResourceName string    `gorm:"column:resource_name"`
	Metadata     []byte    `gorm:"column:metadata"`
	IPAddress    string    `gorm:"column:ip_address"`
	UserAgent    string    `gorm:"column:user_agent"`
	CreatedAt    time.Time `gorm:"column:created_at;index"`
}

func (auditLogModel) TableName() string { return "audit_logs" }

func (r *Repository) InsertLog(ctx context.Context, log entities.AuditLog) error {
	row, err := auditLogModelFromEntity(log)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(&row).Error
}

func (r *Repository) ListLogs(ctx context.Context, filter ports.LogFilter) ([]entities.AuditLog, int64, error) {
	tx := r.db.WithContext(ctx).Model(&auditLogModel{})
	if strings.TrimSpace(filter.UserID) != "" {
		tx = tx.Where("user_id = ?", strings.TrimSpace(filter.UserID))
	}
	if strings.TrimSpace(filter.Action) != "" {
		tx = tx.Where("action = ?", strings.TrimSpace(filter.Action))
	}
	if strings.TrimSpace(filter.ResourceType) != "" {
		tx = tx.Where("resource_type = ?", strings.TrimSpace(filter.ResourceType))
	}
	if strings.TrimSpace(filter.ResourceID) != "" {
		tx = tx.Where("resource_id = ?", strings.TrimSpace(filter.ResourceID))
	}
	if filter.Start != nil {
		tx = tx.Where("created_at >= ?", filter.Start.UTC())
	}
	if filter.End != nil {
		tx = tx.Where("created_at <= ?", filter.End.UTC())
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []auditLogModel
	query := tx.Order("created_at DESC")
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}
	if err := query.Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	items := make([]entities.AuditLog, 0, len(rows))
	for _, row := range rows {
		entity, err := row.toEntity()
		if err != nil {
			return nil, 0, err
		}
		items = append(items, entity)
	}
	return items, total, nil
}

func (r *Repository) GetLog(ctx context.Context, logID string) (entities.AuditLog, error) {
	var row auditLogModel
	err := r.db.WithContext(ctx).
		Where("log_id = ?", strings.TrimSpace(logID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.AuditLog{}, domainerrors.ErrLogNotFound
		}
		return entities.AuditLog{}, err
	}
	return row.toEntity()
}

func auditLogModelFromEntity(log entities.AuditLog) (auditLogModel, error) {
	row := auditLogModel{
		LogID:        strings.TrimSpace(log.LogID),
		UserID:       strings.TrimSpace(log.UserID),
		Action:       string(log.Action),
		ResourceType: strings.TrimSpace(log.ResourceType),
		ResourceID:   strings.TrimSpace(log.ResourceID),
		ResourceName: strings.TrimSpace(log.ResourceName),
		IPAddress:    strings.TrimSpace(log.IPAddress),
		UserAgent:    strings.TrimSpace(log.UserAgent),
		CreatedAt:    log.CreatedAt.UTC(),
	}
	if len(log.Metadata) > 0 {
		raw, err := json.Marshal(log.Metadata)
		if err != nil {
			return auditLogModel{}, err
		}
		row.Metadata = raw
	}
	return row, nil
}

func (m auditLogModel) toEntity() (entities.AuditLog, error) {
	entity := entities.AuditLog{
		LogID:        m.LogID,
		UserID:       m.UserID,
		Action:       entities.Action(m.Action),
		ResourceType: m.ResourceType,
		ResourceID:   m.ResourceID,
		ResourceName: m.ResourceName,
		IPAddress:    m.IPAddress,
		UserAgent:    m.UserAgent,
		CreatedAt:    m.CreatedAt.UTC(),
	}
	if len(m.Metadata) > 0 {
		if err := json.Unmarshal(m.Metadata, &entity.Metadata); err != nil {
			return entities.AuditLog{}, err
		}
	}
	return entity, nil
}
