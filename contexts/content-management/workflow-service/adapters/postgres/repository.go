package postgresadapter

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"vellum/contexts/content-management/workflow-service/domain/entities"
	domainerrors "vellum/contexts/content-management/workflow-service/domain/errors"
	"vellum/contexts/content-management/workflow-service/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	outboxStatusPending   = "pending"
	outboxStatusPublished = "published"
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

func (r *Repository) GetContent(ctx context.Context, contentID string) (entities.ContentRef, bool, error) {
	var row contentRefModel
	err := r.db.WithContext(ctx).
		Where("content_id = ?", strings.TrimSpace(contentID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.ContentRef{}, false, nil
		}
		return entities.ContentRef{}, false, err
	}
	return row.toEntity(), true, nil
}

func (r *Repository) GetInstance(ctx context.Context, instanceID string) (entities.WorkflowInstance, bool, error) {
	var row workflowInstanceModel
	err := r.db.WithContext(ctx).
		Where("instance_id = ?", strings.TrimSpace(instanceID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.WorkflowInstance{}, false, nil
		}
		return entities.WorkflowInstance{}, false, err
	}
	return row.toEntity(), true, nil
}

func (r *Repository) FindActiveInstance(ctx context.Context, contentID string) (entities.WorkflowInstance, bool, error) {
	var row workflowInstanceModel
	err := r.db.WithContext(ctx).
		Where("content_id = ? AND status = ?", strings.TrimSpace(contentID), string(entities.WorkflowActive)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.WorkflowInstance{}, false, nil
		}
		return entities.WorkflowInstance{}, false, err
	}
	return row.toEntity(), true, nil
}

func (r *Repository) ListSteps(ctx context.Context, instanceID string) ([]entities.WorkflowStep, error) {
	var rows []workflowStepModel
	if err := r.db.WithContext(ctx).
		Where("instance_id = ?", strings.TrimSpace(instanceID)).
		Order("created_at ASC").
		Find(&rows).
		Error; err != nil {
		return nil, err
	}

	steps := make([]entities.WorkflowStep, 0, len(rows))
	for _, row := range rows {
		steps = append(steps, row.toEntity())
	}
	return steps, nil
}

// ApplyTransition commits the transition's effect set in one transaction.
// The content row is locked first so concurrent transitions on the same item
// serialize instead of interleaving.
func (r *Repository) ApplyTransition(ctx context.Context, effects ports.TransitionEffects) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if effects.Content != nil {
			var locked contentRefModel
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				Where("content_id = ?", effects.Content.ContentID).
				First(&locked).
				Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return domainerrors.ErrContentNotFound
				}
				return err
			}
			if err := tx.Model(&contentRefModel{}).
				Where("content_id = ?", effects.Content.ContentID).
				Updates(map[string]any{
					"status":       string(effects.Content.Status),
					"publish_at":   normalizeOptionalTime(effects.Content.PublishAt),
					"unpublish_at": normalizeOptionalTime(effects.Content.UnpublishAt),
					"updated_at":   effects.Content.UpdatedAt.UTC(),
				}).
				Error; err != nil {
				return err
			}
		}
		if effects.Instance != nil {
			row := instanceModelFromEntity(*effects.Instance)
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "instance_id"}},
				DoUpdates: clause.AssignmentColumns([]string{"current_step", "status", "updated_at"}),
			}).Create(&row).Error; err != nil {
				if isUniqueViolation(err) {
					return domainerrors.ErrActiveWorkflowExists
				}
				return err
			}
		}
		if effects.Step != nil {
			row := stepModelFromEntity(*effects.Step)
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		if effects.Approval != nil {
			row := approvalModelFromEntity(*effects.Approval)
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		if effects.Event != nil {
			if err := insertOutboxEnvelopeTx(tx, *effects.Event); err != nil {
				return err
			}
		}
		return insertAuditTx(tx, effects.Audit, time.Now().UTC())
	})
}

func (r *Repository) ListDueForPublish(ctx context.Context, now time.Time, limit int) ([]entities.ContentRef, error) {
	return r.listDue(ctx, string(entities.StatusApproved), "publish_at", now, limit)
}

func (r *Repository) ListDueForUnpublish(ctx context.Context, now time.Time, limit int) ([]entities.ContentRef, error) {
	return r.listDue(ctx, string(entities.StatusPublished), "unpublish_at", now, limit)
}

func (r *Repository) listDue(ctx context.Context, status, column string, now time.Time, limit int) ([]entities.ContentRef, error) {
	if limit <= 0 {
		limit = 100
	}
	var rows []contentRefModel
	if err := r.db.WithContext(ctx).
		Where("status = ? AND "+column+" IS NOT NULL AND "+column+" <= ?", status, now.UTC()).
		Order(column + " ASC").
		Limit(limit).
		Find(&rows).
		Error; err != nil {
		return nil, err
	}

	items := make([]entities.ContentRef, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) ListPendingOutbox(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	if limit <= 0 {
		limit = 100
	}
	var rows []outboxModel
	if err := r.db.WithContext(ctx).
		Where("status = ?", outboxStatusPending).
		Order("created_at ASC").
		Limit(limit).
		Find(&rows).
		Error; err != nil {
		return nil, err
	}

	items := make([]ports.OutboxMessage, 0, len(rows))
	for _, row := range rows {
		items = append(items, ports.OutboxMessage{
			OutboxID:     row.OutboxID,
			EventType:    row.EventType,
			PartitionKey: row.PartitionKey,
			Payload:      append([]byte(nil), row.Payload...),
			CreatedAt:    row.CreatedAt.UTC(),
		})
	}
	return items, nil
}

func (r *Repository) MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&outboxModel{}).
		Where("outbox_id = ?", strings.TrimSpace(outboxID)).
		Updates(map[string]any{
			"status":       outboxStatusPublished,
			"published_at": publishedAt.UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrInvalidRequest
	}
	return nil
}

func insertOutboxEnvelopeTx(tx *gorm.DB, envelope ports.EventEnvelope) error {
	payload, err := json.Marshal(envelope)
	if err != nil {
		return err
	}
	row := outboxModel{
		OutboxID:     strings.TrimSpace(envelope.EventID),
		EventType:    strings.TrimSpace(envelope.EventType),
		PartitionKey: strings.TrimSpace(envelope.PartitionKey),
		Payload:      payload,
		Status:       outboxStatusPending,
		CreatedAt:    envelope.OccurredAt.UTC(),
	}
	if row.OutboxID == "" {
		row.OutboxID = uuid.NewString()
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now().UTC()
	}
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "outbox_id"}},
		DoNothing: true,
	}).Create(&row).Error
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

type contentRefModel struct {
	ContentID   string     `gorm:"column:content_id;primaryKey"`
	Title       string     `gorm:"column:title"`
	Status      string     `gorm:"column:status"`
	AuthorID    string     `gorm:"column:author_id"`
	PublishAt   *time.Time `gorm:"column:publish_at"`
	UnpublishAt *time.Time `gorm:"column:unpublish_at"`
	UpdatedAt   time.Time  `gorm:"column:updated_at"`
}

func (contentRefModel) TableName() string {
	return "content_items"
}

func (m contentRefModel) toEntity() entities.ContentRef {
	return entities.ContentRef{
		ContentID:   m.ContentID,
		Title:       m.Title,
		Status:      entities.ContentStatus(m.Status),
		AuthorID:    m.AuthorID,
		PublishAt:   normalizeOptionalTime(m.PublishAt),
		UnpublishAt: normalizeOptionalTime(m.UnpublishAt),
		UpdatedAt:   m.UpdatedAt.UTC(),
	}
}

type workflowInstanceModel struct {
	InstanceID  string    `gorm:"column:instance_id;primaryKey"`
	ContentID   string    `gorm:"column:content_id"`
	CurrentStep string    `gorm:"column:current_step"`
	Status      string    `gorm:"column:status"`
	InitiatedBy string    `gorm:"column:initiated_by"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (workflowInstanceModel) TableName() string {
	return "workflow_instances"
}

func instanceModelFromEntity(item entities.WorkflowInstance) workflowInstanceModel {
	return workflowInstanceModel{
		InstanceID:  strings.TrimSpace(item.InstanceID),
		ContentID:   strings.TrimSpace(item.ContentID),
		CurrentStep: item.CurrentStep,
		Status:      string(item.Status),
		InitiatedBy: strings.TrimSpace(item.InitiatedBy),
		CreatedAt:   item.CreatedAt.UTC(),
		UpdatedAt:   item.UpdatedAt.UTC(),
	}
}

func (m workflowInstanceModel) toEntity() entities.WorkflowInstance {
	return entities.WorkflowInstance{
		InstanceID:  m.InstanceID,
		ContentID:   m.ContentID,
		CurrentStep: m.CurrentStep,
		Status:      entities.WorkflowStatus(m.Status),
		InitiatedBy: m.InitiatedBy,
		CreatedAt:   m.CreatedAt.UTC(),
		UpdatedAt:   m.UpdatedAt.UTC(),
	}
}

type workflowStepModel struct {
	StepID      string     `gorm:"column:step_id;primaryKey"`
	InstanceID  string     `gorm:"column:instance_id"`
	StepName    string     `gorm:"column:step_name"`
	Status      string     `gorm:"column:status"`
	Comments    string     `gorm:"column:comments"`
	CompletedBy string     `gorm:"column:completed_by"`
	CompletedAt *time.Time `gorm:"column:completed_at"`
	CreatedAt   time.Time  `gorm:"column:created_at"`
}

func (workflowStepModel) TableName() string {
	return "workflow_steps"
}

func stepModelFromEntity(item entities.WorkflowStep) workflowStepModel {
	return workflowStepModel{
		StepID:      strings.TrimSpace(item.StepID),
		InstanceID:  strings.TrimSpace(item.InstanceID),
		StepName:    item.StepName,
		Status:      string(item.Status),
		Comments:    item.Comments,
		CompletedBy: strings.TrimSpace(item.CompletedBy),
		CompletedAt: normalizeOptionalTime(item.CompletedAt),
		CreatedAt:   item.CreatedAt.UTC(),
	}
}

func (m workflowStepModel) toEntity() entities.WorkflowStep {
	return entities.WorkflowStep{
		StepID:      m.StepID,
		InstanceID:  m.InstanceID,
		StepName:    m.StepName,
		Status:      entities.StepStatus(m.Status),
		Comments:    m.Comments,
		CompletedBy: m.CompletedBy,
		CompletedAt: normalizeOptionalTime(m.CompletedAt),
		CreatedAt:   m.CreatedAt.UTC(),
	}
}

type workflowApprovalModel struct {
	ApprovalID string    `gorm:"column:approval_id;primaryKey"`
	StepID     string    `gorm:"column:step_id"`
	ApprovedBy string    `gorm:"column:approved_by"`
	Approved   bool      `gorm:"column:approved"`
	Comments   string    `gorm:"column:comments"`
	CreatedAt  time.Time `gorm:"column:created_at"`
}

func (workflowApprovalModel) TableName() string {
	return "workflow_approvals"
}

func approvalModelFromEntity(item entities.WorkflowApproval) workflowApprovalModel {
	return workflowApprovalModel{
		ApprovalID: strings.TrimSpace(item.ApprovalID),
		StepID:     strings.TrimSpace(item.StepID),
		ApprovedBy: strings.TrimSpace(item.ApprovedBy),
		Approved:   item.Approved,
		Comments:   item.Comments,
		CreatedAt:  item.CreatedAt.UTC(),
	}
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

type outboxModel struct {
	OutboxID     string     `gorm:"column:outbox_id;primaryKey"`
	EventType    string     `gorm:"column:event_type"`
	PartitionKey string     `gorm:"column:partition_key"`
	Payload      []byte     `gorm:"column:payload"`
	Status       string     `gorm:"column:status"`
	CreatedAt    time.Time  `gorm:"column:created_at"`
	PublishedAt  *time.Time `gorm:"column:published_at"`
}

func (outboxModel) TableName() string {
	return "workflow_outbox"
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
