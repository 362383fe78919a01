package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"vellum/contexts/identity-access/access-service/domain/entities"
	domainerrors "vellum/contexts/identity-access/access-service/domain/errors"
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

type roleAssignmentModel struct {
	AssignmentID string    `gorm:"column:assignment_id;primaryKey"`
	UserID       string    `gorm:"column:user_id;uniqueIndex"`
	Role         string    `gorm:"column:role"`
	AssignedBy   string    `gorm:"column:assigned_by"`
	AssignedAt   time.Time `gorm:"column:assigned_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (roleAssignmentModel) TableName() string { return "user_roles" }

type userModel struct {
	UserID       string     `gorm:"column:user_id;primaryKey"`
	Email        string     `gorm:"column:email"`
	DefaultRole  string     `gorm:"column:default_role"`
	CreatedAt    time.Time  `gorm:"column:created_at"`
	LastSignInAt *time.Time `gorm:"column:last_sign_in_at"`
}

func (userModel) TableName() string { return "users" }

func (r *Repository) GetAssignment(ctx context.Context, userID string) (entities.RoleAssignment, bool, error) {
	var row roleAssignmentModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", strings.TrimSpace(userID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.RoleAssignment{}, false, nil
		}
		return entities.RoleAssignment{}, false, err
	}
	return row.toEntity(), true, nil
}

func (r *Repository) UpsertAssignment(ctx context.Context, assignment entities.RoleAssignment) error {
	row := roleAssignmentModel{
		AssignmentID: strings.TrimSpace(assignment.AssignmentID),
		UserID:       strings.TrimSpace(assignment.UserID),
		Role:         string(assignment.Role),
		AssignedBy:   strings.TrimSpace(assignment.AssignedBy),
		AssignedAt:   assignment.AssignedAt.UTC(),
		UpdatedAt:    assignment.UpdatedAt.UTC(),
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"role", "assigned_by", "updated_at"}),
		}).
		Create(&row).
		Error
}

func (r *Repository) DeleteAssignment(ctx context.Context, userID string) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ?", strings.TrimSpace(userID)).
		Delete(&roleAssignmentModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrUserNotFound
	}
	return nil
}

func (r *Repository) ListAssignments(ctx context.Context) ([]entities.RoleAssignment, error) {
	var rows []roleAssignmentModel
	if err := r.db.WithContext(ctx).Order("user_id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	items := make([]entities.RoleAssignment, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) GetUser(ctx context.Context, userID string) (entities.User, error) {
	var row userModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", strings.TrimSpace(userID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.User{}, domainerrors.ErrUserNotFound
		}
		return entities.User{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) ListUsers(ctx context.Context) ([]entities.User, error) {
	var rows []userModel
	if err := r.db.WithContext(ctx).Order("email ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	items := make([]entities.User, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (m roleAssignmentModel) toEntity() entities.RoleAssignment {
	return entities.RoleAssignment{
		AssignmentID: m.AssignmentID,
		UserID:       m.UserID,
		Role:         entities.Role(m.Role),
		AssignedBy:   m.AssignedBy,
		AssignedAt:   m.AssignedAt.UTC(),
		UpdatedAt:    m.UpdatedAt.UTC(),
	}
}

func (m userModel) toEntity() entities.User {
	user := entities.User{
		UserID:      m.UserID,
		Email:       m.Email,
		DefaultRole: entities.Role(m.DefaultRole),
		CreatedAt:   m.CreatedAt.UTC(),
	}
	if m.LastSignInAt != nil {
		at := m.LastSignInAt.UTC()
		user.LastSignInAt = &at
	}
	return user
}
