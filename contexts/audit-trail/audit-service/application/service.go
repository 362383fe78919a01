package application

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"vellum/contexts/audit-trail/audit-service/domain/entities"
	domainerrors "vellum/contexts/audit-trail/audit-service/domain/errors"
	"vellum/contexts/audit-trail/audit-service/ports"
)

const exportCap = 10000

// Roles allowed to read the trail. The recorder side has no gate: it is an
// internal contract invoked by the other services after their own checks.
var (
	viewerRoles   = []string{"Publisher", "Admin"}
	exporterRoles = []string{"Admin"}
)

type Service struct {
	Repo   ports.Repository
	Clock  ports.Clock
	IDGen  ports.IDGenerator
	Logger *slog.Logger
}

type RecordInput struct {
	UserID       string
	Action       entities.Action
	ResourceType string
	ResourceID   string
	ResourceName string
	Metadata     map[string]any
	IPAddress    string
	UserAgent    string
}

// Record appends one immutable entry. Exactly one call per successful
// state-changing operation.
func (s Service) Record(ctx context.Context, input RecordInput) (entities.AuditLog, error) {
	input.UserID = strings.TrimSpace(input.UserID)
	input.ResourceType = strings.TrimSpace(input.ResourceType)
	input.ResourceID = strings.TrimSpace(input.ResourceID)
	if input.UserID == "" || input.ResourceType == "" || input.ResourceID == "" {
		return entities.AuditLog{}, domainerrors.ErrInvalidRequest
	}
	if !entities.IsSupportedAction(input.Action) {
		return entities.AuditLog{}, domainerrors.ErrInvalidAction
	}

	logID, err := s.IDGen.NewID(ctx)
	if err != nil {
		return entities.AuditLog{}, err
	}
	entry := entities.AuditLog{
		LogID:        logID,
		UserID:       input.UserID,
		Action:       input.Action,
		ResourceType: input.ResourceType,
		ResourceID:   input.ResourceID,
		ResourceName: strings.TrimSpace(input.ResourceName),
		Metadata:     input.Metadata,
		IPAddress:    strings.TrimSpace(input.IPAddress),
		UserAgent:    strings.TrimSpace(input.UserAgent),
		CreatedAt:    s.now(),
	}
	if err := s.Repo.InsertLog(ctx, entry); err != nil {
		return entities.AuditLog{}, err
	}

	resolveLogger(s.Logger).Debug("audit entry recorded",
		"event", "audit_entry_recorded",
		"module", "audit-trail/audit-service",
		"layer", "application",
		"action", string(entry.Action),
		"resource_type", entry.ResourceType,
		"resource_id", entry.ResourceID,
	)
	return entry, nil
}

func (s Service) List(ctx context.Context, actorRole string, filter ports.LogFilter) ([]entities.AuditLog, int64, error) {
	if !roleAllowed(actorRole, viewerRoles) {
		return nil, 0, domainerrors.ErrForbidden
	}
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Limit > 100 {
		filter.Limit = 100
	}
	if filter.Offset < 0 {
		return nil, 0, domainerrors.ErrInvalidRequest
	}
	if filter.Action != "" && !entities.IsSupportedAction(entities.Action(filter.Action)) {
		return nil, 0, domainerrors.ErrInvalidRequest
	}
	return s.Repo.ListLogs(ctx, filter)
}

func (s Service) Get(ctx context.Context, actorRole string, logID string) (entities.AuditLog, error) {
	if !roleAllowed(actorRole, viewerRoles) {
		return entities.AuditLog{}, domainerrors.ErrForbidden
	}
	logID = strings.TrimSpace(logID)
	if logID == "" {
		return entities.AuditLog{}, domainerrors.ErrInvalidRequest
	}
	return s.Repo.GetLog(ctx, logID)
}

// Export returns the trail as CSV or JSON, capped at 10k rows. Admin only.
func (s Service) Export(ctx context.Context, actorRole string, format string, filter ports.LogFilter) (string, []byte, error) {
	if !roleAllowed(actorRole, exporterRoles) {
		return "", nil, domainerrors.ErrForbidden
	}
	format = strings.TrimSpace(strings.ToLower(format))
	if format == "" {
		format = "json"
	}
	if format != "csv" && format != "json" {
		return "", nil, domainerrors.ErrInvalidRequest
	}

	filter.Limit = exportCap
	filter.Offset = 0
	logs, _, err := s.Repo.ListLogs(ctx, filter)
	if err != nil {
		return "", nil, err
	}

	if format == "csv" {
		payload, err := renderCSV(logs)
		if err != nil {
			return "", nil, err
		}
		return "text/csv", payload, nil
	}

	payload, err := json.Marshal(map[string]any{
		"exported_at": s.now().Format(time.RFC3339),
		"count":       len(logs),
		"data":        logs,
	})
	if err != nil {
		return "", nil, err
	}
	return "application/json", payload, nil
}

// Stats aggregates per-action counts over the selected window. Admin only.
func (s Service) Stats(ctx context.Context, actorRole string, start, end *time.Time) (int, map[string]int, error) {
	if !roleAllowed(actorRole, exporterRoles) {
		return 0, nil, domainerrors.ErrForbidden
	}
	logs, _, err := s.Repo.ListLogs(ctx, ports.LogFilter{Start: start, End: end, Limit: exportCap})
	if err != nil {
		return 0, nil, err
	}
	counts := make(map[string]int)
	for _, log := range logs {
		counts[string(log.Action)]++
	}
	return len(logs), counts, nil
}

func renderCSV(logs []entities.AuditLog) ([]byte, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)
	if err := writer.Write([]string{"id", "user_id", "action", "resource_type", "resource_id", "resource_name", "metadata", "ip_address", "user_agent", "created_at"}); err != nil {
		return nil, err
	}
	for _, log := range logs {
		metadata := ""
		if len(log.Metadata) > 0 {
			raw, err := json.Marshal(log.Metadata)
			if err != nil {
				return nil, err
			}
			metadata = string(raw)
		}
		record := []string{
			log.LogID,
			log.UserID,
			string(log.Action),
			log.ResourceType,
			log.ResourceID,
			log.ResourceName,
			metadata,
			log.IPAddress,
			log.UserAgent,
			log.CreatedAt.UTC().Format(time.RFC3339),
		}
		if err := writer.Write(record); err != nil {
			return nil, err
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	return []byte(sb.String()), nil
}

func roleAllowed(role string, allowed []string) bool {
	for _, candidate := range allowed {
		if candidate == role {
			return true
		}
	}
	return false
}

func (s Service) now() time.Time {
	if s.Clock != nil {
		return s.Clock.Now().UTC()
	}
	return time.Now().UTC()
}

func resolveLogger(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.Default()
	}
	return logger
}
