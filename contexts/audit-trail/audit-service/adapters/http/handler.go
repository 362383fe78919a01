package httpadapter

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"vellum/contexts/audit-trail/audit-service/application"
	"vellum/contexts/audit-trail/audit-service/domain/entities"
	domainerrors "vellum/contexts/audit-trail/audit-service/domain/errors"
	"vellum/contexts/audit-trail/audit-service/ports"
	httptransport "vellum/contexts/audit-trail/audit-service/transport/http"
)

type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

type ListQuery struct {
	UserID       string
	Action       string
	ResourceType string
	ResourceID   string
	StartDate    string
	EndDate      string
	Page         string
	Limit        string
}

func (h Handler) ListLogsHandler(ctx context.Context, actorRole string, query ListQuery) (httptransport.ListLogsResponse, error) {
	page := 1
	if parsed, err := strconv.Atoi(strings.TrimSpace(query.Page)); err == nil && parsed >= 1 {
		page = parsed
	}
	limit := 20
	if parsed, err := strconv.Atoi(strings.TrimSpace(query.Limit)); err == nil && parsed >= 1 {
		limit = parsed
	}
	if limit > 100 {
		limit = 100
	}

	filter := ports.LogFilter{
		UserID:       strings.TrimSpace(query.UserID),
		Action:       strings.TrimSpace(query.Action),
		ResourceType: strings.TrimSpace(query.ResourceType),
		ResourceID:   strings.TrimSpace(query.ResourceID),
		Limit:        limit,
		Offset:       (page - 1) * limit,
	}
	start, end, err := parseWindow(query.StartDate, query.EndDate)
	if err != nil {
		return httptransport.ListLogsResponse{}, err
	}
	filter.Start = start
	filter.End = end

	logs, total, err := h.Service.List(ctx, actorRole, filter)
	if err != nil {
		return httptransport.ListLogsResponse{}, err
	}

	resp := httptransport.ListLogsResponse{Data: make([]httptransport.AuditLogItem, 0, len(logs))}
	for _, log := range logs {
		resp.Data = append(resp.Data, mapLogItem(log))
	}
	resp.Pagination = httptransport.Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: (total + int64(limit) - 1) / int64(limit),
	}
	return resp, nil
}

func (h Handler) GetLogHandler(ctx context.Context, actorRole string, logID string) (httptransport.AuditLogItem, error) {
	log, err := h.Service.Get(ctx, actorRole, logID)
	if err != nil {
		return httptransport.AuditLogItem{}, err
	}
	return mapLogItem(log), nil
}

func (h Handler) ExportHandler(ctx context.Context, actorRole string, format, startDate, endDate, action string) (string, []byte, error) {
	start, end, err := parseWindow(startDate, endDate)
	if err != nil {
		return "", nil, err
	}
	return h.Service.Export(ctx, actorRole, format, ports.LogFilter{
		Action: strings.TrimSpace(action),
		Start:  start,
		End:    end,
	})
}

func (h Handler) StatsHandler(ctx context.Context, actorRole string, startDate, endDate string) (httptransport.StatsResponse, error) {
	start, end, err := parseWindow(startDate, endDate)
	if err != nil {
		return httptransport.StatsResponse{}, err
	}
	total, counts, err := h.Service.Stats(ctx, actorRole, start, end)
	if err != nil {
		return httptransport.StatsResponse{}, err
	}

	resp := httptransport.StatsResponse{TotalLogs: total, ActionCounts: counts}
	resp.Period.Start = "all"
	resp.Period.End = "all"
	if start != nil {
		resp.Period.Start = start.UTC().Format(time.RFC3339)
	}
	if end != nil {
		resp.Period.End = end.UTC().Format(time.RFC3339)
	}
	return resp, nil
}

func parseWindow(startDate, endDate string) (*time.Time, *time.Time, error) {
	var start, end *time.Time
	if raw := strings.TrimSpace(startDate); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return nil, nil, domainerrors.ErrInvalidRequest
		}
		start = &parsed
	}
	if raw := strings.TrimSpace(endDate); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return nil, nil, domainerrors.ErrInvalidRequest
		}
		end = &parsed
	}
	return start, end, nil
}

func mapLogItem(log entities.AuditLog) httptransport.AuditLogItem {
	return httptransport.AuditLogItem{
		ID:           log.LogID,
		UserID:       log.UserID,
		Action:       string(log.Action),
		ResourceType: log.ResourceType,
		ResourceID:   log.ResourceID,
		ResourceName: log.ResourceName,
		Metadata:     log.Metadata,
		IPAddress:    log.IPAddress,
		UserAgent:    log.UserAgent,
		CreatedAt:    log.CreatedAt.UTC().Format(time.RFC3339),
	}
}
