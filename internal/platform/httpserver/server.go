package httpserver

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	audittrail "vellum/contexts/audit-trail/audit-service"
	audithttpadapter "vellum/contexts/audit-trail/audit-service/adapters/http"
	auditerrors "vellum/contexts/audit-trail/audit-service/domain/errors"
	audithttp "vellum/contexts/audit-trail/audit-service/transport/http"
	content "vellum/contexts/content-management/content-service"
	contenthttpadapter "vellum/contexts/content-management/content-service/adapters/http"
	contenterrors "vellum/contexts/content-management/content-service/domain/errors"
	contenthttp "vellum/contexts/content-management/content-service/transport/http"
	workflow "vellum/contexts/content-management/workflow-service"
	workflowerrors "vellum/contexts/content-management/workflow-service/domain/errors"
	workflowhttp "vellum/contexts/content-management/workflow-service/transport/http"
	access "vellum/contexts/identity-access/access-service"
	accesserrors "vellum/contexts/identity-access/access-service/domain/errors"
	accesshttp "vellum/contexts/identity-access/access-service/transport/http"

	httpSwagger "github.com/swaggo/http-swagger"
	_ "vellum/internal/platform/httpserver/docs"
)

type Server struct {
	mux      *http.ServeMux
	logger   *slog.Logger
	addr     string
	content  content.Module
	workflow workflow.Module
	audit    audittrail.Module
	access   access.Module
}

func New(
	contentModule content.Module,
	workflowModule workflow.Module,
	auditModule audittrail.Module,
	accessModule access.Module,
	logger *slog.Logger,
	addr string,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:      http.NewServeMux(),
		logger:   logger,
		addr:     addr,
		content:  contentModule,
		workflow: workflowModule,
		audit:    auditModule,
		access:   accessModule,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.mux)
}

// Handler exposes the routed mux for tests.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	s.mux.HandleFunc("POST /api/content", s.handleCreateContent)
	s.mux.HandleFunc("GET /api/content", s.handleListContent)
	s.mux.HandleFunc("GET /api/content/{content_id}", s.handleGetContent)
	s.mux.HandleFunc("PUT /api/content/{content_id}", s.handleUpdateContent)
	s.mux.HandleFunc("DELETE /api/content/{content_id}", s.handleDeleteContent)

	s.mux.HandleFunc("GET /api/content/{content_id}/versions", s.handleListVersions)
	s.mux.HandleFunc("POST /api/content/{content_id}/rollback", s.handleRollback)
	s.mux.HandleFunc("GET /api/versions/compare", s.handleCompareVersions)
	s.mux.HandleFunc("GET /api/versions/{version_id}", s.handleGetVersion)

	s.mux.HandleFunc("POST /api/workflow/submit", s.handleWorkflowSubmit)
	s.mux.HandleFunc("POST /api/workflow/request-changes", s.handleWorkflowRequestChanges)
	s.mux.HandleFunc("POST /api/workflow/approve", s.handleWorkflowApprove)
	s.mux.HandleFunc("POST /api/workflow/publish", s.handleWorkflowPublish)
	s.mux.HandleFunc("POST /api/workflow/schedule", s.handleWorkflowSchedule)
	s.mux.HandleFunc("POST /api/workflow/unpublish", s.handleWorkflowUnpublish)
	s.mux.HandleFunc("GET /api/workflow/content/{content_id}", s.handleActiveWorkflow)
	s.mux.HandleFunc("GET /api/workflow/{instance_id}", s.handleGetWorkflow)

	s.mux.HandleFunc("GET /api/audit", s.handleListAuditLogs)
	s.mux.HandleFunc("GET /api/audit/export", s.handleExportAuditLogs)
	s.mux.HandleFunc("GET /api/audit/stats", s.handleAuditStats)
	s.mux.HandleFunc("GET /api/audit/{log_id}", s.handleGetAuditLog)

	s.mux.HandleFunc("GET /api/admin/users", s.handleListUsers)
	s.mux.HandleFunc("GET /api/admin/users/{user_id}", s.handleGetUser)
	s.mux.HandleFunc("PUT /api/admin/users/{user_id}/role", s.handleAssignRole)
	s.mux.HandleFunc("DELETE /api/admin/users/{user_id}/role", s.handleRemoveRole)
}

// resolveActor authenticates the request from the X-User-Id header and
// resolves the caller's effective role once. Every /api route goes through
// here; reads require a known caller too, they just skip the role gate.
func (s *Server) resolveActor(w http.ResponseWriter, r *http.Request) (string, string, bool) {
	userID := strings.TrimSpace(r.Header.Get("X-User-Id"))
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "X-User-Id header is required")
		return "", "", false
	}

	role, err := s.access.Service.ResolveRole(r.Context(), userID)
	if err != nil {
		if errors.Is(err, accesserrors.ErrUserNotFound) {
			writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "unknown user")
			return "", "", false
		}
		s.writeAccessDomainError(w, err)
		return "", "", false
	}
	return userID, string(role), true
}

func (s *Server) handleCreateContent(w http.ResponseWriter, r *http.Request) {
	actorID, actorRole, ok := s.resolveActor(w, r)
	if !ok {
		return
	}

	var req contenthttp.CreateContentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "request body must be valid JSON")
		return
	}

	resp, err := s.content.Handler.CreateContentHandler(r.Context(), actorID, actorRole, req)
	if err != nil {
		s.writeContentDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListContent(w http.ResponseWriter, r *http.Request) {
	if _, _, ok := s.resolveActor(w, r); !ok {
		return
	}

	query := r.URL.Query()
	listQuery := contenthttpadapter.ListQuery{
		Status:        query.Get("status"),
		ContentTypeID: query.Get("content_type_id"),
		AuthorID:      query.Get("author_id"),
		DepartmentID:  query.Get("department_id"),
		Search:        query.Get("search"),
	}
	if raw := query.Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "page must be an integer")
			return
		}
		listQuery.Page = page
	}
	if raw := query.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "limit must be an integer")
			return
		}
		listQuery.Limit = limit
	}

	resp, err := s.content.Handler.ListContentHandler(r.Context(), listQuery)
	if err != nil {
		s.writeContentDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetContent(w http.ResponseWriter, r *http.Request) {
	if _, _, ok := s.resolveActor(w, r); !ok {
		return
	}

	resp, err := s.content.Handler.GetContentHandler(r.Context(), r.PathValue("content_id"))
	if err != nil {
		s.writeContentDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpdateContent(w http.ResponseWriter, r *http.Request) {
	actorID, actorRole, ok := s.resolveActor(w, r)
	if !ok {
		return
	}

	var req contenthttp.UpdateContentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "request body must be valid JSON")
		return
	}

	resp, err := s.content.Handler.UpdateContentHandler(r.Context(), actorID, actorRole, r.PathValue("content_id"), req)
	if err != nil {
		s.writeContentDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeleteContent(w http.ResponseWriter, r *http.Request) {
	actorID, actorRole, ok := s.resolveActor(w, r)
	if !ok {
		return
	}

	if err := s.content.Handler.DeleteContentHandler(r.Context(), actorID, actorRole, r.PathValue("content_id")); err != nil {
		s.writeContentDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListVersions(w http.ResponseWriter, r *http.Request) {
	if _, _, ok := s.resolveActor(w, r); !ok {
		return
	}

	query := r.URL.Query()
	limit := 0
	offset := 0
	if raw := query.Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "limit must be an integer")
			return
		}
		limit = parsed
	}
	if raw := query.Get("offset"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "offset must be an integer")
			return
		}
		offset = parsed
	}

	resp, err := s.content.Handler.ListVersionsHandler(r.Context(), r.PathValue("content_id"), limit, offset)
	if err != nil {
		s.writeContentDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRollback(w http.ResponseWriter, r *http.Request) {
	actorID, actorRole, ok := s.resolveActor(w, r)
	if !ok {
		return
	}

	var req contenthttp.RollbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "request body must be valid JSON")
		return
	}

	resp, err := s.content.Handler.RollbackHandler(r.Context(), actorID, actorRole, r.PathValue("content_id"), req)
	if err != nil {
		s.writeContentDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetVersion(w http.ResponseWriter, r *http.Request) {
	if _, _, ok := s.resolveActor(w, r); !ok {
		return
	}

	resp, err := s.content.Handler.GetVersionHandler(r.Context(), r.PathValue("version_id"))
	if err != nil {
		s.writeContentDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCompareVersions(w http.ResponseWriter, r *http.Request) {
	if _, _, ok := s.resolveActor(w, r); !ok {
		return
	}

	query := r.URL.Query()
	resp, err := s.content.Handler.CompareVersionsHandler(r.Context(), query.Get("version1"), query.Get("version2"))
	if err != nil {
		s.writeContentDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleWorkflowSubmit(w http.ResponseWriter, r *http.Request) {
	actorID, actorRole, ok := s.resolveActor(w, r)
	if !ok {
		return
	}

	var req workflowhttp.SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "request body must be valid JSON")
		return
	}

	resp, err := s.workflow.Handler.SubmitHandler(r.Context(), actorID, actorRole, req)
	if err != nil {
		s.writeWorkflowDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleWorkflowRequestChanges(w http.ResponseWriter, r *http.Request) {
	actorID, actorRole, ok := s.resolveActor(w, r)
	if !ok {
		return
	}

	var req workflowhttp.WorkflowActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "request body must be valid JSON")
		return
	}

	resp, err := s.workflow.Handler.RequestChangesHandler(r.Context(), actorID, actorRole, req)
	if err != nil {
		s.writeWorkflowDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleWorkflowApprove(w http.ResponseWriter, r *http.Request) {
	actorID, actorRole, ok := s.resolveActor(w, r)
	if !ok {
		return
	}

	var req workflowhttp.WorkflowActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "request body must be valid JSON")
		return
	}

	resp, err := s.workflow.Handler.ApproveHandler(r.Context(), actorID, actorRole, req)
	if err != nil {
		s.writeWorkflowDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleWorkflowPublish(w http.ResponseWriter, r *http.Request) {
	actorID, actorRole, ok := s.resolveActor(w, r)
	if !ok {
		return
	}

	var req workflowhttp.WorkflowActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "request body must be valid JSON")
		return
	}

	resp, err := s.workflow.Handler.PublishHandler(r.Context(), actorID, actorRole, req)
	if err != nil {
		s.writeWorkflowDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleWorkflowSchedule(w http.ResponseWriter, r *http.Request) {
	actorID, actorRole, ok := s.resolveActor(w, r)
	if !ok {
		return
	}

	var req workflowhttp.ScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "request body must be valid JSON")
		return
	}

	resp, err := s.workflow.Handler.ScheduleHandler(r.Context(), actorID, actorRole, req)
	if err != nil {
		s.writeWorkflowDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleWorkflowUnpublish(w http.ResponseWriter, r *http.Request) {
	actorID, actorRole, ok := s.resolveActor(w, r)
	if !ok {
		return
	}

	var req workflowhttp.UnpublishRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "request body must be valid JSON")
		return
	}

	resp, err := s.workflow.Handler.UnpublishHandler(r.Context(), actorID, actorRole, req)
	if err != nil {
		s.writeWorkflowDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetWorkflow(w http.ResponseWriter, r *http.Request) {
	if _, _, ok := s.resolveActor(w, r); !ok {
		return
	}

	resp, err := s.workflow.Handler.GetWorkflowHandler(r.Context(), r.PathValue("instance_id"))
	if err != nil {
		s.writeWorkflowDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleActiveWorkflow(w http.ResponseWriter, r *http.Request) {
	if _, _, ok := s.resolveActor(w, r); !ok {
		return
	}

	resp, err := s.workflow.Handler.GetActiveWorkflowHandler(r.Context(), r.PathValue("content_id"))
	if err != nil {
		s.writeWorkflowDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListAuditLogs(w http.ResponseWriter, r *http.Request) {
	_, actorRole, ok := s.resolveActor(w, r)
	if !ok {
		return
	}

	query := r.URL.Query()
	resp, err := s.audit.Handler.ListLogsHandler(r.Context(), actorRole, audittrailListQuery(query))
	if err != nil {
		s.writeAuditDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetAuditLog(w http.ResponseWriter, r *http.Request) {
	_, actorRole, ok := s.resolveActor(w, r)
	if !ok {
		return
	}

	resp, err := s.audit.Handler.GetLogHandler(r.Context(), actorRole, r.PathValue("log_id"))
	if err != nil {
		s.writeAuditDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleExportAuditLogs(w http.ResponseWriter, r *http.Request) {
	_, actorRole, ok := s.resolveActor(w, r)
	if !ok {
		return
	}

	query := r.URL.Query()
	contentType, body, err := s.audit.Handler.ExportHandler(
		r.Context(),
		actorRole,
		query.Get("format"),
		query.Get("start_date"),
		query.Get("end_date"),
		query.Get("action"),
	)
	if err != nil {
		s.writeAuditDomainError(w, err)
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func (s *Server) handleAuditStats(w http.ResponseWriter, r *http.Request) {
	_, actorRole, ok := s.resolveActor(w, r)
	if !ok {
		return
	}

	query := r.URL.Query()
	resp, err := s.audit.Handler.StatsHandler(r.Context(), actorRole, query.Get("start_date"), query.Get("end_date"))
	if err != nil {
		s.writeAuditDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	_, actorRole, ok := s.resolveActor(w, r)
	if !ok {
		return
	}

	resp, err := s.access.Handler.ListUsersHandler(r.Context(), actorRole)
	if err != nil {
		s.writeAccessDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	_, actorRole, ok := s.resolveActor(w, r)
	if !ok {
		return
	}

	resp, err := s.access.Handler.GetUserHandler(r.Context(), actorRole, r.PathValue("user_id"))
	if err != nil {
		s.writeAccessDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAssignRole(w http.ResponseWriter, r *http.Request) {
	actorID, actorRole, ok := s.resolveActor(w, r)
	if !ok {
		return
	}

	var req accesshttp.AssignRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "request body must be valid JSON")
		return
	}

	resp, err := s.access.Handler.AssignRoleHandler(r.Context(), actorID, actorRole, r.PathValue("user_id"), req)
	if err != nil {
		s.writeAccessDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRemoveRole(w http.ResponseWriter, r *http.Request) {
	actorID, actorRole, ok := s.resolveActor(w, r)
	if !ok {
		return
	}

	if err := s.access.Handler.RemoveRoleHandler(r.Context(), actorID, actorRole, r.PathValue("user_id")); err != nil {
		s.writeAccessDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) writeContentDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, contenterrors.ErrInvalidRequest):
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, contenterrors.ErrForbidden):
		writeError(w, http.StatusForbidden, "FORBIDDEN", err.Error())
	case errors.Is(err, contenterrors.ErrContentNotFound),
		errors.Is(err, contenterrors.ErrVersionNotFound):
		writeError(w, http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, contenterrors.ErrInvalidState):
		writeError(w, http.StatusConflict, "INVALID_STATE", err.Error())
	case errors.Is(err, contenterrors.ErrSlugConflict),
		errors.Is(err, contenterrors.ErrVersionConflict):
		writeError(w, http.StatusConflict, "CONFLICT", err.Error())
	default:
		s.logInternalError(err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}

func (s *Server) writeWorkflowDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, workflowerrors.ErrInvalidRequest),
		errors.Is(err, workflowerrors.ErrInvalidSchedule):
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, workflowerrors.ErrForbidden):
		writeError(w, http.StatusForbidden, "FORBIDDEN", err.Error())
	case errors.Is(err, workflowerrors.ErrContentNotFound),
		errors.Is(err, workflowerrors.ErrWorkflowNotFound):
		writeError(w, http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, workflowerrors.ErrInvalidState):
		writeError(w, http.StatusConflict, "INVALID_STATE", err.Error())
	case errors.Is(err, workflowerrors.ErrActiveWorkflowExists):
		writeError(w, http.StatusConflict, "CONFLICT", err.Error())
	default:
		s.logInternalError(err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}

func (s *Server) writeAuditDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, auditerrors.ErrInvalidRequest),
		errors.Is(err, auditerrors.ErrInvalidAction):
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, auditerrors.ErrForbidden):
		writeError(w, http.StatusForbidden, "FORBIDDEN", err.Error())
	case errors.Is(err, auditerrors.ErrLogNotFound):
		writeError(w, http.StatusNotFound, "NOT_FOUND", err.Error())
	default:
		s.logInternalError(err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}

func (s *Server) writeAccessDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, accesserrors.ErrInvalidRequest),
		errors.Is(err, accesserrors.ErrInvalidRole):
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, accesserrors.ErrForbidden):
		writeError(w, http.StatusForbidden, "FORBIDDEN", err.Error())
	case errors.Is(err, accesserrors.ErrUserNotFound):
		writeError(w, http.StatusNotFound, "NOT_FOUND", err.Error())
	default:
		s.logInternalError(err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}

func (s *Server) logInternalError(err error) {
	s.logger.Error("request failed",
		"event", "http_request_failed",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"error", err.Error(),
	)
}

func audittrailListQuery(query url.Values) audithttpadapter.ListQuery {
	return audithttpadapter.ListQuery{
		UserID:       query.Get("user_id"),
		Action:       query.Get("action"),
		ResourceType: query.Get("resource_type"),
		ResourceID:   query.Get("resource_id"),
		StartDate:    query.Get("start_date"),
		EndDate:      query.Get("end_date"),
		Page:         query.Get("page"),
		Limit:        query.Get("limit"),
	}
}

func writeError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, audithttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
