package httptransport

// ErrorResponse is the wire form of every error surfaced to clients.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type SubmitRequest struct {
	ContentID string `json:"content_id"`
	Comments  string `json:"comments,omitempty"`
}

type WorkflowActionRequest struct {
	WorkflowInstanceID string `json:"workflow_instance_id"`
	Comments           string `json:"comments,omitempty"`
}

type ScheduleRequest struct {
	ContentID   string `json:"content_id"`
	PublishAt   string `json:"publish_at"`
	UnpublishAt string `json:"unpublish_at,omitempty"`
}

type UnpublishRequest struct {
	ContentID string `json:"content_id"`
}

type WorkflowInstancePayload struct {
	ID          string `json:"id"`
	ContentID   string `json:"content_id"`
	CurrentStep string `json:"current_step"`
	Status      string `json:"status"`
	InitiatedBy string `json:"initiated_by"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

type WorkflowStepPayload struct {
	ID          string `json:"id"`
	StepName    string `json:"step_name"`
	Status      string `json:"status"`
	Comments    string `json:"comments,omitempty"`
	CompletedBy string `json:"completed_by,omitempty"`
	CompletedAt string `json:"completed_at,omitempty"`
	CreatedAt   string `json:"created_at"`
}

type SubmitResponse struct {
	Message          string                  `json:"message"`
	WorkflowInstance WorkflowInstancePayload `json:"workflow_instance"`
}

type ActionResponse struct {
	Message string `json:"message"`
}

type SchedulePayload struct {
	ContentID   string `json:"content_id"`
	Status      string `json:"status"`
	PublishAt   string `json:"publish_at,omitempty"`
	UnpublishAt string `json:"unpublish_at,omitempty"`
}

type ScheduleResponse struct {
	Message string          `json:"message"`
	Data    SchedulePayload `json:"data"`
}

type WorkflowResponse struct {
	Instance WorkflowInstancePayload `json:"instance"`
	Steps    []WorkflowStepPayload   `json:"steps"`
}
