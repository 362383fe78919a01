package entities

import "time"

// Action is the closed set of audit verbs. Every successful state-changing
// operation emits exactly one entry with one of these.
type Action string

const (
	ActionCreate    Action = "CREATE"
	ActionUpdate    Action = "UPDATE"
	ActionDelete    Action = "DELETE"
	ActionSubmit    Action = "SUBMIT"
	ActionApprove   Action = "APPROVE"
	ActionReject    Action = "REJECT"
	ActionPublish   Action = "PUBLISH"
	ActionUnpublish Action = "UNPUBLISH"
	ActionUpload    Action = "UPLOAD"
)

func IsSupportedAction(value Action) bool {
	switch value {
	case ActionCreate, ActionUpdate, ActionDelete, ActionSubmit, ActionApprove,
		ActionReject, ActionPublish, ActionUnpublish, ActionUpload:
		return true
	default:
		return false
	}
}

// AuditLog is append-only: rows are never updated or deleted once written.
type AuditLog struct {
	LogID        string         `json:"id"`
	UserID       string         `json:"user_id"`
	Action       Action         `json:"action"`
	ResourceType string         `json:"resource_type"`
	ResourceID   string         `json:"resource_id"`
	ResourceName string         `json:"resource_name,omitempty"`
	Metadata     map[string]any `json:"metadata,omitempty"`
	IPAddress    string         `json:"ip_address,omitempty"`
	UserAgent    string         `json:"user_agent,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
}
