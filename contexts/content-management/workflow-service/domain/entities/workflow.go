package entities

import "time"

// ContentStatus mirrors the lifecycle of a content item as the workflow core
// sees it. Published and Unpublished cycle back only through explicit
// publish/unpublish/schedule actions.
type ContentStatus string

const (
	StatusDraft       ContentStatus = "Draft"
	StatusInReview    ContentStatus = "InReview"
	StatusApproved    ContentStatus = "Approved"
	StatusPublished   ContentStatus = "Published"
	StatusUnpublished ContentStatus = "Unpublished"
)

type WorkflowStatus string

const (
	WorkflowActive    WorkflowStatus = "Active"
	WorkflowCompleted WorkflowStatus = "Completed"
	WorkflowCancelled WorkflowStatus = "Cancelled"
)

type StepStatus string

const (
	StepPending    StepStatus = "Pending"
	StepInProgress StepStatus = "InProgress"
	StepCompleted  StepStatus = "Completed"
	StepSkipped    StepStatus = "Skipped"
)

const (
	StepReview         = "review"
	StepRequestChanges = "request_changes"
	StepApprove        = "approve"
	StepApproved       = "approved"
)

// ContentRef is the workflow core's read model of a content item. It carries
// only the fields transitions inspect or mutate.
type ContentRef struct {
	ContentID   string
	Title       string
	Status      ContentStatus
	AuthorID    string
	PublishAt   *time.Time
	UnpublishAt *time.Time
	UpdatedAt   time.Time
}

// WorkflowInstance tracks one pass of a content item through review. At most
// one Active instance exists per content item.
type WorkflowInstance struct {
	InstanceID  string         `json:"id"`
	ContentID   string         `json:"content_id"`
	CurrentStep string         `json:"current_step"`
	Status      WorkflowStatus `json:"status"`
	InitiatedBy string         `json:"initiated_by"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

type WorkflowStep struct {
	StepID      string     `json:"id"`
	InstanceID  string     `json:"workflow_instance_id"`
	StepName    string     `json:"step_name"`
	Status      StepStatus `json:"status"`
	Comments    string     `json:"comments,omitempty"`
	CompletedBy string     `json:"completed_by,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// WorkflowApproval is recorded only on the approve transition.
type WorkflowApproval struct {
	ApprovalID string    `json:"id"`
	StepID     string    `json:"workflow_step_id"`
	ApprovedBy string    `json:"approved_by"`
	Approved   bool      `json:"approved"`
	Comments   string    `json:"comments,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
