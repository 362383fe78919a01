package v1

import (
	"encoding/json"
	"time"
)

// Envelope is the canonical, versioned event envelope shared across vellum
// runtimes. This package is contract-only and must stay backward compatible.
type Envelope struct {
	EventID          string          `json:"event_id"`
	EventType        string          `json:"event_type"`
	OccurredAt       time.Time       `json:"occurred_at"`
	SourceService    string          `json:"source_service"`
	TraceID          string          `json:"trace_id"`
	SchemaVersion    int             `json:"schema_version"`
	PartitionKeyPath string          `json:"partition_key_path"`
	PartitionKey     string          `json:"partition_key"`
	Data             json.RawMessage `json:"data"`
}

// Event types emitted by the content workflow. Downstream consumers key off
// these values, so they are part of the published contract.
const (
	EventContentSubmitted        = "content.submitted"
	EventContentChangesRequested = "content.changes_requested"
	EventContentApproved         = "content.approved"
	EventContentPublished        = "content.published"
	EventContentUnpublished      = "content.unpublished"
)
