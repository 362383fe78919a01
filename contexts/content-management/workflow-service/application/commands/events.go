package commands

import (
	"encoding/json"
	"time"

	"vellum/contexts/content-management/workflow-service/ports"
)

func newWorkflowEnvelope(
	eventID string,
	eventType string,
	contentID string,
	occurredAt time.Time,
	data map[string]any,
) (ports.EventEnvelope, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return ports.EventEnvelope{}, err
	}
	return ports.EventEnvelope{
		EventID:          eventID,
		EventType:        eventType,
		OccurredAt:       occurredAt.UTC(),
		SourceService:    "workflow-service",
		TraceID:          eventID,
		SchemaVersion:    1,
		PartitionKeyPath: "content_id",
		PartitionKey:     contentID,
		Data:             payload,
	}, nil
}
