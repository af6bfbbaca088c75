package events

import (
	"time"

	"github.com/go-openapi/strfmt"
	"github.com/google/uuid"
)

// Type identifies one lifecycle event. The set of values below is the entire
// taxonomy; there is no runtime registration of new event types.
type Type string

const (
	TypeAgentStarting                Type = "agent.starting"
	TypeAgentCompleted               Type = "agent.completed"
	TypeAgentExecutionFailed         Type = "agent.execution_failed"
	TypeAgentClosing                 Type = "agent.closing"
	TypeAgentEnvironmentTransforming Type = "agent.environment_transforming"

	TypeStrategyStarting  Type = "strategy.starting"
	TypeStrategyCompleted Type = "strategy.completed"

	TypeNodeExecutionStarting  Type = "node.execution_starting"
	TypeNodeExecutionCompleted Type = "node.execution_completed"
	TypeNodeExecutionFailed    Type = "node.execution_failed"

	TypeSubgraphExecutionStarting  Type = "subgraph.execution_starting"
	TypeSubgraphExecutionCompleted Type = "subgraph.execution_completed"
	TypeSubgraphExecutionFailed    Type = "subgraph.execution_failed"

	TypeLLMCallStarting  Type = "llm.call_starting"
	TypeLLMCallCompleted Type = "llm.call_completed"

	TypeLLMStreamingStarting      Type = "llm.streaming_starting"
	TypeLLMStreamingFrameReceived Type = "llm.streaming_frame_received"
	TypeLLMStreamingFailed        Type = "llm.streaming_failed"
	TypeLLMStreamingCompleted     Type = "llm.streaming_completed"

	TypeToolCallStarting     Type = "tool.call_starting"
	TypeToolValidationFailed Type = "tool.validation_failed"
	TypeToolCallFailed       Type = "tool.call_failed"
	TypeToolCallCompleted    Type = "tool.call_completed"
)

// Event is implemented by every context type in this package.
type Event interface {
	// EventType returns the lifecycle event this context describes.
	EventType() Type
	// Header returns the common metadata shared by every event.
	Header() Meta
}

// RunInfo locates an event within an agent run. ParentID names the node or
// subgraph that triggered the current operation, and Path is the chain of
// subgraph/node names from the strategy root down to it.
type RunInfo struct {
	RunID    uuid.UUID `json:"run_id"`
	ParentID string    `json:"parent_id,omitempty"`
	Path     []string  `json:"path,omitempty"`
}

// Meta is the header shared by all event contexts. GroupID is the same for
// every event raised by one logical operation, so starting/completed/failed
// triples can be correlated by consumers.
type Meta struct {
	GroupID   uuid.UUID       `json:"group_id"`
	RunID     uuid.UUID       `json:"run_id"`
	ParentID  string          `json:"parent_id,omitempty"`
	Path      []string        `json:"path,omitempty"`
	Timestamp strfmt.DateTime `json:"timestamp"`
}

// NewMeta stamps a header for an event belonging to the operation identified
// by groupID, occurring within run. The timestamp is taken here, at
// construction time, not at handler-invocation time.
func NewMeta(groupID uuid.UUID, run RunInfo) Meta {
	return Meta{
		GroupID:   groupID,
		RunID:     run.RunID,
		ParentID:  run.ParentID,
		Path:      run.Path,
		Timestamp: strfmt.DateTime(time.Now().UTC()),
	}
}

// Header implements Event for every context embedding Meta.
func (m Meta) Header() Meta { return m }
