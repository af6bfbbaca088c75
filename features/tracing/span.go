package tracing

import (
	"github.com/go-openapi/strfmt"
	"github.com/google/uuid"
)

// Span statuses.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// Span kinds, one per traced operation family.
const (
	KindAgent    = "agent"
	KindStrategy = "strategy"
	KindNode     = "node"
	KindSubgraph = "subgraph"
	KindLLM      = "llm"
	KindStream   = "llm.stream"
	KindTool     = "tool"
)

// Span is one completed operation. SpanID is the event group ID, so a span
// can be joined back to the raw events that produced it.
type Span struct {
	SpanID     uuid.UUID       `json:"span_id"`
	RunID      uuid.UUID       `json:"run_id"`
	ParentID   string          `json:"parent_id,omitempty"`
	Path       []string        `json:"path,omitempty"`
	Kind       string          `json:"kind"`
	Name       string          `json:"name,omitempty"`
	StartedAt  strfmt.DateTime `json:"started_at"`
	EndedAt    strfmt.DateTime `json:"ended_at"`
	Status     string          `json:"status"`
	Error      string          `json:"error,omitempty"`
	Attributes map[string]any  `json:"attributes,omitempty"`
}
