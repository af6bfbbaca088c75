package tracing

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/go-openapi/strfmt"
	"github.com/google/uuid"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/casualjim/relay/events"
	"github.com/casualjim/relay/pkg/slogx"
)

// Tracer is the installed implementation. It keeps spans open between a
// starting event and its completion and hands finished spans to the
// exporter.
type Tracer struct {
	exporter Exporter
	extract  []string
	redact   []string
	log      *slog.Logger

	mu   sync.Mutex
	open map[uuid.UUID]Span
}

func newTracer(cfg *Config, log *slog.Logger) *Tracer {
	return &Tracer{
		exporter: cfg.Exporter,
		extract:  cfg.ArgumentPaths,
		redact:   cfg.RedactPaths,
		log:      log,
		open:     map[uuid.UUID]Span{},
	}
}

// begin opens a span for the event group in m. Opening an already-open
// group replaces the earlier span; groups are unique per operation so this
// only happens when an emitter reuses a group ID.
func (t *Tracer) begin(m events.Meta, kind, name string, attrs map[string]any) {
	span := Span{
		SpanID:     m.GroupID,
		RunID:      m.RunID,
		ParentID:   m.ParentID,
		Path:       m.Path,
		Kind:       kind,
		Name:       name,
		StartedAt:  m.Timestamp,
		Attributes: attrs,
	}

	t.mu.Lock()
	t.open[m.GroupID] = span
	t.mu.Unlock()
}

// annotate merges attrs into the open span for m's group, if any.
func (t *Tracer) annotate(m events.Meta, attrs map[string]any) {
	t.mu.Lock()
	defer t.mu.Unlock()

	span, ok := t.open[m.GroupID]
	if !ok {
		return
	}
	if span.Attributes == nil {
		span.Attributes = map[string]any{}
	}
	for k, v := range attrs {
		span.Attributes[k] = v
	}
	t.open[m.GroupID] = span
}

// count increments a numeric attribute on the open span for m's group.
func (t *Tracer) count(m events.Meta, key string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	span, ok := t.open[m.GroupID]
	if !ok {
		return
	}
	if span.Attributes == nil {
		span.Attributes = map[string]any{}
	}
	n, _ := span.Attributes[key].(int)
	span.Attributes[key] = n + 1
	t.open[m.GroupID] = span
}

// end closes the span for m's group and exports it. A completion without a
// matching start still produces a span, with zero duration, so exporters
// never miss failures. Export errors propagate to the dispatching caller.
func (t *Tracer) end(ctx context.Context, m events.Meta, kind, name string, opErr error) error {
	t.mu.Lock()
	span, ok := t.open[m.GroupID]
	if ok {
		delete(t.open, m.GroupID)
	} else {
		span = Span{
			SpanID:    m.GroupID,
			RunID:     m.RunID,
			ParentID:  m.ParentID,
			Path:      m.Path,
			Kind:      kind,
			Name:      name,
			StartedAt: m.Timestamp,
		}
	}
	t.mu.Unlock()

	span.EndedAt = m.Timestamp
	span.Status = StatusOK
	if opErr != nil {
		span.Status = StatusError
		span.Error = opErr.Error()
	}

	t.log.DebugContext(ctx, "span finished",
		slogx.Stringer("span_id", span.SpanID),
		slog.String("kind", span.Kind),
		slog.String("status", span.Status),
	)
	return t.exporter.Export(ctx, span)
}

// toolAttributes builds the attribute set recorded on a tool span. The raw
// argument payload is stored after redaction; extracted paths become
// individual attributes read from the unredacted payload.
func (t *Tracer) toolAttributes(callID, arguments string) map[string]any {
	attrs := map[string]any{}
	if callID != "" {
		attrs["tool.call_id"] = callID
	}

	recorded := arguments
	for _, path := range t.redact {
		if scrubbed, err := sjson.Delete(recorded, path); err == nil {
			recorded = scrubbed
		}
	}
	if recorded != "" {
		attrs["tool.arguments"] = recorded
	}

	for _, path := range t.extract {
		if v := gjson.Get(arguments, path); v.Exists() {
			attrs["tool.arg."+path] = v.Value()
		}
	}
	return attrs
}

// Flush exports nothing by itself but drains a buffering exporter.
func (t *Tracer) Flush(ctx context.Context) error {
	if f, ok := t.exporter.(interface{ Flush(context.Context) error }); ok {
		return f.Flush(ctx)
	}
	return nil
}

// Close finishes any spans still open, marking them with an error status,
// then closes the exporter when it supports closing.
func (t *Tracer) Close(ctx context.Context) error {
	t.mu.Lock()
	orphans := make([]Span, 0, len(t.open))
	for _, span := range t.open {
		orphans = append(orphans, span)
	}
	t.open = map[uuid.UUID]Span{}
	t.mu.Unlock()

	now := strfmt.DateTime(time.Now().UTC())
	for _, span := range orphans {
		span.EndedAt = now
		span.Status = StatusError
		span.Error = "span still open at shutdown"
		if err := t.exporter.Export(ctx, span); err != nil {
			return err
		}
	}

	if c, ok := t.exporter.(interface{ Close(context.Context) error }); ok {
		return c.Close(ctx)
	}
	return nil
}
