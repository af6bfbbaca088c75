package pipeline

import (
	"context"
	"reflect"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/casualjim/relay/events"
	"github.com/casualjim/relay/feature"
)

// Handler is a feature-supplied callback for one event type. Handlers may
// block on I/O; the dispatch loop awaits each before invoking the next.
type Handler[E events.Event] func(ctx context.Context, ev E) error

func noop[E events.Event](context.Context, E) error { return nil }

// nodeHandlers holds one slot per event type in the node/subgraph group.
// Slots default to no-ops so dispatch never needs a nil check.
type nodeHandlers struct {
	nodeStarting      Handler[events.NodeExecutionStarting]
	nodeCompleted     Handler[events.NodeExecutionCompleted]
	nodeFailed        Handler[events.NodeExecutionFailed]
	subgraphStarting  Handler[events.SubgraphExecutionStarting]
	subgraphCompleted Handler[events.SubgraphExecutionCompleted]
	subgraphFailed    Handler[events.SubgraphExecutionFailed]
}

func newNodeHandlers() *nodeHandlers {
	return &nodeHandlers{
		nodeStarting:      noop[events.NodeExecutionStarting],
		nodeCompleted:     noop[events.NodeExecutionCompleted],
		nodeFailed:        noop[events.NodeExecutionFailed],
		subgraphStarting:  noop[events.SubgraphExecutionStarting],
		subgraphCompleted: noop[events.SubgraphExecutionCompleted],
		subgraphFailed:    noop[events.SubgraphExecutionFailed],
	}
}

// agentHandlers holds one slot per event type in the agent, strategy, model
// call, streaming, and tool call group.
type agentHandlers struct {
	agentStarting  Handler[events.AgentStarting]
	agentCompleted Handler[events.AgentCompleted]
	agentFailed    Handler[events.AgentExecutionFailed]
	agentClosing   Handler[events.AgentClosing]

	strategyStarting  Handler[events.StrategyStarting]
	strategyCompleted Handler[events.StrategyCompleted]

	llmCallStarting  Handler[events.LLMCallStarting]
	llmCallCompleted Handler[events.LLMCallCompleted]

	streamingStarting  Handler[events.LLMStreamingStarting]
	streamingFrame     Handler[events.LLMStreamingFrameReceived]
	streamingFailed    Handler[events.LLMStreamingFailed]
	streamingCompleted Handler[events.LLMStreamingCompleted]

	toolCallStarting     Handler[events.ToolCallStarting]
	toolValidationFailed Handler[events.ToolValidationFailed]
	toolCallFailed       Handler[events.ToolCallFailed]
	toolCallCompleted    Handler[events.ToolCallCompleted]
}

func newAgentHandlers() *agentHandlers {
	return &agentHandlers{
		agentStarting:        noop[events.AgentStarting],
		agentCompleted:       noop[events.AgentCompleted],
		agentFailed:          noop[events.AgentExecutionFailed],
		agentClosing:         noop[events.AgentClosing],
		strategyStarting:     noop[events.StrategyStarting],
		strategyCompleted:    noop[events.StrategyCompleted],
		llmCallStarting:      noop[events.LLMCallStarting],
		llmCallCompleted:     noop[events.LLMCallCompleted],
		streamingStarting:    noop[events.LLMStreamingStarting],
		streamingFrame:       noop[events.LLMStreamingFrameReceived],
		streamingFailed:      noop[events.LLMStreamingFailed],
		streamingCompleted:   noop[events.LLMStreamingCompleted],
		toolCallStarting:     noop[events.ToolCallStarting],
		toolValidationFailed: noop[events.ToolValidationFailed],
		toolCallFailed:       noop[events.ToolCallFailed],
		toolCallCompleted:    noop[events.ToolCallCompleted],
	}
}

// getOrPut returns the record for key, creating one with no-op slots on
// first use. Creation order fixes the feature's position in every later
// dispatch.
func getOrPut[R any](table *orderedmap.OrderedMap[string, *R], key string, fresh func() *R) *R {
	if rec, ok := table.Get(key); ok {
		return rec
	}
	rec := fresh()
	table.Set(key, rec)
	return rec
}

// invoke runs the slot of every record in insertion order, sequentially,
// stopping on the first error and honoring cancellation between handlers.
// Callers hold the read lock.
func invoke[E events.Event, R any](ctx context.Context, table *orderedmap.OrderedMap[string, *R], slot func(*R) Handler[E], ev E) error {
	for pair := table.Oldest(); pair != nil; pair = pair.Next() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := slot(pair.Value)(ctx, ev); err != nil {
			return err
		}
	}
	return nil
}

// Ref identifies the feature on whose behalf a handler is registered: the
// key name, the implementation instance, and an optional predicate limiting
// which events the handler fires for.
type Ref struct {
	key       string
	impl      any
	condition func(events.Event) bool
}

// RefFor builds the Ref a feature passes to InterceptX calls during its
// installation.
func RefFor[T any](key feature.Key[T], impl T) Ref {
	return Ref{key: key.Name(), impl: impl}
}

// When returns a copy of the Ref whose handlers only fire for events the
// predicate accepts.
func (r Ref) When(condition func(events.Event) bool) Ref {
	r.condition = condition
	return r
}

// guard wraps h so it only fires while the storage still maps the key to
// this same implementation instance and the predicate, if any, passes.
// A failed check is a silent no-op; later handlers in the table still run.
func guard[E events.Event](s *feature.Storage, r Ref, h Handler[E]) Handler[E] {
	return func(ctx context.Context, ev E) error {
		impl, ok := s.Installed(r.key)
		if !ok || !sameImpl(impl, r.impl) {
			return nil
		}
		if r.condition != nil && !r.condition(ev) {
			return nil
		}
		return h(ctx, ev)
	}
}

// sameImpl reports whether a and b are the same installed instance.
// Uncomparable implementations (func or map types) never compare equal, so
// their handlers go dead on reinstall rather than firing for a replacement.
func sameImpl(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta := reflect.TypeOf(a)
	if ta != reflect.TypeOf(b) || !ta.Comparable() {
		return false
	}
	return a == b
}
