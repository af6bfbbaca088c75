package tracing

import (
	"context"
	"log/slog"
	"os"

	"github.com/casualjim/relay/events"
	"github.com/casualjim/relay/feature"
	"github.com/casualjim/relay/pipeline"
)

// Key is the feature's registry key.
var Key = feature.NewKey[*Tracer]("tracing")

// Config controls what the tracer records and where spans go.
type Config struct {
	// Exporter receives finished spans. Defaults to JSON lines on stdout.
	Exporter Exporter

	// ArgumentPaths are JSON paths lifted out of tool-call arguments into
	// span attributes, e.g. "expression" or "query.filters.0".
	ArgumentPaths []string

	// RedactPaths are JSON paths removed from the recorded argument
	// payload before it is attached to the span.
	RedactPaths []string

	// Events limits tracing to events the predicate accepts. Nil traces
	// everything.
	Events func(events.Event) bool

	// Logger receives span-finished debug lines.
	Logger *slog.Logger
}

// Feature installs a Tracer on the pipeline.
type Feature struct{}

var _ pipeline.Feature[Config, *Tracer] = Feature{}

func (Feature) Key() feature.Key[*Tracer] { return Key }

func (Feature) DefaultConfig() *Config {
	return &Config{
		Exporter: NewLineExporter(os.Stdout),
		Logger:   slog.Default(),
	}
}

func (Feature) Install(ctx context.Context, cfg *Config, p *pipeline.Pipeline) (*Tracer, error) {
	if cfg.Exporter == nil {
		cfg.Exporter = NewLineExporter(os.Stdout)
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	t := newTracer(cfg, cfg.Logger)
	ref := pipeline.RefFor(Key, t)
	if cfg.Events != nil {
		ref = ref.When(cfg.Events)
	}

	regs := []func() error{
		func() error {
			return p.InterceptAgentStarting(ctx, ref, func(_ context.Context, ev events.AgentStarting) error {
				t.begin(ev.Meta, KindAgent, ev.AgentID, nil)
				return nil
			})
		},
		func() error {
			return p.InterceptAgentCompleted(ctx, ref, func(ctx context.Context, ev events.AgentCompleted) error {
				return t.end(ctx, ev.Meta, KindAgent, ev.AgentID, nil)
			})
		},
		func() error {
			return p.InterceptAgentExecutionFailed(ctx, ref, func(ctx context.Context, ev events.AgentExecutionFailed) error {
				return t.end(ctx, ev.Meta, KindAgent, ev.AgentID, ev.Err)
			})
		},
		func() error {
			return p.InterceptAgentClosing(ctx, ref, func(ctx context.Context, ev events.AgentClosing) error {
				return t.Flush(ctx)
			})
		},
		func() error {
			return p.InterceptStrategyStarting(ctx, ref, func(_ context.Context, ev events.StrategyStarting) error {
				t.begin(ev.Meta, KindStrategy, ev.Strategy, nil)
				return nil
			})
		},
		func() error {
			return p.InterceptStrategyCompleted(ctx, ref, func(ctx context.Context, ev events.StrategyCompleted) error {
				return t.end(ctx, ev.Meta, KindStrategy, ev.Strategy, nil)
			})
		},
		func() error {
			return p.InterceptNodeExecutionStarting(ctx, ref, func(_ context.Context, ev events.NodeExecutionStarting) error {
				t.begin(ev.Meta, KindNode, ev.Node, nil)
				return nil
			})
		},
		func() error {
			return p.InterceptNodeExecutionCompleted(ctx, ref, func(ctx context.Context, ev events.NodeExecutionCompleted) error {
				return t.end(ctx, ev.Meta, KindNode, ev.Node, nil)
			})
		},
		func() error {
			return p.InterceptNodeExecutionFailed(ctx, ref, func(ctx context.Context, ev events.NodeExecutionFailed) error {
				return t.end(ctx, ev.Meta, KindNode, ev.Node, ev.Err)
			})
		},
		func() error {
			return p.InterceptSubgraphExecutionStarting(ctx, ref, func(_ context.Context, ev events.SubgraphExecutionStarting) error {
				t.begin(ev.Meta, KindSubgraph, ev.Subgraph, nil)
				return nil
			})
		},
		func() error {
			return p.InterceptSubgraphExecutionCompleted(ctx, ref, func(ctx context.Context, ev events.SubgraphExecutionCompleted) error {
				return t.end(ctx, ev.Meta, KindSubgraph, ev.Subgraph, nil)
			})
		},
		func() error {
			return p.InterceptSubgraphExecutionFailed(ctx, ref, func(ctx context.Context, ev events.SubgraphExecutionFailed) error {
				return t.end(ctx, ev.Meta, KindSubgraph, ev.Subgraph, ev.Err)
			})
		},
		func() error {
			return p.InterceptLLMCallStarting(ctx, ref, func(_ context.Context, ev events.LLMCallStarting) error {
				t.begin(ev.Meta, KindLLM, ev.Prompt.Model, map[string]any{
					"llm.messages": len(ev.Prompt.Messages),
					"llm.tools":    len(ev.Tools),
				})
				return nil
			})
		},
		func() error {
			return p.InterceptLLMCallCompleted(ctx, ref, func(ctx context.Context, ev events.LLMCallCompleted) error {
				t.annotate(ev.Meta, map[string]any{"llm.responses": len(ev.Responses)})
				return t.end(ctx, ev.Meta, KindLLM, ev.Prompt.Model, nil)
			})
		},
		func() error {
			return p.InterceptLLMStreamingStarting(ctx, ref, func(_ context.Context, ev events.LLMStreamingStarting) error {
				t.begin(ev.Meta, KindStream, ev.Prompt.Model, nil)
				return nil
			})
		},
		func() error {
			return p.InterceptLLMStreamingFrameReceived(ctx, ref, func(_ context.Context, ev events.LLMStreamingFrameReceived) error {
				t.count(ev.Meta, "stream.frames")
				return nil
			})
		},
		func() error {
			return p.InterceptLLMStreamingFailed(ctx, ref, func(ctx context.Context, ev events.LLMStreamingFailed) error {
				return t.end(ctx, ev.Meta, KindStream, "", ev.Err)
			})
		},
		func() error {
			return p.InterceptLLMStreamingCompleted(ctx, ref, func(ctx context.Context, ev events.LLMStreamingCompleted) error {
				return t.end(ctx, ev.Meta, KindStream, ev.Prompt.Model, nil)
			})
		},
		func() error {
			return p.InterceptToolCallStarting(ctx, ref, func(_ context.Context, ev events.ToolCallStarting) error {
				t.begin(ev.Meta, KindTool, ev.Tool, t.toolAttributes(ev.CallID, ev.Arguments))
				return nil
			})
		},
		func() error {
			return p.InterceptToolValidationFailed(ctx, ref, func(ctx context.Context, ev events.ToolValidationFailed) error {
				return t.end(ctx, ev.Meta, KindTool, ev.Tool, ev.Err)
			})
		},
		func() error {
			return p.InterceptToolCallFailed(ctx, ref, func(ctx context.Context, ev events.ToolCallFailed) error {
				return t.end(ctx, ev.Meta, KindTool, ev.Tool, ev.Err)
			})
		},
		func() error {
			return p.InterceptToolCallCompleted(ctx, ref, func(ctx context.Context, ev events.ToolCallCompleted) error {
				t.annotate(ev.Meta, map[string]any{"tool.result": ev.Result})
				return t.end(ctx, ev.Meta, KindTool, ev.Tool, nil)
			})
		},
	}

	for _, register := range regs {
		if err := register(); err != nil {
			return nil, err
		}
	}
	return t, nil
}
