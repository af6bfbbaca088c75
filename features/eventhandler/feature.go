package eventhandler

import (
	"context"

	relay "github.com/casualjim/relay"
	"github.com/casualjim/relay/events"
	"github.com/casualjim/relay/feature"
	"github.com/casualjim/relay/pipeline"
)

// Key is the feature's registry key.
var Key = feature.NewKey[*Handler]("event-handler")

// Handler is the installed implementation. It carries no state of its own;
// all behavior lives in the configured callbacks.
type Handler struct{}

// Config holds one optional callback per lifecycle event. Nil callbacks are
// not registered at all.
type Config struct {
	OnAgentStarting        pipeline.Handler[events.AgentStarting]
	OnAgentCompleted       pipeline.Handler[events.AgentCompleted]
	OnAgentExecutionFailed pipeline.Handler[events.AgentExecutionFailed]
	OnAgentClosing         pipeline.Handler[events.AgentClosing]

	// TransformEnvironment participates in the environment fold before a
	// run starts.
	TransformEnvironment relay.Transformer

	OnStrategyStarting  pipeline.Handler[events.StrategyStarting]
	OnStrategyCompleted pipeline.Handler[events.StrategyCompleted]

	OnNodeExecutionStarting  pipeline.Handler[events.NodeExecutionStarting]
	OnNodeExecutionCompleted pipeline.Handler[events.NodeExecutionCompleted]
	OnNodeExecutionFailed    pipeline.Handler[events.NodeExecutionFailed]

	OnSubgraphExecutionStarting  pipeline.Handler[events.SubgraphExecutionStarting]
	OnSubgraphExecutionCompleted pipeline.Handler[events.SubgraphExecutionCompleted]
	OnSubgraphExecutionFailed    pipeline.Handler[events.SubgraphExecutionFailed]

	OnLLMCallStarting  pipeline.Handler[events.LLMCallStarting]
	OnLLMCallCompleted pipeline.Handler[events.LLMCallCompleted]

	OnLLMStreamingStarting      pipeline.Handler[events.LLMStreamingStarting]
	OnLLMStreamingFrameReceived pipeline.Handler[events.LLMStreamingFrameReceived]
	OnLLMStreamingFailed        pipeline.Handler[events.LLMStreamingFailed]
	OnLLMStreamingCompleted     pipeline.Handler[events.LLMStreamingCompleted]

	OnToolCallStarting     pipeline.Handler[events.ToolCallStarting]
	OnToolValidationFailed pipeline.Handler[events.ToolValidationFailed]
	OnToolCallFailed       pipeline.Handler[events.ToolCallFailed]
	OnToolCallCompleted    pipeline.Handler[events.ToolCallCompleted]
}

// Feature installs the configured callbacks.
type Feature struct{}

var _ pipeline.Feature[Config, *Handler] = Feature{}

func (Feature) Key() feature.Key[*Handler] { return Key }

func (Feature) DefaultConfig() *Config { return &Config{} }

func (Feature) Install(ctx context.Context, cfg *Config, p *pipeline.Pipeline) (*Handler, error) {
	impl := &Handler{}
	ref := pipeline.RefFor(Key, impl)

	type registration func() error
	regs := []registration{}

	if cfg.OnAgentStarting != nil {
		regs = append(regs, func() error { return p.InterceptAgentStarting(ctx, ref, cfg.OnAgentStarting) })
	}
	if cfg.OnAgentCompleted != nil {
		regs = append(regs, func() error { return p.InterceptAgentCompleted(ctx, ref, cfg.OnAgentCompleted) })
	}
	if cfg.OnAgentExecutionFailed != nil {
		regs = append(regs, func() error { return p.InterceptAgentExecutionFailed(ctx, ref, cfg.OnAgentExecutionFailed) })
	}
	if cfg.OnAgentClosing != nil {
		regs = append(regs, func() error { return p.InterceptAgentClosing(ctx, ref, cfg.OnAgentClosing) })
	}
	if cfg.TransformEnvironment != nil {
		regs = append(regs, func() error { return p.InterceptEnvironmentTransforming(ctx, ref, cfg.TransformEnvironment) })
	}
	if cfg.OnStrategyStarting != nil {
		regs = append(regs, func() error { return p.InterceptStrategyStarting(ctx, ref, cfg.OnStrategyStarting) })
	}
	if cfg.OnStrategyCompleted != nil {
		regs = append(regs, func() error { return p.InterceptStrategyCompleted(ctx, ref, cfg.OnStrategyCompleted) })
	}
	if cfg.OnNodeExecutionStarting != nil {
		regs = append(regs, func() error { return p.InterceptNodeExecutionStarting(ctx, ref, cfg.OnNodeExecutionStarting) })
	}
	if cfg.OnNodeExecutionCompleted != nil {
		regs = append(regs, func() error { return p.InterceptNodeExecutionCompleted(ctx, ref, cfg.OnNodeExecutionCompleted) })
	}
	if cfg.OnNodeExecutionFailed != nil {
		regs = append(regs, func() error { return p.InterceptNodeExecutionFailed(ctx, ref, cfg.OnNodeExecutionFailed) })
	}
	if cfg.OnSubgraphExecutionStarting != nil {
		regs = append(regs, func() error { return p.InterceptSubgraphExecutionStarting(ctx, ref, cfg.OnSubgraphExecutionStarting) })
	}
	if cfg.OnSubgraphExecutionCompleted != nil {
		regs = append(regs, func() error { return p.InterceptSubgraphExecutionCompleted(ctx, ref, cfg.OnSubgraphExecutionCompleted) })
	}
	if cfg.OnSubgraphExecutionFailed != nil {
		regs = append(regs, func() error { return p.InterceptSubgraphExecutionFailed(ctx, ref, cfg.OnSubgraphExecutionFailed) })
	}
	if cfg.OnLLMCallStarting != nil {
		regs = append(regs, func() error { return p.InterceptLLMCallStarting(ctx, ref, cfg.OnLLMCallStarting) })
	}
	if cfg.OnLLMCallCompleted != nil {
		regs = append(regs, func() error { return p.InterceptLLMCallCompleted(ctx, ref, cfg.OnLLMCallCompleted) })
	}
	if cfg.OnLLMStreamingStarting != nil {
		regs = append(regs, func() error { return p.InterceptLLMStreamingStarting(ctx, ref, cfg.OnLLMStreamingStarting) })
	}
	if cfg.OnLLMStreamingFrameReceived != nil {
		regs = append(regs, func() error { return p.InterceptLLMStreamingFrameReceived(ctx, ref, cfg.OnLLMStreamingFrameReceived) })
	}
	if cfg.OnLLMStreamingFailed != nil {
		regs = append(regs, func() error { return p.InterceptLLMStreamingFailed(ctx, ref, cfg.OnLLMStreamingFailed) })
	}
	if cfg.OnLLMStreamingCompleted != nil {
		regs = append(regs, func() error { return p.InterceptLLMStreamingCompleted(ctx, ref, cfg.OnLLMStreamingCompleted) })
	}
	if cfg.OnToolCallStarting != nil {
		regs = append(regs, func() error { return p.InterceptToolCallStarting(ctx, ref, cfg.OnToolCallStarting) })
	}
	if cfg.OnToolValidationFailed != nil {
		regs = append(regs, func() error { return p.InterceptToolValidationFailed(ctx, ref, cfg.OnToolValidationFailed) })
	}
	if cfg.OnToolCallFailed != nil {
		regs = append(regs, func() error { return p.InterceptToolCallFailed(ctx, ref, cfg.OnToolCallFailed) })
	}
	if cfg.OnToolCallCompleted != nil {
		regs = append(regs, func() error { return p.InterceptToolCallCompleted(ctx, ref, cfg.OnToolCallCompleted) })
	}

	for _, register := range regs {
		if err := register(); err != nil {
			return nil, err
		}
	}
	return impl, nil
}
