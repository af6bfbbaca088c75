package pipeline

import (
	"context"

	relay "github.com/casualjim/relay"
	"github.com/casualjim/relay/events"
)

// The InterceptX methods below are called by features during installation.
// Each wraps the supplied handler in the liveness/predicate guard and sets
// the feature's slot for that event type. Setting a slot twice for the same
// feature replaces the handler; it never accumulates.

func (p *Pipeline) InterceptAgentStarting(ctx context.Context, ref Ref, h Handler[events.AgentStarting]) error {
	return p.lock.WithWriteLock(ctx, func(context.Context) error {
		getOrPut(p.agentTable, ref.key, newAgentHandlers).agentStarting = guard(p.features, ref, h)
		return nil
	})
}

func (p *Pipeline) InterceptAgentCompleted(ctx context.Context, ref Ref, h Handler[events.AgentCompleted]) error {
	return p.lock.WithWriteLock(ctx, func(context.Context) error {
		getOrPut(p.agentTable, ref.key, newAgentHandlers).agentCompleted = guard(p.features, ref, h)
		return nil
	})
}

func (p *Pipeline) InterceptAgentExecutionFailed(ctx context.Context, ref Ref, h Handler[events.AgentExecutionFailed]) error {
	return p.lock.WithWriteLock(ctx, func(context.Context) error {
		getOrPut(p.agentTable, ref.key, newAgentHandlers).agentFailed = guard(p.features, ref, h)
		return nil
	})
}

func (p *Pipeline) InterceptAgentClosing(ctx context.Context, ref Ref, h Handler[events.AgentClosing]) error {
	return p.lock.WithWriteLock(ctx, func(context.Context) error {
		getOrPut(p.agentTable, ref.key, newAgentHandlers).agentClosing = guard(p.features, ref, h)
		return nil
	})
}

// InterceptEnvironmentTransforming registers a transformer in the
// environment fold. One transformer per feature; re-registering replaces
// it in place. The transformer passes the environment through unchanged
// once its feature is uninstalled.
func (p *Pipeline) InterceptEnvironmentTransforming(ctx context.Context, ref Ref, t relay.Transformer) error {
	wrapped := func(ctx context.Context, env relay.Environment) (relay.Environment, error) {
		impl, ok := p.features.Installed(ref.key)
		if !ok || !sameImpl(impl, ref.impl) {
			return env, nil
		}
		return t(ctx, env)
	}
	return p.lock.WithWriteLock(ctx, func(context.Context) error {
		p.transformers.Set(ref.key, wrapped)
		return nil
	})
}

func (p *Pipeline) InterceptStrategyStarting(ctx context.Context, ref Ref, h Handler[events.StrategyStarting]) error {
	return p.lock.WithWriteLock(ctx, func(context.Context) error {
		getOrPut(p.agentTable, ref.key, newAgentHandlers).strategyStarting = guard(p.features, ref, h)
		return nil
	})
}

func (p *Pipeline) InterceptStrategyCompleted(ctx context.Context, ref Ref, h Handler[events.StrategyCompleted]) error {
	return p.lock.WithWriteLock(ctx, func(context.Context) error {
		getOrPut(p.agentTable, ref.key, newAgentHandlers).strategyCompleted = guard(p.features, ref, h)
		return nil
	})
}

func (p *Pipeline) InterceptNodeExecutionStarting(ctx context.Context, ref Ref, h Handler[events.NodeExecutionStarting]) error {
	return p.lock.WithWriteLock(ctx, func(context.Context) error {
		getOrPut(p.nodeTable, ref.key, newNodeHandlers).nodeStarting = guard(p.features, ref, h)
		return nil
	})
}

func (p *Pipeline) InterceptNodeExecutionCompleted(ctx context.Context, ref Ref, h Handler[events.NodeExecutionCompleted]) error {
	return p.lock.WithWriteLock(ctx, func(context.Context) error {
		getOrPut(p.nodeTable, ref.key, newNodeHandlers).nodeCompleted = guard(p.features, ref, h)
		return nil
	})
}

func (p *Pipeline) InterceptNodeExecutionFailed(ctx context.Context, ref Ref, h Handler[events.NodeExecutionFailed]) error {
	return p.lock.WithWriteLock(ctx, func(context.Context) error {
		getOrPut(p.nodeTable, ref.key, newNodeHandlers).nodeFailed = guard(p.features, ref, h)
		return nil
	})
}

func (p *Pipeline) InterceptSubgraphExecutionStarting(ctx context.Context, ref Ref, h Handler[events.SubgraphExecutionStarting]) error {
	return p.lock.WithWriteLock(ctx, func(context.Context) error {
		getOrPut(p.nodeTable, ref.key, newNodeHandlers).subgraphStarting = guard(p.features, ref, h)
		return nil
	})
}

func (p *Pipeline) InterceptSubgraphExecutionCompleted(ctx context.Context, ref Ref, h Handler[events.SubgraphExecutionCompleted]) error {
	return p.lock.WithWriteLock(ctx, func(context.Context) error {
		getOrPut(p.nodeTable, ref.key, newNodeHandlers).subgraphCompleted = guard(p.features, ref, h)
		return nil
	})
}

func (p *Pipeline) InterceptSubgraphExecutionFailed(ctx context.Context, ref Ref, h Handler[events.SubgraphExecutionFailed]) error {
	return p.lock.WithWriteLock(ctx, func(context.Context) error {
		getOrPut(p.nodeTable, ref.key, newNodeHandlers).subgraphFailed = guard(p.features, ref, h)
		return nil
	})
}

func (p *Pipeline) InterceptLLMCallStarting(ctx context.Context, ref Ref, h Handler[events.LLMCallStarting]) error {
	return p.lock.WithWriteLock(ctx, func(context.Context) error {
		getOrPut(p.agentTable, ref.key, newAgentHandlers).llmCallStarting = guard(p.features, ref, h)
		return nil
	})
}

func (p *Pipeline) InterceptLLMCallCompleted(ctx context.Context, ref Ref, h Handler[events.LLMCallCompleted]) error {
	return p.lock.WithWriteLock(ctx, func(context.Context) error {
		getOrPut(p.agentTable, ref.key, newAgentHandlers).llmCallCompleted = guard(p.features, ref, h)
		return nil
	})
}

func (p *Pipeline) InterceptLLMStreamingStarting(ctx context.Context, ref Ref, h Handler[events.LLMStreamingStarting]) error {
	return p.lock.WithWriteLock(ctx, func(context.Context) error {
		getOrPut(p.agentTable, ref.key, newAgentHandlers).streamingStarting = guard(p.features, ref, h)
		return nil
	})
}

func (p *Pipeline) InterceptLLMStreamingFrameReceived(ctx context.Context, ref Ref, h Handler[events.LLMStreamingFrameReceived]) error {
	return p.lock.WithWriteLock(ctx, func(context.Context) error {
		getOrPut(p.agentTable, ref.key, newAgentHandlers).streamingFrame = guard(p.features, ref, h)
		return nil
	})
}

func (p *Pipeline) InterceptLLMStreamingFailed(ctx context.Context, ref Ref, h Handler[events.LLMStreamingFailed]) error {
	return p.lock.WithWriteLock(ctx, func(context.Context) error {
		getOrPut(p.agentTable, ref.key, newAgentHandlers).streamingFailed = guard(p.features, ref, h)
		return nil
	})
}

func (p *Pipeline) InterceptLLMStreamingCompleted(ctx context.Context, ref Ref, h Handler[events.LLMStreamingCompleted]) error {
	return p.lock.WithWriteLock(ctx, func(context.Context) error {
		getOrPut(p.agentTable, ref.key, newAgentHandlers).streamingCompleted = guard(p.features, ref, h)
		return nil
	})
}

func (p *Pipeline) InterceptToolCallStarting(ctx context.Context, ref Ref, h Handler[events.ToolCallStarting]) error {
	return p.lock.WithWriteLock(ctx, func(context.Context) error {
		getOrPut(p.agentTable, ref.key, newAgentHandlers).toolCallStarting = guard(p.features, ref, h)
		return nil
	})
}

func (p *Pipeline) InterceptToolValidationFailed(ctx context.Context, ref Ref, h Handler[events.ToolValidationFailed]) error {
	return p.lock.WithWriteLock(ctx, func(context.Context) error {
		getOrPut(p.agentTable, ref.key, newAgentHandlers).toolValidationFailed = guard(p.features, ref, h)
		return nil
	})
}

func (p *Pipeline) InterceptToolCallFailed(ctx context.Context, ref Ref, h Handler[events.ToolCallFailed]) error {
	return p.lock.WithWriteLock(ctx, func(context.Context) error {
		getOrPut(p.agentTable, ref.key, newAgentHandlers).toolCallFailed = guard(p.features, ref, h)
		return nil
	})
}

func (p *Pipeline) InterceptToolCallCompleted(ctx context.Context, ref Ref, h Handler[events.ToolCallCompleted]) error {
	return p.lock.WithWriteLock(ctx, func(context.Context) error {
		getOrPut(p.agentTable, ref.key, newAgentHandlers).toolCallCompleted = guard(p.features, ref, h)
		return nil
	})
}

// InterceptBeforeLLMCall registers h for the model-call starting event.
//
// Deprecated: use InterceptLLMCallStarting.
func (p *Pipeline) InterceptBeforeLLMCall(ctx context.Context, ref Ref, h Handler[events.LLMCallStarting]) error {
	return p.InterceptLLMCallStarting(ctx, ref, h)
}

// InterceptAfterLLMCall registers h for the model-call completed event.
//
// Deprecated: use InterceptLLMCallCompleted.
func (p *Pipeline) InterceptAfterLLMCall(ctx context.Context, ref Ref, h Handler[events.LLMCallCompleted]) error {
	return p.InterceptLLMCallCompleted(ctx, ref, h)
}
