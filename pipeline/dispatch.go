package pipeline

import (
	"context"

	"github.com/google/uuid"
	orderedmap "github.com/wk8/go-ordered-map/v2"

	relay "github.com/casualjim/relay"
	"github.com/casualjim/relay/events"
	"github.com/casualjim/relay/messages"
	"github.com/casualjim/relay/tool"
)

// The OnX methods below are the surface the execution engine calls around
// actual execution. Each one takes the raw event parameters, never a
// pre-built context: the context is constructed here so it reflects exactly
// the values passed at the call site. The group id ties the starting,
// completed, and failed events of one operation together.
//
// The methods are independent of each other; nothing here enforces that a
// completed event follows its starting event. That ordering is the
// engine's, which raises them around the work it actually performs.

func dispatch[E events.Event, R any](ctx context.Context, p *Pipeline, table *orderedmap.OrderedMap[string, *R], slot func(*R) Handler[E], ev E) error {
	return p.lock.WithReadLock(ctx, func(ctx context.Context) error {
		return invoke(ctx, table, slot, ev)
	})
}

func (p *Pipeline) OnAgentStarting(ctx context.Context, group uuid.UUID, run events.RunInfo, agentID string) error {
	ev := events.AgentStarting{Meta: events.NewMeta(group, run), AgentID: agentID}
	return dispatch(ctx, p, p.agentTable, func(r *agentHandlers) Handler[events.AgentStarting] { return r.agentStarting }, ev)
}

func (p *Pipeline) OnAgentCompleted(ctx context.Context, group uuid.UUID, run events.RunInfo, agentID, result string) error {
	ev := events.AgentCompleted{Meta: events.NewMeta(group, run), AgentID: agentID, Result: result}
	return dispatch(ctx, p, p.agentTable, func(r *agentHandlers) Handler[events.AgentCompleted] { return r.agentCompleted }, ev)
}

func (p *Pipeline) OnAgentExecutionFailed(ctx context.Context, group uuid.UUID, run events.RunInfo, agentID string, cause error) error {
	ev := events.AgentExecutionFailed{Meta: events.NewMeta(group, run), AgentID: agentID, Err: cause}
	return dispatch(ctx, p, p.agentTable, func(r *agentHandlers) Handler[events.AgentExecutionFailed] { return r.agentFailed }, ev)
}

func (p *Pipeline) OnAgentClosing(ctx context.Context, group uuid.UUID, run events.RunInfo, agentID string) error {
	ev := events.AgentClosing{Meta: events.NewMeta(group, run), AgentID: agentID}
	return dispatch(ctx, p, p.agentTable, func(r *agentHandlers) Handler[events.AgentClosing] { return r.agentClosing }, ev)
}

// OnAgentEnvironmentTransforming folds env through every registered
// transformer in registration order and returns the result the agent
// should actually run with. This is the one dispatch point that
// accumulates rather than broadcasts: transformer B sees the environment
// transformer A produced.
func (p *Pipeline) OnAgentEnvironmentTransforming(ctx context.Context, env relay.Environment) (relay.Environment, error) {
	err := p.lock.WithReadLock(ctx, func(ctx context.Context) error {
		for pair := p.transformers.Oldest(); pair != nil; pair = pair.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			next, err := pair.Value(ctx, env)
			if err != nil {
				return err
			}
			env = next
		}
		return nil
	})
	return env, err
}

func (p *Pipeline) OnStrategyStarting(ctx context.Context, group uuid.UUID, run events.RunInfo, strategy string) error {
	ev := events.StrategyStarting{Meta: events.NewMeta(group, run), Strategy: strategy}
	return dispatch(ctx, p, p.agentTable, func(r *agentHandlers) Handler[events.StrategyStarting] { return r.strategyStarting }, ev)
}

func (p *Pipeline) OnStrategyCompleted(ctx context.Context, group uuid.UUID, run events.RunInfo, strategy, result string) error {
	ev := events.StrategyCompleted{Meta: events.NewMeta(group, run), Strategy: strategy, Result: result}
	return dispatch(ctx, p, p.agentTable, func(r *agentHandlers) Handler[events.StrategyCompleted] { return r.strategyCompleted }, ev)
}

func (p *Pipeline) OnNodeExecutionStarting(ctx context.Context, group uuid.UUID, run events.RunInfo, node string, input any) error {
	ev := events.NodeExecutionStarting{Meta: events.NewMeta(group, run), Node: node, Input: input}
	return dispatch(ctx, p, p.nodeTable, func(r *nodeHandlers) Handler[events.NodeExecutionStarting] { return r.nodeStarting }, ev)
}

func (p *Pipeline) OnNodeExecutionCompleted(ctx context.Context, group uuid.UUID, run events.RunInfo, node string, input, output any) error {
	ev := events.NodeExecutionCompleted{Meta: events.NewMeta(group, run), Node: node, Input: input, Output: output}
	return dispatch(ctx, p, p.nodeTable, func(r *nodeHandlers) Handler[events.NodeExecutionCompleted] { return r.nodeCompleted }, ev)
}

func (p *Pipeline) OnNodeExecutionFailed(ctx context.Context, group uuid.UUID, run events.RunInfo, node string, cause error) error {
	ev := events.NodeExecutionFailed{Meta: events.NewMeta(group, run), Node: node, Err: cause}
	return dispatch(ctx, p, p.nodeTable, func(r *nodeHandlers) Handler[events.NodeExecutionFailed] { return r.nodeFailed }, ev)
}

func (p *Pipeline) OnSubgraphExecutionStarting(ctx context.Context, group uuid.UUID, run events.RunInfo, subgraph string, input any) error {
	ev := events.SubgraphExecutionStarting{Meta: events.NewMeta(group, run), Subgraph: subgraph, Input: input}
	return dispatch(ctx, p, p.nodeTable, func(r *nodeHandlers) Handler[events.SubgraphExecutionStarting] { return r.subgraphStarting }, ev)
}

func (p *Pipeline) OnSubgraphExecutionCompleted(ctx context.Context, group uuid.UUID, run events.RunInfo, subgraph string, input, output any) error {
	ev := events.SubgraphExecutionCompleted{Meta: events.NewMeta(group, run), Subgraph: subgraph, Input: input, Output: output}
	return dispatch(ctx, p, p.nodeTable, func(r *nodeHandlers) Handler[events.SubgraphExecutionCompleted] { return r.subgraphCompleted }, ev)
}

func (p *Pipeline) OnSubgraphExecutionFailed(ctx context.Context, group uuid.UUID, run events.RunInfo, subgraph string, cause error) error {
	ev := events.SubgraphExecutionFailed{Meta: events.NewMeta(group, run), Subgraph: subgraph, Err: cause}
	return dispatch(ctx, p, p.nodeTable, func(r *nodeHandlers) Handler[events.SubgraphExecutionFailed] { return r.subgraphFailed }, ev)
}

func (p *Pipeline) OnLLMCallStarting(ctx context.Context, group uuid.UUID, run events.RunInfo, prompt messages.Prompt, tools []tool.Descriptor) error {
	ev := events.LLMCallStarting{Meta: events.NewMeta(group, run), Prompt: prompt, Tools: tools}
	return dispatch(ctx, p, p.agentTable, func(r *agentHandlers) Handler[events.LLMCallStarting] { return r.llmCallStarting }, ev)
}

func (p *Pipeline) OnLLMCallCompleted(ctx context.Context, group uuid.UUID, run events.RunInfo, prompt messages.Prompt, responses []messages.Response) error {
	ev := events.LLMCallCompleted{Meta: events.NewMeta(group, run), Prompt: prompt, Responses: responses}
	return dispatch(ctx, p, p.agentTable, func(r *agentHandlers) Handler[events.LLMCallCompleted] { return r.llmCallCompleted }, ev)
}

func (p *Pipeline) OnLLMStreamingStarting(ctx context.Context, group uuid.UUID, run events.RunInfo, prompt messages.Prompt, tools []tool.Descriptor) error {
	ev := events.LLMStreamingStarting{Meta: events.NewMeta(group, run), Prompt: prompt, Tools: tools}
	return dispatch(ctx, p, p.agentTable, func(r *agentHandlers) Handler[events.LLMStreamingStarting] { return r.streamingStarting }, ev)
}

func (p *Pipeline) OnLLMStreamingFrameReceived(ctx context.Context, group uuid.UUID, run events.RunInfo, frame events.Frame) error {
	ev := events.LLMStreamingFrameReceived{Meta: events.NewMeta(group, run), Frame: frame}
	return dispatch(ctx, p, p.agentTable, func(r *agentHandlers) Handler[events.LLMStreamingFrameReceived] { return r.streamingFrame }, ev)
}

func (p *Pipeline) OnLLMStreamingFailed(ctx context.Context, group uuid.UUID, run events.RunInfo, cause error) error {
	ev := events.LLMStreamingFailed{Meta: events.NewMeta(group, run), Err: cause}
	return dispatch(ctx, p, p.agentTable, func(r *agentHandlers) Handler[events.LLMStreamingFailed] { return r.streamingFailed }, ev)
}

func (p *Pipeline) OnLLMStreamingCompleted(ctx context.Context, group uuid.UUID, run events.RunInfo, prompt messages.Prompt, tools []tool.Descriptor) error {
	ev := events.LLMStreamingCompleted{Meta: events.NewMeta(group, run), Prompt: prompt, Tools: tools}
	return dispatch(ctx, p, p.agentTable, func(r *agentHandlers) Handler[events.LLMStreamingCompleted] { return r.streamingCompleted }, ev)
}

func (p *Pipeline) OnToolCallStarting(ctx context.Context, group uuid.UUID, run events.RunInfo, toolName, callID, arguments string) error {
	ev := events.ToolCallStarting{Meta: events.NewMeta(group, run), Tool: toolName, CallID: callID, Arguments: arguments}
	return dispatch(ctx, p, p.agentTable, func(r *agentHandlers) Handler[events.ToolCallStarting] { return r.toolCallStarting }, ev)
}

func (p *Pipeline) OnToolValidationFailed(ctx context.Context, group uuid.UUID, run events.RunInfo, toolName, callID, arguments string, cause error) error {
	ev := events.ToolValidationFailed{Meta: events.NewMeta(group, run), Tool: toolName, CallID: callID, Arguments: arguments, Err: cause}
	return dispatch(ctx, p, p.agentTable, func(r *agentHandlers) Handler[events.ToolValidationFailed] { return r.toolValidationFailed }, ev)
}

func (p *Pipeline) OnToolCallFailed(ctx context.Context, group uuid.UUID, run events.RunInfo, toolName, callID, arguments string, cause error) error {
	ev := events.ToolCallFailed{Meta: events.NewMeta(group, run), Tool: toolName, CallID: callID, Arguments: arguments, Err: cause}
	return dispatch(ctx, p, p.agentTable, func(r *agentHandlers) Handler[events.ToolCallFailed] { return r.toolCallFailed }, ev)
}

func (p *Pipeline) OnToolCallCompleted(ctx context.Context, group uuid.UUID, run events.RunInfo, toolName, callID, arguments, result string) error {
	ev := events.ToolCallCompleted{Meta: events.NewMeta(group, run), Tool: toolName, CallID: callID, Arguments: arguments, Result: result}
	return dispatch(ctx, p, p.agentTable, func(r *agentHandlers) Handler[events.ToolCallCompleted] { return r.toolCallCompleted }, ev)
}
