package pipeline

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/casualjim/relay/events"
	"github.com/casualjim/relay/feature"
)

func TestGetOrPut(t *testing.T) {
	table := orderedmap.New[string, *agentHandlers]()

	a := getOrPut(table, "a", newAgentHandlers)
	require.NotNil(t, a)
	assert.Same(t, a, getOrPut(table, "a", newAgentHandlers), "existing record is reused")

	getOrPut(table, "b", newAgentHandlers)
	assert.Equal(t, 2, table.Len())
	assert.Equal(t, "a", table.Oldest().Key, "first registration stays first")
}

func TestNewRecordsHaveNoopSlots(t *testing.T) {
	ctx := context.Background()

	rec := newAgentHandlers()
	require.NoError(t, rec.toolCallStarting(ctx, events.ToolCallStarting{}))
	require.NoError(t, rec.agentStarting(ctx, events.AgentStarting{}))
	require.NoError(t, rec.streamingFrame(ctx, events.LLMStreamingFrameReceived{}))

	nrec := newNodeHandlers()
	require.NoError(t, nrec.nodeStarting(ctx, events.NodeExecutionStarting{}))
	require.NoError(t, nrec.subgraphFailed(ctx, events.SubgraphExecutionFailed{}))
}

func TestGuardLiveness(t *testing.T) {
	s := feature.NewStorage()
	key := feature.NewKey[*recorder]("tracing")
	impl := &recorder{}
	feature.Install(s, key, nil, impl)

	var fired int
	h := guard(s, RefFor(key, impl), func(context.Context, events.ToolCallStarting) error {
		fired++
		return nil
	})

	require.NoError(t, h(context.Background(), events.ToolCallStarting{Tool: "calculator"}))
	assert.Equal(t, 1, fired)

	// A different instance under the same key means this handler is stale.
	feature.Install(s, key, nil, &recorder{})
	require.NoError(t, h(context.Background(), events.ToolCallStarting{Tool: "calculator"}))
	assert.Equal(t, 1, fired, "stale handler must be a silent no-op")

	require.NoError(t, s.Uninstall(context.Background(), "tracing"))
	require.NoError(t, h(context.Background(), events.ToolCallStarting{Tool: "calculator"}))
	assert.Equal(t, 1, fired)
}

func TestGuardPredicate(t *testing.T) {
	s := feature.NewStorage()
	key := feature.NewKey[*recorder]("picky")
	impl := &recorder{}
	feature.Install(s, key, nil, impl)

	ref := RefFor(key, impl).When(func(ev events.Event) bool {
		tc, ok := ev.(events.ToolCallStarting)
		return ok && tc.Tool == "calculator"
	})

	var fired int
	h := guard(s, ref, func(context.Context, events.ToolCallStarting) error {
		fired++
		return nil
	})

	require.NoError(t, h(context.Background(), events.ToolCallStarting{Tool: "search"}))
	assert.Zero(t, fired)
	require.NoError(t, h(context.Background(), events.ToolCallStarting{Tool: "calculator"}))
	assert.Equal(t, 1, fired)
}

func TestSameImpl(t *testing.T) {
	a := &recorder{}
	b := &recorder{}

	assert.True(t, sameImpl(a, a))
	assert.False(t, sameImpl(a, b))
	assert.False(t, sameImpl(a, "not even close"))
	assert.True(t, sameImpl(nil, nil))
	assert.False(t, sameImpl(a, nil))

	// Uncomparable implementations never match, by design.
	f := func() {}
	assert.False(t, sameImpl(f, f))
}
