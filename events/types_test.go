package events

import (
	"errors"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/casualjim/relay/pkg/uuidx"
)

func TestNewMeta(t *testing.T) {
	run := RunInfo{
		RunID:    uuidx.New(),
		ParentID: "triage",
		Path:     []string{"root", "triage"},
	}
	group := uuidx.New()

	m := NewMeta(group, run)
	assert.Equal(t, group, m.GroupID)
	assert.Equal(t, run.RunID, m.RunID)
	assert.Equal(t, "triage", m.ParentID)
	assert.Equal(t, []string{"root", "triage"}, m.Path)
	assert.False(t, m.Timestamp.IsZero())
}

func TestGroupCorrelation(t *testing.T) {
	run := RunInfo{RunID: uuidx.New()}
	group := uuidx.New()

	starting := ToolCallStarting{Meta: NewMeta(group, run), Tool: "calculator"}
	completed := ToolCallCompleted{Meta: NewMeta(group, run), Tool: "calculator", Result: "4"}

	assert.Equal(t, starting.Header().GroupID, completed.Header().GroupID)
	assert.NotEqual(t, starting.EventType(), completed.EventType())
}

func TestFailureEventsMarshalError(t *testing.T) {
	run := RunInfo{RunID: uuidx.New()}
	boom := errors.New("tool exploded")

	ev := ToolCallFailed{
		Meta:      NewMeta(uuidx.New(), run),
		Tool:      "calculator",
		Arguments: `{"expression":"1/0"}`,
		Err:       boom,
	}

	b, err := json.Marshal(ev)
	require.NoError(t, err)

	assert.Equal(t, "tool exploded", gjson.GetBytes(b, "error").String())
	assert.Equal(t, "calculator", gjson.GetBytes(b, "tool").String())
	assert.Equal(t, ev.RunID.String(), gjson.GetBytes(b, "run_id").String())
}

func TestFailureEventsMarshalWithoutError(t *testing.T) {
	ev := NodeExecutionFailed{
		Meta: NewMeta(uuidx.New(), RunInfo{RunID: uuidx.New()}),
		Node: "classify",
	}

	b, err := json.Marshal(ev)
	require.NoError(t, err)
	assert.False(t, gjson.GetBytes(b, "error").Exists())
	assert.Equal(t, "classify", gjson.GetBytes(b, "node").String())
}

func TestEventTypesAreDistinct(t *testing.T) {
	evs := []Event{
		AgentStarting{}, AgentCompleted{}, AgentExecutionFailed{}, AgentClosing{},
		StrategyStarting{}, StrategyCompleted{},
		NodeExecutionStarting{}, NodeExecutionCompleted{}, NodeExecutionFailed{},
		SubgraphExecutionStarting{}, SubgraphExecutionCompleted{}, SubgraphExecutionFailed{},
		LLMCallStarting{}, LLMCallCompleted{},
		LLMStreamingStarting{}, LLMStreamingFrameReceived{}, LLMStreamingFailed{}, LLMStreamingCompleted{},
		ToolCallStarting{}, ToolValidationFailed{}, ToolCallFailed{}, ToolCallCompleted{},
	}

	seen := make(map[Type]struct{}, len(evs))
	for _, ev := range evs {
		_, dup := seen[ev.EventType()]
		assert.Falsef(t, dup, "duplicate event type %q", ev.EventType())
		seen[ev.EventType()] = struct{}{}
	}
}
