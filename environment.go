package relay

import (
	"context"
	"maps"
	"slices"

	json "github.com/goccy/go-json"

	"github.com/casualjim/relay/tool"
)

// ContextVars is the key-value store of variables an agent run is seeded
// with. Values must be JSON-serializable; they end up in rendered
// instructions and exported events.
//
// ContextVars is a plain map and not safe for concurrent mutation. The
// pipeline only ever hands copies around (see Environment.Clone), so
// features never observe each other's in-place edits.
type ContextVars map[string]any

// String returns the JSON rendering of the variables, or the empty string
// if marshaling fails.
func (cv ContextVars) String() string {
	data, err := json.Marshal(cv)
	if err != nil {
		return ""
	}
	return string(data)
}

// Environment is everything an agent run starts with: its context variables
// and the tools it may call. Features registered for environment
// transformation receive the environment produced by their predecessor and
// return a possibly amended one; the final fold result is what the agent
// actually runs with.
type Environment struct {
	Vars  ContextVars       `json:"vars,omitempty"`
	Tools []tool.Descriptor `json:"tools,omitempty"`
}

// Transformer amends an environment before a run starts. Transformers run
// in registration order and each sees the previous transformer's output.
type Transformer func(ctx context.Context, env Environment) (Environment, error)

// Clone returns a copy whose map and slice are independent of the receiver,
// so a transformer can amend it without aliasing its predecessor's value.
func (e Environment) Clone() Environment {
	out := Environment{Tools: slices.Clone(e.Tools)}
	if e.Vars != nil {
		out.Vars = maps.Clone(e.Vars)
	}
	return out
}

// WithVar returns a clone with the variable set.
func (e Environment) WithVar(key string, value any) Environment {
	out := e.Clone()
	if out.Vars == nil {
		out.Vars = ContextVars{}
	}
	out.Vars[key] = value
	return out
}

// WithTools returns a clone with the descriptors appended.
func (e Environment) WithTools(tools ...tool.Descriptor) Environment {
	out := e.Clone()
	out.Tools = append(out.Tools, tools...)
	return out
}
