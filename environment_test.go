package relay

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/casualjim/relay/tool"
)

func TestContextVarsString(t *testing.T) {
	vars := ContextVars{"user": "alice"}
	assert.JSONEq(t, `{"user":"alice"}`, vars.String())

	assert.Equal(t, "{}", ContextVars{}.String())
}

func TestEnvironmentClone(t *testing.T) {
	env := Environment{
		Vars:  ContextVars{"a": 1},
		Tools: []tool.Descriptor{{Name: "calculator"}},
	}

	clone := env.Clone()
	clone.Vars["b"] = 2
	clone.Tools[0].Name = "other"

	assert.NotContains(t, env.Vars, "b", "clone must not alias the original map")
	assert.Equal(t, "calculator", env.Tools[0].Name)
}

func TestEnvironmentWithVar(t *testing.T) {
	var empty Environment
	env := empty.WithVar("a", "one")
	assert.Equal(t, "one", env.Vars["a"])
	assert.Nil(t, empty.Vars, "receiver stays untouched")

	env2 := env.WithVar("b", "two")
	assert.Len(t, env2.Vars, 2)
	assert.Len(t, env.Vars, 1)
}

func TestEnvironmentWithTools(t *testing.T) {
	env := Environment{}.WithTools(tool.Descriptor{Name: "search"})
	env = env.WithTools(tool.Descriptor{Name: "calculator"})

	names := []string{env.Tools[0].Name, env.Tools[1].Name}
	assert.Equal(t, []string{"search", "calculator"}, names)
}
