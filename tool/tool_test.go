package tool

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type calculatorParams struct {
	Expression string `json:"expression" jsonschema:"description=arithmetic expression to evaluate"`
	Precision  int    `json:"precision,omitempty"`
}

func TestFor(t *testing.T) {
	d := For[calculatorParams]("calculator", Description("evaluates arithmetic expressions"))

	assert.Equal(t, "calculator", d.Name)
	assert.Equal(t, "evaluates arithmetic expressions", d.Description)
	require.NotNil(t, d.Schema)
	assert.Empty(t, d.Schema.Version)

	_, ok := d.Schema.Properties.Get("expression")
	assert.True(t, ok, "reflected schema should expose the expression property")
	_, ok = d.Schema.Properties.Get("precision")
	assert.True(t, ok)
	assert.Contains(t, d.Schema.Required, "expression")
	assert.NotContains(t, d.Schema.Required, "precision")
}

func TestForWithoutOptions(t *testing.T) {
	d := For[struct{}]("noop")
	assert.Equal(t, "noop", d.Name)
	assert.Empty(t, d.Description)
	require.NotNil(t, d.Schema)
}
