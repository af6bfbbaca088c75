package tool

import (
	"github.com/fogfish/opts"
	"github.com/invopop/jsonschema"
)

// Descriptor is the wire-agnostic description of one callable tool: its
// name, a human-readable description, and the JSON schema of its parameters.
type Descriptor struct {
	Name        string             `json:"name"`
	Description string             `json:"description,omitempty"`
	Schema      *jsonschema.Schema `json:"schema,omitempty"`
}

var reflector = jsonschema.Reflector{
	AllowAdditionalProperties: true,
	DoNotReference:            true,
}

// Option configures a Descriptor during construction.
type Option = opts.Option[Descriptor]

// Description sets the tool's description.
var Description = opts.ForName[Descriptor, string]("Description")

// For builds a Descriptor named name whose parameter schema is reflected
// from the struct type A. It panics if an option fails to apply, which only
// happens on programmer error.
func For[A any](name string, options ...Option) Descriptor {
	d := Descriptor{Name: name}
	if err := opts.Apply(&d, options); err != nil {
		panic(err)
	}

	var params A
	schema := reflector.Reflect(&params)
	schema.Version = ""
	d.Schema = schema
	return d
}
