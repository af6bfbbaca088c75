package events

// ToolCallStarting is raised before a tool executes. Arguments is the raw
// JSON argument payload as produced by the model.
type ToolCallStarting struct {
	Meta
	Tool      string `json:"tool"`
	CallID    string `json:"call_id,omitempty"`
	Arguments string `json:"arguments,omitempty"`
}

func (ToolCallStarting) EventType() Type { return TypeToolCallStarting }

// ToolValidationFailed is raised when the model-supplied arguments do not
// satisfy the tool's schema. The tool itself never runs.
type ToolValidationFailed struct {
	Meta
	Tool      string `json:"tool"`
	CallID    string `json:"call_id,omitempty"`
	Arguments string `json:"arguments,omitempty"`
	Err       error  `json:"-"`
}

func (ToolValidationFailed) EventType() Type { return TypeToolValidationFailed }

func (e ToolValidationFailed) MarshalJSON() ([]byte, error) {
	type alias ToolValidationFailed
	return marshalWithError(alias(e), e.Err)
}

// ToolCallFailed is raised when a tool executes and returns an error.
type ToolCallFailed struct {
	Meta
	Tool      string `json:"tool"`
	CallID    string `json:"call_id,omitempty"`
	Arguments string `json:"arguments,omitempty"`
	Err       error  `json:"-"`
}

func (ToolCallFailed) EventType() Type { return TypeToolCallFailed }

func (e ToolCallFailed) MarshalJSON() ([]byte, error) {
	type alias ToolCallFailed
	return marshalWithError(alias(e), e.Err)
}

// ToolCallCompleted is raised when a tool finishes successfully. Result is
// the serialized tool output handed back to the model.
type ToolCallCompleted struct {
	Meta
	Tool      string `json:"tool"`
	CallID    string `json:"call_id,omitempty"`
	Arguments string `json:"arguments,omitempty"`
	Result    string `json:"result,omitempty"`
}

func (ToolCallCompleted) EventType() Type { return TypeToolCallCompleted }
