package events

// NodeExecutionStarting is raised before a strategy node runs.
type NodeExecutionStarting struct {
	Meta
	Node  string `json:"node"`
	Input any    `json:"input,omitempty"`
}

func (NodeExecutionStarting) EventType() Type { return TypeNodeExecutionStarting }

// NodeExecutionCompleted is raised after a node runs to completion.
type NodeExecutionCompleted struct {
	Meta
	Node   string `json:"node"`
	Input  any    `json:"input,omitempty"`
	Output any    `json:"output,omitempty"`
}

func (NodeExecutionCompleted) EventType() Type { return TypeNodeExecutionCompleted }

// NodeExecutionFailed is raised when a node returns an error.
type NodeExecutionFailed struct {
	Meta
	Node string `json:"node"`
	Err  error  `json:"-"`
}

func (NodeExecutionFailed) EventType() Type { return TypeNodeExecutionFailed }

func (e NodeExecutionFailed) MarshalJSON() ([]byte, error) {
	type alias NodeExecutionFailed
	return marshalWithError(alias(e), e.Err)
}

// SubgraphExecutionStarting is raised before a nested subgraph runs.
type SubgraphExecutionStarting struct {
	Meta
	Subgraph string `json:"subgraph"`
	Input    any    `json:"input,omitempty"`
}

func (SubgraphExecutionStarting) EventType() Type { return TypeSubgraphExecutionStarting }

// SubgraphExecutionCompleted is raised after a subgraph runs to completion.
type SubgraphExecutionCompleted struct {
	Meta
	Subgraph string `json:"subgraph"`
	Input    any    `json:"input,omitempty"`
	Output   any    `json:"output,omitempty"`
}

func (SubgraphExecutionCompleted) EventType() Type { return TypeSubgraphExecutionCompleted }

// SubgraphExecutionFailed is raised when a subgraph aborts with an error.
type SubgraphExecutionFailed struct {
	Meta
	Subgraph string `json:"subgraph"`
	Err      error  `json:"-"`
}

func (SubgraphExecutionFailed) EventType() Type { return TypeSubgraphExecutionFailed }

func (e SubgraphExecutionFailed) MarshalJSON() ([]byte, error) {
	type alias SubgraphExecutionFailed
	return marshalWithError(alias(e), e.Err)
}
