package events

// AgentStarting is raised before an agent run begins executing its strategy.
type AgentStarting struct {
	Meta
	AgentID string `json:"agent_id"`
}

func (AgentStarting) EventType() Type { return TypeAgentStarting }

// AgentCompleted is raised after a run finishes successfully. Result holds
// the run's final output, if any.
type AgentCompleted struct {
	Meta
	AgentID string `json:"agent_id"`
	Result  string `json:"result,omitempty"`
}

func (AgentCompleted) EventType() Type { return TypeAgentCompleted }

// AgentExecutionFailed is raised when a run aborts with an error.
type AgentExecutionFailed struct {
	Meta
	AgentID string `json:"agent_id"`
	Err     error  `json:"-"`
}

func (AgentExecutionFailed) EventType() Type { return TypeAgentExecutionFailed }

func (e AgentExecutionFailed) MarshalJSON() ([]byte, error) {
	type alias AgentExecutionFailed
	return marshalWithError(alias(e), e.Err)
}

// AgentClosing is raised when the agent is being torn down, after the last
// run has completed or failed.
type AgentClosing struct {
	Meta
	AgentID string `json:"agent_id"`
}

func (AgentClosing) EventType() Type { return TypeAgentClosing }

// StrategyStarting is raised when the run's strategy graph starts.
type StrategyStarting struct {
	Meta
	Strategy string `json:"strategy"`
}

func (StrategyStarting) EventType() Type { return TypeStrategyStarting }

// StrategyCompleted is raised when the strategy graph reaches a terminal
// node. Result is the value the terminal node produced.
type StrategyCompleted struct {
	Meta
	Strategy string `json:"strategy"`
	Result   string `json:"result,omitempty"`
}

func (StrategyCompleted) EventType() Type { return TypeStrategyCompleted }
