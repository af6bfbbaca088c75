package messages

import "github.com/go-openapi/strfmt"

// Message is the closed set of prompt entries. The marker method keeps the
// set closed to this package.
type Message interface {
	message()
}

// Response is the subset of messages a model can produce.
type Response interface {
	Message
	response()
}

// Instructions is the system prompt entry.
type Instructions struct {
	Content string `json:"content"`
}

func (Instructions) message() {}

// UserPrompt is an end-user message.
type UserPrompt struct {
	Content   string          `json:"content"`
	Sender    string          `json:"sender,omitempty"`
	Timestamp strfmt.DateTime `json:"timestamp,omitempty"`
}

func (UserPrompt) message() {}

// AssistantMessage is a plain-text model response.
type AssistantMessage struct {
	Content   string          `json:"content"`
	Timestamp strfmt.DateTime `json:"timestamp,omitempty"`
}

func (AssistantMessage) message()  {}
func (AssistantMessage) response() {}

// ToolCallData names one requested tool invocation with its raw JSON
// arguments.
type ToolCallData struct {
	ID        string `json:"id,omitempty"`
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

// ToolCallMessage is a model response requesting tool invocations.
type ToolCallMessage struct {
	Calls     []ToolCallData  `json:"calls"`
	Timestamp strfmt.DateTime `json:"timestamp,omitempty"`
}

func (ToolCallMessage) message()  {}
func (ToolCallMessage) response() {}

// ToolResponse carries a tool's result back into the prompt.
type ToolResponse struct {
	ToolName   string          `json:"tool_name"`
	ToolCallID string          `json:"tool_call_id,omitempty"`
	Content    string          `json:"content"`
	Timestamp  strfmt.DateTime `json:"timestamp,omitempty"`
}

func (ToolResponse) message() {}

// Prompt is the full request handed to a model: the target model name and
// the ordered message history.
type Prompt struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
}
