package events

import (
	"github.com/casualjim/relay/messages"
	"github.com/casualjim/relay/tool"
)

// LLMCallStarting is raised before a model call is issued. It carries the
// exact prompt and the tools advertised for this call.
type LLMCallStarting struct {
	Meta
	Prompt messages.Prompt   `json:"prompt"`
	Tools  []tool.Descriptor `json:"tools,omitempty"`
}

func (LLMCallStarting) EventType() Type { return TypeLLMCallStarting }

// LLMCallCompleted is raised once the model call returns. Responses holds
// every message the model produced for this call.
type LLMCallCompleted struct {
	Meta
	Prompt    messages.Prompt     `json:"prompt"`
	Responses []messages.Response `json:"responses"`
}

func (LLMCallCompleted) EventType() Type { return TypeLLMCallCompleted }

// Frame is one increment of a streaming model response.
type Frame struct {
	Delta string `json:"delta,omitempty"`
	Done  bool   `json:"done,omitempty"`
}

// LLMStreamingStarting is raised before a streaming model call opens.
type LLMStreamingStarting struct {
	Meta
	Prompt messages.Prompt   `json:"prompt"`
	Tools  []tool.Descriptor `json:"tools,omitempty"`
}

func (LLMStreamingStarting) EventType() Type { return TypeLLMStreamingStarting }

// LLMStreamingFrameReceived is raised for every frame of a streaming
// response, in arrival order.
type LLMStreamingFrameReceived struct {
	Meta
	Frame Frame `json:"frame"`
}

func (LLMStreamingFrameReceived) EventType() Type { return TypeLLMStreamingFrameReceived }

// LLMStreamingFailed is raised when the stream terminates with an error.
type LLMStreamingFailed struct {
	Meta
	Err error `json:"-"`
}

func (LLMStreamingFailed) EventType() Type { return TypeLLMStreamingFailed }

func (e LLMStreamingFailed) MarshalJSON() ([]byte, error) {
	type alias LLMStreamingFailed
	return marshalWithError(alias(e), e.Err)
}

// LLMStreamingCompleted is raised after the final frame of a stream.
type LLMStreamingCompleted struct {
	Meta
	Prompt messages.Prompt   `json:"prompt"`
	Tools  []tool.Descriptor `json:"tools,omitempty"`
}

func (LLMStreamingCompleted) EventType() Type { return TypeLLMStreamingCompleted }
