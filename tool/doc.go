// Package tool describes the tools advertised to a model during a call.
//
// A Descriptor pairs a tool name with a JSON schema for its parameters,
// reflected from a Go struct type. The pipeline carries descriptors inside
// model-call event contexts so features such as tracing can record exactly
// which tools were offered; actually executing tools is the engine's job.
package tool
