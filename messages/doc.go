// Package messages holds the prompt and message model carried by model-call
// event contexts.
//
// The pipeline never interprets these values; it receives already-formed
// prompts and responses from the execution engine and hands them to feature
// handlers as-is. The types here exist so event contexts have a stable,
// serializable shape independent of any provider SDK.
package messages
