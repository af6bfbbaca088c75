// Package relay is an event core for LLM agent orchestration.
//
// An execution engine drives agents through strategies, nodes, model calls,
// and tool calls. At every lifecycle point it notifies a pipeline.Pipeline,
// which fans the occurrence out to installed features: independently built
// cross-cutting modules such as tracing, telemetry, or event logging. The
// engine knows nothing about any particular feature; features know nothing
// about each other unless they explicitly look one another up.
//
// The package layout follows the data flow:
//
//   - relay (this package): the Environment an agent runs with, and the
//     transformer hook features use to amend it before a run starts.
//   - events: the closed taxonomy of lifecycle events and their immutable
//     context types.
//   - feature: keyed feature storage with typed lookup.
//   - pipeline: handler tables, registration, and the dispatch surface the
//     engine calls.
//   - features/...: features shipped with the framework.
//   - pkg/syncx: the reentrant read-write lock guarding shared pipeline
//     state across concurrent runs.
package relay
