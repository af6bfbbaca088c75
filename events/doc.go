// Package events defines the closed taxonomy of agent lifecycle events and
// one immutable context type per event.
//
// Every context carries a Meta header: a group id tying together the events
// of one logical operation (a tool call's starting and completed events share
// a group id), the run id, and the execution path used to reconstruct call
// trees across nested subgraphs. The event-specific payload rides alongside.
//
// Contexts are snapshots. The pipeline builds a fresh value immediately
// before each dispatch and discards it once every handler has run; nothing
// in this package is ever mutated after construction.
//
// Design decisions:
//   - Closed enumeration: Type is not open for extension at runtime. New
//     lifecycle points are added here, together with their context shape.
//   - Value semantics: contexts are plain structs passed by value to
//     handlers, so a handler cannot leak mutations into its successors.
//   - Errors as errors: failure contexts carry the error value itself; the
//     JSON form flattens it to its message for export.
package events
