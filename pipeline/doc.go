// Package pipeline is the dispatch core the execution engine notifies at
// every agent lifecycle point.
//
// A Pipeline holds the installed features, two handler tables, and the
// reentrant read-write lock guarding both. Features register callbacks
// through the InterceptX methods during installation; the engine raises
// events through the OnX methods while driving a run.
//
// Dispatch semantics:
//
//   - Each OnX call builds a fresh event context from its raw arguments, so
//     a context can never be reused, stale, or shared between two events.
//   - Handlers for one dispatch run strictly sequentially, in feature
//     registration order, each awaited before the next. Handlers may have
//     ordering dependencies (a tracing feature opening a span a metrics
//     feature reads), and concurrency here would make those untestable.
//   - A handler error aborts the dispatch and propagates to the engine
//     unwrapped. There is no per-handler isolation: a broken feature is
//     surfaced, not swallowed.
//   - Registration is replace-not-accumulate per (feature, event type);
//     re-registering keeps the feature's original position in the order.
//
// Environment transformation is the one fold in the API: each registered
// transformer receives its predecessor's output and the final environment
// is what the agent runs with.
//
// Concurrency: mutation (install, uninstall, intercept) takes the write
// lock; dispatch traverses the tables under the read lock. Handlers that
// look up features re-enter the read lock without deadlocking; handlers
// that try to install features get syncx.ErrUpgradeDeadlock.
package pipeline
