// Package feature implements the keyed store for installed pipeline
// features.
//
// A feature is installed under a Key whose type parameter is the feature's
// implementation type. One key maps to at most one installed implementation
// per storage instance; reinstalling under the same key silently replaces
// the previous entry, which is what idempotent builder DSLs want.
//
// Lookup is typed: Resolve returns the implementation cast to the key's
// type. Absence is not an error, but a key resolving to an implementation
// of the wrong dynamic type is a TypeMismatchError: the key was reused for
// an incompatible feature, a programmer error surfaced immediately instead
// of being masked as "not installed".
//
// Storage performs no locking of its own beyond the atomicity of single map
// operations; the pipeline serializes installs and dispatches through its
// read-write lock.
package feature
