// Package tracing turns lifecycle events into spans. Each operation's
// starting event opens a span under the event group ID and the matching
// completed or failed event closes and exports it, so a span's duration is
// the wall-clock distance between the two event headers.
//
// Spans are handed to an Exporter. The shipped LineExporter writes one JSON
// object per line to any io.Writer and is drained when the feature is
// uninstalled or the pipeline closes.
//
// Tool-call argument payloads can be scrubbed before they are recorded:
// RedactPaths removes JSON paths from the stored arguments, ArgumentPaths
// lifts individual values into span attributes.
package tracing
