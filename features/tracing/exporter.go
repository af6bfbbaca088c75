package tracing

import (
	"bufio"
	"context"
	"io"
	"sync"

	json "github.com/goccy/go-json"
)

// Exporter receives finished spans. Implementations that buffer should also
// implement feature.Flusher so uninstalling the feature drains them.
type Exporter interface {
	Export(ctx context.Context, span Span) error
}

// LineExporter writes spans as JSON lines to an io.Writer through a buffer.
type LineExporter struct {
	mu  sync.Mutex
	buf *bufio.Writer
}

// NewLineExporter returns a LineExporter writing to w.
func NewLineExporter(w io.Writer) *LineExporter {
	return &LineExporter{buf: bufio.NewWriter(w)}
}

// Export serializes span followed by a newline.
func (e *LineExporter) Export(_ context.Context, span Span) error {
	data, err := json.Marshal(span)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if _, err := e.buf.Write(data); err != nil {
		return err
	}
	return e.buf.WriteByte('\n')
}

// Flush pushes buffered spans to the underlying writer.
func (e *LineExporter) Flush(context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.buf.Flush()
}
