package render

import (
	"fmt"
	"io"

	"github.com/pkg/errors"
)

// writer wraps the output sink and remembers the first write failure, so the
// renderers can stay free of per-write error plumbing. A failed sink turns
// into a single render error for the line.
type writer struct {
	w   io.Writer
	err error
}

func newWriter(w io.Writer) *writer {
	return &writer{w: w}
}

func (sw *writer) writeString(s string) {
	if sw.err != nil {
		return
	}
	_, sw.err = io.WriteString(sw.w, s)
}

func (sw *writer) printf(format string, args ...any) {
	if sw.err != nil {
		return
	}
	_, sw.err = fmt.Fprintf(sw.w, format, args...)
}

func (sw *writer) finish() error {
	if sw.err != nil {
		return errors.Wrap(sw.err, "write rendered record")
	}
	return nil
}
