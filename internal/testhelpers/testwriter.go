package testhelpers

import (
	"io"
	"strings"
	"testing"
)

// Writer routes server log output to t.Log so it only surfaces when the
// test fails.
type Writer struct {
	t        *testing.T
	testDone chan struct{}
}

// NewWriter returns an io.Writer that forwards everything to t.Log. Pass it
// as the log sink when starting an in-process server under test.
func NewWriter(t *testing.T) io.Writer {
	w := &Writer{
		t:        t,
		testDone: make(chan struct{}),
	}
	// Writes after the test ends would race with the testing framework.
	t.Cleanup(func() {
		close(w.testDone)
	})
	return w
}

func (w *Writer) Write(p []byte) (int, error) {
	select {
	// A write after test completion means the server outlived its test.
	case <-w.testDone:
		panic("testwriter: attempted to write after test completion. Did you remember to t.Cleanup(server.Shutdown)?")
	default:
		// Remove trailing newlines to avoid double-spacing in test output.
		output := strings.TrimSuffix(string(p), "\n")
		if output != "" {
			w.t.Log(output)
		}
		return len(p), nil
	}
}
