package program

import (
	"errors"
	"fmt"
	"io"
	"sync"
)

var errSinkClosed = errors.New("program: sink closed")

// Sink receives each printed line of a run.
type Sink interface {
	Print(line string) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(line string) error

// Print calls f.
func (f SinkFunc) Print(line string) error { return f(line) }

// WriterSink writes one line per print.
type WriterSink struct {
	W io.Writer
}

// Print writes line followed by a newline.
func (s WriterSink) Print(line string) error {
	_, err := fmt.Fprintln(s.W, line)
	return err
}

// CollectSink keeps the printed lines in memory. It is safe for concurrent use.
type CollectSink struct {
	mu    sync.Mutex
	lines []string
}

// Print appends line.
func (s *CollectSink) Print(line string) error {
	s.mu.Lock()
	s.lines = append(s.lines, line)
	s.mu.Unlock()
	return nil
}

// Lines returns a copy of the collected lines.
func (s *CollectSink) Lines() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.lines...)
}

// ChannelSink forwards lines to a channel. Print blocks until the line is
// received or Done is closed.
type ChannelSink struct {
	C    chan<- string
	Done <-chan struct{}
}

// Print sends line on C.
func (s ChannelSink) Print(line string) error {
	select {
	case s.C <- line:
		return nil
	case <-s.Done:
		return errSinkClosed
	}
}
