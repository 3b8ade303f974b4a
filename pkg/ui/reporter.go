package ui

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// Reporter receives one notice per image
type Reporter interface {
	Downloaded(path string)
	Skipped(path string)
}

// ConsoleReporter writes notices as plain lines, one per image
type ConsoleReporter struct {
	mu  sync.Mutex
	out io.Writer
}

// NewConsoleReporter creates a reporter writing to out, or stdout when nil
func NewConsoleReporter(out io.Writer) *ConsoleReporter {
	if out == nil {
		out = os.Stdout
	}
	return &ConsoleReporter{out: out}
}

// Downloaded prints "Downloaded {path}"
func (r *ConsoleReporter) Downloaded(path string) {
	r.printf("%s %s\n", Green("Downloaded"), path)
}

// Skipped prints "Skipping {path}"
func (r *ConsoleReporter) Skipped(path string) {
	r.printf("%s %s\n", Dim("Skipping"), path)
}

func (r *ConsoleReporter) printf(format string, args ...interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintf(r.out, format, args...)
}

// NopReporter discards notices
type NopReporter struct{}

func (NopReporter) Downloaded(string) {}
func (NopReporter) Skipped(string)    {}
