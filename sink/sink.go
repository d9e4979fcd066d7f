// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package sink

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// DefaultFailedPath is the name of the shared failure file, unless configured
// otherwise.
const DefaultFailedPath = "failed.txt"

// Sink stores the ok and failed lines of a named batch.
type Sink interface {
	Write(name string, ok, failed []string) error
}

// File writes the ok lines of each batch to the file with the name of the
// batch, and appends failed lines to a shared failure file. File sinks can be
// used concurrently by multiple batches.
type File struct {
	FailedPath string // shared failure file; no failure file if empty.
	mu         sync.Mutex
}

var _ Sink = (*File)(nil)

// NewFile returns a new File sink with the specified shared failure file.
func NewFile(failedPath string) *File {
	return &File{FailedPath: failedPath}
}

// Write (over)writes the named output file with the ok lines joined by
// newlines, without a trailing newline; the output file gets created even if
// there are no ok lines. Failed lines, if any, get appended to the shared
// failure file, each line terminated by a newline.
func (s *File) Write(name string, ok, failed []string) error {
	if dir := filepath.Dir(name); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("cannot create output directory: %w", err)
		}
	}
	if err := os.WriteFile(name, []byte(strings.Join(ok, "\n")), 0o644); err != nil {
		return fmt.Errorf("cannot write output: %w", err)
	}
	if len(failed) == 0 || s.FailedPath == "" {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	f, err := os.OpenFile(s.FailedPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("cannot open failure file: %w", err)
	}
	_, err = f.WriteString(strings.Join(failed, "\n") + "\n")
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("cannot append to failure file: %w", err)
	}
	return nil
}

// Writer writes the ok lines of batches to an io.Writer, one line each, and
// ignores failed lines.
type Writer struct {
	W  io.Writer
	mu sync.Mutex
}

var _ Sink = (*Writer)(nil)

// Write writes the ok lines, each terminated by a newline.
func (s *Writer) Write(name string, ok, failed []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, line := range ok {
		if _, err := io.WriteString(s.W, line+"\n"); err != nil {
			return fmt.Errorf("cannot write %s: %w", name, err)
		}
	}
	return nil
}
