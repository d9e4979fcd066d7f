// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package source

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"golang.org/x/net/html/charset"
)

// DefaultTimeout limits fetching a web listing, unless configured otherwise.
const DefaultTimeout = 5 * time.Second

// MaxLineLength is the longest line a listing might contain.
const MaxLineLength = 1024 * 1024

// Source delivers the lines of a listing.
type Source interface {
	Name() string
	Lines(ctx context.Context) ([]string, error)
}

// For returns the Source for the specified specification: “http://” and
// “https://” URLs become HTTP sources, “-” becomes stdin, and everything else
// is taken as a file path.
func For(spec string) Source {
	switch {
	case strings.HasPrefix(spec, "http://"), strings.HasPrefix(spec, "https://"):
		return &HTTP{URL: spec}
	case spec == "-":
		return &Reader{Label: "stdin", R: os.Stdin}
	}
	return &File{Path: spec}
}

// HTTP fetches a listing from a web server.
type HTTP struct {
	URL     string
	Client  *http.Client  // optional; defaults to http.DefaultClient.
	Timeout time.Duration // optional; defaults to DefaultTimeout.
}

// Name returns the URL.
func (s *HTTP) Name() string { return s.URL }

// Lines fetches the listing and returns its lines. Anything other than a 200
// status is an error.
func (s *HTTP) Lines(ctx context.Context) ([]string, error) {
	timeout := s.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("cannot fetch %s: %w", s.URL, err)
	}
	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("cannot fetch %s: %w", s.URL, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("cannot fetch %s: unexpected status %s", s.URL, resp.Status)
	}
	body, err := charset.NewReader(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, fmt.Errorf("cannot decode %s: %w", s.URL, err)
	}
	lines, err := readLines(body)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", s.URL, err)
	}
	return lines, nil
}

// File reads a listing from a file.
type File struct {
	Path string
}

// Name returns the file path.
func (s *File) Name() string { return s.Path }

// Lines reads the listing file and returns its lines.
func (s *File) Lines(ctx context.Context) ([]string, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	lines, err := readLines(f)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", s.Path, err)
	}
	return lines, nil
}

// Reader reads a listing from an io.Reader, such as stdin.
type Reader struct {
	Label string
	R     io.Reader
}

// Name returns the label of this reader source.
func (s *Reader) Name() string { return s.Label }

// Lines reads the listing until EOF and returns its lines.
func (s *Reader) Lines(ctx context.Context) ([]string, error) {
	return readLines(s.R)
}

// readLines returns all lines, without their line terminators.
func readLines(r io.Reader) ([]string, error) {
	lines := []string{}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), MaxLineLength)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}
