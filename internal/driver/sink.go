package driver

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hexops/gotextdiff"
	"github.com/hexops/gotextdiff/myers"
	"github.com/hexops/gotextdiff/span"
	"github.com/specialistvlad/gypcmake/internal/fsutil"
)

// ErrDrift is returned by CheckSink when generated output differs from disk.
var ErrDrift = errors.New("generated files are out of date")

// Sink receives the output of a run. Paths are slash-separated and relative
// to the output root.
type Sink interface {
	// Append adds data to the end of path. The first Append to a path in a
	// run replaces whatever the path held before.
	Append(path string, data []byte) error
	// Close finishes the run.
	Close() error
}

// FileSink writes files below a root directory.
type FileSink struct {
	root    string
	touched map[string]struct{}
}

// NewFileSink creates a FileSink rooted at root.
func NewFileSink(root string) *FileSink {
	return &FileSink{root: root, touched: make(map[string]struct{})}
}

// Append implements Sink.
func (s *FileSink) Append(path string, data []byte) error {
	rel := filepath.FromSlash(path)
	if !filepath.IsLocal(rel) {
		return fmt.Errorf("refusing to write %s outside %s", path, s.root)
	}
	full := filepath.Join(s.root, rel)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}

	flags := os.O_WRONLY | os.O_CREATE | os.O_APPEND
	if _, ok := s.touched[path]; !ok {
		flags = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
		s.touched[path] = struct{}{}
	}

	f, err := os.OpenFile(full, flags, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}

// Close implements Sink.
func (s *FileSink) Close() error { return nil }

// Written returns the paths written so far, sorted.
func (s *FileSink) Written() []string {
	out := make([]string, 0, len(s.touched))
	for p := range s.touched {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// CheckSink renders a run in memory and compares it with the files below
// root. Differences are written to out as unified diffs.
type CheckSink struct {
	root  string
	out   io.Writer
	files map[string]*bytes.Buffer
}

// NewCheckSink creates a CheckSink comparing against root.
func NewCheckSink(root string, out io.Writer) *CheckSink {
	return &CheckSink{root: root, out: out, files: make(map[string]*bytes.Buffer)}
}

// Append implements Sink.
func (s *CheckSink) Append(path string, data []byte) error {
	buf, ok := s.files[path]
	if !ok {
		buf = &bytes.Buffer{}
		s.files[path] = buf
	}
	buf.Write(data)
	return nil
}

// Close compares every rendered file with disk. It returns an error
// wrapping ErrDrift when any file differs or is missing, or when a generated
// file on disk was not rendered by the run.
func (s *CheckSink) Close() error {
	onDisk, err := fsutil.FindFiles(s.root, generatedFile)
	if err != nil {
		return fmt.Errorf("failed to list %s: %w", s.root, err)
	}

	seen := make(map[string]struct{}, len(s.files)+len(onDisk))
	paths := make([]string, 0, len(s.files)+len(onDisk))
	for p := range s.files {
		seen[p] = struct{}{}
		paths = append(paths, p)
	}
	for _, full := range onDisk {
		rel, err := filepath.Rel(s.root, full)
		if err != nil {
			return err
		}
		p := filepath.ToSlash(rel)
		if _, ok := seen[p]; !ok {
			seen[p] = struct{}{}
			paths = append(paths, p)
		}
	}
	sort.Strings(paths)

	var drifted []string
	for _, p := range paths {
		var want string
		buf, rendered := s.files[p]
		if rendered {
			want = buf.String()
		}
		have, err := os.ReadFile(filepath.Join(s.root, filepath.FromSlash(p)))
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to read %s: %w", p, err)
		}
		if rendered && string(have) == want {
			continue
		}
		drifted = append(drifted, p)

		edits := myers.ComputeEdits(span.URIFromPath(p), string(have), want)
		fmt.Fprint(s.out, gotextdiff.ToUnified("a/"+p, "b/"+p, string(have), edits))
	}

	if len(drifted) > 0 {
		return fmt.Errorf("%w: %s", ErrDrift, strings.Join(drifted, ", "))
	}
	return nil
}
