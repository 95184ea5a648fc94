package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/specialistvlad/gypcmake/internal/ctxlog"
	"github.com/specialistvlad/gypcmake/internal/fsutil"
	"github.com/specialistvlad/gypcmake/internal/target"
	"gopkg.in/yaml.v3"
)

// Params carries the frontend parameters recorded with a platform.
type Params struct {
	Cwd string `json:"cwd" yaml:"cwd"`
}

// Platform is one platform's raw, un-normalized targets.
type Platform struct {
	Targets map[string]*target.Node `json:"targets" yaml:"targets"`
	Params  Params                  `json:"params" yaml:"params"`
	// Cwd is accepted at the platform level as a shorthand for params.cwd.
	Cwd string `json:"cwd,omitempty" yaml:"cwd,omitempty"`

	source string
}

// Root returns the working directory ids are resolved against.
func (p *Platform) Root() string {
	if p.Params.Cwd != "" {
		return p.Params.Cwd
	}
	return p.Cwd
}

// Source is the file the platform was read from.
func (p *Platform) Source() string {
	return p.source
}

// Snapshot is every platform read from one path.
type Snapshot struct {
	Platforms map[string]*Platform
}

// Names returns the platform keys, sorted.
func (s *Snapshot) Names() []string {
	names := make([]string, 0, len(s.Platforms))
	for name := range s.Platforms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var extensions = []string{".json", ".yaml", ".yml"}

// Load reads a snapshot file, or every snapshot document below a directory.
func Load(ctx context.Context, path string) (*Snapshot, error) {
	logger := ctxlog.FromContext(ctx)

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("error accessing snapshot %s: %w", path, err)
	}

	files := []string{path}
	if info.IsDir() {
		files, err = fsutil.FindFilesByExtension(path, extensions...)
		if err != nil {
			return nil, fmt.Errorf("failed to scan snapshot directory %s: %w", path, err)
		}
		if len(files) == 0 {
			return nil, fmt.Errorf("no snapshot documents found in %s", path)
		}
	}
	logger.Debug("Discovered snapshot documents.", "count", len(files))

	snap := &Snapshot{Platforms: make(map[string]*Platform)}
	for _, file := range files {
		doc, err := readFile(file)
		if err != nil {
			return nil, err
		}
		for name, p := range doc {
			if prev, ok := snap.Platforms[name]; ok {
				return nil, fmt.Errorf("platform %q is defined in both %s and %s", name, prev.source, file)
			}
			if p == nil {
				p = &Platform{}
			}
			p.source = file
			snap.Platforms[name] = p
		}
	}

	logger.Debug("Snapshot loaded.", "platforms", snap.Names())
	return snap, nil
}

func readFile(file string) (map[string]*Platform, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot %s: %w", file, err)
	}

	var doc map[string]*Platform
	switch strings.ToLower(filepath.Ext(file)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &doc)
	default:
		err = json.Unmarshal(data, &doc)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode snapshot %s: %w", file, err)
	}
	return doc, nil
}
