// Package classify labels every node of a platform graph with the build shape
// the emitter needs: executable, generated library, interface library, or
// (by absence from every set) a concrete compiled target.
package classify

import (
	"sort"
	"strings"

	"github.com/specialistvlad/gypcmake/internal/fault"
	"github.com/specialistvlad/gypcmake/internal/target"
)

// Shape is the category the emitter dispatches on.
type Shape int

const (
	// Compiled is a node with real sources, compiled per family and linked.
	Compiled Shape = iota
	// GeneratedLibrary is a library built only from generation outputs.
	GeneratedLibrary
	// InterfaceLibrary is a node without a compiled artifact.
	InterfaceLibrary
)

func (s Shape) String() string {
	switch s {
	case Compiled:
		return "compiled"
	case GeneratedLibrary:
		return "generated_library"
	case InterfaceLibrary:
		return "interface_library"
	}
	return "unknown"
}

// Options parameterize classification.
type Options struct {
	// HeaderExtensions mark sources that do not make a node compilable.
	HeaderExtensions []string
	// GeneratedRoot is the resolved path prefix of the shared generated-output
	// directory. Action outputs below it are recorded as generated sources.
	GeneratedRoot string
}

// Result is the immutable classification of one graph. It is computed fresh
// for every platform pass and never shared between passes.
type Result struct {
	executables        map[string]struct{}
	generatedLibraries map[string]struct{}
	interfaceLibraries map[string]struct{}
	generatedSources   map[string]struct{}
}

// Classify computes the Result for g. Unknown node kinds abort with
// fault.InvalidTarget.
func Classify(g *target.Graph, opts Options) (*Result, error) {
	r := &Result{
		executables:        make(map[string]struct{}),
		generatedLibraries: make(map[string]struct{}),
		interfaceLibraries: make(map[string]struct{}),
		generatedSources:   make(map[string]struct{}),
	}

	for _, id := range g.IDs() {
		n := g.Nodes[id]
		if !n.Kind.Valid() {
			return nil, fault.Newf(fault.InvalidTarget, id, "unknown target type %q", n.Kind)
		}

		if n.Kind == target.Executable {
			r.executables[id] = struct{}{}
		}
		if n.HasRealSources(opts.HeaderExtensions) {
			continue
		}

		producesSources := false
		for _, a := range n.Actions {
			if a.FeedsCompilation {
				producesSources = true
			}
			for _, out := range a.Outputs {
				if underRoot(out, opts.GeneratedRoot) {
					r.generatedSources[out] = struct{}{}
				}
			}
		}

		if n.Kind.IsLibrary() && producesSources {
			r.generatedLibraries[id] = struct{}{}
		} else {
			r.interfaceLibraries[id] = struct{}{}
		}
	}
	return r, nil
}

func underRoot(p, root string) bool {
	if root == "" {
		return false
	}
	return p == root || strings.HasPrefix(p, strings.TrimSuffix(root, "/")+"/")
}

// IsExecutable reports whether id is an executable node.
func (r *Result) IsExecutable(id string) bool {
	_, ok := r.executables[id]
	return ok
}

// IsGeneratedLibrary reports whether id is a generated library.
func (r *Result) IsGeneratedLibrary(id string) bool {
	_, ok := r.generatedLibraries[id]
	return ok
}

// IsInterfaceLibrary reports whether id is an interface library.
func (r *Result) IsInterfaceLibrary(id string) bool {
	_, ok := r.interfaceLibraries[id]
	return ok
}

// IsGeneratedSource reports whether p is an action output under the
// generated-output root.
func (r *Result) IsGeneratedSource(p string) bool {
	_, ok := r.generatedSources[p]
	return ok
}

// ShapeOf returns the emitter category of id.
func (r *Result) ShapeOf(id string) Shape {
	switch {
	case r.IsGeneratedLibrary(id):
		return GeneratedLibrary
	case r.IsInterfaceLibrary(id):
		return InterfaceLibrary
	}
	return Compiled
}

// Executables returns the executable ids, sorted.
func (r *Result) Executables() []string { return sortedKeys(r.executables) }

// GeneratedLibraries returns the generated library ids, sorted.
func (r *Result) GeneratedLibraries() []string { return sortedKeys(r.generatedLibraries) }

// InterfaceLibraries returns the interface library ids, sorted.
func (r *Result) InterfaceLibraries() []string { return sortedKeys(r.interfaceLibraries) }

// GeneratedSources returns the generated source paths, sorted.
func (r *Result) GeneratedSources() []string { return sortedKeys(r.generatedSources) }

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
