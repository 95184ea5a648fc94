package target

import (
	"path"
	"strings"
)

// Kind is the build shape a node declares in the snapshot.
type Kind string

const (
	StaticLibrary Kind = "static_library"
	SharedLibrary Kind = "shared_library"
	Executable    Kind = "executable"
	None          Kind = "none"
)

// Valid reports whether k is one of the recognized kinds.
func (k Kind) Valid() bool {
	switch k {
	case StaticLibrary, SharedLibrary, Executable, None:
		return true
	}
	return false
}

// IsLibrary reports whether k produces a static or shared library.
func (k Kind) IsLibrary() bool {
	return k == StaticLibrary || k == SharedLibrary
}

// Properties is a bag of compile and link settings. A node carries one at the
// top level (the general settings) and one per configuration.
type Properties struct {
	Defines       []string       `json:"defines,omitempty" yaml:"defines,omitempty"`
	IncludeDirs   []string       `json:"include_dirs,omitempty" yaml:"include_dirs,omitempty"`
	Cflags        []string       `json:"cflags,omitempty" yaml:"cflags,omitempty"`
	CflagsC       []string       `json:"cflags_c,omitempty" yaml:"cflags_c,omitempty"`
	CflagsCC      []string       `json:"cflags_cc,omitempty" yaml:"cflags_cc,omitempty"`
	Libraries     []string       `json:"libraries,omitempty" yaml:"libraries,omitempty"`
	Ldflags       []string       `json:"ldflags,omitempty" yaml:"ldflags,omitempty"`
	XcodeSettings map[string]any `json:"xcode_settings,omitempty" yaml:"xcode_settings,omitempty"`
}

// Action is a generation step attached to a node.
type Action struct {
	Name    string   `json:"action_name,omitempty" yaml:"action_name,omitempty"`
	Inputs  []string `json:"inputs,omitempty" yaml:"inputs,omitempty"`
	Outputs []string `json:"outputs,omitempty" yaml:"outputs,omitempty"`
	Command []string `json:"action,omitempty" yaml:"action,omitempty"`
	// FeedsCompilation folds the outputs into the node's compiled sources.
	FeedsCompilation bool `json:"process_outputs_as_sources,omitempty" yaml:"process_outputs_as_sources,omitempty"`
}

// Copy stages files into a destination directory.
type Copy struct {
	Destination string   `json:"destination" yaml:"destination"`
	Files       []string `json:"files" yaml:"files"`
}

// Node is one buildable or pseudo-buildable unit of the graph.
type Node struct {
	// ID is the qualified identifier, `<path>:<name>#<toolset>` as read or
	// `<dir>/<file>:<name>` once normalized.
	ID   string `json:"-" yaml:"-"`
	Kind Kind   `json:"type" yaml:"type"`

	Sources              []string              `json:"sources,omitempty" yaml:"sources,omitempty"`
	Actions              []Action              `json:"actions,omitempty" yaml:"actions,omitempty"`
	Configurations       map[string]Properties `json:"configurations,omitempty" yaml:"configurations,omitempty"`
	Dependencies         []string              `json:"dependencies,omitempty" yaml:"dependencies,omitempty"`
	DependenciesOriginal []string              `json:"dependencies_original,omitempty" yaml:"dependencies_original,omitempty"`
	Copies               []Copy                `json:"copies,omitempty" yaml:"copies,omitempty"`

	Properties `yaml:",inline"`
}

// AllDependencies returns dependencies followed by dependencies_original,
// duplicates included.
func (n *Node) AllDependencies() []string {
	out := make([]string, 0, len(n.Dependencies)+len(n.DependenciesOriginal))
	out = append(out, n.Dependencies...)
	out = append(out, n.DependenciesOriginal...)
	return out
}

// HasRealSources reports whether the node declares at least one source that
// is not a header.
func (n *Node) HasRealSources(headers []string) bool {
	for _, s := range n.Sources {
		if !HasExtension(s, headers) {
			return true
		}
	}
	return false
}

// CompiledSources returns the declared sources plus the outputs of every
// compilation-feeding action, in first-seen order without duplicates.
func (n *Node) CompiledSources() []string {
	out := Unique(n.Sources)
	seen := make(map[string]struct{}, len(out))
	for _, s := range out {
		seen[s] = struct{}{}
	}
	for _, a := range n.Actions {
		if !a.FeedsCompilation {
			continue
		}
		for _, o := range a.Outputs {
			if _, ok := seen[o]; ok {
				continue
			}
			seen[o] = struct{}{}
			out = append(out, o)
		}
	}
	return out
}

// ActionOutputs returns the outputs of all actions in first-seen order.
func (n *Node) ActionOutputs() []string {
	var all []string
	for _, a := range n.Actions {
		all = append(all, a.Outputs...)
	}
	return Unique(all)
}

// Configuration returns the property bag for name and whether the node has it.
func (n *Node) Configuration(name string) (Properties, bool) {
	p, ok := n.Configurations[name]
	return p, ok
}

// HasExtension reports whether p ends in one of exts (compared case-sensitively,
// the way compilers do on the platforms that matter here).
func HasExtension(p string, exts []string) bool {
	ext := path.Ext(strings.ReplaceAll(p, `\`, "/"))
	for _, e := range exts {
		if ext == e {
			return true
		}
	}
	return false
}

// Unique returns items without duplicates, keeping the first occurrence.
func Unique(items []string) []string {
	if len(items) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, it := range items {
		if _, ok := seen[it]; ok {
			continue
		}
		seen[it] = struct{}{}
		out = append(out, it)
	}
	return out
}

// Family is a compiler family sources are grouped by.
type Family string

const (
	FamilyC  Family = "c"
	FamilyCC Family = "cc"
)
