package target

import (
	"fmt"
	"sort"
	"strings"
)

// OS is the downstream system name a platform snapshot is guarded by.
type OS string

const (
	Linux   OS = "Linux"
	Darwin  OS = "Darwin"
	Windows OS = "Windows"
)

// SystemName maps a snapshot platform key (as reported by the frontend host)
// to the downstream system name.
func SystemName(platform string) (OS, error) {
	switch {
	case strings.HasPrefix(platform, "linux"):
		return Linux, nil
	case platform == "darwin":
		return Darwin, nil
	case platform == "win32":
		return Windows, nil
	}
	return "", fmt.Errorf("unknown platform %q", platform)
}

// Graph is one platform's closed set of nodes.
type Graph struct {
	// Platform is the key the snapshot was stored under, e.g. "linux2".
	Platform string
	// Root is the working directory ids are resolved against.
	Root  string
	Nodes map[string]*Node
}

// IDs returns the node ids in lexicographic order. Every pass walks nodes in
// this order so emitted files are reproducible.
func (g *Graph) IDs() []string {
	ids := make([]string, 0, len(g.Nodes))
	for id := range g.Nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Node looks up a node by id.
func (g *Graph) Node(id string) (*Node, bool) {
	n, ok := g.Nodes[id]
	return n, ok
}
