package dag

import (
	"fmt"
	"sort"
	"strings"
)

// New creates and returns an initialized, empty Graph.
func New() *Graph {
	return &Graph{vertices: make(map[string]*vertex)}
}

// AddNode adds a node with the given ID. Adding an existing ID is a no-op.
func (g *Graph) AddNode(id string) {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	if _, ok := g.vertices[id]; !ok {
		g.vertices[id] = &vertex{id: id, in: idSet{}, out: idSet{}}
	}
}

// AddEdge records that toID depends on fromID. Both nodes must exist.
func (g *Graph) AddEdge(fromID, toID string) error {
	if fromID == toID {
		return fmt.Errorf("self-referential edge not allowed: %s -> %s", fromID, fromID)
	}

	g.mutex.Lock()
	defer g.mutex.Unlock()

	from, ok := g.vertices[fromID]
	if !ok {
		return fmt.Errorf("source node not found: %s", fromID)
	}
	to, ok := g.vertices[toID]
	if !ok {
		return fmt.Errorf("destination node not found: %s", toID)
	}

	to.in[fromID] = struct{}{}
	from.out[toID] = struct{}{}
	return nil
}

// Len returns the number of nodes.
func (g *Graph) Len() int {
	g.mutex.RLock()
	defer g.mutex.RUnlock()
	return len(g.vertices)
}

// CycleError reports a dependency cycle. Path starts and ends with the same id.
type CycleError struct {
	Path []string
}

func (e *CycleError) Error() string {
	return "cycle detected: " + strings.Join(e.Path, " -> ")
}

// DetectCycles returns a *CycleError for the first cycle found, visiting
// nodes in id order so the reported cycle is stable.
func (g *Graph) DetectCycles() error {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	done := make(map[string]bool)
	onPath := make(map[string]int)
	var path []string

	var visit func(id string) error
	visit = func(id string) error {
		if done[id] {
			return nil
		}
		if at, ok := onPath[id]; ok {
			cycle := append(append([]string(nil), path[at:]...), id)
			return &CycleError{Path: cycle}
		}

		onPath[id] = len(path)
		path = append(path, id)
		for _, next := range g.vertices[id].out.sorted() {
			if err := visit(next); err != nil {
				return err
			}
		}
		path = path[:len(path)-1]
		delete(onPath, id)
		done[id] = true
		return nil
	}

	for _, id := range g.ids() {
		if err := visit(id); err != nil {
			return err
		}
	}
	return nil
}

// ids returns every vertex id in sorted order. Callers hold the lock.
func (g *Graph) ids() []string {
	ids := make([]string, 0, len(g.vertices))
	for id := range g.vertices {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
