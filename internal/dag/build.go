package dag

import (
	"github.com/specialistvlad/gypcmake/internal/fault"
	"github.com/specialistvlad/gypcmake/internal/target"
)

// FromTargets mirrors the dependency edges of tg. An edge to an id missing
// from tg fails with fault.DanglingReference; self edges are ignored.
func FromTargets(tg *target.Graph) (*Graph, error) {
	g := New()
	ids := tg.IDs()
	for _, id := range ids {
		g.AddNode(id)
	}

	for _, id := range ids {
		for _, dep := range tg.Nodes[id].AllDependencies() {
			if dep == id {
				continue
			}
			if _, ok := tg.Node(dep); !ok {
				return nil, fault.Newf(fault.DanglingReference, id, "dependency %q is not in the graph", dep)
			}
			if err := g.AddEdge(dep, id); err != nil {
				return nil, err
			}
		}
	}
	return g, nil
}
