// Package deps splits a node's dependency edges into the ones that become
// link inputs and the ones that only constrain build order.
package deps

import (
	"fmt"

	"github.com/specialistvlad/gypcmake/internal/classify"
	"github.com/specialistvlad/gypcmake/internal/fault"
	"github.com/specialistvlad/gypcmake/internal/target"
)

// Policy decides how an edge to a generated library is treated.
type Policy int

const (
	// OrderOnly builds the generated library first without linking it.
	OrderOnly Policy = iota
	// Link links the generated library like any other library.
	Link
	// Omit drops the edge from both link and order-only lists.
	Omit
)

func (p Policy) String() string {
	switch p {
	case OrderOnly:
		return "order_only"
	case Link:
		return "link"
	case Omit:
		return "omit"
	}
	return fmt.Sprintf("Policy(%d)", int(p))
}

// ParsePolicy reads a policy name as used in settings files and flags.
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "", "order_only":
		return OrderOnly, nil
	case "link":
		return Link, nil
	case "omit":
		return Omit, nil
	}
	return OrderOnly, fmt.Errorf("unknown generated library policy %q: must be 'order_only', 'link' or 'omit'", s)
}

// Partition is the split of one node's edges.
type Partition struct {
	// Link lists dependencies that feed the link line, first occurrence kept.
	Link []string
	// OrderOnly lists dependencies that only have to be built first.
	OrderOnly []string
	// All is every dependency once, in first-seen order.
	All []string
}

// Partitioner splits edges using one pass's classification.
type Partitioner struct {
	graph  *target.Graph
	cls    *classify.Result
	policy Policy
}

// New creates a Partitioner for graph g classified as cls.
func New(g *target.Graph, cls *classify.Result, policy Policy) *Partitioner {
	return &Partitioner{graph: g, cls: cls, policy: policy}
}

// Split partitions the combined dependencies and dependencies_original of n.
// Ids missing from the graph abort with fault.DanglingReference.
func (p *Partitioner) Split(n *target.Node) (Partition, error) {
	var part Partition
	seenLink := make(map[string]struct{})
	seenOrder := make(map[string]struct{})
	seenAll := make(map[string]struct{})

	add := func(list *[]string, seen map[string]struct{}, id string) {
		if _, ok := seen[id]; ok {
			return
		}
		seen[id] = struct{}{}
		*list = append(*list, id)
	}

	for _, dep := range n.AllDependencies() {
		if _, ok := p.graph.Node(dep); !ok {
			return Partition{}, fault.Newf(fault.DanglingReference, n.ID, "dependency %q is not in the graph", dep)
		}
		add(&part.All, seenAll, dep)

		switch {
		case p.cls.IsInterfaceLibrary(dep), p.cls.IsExecutable(dep):
			add(&part.OrderOnly, seenOrder, dep)
		case p.cls.IsGeneratedLibrary(dep):
			switch p.policy {
			case Link:
				add(&part.Link, seenLink, dep)
			case OrderOnly:
				add(&part.OrderOnly, seenOrder, dep)
			}
		default:
			add(&part.Link, seenLink, dep)
		}
	}
	return part, nil
}
