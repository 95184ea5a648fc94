// Package sources groups a node's compiled sources by compiler family.
package sources

import (
	"sort"

	"github.com/specialistvlad/gypcmake/internal/flags"
	"github.com/specialistvlad/gypcmake/internal/props"
	"github.com/specialistvlad/gypcmake/internal/target"
)

// Table maps a family to the source extensions it compiles.
type Table map[target.Family][]string

// DefaultTable is the built-in extension table.
func DefaultTable() Table {
	return Table{
		target.FamilyC:  {".c"},
		target.FamilyCC: {".cc", ".cpp", ".cxx"},
	}
}

// DefaultHeaders lists the extensions treated as headers.
func DefaultHeaders() []string {
	return []string{".h", ".hh", ".hpp", ".hxx", ".inc"}
}

// Group is one family's share of a node's sources.
type Group struct {
	Family target.Family
	// Sources is sorted and includes every header of the node.
	Sources []string
	Flags   props.Accessor
}

// Categorizer partitions sources using a fixed extension table and attaches
// the platform's compile flags to each group.
type Categorizer struct {
	table    Table
	families []target.Family
	headers  []string
	emulator flags.Emulator
}

// New creates a Categorizer. Families are visited in name order.
func New(table Table, headers []string, emulator flags.Emulator) *Categorizer {
	families := make([]target.Family, 0, len(table))
	for f := range table {
		families = append(families, f)
	}
	sort.Slice(families, func(i, j int) bool { return families[i] < families[j] })

	return &Categorizer{
		table:    table,
		families: families,
		headers:  headers,
		emulator: emulator,
	}
}

// Categorize splits srcs (normally n.CompiledSources()) into family groups.
// Headers are added to every family that received at least one source;
// families with no sources are omitted. Sources matching neither a family
// nor a header extension are dropped.
func (c *Categorizer) Categorize(n *target.Node, srcs []string) []Group {
	var headers []string
	byFamily := make(map[target.Family][]string, len(c.families))

	for _, s := range srcs {
		if target.HasExtension(s, c.headers) {
			headers = append(headers, s)
			continue
		}
		for _, f := range c.families {
			if target.HasExtension(s, c.table[f]) {
				byFamily[f] = append(byFamily[f], s)
				break
			}
		}
	}

	var groups []Group
	for _, f := range c.families {
		files := byFamily[f]
		if len(files) == 0 {
			continue
		}
		files = append(files, headers...)
		files = target.Unique(files)
		sort.Strings(files)
		groups = append(groups, Group{
			Family:  f,
			Sources: files,
			Flags:   c.emulator.CompileFlags(n, f),
		})
	}
	return groups
}
