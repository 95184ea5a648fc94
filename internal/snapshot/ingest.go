package snapshot

import (
	"fmt"
	"strings"

	"github.com/specialistvlad/gypcmake/internal/fault"
	"github.com/specialistvlad/gypcmake/internal/target"
	"github.com/specialistvlad/gypcmake/internal/targetid"
)

// DefaultPlaceholder is the generated-output root the analysis generator
// writes into every path it emits.
const DefaultPlaceholder = "${CMAKE_BINARY_DIR}/generated_$$ncg_guid$$"

// Ingest normalizes one platform into a graph. Node and dependency ids are
// rewritten against the platform root, and every occurrence of placeholder
// is replaced by genRoot. The raw platform is left untouched. memo may be
// shared by the passes of one run; nil uses a private one.
func Ingest(name string, p *Platform, placeholder, genRoot string, memo *targetid.Memo) (*target.Graph, error) {
	os, err := target.SystemName(name)
	if err != nil {
		return nil, fault.New(fault.UnsupportedPlatform, name, err.Error())
	}
	style := targetid.Posix
	if os == target.Windows {
		style = targetid.Windows
	}

	norm := targetid.NewNormalizer(p.Root(), style, memo)
	r := replacer(placeholder, genRoot)

	g := &target.Graph{
		Platform: name,
		Root:     p.Root(),
		Nodes:    make(map[string]*target.Node, len(p.Targets)),
	}
	origin := make(map[string]string, len(p.Targets))

	for raw, src := range p.Targets {
		if src == nil {
			return nil, fault.New(fault.InvalidTarget, raw, "empty target definition")
		}
		id, err := norm.Normalize(raw)
		if err != nil {
			return nil, err
		}
		parsed, err := targetid.Parse(id)
		if err != nil {
			return nil, err
		}
		if parsed.Escapes() {
			return nil, fault.Newf(fault.InvalidIdentifier, raw, "resolves to %q, outside the working root %s", id, p.Root())
		}
		if prev, ok := origin[id]; ok {
			return nil, fault.Newf(fault.NameCollision, id, "both %q and %q normalize to it", prev, raw)
		}
		origin[id] = raw

		n := resolve(src, r)
		n.ID = id
		if n.Dependencies, err = norm.NormalizeAll(n.Dependencies); err != nil {
			return nil, fmt.Errorf("dependencies of %s: %w", raw, err)
		}
		if n.DependenciesOriginal, err = norm.NormalizeAll(n.DependenciesOriginal); err != nil {
			return nil, fmt.Errorf("original dependencies of %s: %w", raw, err)
		}
		g.Nodes[id] = n
	}
	return g, nil
}

func replacer(placeholder, genRoot string) *strings.Replacer {
	if placeholder == "" || placeholder == genRoot {
		return nil
	}
	return strings.NewReplacer(placeholder, genRoot)
}

// resolve returns a copy of n with the placeholder substituted in every
// path, flag and command token.
func resolve(n *target.Node, r *strings.Replacer) *target.Node {
	out := *n
	out.Sources = list(r, n.Sources)
	out.Dependencies = append([]string(nil), n.Dependencies...)
	out.DependenciesOriginal = append([]string(nil), n.DependenciesOriginal...)
	out.Properties = properties(r, n.Properties)

	out.Actions = nil
	for _, a := range n.Actions {
		a.Inputs = list(r, a.Inputs)
		a.Outputs = list(r, a.Outputs)
		a.Command = list(r, a.Command)
		out.Actions = append(out.Actions, a)
	}

	out.Copies = nil
	for _, c := range n.Copies {
		c.Destination = str(r, c.Destination)
		c.Files = list(r, c.Files)
		out.Copies = append(out.Copies, c)
	}

	if n.Configurations != nil {
		out.Configurations = make(map[string]target.Properties, len(n.Configurations))
		for name, cfg := range n.Configurations {
			out.Configurations[name] = properties(r, cfg)
		}
	}
	return &out
}

func properties(r *strings.Replacer, p target.Properties) target.Properties {
	return target.Properties{
		Defines:       list(r, p.Defines),
		IncludeDirs:   list(r, p.IncludeDirs),
		Cflags:        list(r, p.Cflags),
		CflagsC:       list(r, p.CflagsC),
		CflagsCC:      list(r, p.CflagsCC),
		Libraries:     list(r, p.Libraries),
		Ldflags:       list(r, p.Ldflags),
		XcodeSettings: p.XcodeSettings,
	}
}

func list(r *strings.Replacer, items []string) []string {
	if items == nil {
		return nil
	}
	out := make([]string, len(items))
	for i, s := range items {
		out[i] = str(r, s)
	}
	return out
}

func str(r *strings.Replacer, s string) string {
	if r == nil {
		return s
	}
	return r.Replace(s)
}
