// Package props flattens per-configuration property lists and decides how
// they are split between unconditional statements and configuration-guarded
// blocks.
package props

import "sort"

// Accessor returns the ordered tokens of one property. An empty configuration
// name asks for the general (configuration-independent) tokens.
type Accessor func(configuration string) []string

// Resolved holds one property's general list and the flattened list of every
// configuration present on a node.
type Resolved struct {
	General []string
	// Configurations lists the configuration names, sorted.
	Configurations []string
	// Flattened maps a configuration to general+specific, in that order.
	Flattened map[string][]string
}

// Resolve evaluates acc for the general case and every configuration in
// configurations. Flattening is unconditional: each configuration's list
// always starts with the general list.
func Resolve(acc Accessor, configurations []string) Resolved {
	names := append([]string(nil), configurations...)
	sort.Strings(names)

	general := clone(acc(""))
	r := Resolved{
		General:        general,
		Configurations: names,
		Flattened:      make(map[string][]string, len(names)),
	}
	for _, name := range names {
		flat := make([]string, 0, len(general))
		flat = append(flat, general...)
		flat = append(flat, acc(name)...)
		r.Flattened[name] = flat
	}
	return r
}

// Block is one group of tokens. An empty Configuration means the tokens apply
// unconditionally.
type Block struct {
	Configuration string
	Tokens        []string
}

// Plan is what the emitter writes for one property statement.
type Plan struct {
	Common []string
	Guards []Block
}

// Empty reports whether the plan emits nothing at all.
func (p Plan) Empty() bool {
	if len(p.Common) > 0 {
		return false
	}
	for _, g := range p.Guards {
		if len(g.Tokens) > 0 {
			return false
		}
	}
	return true
}

// Ordered plans a property whose token order is significant. Identical
// flattened lists collapse into one unconditional list. Otherwise the general
// list is emitted unconditionally and every configuration gets its full
// flattened list, redundancy included.
func (r Resolved) Ordered() Plan {
	if len(r.Configurations) == 0 {
		return Plan{Common: r.General}
	}

	first := r.Flattened[r.Configurations[0]]
	same := true
	for _, name := range r.Configurations[1:] {
		if !equal(first, r.Flattened[name]) {
			same = false
			break
		}
	}
	if same {
		return Plan{Common: first}
	}

	p := Plan{Common: r.General}
	for _, name := range r.Configurations {
		p.Guards = append(p.Guards, Block{Configuration: name, Tokens: r.Flattened[name]})
	}
	return p
}

// Reorderable plans a property whose tokens form a set. The intersection of
// all flattened sets is emitted unconditionally; each configuration keeps
// only its residual. Configurations with an empty residual get no block.
// Tokens keep first-occurrence order.
func (r Resolved) Reorderable() Plan {
	if len(r.Configurations) == 0 {
		return Plan{Common: dedup(r.General)}
	}

	common := dedup(r.Flattened[r.Configurations[0]])
	for _, name := range r.Configurations[1:] {
		common = intersect(common, r.Flattened[name])
	}
	inCommon := toSet(common)

	p := Plan{Common: common}
	for _, name := range r.Configurations {
		var residual []string
		for _, tok := range dedup(r.Flattened[name]) {
			if _, ok := inCommon[tok]; !ok {
				residual = append(residual, tok)
			}
		}
		if len(residual) > 0 {
			p.Guards = append(p.Guards, Block{Configuration: name, Tokens: residual})
		}
	}
	return p
}

func intersect(ordered, other []string) []string {
	set := toSet(other)
	var out []string
	for _, tok := range ordered {
		if _, ok := set[tok]; ok {
			out = append(out, tok)
		}
	}
	return out
}

func dedup(tokens []string) []string {
	seen := make(map[string]struct{}, len(tokens))
	var out []string
	for _, tok := range tokens {
		if _, ok := seen[tok]; ok {
			continue
		}
		seen[tok] = struct{}{}
		out = append(out, tok)
	}
	return out
}

func toSet(tokens []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tokens))
	for _, tok := range tokens {
		set[tok] = struct{}{}
	}
	return set
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func clone(s []string) []string {
	if len(s) == 0 {
		return nil
	}
	return append([]string(nil), s...)
}
