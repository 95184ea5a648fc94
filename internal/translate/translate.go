// Package translate runs a single node through classification lookup,
// dependency partitioning, source grouping and property resolution, and
// writes its platform-guarded block.
package translate

import (
	"bytes"
	"context"
	"fmt"

	"github.com/specialistvlad/gypcmake/internal/classify"
	"github.com/specialistvlad/gypcmake/internal/cmake"
	"github.com/specialistvlad/gypcmake/internal/ctxlog"
	"github.com/specialistvlad/gypcmake/internal/deps"
	"github.com/specialistvlad/gypcmake/internal/flags"
	"github.com/specialistvlad/gypcmake/internal/props"
	"github.com/specialistvlad/gypcmake/internal/sources"
	"github.com/specialistvlad/gypcmake/internal/target"
	"github.com/specialistvlad/gypcmake/internal/targetid"
)

// Translator holds everything one platform pass shares between nodes.
type Translator struct {
	os             target.OS
	graph          *target.Graph
	classes        *classify.Result
	partitioner    *deps.Partitioner
	categorizer    *sources.Categorizer
	emulator       flags.Emulator
	configurations []string
	genRoot        string
}

// Options configure a Translator.
type Options struct {
	OS             target.OS
	Configurations []string
	GeneratedRoot  string
	Policy         deps.Policy
	Families       sources.Table
	Headers        []string
}

// New classifies g and prepares the per-pass collaborators. It fails with
// fault.UnsupportedPlatform when the OS has no flag emulation, and with
// fault.InvalidTarget for unknown node kinds.
func New(g *target.Graph, opts Options) (*Translator, error) {
	emulator, err := flags.For(opts.OS)
	if err != nil {
		return nil, err
	}
	classes, err := classify.Classify(g, classify.Options{
		HeaderExtensions: opts.Headers,
		GeneratedRoot:    opts.GeneratedRoot,
	})
	if err != nil {
		return nil, fmt.Errorf("classifying %s: %w", g.Platform, err)
	}

	return &Translator{
		os:             opts.OS,
		graph:          g,
		classes:        classes,
		partitioner:    deps.New(g, classes, opts.Policy),
		categorizer:    sources.New(opts.Families, opts.Headers, emulator),
		emulator:       emulator,
		configurations: opts.Configurations,
		genRoot:        opts.GeneratedRoot,
	}, nil
}

// Emulator names the compile-flag emulation chosen for the pass.
func (t *Translator) Emulator() string {
	return t.emulator.Name()
}

// Classes returns the pass's classification.
func (t *Translator) Classes() *classify.Result {
	return t.classes
}

// Node writes the block of n into buf.
func (t *Translator) Node(ctx context.Context, buf *bytes.Buffer, n *target.Node) error {
	logger := ctxlog.FromContext(ctx)

	name, err := targetid.ShortName(n.ID)
	if err != nil {
		return err
	}
	part, err := t.partitioner.Split(n)
	if err != nil {
		return err
	}
	linkNames, err := shortNames(part.Link)
	if err != nil {
		return err
	}
	orderNames, err := shortNames(part.OrderOnly)
	if err != nil {
		return err
	}
	allNames, err := shortNames(part.All)
	if err != nil {
		return err
	}

	configs := t.present(n)
	if len(configs) == 0 && len(n.Configurations) > 0 {
		logger.Warn("Node has no recognized configurations.", "node", n.ID, "recognized", t.configurations)
	}

	shape := t.classes.ShapeOf(n.ID)
	logger.Debug("Translating node.", "node", n.ID, "shape", shape.String(), "link", len(linkNames), "order_only", len(orderNames))

	w := cmake.NewWriter(buf, t.genRoot)
	w.PlatformStart(t.os)
	for _, a := range n.Actions {
		w.CustomCommand(a)
	}

	switch {
	case shape == classify.GeneratedLibrary:
		w.GeneratedLibrary(name, cmake.LibraryType(n.Kind), allSources(n))
		t.copies(w, n)

	case shape == classify.InterfaceLibrary && len(allSources(n)) == 0:
		w.InterfaceLibrary(name)
		cc := t.emulator.CompileFlags(n, target.FamilyCC)
		w.Plan(cmake.TargetCompileOptions, name, props.Resolve(cc, configs).Ordered())
		w.Plan(cmake.TargetIncludeDirectories, name, props.Resolve(includeDirs(n), configs).Ordered())
		w.Plan(cmake.TargetCompileDefinitions, name, props.Resolve(defines(n), configs).Reorderable())
		w.Plan(cmake.TargetLinkLibraries, name, props.Resolve(linkLibraries(n, linkNames), configs).Reorderable())
		t.copies(w, n)

	case shape == classify.InterfaceLibrary, n.Kind == target.None:
		w.CustomTarget(name, allNames, allSources(n))
		t.copies(w, n)

	default:
		t.compiled(w, n, name, configs, linkNames, orderNames)
	}

	w.PlatformEnd()
	return nil
}

func (t *Translator) compiled(w *cmake.Writer, n *target.Node, name string, configs, linkNames, orderNames []string) {
	groups := t.categorizer.Categorize(n, n.CompiledSources())
	families := make([]target.Family, 0, len(groups))

	for _, g := range groups {
		families = append(families, g.Family)
		group := cmake.ObjectGroupName(name, g.Family)

		w.ObjectLibrary(name, g.Family, g.Sources)
		w.Plan(cmake.TargetCompileOptions, group, props.Resolve(g.Flags, configs).Ordered())
		w.Plan(cmake.TargetIncludeDirectories, group, props.Resolve(includeDirs(n), configs).Ordered())
		w.Plan(cmake.TargetCompileDefinitions, group, props.Resolve(defines(n), configs).Reorderable())

		var generated []string
		for _, s := range g.Sources {
			if t.classes.IsGeneratedSource(s) {
				generated = append(generated, s)
			}
		}
		w.MarkGenerated(generated)
		w.Properties(cmake.AddDependencies, group, orderNames)
	}

	t.copies(w, n)
	w.Artifact(n.Kind, name, families)
	w.Plan(cmake.TargetLinkLibraries, name, props.Resolve(linkLibraries(n, linkNames), configs).Reorderable())
}

func (t *Translator) copies(w *cmake.Writer, n *target.Node) {
	for _, c := range n.Copies {
		w.Copy(c)
	}
}

// present returns the recognized configurations n actually declares.
func (t *Translator) present(n *target.Node) []string {
	var out []string
	for _, c := range t.configurations {
		if _, ok := n.Configurations[c]; ok {
			out = append(out, c)
		}
	}
	return out
}

// allSources is the declared sources followed by every action output.
func allSources(n *target.Node) []string {
	all := append([]string(nil), n.Sources...)
	all = append(all, n.ActionOutputs()...)
	return target.Unique(all)
}

func shortNames(ids []string) ([]string, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		name, err := targetid.ShortName(id)
		if err != nil {
			return nil, err
		}
		out = append(out, name)
	}
	return target.Unique(out), nil
}
