package driver

import (
	"bytes"
	"context"
	"fmt"
	"path"

	"github.com/specialistvlad/gypcmake/internal/cmake"
	"github.com/specialistvlad/gypcmake/internal/config"
	"github.com/specialistvlad/gypcmake/internal/ctxlog"
	"github.com/specialistvlad/gypcmake/internal/dag"
	"github.com/specialistvlad/gypcmake/internal/fault"
	"github.com/specialistvlad/gypcmake/internal/snapshot"
	"github.com/specialistvlad/gypcmake/internal/target"
	"github.com/specialistvlad/gypcmake/internal/targetid"
	"github.com/specialistvlad/gypcmake/internal/translate"
	"golang.org/x/sync/errgroup"
)

// Driver translates snapshots into a CMake tree. A Driver is used for one run.
type Driver struct {
	settings *config.Settings
	sink     Sink
	parallel bool

	names *registry
	ids   *targetid.Memo

	included     map[string]struct{}
	rootIncludes []string
	dirs         map[string]struct{}
}

// Option customizes a Driver.
type Option func(*Driver)

// WithParallel runs platform passes concurrently.
func WithParallel(parallel bool) Option {
	return func(d *Driver) { d.parallel = parallel }
}

// New creates a Driver writing to sink.
func New(settings *config.Settings, sink Sink, opts ...Option) *Driver {
	d := &Driver{
		settings: settings,
		sink:     sink,
		names:    newRegistry(),
		ids:      targetid.NewMemo(targetid.DefaultMemoSize),
		included: make(map[string]struct{}),
		dirs:     make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// fragment is one target's block for one platform.
type fragment struct {
	dir  string
	name string
	data []byte
}

// pass is the buffered result of translating one platform.
type pass struct {
	platform  string
	fragments []fragment
}

// Run translates every platform of snap, in platform-key order, and writes
// the root index. The first error aborts the run; passes already flushed
// stay in the sink.
func (d *Driver) Run(ctx context.Context, snap *snapshot.Snapshot) error {
	logger := ctxlog.FromContext(ctx)
	names := snap.Names()
	logger.Info("Starting translation.", "platforms", names, "parallel", d.parallel, "generated_root", d.settings.GeneratedRoot())

	if d.parallel {
		results := make([]*pass, len(names))
		g, gctx := errgroup.WithContext(ctx)
		for i, name := range names {
			i, name := i, name
			g.Go(func() error {
				p, err := d.translate(gctx, name, snap.Platforms[name])
				if err != nil {
					return err
				}
				results[i] = p
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}
		for _, p := range results {
			if err := d.flush(ctx, p); err != nil {
				return err
			}
		}
	} else {
		for _, name := range names {
			p, err := d.translate(ctx, name, snap.Platforms[name])
			if err != nil {
				return err
			}
			if err := d.flush(ctx, p); err != nil {
				return err
			}
		}
	}

	if err := d.writeRoot(ctx); err != nil {
		return err
	}
	if err := d.sink.Close(); err != nil {
		return err
	}
	logger.Info("Translation finished.", "targets", len(d.included), "directories", len(d.dirs), "cached_ids", d.ids.Len())
	return nil
}

// translate runs one platform pass into memory.
func (d *Driver) translate(ctx context.Context, name string, p *snapshot.Platform) (*pass, error) {
	ctx, logger := ctxlog.With(ctx, "platform", name)

	os, err := target.SystemName(name)
	if err != nil {
		return nil, fault.New(fault.UnsupportedPlatform, name, err.Error())
	}

	g, err := snapshot.Ingest(name, p, d.settings.Placeholder, d.settings.GeneratedRoot(), d.ids)
	if err != nil {
		return nil, fmt.Errorf("platform %s: %w", name, err)
	}
	logger.Debug("Snapshot ingested.", "source", p.Source(), "targets", len(g.Nodes), "root", g.Root)

	validation, err := dag.FromTargets(g)
	if err != nil {
		return nil, fmt.Errorf("platform %s: %w", name, err)
	}
	if err := validation.DetectCycles(); err != nil {
		logger.Warn("Dependency cycle in snapshot.", "error", err)
	}
	logger.Debug("Dependency graph validated.", "nodes", validation.Len())

	tr, err := translate.New(g, translate.Options{
		OS:             os,
		Configurations: d.settings.Configurations,
		GeneratedRoot:  d.settings.GeneratedRoot(),
		Policy:         d.settings.Policy,
		Families:       d.settings.Families,
		Headers:        d.settings.HeaderExtensions,
	})
	if err != nil {
		return nil, fmt.Errorf("platform %s: %w", name, err)
	}

	out := &pass{platform: name}
	for _, id := range g.IDs() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		tid, err := targetid.Parse(id)
		if err != nil {
			return nil, err
		}
		dir := tid.Dir()
		if err := d.names.claim(name, cmake.ListsPath(dir), tid.Name, id); err != nil {
			return nil, err
		}

		var buf bytes.Buffer
		if err := tr.Node(ctx, &buf, g.Nodes[id]); err != nil {
			return nil, fmt.Errorf("platform %s: %w", name, err)
		}
		out.fragments = append(out.fragments, fragment{dir: dir, name: tid.Name, data: buf.Bytes()})
	}

	cls := tr.Classes()
	logger.Info("Platform translated.",
		"system", string(os),
		"flags", tr.Emulator(),
		"targets", len(out.fragments),
		"executables", len(cls.Executables()),
		"generated_libraries", len(cls.GeneratedLibraries()),
		"interface_libraries", len(cls.InterfaceLibraries()),
	)
	return out, nil
}

// flush hands one pass's fragments to the sink.
func (d *Driver) flush(ctx context.Context, p *pass) error {
	logger := ctxlog.FromContext(ctx)
	for _, f := range p.fragments {
		if err := d.sink.Append(cmake.FragmentPath(f.dir, f.name), f.data); err != nil {
			return err
		}

		key := path.Join(f.dir, f.name)
		if _, ok := d.included[key]; ok {
			continue
		}
		d.included[key] = struct{}{}

		if f.dir == "" {
			d.rootIncludes = append(d.rootIncludes, f.name)
			continue
		}
		d.dirs[f.dir] = struct{}{}
		if err := d.sink.Append(cmake.ListsPath(f.dir), []byte(cmake.IncludeLine(f.name))); err != nil {
			return err
		}
	}
	logger.Debug("Platform flushed.", "platform", p.platform, "fragments", len(p.fragments))
	return nil
}

func (d *Driver) writeRoot(ctx context.Context) error {
	dirs := make([]string, 0, len(d.dirs))
	for dir := range d.dirs {
		dirs = append(dirs, dir)
	}
	idx := cmake.RootIndex{
		MinimumVersion: d.settings.MinimumVersion,
		GeneratedRoot:  d.settings.GeneratedRoot(),
		Includes:       d.rootIncludes,
		Subdirectories: dirs,
	}
	ctxlog.FromContext(ctx).Debug("Writing root index.", "includes", len(idx.Includes), "subdirectories", len(dirs))
	return d.sink.Append(cmake.ListsPath(""), idx.Render())
}
