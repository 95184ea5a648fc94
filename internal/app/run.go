package app

import (
	"context"
	"fmt"

	"github.com/specialistvlad/gypcmake/internal/ctxlog"
	"github.com/specialistvlad/gypcmake/internal/driver"
	"github.com/specialistvlad/gypcmake/internal/snapshot"
)

// Run loads the snapshot and translates it into the output directory, or
// compares against it in check mode.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	snap, err := snapshot.Load(ctx, a.config.SnapshotPath)
	if err != nil {
		return fmt.Errorf("failed to load snapshot: %w", err)
	}
	if len(snap.Platforms) == 0 {
		a.logger.Warn("Snapshot has no platforms, only the root index will be written.")
	}

	if a.config.Clean {
		if _, err := driver.Clean(ctx, a.config.OutDir); err != nil {
			return fmt.Errorf("failed to clean %s: %w", a.config.OutDir, err)
		}
	}

	var (
		sink  driver.Sink
		files *driver.FileSink
	)
	if a.config.Check {
		sink = driver.NewCheckSink(a.config.OutDir, a.outW)
	} else {
		files = driver.NewFileSink(a.config.OutDir)
		sink = files
	}

	d := driver.New(a.settings, sink, driver.WithParallel(a.config.Parallel))
	if err := d.Run(ctx, snap); err != nil {
		return fmt.Errorf("translation failed: %w", err)
	}
	if files != nil {
		written := files.Written()
		a.logger.Info("Output written.", "dir", a.config.OutDir, "files", len(written))
		a.logger.Debug("Written files.", "paths", written)
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}
