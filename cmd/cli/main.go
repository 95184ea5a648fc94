package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/specialistvlad/gypcmake/internal/app"
	"github.com/specialistvlad/gypcmake/internal/cli"
)

// main is the entrypoint for the gypcmake application.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Stdout, os.Args[1:])
	stop()
	os.Exit(exitCode(os.Stderr, err))
}

// exitCode prints err to w and maps it to a process exit status. Usage
// errors carry their own code; everything else exits 1.
func exitCode(w io.Writer, err error) int {
	if err == nil {
		return 0
	}
	var exitErr *cli.ExitError
	if errors.As(err, &exitErr) {
		if exitErr.Message != "" {
			fmt.Fprintln(w, exitErr.Message)
		}
		return exitErr.Code
	}
	fmt.Fprintln(w, "gypcmake:", err)
	return 1
}

// run encapsulates the main application logic for easier testing and error handling.
func run(ctx context.Context, outW io.Writer, args []string) error {
	appConfig, shouldExit, err := cli.Parse(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	gypcmake, err := app.NewApp(outW, appConfig)
	if err != nil {
		return fmt.Errorf("application startup failed: %w", err)
	}

	return gypcmake.Run(ctx)
}
