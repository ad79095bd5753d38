package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/five82/copycat/internal/app"
	"github.com/five82/copycat/internal/bundle"
	"github.com/five82/copycat/internal/cli"
	"github.com/five82/copycat/internal/config"
	"github.com/five82/copycat/internal/telemetry"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Stdout, os.Stderr, os.Args[1:])
	cancel()
	os.Exit(code)
}

func run(ctx context.Context, stdout, stderr io.Writer, args []string) int {
	cmd, shouldExit, err := cli.Parse(args, stderr)
	if err != nil {
		return report(stderr, err)
	}
	if shouldExit {
		return 0
	}

	cfg, err := config.Load(cmd.ConfigPath)
	if err != nil {
		return report(stderr, err)
	}
	if err := cmd.Apply(&cfg); err != nil {
		return report(stderr, err)
	}

	logOut := io.Writer(stderr)
	if cmd.Name == cli.CmdTUI {
		// Anything written to the terminal would corrupt the alternate screen.
		f, err := app.OpenLogFile(cfg.Log.File)
		if err != nil {
			return report(stderr, err)
		}
		defer f.Close()
		logOut = f
	}
	logger, err := app.NewLogger(cfg.Log.Level, cfg.Log.Format, logOut)
	if err != nil {
		return report(stderr, &cli.ExitError{Code: 2, Message: err.Error()})
	}
	slog.SetDefault(logger)

	tp, err := telemetry.Setup(ctx)
	if err != nil {
		logger.Warn("tracing disabled", "error", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(shutdownCtx); err != nil {
			logger.Warn("tracing shutdown failed", "error", err)
		}
	}()

	src := app.Sources{
		Appletsrc:   cfg.Appletsrc,
		KWinRC:      cfg.KWinRC,
		KWinRulesRC: cfg.KWinRulesRC,
	}

	switch cmd.Name {
	case cli.CmdScan:
		err = scan(ctx, stdout, src, logger)
	case cli.CmdExport:
		err = export(ctx, stdout, src, cfg, logger)
	case cli.CmdTUI:
		err = app.RunViewer(ctx, app.ViewerOptions{
			Sources: src,
			Refresh: time.Duration(cfg.Viewer.RefreshSeconds) * time.Second,
			Logger:  logger,
		})
	}
	if err != nil {
		return report(stderr, err)
	}
	return 0
}

func scan(ctx context.Context, stdout io.Writer, src app.Sources, logger *slog.Logger) error {
	l, err := app.Scan(ctx, src, logger)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(l); err != nil {
		return fmt.Errorf("write layout: %w", err)
	}
	return nil
}

func export(ctx context.Context, stdout io.Writer, src app.Sources, cfg config.Config, logger *slog.Logger) error {
	res, err := app.Export(ctx, src, bundle.Options{
		OutDir:          cfg.Export.OutDir,
		Snapshot:        cfg.Export.Snapshot,
		BundlePlasmoids: cfg.Export.BundlePlasmoids,
		PlasmoidDirs:    cfg.Export.PlasmoidDirs,
		Logger:          logger,
	})
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout, res.Dir)
	return nil
}

// report prints err and returns its exit code: the ExitError's own code, or
// 1 for runtime failures.
func report(stderr io.Writer, err error) int {
	var exitErr *cli.ExitError
	if errors.As(err, &exitErr) {
		fmt.Fprintf(stderr, "copycat: %s\n", exitErr.Message)
		return exitErr.Code
	}
	fmt.Fprintf(stderr, "copycat: %v\n", err)
	return 1
}
