// Command extractor processes pre-extracted credit-card statement text dumps
// and writes the five extracted fields per document as CSV, JSON or XLSX.
//
// Usage:
//
//	extractor [flags] [dump.txt ...]
//
// Files may also come from an input directory, optionally watched on a cron
// schedule. Configuration comes from env vars (see pkg/config); flags
// override.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/FACorreiaa/statement-extractor/internal/domain/profile"
	"github.com/FACorreiaa/statement-extractor/internal/domain/statement"
	"github.com/FACorreiaa/statement-extractor/internal/domain/statement/service"
	"github.com/FACorreiaa/statement-extractor/internal/export"
	"github.com/FACorreiaa/statement-extractor/internal/ingest"
	"github.com/FACorreiaa/statement-extractor/pkg/config"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "extractor:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	profilesPath := flag.String("profiles", cfg.Extraction.ProfilesPath, "JSON profile file (empty = built-in profiles)")
	inputDir := flag.String("input", cfg.Extraction.InputDir, "directory of .txt statement dumps")
	format := flag.String("format", cfg.Output.Format, "output format: csv, json or xlsx")
	output := flag.String("output", cfg.Output.Path, "output path (default stdout; required for xlsx)")
	watch := flag.Bool("watch", cfg.Watch.Enabled, "watch the input directory on a schedule")
	watchSpec := flag.String("watch-spec", cfg.Watch.Spec, "cron schedule for watch mode")
	flag.Parse()

	logger := newLogger(cfg.Logging)
	slog.SetDefault(logger)

	// A broken profile set must stop the process before any document is read.
	registry, err := loadRegistry(*profilesPath)
	if err != nil {
		return fmt.Errorf("profile configuration: %w", err)
	}
	logger.Info("profiles loaded", slog.Int("issuers", registry.Len()))

	processor := service.NewProcessor(registry, logger)

	if *watch {
		return runWatch(*inputDir, *watchSpec, processor, logger)
	}

	paths := flag.Args()
	if *inputDir != "" {
		dirPaths, err := ingest.ScanDir(*inputDir)
		if err != nil {
			return err
		}
		paths = append(paths, dirPaths...)
	}
	if len(paths) == 0 {
		return fmt.Errorf("no input files (pass dump paths or set -input)")
	}

	results := make([]statement.DocumentResult, 0, len(paths))
	for _, path := range paths {
		text, err := ingest.ReadFile(path)
		if err != nil {
			logger.Error("skipping unreadable dump", slog.String("path", path), slog.String("error", err.Error()))
			continue
		}
		results = append(results, processor.Process(text))
	}

	return writeResults(*format, *output, results)
}

func loadRegistry(path string) (*profile.Registry, error) {
	if path == "" {
		return profile.NewRegistry(profile.Builtin())
	}
	return profile.LoadFile(path)
}

func runWatch(dir, spec string, processor *service.Processor, logger *slog.Logger) error {
	if dir == "" {
		return fmt.Errorf("watch mode requires -input")
	}

	sink := func(r statement.DocumentResult) {
		if err := export.WriteJSON(os.Stdout, []statement.DocumentResult{r}); err != nil {
			logger.Error("write result", slog.String("error", err.Error()))
		}
	}

	watcher := ingest.NewWatcher(dir, spec, processor, sink, logger)
	if err := watcher.Start(); err != nil {
		return err
	}
	defer watcher.Stop()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	logger.Info("shutting down")
	return nil
}

func writeResults(format, output string, results []statement.DocumentResult) error {
	if format == "xlsx" {
		return export.WriteXLSX(output, results)
	}

	var w io.Writer = os.Stdout
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		w = f
	}

	switch format {
	case "csv":
		return export.WriteCSV(w, results)
	default:
		return export.WriteJSON(w, results)
	}
}

func newLogger(cfg config.LoggingConfig) *slog.Logger {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}
