package ingest

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"github.com/FACorreiaa/statement-extractor/internal/domain/statement"
	"github.com/FACorreiaa/statement-extractor/internal/domain/statement/service"
)

// ResultSink receives each processed document from a watcher run.
type ResultSink func(statement.DocumentResult)

// Watcher polls an input directory on a cron schedule and processes text
// dumps that appeared since the last run. Files are remembered by path, so a
// dump is processed once per watcher lifetime.
type Watcher struct {
	cron      *cron.Cron
	dir       string
	spec      string
	processor *service.Processor
	sink      ResultSink
	logger    *slog.Logger

	mu   sync.Mutex
	seen map[string]bool
}

// NewWatcher creates a watcher over dir with a standard 5-field cron spec.
func NewWatcher(dir, spec string, processor *service.Processor, sink ResultSink, logger *slog.Logger) *Watcher {
	if logger == nil {
		logger = slog.Default()
	}
	c := cron.New(cron.WithLogger(cron.VerbosePrintfLogger(slog.NewLogLogger(logger.Handler(), slog.LevelDebug))))

	return &Watcher{
		cron:      c,
		dir:       dir,
		spec:      spec,
		processor: processor,
		sink:      sink,
		logger:    logger,
		seen:      make(map[string]bool),
	}
}

// Start registers the scan job and begins the schedule. The first scan runs
// immediately so a pre-populated directory is drained without waiting a tick.
func (w *Watcher) Start() error {
	if _, err := w.cron.AddFunc(w.spec, w.scan); err != nil {
		return err
	}
	w.scan()
	w.cron.Start()
	w.logger.Info("ingest watcher started",
		slog.String("dir", w.dir),
		slog.String("schedule", w.spec),
	)
	return nil
}

// Stop halts the schedule; a scan already in flight finishes.
func (w *Watcher) Stop() {
	w.cron.Stop()
}

func (w *Watcher) scan() {
	runID := uuid.New()

	paths, err := ScanDir(w.dir)
	if err != nil {
		w.logger.Error("scan failed",
			slog.String("run_id", runID.String()),
			slog.String("error", err.Error()),
		)
		return
	}

	processed := 0
	for _, path := range paths {
		if !w.markSeen(path) {
			continue
		}

		text, err := ReadFile(path)
		if err != nil {
			w.logger.Error("skipping unreadable dump",
				slog.String("run_id", runID.String()),
				slog.String("path", path),
				slog.String("error", err.Error()),
			)
			continue
		}

		w.sink(w.processor.Process(text))
		processed++
	}

	if processed > 0 {
		w.logger.Info("watcher run complete",
			slog.String("run_id", runID.String()),
			slog.Int("processed", processed),
		)
	}
}

// markSeen records the path and reports whether it was new.
func (w *Watcher) markSeen(path string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.seen[path] {
		return false
	}
	w.seen[path] = true
	return true
}
