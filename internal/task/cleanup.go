// Package task runs background work that should not block request
// handling. Its single current job is removing image artifacts left
// behind by deleted documents.
package task

import (
	"log/slog"
	"sync"
)

// Remover deletes a stored artifact by path.
type Remover interface {
	Remove(path string) error
}

// CleanupConfig holds configuration for the cleanup worker pool.
type CleanupConfig struct {
	// WorkerCount determines how many concurrent workers remove artifacts
	WorkerCount int

	// QueueSize determines the buffer size for the in-memory queue
	QueueSize int
}

// DefaultCleanupConfig returns a CleanupConfig with reasonable defaults.
func DefaultCleanupConfig() CleanupConfig {
	return CleanupConfig{
		WorkerCount: 2,
		QueueSize:   100,
	}
}

// CleanupWorker removes artifacts asynchronously. Dispatch never blocks
// a caller; failures are logged, not surfaced, since the owning
// document is already gone by the time cleanup runs.
type CleanupWorker struct {
	remover Remover
	paths   chan string
	wg      sync.WaitGroup
	logger  *slog.Logger
}

// NewCleanupWorker creates a CleanupWorker. Call Start before
// dispatching and Stop to drain on shutdown.
func NewCleanupWorker(remover Remover, cfg CleanupConfig, logger *slog.Logger) *CleanupWorker {
	if logger == nil {
		logger = slog.Default()
	}
	return &CleanupWorker{
		remover: remover,
		paths:   make(chan string, cfg.QueueSize),
		logger:  logger.With(slog.String("component", "cleanup_worker")),
	}
}

// Start launches the worker goroutines.
func (w *CleanupWorker) Start(workerCount int) {
	for i := 0; i < workerCount; i++ {
		w.wg.Add(1)
		go w.worker()
	}
}

// Dispatch queues an artifact for removal. When the queue is full the
// path is dropped with a warning rather than blocking the caller.
func (w *CleanupWorker) Dispatch(path string) {
	if path == "" {
		return
	}
	select {
	case w.paths <- path:
	default:
		w.logger.Warn("cleanup queue full, dropping artifact",
			slog.String("path", path))
	}
}

// Stop closes the queue and waits for in-flight removals to finish.
func (w *CleanupWorker) Stop() {
	close(w.paths)
	w.wg.Wait()
}

func (w *CleanupWorker) worker() {
	defer w.wg.Done()
	for path := range w.paths {
		if err := w.remover.Remove(path); err != nil {
			w.logger.Error("failed to remove artifact",
				slog.String("path", path),
				slog.String("error", err.Error()))
			continue
		}
		w.logger.Debug("removed artifact", slog.String("path", path))
	}
}
