package scanner

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/dgnsrekt/optionsdesk/internal/chain"
)

// Task names one symbol's snapshot file to scan.
type Task struct {
	Symbol string
	Path   string
}

func (t Task) String() string {
	return fmt.Sprintf("%s (%s)", t.Symbol, t.Path)
}

// TaskResult is the per-symbol outcome.
type TaskResult struct {
	Task        Task
	Report      *SymbolReport
	Unavailable bool
	Error       error
}

// BatchResult aggregates a whole scan run.
type BatchResult struct {
	RunID       string
	Total       int
	Success     int
	Unavailable int
	Failed      int
	Errors      []string
	Reports     []SymbolReport
}

// Manager fans a scan batch out over a worker pool. Missing or unreadable
// snapshots mark the symbol unavailable without aborting the batch.
type Manager struct {
	pipeline Pipeline
	workers  int
	limiter  *rate.Limiter
	logger   *zap.Logger
}

func NewManager(pipeline Pipeline, workers, ratePerSec int, logger *zap.Logger) *Manager {
	return &Manager{
		pipeline: pipeline,
		workers:  workers,
		limiter:  rate.NewLimiter(rate.Limit(ratePerSec), ratePerSec*2),
		logger:   logger,
	}
}

func (m *Manager) Execute(ctx context.Context, tasks []Task) (*BatchResult, error) {
	result := &BatchResult{
		RunID: uuid.New().String(),
		Total: len(tasks),
	}

	if len(tasks) == 0 {
		return result, nil
	}

	m.logger.Info("starting scan batch",
		zap.String("run_id", result.RunID),
		zap.Int("symbols", len(tasks)),
		zap.Int("workers", m.workers))

	jobs := make(chan Task, len(tasks))
	results := make(chan TaskResult, len(tasks))

	// Start workers
	var wg sync.WaitGroup
	for i := 0; i < m.workers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			m.worker(ctx, workerID, jobs, results)
		}(i)
	}

	// Send jobs. The channel must close on cancellation too, or the
	// workers block in their receive and Execute never returns.
	go func() {
		defer close(jobs)
		for _, task := range tasks {
			select {
			case <-ctx.Done():
				return
			case jobs <- task:
			}
		}
	}()

	// Wait for workers and close results
	go func() {
		wg.Wait()
		close(results)
	}()

	// Collect results
	for r := range results {
		switch {
		case r.Unavailable:
			result.Unavailable++
		case r.Error != nil:
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", r.Task, r.Error))
		default:
			result.Success++
			result.Reports = append(result.Reports, *r.Report)
		}
	}

	m.logger.Info("scan batch complete",
		zap.String("run_id", result.RunID),
		zap.Int("success", result.Success),
		zap.Int("unavailable", result.Unavailable),
		zap.Int("failed", result.Failed))

	return result, nil
}

func (m *Manager) worker(ctx context.Context, id int, jobs <-chan Task, results chan<- TaskResult) {
	for task := range jobs {
		select {
		case <-ctx.Done():
			return
		default:
		}

		result := m.processTask(ctx, task)

		select {
		case <-ctx.Done():
			return
		case results <- result:
		}
	}
}

func (m *Manager) processTask(ctx context.Context, task Task) TaskResult {
	result := TaskResult{Task: task}

	if err := m.limiter.Wait(ctx); err != nil {
		result.Error = fmt.Errorf("rate limiter: %w", err)
		return result
	}

	snap, err := chain.LoadSnapshot(task.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			m.logger.Warn("snapshot unavailable", zap.String("task", task.String()))
			result.Unavailable = true
			return result
		}
		result.Error = fmt.Errorf("loading snapshot: %w", err)
		return result
	}

	m.logger.Debug("scanning", zap.String("symbol", task.Symbol))

	report, err := m.pipeline.Run(snap)
	if err != nil {
		result.Error = fmt.Errorf("pipeline: %w", err)
		return result
	}

	result.Report = &report
	m.logger.Info("scanned",
		zap.String("symbol", report.Symbol),
		zap.String("status", string(report.Desk.Status)),
		zap.Int("confidence", report.Desk.FinalConfidence))

	return result
}
