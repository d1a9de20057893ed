package executor

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
)

// Task is a unit of work against one Harvester cluster
type Task struct {
	// ClusterName identifies which cluster this task targets
	ClusterName string

	// Execute runs the task and returns its result data
	Execute func(ctx context.Context) (any, error)
}

// Result is the outcome of one task
type Result struct {
	// ClusterName identifies which cluster this result is from
	ClusterName string

	// Data contains the successful result data (nil if error occurred)
	Data any

	// Error contains any error that occurred during execution (nil if successful)
	Error error

	// Duration is how long the task took to execute
	Duration time.Duration
}

// Pool runs tasks with bounded concurrency. Task errors never cancel other tasks.
type Pool struct {
	workers int
	logger  *slog.Logger

	mu      sync.Mutex
	tasks   []Task
	running atomic.Bool
}

// NewPool creates a new worker pool with the specified number of workers
// workers must be > 0, otherwise it defaults to 1
func NewPool(workers int, logger *slog.Logger) *Pool {
	if workers <= 0 {
		workers = 1
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Pool{
		workers: workers,
		logger:  logger,
	}
}

// Submit adds a task to the pool's queue
func (p *Pool) Submit(task Task) error {
	if p.running.Load() {
		return fmt.Errorf("pool is running, cannot submit new tasks")
	}
	if task.ClusterName == "" {
		return fmt.Errorf("task must have a cluster name")
	}
	if task.Execute == nil {
		return fmt.Errorf("task must have an execute function")
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.tasks = append(p.tasks, task)
	p.logger.Debug("task submitted", "cluster", task.ClusterName, "total_tasks", len(p.tasks))

	return nil
}

// Execute runs all submitted tasks and returns one result per task in submission order
func (p *Pool) Execute(ctx context.Context) []Result {
	return p.ExecuteWithProgress(ctx, nil)
}

// ExecuteWithProgress runs all tasks, calling progressFn with (completed, total)
// after each one finishes. progressFn may be called from several goroutines.
func (p *Pool) ExecuteWithProgress(ctx context.Context, progressFn func(completed, total int)) []Result {
	if !p.running.CompareAndSwap(false, true) {
		p.logger.Error("pool is already running")
		return []Result{}
	}
	defer p.running.Store(false)

	p.mu.Lock()
	tasks := make([]Task, len(p.tasks))
	copy(tasks, p.tasks)
	p.mu.Unlock()

	if len(tasks) == 0 {
		p.logger.Debug("no tasks to execute")
		return []Result{}
	}

	p.logger.Debug("starting task execution", "workers", p.workers, "tasks", len(tasks))
	startTime := time.Now()

	results := make([]Result, len(tasks))
	var completed atomic.Int32

	var g errgroup.Group
	g.SetLimit(p.workers)

	for i, task := range tasks {
		// Tasks not yet started when the context ends are reported, not run
		if ctx.Err() != nil {
			results[i] = Result{
				ClusterName: task.ClusterName,
				Error:       fmt.Errorf("task not executed: %w", ctx.Err()),
			}
			continue
		}

		i, task := i, task
		g.Go(func() error {
			results[i] = p.executeTask(ctx, task)

			done := completed.Add(1)
			if progressFn != nil {
				progressFn(int(done), len(tasks))
			}
			return nil
		})
	}
	_ = g.Wait()

	summary := Summarize(results)
	p.logger.Debug("task execution completed",
		"total", summary.Total,
		"successful", summary.Successful,
		"failed", summary.Failed,
		"duration", time.Since(startTime))

	return results
}

// executeTask executes a single task and returns the result
func (p *Pool) executeTask(ctx context.Context, task Task) Result {
	startTime := time.Now()

	if err := ctx.Err(); err != nil {
		return Result{
			ClusterName: task.ClusterName,
			Error:       fmt.Errorf("task cancelled before execution: %w", err),
		}
	}

	data, err := task.Execute(ctx)
	duration := time.Since(startTime)

	if err != nil {
		p.logger.Debug("task failed", "cluster", task.ClusterName, "error", err, "duration", duration)
	} else {
		p.logger.Debug("task succeeded", "cluster", task.ClusterName, "duration", duration)
	}

	return Result{
		ClusterName: task.ClusterName,
		Data:        data,
		Error:       err,
		Duration:    duration,
	}
}

// TaskCount returns the number of tasks currently queued
func (p *Pool) TaskCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.tasks)
}

// WorkerCount returns the number of workers in the pool
func (p *Pool) WorkerCount() int {
	return p.workers
}
