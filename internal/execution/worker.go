package execution

import (
	"context"
	"sync"
	"time"

	"sfstage/internal/domain"
)

// WorkerPool manages a pool of workers for parallel test execution
type WorkerPool struct {
	runner   TestRunner
	workers  int
	progress Progress
}

var _ Executor = (*WorkerPool)(nil)

// NewWorkerPool creates a new WorkerPool
func NewWorkerPool(runner TestRunner, workers int) *WorkerPool {
	if workers <= 0 {
		workers = 1
	}
	return &WorkerPool{runner: runner, workers: workers}
}

// SetProgress sets the progress reporter for the worker pool
func (wp *WorkerPool) SetProgress(progress Progress) {
	wp.progress = progress
}

// Execute runs tests in parallel. With failFast, no new test file is started
// after the first failing one and results finishing after it are dropped.
func (wp *WorkerPool) Execute(ctx context.Context, tests []string, failFast bool) ([]domain.TestRun, time.Duration, error) {
	if len(tests) == 0 {
		return nil, 0, nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	testQueue := make(chan string)
	results := make(chan domain.TestRun, len(tests))

	go func() {
		defer close(testQueue)
		for _, test := range tests {
			select {
			case <-ctx.Done():
				return
			case testQueue <- test:
			}
		}
	}()

	var mu sync.Mutex
	var completedFiles int
	var passedCases, failedCases int
	var seenFailure bool
	startTime := time.Now()

	var wg sync.WaitGroup
	for i := 1; i <= wp.workers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for testPath := range testQueue {
				result := wp.runner.Run(ctx, testPath, workerID)

				mu.Lock()
				if failFast && seenFailure {
					mu.Unlock()
					continue
				}
				results <- result
				completedFiles++
				p, f := countCases(result)
				passedCases += p
				failedCases += f
				if wp.progress != nil {
					wp.progress.Update(completedFiles, passedCases, failedCases)
				}
				if failFast && !result.Success {
					seenFailure = true
					cancel()
				}
				mu.Unlock()
			}
		}(i)
	}
	go func() {
		wg.Wait()
		close(results)
	}()

	var allResults []domain.TestRun
	for result := range results {
		allResults = append(allResults, result)
	}
	if wp.progress != nil {
		wp.progress.Finish()
	}
	return allResults, time.Since(startTime), nil
}

// countCases returns passed and failed test case counts of a run, counting the
// whole file as one case when Jest wrote no report.
func countCases(run domain.TestRun) (passed, failed int) {
	if run.Report != nil && run.Report.NumTotalTests > 0 {
		return run.Report.NumPassedTests, run.Report.NumFailedTests
	}
	if run.Success {
		return 1, 0
	}
	return 0, 1
}
