package execution

import (
	"context"
	"time"

	"sfstage/internal/domain"
)

// Executor executes tests and returns results
type Executor interface {
	SetProgress(progress Progress)
	Execute(ctx context.Context, tests []string, failFast bool) ([]domain.TestRun, time.Duration, error)
}

// TestRunner runs a single test file
type TestRunner interface {
	Run(ctx context.Context, testPath string, workerID int) domain.TestRun
}

// Progress receives updates while tests run
type Progress interface {
	Update(completed, passed, failed int)
	Finish()
}
