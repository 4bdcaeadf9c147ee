package execution

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sfstage/internal/domain"
)

type fakeRunner struct {
	mu      sync.Mutex
	failing map[string]bool
	ran     []string
}

func (f *fakeRunner) Run(ctx context.Context, testPath string, workerID int) domain.TestRun {
	f.mu.Lock()
	f.ran = append(f.ran, testPath)
	f.mu.Unlock()

	if f.failing[testPath] {
		return domain.TestRun{
			TestPath: testPath,
			Error:    errors.New("exit status 1"),
			Report:   &domain.LwcJestTestResults{NumTotalTests: 3, NumPassedTests: 1, NumFailedTests: 2},
		}
	}
	return domain.TestRun{TestPath: testPath, Success: true}
}

type recordingProgress struct {
	mu       sync.Mutex
	updates  int
	passed   int
	failed   int
	finished bool
}

func (p *recordingProgress) Update(completed, passed, failed int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.updates = completed
	p.passed = passed
	p.failed = failed
}

func (p *recordingProgress) Finish() {
	p.finished = true
}

func TestWorkerPool_ExecuteAll(t *testing.T) {
	runner := &fakeRunner{failing: map[string]bool{"b.test.js": true}}
	pool := NewWorkerPool(runner, 3)
	progress := &recordingProgress{}
	pool.SetProgress(progress)

	tests := []string{"a.test.js", "b.test.js", "c.test.js", "d.test.js"}
	results, _, err := pool.Execute(context.Background(), tests, false)
	require.NoError(t, err)

	var paths []string
	for _, r := range results {
		paths = append(paths, r.TestPath)
	}
	sort.Strings(paths)
	assert.Equal(t, tests, paths)

	assert.Equal(t, 4, progress.updates)
	assert.Equal(t, 4, progress.passed) // three files without report plus one passed case
	assert.Equal(t, 2, progress.failed)
	assert.True(t, progress.finished)
}

func TestWorkerPool_FailFast(t *testing.T) {
	runner := &fakeRunner{failing: map[string]bool{"a.test.js": true}}
	pool := NewWorkerPool(runner, 1)

	tests := []string{"a.test.js", "b.test.js", "c.test.js"}
	results, _, err := pool.Execute(context.Background(), tests, true)
	require.NoError(t, err)

	require.Len(t, results, 1)
	assert.Equal(t, "a.test.js", results[0].TestPath)
	assert.False(t, results[0].Success)
}

func TestWorkerPool_Empty(t *testing.T) {
	pool := NewWorkerPool(&fakeRunner{}, 0)

	results, duration, err := pool.Execute(context.Background(), nil, false)
	require.NoError(t, err)
	assert.Nil(t, results)
	assert.Zero(t, duration)
}

func TestCountCases(t *testing.T) {
	p, f := countCases(domain.TestRun{Success: true})
	assert.Equal(t, 1, p)
	assert.Equal(t, 0, f)

	p, f = countCases(domain.TestRun{Report: &domain.LwcJestTestResults{NumTotalTests: 5, NumPassedTests: 4, NumFailedTests: 1}})
	assert.Equal(t, 4, p)
	assert.Equal(t, 1, f)
}
