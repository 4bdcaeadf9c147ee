package storage

import (
	"time"

	"github.com/google/uuid"

	"sfstage/internal/domain"
)

// JSONResultStore stores test runs in a JSON file
type JSONResultStore struct {
	path string
	now  func() time.Time
}

// NewJSONResultStore returns a ResultStore reading/writing path
func NewJSONResultStore(path string) *JSONResultStore {
	return &JSONResultStore{path: path, now: time.Now}
}

// Save writes the merged Jest report and its failures to the results file.
func (s *JSONResultStore) Save(report *domain.LwcJestTestResults, failures []domain.TestFailure, duration time.Duration, workers int) error {
	meta := domain.TestResultsMeta{
		RunID:           uuid.NewString(),
		FailedTestCases: len(failures),
		Duration:        duration.String(),
		DurationSeconds: duration.Seconds(),
		Workers:         workers,
		Timestamp:       s.now().Format(time.RFC3339),
	}
	if report != nil {
		meta.TotalTestFiles = len(report.TestResults)
		for _, file := range report.TestResults {
			if file.Status == domain.JestStatusFailed {
				meta.FailedTestFiles++
			} else {
				meta.PassedTestFiles++
			}
		}
		meta.TotalTestCases = report.NumTotalTests
		meta.PassedTestCases = report.NumPassedTests
		meta.SkippedTestCases = report.NumPendingTests
	}

	if failures == nil {
		failures = []domain.TestFailure{}
	}
	return s.SaveOutput(&domain.TestResultsOutput{
		Meta:    meta,
		Report:  report,
		Details: failures,
	})
}

// Load reads the last test run from the results file.
func (s *JSONResultStore) Load() (*domain.TestResultsOutput, error) {
	var output domain.TestResultsOutput
	found, err := readJSON(s.path, &output)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrNoResults
	}
	return &output, nil
}

// SaveOutput writes the full output to the results file.
func (s *JSONResultStore) SaveOutput(output *domain.TestResultsOutput) error {
	return writeJSON(s.path, output)
}
