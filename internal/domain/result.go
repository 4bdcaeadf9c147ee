package domain

// TestResultsMeta contains metadata about a test run
type TestResultsMeta struct {
	RunID            string  `json:"run_id"`
	TotalTestFiles   int     `json:"total_test_files"`
	FailedTestFiles  int     `json:"failed_test_files"`
	PassedTestFiles  int     `json:"passed_test_files"`
	TotalTestCases   int     `json:"total_test_cases"`
	PassedTestCases  int     `json:"passed_test_cases"`
	FailedTestCases  int     `json:"failed_test_cases"`
	SkippedTestCases int     `json:"skipped_test_cases"`
	Duration         string  `json:"duration"`
	DurationSeconds  float64 `json:"duration_seconds"`
	Workers          int     `json:"workers"`
	Timestamp        string  `json:"timestamp"`
}

// TestResultsOutput is the complete output structure for test results
type TestResultsOutput struct {
	Meta    TestResultsMeta     `json:"meta"`
	Report  *LwcJestTestResults `json:"report,omitempty"`
	Details []TestFailure       `json:"details"`
}
