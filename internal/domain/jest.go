package domain

// LwcJestTestResultStatus is the status string Jest reports for files and assertions
type LwcJestTestResultStatus string

const (
	JestStatusPassed   LwcJestTestResultStatus = "passed"
	JestStatusFailed   LwcJestTestResultStatus = "failed"
	JestStatusPending  LwcJestTestResultStatus = "pending"
	JestStatusSkipped  LwcJestTestResultStatus = "skipped"
	JestStatusTodo     LwcJestTestResultStatus = "todo"
	JestStatusDisabled LwcJestTestResultStatus = "disabled"
)

// ResultStatus maps a Jest status onto TestResultStatus
func (s LwcJestTestResultStatus) ResultStatus() TestResultStatus {
	switch s {
	case JestStatusPassed:
		return TestResultPassed
	case JestStatusFailed:
		return TestResultFailed
	}
	return TestResultSkipped
}

// LwcJestTestResults is the top level of a Jest --json report
type LwcJestTestResults struct {
	NumFailedTestSuites       int                     `json:"numFailedTestSuites"`
	NumFailedTests            int                     `json:"numFailedTests"`
	NumPassedTestSuites       int                     `json:"numPassedTestSuites"`
	NumPassedTests            int                     `json:"numPassedTests"`
	NumPendingTestSuites      int                     `json:"numPendingTestSuites"`
	NumPendingTests           int                     `json:"numPendingTests"`
	NumRuntimeErrorTestSuites int                     `json:"numRuntimeErrorTestSuites"`
	NumTotalTestSuites        int                     `json:"numTotalTestSuites"`
	NumTotalTests             int                     `json:"numTotalTests"`
	TestResults               []LwcJestTestFileResult `json:"testResults"`
}

// LwcJestTestFileResult is the result of one test file (suite)
type LwcJestTestFileResult struct {
	Status           LwcJestTestResultStatus      `json:"status"`
	StartTime        int64                        `json:"startTime"`
	EndTime          int64                        `json:"endTime"`
	Name             string                       `json:"name"`
	AssertionResults []LwcJestTestAssertionResult `json:"assertionResults"`
}

// LwcJestTestAssertionResult is the result of one test case
type LwcJestTestAssertionResult struct {
	Status          LwcJestTestResultStatus `json:"status"`
	Title           string                  `json:"title"`
	AncestorTitles  []string                `json:"ancestorTitles"`
	FailureMessages []string                `json:"failureMessages"`
	FullName        string                  `json:"fullName"`
	Location        *JestLocation           `json:"location"`
}

// JestLocation is the position of a test case in its file
type JestLocation struct {
	Column int `json:"column"`
	Line   int `json:"line"`
}
