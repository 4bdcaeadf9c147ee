package domain

import (
	"encoding/json"
	"time"
)

// TestType identifies the test framework a test belongs to
type TestType string

const (
	TestTypeLWC TestType = "lwc"
)

// TestResultStatus is the outcome of a test file or test case
type TestResultStatus int

const (
	TestResultPassed TestResultStatus = iota
	TestResultFailed
	TestResultSkipped
)

func (s TestResultStatus) String() string {
	switch s {
	case TestResultPassed:
		return "PASSED"
	case TestResultFailed:
		return "FAILED"
	case TestResultSkipped:
		return "SKIPPED"
	}
	return "UNKNOWN"
}

// TestResult holds the status of a test
type TestResult struct {
	Status TestResultStatus `json:"status"`
}

// TestInfoKind distinguishes test files from test cases
type TestInfoKind string

const (
	TestInfoKindCase TestInfoKind = "testCase"
	TestInfoKindFile TestInfoKind = "testFile"
)

// Location points at a position in a test file. Line and Column are 1-based as
// reported by Jest.
type Location struct {
	Path   string `json:"path"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
}

// TestExecutionInfo is either a *TestFileInfo or a *TestCaseInfo
type TestExecutionInfo interface {
	Kind() TestInfoKind
	Type() TestType
	URI() string
	Result() *TestResult
}

// TestFileInfo describes a test file
type TestFileInfo struct {
	TestType     TestType    `json:"testType"`
	TestURI      string      `json:"testUri"`
	TestLocation *Location   `json:"testLocation,omitempty"`
	TestResult   *TestResult `json:"testResult,omitempty"`
}

func (i *TestFileInfo) Kind() TestInfoKind  { return TestInfoKindFile }
func (i *TestFileInfo) Type() TestType      { return i.TestType }
func (i *TestFileInfo) URI() string         { return i.TestURI }
func (i *TestFileInfo) Result() *TestResult { return i.TestResult }

// MarshalJSON adds the "kind" discriminator
func (i TestFileInfo) MarshalJSON() ([]byte, error) {
	type plain TestFileInfo
	return json.Marshal(struct {
		Kind TestInfoKind `json:"kind"`
		plain
	}{TestInfoKindFile, plain(i)})
}

// TestCaseInfo describes a single test case within a test file
type TestCaseInfo struct {
	TestType     TestType    `json:"testType"`
	TestURI      string      `json:"testUri"`
	TestLocation *Location   `json:"testLocation,omitempty"`
	TestResult   *TestResult `json:"testResult,omitempty"`
	TestName     string      `json:"testName"`
}

func (i *TestCaseInfo) Kind() TestInfoKind  { return TestInfoKindCase }
func (i *TestCaseInfo) Type() TestType      { return i.TestType }
func (i *TestCaseInfo) URI() string         { return i.TestURI }
func (i *TestCaseInfo) Result() *TestResult { return i.TestResult }

// MarshalJSON adds the "kind" discriminator
func (i TestCaseInfo) MarshalJSON() ([]byte, error) {
	type plain TestCaseInfo
	return json.Marshal(struct {
		Kind TestInfoKind `json:"kind"`
		plain
	}{TestInfoKindCase, plain(i)})
}

// TestRun is the result of running Jest for a single test file
type TestRun struct {
	TestPath string              // Path to the test file that was executed
	Success  bool                // Whether the run exited cleanly
	Output   string              // Raw output from the Jest wrapper
	Error    error               // Error if execution failed
	Duration time.Duration       // Time taken to execute
	Report   *LwcJestTestResults // Parsed JSON report, nil if none was written
}
