package parser

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"sfstage/internal/domain"
)

// JestParser parses Jest --json reports
type JestParser struct{}

// NewJestParser creates a new JestParser
func NewJestParser() *JestParser {
	return &JestParser{}
}

// Parse validates and decodes a Jest report
func (p *JestParser) Parse(data []byte) (*domain.LwcJestTestResults, error) {
	if err := validateReport(data); err != nil {
		return nil, err
	}

	var results domain.LwcJestTestResults
	if err := json.Unmarshal(data, &results); err != nil {
		return nil, fmt.Errorf("parse jest report: %w", err)
	}
	return &results, nil
}

// ParseReader reads and parses a Jest report from r
func (p *JestParser) ParseReader(r io.Reader) (*domain.LwcJestTestResults, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read jest report: %w", err)
	}
	return p.Parse(data)
}

// ParseFile reads and parses the Jest report at path
func (p *JestParser) ParseFile(path string) (*domain.LwcJestTestResults, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read jest report: %w", err)
	}
	return p.Parse(data)
}

// Failures flattens the failed assertions of a report
func (p *JestParser) Failures(results *domain.LwcJestTestResults) []domain.TestFailure {
	if results == nil {
		return nil
	}

	var failures []domain.TestFailure
	for _, file := range results.TestResults {
		for _, a := range file.AssertionResults {
			if a.Status != domain.JestStatusFailed {
				continue
			}
			failure := domain.TestFailure{
				TestName:       a.Title,
				FullName:       a.FullName,
				FilePath:       file.Name,
				AncestorTitles: a.AncestorTitles,
				Messages:       a.FailureMessages,
			}
			if a.Location != nil {
				failure.Line = a.Location.Line
				failure.Column = a.Location.Column
			}
			failures = append(failures, failure)
		}
	}
	return failures
}

// ToExecutionInfos describes every file and test case of a report. Each file
// is followed by its test cases.
func ToExecutionInfos(results *domain.LwcJestTestResults) []domain.TestExecutionInfo {
	if results == nil {
		return nil
	}

	var infos []domain.TestExecutionInfo
	for _, file := range results.TestResults {
		infos = append(infos, &domain.TestFileInfo{
			TestType:   domain.TestTypeLWC,
			TestURI:    file.Name,
			TestResult: &domain.TestResult{Status: file.Status.ResultStatus()},
		})
		for _, a := range file.AssertionResults {
			info := &domain.TestCaseInfo{
				TestType:   domain.TestTypeLWC,
				TestURI:    file.Name,
				TestName:   a.Title,
				TestResult: &domain.TestResult{Status: a.Status.ResultStatus()},
			}
			if a.Location != nil {
				info.TestLocation = &domain.Location{
					Path:   file.Name,
					Line:   a.Location.Line,
					Column: a.Location.Column,
				}
			}
			infos = append(infos, info)
		}
	}
	return infos
}

// Merge sums the counters of several reports and concatenates their file results
func Merge(reports ...*domain.LwcJestTestResults) *domain.LwcJestTestResults {
	merged := &domain.LwcJestTestResults{TestResults: []domain.LwcJestTestFileResult{}}
	for _, r := range reports {
		if r == nil {
			continue
		}
		merged.NumFailedTestSuites += r.NumFailedTestSuites
		merged.NumFailedTests += r.NumFailedTests
		merged.NumPassedTestSuites += r.NumPassedTestSuites
		merged.NumPassedTests += r.NumPassedTests
		merged.NumPendingTestSuites += r.NumPendingTestSuites
		merged.NumPendingTests += r.NumPendingTests
		merged.NumRuntimeErrorTestSuites += r.NumRuntimeErrorTestSuites
		merged.NumTotalTestSuites += r.NumTotalTestSuites
		merged.NumTotalTests += r.NumTotalTests
		merged.TestResults = append(merged.TestResults, r.TestResults...)
	}
	return merged
}
