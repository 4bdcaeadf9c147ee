package commands

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"sfstage/internal/config"
	"sfstage/internal/discovery"
	"sfstage/internal/domain"
	"sfstage/internal/execution"
	"sfstage/internal/parser"
	"sfstage/internal/storage"
	"sfstage/internal/ui"
)

// TestsCommand handles the LWC test subcommands
type TestsCommand struct {
	config     *config.Config
	workspace  *workspace
	scanner    *discovery.Scanner
	filter     *discovery.Filter
	runner     execution.TestRunner
	executor   func(runner execution.TestRunner, workers int) execution.Executor
	jestParser *parser.JestParser
	storage    storage.ResultStore
	formatter  *ui.Formatter
	viewer     ui.Viewer
}

// NewTestsCommand creates a new TestsCommand
func NewTestsCommand(
	cfg *config.Config,
	ws *workspace,
	scanner *discovery.Scanner,
	filter *discovery.Filter,
	runner execution.TestRunner,
	jestParser *parser.JestParser,
	st storage.ResultStore,
	formatter *ui.Formatter,
	viewer ui.Viewer,
) *TestsCommand {
	return &TestsCommand{
		config:     cfg,
		workspace:  ws,
		scanner:    scanner,
		filter:     filter,
		runner:     runner,
		executor:   newWorkerPool,
		jestParser: jestParser,
		storage:    st,
		formatter:  formatter,
		viewer:     viewer,
	}
}

func newWorkerPool(runner execution.TestRunner, workers int) execution.Executor {
	return execution.NewWorkerPool(runner, workers)
}

// discover returns the filtered LWC test files under the test path
func (tc *TestsCommand) discover() ([]string, error) {
	tests, err := tc.scanner.Scan(tc.config.GetTestPath())
	if err != nil {
		return nil, err
	}
	return tc.filter.FilterByName(tests, tc.config.Flags.NameFilter), nil
}

// List prints the discovered test files
func (tc *TestsCommand) List(cmd *cobra.Command, args []string) error {
	tests, err := tc.discover()
	if err != nil {
		return err
	}
	if len(tests) == 0 {
		color.Yellow("No tests found")
		return nil
	}
	if err := tc.formatter.PrintTestList(tests, tc.config.Flags.TestCases); err != nil {
		return err
	}
	if !tc.config.Flags.TestCases {
		return nil
	}

	total, err := tc.formatter.CountTestCases(tests)
	if err != nil {
		return err
	}
	tc.formatter.PrintTestCaseTotal(total, len(tests))
	return nil
}

// Run executes the discovered test files in parallel and saves the merged report
func (tc *TestsCommand) Run(cmd *cobra.Command, args []string) error {
	tests, err := tc.discover()
	if err != nil {
		return err
	}
	if len(tests) == 0 {
		color.Yellow("No tests to execute")
		return nil
	}

	executor := tc.executor(tc.runner, tc.config.Processors)
	executor.SetProgress(ui.NewProgressBar(len(tests)))

	runs, duration, err := executor.Execute(cmd.Context(), tests, tc.config.Flags.FailFast)
	if err != nil {
		return err
	}

	report, failures := tc.summarize(runs)
	if err := tc.storage.Save(report, failures, duration, tc.config.Processors); err != nil {
		return fmt.Errorf("failed to save test results: %w", err)
	}
	tc.workspace.log().Operation("tests run", fmt.Sprintf("%d file(s), %d failure(s) in %s", len(runs), len(failures), duration))

	return tc.printSaved()
}

// summarize merges the per-file reports. A file whose run produced no report
// is counted as a failed suite with the run output as its failure message.
func (tc *TestsCommand) summarize(runs []domain.TestRun) (*domain.LwcJestTestResults, []domain.TestFailure) {
	reports := make([]*domain.LwcJestTestResults, 0, len(runs))
	var crashed []domain.TestRun
	for _, run := range runs {
		if run.Report == nil {
			crashed = append(crashed, run)
			continue
		}
		reports = append(reports, run.Report)
	}

	merged := parser.Merge(reports...)
	failures := tc.jestParser.Failures(merged)

	for _, run := range crashed {
		tc.workspace.log().Logf("no Jest report for %s: %v", run.TestPath, run.Error)
		merged.NumFailedTestSuites++
		merged.NumRuntimeErrorTestSuites++
		merged.NumTotalTestSuites++
		merged.TestResults = append(merged.TestResults, domain.LwcJestTestFileResult{
			Status:           domain.JestStatusFailed,
			Name:             run.TestPath,
			AssertionResults: []domain.LwcJestTestAssertionResult{},
		})

		var messages []string
		if run.Error != nil {
			messages = append(messages, run.Error.Error())
		}
		if output := strings.TrimSpace(run.Output); output != "" {
			messages = append(messages, output)
		}
		failures = append(failures, domain.TestFailure{
			TestName: filepath.Base(run.TestPath),
			FilePath: run.TestPath,
			Messages: messages,
		})
	}
	return merged, failures
}

// Report imports a Jest JSON report written outside sfstage
func (tc *TestsCommand) Report(cmd *cobra.Command, args []string) error {
	report, err := tc.jestParser.ParseFile(args[0])
	if err != nil {
		return err
	}
	failures := tc.jestParser.Failures(report)

	tc.formatter.PrintExecutionInfos(parser.ToExecutionInfos(report))

	if err := tc.storage.Save(report, failures, reportDuration(report), 1); err != nil {
		return fmt.Errorf("failed to save test results: %w", err)
	}
	tc.workspace.log().Operation("tests report", fmt.Sprintf("%s: %d file(s), %d failure(s)", args[0], len(report.TestResults), len(failures)))

	return tc.printSaved()
}

// reportDuration spans the earliest start to the latest end of the report's files
func reportDuration(report *domain.LwcJestTestResults) time.Duration {
	var start, end int64
	for _, file := range report.TestResults {
		if start == 0 || (file.StartTime > 0 && file.StartTime < start) {
			start = file.StartTime
		}
		if file.EndTime > end {
			end = file.EndTime
		}
	}
	if start == 0 || end < start {
		return 0
	}
	return time.Duration(end-start) * time.Millisecond
}

// View opens the failure viewer on the last saved run
func (tc *TestsCommand) View(cmd *cobra.Command, args []string) error {
	results, err := tc.storage.Load()
	if errors.Is(err, storage.ErrNoResults) {
		color.Yellow("No saved test results, run `sfstage tests run` first")
		return nil
	}
	if err != nil {
		return err
	}
	return tc.viewer.View(results)
}

func (tc *TestsCommand) printSaved() error {
	output, err := tc.storage.Load()
	if err != nil {
		return fmt.Errorf("failed to load test results: %w", err)
	}
	tc.formatter.PrintMetaStats(output)
	return nil
}
