package ui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/fatih/color"

	"sfstage/internal/config"
	"sfstage/internal/discovery"
	"sfstage/internal/domain"
	"sfstage/internal/stage"
)

// Formatter formats and displays output
type Formatter struct {
	config *config.Config
	parser *discovery.Parser
	out    io.Writer
}

// NewFormatter creates a new Formatter writing to stdout
func NewFormatter(cfg *config.Config, parser *discovery.Parser) *Formatter {
	return &Formatter{
		config: cfg,
		parser: parser,
		out:    color.Output,
	}
}

// SetOutput redirects the formatter, e.g. into a buffer in tests
func (f *Formatter) SetOutput(w io.Writer) {
	f.out = w
}

func branch(isLast bool) (connector, indent string) {
	if isLast {
		return "└── ", "    "
	}
	return "├── ", "│   "
}

// relPath shortens path relative to the project for display
func (f *Formatter) relPath(path string) string {
	if rel, err := filepath.Rel(f.config.ProjectPath, path); err == nil {
		return rel
	}
	return path
}

// PrintStage prints the stage tree: type groups with their components. Local
// components (backed by a file) are yellow, remote ones are white.
func (f *Formatter) PrintStage(provider *stage.OutlineProvider) {
	groups := provider.GetChildren(nil)
	if len(groups) == 0 {
		fmt.Fprintln(f.out, color.YellowString("Nothing staged"))
		return
	}

	fmt.Fprintln(f.out, color.GreenString("Staged %d component(s):", provider.Len()))
	for i, group := range groups {
		connector, indent := branch(i == len(groups)-1)
		fmt.Fprintf(f.out, "%s%s %s\n", connector, color.CyanString(group.Label), color.HiBlackString("(%s)", group.TypeName))

		children := provider.GetChildren(group)
		for j, child := range children {
			childConnector, _ := branch(j == len(children)-1)
			if path := child.FilePath(); path != "" {
				fmt.Fprintf(f.out, "%s%s%s %s\n", indent, childConnector, color.YellowString(child.Label), color.HiBlackString(f.relPath(path)))
			} else {
				fmt.Fprintf(f.out, "%s%s%s\n", indent, childConnector, child.Label)
			}
		}
	}
}

// PrintTestList prints a list of test files, optionally with their test cases
func (f *Formatter) PrintTestList(tests []string, showTestCases bool) error {
	fmt.Fprintln(f.out, color.GreenString("Found %d test file(s):", len(tests)))
	fmt.Fprintln(f.out)

	for i, test := range tests {
		isLastFile := i == len(tests)-1
		connector, indent := branch(isLastFile)
		fmt.Fprintf(f.out, "%s%s\n", connector, color.CyanString(f.relPath(test)))

		if !showTestCases {
			continue
		}

		testCases, err := f.parser.FindTestCases(test)
		if err != nil {
			fmt.Fprintf(f.out, "%s└── %s\n", indent, color.RedString("error reading test file: %v", err))
			continue
		}
		if len(testCases) == 0 {
			fmt.Fprintf(f.out, "%s└── %s\n", indent, color.RedString("(no test cases found)"))
			continue
		}
		for j, testCase := range testCases {
			caseConnector, _ := branch(j == len(testCases)-1)
			fmt.Fprintf(f.out, "%s%s%s\n", indent, caseConnector, color.YellowString(testCase))
		}
	}
	return nil
}

// CountTestCases returns the total number of test cases across the given test files.
func (f *Formatter) CountTestCases(tests []string) (int, error) {
	var total int
	for _, test := range tests {
		cases, err := f.parser.FindTestCases(test)
		if err != nil {
			return 0, err
		}
		total += len(cases)
	}
	return total, nil
}

// PrintTestCaseTotal prints the number of test cases found across files
func (f *Formatter) PrintTestCaseTotal(cases, files int) {
	fmt.Fprintln(f.out)
	fmt.Fprintln(f.out, color.GreenString("%d test case(s) in %d file(s)", cases, files))
}

// PrintMetaStats displays the statistics of a saved test run
func (f *Formatter) PrintMetaStats(output *domain.TestResultsOutput) {
	meta := output.Meta

	fmt.Fprintln(f.out)
	fmt.Fprintln(f.out, color.CyanString("╔═══════════════════════════════════════════════════════════════╗"))
	fmt.Fprintln(f.out, color.CyanString("║                  LWC Test Execution Statistics                ║"))
	fmt.Fprintln(f.out, color.CyanString("╚═══════════════════════════════════════════════════════════════╝"))
	fmt.Fprintln(f.out)

	rows := []struct {
		label string
		value string
		paint func(format string, a ...interface{}) string
	}{
		{"Total Test Files", fmt.Sprint(meta.TotalTestFiles), color.WhiteString},
		{"Passed Test Files", fmt.Sprint(meta.PassedTestFiles), color.GreenString},
		{"Failed Test Files", fmt.Sprint(meta.FailedTestFiles), color.RedString},
		{"Total Test Cases", fmt.Sprint(meta.TotalTestCases), color.WhiteString},
		{"Passed Test Cases", fmt.Sprint(meta.PassedTestCases), color.GreenString},
		{"Failed Test Cases", fmt.Sprint(meta.FailedTestCases), color.RedString},
		{"Skipped Test Cases", fmt.Sprint(meta.SkippedTestCases), color.YellowString},
		{"Duration", fmt.Sprintf("%.2fs", meta.DurationSeconds), color.WhiteString},
		{"Workers", fmt.Sprint(meta.Workers), color.WhiteString},
		{"Timestamp", meta.Timestamp, color.WhiteString},
	}

	fmt.Fprintln(f.out, "┌─────────────────────────────────┬─────────────────────────────┐")
	for i, row := range rows {
		fmt.Fprintf(f.out, "│ %-31s │ %s │\n", row.label, row.paint("%-27s", row.value))
		if i < len(rows)-1 {
			fmt.Fprintln(f.out, "├─────────────────────────────────┼─────────────────────────────┤")
		}
	}
	fmt.Fprintln(f.out, "└─────────────────────────────────┴─────────────────────────────┘")

	fmt.Fprintln(f.out)
	if meta.FailedTestCases == 0 && meta.FailedTestFiles == 0 {
		fmt.Fprintln(f.out, color.GreenString("✓ All tests passed!"))
		return
	}
	fmt.Fprintln(f.out, color.RedString("✗ %d test file(s) failed with %d test case failure(s)", meta.FailedTestFiles, meta.FailedTestCases))
	fmt.Fprintln(f.out)
	f.printFailedTestsTree(output.Details)
}

// printFailedTestsTree groups failures by test file
func (f *Formatter) printFailedTestsTree(failures []domain.TestFailure) {
	byFile := make(map[string][]domain.TestFailure)
	for _, failure := range failures {
		byFile[failure.FilePath] = append(byFile[failure.FilePath], failure)
	}

	files := make([]string, 0, len(byFile))
	for file := range byFile {
		files = append(files, file)
	}
	sort.Strings(files)

	for i, file := range files {
		connector, indent := branch(i == len(files)-1)
		fmt.Fprintf(f.out, "%s%s\n", connector, color.YellowString(f.relPath(file)))

		cases := byFile[file]
		for j, failure := range cases {
			caseConnector, _ := branch(j == len(cases)-1)
			name := failure.FullName
			if name == "" {
				name = failure.TestName
			}
			fmt.Fprintf(f.out, "%s%s%s\n", indent, caseConnector, color.RedString(name))
		}
	}
}

// PrintExecutionInfos prints each test file of a report with its test cases
// and their status
func (f *Formatter) PrintExecutionInfos(infos []domain.TestExecutionInfo) {
	for _, info := range infos {
		status := "UNKNOWN"
		if result := info.Result(); result != nil {
			status = result.Status.String()
		}
		switch info.Kind() {
		case domain.TestInfoKindFile:
			fmt.Fprintf(f.out, "%s %s\n", paintStatus(status), color.CyanString(f.relPath(info.URI())))
		case domain.TestInfoKindCase:
			name := info.URI()
			if c, ok := info.(*domain.TestCaseInfo); ok {
				name = c.TestName
				if c.TestLocation != nil {
					name = fmt.Sprintf("%s (%d:%d)", name, c.TestLocation.Line, c.TestLocation.Column)
				}
			}
			fmt.Fprintf(f.out, "    %s %s\n", paintStatus(status), name)
		}
	}
}

func paintStatus(status string) string {
	switch status {
	case domain.TestResultPassed.String():
		return color.GreenString(status)
	case domain.TestResultFailed.String():
		return color.RedString(status)
	default:
		return color.YellowString(status)
	}
}

// Errorf prints an error line to stderr
func Errorf(format string, a ...interface{}) {
	fmt.Fprintln(os.Stderr, color.RedString(format, a...))
}
