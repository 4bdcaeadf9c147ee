package execution

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"time"

	"sfstage/internal/config"
	"sfstage/internal/domain"
	"sfstage/internal/parser"
)

// Runner executes sfdx-lwc-jest for a single test file
type Runner struct {
	config *config.Config
	parser *parser.JestParser
}

// NewRunner creates a new Runner
func NewRunner(cfg *config.Config, jestParser *parser.JestParser) *Runner {
	return &Runner{config: cfg, parser: jestParser}
}

// Run executes Jest for a single test file and reads back its JSON report
func (r *Runner) Run(ctx context.Context, testPath string, workerID int) domain.TestRun {
	start := time.Now()

	reportFile, err := os.CreateTemp("", fmt.Sprintf("sfstage-jest-%d-*.json", workerID))
	if err != nil {
		return domain.TestRun{TestPath: testPath, Error: fmt.Errorf("create report file: %w", err)}
	}
	reportPath := reportFile.Name()
	reportFile.Close()
	defer os.Remove(reportPath)

	cmd := exec.CommandContext(ctx, r.config.GetJestCommand(), "--", "--json", "--outputFile="+reportPath, testPath)
	cmd.Env = append(os.Environ(), "CI=true")
	cmd.Dir = r.config.ProjectPath

	output, err := cmd.CombinedOutput()

	run := domain.TestRun{
		TestPath: testPath,
		Success:  err == nil,
		Output:   string(output),
		Error:    err,
		Duration: time.Since(start),
	}

	// Jest exits non-zero on test failures but still writes the report
	if info, statErr := os.Stat(reportPath); statErr == nil && info.Size() > 0 {
		report, parseErr := r.parser.ParseFile(reportPath)
		if parseErr != nil && run.Error == nil {
			run.Error = parseErr
			run.Success = false
		}
		run.Report = report
	}
	return run
}
