package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
)

// ProgressBar creates and manages progress bars
type ProgressBar struct {
	bar   *progressbar.ProgressBar
	label string
}

func newBar(max int, description string, w io.Writer) *progressbar.ProgressBar {
	return progressbar.NewOptions(max,
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWidth(50),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        color.CyanString("█"),
			SaucerHead:    color.CyanString("█"),
			SaucerPadding: "░",
			BarStart:      "│",
			BarEnd:        "│",
		}),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWriter(w),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprint(w, "\n")
		}),
		progressbar.OptionSetRenderBlankState(true),
	)
}

// NewProgressBar creates a progress bar for count test files
func NewProgressBar(count int) *ProgressBar {
	p := &ProgressBar{label: "Running LWC tests: "}
	p.bar = newBar(count, p.describe(0, 0), os.Stderr)
	return p
}

func (p *ProgressBar) describe(passed, failed int) string {
	return color.CyanString(p.label) +
		color.GreenString("[passed: %d", passed) +
		" | " +
		color.RedString("failed: %d]", failed)
}

// Update sets the completed file count and the passed/failed test case counts
func (p *ProgressBar) Update(completed, passed, failed int) {
	p.bar.Set(completed)
	p.bar.Describe(p.describe(passed, failed))
}

// Finish completes the progress bar
func (p *ProgressBar) Finish() {
	p.bar.Finish()
}

// Spinner counts items of unknown total, e.g. components found while scanning sources
type Spinner struct {
	bar *progressbar.ProgressBar
}

// NewSpinner creates a Spinner with the given description
func NewSpinner(description string) *Spinner {
	return &Spinner{bar: newBar(-1, color.CyanString(description), os.Stderr)}
}

// Add counts one more item
func (s *Spinner) Add() {
	s.bar.Add(1)
}

// Finish completes the spinner
func (s *Spinner) Finish() {
	s.bar.Finish()
}
