package ui

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"sfstage/internal/domain"
	"sfstage/internal/storage"
)

// Viewer displays test results in an interactive TUI
type Viewer interface {
	View(results *domain.TestResultsOutput) error
}

// FailureViewer displays LWC test failures in an interactive TUI
type FailureViewer struct {
	storage storage.ResultStore
}

// NewFailureViewer creates a new FailureViewer
func NewFailureViewer(st storage.ResultStore) *FailureViewer {
	return &FailureViewer{storage: st}
}

// View displays test failures; r toggles a failure's resolved flag and saves it
func (fv *FailureViewer) View(results *domain.TestResultsOutput) error {
	if len(results.Details) == 0 {
		color.Green("✓ No test failures found!")
		return nil
	}

	app := tview.NewApplication()

	list := tview.NewList().
		ShowSecondaryText(false).
		SetHighlightFullLine(true)

	listItemText := func(index int) string {
		failure := results.Details[index]
		name := failure.TestName
		if name == "" {
			name = fmt.Sprintf("Test %d", index+1)
		}
		if failure.Resolved {
			return fmt.Sprintf("[gray]✓ [yellow]%d.[gray] %s[white]", index+1, name)
		}
		return fmt.Sprintf("[yellow]%d.[white] %s", index+1, name)
	}

	for i := range results.Details {
		list.AddItem(listItemText(i), "", 0, nil)
	}

	list.SetMainTextColor(tview.Styles.PrimaryTextColor).
		SetSelectedTextColor(tcell.ColorWhite).
		SetSelectedBackgroundColor(tcell.ColorDarkCyan)

	statsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(false)

	detailsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(true).
		SetWordWrap(true)

	rightSide := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(statsView, 2, 0, false).
		AddItem(detailsView, 0, 1, false)

	flex := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(list, 0, 1, true).
		AddItem(rightSide, 0, 2, false)

	headerView := tview.NewTextView().
		SetTextAlign(tview.AlignCenter).
		SetDynamicColors(true)

	updateHeader := func() {
		unresolved := 0
		for _, failure := range results.Details {
			if !failure.Resolved {
				unresolved++
			}
		}
		headerView.SetText(fmt.Sprintf(" LWC Test Failures (%d total, %d unresolved) | ↑↓ navigate, [yellow]R[white] mark resolved, → details, ← back, Ctrl+C exit ", len(results.Details), unresolved))
	}

	updateDetails := func() {
		index := list.GetCurrentItem()
		if index >= 0 && index < len(results.Details) {
			failure := results.Details[index]
			statsView.SetText(FormatFailureStats(failure))
			detailsView.SetText(FormatFailureDetails(failure))
			detailsView.ScrollToBeginning()
		}
	}

	list.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyEnter, tcell.KeyRight:
			app.SetFocus(detailsView)
			return nil
		case tcell.KeyCtrlC:
			app.Stop()
			return nil
		case tcell.KeyRune:
			if event.Rune() == 'r' || event.Rune() == 'R' {
				index := list.GetCurrentItem()
				if index >= 0 && index < len(results.Details) {
					results.Details[index].Resolved = !results.Details[index].Resolved
					list.SetItemText(index, listItemText(index), "")
					updateHeader()
					if err := fv.storage.SaveOutput(results); err != nil {
						statsView.SetText(fmt.Sprintf("[red]Failed to save: %v[white]", err))
					}
				}
				return nil
			}
		}
		return event
	})

	detailsView.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyLeft, tcell.KeyEsc:
			app.SetFocus(list)
			return nil
		case tcell.KeyCtrlC:
			app.Stop()
			return nil
		}
		return event
	})

	list.SetChangedFunc(func(index int, mainText string, secondaryText string, shortcut rune) {
		updateDetails()
	})

	updateHeader()
	updateDetails()

	mainLayout := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(headerView, 1, 0, false).
		AddItem(tview.NewBox(), 1, 0, false).
		AddItem(flex, 0, 1, true)

	if err := app.SetRoot(mainLayout, true).SetFocus(list).Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

// FormatFailureDetails formats a test failure using tview color tags
func FormatFailureDetails(failure domain.TestFailure) string {
	var builder strings.Builder

	fmt.Fprintf(&builder, "[red]✗ Test: %s[white]\n\n", tview.Escape(failure.TestName))
	if len(failure.AncestorTitles) > 0 {
		fmt.Fprintf(&builder, "[cyan]Suite: %s[white]\n", tview.Escape(strings.Join(failure.AncestorTitles, " › ")))
	}
	fmt.Fprintf(&builder, "[cyan]File: %s[white]\n", tview.Escape(failure.FilePath))
	if failure.Line > 0 {
		fmt.Fprintf(&builder, "[yellow]Location: %d:%d[white]\n", failure.Line, failure.Column)
	}
	builder.WriteString("\n")

	if len(failure.Messages) > 0 {
		builder.WriteString("[yellow]Failure Messages:[white]\n")
		for _, message := range failure.Messages {
			builder.WriteString(tview.Escape(message))
			builder.WriteString("\n\n")
		}
	}
	return builder.String()
}

// FormatFailureStats formats the header line for a test failure
func FormatFailureStats(failure domain.TestFailure) string {
	path := failure.FilePath
	if path == "" {
		path = "Unknown path"
	}
	status := "[red]unresolved[white]"
	if failure.Resolved {
		status = "[green]resolved[white]"
	}
	return fmt.Sprintf("[cyan]path:[white] [yellow]%s[white] (%s)\n", tview.Escape(path), status)
}
