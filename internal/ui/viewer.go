package ui

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"tsel/internal/domain"
)

// Viewer displays a selection report in an interactive TUI
type Viewer interface {
	View(report *domain.SelectionReport) error
}

// ReportViewer browses the selected tests, rejected suggestions and
// changed files of the last run.
type ReportViewer struct{}

// NewReportViewer creates a new ReportViewer
func NewReportViewer() *ReportViewer {
	return &ReportViewer{}
}

// entry is one line of the left-hand list
type entry struct {
	kind string // "selected", "rejected" or "changed"
	path string
	test domain.SelectedTest
}

func reportEntries(report *domain.SelectionReport) []entry {
	entries := make([]entry, 0, len(report.Tests)+len(report.Rejected)+len(report.Changed))
	for _, t := range report.Tests {
		entries = append(entries, entry{kind: "selected", path: t.Path, test: t})
	}
	for _, p := range report.Rejected {
		entries = append(entries, entry{kind: "rejected", path: p})
	}
	for _, p := range report.Changed {
		entries = append(entries, entry{kind: "changed", path: p})
	}
	return entries
}

// View displays the report in an interactive TUI
func (rv *ReportViewer) View(report *domain.SelectionReport) error {
	entries := reportEntries(report)
	if len(entries) == 0 {
		color.Yellow("Nothing to show: no changed files and no selected tests")
		return nil
	}

	app := tview.NewApplication()

	list := tview.NewList().
		ShowSecondaryText(false).
		SetHighlightFullLine(true)
	for i, e := range entries {
		list.AddItem(formatEntry(i, e), "", 0, nil)
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

	detailsContainer := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(detailsView, 0, 1, false).
		AddItem(tview.NewBox(), 2, 0, false)

	rightSide := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(statsView, 3, 0, false).
		AddItem(detailsContainer, 0, 1, false)

	flex := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(list, 0, 1, true).
		AddItem(rightSide, 0, 2, false)

	headerView := tview.NewTextView().
		SetTextAlign(tview.AlignCenter).
		SetDynamicColors(true).
		SetText(formatHeader(report))

	updateDetails := func() {
		index := list.GetCurrentItem()
		if index >= 0 && index < len(entries) {
			statsView.SetText(formatEntryStats(entries[index]))
			detailsView.SetText(formatEntryDetails(report, entries[index]))
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
			if event.Rune() == 'q' {
				app.Stop()
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

	list.SetChangedFunc(func(int, string, string, rune) {
		updateDetails()
	})
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

func formatHeader(report *domain.SelectionReport) string {
	return fmt.Sprintf(" Selection %s (%d selected, %d rejected, %d changed) | ↑↓ navigate, → details, ← back, q to exit ",
		shortID(report.Meta.RunID), len(report.Tests), len(report.Rejected), len(report.Changed))
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func formatEntry(index int, e entry) string {
	switch e.kind {
	case "selected":
		return fmt.Sprintf("[green]✓[white] %s", tview.Escape(e.path))
	case "rejected":
		return fmt.Sprintf("[red]✗[gray] %s[white]", tview.Escape(e.path))
	}
	return fmt.Sprintf("[yellow]%d.[white] %s", index+1, tview.Escape(e.path))
}

func formatEntryStats(e entry) string {
	return fmt.Sprintf("[cyan]%s:[white] [yellow]%s[white]\n", e.kind, tview.Escape(e.path))
}

// formatEntryDetails formats an entry for display using tview color tags
func formatEntryDetails(report *domain.SelectionReport, e entry) string {
	var b strings.Builder

	switch e.kind {
	case "selected":
		fmt.Fprintf(&b, "[green]Selected: %s[white]\n\n", tview.Escape(e.path))
		b.WriteString("[yellow]Selected by:[white]\n")
		for _, s := range e.test.Sources {
			fmt.Fprintf(&b, "  %s: %s\n", s, describeSource(s))
		}
	case "rejected":
		fmt.Fprintf(&b, "[red]Rejected suggestion: %s[white]\n\n", tview.Escape(e.path))
		b.WriteString("The advisory response named this path but it is not an existing test file inside the project.\n")
	default:
		fmt.Fprintf(&b, "[cyan]Changed: %s[white]\n\n", tview.Escape(e.path))
		for _, t := range report.Tests {
			if t.Path == e.path {
				b.WriteString("This test file changed and is selected itself.\n")
				break
			}
		}
	}

	meta := report.Meta
	b.WriteString("\n[yellow]Run:[white]\n")
	fmt.Fprintf(&b, "  id:        %s\n", meta.RunID)
	fmt.Fprintf(&b, "  timestamp: %s\n", meta.Timestamp)
	fmt.Fprintf(&b, "  provider:  %s %s\n", meta.Provider, meta.Model)
	fmt.Fprintf(&b, "  advisory:  %s\n", meta.AdvisoryStatus)
	if meta.HTTPStatus != 0 {
		fmt.Fprintf(&b, "  http:      %d\n", meta.HTTPStatus)
	}
	if meta.AdvisoryError != "" {
		fmt.Fprintf(&b, "  error:     [red]%s[white]\n", tview.Escape(meta.AdvisoryError))
	}
	fmt.Fprintf(&b, "  duration:  %.2fs\n", meta.DurationSeconds)
	return b.String()
}

func describeSource(s domain.Source) string {
	switch s {
	case domain.SourceMapping:
		return "mapped from a changed source file"
	case domain.SourceChanged:
		return "the test file itself changed"
	case domain.SourceAdvisory:
		return "suggested by the advisory model and found on disk"
	}
	return string(s)
}
