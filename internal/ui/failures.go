package ui

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"pmtest/internal/domain"
	"pmtest/internal/storage"
)

// FailureViewer displays failed scenarios of the last run in an interactive TUI
type FailureViewer struct {
	storage storage.Storage
}

// NewFailureViewer creates a new FailureViewer
func NewFailureViewer(st storage.Storage) *FailureViewer {
	return &FailureViewer{storage: st}
}

var _ Viewer = (*FailureViewer)(nil)

// View lists failed cases on the left and the selected case's steps on the
// right. R toggles the resolved mark, which is saved immediately.
func (fv *FailureViewer) View(results *domain.RunResults) error {
	failed := results.Report().FailedCases()
	if len(failed) == 0 {
		color.Green("✓ No scenario failures found!")
		return nil
	}
	if results.Resolved == nil {
		results.Resolved = make(map[string]bool)
	}

	app := tview.NewApplication()

	list := tview.NewList().
		ShowSecondaryText(false).
		SetHighlightFullLine(true)
	for i, c := range failed {
		list.AddItem(listItemText(i, c.Name, results.Resolved[c.Name]), "", 0, nil)
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
		SetDynamicColors(true)

	updateHeader := func() {
		headerView.SetText(fmt.Sprintf(
			" Scenario Failures (%d total, %d unresolved) | Use ↑↓ to navigate, [yellow]R[white] to mark resolved, → to view steps, ← to go back, Ctrl+C to exit ",
			len(failed), countUnresolved(failed, results.Resolved)))
	}

	updateDetails := func() {
		index := list.GetCurrentItem()
		if index < 0 || index >= len(failed) {
			return
		}
		c := failed[index]
		statsView.SetText(formatCaseStats(c, results.Meta))
		detailsView.SetText(formatCaseDetails(c)).ScrollToBeginning()
	}

	var saveErr error
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
				if index >= 0 && index < len(failed) {
					name := failed[index].Name
					ToggleResolved(results, name)
					list.SetItemText(index, listItemText(index, name, results.Resolved[name]), "")
					updateHeader()
					if err := fv.storage.SaveOutput(results); err != nil {
						saveErr = err
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

	list.SetChangedFunc(func(int, string, string, rune) {
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
	if saveErr != nil {
		return fmt.Errorf("save resolved status: %w", saveErr)
	}
	return nil
}

// ToggleResolved flips the resolved mark of a failed case and returns the new state
func ToggleResolved(results *domain.RunResults, name string) bool {
	if results.Resolved == nil {
		results.Resolved = make(map[string]bool)
	}
	if results.Resolved[name] {
		delete(results.Resolved, name)
		return false
	}
	results.Resolved[name] = true
	return true
}

func countUnresolved(failed []domain.TestCaseRecord, resolved map[string]bool) int {
	count := 0
	for _, c := range failed {
		if !resolved[c.Name] {
			count++
		}
	}
	return count
}

func listItemText(index int, name string, resolved bool) string {
	if resolved {
		return fmt.Sprintf("[gray]✓ [yellow]%d.[gray] %s[white]", index+1, tview.Escape(name))
	}
	return fmt.Sprintf("[yellow]%d.[white] %s", index+1, tview.Escape(name))
}

// formatCaseStats formats the header line above the steps using tview color tags
func formatCaseStats(c domain.TestCaseRecord, meta domain.RunMeta) string {
	return fmt.Sprintf("[cyan]scenario:[white] [yellow]%s[white]  [cyan]duration:[white] %.2fs  [cyan]run:[white] %s\n",
		tview.Escape(c.Name), c.Duration(), tview.Escape(meta.RunID))
}

// formatCaseDetails lists every step of a case with its outcome and screenshot
func formatCaseDetails(c domain.TestCaseRecord) string {
	var b strings.Builder

	fmt.Fprintf(&b, "[red]✗ Scenario: %s[white]\n", tview.Escape(c.Name))
	fmt.Fprintf(&b, "[cyan]Started: %s[white]\n\n", c.StartedAt.Format("2006-01-02 15:04:05"))

	if len(c.Steps) == 0 {
		b.WriteString("[gray](no steps recorded)[white]\n")
		return b.String()
	}

	b.WriteString("[yellow]Steps:[white]\n")
	for i, s := range c.Steps {
		mark := "[green]✓"
		if s.Outcome == domain.OutcomeFail {
			mark = "[red]✗"
		}
		fmt.Fprintf(&b, "%s %2d.[white] %s [gray](%s)[white]\n", mark, i+1, tview.Escape(s.Description), s.Timestamp.Format("15:04:05"))
		if s.HasArtifact() {
			fmt.Fprintf(&b, "       [gray]%s[white]\n", tview.Escape(s.ArtifactPath))
		}
	}
	return b.String()
}
