package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/ghcorpus/internal/core/domain"
)

var (
	labelStyle   = lipgloss.NewStyle().Bold(true)
	keptStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	droppedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	pathStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// progressEvery is the number of records between progress updates.
const progressEvery = 1000

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// printRunSummary prints the Kept/Dropped/Total line for a run.
// Output is styled only when stdout is a terminal.
func printRunSummary(cmd *cobra.Command, label string, run *domain.Run) {
	out := cmd.OutOrStdout()
	if !isTerminal(out) {
		fmt.Fprintf(out, "%s: Kept=%d, Dropped=%d, Total=%d\n",
			label, run.Kept, run.Dropped, run.Total())
		return
	}
	fmt.Fprintf(out, "%s Kept=%s, Dropped=%s, Total=%d\n",
		labelStyle.Render(label+":"),
		keptStyle.Render(fmt.Sprint(run.Kept)),
		droppedStyle.Render(fmt.Sprint(run.Dropped)),
		run.Total())
	if run.Output != "" {
		fmt.Fprintln(out, pathStyle.Render("  → "+run.Output))
	}
}

// progressPrinter returns a cleaning progress callback that rewrites one
// status line on stderr, and a func ending that line. Both are no-ops when
// stderr is not a terminal.
func progressPrinter(cmd *cobra.Command) (func(domain.CleanSummary), func()) {
	errOut := cmd.ErrOrStderr()
	if !isTerminal(errOut) {
		return func(domain.CleanSummary) {}, func() {}
	}
	printed := false
	update := func(s domain.CleanSummary) {
		if s.Total()%progressEvery == 0 {
			fmt.Fprintf(errOut, "\rCleaning... %d records (%d kept)", s.Total(), s.Kept)
			printed = true
		}
	}
	done := func() {
		if printed {
			fmt.Fprintln(errOut)
		}
	}
	return update, done
}
