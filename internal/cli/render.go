package cli

import (
	"fmt"
	"os"

	"github.com/snipserve/snipserve/pkg/engine"

	"github.com/charmbracelet/lipgloss"
)

var (
	labelStyle = lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	preselectStyle = lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#286983", Dark: "#9ccfd8"})
	detailStyle = lipgloss.NewStyle().Faint(true)
)

// renderItems prints synthesized items one per line: label, snippet body,
// replacement span and detail. The preselected entry gets its own color.
func renderItems(items []engine.Item) {
	for _, item := range items {
		style := labelStyle
		mark := " "
		if item.Preselect {
			style = preselectStyle
			mark = ">"
		}
		fmt.Fprintf(os.Stderr, " %s %s  %s  [%d..+%d]  %s\n",
			mark,
			style.Render(item.Label),
			item.Snippet,
			item.Range.Begin,
			item.Range.End,
			detailStyle.Render(item.Detail),
		)
	}
}
