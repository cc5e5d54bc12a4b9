package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"cleanpath/internal/model"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	tabStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(lipgloss.Color("240"))

	activeTabStyle = tabStyle.
			Foreground(lipgloss.Color("205")).
			Bold(true).
			Underline(true)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57"))

	keptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	droppedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Strikethrough(true)

	detailStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("63"))

	adviceStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("208")) // Orange

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("238"))
)

func (m AppModel) View() string {
	if m.Loading {
		return "\n  Cleaning path variables... please wait.\n"
	}
	if m.Err != nil {
		return fmt.Sprintf("\n  Error: %v\n", m.Err)
	}
	if len(m.Results) == 0 {
		return "\n  Nothing to inspect. Press q to quit.\n"
	}

	l := layoutFor(m.WindowSize.Width, m.WindowSize.Height)

	var b strings.Builder
	b.WriteString(titleStyle.Render("cleanpath " + model.Version))
	b.WriteString("  ")
	b.WriteString(m.renderTabs())
	b.WriteString("\n\n")

	vp := m.DetailsViewport
	vp.Width = l.rightWidth - 2
	vp.Height = l.interiorHeight

	left := detailStyle.Width(l.leftWidth).Height(l.interiorHeight).Render(m.renderList(l.leftWidth-4, l.interiorHeight))
	right := detailStyle.Width(l.rightWidth).Height(l.interiorHeight).Render(vp.View())
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left, right))
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

type layout struct {
	leftWidth      int
	rightWidth     int
	interiorHeight int
}

// layoutFor splits the window into the entry list and the detail pane.
func layoutFor(width, height int) layout {
	if width == 0 {
		width = 100
	}
	if height == 0 {
		height = 30
	}

	netWidth := width - 6
	if netWidth < 20 {
		netWidth = 20
	}
	boxHeight := height - 6
	if boxHeight < 6 {
		boxHeight = 6
	}
	return layout{
		leftWidth:      netWidth / 2,
		rightWidth:     netWidth - netWidth/2,
		interiorHeight: boxHeight - 2,
	}
}

func (m AppModel) renderTabs() string {
	tabs := make([]string, len(m.Results))
	for i, res := range m.Results {
		label := res.Name
		if label == "" {
			label = fmt.Sprintf("#%d", i+1)
		}
		if res.Changed() {
			label += "*"
		}
		if i == m.VarIdx {
			tabs[i] = activeTabStyle.Render(label)
		} else {
			tabs[i] = tabStyle.Render(label)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m AppModel) renderList(width, height int) string {
	res, _ := m.Current()
	if res.WasUnset {
		return dimStyle.Render(res.Name + " is not set")
	}

	var b strings.Builder
	visibleItems := height - 1
	if visibleItems < 1 {
		visibleItems = 1
	}
	startIdx := 0
	endIdx := len(m.FilteredIndices)
	if endIdx > visibleItems {
		if m.SelectedIdx >= visibleItems/2 {
			startIdx = m.SelectedIdx - visibleItems/2
		}
		if startIdx+visibleItems > endIdx {
			startIdx = endIdx - visibleItems
		}
		endIdx = startIdx + visibleItems
	}

	for i := startIdx; i < endIdx; i++ {
		e := res.PathEntries[m.FilteredIndices[i]]
		label := e.Value
		if label == "" {
			label = "(empty)"
		}
		line := fmt.Sprintf("%2d. %s %s", e.Index+1, e.Reason.Icon(), label)
		if width > 5 {
			line = ansi.Truncate(line, width, "...")
		}

		switch {
		case i == m.SelectedIdx:
			b.WriteString(selectedStyle.Render(line))
		case e.Kept:
			b.WriteString(keptStyle.Render(line))
		default:
			b.WriteString(droppedStyle.Render(line))
		}
		b.WriteString("\n")
	}
	if len(m.FilteredIndices) == 0 {
		b.WriteString(dimStyle.Render("no matching entries"))
	}
	return b.String()
}

func (m AppModel) renderDetails() string {
	res, _ := m.Current()
	var b strings.Builder

	fmt.Fprintf(&b, "%s: %d entries, %d removed\n\n", res.Name, len(res.PathEntries), res.Dropped())

	if e, ok := m.SelectedEntry(); ok {
		fmt.Fprintf(&b, "Entry:  %d\n", e.Index+1)
		fmt.Fprintf(&b, "Raw:    %q\n", e.Raw)
		fmt.Fprintf(&b, "Value:  %q\n", e.Value)
		fmt.Fprintf(&b, "Hash:   %d\n", e.Hash)
		fmt.Fprintf(&b, "Status: %s\n", e.Reason)
		if !e.Kept {
			b.WriteString("\n")
			b.WriteString(adviceStyle.Render("Removed: " + e.Describe()))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("new value:"))
	b.WriteString("\n")
	b.WriteString(res.Cleaned)
	return b.String()
}

func (m AppModel) renderFooter() string {
	if m.InputMode {
		return "Search: " + m.InputBuffer.View()
	}
	help := "↑/↓ move • pgup/pgdn scroll details • tab/←/→ variable • d dropped only • / search • q quit"
	if m.SearchActive {
		help = fmt.Sprintf("filter %q (esc to clear) • ", m.InputBuffer.Value()) + help
	}
	if m.DroppedOnly {
		help = "[dropped only] " + help
	}
	return dimStyle.Render(help)
}
