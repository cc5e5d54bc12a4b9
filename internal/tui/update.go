package tui

import (
	"strings"

	"cleanpath/internal/model"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// MsgResultsReady indicates that cleaning has completed.
type MsgResultsReady []model.AnalysisResult

// MsgError indicates an error occurred.
type MsgError error

// Update handles events.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m, cmd := m.update(msg)
	m.syncDetails()
	return m, cmd
}

func (m AppModel) update(msg tea.Msg) (AppModel, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.WindowSize = msg
		l := layoutFor(msg.Width, msg.Height)
		m.DetailsViewport.Width = l.rightWidth - 2
		m.DetailsViewport.Height = l.interiorHeight
		return m, nil

	case MsgResultsReady:
		m.Loading = false
		m.Results = []model.AnalysisResult(msg)
		m.VarIdx = 0
		m.applyFilter()
		return m, nil

	case MsgError:
		m.Err = msg
		m.Loading = false
		return m, nil

	case tea.KeyMsg:
		if m.InputMode {
			switch msg.Type {
			case tea.KeyEnter:
				// keep the search active after leaving input mode
				m.InputMode = false
				m.InputBuffer.Blur()
				m.applyFilter()
				return m, nil
			case tea.KeyEsc:
				m.clearSearch()
				return m, nil
			}
			m.InputBuffer, cmd = m.InputBuffer.Update(msg)
			m.applyFilter()
			return m, cmd
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "esc":
			if m.SearchActive {
				m.clearSearch()
			}
		case "up", "k":
			if m.SelectedIdx > 0 {
				m.SelectedIdx--
				m.DetailsViewport.GotoTop()
			}
		case "down", "j":
			if m.SelectedIdx < len(m.FilteredIndices)-1 {
				m.SelectedIdx++
				m.DetailsViewport.GotoTop()
			}
		case "pgup", "pgdown":
			m.DetailsViewport, cmd = m.DetailsViewport.Update(msg)
		case "tab", "right", "l":
			if len(m.Results) > 0 {
				m.VarIdx = (m.VarIdx + 1) % len(m.Results)
				m.SelectedIdx = 0
				m.applyFilter()
			}
		case "shift+tab", "left", "h":
			if len(m.Results) > 0 {
				m.VarIdx = (m.VarIdx - 1 + len(m.Results)) % len(m.Results)
				m.SelectedIdx = 0
				m.applyFilter()
			}
		case "d":
			m.DroppedOnly = !m.DroppedOnly
			m.applyFilter()
		case "/":
			m.InputMode = true
			m.InputBuffer.Focus()
			m.InputBuffer.SetValue("")
			return m, textinput.Blink
		}
	}

	return m, cmd
}

// syncDetails refreshes the detail pane for the current selection.
func (m *AppModel) syncDetails() {
	if m.Loading || m.Err != nil {
		return
	}
	m.DetailsViewport.SetContent(m.renderDetails())
}

func (m *AppModel) clearSearch() {
	m.InputMode = false
	m.InputBuffer.Blur()
	m.InputBuffer.SetValue("")
	m.applyFilter()
}

// applyFilter recomputes FilteredIndices from the search term and the
// dropped-only toggle, and keeps the cursor in range.
func (m *AppModel) applyFilter() {
	term := strings.ToLower(m.InputBuffer.Value())
	m.SearchActive = term != ""

	var indices []int
	if res, ok := m.Current(); ok {
		for i, e := range res.PathEntries {
			if m.DroppedOnly && e.Kept {
				continue
			}
			if term != "" && !strings.Contains(strings.ToLower(e.Value), term) {
				continue
			}
			indices = append(indices, i)
		}
	}
	m.FilteredIndices = indices

	// Bounds check
	if m.SelectedIdx >= len(m.FilteredIndices) {
		if len(m.FilteredIndices) > 0 {
			m.SelectedIdx = len(m.FilteredIndices) - 1
		} else {
			m.SelectedIdx = 0
		}
	}
}
