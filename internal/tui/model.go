package tui

import (
	"cleanpath/internal/model"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// Loader produces the results to inspect. It runs as a tea.Cmd.
type Loader func() ([]model.AnalysisResult, error)

// AppModel holds the TUI state.
type AppModel struct {
	// Data
	Results []model.AnalysisResult
	Loading bool
	Err     error
	load    Loader

	// UI State
	VarIdx      int // Selected variable tab
	SelectedIdx int // Index into FilteredIndices
	WindowSize  tea.WindowSizeMsg

	// View Modes
	DroppedOnly bool

	// Search State
	InputMode       bool
	InputBuffer     textinput.Model
	FilteredIndices []int // Indices of PathEntries to show
	SearchActive    bool

	// Components
	DetailsViewport viewport.Model
}

// InitialModel returns the initial state.
func InitialModel(load Loader) AppModel {
	ti := textinput.New()
	ti.Placeholder = "Substring..."
	ti.CharLimit = 100
	ti.Width = 30

	l := layoutFor(0, 0)
	return AppModel{
		Loading:         true,
		load:            load,
		InputBuffer:     ti,
		DetailsViewport: viewport.New(l.rightWidth-2, l.interiorHeight),
	}
}

// Init starts loading the results in the background.
func (m AppModel) Init() tea.Cmd {
	load := m.load
	return func() tea.Msg {
		if load == nil {
			return MsgResultsReady(nil)
		}
		res, err := load()
		if err != nil {
			return MsgError(err)
		}
		return MsgResultsReady(res)
	}
}

// Current returns the result of the selected variable.
func (m AppModel) Current() (model.AnalysisResult, bool) {
	if m.VarIdx < 0 || m.VarIdx >= len(m.Results) {
		return model.AnalysisResult{}, false
	}
	return m.Results[m.VarIdx], true
}

// SelectedEntry returns the highlighted path entry.
func (m AppModel) SelectedEntry() (model.PathEntry, bool) {
	res, ok := m.Current()
	if !ok || m.SelectedIdx < 0 || m.SelectedIdx >= len(m.FilteredIndices) {
		return model.PathEntry{}, false
	}
	return res.PathEntries[m.FilteredIndices[m.SelectedIdx]], true
}
