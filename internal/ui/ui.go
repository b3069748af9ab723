package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"setlift/internal/models"
	"setlift/internal/tasks"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	ExtractView ViewState = iota
	TrackListView
)

// Model represents the TUI application state.
type Model struct {
	ctx          context.Context
	view         ViewState
	engine       *tasks.Engine
	reference    string
	width        int
	height       int
	trackList    list.Model
	record       *models.SetRecord
	progressChan chan tasks.ProgressUpdate
	progress     tasks.ProgressUpdate
	err          error
	help         help.Model
	keys         keyMap
}

type progressUpdateMsg tasks.ProgressUpdate

type extractCompleteMsg struct {
	record *models.SetRecord
	err    error
}

// NewModel creates a new TUI model extracting the given reference.
func NewModel(ctx context.Context, engine *tasks.Engine, reference string) *Model {
	return &Model{
		ctx:       ctx,
		view:      ExtractView,
		engine:    engine,
		reference: reference,
		help:      help.New(),
		keys:      newKeyMap(),
	}
}

// Init starts the extraction pipeline.
func (m *Model) Init() tea.Cmd {
	return m.startExtract()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.trackList.Width() == 0 {
			m.trackList.SetSize(msg.Width-4, msg.Height-8)
		}
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case ExtractView:
			return m.handleExtractKeys(msg)
		case TrackListView:
			return m.handleTrackListKeys(msg)
		}

	case progressUpdateMsg:
		m.progress = tasks.ProgressUpdate(msg)
		return m, m.waitForProgress()

	case extractCompleteMsg:
		m.record = msg.record
		m.err = msg.err
		if m.progressChan != nil {
			m.progressChan = nil
		}
		if m.err != nil {
			return m, nil
		}

		items := make([]list.Item, len(m.record.Tracklist))
		for i, track := range m.record.Tracklist {
			items[i] = trackItem{track: track}
		}
		m.trackList = list.New(items, list.NewDefaultDelegate(), 0, 0)
		m.trackList.Title = fmt.Sprintf("%s - %s", m.record.Artist, m.record.Event)
		m.trackList.SetSize(m.width-4, m.height-8)
		m.view = TrackListView
		return m, nil
	}

	if m.view == TrackListView {
		var cmd tea.Cmd
		m.trackList, cmd = m.trackList.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil {
		return styles.err.Render(fmt.Sprintf("Extraction failed: %v\n\nPress r to retry, q to quit", m.err))
	}

	switch m.view {
	case ExtractView:
		return m.renderExtract()
	case TrackListView:
		return m.renderTrackList()
	default:
		return ""
	}
}

func (m *Model) handleExtractKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "r":
		if m.err != nil {
			m.err = nil
			return m, m.startExtract()
		}
	}
	return m, nil
}

func (m *Model) handleTrackListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.trackList, cmd = m.trackList.Update(msg)
	return m, cmd
}

func (m *Model) startExtract() tea.Cmd {
	m.progressChan = make(chan tasks.ProgressUpdate, 50)
	progressChan := m.progressChan

	go func() {
		record, err := m.engine.Extract(m.ctx, progressChan, m.reference)
		m.record = record
		m.err = err
		close(progressChan)
	}()

	return m.waitForProgress()
}

func (m *Model) waitForProgress() tea.Cmd {
	return func() tea.Msg {
		if m.progressChan == nil {
			return extractCompleteMsg{record: m.record, err: m.err}
		}

		update, ok := <-m.progressChan
		if !ok {
			return extractCompleteMsg{record: m.record, err: m.err}
		}
		return progressUpdateMsg(update)
	}
}

func (m *Model) renderExtract() string {
	title := styles.title.Render("Extracting Set")

	var phase string
	switch m.progress.Phase {
	case tasks.ResolveSource:
		phase = "Resolving source reference..."
	case tasks.GenerateExtraction:
		phase = "Extracting set data with AI..."
	case tasks.ParseOutput:
		phase = "Parsing extraction output..."
	case tasks.EnrichTracks:
		phase = fmt.Sprintf("Enriching tracks (%d/%d)", m.progress.Step, m.progress.Total)
	default:
		phase = "Processing..."
	}

	return fmt.Sprintf("%s\n\n%s\n%s", title, phase, styles.help.Render(m.progress.Message))
}

func (m *Model) renderTrackList() string {
	summary := fmt.Sprintf(
		"%s • %s • %s BPM • %d tracks (%d unidentified)",
		m.record.Date, m.record.MainGenre, m.record.BPMRange,
		m.record.TotalTracks, m.record.UnidentifiedTracks,
	)

	helpKeys := []key.Binding{m.keys.up, m.keys.down, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n%s\n\n%s", styles.warn.Render(summary), m.trackList.View(), helpView)
}
