package ui

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Auzzy/relative-artistry/internal/services"
)

// ErrPickerCancelled is returned when the user quits the picker without choosing.
var ErrPickerCancelled = errors.New("selection cancelled")

var _ list.Item = artistItem{}

// artistItem wraps [services.Artist] to implement [list.Item].
type artistItem struct {
	artist services.Artist
	index  int
}

func (i artistItem) FilterValue() string { return i.artist.Name }
func (i artistItem) Title() string       { return i.artist.Name }
func (i artistItem) Description() string {
	return fmt.Sprintf("%s • popularity %d • %d followers",
		i.artist.URI, i.artist.Popularity, i.artist.Followers)
}

// Model represents the picker state.
type Model struct {
	artistList list.Model
	width      int
	height     int
	choice     int
	cancelled  bool
	help       help.Model
	keys       keyMap
}

// NewModel creates a picker over the given candidates.
func NewModel(artists []services.Artist) *Model {
	items := make([]list.Item, len(artists))
	for i, artist := range artists {
		items[i] = artistItem{artist: artist, index: i}
	}

	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = fmt.Sprintf("%d artists match. Which did you mean?", len(artists))
	l.Styles.Title = styles.title
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)

	return &Model{
		artistList: l,
		choice:     -1,
		help:       help.New(),
		keys:       newKeyMap(),
	}
}

func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles incoming messages and updates the picker state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.artistList.SetSize(msg.Width-4, msg.Height-6)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.cancelled = true
			return m, tea.Quit
		case "enter":
			if selected := m.artistList.SelectedItem(); selected != nil {
				if item, ok := selected.(artistItem); ok {
					m.choice = item.index
					return m, tea.Quit
				}
			}
		}
	}

	var cmd tea.Cmd
	m.artistList, cmd = m.artistList.Update(msg)
	return m, cmd
}

// View renders the candidate list with contextual help.
func (m *Model) View() string {
	helpView := m.help.ShortHelpView(m.keys.ShortHelp())
	return fmt.Sprintf("%s\n\n%s", m.artistList.View(), helpView)
}

// Choice returns the picked candidate index, or an error when cancelled.
func (m *Model) Choice() (int, error) {
	if m.cancelled || m.choice < 0 {
		return 0, ErrPickerCancelled
	}
	return m.choice, nil
}

// PickArtist runs the picker to completion and returns the chosen index.
// It satisfies [selector.PickFunc].
func PickArtist(artists []services.Artist) (int, error) {
	model := NewModel(artists)
	program := tea.NewProgram(model)

	final, err := program.Run()
	if err != nil {
		return 0, fmt.Errorf("picker failed: %w", err)
	}

	if m, ok := final.(*Model); ok {
		return m.Choice()
	}
	return model.Choice()
}
