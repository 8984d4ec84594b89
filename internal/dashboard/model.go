// Package dashboard is the Bubble Tea front end for the enclosure
// store: tiles for pool/expander/health groupings, a slot grid per
// enclosure side, and the live CPU gauge.
package dashboard

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/shelfmon/shelfmon/internal/enclosure"
	"github.com/shelfmon/shelfmon/internal/gauge"
	"github.com/shelfmon/shelfmon/internal/stats"
)

// StateMsg delivers a new store snapshot to the TUI loop.
type StateMsg struct {
	State *enclosure.State
}

// StatsMsg delivers a pushed realtime sample.
type StatsMsg struct {
	Sample stats.Sample
}

// ErrMsg surfaces a reported error in the footer.
type ErrMsg struct {
	Err error
}

// Model is the Bubble Tea model for the enclosure dashboard.
type Model struct {
	store *enclosure.Store
	state *enclosure.State
	gauge gauge.Model

	width   int
	height  int
	lastErr string

	spin     spinner.Model
	renaming bool
	rename   textinput.Model
	showHelp bool
	quitting bool
}

// NewModel builds the dashboard over an already-constructed store. The
// caller owns wiring store.OnChange and the stats stream to the
// program's Send.
func NewModel(store *enclosure.Store) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = TabStyle

	ti := textinput.New()
	ti.Placeholder = "enclosure label"
	ti.CharLimit = 64

	return Model{
		store:  store,
		state:  store.Snapshot(),
		gauge:  gauge.NewModel(nil),
		spin:   sp,
		rename: ti,
	}
}

// Init kicks off the initial load and the disk-update subscription.
func (m Model) Init() tea.Cmd {
	m.store.AddListenerForDiskUpdates()
	m.store.Initiate()
	return m.spin.Tick
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.renaming {
			return m.updateRename(msg)
		}
		handled, cmd := m.HandleKeyMsg(msg)
		if handled {
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case StateMsg:
		m.state = msg.State

	case StatsMsg:
		m.gauge.Push(msg.Sample)

	case ErrMsg:
		if msg.Err != nil {
			m.lastErr = msg.Err.Error()
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}

	return m, nil
}

// SetCurrentView delegates the view change to the store.
func (m *Model) SetCurrentView(view enclosure.ViewKind) {
	m.store.SelectView(view)
}

// startRename opens the inline rename input primed with the current label.
func (m *Model) startRename() {
	if m.state.SelectedEnclosure() == nil {
		return
	}
	m.renaming = true
	m.rename.SetValue(m.state.EnclosureLabel())
	m.rename.Focus()
}

func (m Model) updateRename(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case KeyRenameCommit:
		m.store.RenameSelectedEnclosure(m.rename.Value())
		m.renaming = false
		m.rename.Blur()
		return m, nil
	case KeyClearSlot:
		m.renaming = false
		m.rename.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.rename, cmd = m.rename.Update(msg)
	return m, cmd
}

// selectEnclosureOffset moves the enclosure selection by delta,
// clamped to the list bounds.
func (m *Model) selectEnclosureOffset(delta int) {
	encs := m.state.Enclosures
	if len(encs) == 0 {
		return
	}
	idx := m.state.SelectedEnclosureIndex + delta
	if idx < 0 || idx >= len(encs) {
		return
	}
	m.store.SelectEnclosure(encs[idx].ID)
}

// selectSlotOffset moves the slot selection by delta within the
// selected enclosure's bays, selecting the first bay when none is.
func (m *Model) selectSlotOffset(delta int) {
	slots := m.state.SelectedEnclosureSlots()
	if len(slots) == 0 {
		return
	}
	cur := -1
	if m.state.SelectedSlot != nil {
		for i, s := range slots {
			if s.Number == m.state.SelectedSlot.Number {
				cur = i
				break
			}
		}
	}
	next := cur + delta
	if cur == -1 {
		next = 0
	}
	if next < 0 || next >= len(slots) {
		return
	}
	m.store.SelectSlot(slots[next])
}
