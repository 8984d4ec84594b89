package dashboard

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/shelfmon/shelfmon/internal/enclosure"
)

// Key bindings as constants for consistency.
const (
	KeyQuit         = "q"
	KeyQuitAlt      = "ctrl+c"
	KeyReload       = "R"
	KeyRefresh      = "u"
	KeyPrevShelf    = "left"
	KeyPrevShelfH   = "h"
	KeyNextShelf    = "right"
	KeyNextShelfL   = "l"
	KeyPrevSlot     = "up"
	KeyPrevSlotK    = "k"
	KeyNextSlot     = "down"
	KeyNextSlotJ    = "j"
	KeyCycleView    = "v"
	KeyCycleSide    = "s"
	KeyRename       = "e"
	KeyClearSlot    = "esc"
	KeyToggleHelp   = "?"
	KeyRenameCommit = "enter"
)

// HandleKeyMsg processes keyboard input in browse mode. Returns true
// when the key was handled. Rename-mode input is handled by Update
// before this runs.
func (m *Model) HandleKeyMsg(msg tea.KeyMsg) (bool, tea.Cmd) {
	key := msg.String()

	if key == KeyToggleHelp {
		m.showHelp = !m.showHelp
		return true, nil
	}
	if m.showHelp && key == KeyClearSlot {
		m.showHelp = false
		return true, nil
	}

	switch key {
	case KeyQuit, KeyQuitAlt:
		m.quitting = true
		m.store.Close()
		return true, tea.Quit

	case KeyReload:
		m.store.Initiate()
		return true, nil

	case KeyRefresh:
		m.store.Update()
		return true, nil

	case KeyPrevShelf, KeyPrevShelfH:
		m.selectEnclosureOffset(-1)
		return true, nil

	case KeyNextShelf, KeyNextShelfL:
		m.selectEnclosureOffset(1)
		return true, nil

	case KeyPrevSlot, KeyPrevSlotK:
		m.selectSlotOffset(-1)
		return true, nil

	case KeyNextSlot, KeyNextSlotJ:
		m.selectSlotOffset(1)
		return true, nil

	case KeyCycleView:
		m.SetCurrentView(nextView(m.state.SelectedView))
		return true, nil

	case KeyCycleSide:
		m.store.SelectSide(nextSide(m.state.SelectedSide))
		return true, nil

	case KeyClearSlot:
		m.store.ClearSlot()
		return true, nil

	case KeyRename:
		m.startRename()
		return true, nil
	}

	return false, nil
}

// nextView cycles pools -> expanders -> details -> pools.
func nextView(v enclosure.ViewKind) enclosure.ViewKind {
	switch v {
	case enclosure.ViewPools:
		return enclosure.ViewExpanders
	case enclosure.ViewExpanders:
		return enclosure.ViewDetails
	default:
		return enclosure.ViewPools
	}
}

// nextSide cycles unset -> front -> rear -> top -> front.
func nextSide(s enclosure.Side) enclosure.Side {
	switch s {
	case enclosure.SideUnset, enclosure.SideTop:
		return enclosure.SideFront
	case enclosure.SideFront:
		return enclosure.SideRear
	default:
		return enclosure.SideTop
	}
}
