package dashboard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/shelfmon/shelfmon/internal/enclosure"
)

// slotsPerRow is the bay grid width; 24-bay shelves render as two rows.
const slotsPerRow = 12

// View renders the dashboard.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	if m.state.IsLoading {
		b.WriteString(m.spin.View() + " loading enclosures...\n")
		return b.String()
	}

	if len(m.state.Enclosures) == 0 {
		b.WriteString(TabStyle.Render("no enclosures reported") + "\n")
	} else {
		b.WriteString(m.renderSlotGrid())
		b.WriteString("\n")
		b.WriteString(m.renderTiles())
		b.WriteString("\n")
	}

	b.WriteString(m.gauge.View())
	b.WriteString("\n")

	if m.renaming {
		b.WriteString("rename: " + m.rename.View() + "\n")
	}

	b.WriteString(m.renderFooter())
	return b.String()
}

func (m Model) renderHeader() string {
	label := m.state.EnclosureLabel()
	if label == "" {
		label = "shelfmon"
	}

	pos := ""
	if n := len(m.state.Enclosures); n > 1 {
		pos = fmt.Sprintf(" [%d/%d]", m.state.SelectedEnclosureIndex+1, n)
	}

	side := ""
	if m.state.SelectedSide != enclosure.SideUnset {
		side = " · " + m.state.SelectedSide.String()
	}

	tabs := m.renderViewTabs()
	return HeaderStyle.Render(label+pos+side) + "  " + tabs
}

func (m Model) renderViewTabs() string {
	views := []enclosure.ViewKind{enclosure.ViewPools, enclosure.ViewExpanders, enclosure.ViewDetails}
	parts := make([]string, 0, len(views))
	for _, v := range views {
		if v == m.state.SelectedView {
			parts = append(parts, SelectedTabStyle.Render(v.String()))
		} else {
			parts = append(parts, TabStyle.Render(v.String()))
		}
	}
	return strings.Join(parts, " | ")
}

// renderSlotGrid draws the bays of the selected enclosure as a grid of
// cells colored by pool disk status.
func (m Model) renderSlotGrid() string {
	slots := m.state.SelectedEnclosureSlots()
	if len(slots) == 0 {
		return TabStyle.Render("no array device slots")
	}

	var rows []string
	var row []string
	for _, slot := range slots {
		cell := fmt.Sprintf("%02d", slot.Number)
		style := SlotEmptyStyle
		if slot.PoolInfo != nil {
			style = statusStyle(slot.PoolInfo.DiskStatus)
		}
		if m.state.SelectedSlot != nil && m.state.SelectedSlot.Number == slot.Number {
			style = SlotSelectedStyle
		}
		row = append(row, style.Render(cell))
		if len(row) == slotsPerRow {
			rows = append(rows, strings.Join(row, " "))
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, strings.Join(row, " "))
	}

	grid := strings.Join(rows, "\n")
	if sel := m.state.SelectedSlot; sel != nil {
		grid += "\n" + m.renderSlotDetail(sel)
	}
	return grid
}

func (m Model) renderSlotDetail(slot *enclosure.Slot) string {
	parts := []string{fmt.Sprintf("bay %d", slot.Number)}
	if slot.Dev != "" {
		parts = append(parts, slot.Dev)
	}
	if slot.Size > 0 {
		parts = append(parts, humanize.IBytes(uint64(slot.Size)))
	}
	if slot.PoolInfo != nil {
		parts = append(parts, slot.PoolInfo.PoolName,
			statusStyle(slot.PoolInfo.DiskStatus).Render(slot.PoolInfo.DiskStatus))
	} else {
		parts = append(parts, TabStyle.Render("unassigned"))
	}
	return TabStyle.Render("▸ ") + strings.Join(parts, " · ")
}

// renderTiles draws the tile row for the current view.
func (m Model) renderTiles() string {
	switch m.state.SelectedView {
	case enclosure.ViewExpanders:
		return m.renderExpandersTile()
	case enclosure.ViewDetails:
		return m.renderHealthTile()
	default:
		return lipgloss.JoinHorizontal(lipgloss.Top, m.renderPoolsTile(), m.renderHealthTile())
	}
}

func (m Model) renderPoolsTile() string {
	pools := PoolsInfo(m.state)

	var lines []string
	lines = append(lines, TileTitleStyle.Render("Pools"))
	if len(pools) == 0 {
		lines = append(lines, TabStyle.Render("none"))
	}
	for _, p := range pools {
		lines = append(lines, fmt.Sprintf("%s %s",
			statusStyle(p.DiskStatus).Render("●"), p.PoolName))
	}
	return TileStyle.Render(strings.Join(lines, "\n"))
}

func (m Model) renderExpandersTile() string {
	expanders := Expanders(m.state)

	var lines []string
	lines = append(lines, TileTitleStyle.Render("SAS Expanders"))
	if len(expanders) == 0 {
		lines = append(lines, TabStyle.Render("none"))
	}
	for _, x := range expanders {
		style := SlotOnlineStyle
		if x.Status != "OK" {
			style = SlotDegradedStyle
		}
		lines = append(lines, fmt.Sprintf("%s %s", style.Render(x.Status), x.Descriptor))
	}
	return TileStyle.Render(strings.Join(lines, "\n"))
}

func (m Model) renderHealthTile() string {
	unhealthy := UnhealthyPoolsInfo(m.state)
	failed := FailedDisks(m.state)

	var lines []string
	lines = append(lines, TileTitleStyle.Render("Health"))
	if len(unhealthy) == 0 && len(failed) == 0 {
		lines = append(lines, SlotOnlineStyle.Render("all pools online"))
	}
	for _, p := range unhealthy {
		lines = append(lines, fmt.Sprintf("%s %s",
			statusStyle(p.DiskStatus).Render(p.DiskStatus), p.PoolName))
	}
	for _, s := range failed {
		lines = append(lines, SlotFaultedStyle.Render(fmt.Sprintf("bay %d %s failed", s.Number, s.Dev)))
	}
	return TileStyle.Render(strings.Join(lines, "\n"))
}

func (m Model) renderFooter() string {
	if m.lastErr != "" {
		return ErrorStyle.Render("! "+firstLine(m.lastErr)) + "\n" + m.renderKeys()
	}
	return m.renderKeys()
}

func (m Model) renderKeys() string {
	if m.showHelp {
		return FooterStyle.Render(
			"←/→ enclosure · ↑/↓ slot · v view · s side · e rename · u refresh · R reload · esc clear · q quit")
	}
	return FooterStyle.Render("? help · q quit")
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
