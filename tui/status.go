package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderStatusBar produces a full-width inverted status line showing
// the current location, an energy gauge, and the inventory.
func (m Model) renderStatusBar() string {
	s := m.engine.State

	locName := s.Player.Location
	if loc, ok := m.defs.Locations[s.Player.Location]; ok {
		locName = loc.Name
	}

	energy := fmt.Sprintf("Energy: %s %d/%d",
		energyGauge(s.Player.Energy, s.Player.MaxEnergy, 10),
		s.Player.Energy, s.Player.MaxEnergy)

	left := " " + locName
	right := energy + " "

	// Show inventory names if they fit, otherwise just the count.
	if n := len(s.Player.Inventory); n > 0 {
		var names []string
		for _, id := range s.Player.Inventory {
			name := id
			if item, ok := m.defs.Items[id]; ok {
				name = item.Name
			}
			names = append(names, name)
		}
		candidate := fmt.Sprintf("Inv: %s | %s ", strings.Join(names, ", "), energy)
		if lipgloss.Width(left)+lipgloss.Width(candidate)+2 < m.width {
			right = candidate
		} else {
			right = fmt.Sprintf("Inv: %d | %s ", n, energy)
		}
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	bar := left + strings.Repeat(" ", gap) + right
	return styleStatusBar.Width(m.width).Render(bar)
}

// energyGauge renders a fixed-width bar like [######----].
func energyGauge(energy, max, width int) string {
	if max <= 0 || width <= 0 {
		return ""
	}
	filled := energy * width / max
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	gauge := "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
	if energy*5 <= max {
		return styleEnergyLow.Render(gauge)
	}
	return gauge
}
