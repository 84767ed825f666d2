package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/nathoo/cavecore/types"
)

// Styles used throughout the TUI.
var (
	styleStatusBar = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("252")).
			Bold(true)

	styleInputPrompt = lipgloss.NewStyle().
				Foreground(lipgloss.Color("34"))

	stylePlayerInput = lipgloss.NewStyle().
				Foreground(lipgloss.Color("34"))

	styleSystemMeta = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	styleEnergyLow = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)
)

// messageStyles maps each transcript category to its display style.
// The engine classifies; the TUI only renders.
var messageStyles = map[types.MessageType]lipgloss.Style{
	types.MsgInfo:      lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
	types.MsgError:     lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
	types.MsgSuccess:   lipgloss.NewStyle().Foreground(lipgloss.Color("46")),
	types.MsgLocation:  lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),
	types.MsgNarration: lipgloss.NewStyle().Foreground(lipgloss.Color("255")),
	types.MsgSystem:    lipgloss.NewStyle().Foreground(lipgloss.Color("243")).Italic(true),
	types.MsgItem:      lipgloss.NewStyle().Foreground(lipgloss.Color("228")),
	types.MsgEnergy:    lipgloss.NewStyle().Foreground(lipgloss.Color("45")),
}

// renderMessage applies the category style to one transcript line.
func renderMessage(text string, t types.MessageType) string {
	if style, ok := messageStyles[t]; ok {
		return style.Render(text)
	}
	return messageStyles[types.MsgInfo].Render(text)
}

// styledSystemMsg renders a meta-command response in gray with brackets.
func styledSystemMsg(text string) string {
	return styleSystemMeta.Render("[" + text + "]")
}
