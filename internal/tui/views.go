package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/kvhuynh/sovereign/pkg/kingdom"
	"github.com/kvhuynh/sovereign/pkg/session"
	"github.com/muesli/reflow/wordwrap"
)

var (
	chroniclePanelStyle = lipgloss.NewStyle().
				PaddingTop(1).
				PaddingBottom(1).
				PaddingLeft(3).
				PaddingRight(0)

	sidebarPanelStyle = lipgloss.NewStyle().
				PaddingTop(1).
				PaddingBottom(0).
				PaddingLeft(0).
				PaddingRight(2)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("178")). // gold
			Bold(true)

	speakerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")).
			Bold(true)

	narrativeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	userStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")) // teal

	worldEventStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")) // amber

	systemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Italic(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")) // red

	loadingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")) // yellow

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey

	gainStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("82")) // green

	lossStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("203")) // soft red

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2).
			Background(lipgloss.Color("235")).
			Foreground(lipgloss.Color("255"))

	modalTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("178")).
			Bold(true).
			Align(lipgloss.Center)

	modalItemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	modalSelectedItemStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("0")).
				Background(lipgloss.Color("178")).
				Bold(true)

	separatorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

func (m UI) View() string {
	if m.showQuitModal {
		return m.renderQuitModal()
	}
	if !m.ready {
		return "\n  Initializing..."
	}

	switch m.view {
	case viewMenu:
		return m.renderMenu()
	case viewCreation:
		return m.renderCreation()
	default:
		return m.renderGame()
	}
}

func (m UI) renderMenu() string {
	var content strings.Builder

	if m.showSaves {
		content.WriteString(modalTitleStyle.Render("Load a Saved Reign"))
		content.WriteString("\n\n")
		if len(m.saves) == 0 {
			content.WriteString("No save files found.\n\n")
			content.WriteString(promptStyle.Render("Press Esc to go back"))
		} else {
			for i, save := range m.saves {
				name := filepath.Base(save)
				if i == m.selectedSave {
					content.WriteString(modalSelectedItemStyle.Render("▶ " + name))
				} else {
					content.WriteString(modalItemStyle.Render("  " + name))
				}
				content.WriteString("\n")
			}
			content.WriteString("\n")
			content.WriteString(promptStyle.Render("↑/↓ to navigate, Enter to load, Esc to go back"))
		}
	} else {
		content.WriteString(modalTitleStyle.Render("SOVEREIGN"))
		content.WriteString("\n")
		content.WriteString(promptStyle.Render("A kingdom rises or falls on your word."))
		content.WriteString("\n\n")
		for i, item := range m.menuItems {
			if i == m.selectedItem {
				content.WriteString(modalSelectedItemStyle.Render("▶ " + item))
			} else {
				content.WriteString(modalItemStyle.Render("  " + item))
			}
			content.WriteString("\n")
		}
		if m.err != nil {
			content.WriteString("\n" + errorStyle.Render(m.err.Error()))
		}
		content.WriteString("\n")
		content.WriteString(promptStyle.Render("↑/↓ to navigate, Enter to select, Ctrl+C to quit"))
	}

	modal := modalStyle.Width(60).Render(content.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

func (m UI) renderCreation() string {
	var content strings.Builder

	if m.loading {
		content.WriteString(modalTitleStyle.Render("Founding the Kingdom..."))
		content.WriteString("\n\n")
		content.WriteString(loadingStyle.Render("The chroniclers are writing the first page of your saga."))
	} else {
		content.WriteString(modalTitleStyle.Render("Found a New Kingdom"))
		content.WriteString("\n\n")
		content.WriteString(promptStyle.Render(fmt.Sprintf("◀ Preset: %s ▶", m.presets[m.selectedPreset].Name)))
		content.WriteString("\n\n")

		for i, f := range m.fields {
			label := f.label + ": "
			if i == m.focusedField {
				content.WriteString(speakerStyle.Render("› " + label))
				content.WriteString(f.value + "▌")
			} else {
				content.WriteString(promptStyle.Render("  " + label))
				content.WriteString(f.value)
			}
			content.WriteString("\n")
		}

		if m.err != nil {
			content.WriteString("\n" + errorStyle.Render(m.err.Error()))
		}
		content.WriteString("\n")
		content.WriteString(promptStyle.Render("Tab: next field | ◀/▶: presets | Enter: begin | Esc: back"))
	}

	modal := modalStyle.Width(76).Render(content.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

func (m UI) renderQuitModal() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var content strings.Builder
	if m.view == viewGame {
		content.WriteString(modalTitleStyle.Render("Abandon the Throne?"))
		content.WriteString("\n\n")
		content.WriteString("Return to the main menu? Unsaved progress is lost.")
	} else {
		content.WriteString(modalTitleStyle.Render("Quit?"))
		content.WriteString("\n\n")
		content.WriteString("Leave the game?")
	}
	content.WriteString("\n\n")
	content.WriteString(promptStyle.Render("Press Y to confirm, N to stay"))

	modal := modalStyle.Width(50).Render(content.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

func (m UI) renderGame() string {
	chronicleWidth := int(float64(m.width)*0.68) - 4
	sidebarWidth := m.width - chronicleWidth - 6

	status := m.statusLine
	if status == "" {
		status = promptStyle.Render("/help for commands")
	}

	chroniclePanel := chroniclePanelStyle.Width(chronicleWidth).Height(m.height - 3).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			m.chronicle.View(),
			"",
			separatorStyle.Render(strings.Repeat("─", max(1, chronicleWidth-4))),
			m.textarea.View(),
			status,
		),
	)

	sidebarPanel := sidebarPanelStyle.Width(sidebarWidth).Height(m.height - 2).Render(
		m.sidebar.View(),
	)

	return lipgloss.JoinHorizontal(lipgloss.Top, chroniclePanel, sidebarPanel)
}

// writeChronicle rebuilds the chronicle viewport from a session snapshot,
// reflowing every entry to the current width.
func (m *UI) writeChronicle() {
	m.chronicle.SetContent(m.chronicleContent())
	m.chronicle.GotoBottom()
}

func (m *UI) chronicleContent() string {
	snap := m.engine.Snapshot()
	width := m.chronicle.Width - 6
	if width < 10 {
		width = 10
	}

	var content strings.Builder
	content.WriteString(titleStyle.Render("THE CHRONICLE") + "\n\n")

	if len(snap.Logs) == 0 {
		content.WriteString(promptStyle.Render("The pages are still blank.") + "\n")
	}

	for _, e := range snap.Logs {
		content.WriteString(formatEntry(e, width) + "\n\n")
	}
	if snap.GameOver {
		content.WriteString(errorStyle.Render("── THE REIGN HAS ENDED ──") + "\n\n")
	}

	if m.loading {
		content.WriteString(m.renderProgressBar())
	}

	return content.String()
}

func formatEntry(e session.LogEntry, width int) string {
	stamp := separatorStyle.Render("[" + e.Timestamp + "]")
	switch e.Kind {
	case session.KindUser:
		return stamp + " " + userStyle.Render("You: ") + wordwrap.String(e.Content, width)
	case session.KindWorldEvent:
		return stamp + " " + worldEventStyle.Render("The World: ") + wordwrap.String(e.Content, width)
	case session.KindSystem:
		return stamp + " " + systemStyle.Render(wordwrap.String(e.Content, width))
	default:
		head := stamp
		if e.EventTitle != "" {
			head += " " + speakerStyle.Render("❖ "+e.EventTitle)
		}
		return head + "\n" + narrativeStyle.Render(wordwrap.String(e.Content, width))
	}
}

// writeSidebar rebuilds the stats panel: resources with last-change markers,
// the monthly forecast, standing buffs, choices and the map.
func (m *UI) writeSidebar() {
	snap := m.engine.Snapshot()
	if !snap.Active {
		m.sidebar.SetContent("")
		return
	}

	var content strings.Builder
	content.WriteString(titleStyle.Render(snap.Settings.KingdomName) + "\n")
	content.WriteString(promptStyle.Render(snap.Clock) + "\n\n")

	d := snap.LastChange
	content.WriteString("Treasury\n")
	content.WriteString(statLine("Gold", snap.Stats.Gold, d.Gold))
	content.WriteString(statLine("Food", snap.Stats.Food, d.Food))
	content.WriteString(statLine("Wood", snap.Stats.Wood, d.Wood))
	content.WriteString(statLine("Stone", snap.Stats.Stone, d.Stone))
	content.WriteString(statLine("Supplies", snap.Stats.Supplies, d.Supplies))
	content.WriteString("\nPeople\n")
	content.WriteString(statLine("Population", snap.Stats.Population, d.Population))
	content.WriteString(statLine("Manpower", snap.Stats.Manpower, d.Manpower))
	content.WriteString(statLine("Army", snap.Stats.Army, d.Army))
	content.WriteString(statLine("Happiness", snap.Stats.Happiness, d.Happiness))
	content.WriteString("\nEconomy\n")
	content.WriteString(statLine("EP", snap.Stats.EconomicPower, d.EconomicPower))
	content.WriteString(fmt.Sprintf("  Tax: %s\n", snap.Stats.TaxRate))

	f := kingdom.EstimateForecast(snap.Stats)
	content.WriteString("\nForecast (next month)\n")
	content.WriteString("  Gold: " + signedStyled(f.Gold) + "\n")
	content.WriteString("  Food: " + signedStyled(f.Food) + "\n")

	if len(snap.ActiveBuffs) > 0 {
		content.WriteString("\nStanding effects\n")
		for _, b := range snap.ActiveBuffs {
			content.WriteString("  • " + b.Name + "\n")
		}
	}

	if len(snap.Choices) > 0 {
		content.WriteString("\nCounsel\n")
		for i, c := range snap.Choices {
			content.WriteString(fmt.Sprintf("  %d. %s\n", i+1, c.Label))
		}
	}

	if len(snap.Map) > 0 {
		content.WriteString("\nThe Known World\n")
		for _, row := range snap.Map {
			content.WriteString("  " + renderMapRow(row) + "\n")
		}
	}

	m.sidebar.SetContent(content.String())
}

func statLine(name string, value, change int) string {
	line := fmt.Sprintf("  %s: %d", name, value)
	if change > 0 {
		line += " " + gainStyle.Render(fmt.Sprintf("(+%d)", change))
	} else if change < 0 {
		line += " " + lossStyle.Render(fmt.Sprintf("(%d)", change))
	}
	return line + "\n"
}

func signedStyled(v int) string {
	if v >= 0 {
		return gainStyle.Render(fmt.Sprintf("+%d", v))
	}
	return lossStyle.Render(fmt.Sprintf("%d", v))
}

func renderMapRow(row string) string {
	var sb strings.Builder
	for _, r := range row {
		switch r {
		case '~':
			sb.WriteString(userStyle.Render("~"))
		case 'P':
			sb.WriteString(gainStyle.Render("P"))
		default:
			sb.WriteString(worldEventStyle.Render(string(r)))
		}
	}
	return sb.String()
}

// renderProgressBar creates an animated progress bar for loading states
func (m UI) renderProgressBar() string {
	usable := m.chronicle.Width - 6
	if usable <= 0 {
		usable = 30
	}
	if usable > 80 {
		usable = 80
	} else if usable < 10 {
		usable = 10
	}

	const totalFrames = 40
	frame := m.progressTick % totalFrames
	filled := (frame * usable) / totalFrames

	var bar strings.Builder
	for i := 0; i < usable; i++ {
		if i < filled {
			bar.WriteString("█")
		} else if i == filled && frame%4 < 2 {
			bar.WriteString("▓")
		} else {
			bar.WriteString("░")
		}
	}
	return separatorStyle.Render(bar.String())
}
