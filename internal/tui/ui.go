package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/kvhuynh/sovereign/internal/engine"
	"github.com/kvhuynh/sovereign/internal/storage"
	"github.com/kvhuynh/sovereign/pkg/session"
	"github.com/kvhuynh/sovereign/pkg/turn"
)

const placeholderText = "Issue your royal decree..."

// view discriminates the top-level screens.
type view int

const (
	viewMenu view = iota
	viewCreation
	viewGame
)

// UI is the BubbleTea model that runs the game client.
// https://github.com/charmbracelet/bubbletea
type UI struct {
	engine  *engine.Engine
	saveDir string

	view          view
	width         int
	height        int
	ready         bool
	err           error
	loading       bool
	progressTick  int
	statusLine    string
	showQuitModal bool

	// Menu state
	menuItems    []string
	selectedItem int
	saves        []string
	showSaves    bool
	selectedSave int

	// Creation form state
	presets        []ThemePreset
	selectedPreset int
	fields         []creationField
	focusedField   int

	// Game view components
	chronicle viewport.Model
	sidebar   viewport.Model
	textarea  textarea.Model
}

type creationField struct {
	label string
	value string
}

type turnDoneMsg struct {
	accepted bool
	err      error
}

type newGameDoneMsg struct {
	err error
}

type progressTickMsg struct{}

// New creates the UI bound to an engine. Saves are read from and written to
// saveDir.
func New(e *engine.Engine, saveDir string) (UI, error) {
	presets, err := LoadThemePresets()
	if err != nil {
		return UI{}, err
	}

	ta := textarea.New()
	ta.Placeholder = placeholderText
	ta.Prompt = promptStyle.Render(":: ")
	ta.CharLimit = 500
	ta.SetWidth(50)
	ta.SetHeight(3)
	ta.ShowLineNumbers = false

	chronicle := viewport.New(50, 20)
	chronicle.MouseWheelEnabled = true
	sidebar := viewport.New(30, 20)

	ui := UI{
		engine:    e,
		saveDir:   saveDir,
		view:      viewMenu,
		menuItems: []string{"New Reign", "Load Save", "Quit"},
		presets:   presets,
		chronicle: chronicle,
		sidebar:   sidebar,
		textarea:  ta,
	}
	ui.seedCreationForm(presets[0])
	return ui, nil
}

func (m *UI) seedCreationForm(p ThemePreset) {
	m.fields = []creationField{
		{label: "World theme", value: p.Theme},
		{label: "Kingdom name", value: p.Kingdom},
		{label: "Starting background", value: p.Background},
		{label: "Leader name", value: p.Leader},
		{label: "Leader description", value: p.Description},
	}
	m.focusedField = 0
}

func (m *UI) formSettings() turn.Settings {
	return turn.Settings{
		WorldTheme:        m.fields[0].value,
		KingdomName:       m.fields[1].value,
		Background:        m.fields[2].value,
		LeaderName:        m.fields[3].value,
		LeaderDescription: m.fields[4].value,
	}
}

func (m UI) Init() tea.Cmd {
	return nil
}

func (m UI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.showQuitModal {
		return m.updateQuitModal(msg)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		m.ready = true
		if m.view == viewGame {
			m.writeChronicle()
			m.writeSidebar()
		}
		return m, nil

	case progressTickMsg:
		if m.loading {
			m.progressTick++
			m.writeChronicle()
			return m, progressTick()
		}
		return m, nil

	case newGameDoneMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			m.view = viewMenu
			return m, nil
		}
		m.view = viewGame
		m.statusLine = ""
		m.textarea.Focus()
		m.layout()
		m.writeChronicle()
		m.writeSidebar()
		return m, textarea.Blink

	case turnDoneMsg:
		m.loading = false
		if msg.err != nil {
			m.statusLine = errorStyle.Render("Error: " + msg.err.Error())
		} else if !msg.accepted {
			m.statusLine = loadingStyle.Render("The court is still deliberating the last order.")
		} else {
			m.statusLine = ""
		}
		m.writeChronicle()
		m.writeSidebar()
		m.chronicle.GotoBottom()
		return m, nil
	}

	switch m.view {
	case viewMenu:
		return m.updateMenu(msg)
	case viewCreation:
		return m.updateCreation(msg)
	default:
		return m.updateGame(msg)
	}
}

func (m *UI) layout() {
	if m.width == 0 || m.height == 0 {
		return
	}
	chronicleWidth := int(float64(m.width)*0.68) - 4
	sidebarWidth := m.width - chronicleWidth - 6

	m.chronicle.Width = chronicleWidth - 2
	m.chronicle.Height = m.height - 8
	m.sidebar.Width = sidebarWidth - 2
	m.sidebar.Height = m.height - 4
	m.textarea.SetWidth(chronicleWidth - 4)
}

func (m UI) updateQuitModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			return m, tea.Quit
		default:
			switch msg.String() {
			case "y", "Y", "enter":
				if m.view == viewGame {
					// Back to the menu, not out of the program.
					m.engine.ExitToMenu()
					m.view = viewMenu
					m.showQuitModal = false
					m.statusLine = ""
					return m, nil
				}
				return m, tea.Quit
			case "n", "N", "esc":
				m.showQuitModal = false
				if m.view == viewGame {
					m.textarea.Focus()
					return m, textarea.Blink
				}
				return m, nil
			}
		}
	}
	return m, nil
}

func (m UI) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.showSaves {
		switch keyMsg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.showSaves = false
			return m, nil
		case tea.KeyUp:
			if m.selectedSave > 0 {
				m.selectedSave--
			}
		case tea.KeyDown:
			if m.selectedSave < len(m.saves)-1 {
				m.selectedSave++
			}
		case tea.KeyEnter:
			if len(m.saves) == 0 {
				m.showSaves = false
				return m, nil
			}
			if err := m.engine.LoadFrom(m.saves[m.selectedSave]); err != nil {
				m.err = err
				m.showSaves = false
				return m, nil
			}
			m.err = nil
			m.showSaves = false
			m.view = viewGame
			m.textarea.Focus()
			m.layout()
			m.writeChronicle()
			m.writeSidebar()
			return m, textarea.Blink
		}
		return m, nil
	}

	switch keyMsg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		m.showQuitModal = true
		return m, nil
	case tea.KeyUp:
		if m.selectedItem > 0 {
			m.selectedItem--
		}
	case tea.KeyDown:
		if m.selectedItem < len(m.menuItems)-1 {
			m.selectedItem++
		}
	case tea.KeyEnter:
		switch m.selectedItem {
		case 0:
			m.err = nil
			m.view = viewCreation
			return m, nil
		case 1:
			exporter, err := storage.NewFileExporter(m.saveDir)
			if err != nil {
				m.err = err
				return m, nil
			}
			saves, err := exporter.ListSaves()
			if err != nil {
				m.err = err
				return m, nil
			}
			m.saves = saves
			m.selectedSave = 0
			m.showSaves = true
			return m, nil
		case 2:
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m UI) updateCreation(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		m.view = viewMenu
		return m, nil
	case tea.KeyTab, tea.KeyDown:
		m.focusedField = (m.focusedField + 1) % len(m.fields)
		return m, nil
	case tea.KeyShiftTab, tea.KeyUp:
		m.focusedField = (m.focusedField - 1 + len(m.fields)) % len(m.fields)
		return m, nil
	case tea.KeyLeft:
		m.selectedPreset = (m.selectedPreset - 1 + len(m.presets)) % len(m.presets)
		m.seedCreationForm(m.presets[m.selectedPreset])
		return m, nil
	case tea.KeyRight:
		m.selectedPreset = (m.selectedPreset + 1) % len(m.presets)
		m.seedCreationForm(m.presets[m.selectedPreset])
		return m, nil
	case tea.KeyBackspace:
		f := &m.fields[m.focusedField]
		if len(f.value) > 0 {
			runes := []rune(f.value)
			f.value = string(runes[:len(runes)-1])
		}
		return m, nil
	case tea.KeyEnter:
		if strings.TrimSpace(m.fields[1].value) == "" || strings.TrimSpace(m.fields[3].value) == "" {
			m.err = fmt.Errorf("kingdom name and leader name are required")
			return m, nil
		}
		m.err = nil
		m.loading = true
		m.progressTick = 0
		settings := m.formSettings()
		return m, tea.Batch(m.startNewGame(settings), progressTick())
	case tea.KeyRunes:
		m.fields[m.focusedField].value += string(keyMsg.Runes)
		return m, nil
	case tea.KeySpace:
		m.fields[m.focusedField].value += " "
		return m, nil
	}
	return m, nil
}

func (m UI) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		taCmd tea.Cmd
		vpCmd tea.Cmd
		sbCmd tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.MouseMsg:
		m.chronicle, vpCmd = m.chronicle.Update(msg)
		m.sidebar, sbCmd = m.sidebar.Update(msg)
		return m, tea.Batch(vpCmd, sbCmd)

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.showQuitModal = true
			return m, nil
		case tea.KeyCtrlT:
			rate := m.engine.CycleTaxRate()
			m.statusLine = loadingStyle.Render(fmt.Sprintf("Tax policy is now: %s", rate))
			m.writeSidebar()
			return m, nil
		case tea.KeyCtrlS:
			path, err := m.engine.SaveTo(m.saveDir)
			if err != nil {
				m.statusLine = errorStyle.Render("Save failed: " + err.Error())
			} else {
				m.statusLine = loadingStyle.Render("Saved to " + path)
			}
			return m, nil
		case tea.KeyCtrlY:
			m.statusLine = m.copyLastNarrative()
			return m, nil
		case tea.KeyEnter:
			if m.loading {
				return m, nil
			}
			input := strings.TrimSpace(m.textarea.Value())
			if input == "" {
				return m, nil
			}
			if strings.HasPrefix(input, "/") {
				return m.handleCommand(input)
			}
			m.textarea.Reset()
			return m.submit(input)
		default:
			// Bare digits pick a suggested action when the input is empty.
			if !m.loading && m.textarea.Value() == "" && len(msg.String()) == 1 {
				if c := msg.String()[0]; c >= '1' && c <= '9' {
					if chosen, ok := m.choiceAt(int(c - '1')); ok {
						return m.submit(chosen)
					}
				}
			}
		}
	}

	m.textarea, taCmd = m.textarea.Update(msg)
	m.chronicle, vpCmd = m.chronicle.Update(msg)
	m.sidebar, sbCmd = m.sidebar.Update(msg)
	return m, tea.Batch(taCmd, vpCmd, sbCmd)
}

func (m *UI) choiceAt(i int) (string, bool) {
	snap := m.engine.Snapshot()
	if i >= len(snap.Choices) {
		return "", false
	}
	return snap.Choices[i].Action, true
}

func (m UI) submit(action string) (tea.Model, tea.Cmd) {
	m.loading = true
	m.progressTick = 0
	m.statusLine = ""
	e := m.engine
	cmd := func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
		defer cancel()
		ok, err := e.Submit(ctx, action)
		return turnDoneMsg{accepted: ok, err: err}
	}
	m.writeChronicle()
	return m, tea.Batch(cmd, progressTick())
}

func (m UI) startNewGame(settings turn.Settings) tea.Cmd {
	e := m.engine
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
		defer cancel()
		return newGameDoneMsg{err: e.NewGame(ctx, settings)}
	}
}

func (m UI) handleCommand(input string) (tea.Model, tea.Cmd) {
	cmd := strings.ToLower(strings.TrimSpace(input))
	m.textarea.Reset()

	switch cmd {
	case "/help":
		m.statusLine = promptStyle.Render(
			"Enter: send order | 1-9: pick a choice | /actions: order templates | Ctrl+T: tax | Ctrl+S: save | Ctrl+Y: copy | Esc: menu")
	case "/actions":
		var sb strings.Builder
		sb.WriteString(titleStyle.Render("Order templates") + "\n")
		for _, kind := range turn.Catalogue() {
			sb.WriteString(fmt.Sprintf("• /%s - %s\n", kind, turn.Describe(kind, "")))
		}
		m.chronicle.SetContent(m.chronicleContent() + "\n" + sb.String())
		m.chronicle.GotoBottom()
	case "/save":
		path, err := m.engine.SaveTo(m.saveDir)
		if err != nil {
			m.statusLine = errorStyle.Render("Save failed: " + err.Error())
		} else {
			m.statusLine = loadingStyle.Render("Saved to " + path)
		}
	case "/tax":
		rate := m.engine.CycleTaxRate()
		m.statusLine = loadingStyle.Render(fmt.Sprintf("Tax policy is now: %s", rate))
		m.writeSidebar()
	default:
		// A bare /<kind> submits the templated order.
		kind := turn.ActionKind(strings.TrimPrefix(cmd, "/"))
		if desc := turn.Describe(kind, ""); desc != "" {
			return m.submit(desc)
		}
		m.statusLine = errorStyle.Render("Unknown command: " + cmd)
	}
	return m, nil
}

func (m *UI) copyLastNarrative() string {
	snap := m.engine.Snapshot()
	for i := len(snap.Logs) - 1; i >= 0; i-- {
		if snap.Logs[i].Kind == session.KindNarrative {
			if err := clipboard.WriteAll(snap.Logs[i].Content); err != nil {
				return errorStyle.Render("Clipboard unavailable: " + err.Error())
			}
			return loadingStyle.Render("Copied the last chronicle entry.")
		}
	}
	return ""
}

// progressTick creates a command that sends a progress tick message
func progressTick() tea.Cmd {
	return tea.Tick(time.Millisecond*200, func(time.Time) tea.Msg {
		return progressTickMsg{}
	})
}
