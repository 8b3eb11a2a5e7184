// Package tui is the terminal rendition of the panel, for sessions where
// GTK is not available or the user prefers the keyboard.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/yllada/xfce-gala-settings/common"
	"github.com/yllada/xfce-gala-settings/settings"
	"github.com/yllada/xfce-gala-settings/wm"
)

// Panel is what the model drives.
type Panel interface {
	ConfigPath() string
	CurrentWindowManager() (wm.Choice, error)
	ToggleWindowManager() (wm.Choice, error)
	LoadSettings() settings.Settings
	ToggleSetting(k settings.Key) (settings.Settings, error)
}

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Toggle key.Binding
	Help   key.Binding
	Quit   key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Toggle, k.Help, k.Quit},
	}
}

var keys = keyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	Toggle: key.NewBinding(
		key.WithKeys(" ", "enter"),
		key.WithHelp("space", "toggle"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "more"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "esc", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).MarginBottom(1)
	sectionStyle = lipgloss.NewStyle().Bold(true).MarginTop(1)
	cursorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	bannerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// Model is the bubbletea model. Row 0 is the window manager, rows 1..n
// follow settings.Keys.
type Model struct {
	panel    Panel
	help     help.Model
	cursor   int
	choice   wm.Choice
	current  settings.Settings
	status   string
	failed   bool
	quitting bool
}

// New reads the initial state from p.
func New(p Panel) Model {
	m := Model{panel: p, help: help.New()}

	choice, err := p.CurrentWindowManager()
	if err != nil {
		m.status = err.Error()
		m.failed = true
	}
	m.choice = choice
	m.current = p.LoadSettings()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, keys.Down):
			if m.cursor < len(settings.Keys) {
				m.cursor++
			}
		case key.Matches(msg, keys.Toggle):
			m.toggle()
		}
	}

	return m, nil
}

// toggle applies the change under the cursor. It runs inside Update so a
// quit key is only handled once the change is on disk.
func (m *Model) toggle() {
	if !m.choice.Known() {
		return
	}

	if m.cursor == 0 {
		choice, err := m.panel.ToggleWindowManager()
		m.choice = choice
		m.setResult(fmt.Sprintf("Switched to %s", choice), err)
		return
	}

	k := settings.Keys[m.cursor-1]
	current, err := m.panel.ToggleSetting(k)
	m.current = current
	m.setResult(fmt.Sprintf("%s %s", k.Label(), onOff(current.Get(k))), err)
}

func (m *Model) setResult(ok string, err error) {
	if err != nil {
		common.LogDebug("TUI action failed: %v", err)
		m.status = err.Error()
		m.failed = true
		return
	}
	m.status = ok
	m.failed = false
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(common.AppName))
	b.WriteString("\n")

	if !m.choice.Known() {
		b.WriteString(bannerStyle.Render(fmt.Sprintf("Cannot determine the window manager from %s", m.panel.ConfigPath())))
		b.WriteString("\n\n")
	}

	b.WriteString(m.row(0, "Use Gala window manager", m.choice == wm.Gala))
	b.WriteString(sectionStyle.Render("Gala options"))
	b.WriteString("\n")
	for i, k := range settings.Keys {
		b.WriteString(m.row(i+1, k.Label(), m.current.Get(k)))
	}

	b.WriteString("\n")
	switch {
	case m.status != "" && m.failed:
		b.WriteString(errorStyle.Render("✗ " + m.status))
	case m.status != "":
		b.WriteString(okStyle.Render("✓ " + m.status))
	}
	b.WriteString("\n\n")
	b.WriteString(m.help.View(keys))
	b.WriteString("\n")
	return b.String()
}

func (m Model) row(index int, label string, on bool) string {
	box := "[ ]"
	if on {
		box = "[x]"
	}
	line := fmt.Sprintf("%s %s", box, label)

	switch {
	case !m.choice.Known():
		return "  " + dimStyle.Render(line) + "\n"
	case index == m.cursor:
		return cursorStyle.Render("> "+line) + "\n"
	default:
		return "  " + line + "\n"
	}
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

// Run starts the terminal UI and blocks until the user quits.
func Run(p Panel) error {
	_, err := tea.NewProgram(New(p), tea.WithAltScreen()).Run()
	return err
}
