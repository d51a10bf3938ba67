package cli

import (
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Form styles
var (
	formLabelStyle   = lipgloss.NewStyle().Foreground(colorGray).Width(18)
	formFocusStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	formNormalStyle  = lipgloss.NewStyle().Foreground(colorWhite)
	formDimStyle     = lipgloss.NewStyle().Foreground(colorDim)
	formErrorStyle   = lipgloss.NewStyle().Foreground(colorRed)
	formButtonStyle  = lipgloss.NewStyle().Padding(0, 2).Border(lipgloss.RoundedBorder()).BorderForeground(colorDim)
	formButtonActive = formButtonStyle.BorderForeground(colorCyan).Foreground(colorCyan).Bold(true)
)

// launchSettings are the values the launcher collects.
type launchSettings struct {
	Input     string
	Output    string
	ShowLines bool
}

// Launcher focus positions, in tab order.
const (
	focusInput = iota
	focusOutput
	focusShowLines
	focusGenerate
	focusCount
)

// =============================================================================
// LaunchModel - Interactive input selection
// =============================================================================

// LaunchModel is the bubbletea model for the interactive launcher: an input
// file, an output directory, the connector-line toggle and a generate
// button.
type LaunchModel struct {
	Settings  launchSettings
	Focus     int
	Err       string
	Done      bool
	Cancelled bool

	// stat checks the input path; tests replace it.
	stat func(string) (os.FileInfo, error)
}

// NewLaunchModel creates a launcher prefilled with s.
func NewLaunchModel(s launchSettings) LaunchModel {
	m := LaunchModel{Settings: s, stat: os.Stat}
	if s.Input != "" {
		m.Focus = focusOutput
	}
	return m
}

func (m LaunchModel) Init() tea.Cmd {
	return nil
}

func (m LaunchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "ctrl+c", "esc":
		m.Cancelled = true
		return m, tea.Quit
	case "tab", "down":
		m.Focus = (m.Focus + 1) % focusCount
		return m, nil
	case "shift+tab", "up":
		m.Focus = (m.Focus + focusCount - 1) % focusCount
		return m, nil
	case "enter":
		if m.Focus == focusShowLines {
			m.Settings.ShowLines = !m.Settings.ShowLines
			return m, nil
		}
		if m.Focus != focusGenerate {
			m.Focus++
			return m, nil
		}
		if err := m.validate(); err != "" {
			m.Err = err
			return m, nil
		}
		m.Done = true
		return m, tea.Quit
	}

	field := m.field()
	switch {
	case field == nil:
		if m.Focus == focusShowLines && (key.Type == tea.KeySpace || key.String() == "x") {
			m.Settings.ShowLines = !m.Settings.ShowLines
		}
	case key.Type == tea.KeyBackspace:
		if r := []rune(*field); len(r) > 0 {
			*field = string(r[:len(r)-1])
		}
	case key.Type == tea.KeyCtrlU:
		*field = ""
	case key.Type == tea.KeySpace:
		*field += " "
	case key.Type == tea.KeyRunes:
		*field += trimPaste(string(key.Runes))
	}
	m.Err = ""
	return m, nil
}

// field returns the text field under focus, or nil.
func (m *LaunchModel) field() *string {
	switch m.Focus {
	case focusInput:
		return &m.Settings.Input
	case focusOutput:
		return &m.Settings.Output
	default:
		return nil
	}
}

func (m LaunchModel) validate() string {
	input := strings.TrimSpace(m.Settings.Input)
	switch {
	case input == "":
		return "Please select a CSV file."
	case strings.TrimSpace(m.Settings.Output) == "":
		return "Please select an output directory."
	}
	info, err := m.stat(input)
	if err != nil {
		return "Cannot open " + input + "."
	}
	if info.IsDir() {
		return input + " is a directory, not a CSV file."
	}
	return ""
}

// trimPaste strips the quotes file managers add around dragged paths.
func trimPaste(s string) string {
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}
	return s
}

func (m LaunchModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Door Diagram Generator"))
	b.WriteString("\n")
	b.WriteString(formDimStyle.Render("tab/↓ next  shift+tab/↑ previous  space toggle  ⏎ generate  esc quit"))
	b.WriteString("\n\n")

	b.WriteString(m.textRow("Input CSV file", m.Settings.Input, focusInput))
	b.WriteString(m.textRow("Output directory", m.Settings.Output, focusOutput))

	check := "[ ]"
	if m.Settings.ShowLines {
		check = "[x]"
	}
	style := formNormalStyle
	if m.Focus == focusShowLines {
		style = formFocusStyle
	}
	b.WriteString(formLabelStyle.Render("Connector lines"))
	b.WriteString(style.Render(check + " show lines"))
	b.WriteString("\n\n")

	button := formButtonStyle
	if m.Focus == focusGenerate {
		button = formButtonActive
	}
	b.WriteString(button.Render("Generate Diagrams"))
	b.WriteString("\n")

	if m.Err != "" {
		b.WriteString(formErrorStyle.Render(iconError + " " + m.Err))
		b.WriteString("\n")
	}
	return b.String()
}

func (m LaunchModel) textRow(label, value string, focus int) string {
	style := formNormalStyle
	cursor := ""
	if m.Focus == focus {
		style = formFocusStyle
		cursor = "█"
	}
	if value == "" && m.Focus != focus {
		value = formDimStyle.Render("(not set)")
	}
	return formLabelStyle.Render(label) + style.Render(value+cursor) + "\n"
}

// runLauncher runs the launcher on the terminal and returns the chosen
// settings. ok is false when the user quit without generating.
func runLauncher(initial launchSettings) (launchSettings, bool, error) {
	final, err := tea.NewProgram(NewLaunchModel(initial)).Run()
	if err != nil {
		return launchSettings{}, false, err
	}
	m, _ := final.(LaunchModel)
	if !m.Done {
		return launchSettings{}, false, nil
	}
	m.Settings.Input = strings.TrimSpace(m.Settings.Input)
	m.Settings.Output = strings.TrimSpace(m.Settings.Output)
	return m.Settings, true, nil
}
