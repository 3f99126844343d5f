// Package ui is a small interactive browser over a finished diagnostic
// run, used by `zenc inspect`.
package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"zenc/internal/diag"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

type diagItem struct {
	d *diag.Diagnostic
}

func (i diagItem) Title() string {
	return fmt.Sprintf("%d:%d %s", i.d.Primary.Line, i.d.Primary.Col, i.d.Message)
}

func (i diagItem) Description() string {
	return fmt.Sprintf("%s · %s", i.d.Severity.String(), i.d.Code.String())
}

func (i diagItem) FilterValue() string { return i.d.Message }

// Model is the bubbletea model backing `zenc inspect`.
type Model struct {
	list list.Model
}

// NewModel builds a browsable list over items.
func NewModel(file string, items []*diag.Diagnostic) Model {
	listItems := make([]list.Item, len(items))
	for i, d := range items {
		listItems[i] = diagItem{d: d}
	}
	l := list.New(listItems, list.NewDefaultDelegate(), 0, 0)
	l.Title = titleStyle.Render(fmt.Sprintf("zenc inspect — %s (%d diagnostics)", file, len(items)))
	return Model{list: l}
}

// Init satisfies tea.Model.
func (m Model) Init() tea.Cmd { return nil }

// Update satisfies tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width, msg.Height)
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View satisfies tea.Model.
func (m Model) View() string {
	return m.list.View() + "\n" + dimStyle.Render("q to quit")
}

// Run starts the interactive browser. It blocks until the user quits.
func Run(file string, items []*diag.Diagnostic) error {
	_, err := tea.NewProgram(NewModel(file, items), tea.WithAltScreen()).Run()
	return err
}
