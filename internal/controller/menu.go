package controller

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// MenuChoice identifies the mode picked in the interactive menu.
type MenuChoice int

// Available menu choices.
const (
	MenuQuit MenuChoice = iota
	MenuScan
	MenuCheck
	MenuLint
)

type menuItem struct {
	title  string
	desc   string
	choice MenuChoice
}

func (i menuItem) Title() string       { return i.title }
func (i menuItem) Description() string { return i.desc }
func (i menuItem) FilterValue() string { return i.title }

// menuModel is a minimal bubbletea list for picking a scan mode.
type menuModel struct {
	list   list.Model
	choice MenuChoice
}

func newMenuModel() menuModel {
	items := []list.Item{
		menuItem{title: "Extract", desc: "list GraphQL blocks and models", choice: MenuScan},
		menuItem{title: "Check", desc: "diff operations against schema snapshots", choice: MenuCheck},
		menuItem{title: "Lint", desc: "pattern checks without schemas", choice: MenuLint},
		menuItem{title: "Quit", desc: "leave without scanning", choice: MenuQuit},
	}

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(lipgloss.Color("6"))
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(lipgloss.Color("6"))

	l := list.New(items, delegate, 48, 14)
	l.Title = "Select mode"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(true)

	return menuModel{list: l, choice: MenuQuit}
}

func (m menuModel) Init() tea.Cmd {
	return nil
}

func (m menuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width, msg.Height)

		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.choice = MenuQuit

			return m, tea.Quit
		case "enter":
			if item, ok := m.list.SelectedItem().(menuItem); ok {
				m.choice = item.choice
			}

			return m, tea.Quit
		}
	}

	var cmd tea.Cmd

	m.list, cmd = m.list.Update(msg)

	return m, cmd
}

func (m menuModel) View() string {
	return m.list.View()
}

// RunMenu shows the interactive mode menu and returns the selection.
func RunMenu() (MenuChoice, error) {
	program := tea.NewProgram(newMenuModel())

	final, err := program.Run()
	if err != nil {
		return MenuQuit, fmt.Errorf("menu error: %w", err)
	}

	model, ok := final.(menuModel)
	if !ok {
		return MenuQuit, nil
	}

	return model.choice, nil
}
