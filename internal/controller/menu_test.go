package controller

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMenuModel_EnterSelectsHighlighted(t *testing.T) {
	model := newMenuModel()

	updated, cmd := model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	selected, ok := updated.(menuModel)
	require.True(t, ok)
	assert.Equal(t, MenuScan, selected.choice)
}

func TestMenuModel_QuitKeys(t *testing.T) {
	for _, key := range []tea.KeyMsg{
		{Type: tea.KeyRunes, Runes: []rune{'q'}},
		{Type: tea.KeyCtrlC},
		{Type: tea.KeyEsc},
	} {
		model := newMenuModel()

		updated, cmd := model.Update(key)
		require.NotNil(t, cmd)

		quit, ok := updated.(menuModel)
		require.True(t, ok)
		assert.Equal(t, MenuQuit, quit.choice)
	}
}

func TestMenuModel_View(t *testing.T) {
	model := newMenuModel()

	view := model.View()
	assert.Contains(t, view, "Extract")
}
