package keymap

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultKeyMap(t *testing.T) {
	km := DefaultKeyMap()

	require.NotNil(t, km)
}

func TestDefaultKeyMap_QuitBinding(t *testing.T) {
	km := DefaultKeyMap()

	keys := km.Quit.Keys()
	assert.Contains(t, keys, "esc")
	assert.Contains(t, keys, "ctrl+c")
}

func TestDefaultKeyMap_SubmitBinding(t *testing.T) {
	km := DefaultKeyMap()

	assert.Equal(t, []string{"enter"}, km.Submit.Keys())
}

func TestDefaultKeyMap_SwitchFocusBinding(t *testing.T) {
	km := DefaultKeyMap()

	assert.Equal(t, []string{"tab"}, km.SwitchFocus.Keys())
}

func TestShortHelp(t *testing.T) {
	km := DefaultKeyMap()

	bindings := km.ShortHelp()

	require.Len(t, bindings, 3)
	assert.Equal(t, km.Submit, bindings[0])
	assert.Equal(t, km.SwitchFocus, bindings[1])
	assert.Equal(t, km.Quit, bindings[2])
}

func TestHistoryHelp(t *testing.T) {
	km := DefaultKeyMap()

	bindings := km.HistoryHelp()

	assert.Len(t, bindings, 3)
	assert.Equal(t, km.History, bindings[2])
}

func TestFullHelp(t *testing.T) {
	km := DefaultKeyMap()

	bindings := km.FullHelp()

	assert.Len(t, bindings, 3)
	assert.Len(t, bindings[0], 3) // Submit, SwitchFocus, Clear
	assert.Len(t, bindings[1], 2) // Up, Down
	assert.Len(t, bindings[2], 2) // History, Quit
}

func TestMatches_True(t *testing.T) {
	km := DefaultKeyMap()

	assert.True(t, Matches("esc", km.Quit))
	assert.True(t, Matches("ctrl+c", km.Quit))
	assert.True(t, Matches("tab", km.SwitchFocus))
	assert.True(t, Matches("pgup", km.Up))
	assert.True(t, Matches("ctrl+r", km.History))
}

func TestMatches_False(t *testing.T) {
	km := DefaultKeyMap()

	assert.False(t, Matches("q", km.Quit))
	assert.False(t, Matches("enter", km.SwitchFocus))
	assert.False(t, Matches("down", km.Up))
}

func TestBindings_HaveHelp(t *testing.T) {
	km := DefaultKeyMap()

	testCases := []struct {
		name    string
		binding key.Binding
	}{
		{"Quit", km.Quit},
		{"Submit", km.Submit},
		{"SwitchFocus", km.SwitchFocus},
		{"Clear", km.Clear},
		{"History", km.History},
		{"Up", km.Up},
		{"Down", km.Down},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			help := tc.binding.Help()
			assert.NotEmpty(t, help.Key, "binding should have help key")
		})
	}
}
