package web

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPages(t *testing.T) {
	for _, name := range []string{"randomTeam.html", "scoreboard.html"} {
		data, err := fs.ReadFile(Pages(), name)
		require.NoError(t, err, name)
		assert.Contains(t, string(data), "<html")
	}

	_, err := fs.ReadFile(Pages(), "missing.html")
	assert.Error(t, err)
}

func TestTemplates(t *testing.T) {
	tmpl, err := Templates()
	require.NoError(t, err)

	for _, name := range []string{"shell.tmpl", "scoreboard.tmpl", "placeholder.tmpl"} {
		assert.NotNil(t, tmpl.Lookup(name), name)
	}
}

func TestRandomTeamPage_ReadsHostSettings(t *testing.T) {
	data, err := fs.ReadFile(Pages(), "randomTeam.html")
	require.NoError(t, err)
	page := string(data)

	assert.Contains(t, page, "window.__host")
	assert.NotContains(t, page, "messageHandlers.teamSync")
	assert.NotContains(t, page, "window.__autoPaste")
}

func TestShellTemplate_PresentsDialogs(t *testing.T) {
	data, err := fs.ReadFile(content, "templates/shell.tmpl")
	require.NoError(t, err)
	shell := string(data)

	assert.Contains(t, shell, "new EventSource('/dialogs/events')")
	assert.Contains(t, shell, "'/answer'")
	assert.Contains(t, shell, `id="dialog-text"`)
}
