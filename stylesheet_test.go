package trellis

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sheetTOML = `
[default]
fore_color = "#202020"
back_color = "transparent"

[form]
back_color = "#f0f0f0"
border_width = 1
border_color = "#808080"

[classes.button]
back_color = "#3d7dd8"
padding = [6, 2, 6, 2]

[classes.card]
margin = [4]
back_color = "#ffffff80"
`

const sheetYAML = `
default:
  fore_color: "#202020"
form:
  back_color: "#f0f0f0"
  border_width: 1
classes:
  button:
    back_color: "#3d7dd8"
    padding: [6, 2, 6, 2]
`

func mustColor(t *testing.T, s string) Color {
	t.Helper()
	c, err := ParseColor(s)
	require.NoError(t, err)
	return c
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor("#ff0000")
	require.NoError(t, err)
	assert.InDelta(t, 1.0, c.R, 1e-9)
	assert.InDelta(t, 0.0, c.G, 1e-9)
	assert.Equal(t, 1.0, c.A)

	c, err = ParseColor("#fff")
	require.NoError(t, err)
	assert.InDelta(t, 1.0, c.B, 1e-9)

	c, err = ParseColor(" #00000080 ")
	require.NoError(t, err)
	assert.InDelta(t, 128.0/255, c.A, 1e-9)

	c, err = ParseColor("Transparent")
	require.NoError(t, err)
	assert.True(t, c.IsTransparent())

	for _, bad := range []string{"", "red", "#12", "#gggggg", "#000000zz"} {
		_, err := ParseColor(bad)
		assert.Error(t, err, bad)
	}
}

func TestParseStyleSheetTOML(t *testing.T) {
	ss, err := ParseStyleSheetTOML([]byte(sheetTOML))
	require.NoError(t, err)
	d := NewDisplay(DisplayConfig{Width: 200, Height: 200, Backend: &fakeBackend{}, Theme: ss})

	form := NewForm("form")
	d.Add(form)
	assert.Equal(t, mustColor(t, "#f0f0f0"), form.BackColor())
	assert.Equal(t, mustColor(t, "#202020"), form.ForeColor())
	assert.Equal(t, 1, form.BorderWidth())
	assert.Equal(t, mustColor(t, "#808080"), form.BorderColor())

	btn := NewButton("ok", "OK")
	form.Add(btn.Control)
	assert.Equal(t, mustColor(t, "#3d7dd8"), btn.BackColor())
	assert.Equal(t, Spacing{6, 2, 6, 2}, btn.Padding())
	assert.Equal(t, 0, btn.BorderWidth(), "form block only styles forms")

	card := NewPanel("card")
	card.ThemeClass = "card"
	form.Add(card)
	assert.Equal(t, Uniform(4), card.Margin())
	assert.InDelta(t, 128.0/255, card.BackColor().A, 1e-9)

	plain := NewPanel("plain")
	form.Add(plain)
	assert.True(t, plain.BackColor().IsTransparent())
}

func TestParseStyleSheetYAML(t *testing.T) {
	ss, err := ParseStyleSheetYAML([]byte(sheetYAML))
	require.NoError(t, err)
	d := NewDisplay(DisplayConfig{Width: 200, Height: 200, Backend: &fakeBackend{}, Theme: ss})

	form := NewForm("form")
	d.Add(form)
	btn := NewButton("ok", "OK")
	form.Add(btn.Control)
	assert.Equal(t, mustColor(t, "#f0f0f0"), form.BackColor())
	assert.Equal(t, mustColor(t, "#3d7dd8"), btn.BackColor())
	assert.Equal(t, Spacing{6, 2, 6, 2}, btn.Padding())
}

func TestStyleSheetErrors(t *testing.T) {
	cases := map[string]string{
		"unknown key":  "[default]\nfont = \"x\"\n",
		"bad color":    "[default]\nback_color = \"nope\"\n",
		"bad spacing":  "[classes.x]\npadding = [1, 2]\n",
		"neg border":   "[form]\nborder_width = -1\n",
		"invalid toml": "[default\n",
	}
	for name, src := range cases {
		_, err := ParseStyleSheetTOML([]byte(src))
		assert.Error(t, err, name)
	}

	_, err := ParseStyleSheetYAML([]byte("default:\n  font: x\n"))
	assert.Error(t, err, "unknown yaml key")
}

func TestLoadStyleSheet(t *testing.T) {
	dir := t.TempDir()
	tomlPath := filepath.Join(dir, "theme.toml")
	yamlPath := filepath.Join(dir, "theme.yml")
	require.NoError(t, os.WriteFile(tomlPath, []byte(sheetTOML), 0o644))
	require.NoError(t, os.WriteFile(yamlPath, []byte(sheetYAML), 0o644))

	ss, err := LoadStyleSheet(tomlPath)
	require.NoError(t, err)
	assert.Contains(t, ss.Classes, "card")

	ss, err = LoadStyleSheet(yamlPath)
	require.NoError(t, err)
	assert.Contains(t, ss.Classes, "button")

	_, err = LoadStyleSheet(filepath.Join(dir, "theme.json"))
	assert.Error(t, err)
	_, err = LoadStyleSheet(filepath.Join(dir, "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestStyleSheetZeroValueApplies(t *testing.T) {
	ss := &StyleSheet{Classes: map[string]Style{"x": {BackColor: "#000"}}}
	c := NewPanel("c")
	c.ThemeClass = "x"
	ss.Apply(c)
	assert.Equal(t, ColorBlack, c.BackColor())
	assert.NotPanics(t, func() { ss.NoTheme(c) })
}
