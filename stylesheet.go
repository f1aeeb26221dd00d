package trellis

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Style is one block of a stylesheet. Empty strings and nil fields leave the
// control's current value alone.
type Style struct {
	BackColor   string `toml:"back_color" yaml:"back_color"`
	ForeColor   string `toml:"fore_color" yaml:"fore_color"`
	BorderColor string `toml:"border_color" yaml:"border_color"`
	BorderWidth *int   `toml:"border_width" yaml:"border_width"`
	// Margin and Padding take one value for every edge or four values in
	// left, top, right, bottom order.
	Margin  []int `toml:"margin" yaml:"margin"`
	Padding []int `toml:"padding" yaml:"padding"`
}

// StyleSheet is a Theme read from a TOML or YAML file. Every themed control
// receives the default block, then the block for its role, then the block
// named by its ThemeClass.
//
//	[default]
//	back_color = "#f0f0f0"
//	fore_color = "#202020"
//
//	[form]
//	border_width = 1
//	border_color = "#808080"
//
//	[classes.button]
//	back_color = "#3d7dd8"
//	padding = [6, 2, 6, 2]
type StyleSheet struct {
	Default Style            `toml:"default" yaml:"default"`
	Form    Style            `toml:"form" yaml:"form"`
	Classes map[string]Style `toml:"classes" yaml:"classes"`

	compiled map[string]compiledStyle
}

type compiledStyle struct {
	back, fore, border *Color
	borderWidth        *int
	margin, padding    *Spacing
}

const (
	styleKeyDefault = "\x00default"
	styleKeyForm    = "\x00form"
)

// LoadStyleSheet reads a stylesheet, choosing the format from the file
// extension (.toml, .yaml or .yml).
func LoadStyleSheet(path string) (*StyleSheet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read stylesheet: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return ParseStyleSheetTOML(data)
	case ".yaml", ".yml":
		return ParseStyleSheetYAML(data)
	}
	return nil, fmt.Errorf("stylesheet %s: unsupported extension %q", path, filepath.Ext(path))
}

// ParseStyleSheetTOML parses a TOML stylesheet. Unknown keys are errors.
func ParseStyleSheetTOML(data []byte) (*StyleSheet, error) {
	var ss StyleSheet
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&ss); err != nil {
		return nil, fmt.Errorf("parse stylesheet: %w", err)
	}
	if err := ss.compile(); err != nil {
		return nil, err
	}
	return &ss, nil
}

// ParseStyleSheetYAML parses a YAML stylesheet. Unknown keys are errors.
func ParseStyleSheetYAML(data []byte) (*StyleSheet, error) {
	var ss StyleSheet
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&ss); err != nil {
		return nil, fmt.Errorf("parse stylesheet: %w", err)
	}
	if err := ss.compile(); err != nil {
		return nil, err
	}
	return &ss, nil
}

func (ss *StyleSheet) compile() error {
	ss.compiled = make(map[string]compiledStyle, len(ss.Classes)+2)
	add := func(key, label string, s Style) error {
		cs, err := s.compile()
		if err != nil {
			return fmt.Errorf("stylesheet %s: %w", label, err)
		}
		ss.compiled[key] = cs
		return nil
	}
	if err := add(styleKeyDefault, "default", ss.Default); err != nil {
		return err
	}
	if err := add(styleKeyForm, "form", ss.Form); err != nil {
		return err
	}
	for name, s := range ss.Classes {
		if err := add(name, "class "+strconv.Quote(name), s); err != nil {
			return err
		}
	}
	return nil
}

func (s Style) compile() (compiledStyle, error) {
	var cs compiledStyle
	colors := []struct {
		field string
		src   string
		dst   **Color
	}{
		{"back_color", s.BackColor, &cs.back},
		{"fore_color", s.ForeColor, &cs.fore},
		{"border_color", s.BorderColor, &cs.border},
	}
	for _, c := range colors {
		if c.src == "" {
			continue
		}
		col, err := ParseColor(c.src)
		if err != nil {
			return cs, fmt.Errorf("%s: %w", c.field, err)
		}
		*c.dst = &col
	}
	if s.BorderWidth != nil {
		if *s.BorderWidth < 0 {
			return cs, fmt.Errorf("border_width: negative value %d", *s.BorderWidth)
		}
		cs.borderWidth = s.BorderWidth
	}
	var err error
	if cs.margin, err = parseSpacing(s.Margin); err != nil {
		return cs, fmt.Errorf("margin: %w", err)
	}
	if cs.padding, err = parseSpacing(s.Padding); err != nil {
		return cs, fmt.Errorf("padding: %w", err)
	}
	return cs, nil
}

func parseSpacing(v []int) (*Spacing, error) {
	switch len(v) {
	case 0:
		return nil, nil
	case 1:
		s := Uniform(v[0])
		return &s, nil
	case 4:
		return &Spacing{v[0], v[1], v[2], v[3]}, nil
	}
	return nil, fmt.Errorf("want 1 or 4 values, got %d", len(v))
}

// ParseColor parses "transparent", "#rgb", "#rrggbb" or "#rrggbbaa".
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "transparent") {
		return ColorTransparent, nil
	}
	alpha := 1.0
	if len(s) == 9 && s[0] == '#' {
		a, err := strconv.ParseUint(s[7:], 16, 8)
		if err != nil {
			return Color{}, fmt.Errorf("invalid alpha in color %q", s)
		}
		alpha = float64(a) / 255
		s = s[:7]
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	c = c.Clamped()
	return Color{R: c.R, G: c.G, B: c.B, A: alpha}, nil
}

// Apply styles c with the default block, its role block and its class block.
func (ss *StyleSheet) Apply(c *Control) {
	if ss.compiled == nil {
		if err := ss.compile(); err != nil {
			debugLogger().Warn("stylesheet not applied", "error", err)
			return
		}
	}
	ss.compiled[styleKeyDefault].apply(c)
	if c.role == RoleForm {
		ss.compiled[styleKeyForm].apply(c)
	}
	if c.ThemeClass != "" {
		if cs, ok := ss.compiled[c.ThemeClass]; ok {
			cs.apply(c)
		} else if globalDebug {
			debugLogger().Debug("unknown theme class", "control", c.Name, "class", c.ThemeClass)
		}
	}
}

// NoTheme records controls that opted out of theming.
func (ss *StyleSheet) NoTheme(c *Control) {
	if globalDebug {
		debugLogger().Debug("theming disabled", "control", c.Name)
	}
}

func (cs compiledStyle) apply(c *Control) {
	if cs.back != nil {
		c.SetBackColor(*cs.back)
	}
	if cs.fore != nil {
		c.SetForeColor(*cs.fore)
	}
	if cs.border != nil {
		c.SetBorderColor(*cs.border)
	}
	if cs.borderWidth != nil {
		c.SetBorderWidth(*cs.borderWidth)
	}
	if cs.margin != nil {
		c.SetMargin(*cs.margin)
	}
	if cs.padding != nil {
		c.SetPadding(*cs.padding)
	}
}
