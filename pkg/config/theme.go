package config

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
)

type palette struct {
	background, foreground, highlight, text string
}

var palettes = map[string]palette{
	"dark": {
		background: "rgb(38, 41, 48)",
		foreground: "rgb(65, 72, 81)",
		highlight:  "rgb(106, 115, 128)",
		text:       "rgb(240, 241, 242)",
	},
	"light": {
		background: "rgb(239, 235, 233)",
		foreground: "rgb(214, 208, 206)",
		highlight:  "rgb(163, 158, 156)",
		text:       "rgb(59, 58, 57)",
	},
}

// Icons are the image paths used by the region tree
type Icons struct {
	BranchClosed string
	BranchOpened string
	Checked      string
	Unchecked    string
}

// Theme is the colour scheme handed to the presentation layer. It is a plain
// value: copies never share state and nothing patches it after construction.
type Theme struct {
	Name       string
	Foreground string
	Background string
	Text       string
	Highlight  string
	Icons      Icons
}

// ThemeNames returns the supported theme names
func ThemeNames() []string {
	return []string{"dark", "light"}
}

// ThemeFor builds the named theme with icons taken from iconDir
func ThemeFor(name, iconDir string) (Theme, error) {
	p, ok := palettes[name]
	if !ok {
		return Theme{}, fmt.Errorf("theme argument invalid: %s, should be either dark or light", name)
	}

	icon := func(base string) string {
		return filepath.ToSlash(filepath.Join(iconDir, fmt.Sprintf("%s_%s.svg", base, name)))
	}

	return Theme{
		Name:       name,
		Foreground: p.foreground,
		Background: p.background,
		Text:       p.text,
		Highlight:  p.highlight,
		Icons: Icons{
			BranchClosed: icon("right"),
			BranchOpened: icon("down"),
			Checked:      icon("checkedbox"),
			Unchecked:    icon("box"),
		},
	}, nil
}

// Expand replaces the theme placeholders in a style sheet template:
// BGCOLOR, TXTCOLOR, HIGHLIGHT, CLOSED_IMG, OPENED_IMG, CHECKED_IMG and UNCHECKED_IMG.
func (t Theme) Expand(template string) string {
	// UNCHECKED_IMG must be replaced before CHECKED_IMG, which it contains
	r := strings.NewReplacer(
		"BGCOLOR", t.Background,
		"TXTCOLOR", t.Text,
		"HIGHLIGHT", t.Highlight,
		"CLOSED_IMG", t.Icons.BranchClosed,
		"OPENED_IMG", t.Icons.BranchOpened,
		"UNCHECKED_IMG", t.Icons.Unchecked,
		"CHECKED_IMG", t.Icons.Checked,
	)
	return r.Replace(template)
}

// TextRGB returns the text colour as red, green and blue components
func (t Theme) TextRGB() ([3]uint8, error) {
	return ParseRGB(t.Text)
}

// ParseRGB parses a colour written as "rgb(r, g, b)"
func ParseRGB(s string) ([3]uint8, error) {
	var rgb [3]uint8

	inner := strings.TrimSpace(s)
	if !strings.HasPrefix(inner, "rgb(") || !strings.HasSuffix(inner, ")") {
		return rgb, fmt.Errorf("invalid colour %q", s)
	}
	inner = strings.TrimSuffix(strings.TrimPrefix(inner, "rgb("), ")")

	parts := strings.Split(inner, ",")
	if len(parts) != 3 {
		return rgb, fmt.Errorf("invalid colour %q", s)
	}
	for i, part := range parts {
		v, err := strconv.ParseUint(strings.TrimSpace(part), 10, 8)
		if err != nil {
			return rgb, fmt.Errorf("invalid colour %q: %w", s, err)
		}
		rgb[i] = uint8(v)
	}
	return rgb, nil
}
