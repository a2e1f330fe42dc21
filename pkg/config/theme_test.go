package config

import (
	"strings"
	"testing"
)

// TestThemeFor verifies palettes and icon paths
func TestThemeFor(t *testing.T) {
	for _, name := range ThemeNames() {
		theme, err := ThemeFor(name, "assets/icons")
		if err != nil {
			t.Fatalf("Failed to build %s theme: %v", name, err)
		}
		if theme.Name != name {
			t.Errorf("Expected name %s, got %s", name, theme.Name)
		}
		if theme.Icons.Checked != "assets/icons/checkedbox_"+name+".svg" {
			t.Errorf("Unexpected checked icon %s", theme.Icons.Checked)
		}
		if theme.Icons.BranchClosed != "assets/icons/right_"+name+".svg" {
			t.Errorf("Unexpected closed icon %s", theme.Icons.BranchClosed)
		}
		if _, err := theme.TextRGB(); err != nil {
			t.Errorf("Theme %s text colour does not parse: %v", name, err)
		}
	}

	if _, err := ThemeFor("solarized", "icons"); err == nil {
		t.Error("Expected error for unknown theme")
	}
}

// TestThemeIsAValue verifies changing a copy leaves other themes untouched
func TestThemeIsAValue(t *testing.T) {
	a, _ := ThemeFor("dark", "icons")
	b := a
	b.Text = "rgb(0, 0, 0)"
	b.Icons.Checked = "other.svg"

	c, _ := ThemeFor("dark", "icons")
	if a.Text == b.Text || a.Icons.Checked == b.Icons.Checked {
		t.Error("Copies share state")
	}
	if c != a {
		t.Error("Building a theme again gave a different value")
	}
}

// TestThemeExpand verifies placeholder substitution in style sheets
func TestThemeExpand(t *testing.T) {
	theme, _ := ThemeFor("light", "icons")

	css := theme.Expand("QTreeView {background-color: BGCOLOR; color: TXTCOLOR;} " +
		"checked: url(CHECKED_IMG); unchecked: url(UNCHECKED_IMG); closed: url(CLOSED_IMG)")

	for _, want := range []string{
		"background-color: rgb(239, 235, 233)",
		"color: rgb(59, 58, 57)",
		"checked: url(icons/checkedbox_light.svg)",
		"unchecked: url(icons/box_light.svg)",
		"closed: url(icons/right_light.svg)",
	} {
		if !strings.Contains(css, want) {
			t.Errorf("Expected %q in %q", want, css)
		}
	}
}

// TestParseRGB verifies colour parsing
func TestParseRGB(t *testing.T) {
	rgb, err := ParseRGB("rgb(240, 241, 242)")
	if err != nil {
		t.Fatalf("Failed to parse colour: %v", err)
	}
	if rgb != [3]uint8{240, 241, 242} {
		t.Errorf("Unexpected colour %v", rgb)
	}

	for _, bad := range []string{"", "#ffffff", "rgb(1, 2)", "rgb(1, 2, 300)", "rgb(a, b, c)"} {
		if _, err := ParseRGB(bad); err == nil {
			t.Errorf("Expected error for %q", bad)
		}
	}
}
