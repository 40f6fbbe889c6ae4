package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// StyleTag names the visual class of an entry.
type StyleTag string

const (
	StylePlain     StyleTag = "plain"
	StyleDir       StyleTag = "directory"
	StyleHiddenDir StyleTag = "hidden_directory"
	StyleHidden    StyleTag = "hidden"
	StyleRust      StyleTag = "rust"
	StylePython    StyleTag = "python"
	StyleC         StyleTag = "c"
	StyleCSharp    StyleTag = "csharp"
	StyleOCaml     StyleTag = "ocaml"
	StyleMarkdown  StyleTag = "markdown"
	StyleText      StyleTag = "text"
	StyleJSON      StyleTag = "json"
)

var extensionStyles = map[string]StyleTag{
	"rs":   StyleRust,
	"py":   StylePython,
	"c":    StyleC,
	"cpp":  StyleC,
	"h":    StyleC,
	"hpp":  StyleC,
	"cs":   StyleCSharp,
	"ml":   StyleOCaml,
	"mli":  StyleOCaml,
	"md":   StyleMarkdown,
	"txt":  StyleText,
	"json": StyleJSON,
}

// styleFor maps an entry's kind, visibility and extension to a style tag.
func styleFor(isDir, hidden bool, ext string) StyleTag {
	switch {
	case isDir && hidden:
		return StyleHiddenDir
	case isDir:
		return StyleDir
	case hidden:
		return StyleHidden
	}
	if tag, ok := extensionStyles[ext]; ok {
		return tag
	}
	return StylePlain
}

// StyleSpec is the YAML form of one tag's appearance.
type StyleSpec struct {
	Foreground string `yaml:"foreground"`
	Bold       bool   `yaml:"bold"`
	Italic     bool   `yaml:"italic"`
	Underline  bool   `yaml:"underline"`
	Faint      bool   `yaml:"faint"`
}

var defaultStyleSpecs = map[StyleTag]StyleSpec{
	StyleDir:       {Foreground: "4", Bold: true},
	StyleHiddenDir: {Foreground: "4", Bold: true, Faint: true, Underline: true},
	StyleHidden:    {Faint: true, Underline: true},
	StyleRust:      {Foreground: "1", Bold: true},
	StylePython:    {Foreground: "3", Bold: true},
	StyleC:         {Foreground: "6", Bold: true},
	StyleCSharp:    {Foreground: "5", Bold: true},
	StyleOCaml:     {Foreground: "10", Bold: true},
	StyleMarkdown:  {Foreground: "7", Italic: true},
	StyleText:      {Faint: true},
	StyleJSON:      {Foreground: "11", Bold: true},
}

// Theme renders names for a style tag. A disabled theme returns names as is.
type Theme struct {
	enabled bool
	styles  map[StyleTag]lipgloss.Style
}

// newTheme builds the default theme with overrides applied on top.
func newTheme(enabled bool, overrides map[StyleTag]StyleSpec) *Theme {
	t := &Theme{enabled: enabled, styles: make(map[StyleTag]lipgloss.Style)}
	if !enabled {
		return t
	}

	renderer := lipgloss.NewRenderer(io.Discard)
	renderer.SetColorProfile(termenv.ANSI256)

	specs := make(map[StyleTag]StyleSpec, len(defaultStyleSpecs)+len(overrides))
	for tag, spec := range defaultStyleSpecs {
		specs[tag] = spec
	}
	for tag, spec := range overrides {
		specs[tag] = spec
	}
	for tag, spec := range specs {
		style := renderer.NewStyle().
			Bold(spec.Bold).
			Italic(spec.Italic).
			Underline(spec.Underline).
			Faint(spec.Faint)
		if spec.Foreground != "" {
			style = style.Foreground(lipgloss.Color(spec.Foreground))
		}
		t.styles[tag] = style
	}
	return t
}

// Render styles name with the tag's style.
func (t *Theme) Render(tag StyleTag, name string) string {
	if t == nil || !t.enabled {
		return name
	}
	style, ok := t.styles[tag]
	if !ok {
		return name
	}
	return style.Render(name)
}

// loadThemeOverrides looks for theme.yml in the config directories. A missing
// file is not an error.
func loadThemeOverrides() (map[StyleTag]StyleSpec, error) {
	configPaths := []string{}
	if home, err := os.UserHomeDir(); err == nil {
		configPaths = append(configPaths, filepath.Join(home, ".config", "mytree"))
	}
	configPaths = append(configPaths, ".")

	for _, p := range configPaths {
		themePath := filepath.Join(p, "theme.yml")
		if _, err := os.Stat(themePath); err != nil {
			continue
		}
		log.Debugf("loading theme from %s", themePath)
		return readThemeFile(themePath)
	}
	return nil, nil
}

func readThemeFile(path string) (map[StyleTag]StyleSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading theme file %s: %w", path, err)
	}
	var overrides map[StyleTag]StyleSpec
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return nil, fmt.Errorf("error parsing theme file %s: %w", path, err)
	}
	return overrides, nil
}
