// Package theme maps named color themes onto the styles the renderer
// and TUI consume. Built-in themes ship with the binary; user themes
// are YAML files dropped into the themes directory.
package theme

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"github.com/mariinkys/cedilla/internal/markdown"
)

// Monokai Pro color palette
const (
	// Base colors
	Background = "#2D2A2E"
	Foreground = "#FCFCFA"

	// Accent colors
	Red     = "#FF6188" // Errors, danger
	Orange  = "#FC9867" // Warnings
	Yellow  = "#FFD866" // Highlights
	Green   = "#A9DC76" // Success
	Cyan    = "#78DCE8" // Info
	Blue    = "#AB9DF2" // Links
	Magenta = "#FF6188" // Titles, emphasis

	// UI colors
	Comment = "#727072" // Dim text, help
	Border  = "#5B595C" // Borders, separators
)

// Common styles
var (
	ErrorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color(Red))
	DimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color(Comment))
	TitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(Magenta))
	HelpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(Comment))
	BorderStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color(Border))
)

// Theme names a coherent set of colors for rendered markdown plus the
// chroma style used for code blocks.
type Theme struct {
	Name                 string `yaml:"name"`
	Chroma               string `yaml:"chroma"`
	Text                 string `yaml:"text"`
	Link                 string `yaml:"link"`
	InlineCode           string `yaml:"inline_code"`
	InlineCodeBackground string `yaml:"inline_code_background"`
	Highlight            string `yaml:"highlight"`
}

// Style converts the theme into the span style the parser caches on.
func (t Theme) Style() markdown.Style {
	return markdown.Style{
		TextColor:            t.Text,
		LinkColor:            t.Link,
		InlineCodeColor:      t.InlineCode,
		InlineCodeBackground: t.InlineCodeBackground,
		HighlightColor:       t.Highlight,
	}
}

// builtins are always available regardless of the themes directory
var builtins = map[string]Theme{
	"monokai": {
		Name:                 "monokai",
		Chroma:               "monokai",
		Text:                 Foreground,
		Link:                 Blue,
		InlineCode:           Yellow,
		InlineCodeBackground: Background,
		Highlight:            Yellow,
	},
	"dracula": {
		Name:                 "dracula",
		Chroma:               "dracula",
		Text:                 "#F8F8F2",
		Link:                 "#8BE9FD",
		InlineCode:           "#F1FA8C",
		InlineCodeBackground: "#282A36",
		Highlight:            "#FFB86C",
	},
	"light": {
		Name:                 "light",
		Chroma:               "github",
		Text:                 "#24292E",
		Link:                 "#0366D6",
		InlineCode:           "#D73A49",
		InlineCodeBackground: "#F6F8FA",
		Highlight:            "#E36209",
	},
}

// Default returns the built-in monokai theme
func Default() Theme {
	return builtins["monokai"]
}

// Names returns the sorted names of all built-in themes
func Names() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup resolves a theme name against the built-ins and the user
// themes directory. User themes shadow built-ins of the same name.
func Lookup(name, dir string) (Theme, error) {
	if dir != "" {
		if t, err := loadFile(filepath.Join(dir, name+".yaml")); err == nil {
			return t, nil
		} else if !os.IsNotExist(err) {
			return Theme{}, err
		}
	}
	if t, ok := builtins[name]; ok {
		return t, nil
	}
	return Theme{}, fmt.Errorf("unknown theme %q", name)
}

// LoadUserThemes reads every *.yaml theme in dir. A missing directory
// is not an error.
func LoadUserThemes(dir string) ([]Theme, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var themes []Theme
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}
		t, err := loadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to load theme %s: %w", entry.Name(), err)
		}
		themes = append(themes, t)
	}
	return themes, nil
}

func loadFile(path string) (Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Theme{}, err
	}

	var t Theme
	if err := yaml.Unmarshal(data, &t); err != nil {
		return Theme{}, fmt.Errorf("failed to parse theme file: %w", err)
	}

	if t.Name == "" {
		t.Name = strings.TrimSuffix(filepath.Base(path), ".yaml")
	}
	if err := t.validate(); err != nil {
		return Theme{}, err
	}
	fillDefaults(&t)
	return t, nil
}

func (t Theme) validate() error {
	if t.Text == "" {
		return fmt.Errorf("theme %q: text color is required", t.Name)
	}
	for _, c := range []string{t.Text, t.Link, t.InlineCode, t.InlineCodeBackground, t.Highlight} {
		if c != "" && !validColor(c) {
			return fmt.Errorf("theme %q: invalid color %q", t.Name, c)
		}
	}
	return nil
}

// fillDefaults backfills optional colors from the default theme
func fillDefaults(t *Theme) {
	def := Default()
	if t.Chroma == "" {
		t.Chroma = def.Chroma
	}
	if t.Link == "" {
		t.Link = def.Link
	}
	if t.InlineCode == "" {
		t.InlineCode = def.InlineCode
	}
	if t.InlineCodeBackground == "" {
		t.InlineCodeBackground = def.InlineCodeBackground
	}
	if t.Highlight == "" {
		t.Highlight = def.Highlight
	}
}

func validColor(c string) bool {
	if !strings.HasPrefix(c, "#") {
		return false
	}
	hex := c[1:]
	if len(hex) != 3 && len(hex) != 6 {
		return false
	}
	for _, r := range hex {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'a' && r <= 'f':
		case r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}
