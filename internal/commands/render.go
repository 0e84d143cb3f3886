package commands

import (
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/mariinkys/cedilla/internal/config"
	"github.com/mariinkys/cedilla/internal/markdown"
	"github.com/mariinkys/cedilla/internal/render"
	"github.com/mariinkys/cedilla/internal/theme"
)

// Render parses a markdown file and prints the styled result to stdout
func Render(args []string) {
	if len(args) < 1 {
		fmt.Println(theme.ErrorStyle.Render("✗ Usage: cedilla render <file.md> [--width N]"))
		os.Exit(1)
	}
	path := args[0]

	width := 0
	for i, arg := range args {
		if arg == "--width" && i+1 < len(args) {
			fmt.Sscanf(args[i+1], "%d", &width)
		}
	}
	if width <= 0 {
		if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			width = w
		} else {
			width = 80
		}
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Println(theme.ErrorStyle.Render("✗ Error loading config: " + err.Error()))
		os.Exit(1)
	}

	th, err := theme.Lookup(cfg.Theme, config.ThemesDir())
	if err != nil {
		fmt.Println(theme.ErrorStyle.Render("✗ " + err.Error()))
		os.Exit(1)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Println(theme.ErrorStyle.Render("✗ Error reading file: " + err.Error()))
		os.Exit(1)
	}

	markdown.HighlightStyle = th.Chroma
	blocks := markdown.Parse(string(data))
	settings := render.NewSettings(cfg.TextSize, th.Style())
	element := render.View(blocks, settings, render.DefaultViewer{})

	fmt.Println(element.Render(width))
}
