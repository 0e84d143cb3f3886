package commands

import (
	"fmt"
	"os"

	"github.com/mariinkys/cedilla/internal/config"
	"github.com/mariinkys/cedilla/internal/logger"
	"github.com/mariinkys/cedilla/internal/theme"
	"github.com/mariinkys/cedilla/internal/tui"
)

// Edit opens a markdown file in the interactive editor
func Edit(args []string) {
	if len(args) < 1 {
		fmt.Println(theme.ErrorStyle.Render("✗ Usage: cedilla edit <file.md>"))
		os.Exit(1)
	}
	path := args[0]

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

	log := logger.Discard()
	if cfg.LogFile != "" {
		if l, cleanup, err := logger.NewFileLogger(cfg.LogFile); err == nil {
			defer cleanup()
			log = l
		}
	}
	log.ConfigLoaded(cfg.Theme, cfg.TextSize)

	if err := tui.Run(path, cfg, th, log); err != nil {
		fmt.Println(theme.ErrorStyle.Render("✗ " + err.Error()))
		os.Exit(1)
	}
}
