package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/mariinkys/cedilla/internal/config"
	"github.com/mariinkys/cedilla/internal/session"
	"github.com/mariinkys/cedilla/internal/theme"
)

// Themes lists the built-in and user-defined themes
func Themes() {
	fmt.Println(theme.TitleStyle.Render("Available Themes"))
	fmt.Println()

	cfg, err := config.Load()
	current := ""
	if err == nil {
		current = cfg.Theme
	}

	for _, name := range theme.Names() {
		marker := "  "
		if name == current {
			marker = "* "
		}
		fmt.Printf("%s%s\n", marker, name)
	}

	userThemes, err := theme.LoadUserThemes(config.ThemesDir())
	if err != nil {
		fmt.Println(theme.ErrorStyle.Render("✗ Error reading user themes: " + err.Error()))
		os.Exit(1)
	}
	if len(userThemes) > 0 {
		fmt.Println()
		fmt.Println(theme.DimStyle.Render("User themes (" + config.ThemesDir() + "):"))
		for _, th := range userThemes {
			marker := "  "
			if th.Name == current {
				marker = "* "
			}
			fmt.Printf("%s%s\n", marker, th.Name)
		}
	}
}

// Recent lists recently opened documents, newest first
func Recent() {
	store, err := session.Load(config.SessionsPath())
	if err != nil {
		fmt.Println(theme.ErrorStyle.Render("✗ Error loading sessions: " + err.Error()))
		os.Exit(1)
	}

	fmt.Println(theme.TitleStyle.Render("Recent Documents"))
	fmt.Println()

	paths := store.Recent()
	if len(paths) == 0 {
		fmt.Println(theme.DimStyle.Render("No documents opened yet"))
		return
	}

	for _, path := range paths {
		opened := store.LastOpenTime(path).Format(time.DateTime)
		fmt.Printf("  %s  %s\n", theme.DimStyle.Render(opened), path)
	}
}

// ShowConfig prints the active configuration
func ShowConfig() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println(theme.ErrorStyle.Render("✗ Error loading config: " + err.Error()))
		os.Exit(1)
	}

	fmt.Println(theme.TitleStyle.Render("Configuration"))
	fmt.Println()
	fmt.Printf("  %s %s\n", theme.DimStyle.Render("Config file:"), config.ConfigPath())
	fmt.Printf("  %s %s\n", theme.DimStyle.Render("Theme:      "), cfg.Theme)
	fmt.Printf("  %s %g\n", theme.DimStyle.Render("Text size:  "), cfg.TextSize)
	fmt.Printf("  %s %s\n", theme.DimStyle.Render("Notes dir:  "), cfg.NotesDir)
	fmt.Printf("  %s %s\n", theme.DimStyle.Render("Log file:   "), cfg.LogFile)
}
