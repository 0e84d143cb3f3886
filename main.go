package main

import (
	"fmt"
	"os"

	"github.com/mariinkys/cedilla/internal/commands"
	"github.com/mariinkys/cedilla/internal/config"
)

const version = "0.1.0"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "edit", "open":
		commands.Edit(os.Args[2:])
	case "render":
		commands.Render(os.Args[2:])
	case "themes":
		commands.Themes()
	case "recent":
		commands.Recent()
	case "config":
		commands.ShowConfig()
	case "version", "-v", "--version":
		fmt.Printf("cedilla v%s\n", version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	usage := fmt.Sprintf(`cedilla - Terminal markdown editor with live preview

Usage:
  cedilla <command> [options]

Commands:
  edit        Open a file in the interactive editor
  render      Render a file to the terminal and exit
  themes      List available color themes
  recent      List recently opened documents
  config      Show the active configuration
  version     Show version information
  help        Show this help message

Examples:
  cedilla edit notes.md
  cedilla render README.md
  cedilla render README.md --width 100
  cedilla themes
  cedilla recent

Configuration:
  Config file: %s
  Sessions:    %s
  User themes: %s
`, config.ConfigPath(), config.SessionsPath(), config.ThemesDir())
	fmt.Print(usage)
}
