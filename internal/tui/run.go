package tui

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mariinkys/cedilla/internal/config"
	"github.com/mariinkys/cedilla/internal/images"
	"github.com/mariinkys/cedilla/internal/logger"
	"github.com/mariinkys/cedilla/internal/markdown"
	"github.com/mariinkys/cedilla/internal/render"
	"github.com/mariinkys/cedilla/internal/session"
	"github.com/mariinkys/cedilla/internal/theme"
)

// pushChunk is the slice size used when feeding a file into the parser
const pushChunk = 4096

// Run opens path in the interactive editor
func Run(path string, cfg *config.Config, th theme.Theme, log *logger.Logger) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve path: %w", err)
	}

	text := ""
	if data, err := os.ReadFile(absPath); err == nil {
		text = string(data)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to read %s: %w", absPath, err)
	}
	log.DocumentOpened(absPath, len(text))

	markdown.HighlightStyle = th.Chroma

	// Feed the file through the incremental path the way a stream of
	// edits would arrive
	content := markdown.NewContent()
	for offset := 0; offset < len(text); offset += pushChunk {
		end := offset + pushChunk
		if end > len(text) {
			end = len(text)
		}
		content.Push(text[offset:end])
	}

	store, err := session.Load(config.SessionsPath())
	if err != nil {
		return fmt.Errorf("failed to load sessions: %w", err)
	}
	cursor := 0
	if _, statErr := os.Stat(absPath); statErr == nil {
		doc, err := store.Open(absPath)
		if err != nil {
			return fmt.Errorf("failed to open session: %w", err)
		}
		cursor = doc.Cursor
	}

	coordinator := images.NewCoordinator(filepath.Dir(absPath), log)
	settings := render.NewSettings(cfg.TextSize, th.Style())

	saveFunc := func(text string, cursor int) error {
		if err := os.WriteFile(absPath, []byte(text), 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", absPath, err)
		}
		if err := store.Update(absPath, cursor); err != nil {
			return fmt.Errorf("failed to update session: %w", err)
		}
		if err := store.Save(config.SessionsPath()); err != nil {
			return fmt.Errorf("failed to save sessions: %w", err)
		}
		log.SessionSaved(absPath, len(store.Documents))
		return nil
	}

	m := InitEditorModel(absPath, text, cursor, content, settings, coordinator, log, saveFunc)
	p := tea.NewProgram(m, tea.WithInput(os.Stdin), tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run editor: %w", err)
	}
	return nil
}
