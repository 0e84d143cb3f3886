// Package tui hosts the interactive editor: a textarea for the raw
// markdown on the left and a live rendered preview on the right. The
// document is re-parsed inside Update, so the preview always reflects
// the keystroke that caused the render.
package tui

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mariinkys/cedilla/internal/editor"
	"github.com/mariinkys/cedilla/internal/images"
	"github.com/mariinkys/cedilla/internal/logger"
	"github.com/mariinkys/cedilla/internal/markdown"
	"github.com/mariinkys/cedilla/internal/render"
	"github.com/mariinkys/cedilla/internal/theme"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(theme.Magenta))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.Comment))

	dirtyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.Orange))

	paneStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(theme.Border))
)

type editorModel struct {
	textarea    textarea.Model
	viewport    viewport.Model
	content     *markdown.Content
	settings    render.Settings
	viewer      render.Viewer
	coordinator *images.Coordinator
	log         *logger.Logger

	path       string
	dirty      bool
	statusLine string
	width      int
	height     int
	ready      bool
	previewing bool

	saveFunc func(text string, cursor int) error
}

// InitEditorModel creates the editor over an already-parsed document
func InitEditorModel(path, text string, cursor int, content *markdown.Content, settings render.Settings, coordinator *images.Coordinator, log *logger.Logger, saveFunc func(string, int) error) editorModel {
	ta := textarea.New()
	ta.Placeholder = "Start writing…"
	ta.CharLimit = 0
	ta.SetValue(text)
	ta.Focus()
	for i := 0; i < cursor; i++ {
		ta.CursorDown()
	}

	vp := viewport.New(80, 20)

	return editorModel{
		textarea:    ta,
		viewport:    vp,
		content:     content,
		settings:    settings,
		viewer:      previewViewer{coordinator: coordinator},
		coordinator: coordinator,
		log:         log,
		path:        path,
		saveFunc:    saveFunc,
	}
}

func (m editorModel) Init() tea.Cmd {
	return tea.Batch(
		textarea.Blink,
		listenForImages(m.coordinator),
		m.requestImages(),
	)
}

func (m editorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		paneWidth := msg.Width/2 - 4
		m.textarea.SetWidth(paneWidth)
		m.textarea.SetHeight(msg.Height - 6)
		m.viewport.Width = paneWidth
		m.viewport.Height = msg.Height - 6
		m.ready = true
		m.refreshPreview()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "ctrl+s":
			return m, m.save()
		case "tab":
			m.previewing = !m.previewing
			if m.previewing {
				m.textarea.Blur()
			} else {
				cmds = append(cmds, m.textarea.Focus())
			}
			return m, tea.Batch(cmds...)
		case "ctrl+o":
			if u := m.currentLineLink(); u != nil {
				return m, func() tea.Msg { return LinkClickedMsg{URL: u} }
			}
			return m, nil
		case "ctrl+b":
			return m.applyFormatting(editor.Bold)
		case "ctrl+e":
			return m.applyFormatting(editor.Code)
		case "ctrl+k":
			return m.applyFormatting(editor.Hyperlink)
		case "ctrl+l":
			return m.applyFormatting(editor.BulletedList)
		case "ctrl+t":
			return m.applyFormatting(editor.CheckboxList)
		case "ctrl+r":
			return m.applyFormatting(editor.Rule)
		case "alt+1", "alt+2", "alt+3", "alt+4", "alt+5", "alt+6":
			level := int(msg.String()[4] - '0')
			return m.applyFormatting(editor.Heading1 + editor.Action(level-1))
		}

		if m.previewing {
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}

		before := m.textarea.Value()
		var cmd tea.Cmd
		m.textarea, cmd = m.textarea.Update(msg)
		cmds = append(cmds, cmd)
		if m.textarea.Value() != before {
			m.dirty = true
			m.statusLine = ""
			cmds = append(cmds, m.reparse())
		}
		return m, tea.Batch(cmds...)

	case LinkClickedMsg:
		if err := openURL(msg.URL.String()); err != nil {
			m.statusLine = fmt.Sprintf("✗ %v", err)
		} else {
			m.log.LinkOpened(msg.URL.String())
			m.statusLine = fmt.Sprintf("opened %s", msg.URL)
		}
		return m, nil

	case ImageNeededMsg:
		m.coordinator.Request(msg.URL.String())
		return m, nil

	case ImageCompletedMsg:
		m.refreshPreview()
		return m, listenForImages(m.coordinator)

	case SavedMsg:
		if msg.Err != nil {
			m.statusLine = fmt.Sprintf("✗ save failed: %v", msg.Err)
		} else {
			m.dirty = false
			m.statusLine = fmt.Sprintf("saved %s", msg.Path)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(msg)
	return m, cmd
}

func (m editorModel) View() string {
	var b strings.Builder

	name := m.path
	if name == "" {
		name = "untitled"
	}
	header := titleStyle.Render("cedilla — " + name)
	if m.dirty {
		header += " " + dirtyStyle.Render("●")
	}
	b.WriteString(header)
	b.WriteString("\n\n")

	if !m.ready {
		b.WriteString(statusStyle.Render("loading…"))
		return b.String()
	}

	editorPane := paneStyle.Render(m.textarea.View())
	previewPane := paneStyle.Render(m.viewport.View())
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, editorPane, " ", previewPane))
	b.WriteString("\n")

	if m.statusLine != "" {
		b.WriteString(m.statusLine)
		b.WriteString("\n")
	}
	b.WriteString(theme.HelpStyle.Render("tab preview • ctrl+s save • ctrl+b bold • ctrl+k link • ctrl+o open link • ctrl+c quit"))
	b.WriteString("\n")

	return b.String()
}

// reparse rebuilds the document from the editor text and asks for any
// images the new parse surfaced
func (m *editorModel) reparse() tea.Cmd {
	start := time.Now()
	text := m.textarea.Value()
	m.content = markdown.ParseContent(text)
	m.log.ParsePushed(len(text), len(m.content.Blocks()), time.Since(start))
	m.refreshPreview()
	return m.requestImages()
}

func (m *editorModel) refreshPreview() {
	if !m.ready {
		return
	}
	element := render.View(m.content.Blocks(), m.settings, m.viewer)
	m.viewport.SetContent(element.Render(m.viewport.Width))
}

// requestImages emits one ImageNeededMsg per untracked image URL
func (m editorModel) requestImages() tea.Cmd {
	var cmds []tea.Cmd
	for _, u := range m.content.Images() {
		if _, ok := m.coordinator.Entry(u.String()); !ok {
			u := u
			cmds = append(cmds, func() tea.Msg { return ImageNeededMsg{URL: u} })
		}
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

func (m editorModel) save() tea.Cmd {
	text := m.textarea.Value()
	cursor := m.textarea.Line()
	path := m.path
	saveFunc := m.saveFunc
	return func() tea.Msg {
		if saveFunc == nil {
			return SavedMsg{Path: path}
		}
		return SavedMsg{Path: path, Err: saveFunc(text, cursor)}
	}
}

// applyFormatting toggles a marker on the current line and re-parses
func (m editorModel) applyFormatting(action editor.Action) (tea.Model, tea.Cmd) {
	lines := strings.Split(m.textarea.Value(), "\n")
	row := m.textarea.Line()
	if row >= len(lines) {
		return m, nil
	}

	lines[row] = editor.Apply(action, lines[row])
	m.textarea.SetValue(strings.Join(lines, "\n"))
	for i := 0; i < row; i++ {
		m.textarea.CursorDown()
	}
	m.dirty = true
	return m, m.reparse()
}

// currentLineLink returns the first hyperlink on the cursor line
func (m editorModel) currentLineLink() *url.URL {
	lines := strings.Split(m.textarea.Value(), "\n")
	row := m.textarea.Line()
	if row >= len(lines) {
		return nil
	}
	return firstLink(markdown.Parse(lines[row]))
}

func firstLink(blocks []markdown.Block) *url.URL {
	for _, block := range blocks {
		var text *markdown.Text
		switch b := block.(type) {
		case markdown.Heading:
			text = b.Text
		case markdown.Paragraph:
			text = b.Text
		default:
			continue
		}
		if text == nil {
			continue
		}
		for _, span := range text.Spans() {
			if s, ok := span.(markdown.StandardSpan); ok && s.Link != nil {
				return s.Link
			}
		}
	}
	return nil
}

// listenForImages forwards the next coordinator event into the program
func listenForImages(c *images.Coordinator) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-c.Events()
		if !ok {
			return nil
		}
		return ImageCompletedMsg{Event: ev}
	}
}
