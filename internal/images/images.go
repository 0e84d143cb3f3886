// Package images resolves the image URLs a document references. Fetches
// run on their own goroutines and publish completions through an event
// channel; the UI loop consumes those events and re-renders the
// affected placeholders. Parsing and rendering never block on this
// package.
package images

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	// Decoders for the formats notes commonly embed.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/mariinkys/cedilla/internal/logger"
)

// Status is the lifecycle of one image URL. It never moves backwards:
// Loading resolves to Ready or Failed exactly once.
type Status int

const (
	StatusLoading Status = iota
	StatusReady
	StatusFailed
)

// String returns the status name for logs and placeholders.
func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusReady:
		return "ready"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Entry is the resolved state of one URL.
type Entry struct {
	Status Status
	Image  image.Image
	Err    error
}

// Event announces a completed fetch.
type Event struct {
	URL    string
	Status Status
}

// Coordinator deduplicates and tracks image fetches for one document.
// Request is idempotent per URL: once a URL is tracked, in any state,
// further requests are no-ops. In particular a Failed entry is not
// retried; only never-attempted URLs fetch.
type Coordinator struct {
	mu      sync.Mutex
	entries map[string]*Entry

	baseDir string
	client  *http.Client
	events  chan Event
	log     *logger.Logger
}

// NewCoordinator creates a coordinator resolving relative image paths
// against baseDir, the directory of the open document.
func NewCoordinator(baseDir string, log *logger.Logger) *Coordinator {
	if log == nil {
		log = logger.Discard()
	}
	return &Coordinator{
		entries: make(map[string]*Entry),
		baseDir: baseDir,
		client:  &http.Client{Timeout: 30 * time.Second},
		events:  make(chan Event, 16),
		log:     log,
	}
}

// Events returns the completion channel. One event is sent per fetch,
// in completion order, which may differ from request order.
func (c *Coordinator) Events() <-chan Event {
	return c.events
}

// Entry returns the tracked state for a URL.
func (c *Coordinator) Entry(rawURL string) (Entry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[rawURL]
	if !ok {
		return Entry{}, false
	}
	return *e, true
}

// Request starts resolving a URL unless it is already tracked. Safe to
// call from the UI loop; the fetch itself runs on its own goroutine.
func (c *Coordinator) Request(rawURL string) {
	c.mu.Lock()
	if _, ok := c.entries[rawURL]; ok {
		c.mu.Unlock()
		return
	}
	c.entries[rawURL] = &Entry{Status: StatusLoading}
	c.mu.Unlock()

	c.log.ImageRequested(rawURL)

	go func() {
		img, err := c.fetch(context.Background(), rawURL)
		c.complete(rawURL, img, err)
	}()
}

func (c *Coordinator) complete(rawURL string, img image.Image, err error) {
	c.mu.Lock()
	entry := c.entries[rawURL]
	if entry == nil || entry.Status != StatusLoading {
		// A stale completion; the entry already settled.
		c.mu.Unlock()
		return
	}
	if err != nil {
		entry.Status = StatusFailed
		entry.Err = err
	} else {
		entry.Status = StatusReady
		entry.Image = img
	}
	status := entry.Status
	c.mu.Unlock()

	if err != nil {
		c.log.ImageFailed(rawURL, err)
	} else {
		c.log.ImageLoaded(rawURL)
	}
	c.events <- Event{URL: rawURL, Status: status}
}

// fetch loads and decodes one image. Relative paths resolve against the
// document's base directory and load as files.
func (c *Coordinator) fetch(ctx context.Context, rawURL string) (image.Image, error) {
	data, err := c.load(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", rawURL, err)
	}
	return img, nil
}

func (c *Coordinator) load(ctx context.Context, rawURL string) ([]byte, error) {
	switch {
	case strings.HasPrefix(rawURL, "http://"), strings.HasPrefix(rawURL, "https://"):
		return c.download(ctx, rawURL)
	case strings.HasPrefix(rawURL, "file://"):
		u, err := url.Parse(rawURL)
		if err != nil {
			return nil, fmt.Errorf("invalid file URL %s: %w", rawURL, err)
		}
		return os.ReadFile(u.Path)
	default:
		if c.baseDir == "" {
			return nil, fmt.Errorf("no base path for relative URL %s", rawURL)
		}
		return os.ReadFile(filepath.Join(c.baseDir, filepath.FromSlash(rawURL)))
	}
}

func (c *Coordinator) download(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", rawURL, err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching %s: unexpected status %s", rawURL, resp.Status)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(resp.Body); err != nil {
		return nil, fmt.Errorf("failed to read body of %s: %w", rawURL, err)
	}
	return buf.Bytes(), nil
}
