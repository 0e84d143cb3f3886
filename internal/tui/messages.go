package tui

import (
	"net/url"

	"github.com/mariinkys/cedilla/internal/images"
)

// LinkClickedMsg is sent when a link in the preview is activated
type LinkClickedMsg struct {
	URL *url.URL
}

// ImageNeededMsg is sent when the parsed document references an image
// that has not been requested yet
type ImageNeededMsg struct {
	URL *url.URL
}

// ImageCompletedMsg is sent when the coordinator finishes an image
// fetch, in either direction
type ImageCompletedMsg struct {
	Event images.Event
}

// SavedMsg is sent when a document save finishes
type SavedMsg struct {
	Path string
	Err  error
}
