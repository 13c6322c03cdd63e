package detect

import (
	"image"
	"time"
)

// DefaultPollInterval is the pause between detection attempts while waiting
// for a template to appear.
const DefaultPollInterval = 100 * time.Millisecond

// BoundingBox is a candidate match in screen pixel coordinates. XMax-XMin and
// YMax-YMin always equal the template's width and height.
type BoundingBox struct {
	XMin, XMax, YMin, YMax int
}

// Rect returns the box as an image.Rectangle.
func (b BoundingBox) Rect() image.Rectangle { return image.Rect(b.XMin, b.YMin, b.XMax, b.YMax) }

// Match is the outcome of a single detection pass.
type Match struct {
	Box        BoundingBox
	Found      bool
	Candidates int
	Frame      *image.RGBA // capture the pass ran against
}

// State of a LocateWithRetry call. Found and TimedOut are terminal.
type State int

const (
	StatePolling State = iota
	StateFound
	StateTimedOut
)

func (s State) String() string {
	switch s {
	case StatePolling:
		return "polling"
	case StateFound:
		return "found"
	case StateTimedOut:
		return "timed_out"
	default:
		return "unknown"
	}
}

// Cursor reports the current pointer position.
type Cursor interface {
	Position() (x, y int)
}

// CursorFunc adapts a function to Cursor.
type CursorFunc func() (int, int)

// Position calls f.
func (f CursorFunc) Position() (int, int) { return f() }
