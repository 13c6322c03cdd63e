package capture

import (
	"fmt"
	"image"

	display "github.com/kbinani/screenshot"
	"github.com/vova616/screenshot"
)

// Backend names accepted by New.
const (
	BackendVova    = "vova616"
	BackendDisplay = "kbinani"
	BackendGDI     = "gdi"
)

// VovaScreen captures the active monitor with vova616/screenshot.
type VovaScreen struct{}

// Capture implements Screen.
func (VovaScreen) Capture() (*image.RGBA, error) {
	img, err := screenshot.CaptureScreen()
	if err != nil {
		return nil, fmt.Errorf("capture: %w", err)
	}
	return img, nil
}

// DisplayScreen captures one display with kbinani/screenshot. The returned
// image bounds are the display bounds, so pixel coordinates are screen
// coordinates on multi-monitor setups.
type DisplayScreen struct {
	Index int
}

// Capture implements Screen.
func (s DisplayScreen) Capture() (*image.RGBA, error) {
	if n := display.NumActiveDisplays(); s.Index < 0 || s.Index >= n {
		return nil, fmt.Errorf("capture: display %d not active (%d active)", s.Index, n)
	}
	bounds := display.GetDisplayBounds(s.Index)
	img, err := display.CaptureRect(bounds)
	if err != nil {
		return nil, fmt.Errorf("capture: display %d: %w", s.Index, err)
	}
	img.Rect = bounds
	return img, nil
}

// New returns the Screen implementation for a configured backend name.
func New(backend string) Screen {
	switch backend {
	case BackendDisplay:
		return DisplayScreen{}
	case BackendGDI:
		return GDIScreen{}
	default:
		return VovaScreen{}
	}
}
