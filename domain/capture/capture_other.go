//go:build !windows

package capture

import (
	"errors"
	"image"
)

// GDIScreen is only available on Windows.
type GDIScreen struct{}

// Capture always fails outside Windows.
func (GDIScreen) Capture() (*image.RGBA, error) {
	return nil, errors.New("capture: gdi backend requires windows")
}
