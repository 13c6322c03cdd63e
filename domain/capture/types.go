package capture

import "image"

// Screen produces a raster of the full screen as it is at call time.
// Implementations must not buffer: two calls may return different frames.
type Screen interface {
	Capture() (*image.RGBA, error)
}

// ScreenFunc adapts a plain function to the Screen interface.
type ScreenFunc func() (*image.RGBA, error)

// Capture calls f.
func (f ScreenFunc) Capture() (*image.RGBA, error) { return f() }

// Gray is a single-channel 8-bit intensity raster with origin at (0,0).
type Gray struct {
	Pix  []uint8
	W, H int
}

// At returns the intensity at (x, y).
func (g *Gray) At(x, y int) uint8 { return g.Pix[y*g.W+x] }

// Surface holds one correlation score per template placement. Cell (x, y)
// scores the template with its top-left corner at frame pixel (x, y).
type Surface struct {
	Scores []float64
	W, H   int // placements along each axis
	TW, TH int // template size
}

// At returns the score of placement (x, y).
func (s *Surface) At(x, y int) float64 { return s.Scores[y*s.W+x] }
