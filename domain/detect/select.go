package detect

import (
	"image"
	"math/rand/v2"

	"github.com/soocke/pixel-click-go/domain/capture"
)

// Candidates returns a box for every surface cell scoring at least
// threshold, in row-major order. origin offsets the boxes from frame to
// screen coordinates. Overlapping near-duplicates are all kept.
func Candidates(s *capture.Surface, threshold float64, origin image.Point) []BoundingBox {
	if s == nil {
		return nil
	}
	var out []BoundingBox
	for y := 0; y < s.H; y++ {
		row := s.Scores[y*s.W : (y+1)*s.W]
		for x, v := range row {
			if v < threshold {
				continue
			}
			x0, y0 := origin.X+x, origin.Y+y
			out = append(out, BoundingBox{XMin: x0, XMax: x0 + s.TW, YMin: y0, YMax: y0 + s.TH})
		}
	}
	return out
}

// Nearest picks the box minimizing min(|XMin-cx|, |YMin-cy|). The metric
// mixes an x distance and a y distance and is kept as is; it does not agree
// with Euclidean distance. Ties keep the earliest box.
func Nearest(boxes []BoundingBox, cursor image.Point) (BoundingBox, bool) {
	if len(boxes) == 0 {
		return BoundingBox{}, false
	}
	best, bestD := boxes[0], cursorDistance(boxes[0], cursor)
	for _, b := range boxes[1:] {
		if d := cursorDistance(b, cursor); d < bestD {
			best, bestD = b, d
		}
	}
	return best, true
}

func cursorDistance(b BoundingBox, c image.Point) int {
	return min(abs(b.XMin-c.X), abs(b.YMin-c.Y))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// TargetPoint draws a point uniformly from the middle third of b on each
// axis, so repeated clicks on the same element do not land on one pixel.
func TargetPoint(b BoundingBox, r *rand.Rand) image.Point {
	return image.Point{
		X: bandPick(b.XMin, b.XMax-b.XMin, r),
		Y: bandPick(b.YMin, b.YMax-b.YMin, r),
	}
}

// bandPick returns an integer in [start+size/3, start+2*size/3]. Boxes too
// small for the band to hold an integer get the floored midpoint.
func bandPick(start, size int, r *rand.Rand) int {
	lo := start + (size+2)/3
	hi := start + 2*size/3
	if hi < lo {
		return start + size/2
	}
	return lo + r.IntN(hi-lo+1)
}
