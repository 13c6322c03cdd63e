package capture

import (
	"image"
	"math"

	"github.com/disintegration/imaging"
)

// ToGray converts img to 8-bit luma (0.299R + 0.587G + 0.114B). The result
// always starts at (0,0) regardless of img's bounds.
func ToGray(img image.Image) *Gray {
	if img == nil {
		return nil
	}
	n := imaging.Grayscale(img)
	b := n.Bounds()
	g := &Gray{Pix: make([]uint8, b.Dx()*b.Dy()), W: b.Dx(), H: b.Dy()}
	for y := 0; y < g.H; y++ {
		row := n.Pix[y*n.Stride:]
		dst := g.Pix[y*g.W : (y+1)*g.W]
		for x := range dst {
			dst[x] = row[x*4] // R == G == B after Grayscale
		}
	}
	return g
}

// integral is a summed-area table of intensities and squared intensities.
// It has one extra leading row and column of zeros so window queries need
// no bounds checks.
type integral struct {
	sum []int64
	sq  []int64
	w   int // stride, source width + 1
}

func buildIntegral(g *Gray) *integral {
	w := g.W + 1
	in := &integral{
		sum: make([]int64, w*(g.H+1)),
		sq:  make([]int64, w*(g.H+1)),
		w:   w,
	}
	for y := 0; y < g.H; y++ {
		var rowSum, rowSq int64
		for x := 0; x < g.W; x++ {
			v := int64(g.Pix[y*g.W+x])
			rowSum += v
			rowSq += v * v
			off := (y+1)*w + x + 1
			in.sum[off] = in.sum[off-w] + rowSum
			in.sq[off] = in.sq[off-w] + rowSq
		}
	}
	return in
}

// window returns the sum and squared sum over the w×h window at (x, y).
func (in *integral) window(x, y, w, h int) (int64, int64) {
	a := y*in.w + x
	b := a + w
	c := (y+h)*in.w + x
	d := c + w
	return in.sum[d] - in.sum[b] - in.sum[c] + in.sum[a],
		in.sq[d] - in.sq[b] - in.sq[c] + in.sq[a]
}

// Correlate computes the normalized cross-correlation surface of tmpl over
// frame, with the template and each window mean-subtracted:
//
//	R(x,y) = Σ T'·I' / sqrt(Σ T'² · Σ I'²)
//
// Window sums come from summed-area tables and the cross term from
// crossTerms, all in exact integer arithmetic. A flat template scores 1
// against a flat window of the same intensity and 0 elsewhere; a flat
// window scores 0 against a textured template. A template larger than the
// frame yields an empty surface.
func Correlate(frame, tmpl *Gray) *Surface {
	if frame == nil || tmpl == nil || tmpl.W == 0 || tmpl.H == 0 ||
		tmpl.W > frame.W || tmpl.H > frame.H {
		return &Surface{}
	}
	w, h := tmpl.W, tmpl.H
	s := &Surface{
		W:  frame.W - w + 1,
		H:  frame.H - h + 1,
		TW: w,
		TH: h,
	}
	s.Scores = make([]float64, s.W*s.H)

	n := int64(w * h)
	var sumT, sumT2 int64
	for _, v := range tmpl.Pix {
		sumT += int64(v)
		sumT2 += int64(v) * int64(v)
	}
	varT := n*sumT2 - sumT*sumT
	if varT == 0 {
		// flat template: only flat windows of the same level match
		pre := buildIntegral(frame)
		for y := 0; y < s.H; y++ {
			for x := 0; x < s.W; x++ {
				sumI, sumI2 := pre.window(x, y, w, h)
				if n*sumI2-sumI*sumI == 0 && sumI == sumT {
					s.Scores[y*s.W+x] = 1
				}
			}
		}
		return s
	}

	cross := crossTerms(frame, tmpl, s.W, s.H)
	pre := buildIntegral(frame)
	for y := 0; y < s.H; y++ {
		for x := 0; x < s.W; x++ {
			sumI, sumI2 := pre.window(x, y, w, h)
			varI := n*sumI2 - sumI*sumI
			if varI == 0 {
				continue
			}
			score := float64(n*cross[y*s.W+x]-sumT*sumI) / math.Sqrt(float64(varT)*float64(varI))
			s.Scores[y*s.W+x] = math.Max(-1, math.Min(1, score))
		}
	}
	return s
}
