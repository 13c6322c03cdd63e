package capture

import (
	"math"
	"math/cmplx"
	"runtime"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/dsp/fourier"
)

// Templates up to this many pixels take the direct path; above it the
// transform is cheaper.
const directCrossMax = 64

// crossTerms returns Σ T(i,j)·I(x+i,y+j) for each of the sw×sh placements,
// row-major.
func crossTerms(frame, tmpl *Gray, sw, sh int) []int64 {
	if tmpl.W*tmpl.H <= directCrossMax {
		return crossDirect(frame, tmpl, sw, sh)
	}
	return crossFFT(frame, tmpl, sw, sh)
}

func crossDirect(frame, tmpl *Gray, sw, sh int) []int64 {
	w, h := tmpl.W, tmpl.H
	out := make([]int64, sw*sh)
	for y := 0; y < sh; y++ {
		for x := 0; x < sw; x++ {
			var sum int64
			for ty := 0; ty < h; ty++ {
				frow := frame.Pix[(y+ty)*frame.W+x : (y+ty)*frame.W+x+w]
				trow := tmpl.Pix[ty*w : (ty+1)*w]
				for i, v := range trow {
					sum += int64(v) * int64(frow[i])
				}
			}
			out[y*sw+x] = sum
		}
	}
	return out
}

// crossFFT evaluates the cross term through the correlation theorem on
// zero-padded 2D spectra. Padding to at least the frame size keeps every
// valid placement free of wrap-around. Products are whole numbers well
// inside float64 precision, so rounding recovers them exactly.
func crossFFT(frame, tmpl *Gray, sw, sh int) []int64 {
	p, q := fftSize(frame.W), fftSize(frame.H)
	fi := spectrum(frame, p, q)
	ft := spectrum(tmpl, p, q)
	for i := range fi {
		fi[i] *= cmplx.Conj(ft[i])
	}

	// inverse: every column, then only the rows holding placements
	parallel(p, q, func(fft *fourier.CmplxFFT, a, b []complex128, x int) {
		for y := range a {
			a[y] = fi[y*p+x]
		}
		fft.Sequence(b, a)
		for y, v := range b {
			fi[y*p+x] = v
		}
	})
	parallel(sh, p, func(fft *fourier.CmplxFFT, a, _ []complex128, y int) {
		row := fi[y*p : (y+1)*p]
		copy(a, row)
		fft.Sequence(row, a)
	})

	scale := float64(p * q)
	out := make([]int64, sw*sh)
	for y := 0; y < sh; y++ {
		for x := 0; x < sw; x++ {
			out[y*sw+x] = int64(math.Round(real(fi[y*p+x]) / scale))
		}
	}
	return out
}

// spectrum returns the 2D transform of g zero-padded to p×q.
func spectrum(g *Gray, p, q int) []complex128 {
	data := make([]complex128, p*q)
	for y := 0; y < g.H; y++ {
		row := data[y*p:]
		for x, v := range g.Pix[y*g.W : (y+1)*g.W] {
			row[x] = complex(float64(v), 0)
		}
	}
	// rows past g.H are zero and stay zero
	parallel(g.H, p, func(fft *fourier.CmplxFFT, a, _ []complex128, y int) {
		row := data[y*p : (y+1)*p]
		copy(a, row)
		fft.Coefficients(row, a)
	})
	parallel(p, q, func(fft *fourier.CmplxFFT, a, b []complex128, x int) {
		for y := range a {
			a[y] = data[y*p+x]
		}
		fft.Coefficients(b, a)
		for y, v := range b {
			data[y*p+x] = v
		}
	})
	return data
}

// parallel calls fn for every i in [0,n), spread over GOMAXPROCS workers.
// Plans carry scratch space, so each worker owns one plan of length size
// and two buffers of that length.
func parallel(n, size int, fn func(fft *fourier.CmplxFFT, a, b []complex128, i int)) {
	workers := min(runtime.GOMAXPROCS(0), n)
	if workers < 1 {
		return
	}
	chunk := (n + workers - 1) / workers
	var g errgroup.Group
	for lo := 0; lo < n; lo += chunk {
		hi := min(lo+chunk, n)
		g.Go(func() error {
			fft := fourier.NewCmplxFFT(size)
			a := make([]complex128, size)
			b := make([]complex128, size)
			for i := lo; i < hi; i++ {
				fn(fft, a, b, i)
			}
			return nil
		})
	}
	_ = g.Wait()
}

// fftSize returns the smallest n' >= n whose only prime factors are 2, 3
// and 5, the lengths the transform handles fastest.
func fftSize(n int) int {
	for m := max(n, 1); ; m++ {
		r := m
		for _, f := range []int{2, 3, 5} {
			for r%f == 0 {
				r /= f
			}
		}
		if r == 1 {
			return m
		}
	}
}
