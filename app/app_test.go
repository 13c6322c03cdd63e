package app

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"io"
	"math/rand/v2"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/disintegration/imaging"

	"github.com/soocke/pixel-click-go/domain/capture"
	"github.com/soocke/pixel-click-go/domain/template"
)

const ox, oy = 30, 20

func noise(w, h int, seed uint64) *image.RGBA {
	r := rand.New(rand.NewPCG(seed, seed+1))
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = uint8(r.IntN(256)), uint8(r.IntN(256)), uint8(r.IntN(256)), 255
	}
	return img
}

type spyPointer struct{ events []string }

func (p *spyPointer) Move(x, y int) { p.events = append(p.events, fmt.Sprintf("move %d %d", x, y)) }
func (p *spyPointer) Click(double bool) {
	if double {
		p.events = append(p.events, "double")
		return
	}
	p.events = append(p.events, "click")
}
func (p *spyPointer) Position() (int, int) { return 0, 0 }

type preview struct {
	calls int
	box   image.Rectangle
	found bool
}

// fixture is a 64x48 screen with the 9x9 "btn" template at (30,20).
type fixture struct {
	pointer  *spyPointer
	preview  *preview
	captures int
	backend  string
}

func newFixture() *fixture {
	return &fixture{pointer: &spyPointer{}, preview: &preview{}}
}

func (f *fixture) env() Env {
	tmpl := noise(9, 9, 1)
	frame := noise(64, 48, 2)
	for y := 0; y < 9; y++ {
		for x := 0; x < 9; x++ {
			frame.SetRGBA(ox+x, oy+y, tmpl.RGBAAt(x, y))
		}
	}
	return Env{
		Screen: func(backend string) capture.Screen {
			f.backend = backend
			return capture.ScreenFunc(func() (*image.RGBA, error) {
				f.captures++
				return frame, nil
			})
		},
		Templates: template.MapSource{"btn": tmpl, "other": noise(9, 9, 3)},
		Pointer:   f.pointer,
		Preview: func(_ string, _ image.Image, box image.Rectangle, found bool, _ string) {
			f.preview.calls++
			f.preview.box, f.preview.found = box, found
		},
		Sleep: func(time.Duration) {},
	}
}

func (f *fixture) run(args ...string) (string, error) {
	root := NewRootCommand(f.env())
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestLocate_PrintsBox(t *testing.T) {
	f := newFixture()
	out, err := f.run("locate", "btn", "--threshold", "0.99", "--backend", "kbinani")
	if err != nil {
		t.Fatalf("locate: %v", err)
	}
	if want := "x_min=30 x_max=39 y_min=20 y_max=29\n"; out != want {
		t.Fatalf("output %q want %q", out, want)
	}
	if f.backend != capture.BackendDisplay || f.captures != 1 {
		t.Fatalf("backend=%q captures=%d", f.backend, f.captures)
	}
}

func TestMove_RootDefaultsToMove(t *testing.T) {
	f := newFixture()
	out, err := f.run("btn", "--threshold", "0.99")
	if err != nil {
		t.Fatalf("move: %v", err)
	}
	var x, y int
	if _, err := fmt.Sscanf(out, "%d %d", &x, &y); err != nil {
		t.Fatalf("parse %q: %v", out, err)
	}
	if x < ox+3 || x > ox+6 || y < oy+3 || y > oy+6 {
		t.Fatalf("target (%d,%d) outside middle band", x, y)
	}
	if len(f.pointer.events) != 1 || f.pointer.events[0] != fmt.Sprintf("move %d %d", x, y) {
		t.Fatalf("events %v", f.pointer.events)
	}
}

func TestClick_Double(t *testing.T) {
	f := newFixture()
	if _, err := f.run("click", "btn", "--double", "--threshold", "0.99", "--seed", "7"); err != nil {
		t.Fatalf("click: %v", err)
	}
	if len(f.pointer.events) != 2 || f.pointer.events[1] != "double" {
		t.Fatalf("events %v", f.pointer.events)
	}
}

func TestNotFound_ExitCodeTwo(t *testing.T) {
	f := newFixture()
	_, err := f.run("click", "other", "--threshold", "0.99", "--timeout", "300ms", "--poll", "100ms")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if code := ExitCode(err); code != 2 {
		t.Fatalf("exit code %d want 2", code)
	}
	if len(f.pointer.events) != 0 {
		t.Fatalf("input sent on not found: %v", f.pointer.events)
	}
	if f.captures < 3 {
		t.Fatalf("captures=%d, want at least timeout/poll", f.captures)
	}
}

func TestMissingTemplate_ExitCodeOne(t *testing.T) {
	f := newFixture()
	_, err := f.run("locate", "nope.png")
	if !errors.Is(err, template.ErrTemplateNotFound) || ExitCode(err) != 1 {
		t.Fatalf("err=%v code=%d", err, ExitCode(err))
	}
	if f.captures != 0 {
		t.Fatalf("captured %d times for a missing template", f.captures)
	}
}

func TestThresholdOutOfRange_Rejected(t *testing.T) {
	f := newFixture()
	_, err := f.run("move", "btn", "--threshold", "95")
	if err == nil || ExitCode(err) != 1 {
		t.Fatalf("err=%v code=%d", err, ExitCode(err))
	}
	if f.captures != 0 || len(f.pointer.events) != 0 {
		t.Fatalf("ran despite invalid threshold: captures=%d events=%v", f.captures, f.pointer.events)
	}
}

func TestCrop_UsesMargins(t *testing.T) {
	f := newFixture()
	path := filepath.Join(t.TempDir(), "crop.png")
	out, err := f.run("crop", "btn", "--threshold", "0.99",
		"--left", "5", "--right", "6", "--top", "7", "--bottom", "8", "--out", path)
	if err != nil {
		t.Fatalf("crop: %v", err)
	}
	if strings.TrimSpace(out) != path {
		t.Fatalf("output %q", out)
	}
	img, err := imaging.Open(path)
	if err != nil {
		t.Fatalf("open crop: %v", err)
	}
	if got := img.Bounds().Size(); got != image.Pt(9+5+6, 9+7+8) {
		t.Fatalf("crop size %v", got)
	}
}

func TestPreview_ReceivesBox(t *testing.T) {
	f := newFixture()
	if _, err := f.run("preview", "btn", "--threshold", "0.99"); err != nil {
		t.Fatalf("preview: %v", err)
	}
	if f.preview.calls != 1 || !f.preview.found || f.preview.box != image.Rect(ox, oy, ox+9, oy+9) {
		t.Fatalf("preview %+v", *f.preview)
	}
}

func TestExitCode(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{nil, 0},
		{fmt.Errorf("%w: x", ErrNotFound), 2},
		{errors.New("boom"), 1},
	}
	for _, c := range cases {
		if got := ExitCode(c.err); got != c.want {
			t.Fatalf("ExitCode(%v) = %d want %d", c.err, got, c.want)
		}
	}
}
