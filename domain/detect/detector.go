package detect

import (
	"errors"
	"fmt"
	"image"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/soocke/pixel-click-go/domain/capture"
	"github.com/soocke/pixel-click-go/domain/template"
)

// ErrCapture wraps failures of the screen-capture collaborator.
var ErrCapture = errors.New("screen capture failed")

// Detector finds a template on the live screen. Each call loads the
// template and captures the screen afresh; nothing is cached between calls.
type Detector struct {
	screen    capture.Screen
	templates template.Source
	cursor    Cursor
	logger    *slog.Logger
	sleep     func(time.Duration)
	rng       *rand.Rand
}

// Option customizes a Detector.
type Option func(*Detector)

// WithSleep replaces the pause used between polls.
func WithSleep(fn func(time.Duration)) Option {
	return func(d *Detector) {
		if fn != nil {
			d.sleep = fn
		}
	}
}

// WithRand sets the generator used to pick target points.
func WithRand(r *rand.Rand) Option {
	return func(d *Detector) {
		if r != nil {
			d.rng = r
		}
	}
}

// WithSeed seeds the target point generator.
func WithSeed(seed uint64) Option {
	return WithRand(rand.New(rand.NewPCG(seed, seed>>1|1)))
}

// NewDetector constructs a Detector. cursor may be nil, in which case the
// pointer is assumed to sit at the screen origin.
func NewDetector(screen capture.Screen, templates template.Source, cursor Cursor, logger *slog.Logger, opts ...Option) *Detector {
	d := &Detector{
		screen:    screen,
		templates: templates,
		cursor:    cursor,
		logger:    logger,
		sleep:     time.Sleep,
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.rng == nil {
		seed := uint64(time.Now().UnixNano())
		d.rng = rand.New(rand.NewPCG(seed, seed>>1|1))
	}
	return d
}

// Locate runs one detection pass and returns the chosen box together with
// the capture it came from. A missing template fails before the screen is
// captured.
func (d *Detector) Locate(name string, threshold float64) (Match, error) {
	tmpl, err := d.templates.Load(name)
	if err != nil {
		return Match{}, err
	}
	start := time.Now()
	frame, err := d.screen.Capture()
	if err != nil {
		return Match{}, fmt.Errorf("%w: %w", ErrCapture, err)
	}
	if frame == nil {
		return Match{}, fmt.Errorf("%w: empty frame", ErrCapture)
	}

	surface := capture.Correlate(capture.ToGray(frame), capture.ToGray(tmpl))
	boxes := Candidates(surface, threshold, frame.Bounds().Min)
	m := Match{Frame: frame, Candidates: len(boxes)}
	if len(boxes) > 0 {
		var cx, cy int
		if d.cursor != nil {
			cx, cy = d.cursor.Position()
		}
		m.Box, m.Found = Nearest(boxes, image.Pt(cx, cy))
	}
	if d.logger != nil {
		d.logger.Debug("detect.pass",
			"template", name,
			"threshold", threshold,
			"candidates", m.Candidates,
			"found", m.Found,
			"elapsed", time.Since(start),
		)
	}
	return m, nil
}

// LocateBest returns the box nearest the pointer among all placements
// scoring at least threshold. found is false when nothing qualifies.
func (d *Detector) LocateBest(name string, threshold float64) (BoundingBox, bool, error) {
	m, err := d.Locate(name, threshold)
	if err != nil {
		return BoundingBox{}, false, err
	}
	return m.Box, m.Found, nil
}

// LocateWithRetry polls LocateBest until it succeeds or the accumulated
// poll delay reaches timeout, then returns a target point inside the box.
// Each poll takes a new capture. Template errors end the call at once;
// capture errors count as a miss. Timing out is not an error: found is
// false and a diagnostic naming the template is logged.
func (d *Detector) LocateWithRetry(name string, threshold float64, timeout, poll time.Duration) (image.Point, bool, error) {
	if poll <= 0 {
		poll = DefaultPollInterval
	}
	var (
		state    = StatePolling
		elapsed  time.Duration
		attempts int
		box      BoundingBox
	)
	for state == StatePolling {
		attempts++
		b, ok, err := d.LocateBest(name, threshold)
		switch {
		case err != nil && !errors.Is(err, ErrCapture):
			return image.Point{}, false, err
		case err != nil:
			if d.logger != nil {
				d.logger.Warn("detect.capture", "template", name, "attempt", attempts, "error", err)
			}
		case ok:
			box, state = b, StateFound
			continue
		}
		d.sleep(poll)
		elapsed += poll
		if elapsed >= timeout {
			state = StateTimedOut
		}
	}

	if state == StateTimedOut {
		if d.logger != nil {
			d.logger.Warn("detect.timeout", "template", name, "timeout", timeout, "attempts", attempts)
		}
		return image.Point{}, false, nil
	}
	pt := TargetPoint(box, d.rng)
	if d.logger != nil {
		d.logger.Debug("detect.found", "template", name, "box", box.Rect(), "target", pt, "attempts", attempts)
	}
	return pt, true, nil
}
