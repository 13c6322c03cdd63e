package action

import (
	"image"
	"log/slog"
	"time"
)

const (
	pressDuration  = 30 * time.Millisecond
	doubleClickGap = 60 * time.Millisecond
)

// Pointer is the input-injection collaborator. Calls take effect before
// they return.
type Pointer interface {
	Move(x, y int)
	Click(double bool)
	Position() (x, y int)
}

// Locator resolves a template to a target point, polling until timeout.
type Locator interface {
	LocateWithRetry(name string, threshold float64, timeout, poll time.Duration) (image.Point, bool, error)
}

// Actuator moves the pointer to, and optionally clicks on, a template found
// on screen. Detection always finishes before any input is sent.
type Actuator struct {
	locator Locator
	pointer Pointer
	logger  *slog.Logger
	poll    time.Duration
}

// NewActuator constructs an Actuator. poll <= 0 leaves the locator's
// default interval in effect.
func NewActuator(locator Locator, pointer Pointer, logger *slog.Logger, poll time.Duration) *Actuator {
	return &Actuator{locator: locator, pointer: pointer, logger: logger, poll: poll}
}

// MoveTo waits up to timeout for name to appear and moves the pointer onto
// it. When the template is not found no input is sent and found is false.
func (a *Actuator) MoveTo(name string, timeout time.Duration, threshold float64) (image.Point, bool, error) {
	pt, ok, err := a.locator.LocateWithRetry(name, threshold, timeout, a.poll)
	if err != nil || !ok {
		return image.Point{}, false, err
	}
	a.pointer.Move(pt.X, pt.Y)
	if a.logger != nil {
		a.logger.Info("action.move", "template", name, "x", pt.X, "y", pt.Y)
	}
	return pt, true, nil
}

// Click is MoveTo followed by a single or double left click at the point.
func (a *Actuator) Click(name string, timeout time.Duration, threshold float64, double bool) (image.Point, bool, error) {
	pt, ok, err := a.MoveTo(name, timeout, threshold)
	if err != nil || !ok {
		return pt, ok, err
	}
	a.pointer.Click(double)
	if a.logger != nil {
		a.logger.Info("action.click", "template", name, "x", pt.X, "y", pt.Y, "double", double)
	}
	return pt, true, nil
}
