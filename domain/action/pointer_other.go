//go:build !windows

package action

import "github.com/go-vgo/robotgo"

// SystemPointer drives the OS pointer through robotgo.
type SystemPointer struct{}

// Move places the pointer at (x, y).
func (SystemPointer) Move(x, y int) {
	robotgo.Move(x, y)
}

// Click emits a left click, or a double click when double is set.
func (SystemPointer) Click(double bool) {
	robotgo.Click("left", double)
}

// Position returns the current pointer location.
func (SystemPointer) Position() (int, int) {
	return robotgo.Location()
}
