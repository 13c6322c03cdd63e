//go:build windows

package action

import (
	"time"
	"unsafe"

	"golang.org/x/sys/windows"
)

const (
	mouseeventfLeftDown = 0x0002
	mouseeventfLeftUp   = 0x0004
)

var (
	user32           = windows.NewLazySystemDLL("user32.dll")
	procSetCursorPos = user32.NewProc("SetCursorPos")
	procGetCursorPos = user32.NewProc("GetCursorPos")
	procMouseEvent   = user32.NewProc("mouse_event")
)

// SystemPointer drives the OS pointer through the Win32 API.
type SystemPointer struct{}

// Move sets the cursor position with SetCursorPos.
func (SystemPointer) Move(x, y int) {
	_, _, _ = procSetCursorPos.Call(uintptr(x), uintptr(y))
}

// Click sends a left button press and release, twice when double is set.
func (SystemPointer) Click(double bool) {
	n := 1
	if double {
		n = 2
	}
	for i := 0; i < n; i++ {
		if i > 0 {
			time.Sleep(doubleClickGap)
		}
		_, _, _ = procMouseEvent.Call(mouseeventfLeftDown, 0, 0, 0, 0)
		time.Sleep(pressDuration)
		_, _, _ = procMouseEvent.Call(mouseeventfLeftUp, 0, 0, 0, 0)
	}
}

// Position reads the cursor with GetCursorPos. Failures report (0,0).
func (SystemPointer) Position() (int, int) {
	var pt struct{ X, Y int32 }
	if r, _, _ := procGetCursorPos.Call(uintptr(unsafe.Pointer(&pt))); r == 0 {
		return 0, 0
	}
	return int(pt.X), int(pt.Y)
}
