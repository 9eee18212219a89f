//go:build darwin

package input

/*
#cgo LDFLAGS: -framework CoreGraphics -framework CoreFoundation
#include <CoreGraphics/CoreGraphics.h>

static int postMouse(uint32_t type, double x, double y, uint32_t button, int64_t clickState, int withClickState) {
	CGEventRef event = CGEventCreateMouseEvent(NULL, (CGEventType)type,
		CGPointMake(x, y), (CGMouseButton)button);
	if (event == NULL) {
		return -1;
	}
	if (withClickState) {
		CGEventSetIntegerValueField(event, kCGMouseEventClickState, clickState);
	}
	CGEventPost(kCGHIDEventTap, event);
	CFRelease(event);
	return 0;
}

static int postMouseAtCursor(uint32_t type, uint32_t button) {
	CGEventRef probe = CGEventCreate(NULL);
	if (probe == NULL) {
		return -1;
	}
	CGPoint where = CGEventGetLocation(probe);
	CFRelease(probe);
	return postMouse(type, where.x, where.y, button, 0, 0);
}

static int postScrollWheel(int32_t vertical, int32_t horizontal) {
	CGEventRef event = CGEventCreateScrollWheelEvent(NULL, kCGScrollEventUnitPixel,
		2, vertical, horizontal);
	if (event == NULL) {
		return -1;
	}
	CGEventPost(kCGHIDEventTap, event);
	CFRelease(event);
	return 0;
}

static int postKey(uint16_t code, int down) {
	CGEventRef event = CGEventCreateKeyboardEvent(NULL, (CGKeyCode)code, down != 0);
	if (event == NULL) {
		return -1;
	}
	CGEventPost(kCGHIDEventTap, event);
	CFRelease(event);
	return 0;
}
*/
import "C"

import (
	"time"

	"github.com/pkg/errors"

	"pointz/internal/protocol"
)

// CGEventType values posted by this backend.
const (
	cgLeftMouseDown      = 1
	cgLeftMouseUp        = 2
	cgRightMouseDown     = 3
	cgRightMouseUp       = 4
	cgMouseMoved         = 5
	cgLeftMouseDragged   = 6
	cgRightMouseDragged  = 7
	cgMiddleMouseDragged = 8
	cgOtherMouseDown     = 25
	cgOtherMouseUp       = 26
)

// CGMouseButton indices.
const (
	cgButtonLeft   = 0
	cgButtonRight  = 1
	cgButtonCenter = 2
)

// cgKeycodes maps neutral keys to macOS virtual keycodes (ANSI layout).
var cgKeycodes = map[Key]uint16{
	KeyA: 0, KeyS: 1, KeyD: 2, KeyF: 3, KeyH: 4, KeyG: 5,
	KeyZ: 6, KeyX: 7, KeyC: 8, KeyV: 9, KeyB: 11,
	KeyQ: 12, KeyW: 13, KeyE: 14, KeyR: 15, KeyY: 16, KeyT: 17,
	Key1: 18, Key2: 19, Key3: 20, Key4: 21, Key6: 22, Key5: 23,
	KeyEqual: 24, Key9: 25, Key7: 26, KeyMinus: 27, Key8: 28, Key0: 29,
	KeyRightBracket: 30, KeyO: 31, KeyU: 32, KeyLeftBracket: 33,
	KeyI: 34, KeyP: 35, KeyReturn: 36, KeyL: 37, KeyJ: 38, KeyQuote: 39,
	KeyK: 40, KeySemiColon: 41, KeyBackSlash: 42, KeyComma: 43,
	KeySlash: 44, KeyN: 45, KeyM: 46, KeyDot: 47, KeyTab: 48,
	KeySpace: 49, KeyBackspace: 51,
	KeyMetaLeft: 55, KeyShiftLeft: 56, KeyAlt: 58, KeyControlLeft: 59,
}

// cgSimulator injects input through CoreGraphics CGEvent posting. It is the
// backend that carries click counts on press/release events and batches
// drags; the cursor position is never queried, only tracked.
type cgSimulator struct {
	session *Session
}

// NewSimulator returns the CoreGraphics backend. Events post to the HID tap
// so the OS treats them like hardware input.
func NewSimulator(session *Session) (Simulator, error) {
	return &cgSimulator{session: session}, nil
}

func cgButtonIndex(b Button) int {
	switch b {
	case ButtonRight:
		return cgButtonRight
	case ButtonMiddle:
		return cgButtonCenter
	default:
		return cgButtonLeft
	}
}

func cgPressType(b Button) int {
	switch b {
	case ButtonRight:
		return cgRightMouseDown
	case ButtonMiddle:
		return cgOtherMouseDown
	default:
		return cgLeftMouseDown
	}
}

func cgReleaseType(b Button) int {
	switch b {
	case ButtonRight:
		return cgRightMouseUp
	case ButtonMiddle:
		return cgOtherMouseUp
	default:
		return cgLeftMouseUp
	}
}

func cgDragType(b Button) int {
	switch b {
	case ButtonRight:
		return cgRightMouseDragged
	case ButtonMiddle:
		return cgMiddleMouseDragged
	default:
		return cgLeftMouseDragged
	}
}

func postMouseEvent(typ int, pos Point, button int) error {
	if C.postMouse(C.uint32_t(typ), C.double(pos.X), C.double(pos.Y), C.uint32_t(button), 0, 0) != 0 {
		return errors.Errorf("failed to create mouse event (type %d)", typ)
	}
	return nil
}

func postClickEvent(typ int, pos Point, button int, count int64) error {
	if C.postMouse(C.uint32_t(typ), C.double(pos.X), C.double(pos.Y), C.uint32_t(button), C.int64_t(count), 1) != 0 {
		return errors.Errorf("failed to create mouse button event (type %d)", typ)
	}
	return nil
}

func postCursorEvent(typ, button int) error {
	if C.postMouseAtCursor(C.uint32_t(typ), C.uint32_t(button)) != 0 {
		return errors.Errorf("failed to create mouse button event (type %d)", typ)
	}
	return nil
}

func postScrollEvent(vertical, horizontal int32) error {
	if C.postScrollWheel(C.int32_t(vertical), C.int32_t(horizontal)) != 0 {
		return errors.New("failed to create scroll event")
	}
	return nil
}

func postKeyEvent(code uint16, down bool) error {
	d := 0
	if down {
		d = 1
	}
	if C.postKey(C.uint16_t(code), C.int(d)) != 0 {
		return errors.Errorf("failed to create key event (code %d)", code)
	}
	return nil
}

// emitDrag posts one drag event. The drag event types already encode the
// button, so the button index field stays at left.
func (s *cgSimulator) emitDrag(pos Point, button Button) error {
	return postMouseEvent(cgDragType(button), pos, cgButtonLeft)
}

func (s *cgSimulator) emitModifier(mod Modifier, down bool) error {
	return postKeyEvent(cgKeycodes[mod.Key()], down)
}

func (s *cgSimulator) MouseMove(dx, dy float64) error {
	target, button, dragging := s.session.AdvancePointer(dx, dy, nil)
	if dragging {
		return s.session.AccumulateDrag(dx, dy, target, button, s.emitDrag)
	}
	return postMouseEvent(cgMouseMoved, target, cgButtonLeft)
}

func (s *cgSimulator) MouseClick(button uint8) error {
	b := LookupButton(button)
	count := s.session.NextClickCount(button)
	pos := s.session.ResolvePointer()

	s.session.SetHeld(b)
	if err := postClickEvent(cgPressType(b), pos, cgButtonIndex(b), count); err != nil {
		return err
	}
	time.Sleep(s.session.timing.ClickDelay)
	s.session.ClearHeld()
	return postClickEvent(cgReleaseType(b), pos, cgButtonIndex(b), count)
}

func (s *cgSimulator) MouseDown(button uint8) error {
	b := LookupButton(button)
	s.session.SetHeld(b)
	s.session.BeginDrag(b)
	return postCursorEvent(cgPressType(b), cgButtonIndex(b))
}

func (s *cgSimulator) MouseUp(button uint8) error {
	b := LookupButton(button)
	if err := s.session.FlushDrag(s.emitDrag); err != nil {
		return err
	}
	s.session.ClearHeld()
	s.session.EndDrag()
	return postCursorEvent(cgReleaseType(b), cgButtonIndex(b))
}

func (s *cgSimulator) MouseScroll(deltaX, deltaY float64) error {
	if deltaY != 0 {
		if err := postScrollEvent(int32(deltaY), 0); err != nil {
			return err
		}
	}
	if deltaX != 0 {
		return postScrollEvent(0, int32(deltaX))
	}
	return nil
}

func (s *cgSimulator) KeyPress(name string, modifiers protocol.ModifierKeys) error {
	if err := s.session.ApplyModifiers(modifiers, s.emitModifier); err != nil {
		return err
	}
	k, ok := LookupKey(name)
	if !ok {
		return nil
	}
	return postKeyEvent(cgKeycodes[k], true)
}

func (s *cgSimulator) KeyRelease(name string) error {
	k, ok := LookupKey(name)
	if !ok {
		return nil
	}
	return postKeyEvent(cgKeycodes[k], false)
}

func (s *cgSimulator) ModifierPress(name string) error {
	return s.session.SetModifier(name, true, s.emitModifier)
}

func (s *cgSimulator) ModifierRelease(name string) error {
	return s.session.SetModifier(name, false, s.emitModifier)
}

func (s *cgSimulator) Close() error {
	return nil
}
