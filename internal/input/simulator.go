package input

import "pointz/internal/protocol"

// Simulator injects OS-native input events for decoded commands. One
// implementation exists per platform, selected at build time; all of them
// are driven strictly sequentially by the dispatcher.
type Simulator interface {
	// MouseMove applies a relative pointer delta, dragging if a button is
	// held.
	MouseMove(dx, dy float64) error

	// MouseClick presses and releases a button with a short delay between.
	MouseClick(button uint8) error

	// MouseDown holds a button down.
	MouseDown(button uint8) error

	// MouseUp releases a held button.
	MouseUp(button uint8) error

	// MouseScroll turns the wheel on either or both axes.
	MouseScroll(deltaX, deltaY float64) error

	// KeyPress reconciles held modifiers to the given set, then presses the
	// named key. Unmapped key names press nothing but the modifiers still
	// apply.
	KeyPress(key string, modifiers protocol.ModifierKeys) error

	// KeyRelease releases the named key. Held modifiers are not touched.
	KeyRelease(key string) error

	// ModifierPress holds a modifier down by wire name.
	ModifierPress(name string) error

	// ModifierRelease releases a modifier by wire name.
	ModifierRelease(name string) error

	// Close releases any OS resources held by the backend.
	Close() error
}
