// Package input turns decoded commands into OS-native pointer and keyboard
// events. The stateful session logic is platform-free; one simulator backend
// per OS performs the actual injection.
package input

import "strings"

// Key is a platform-neutral key identifier. Each backend maps it to its own
// native code (CGKeyCode, X11 keycode, Windows virtual-key).
type Key int

const (
	KeyA Key = iota
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ
	Key0
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9
	KeySpace
	KeyReturn
	KeyTab
	KeyBackspace
	KeyDot
	KeyComma
	KeySemiColon
	KeySlash
	KeyMinus
	KeyEqual
	KeyLeftBracket
	KeyRightBracket
	KeyQuote
	KeyBackSlash
	KeyControlLeft
	KeyAlt
	KeyShiftLeft
	KeyMetaLeft
)

// Button identifies a pointer button.
type Button uint8

const (
	ButtonLeft Button = iota
	ButtonRight
	ButtonMiddle
)

// Modifier identifies a modifier key.
type Modifier int

const (
	ModCtrl Modifier = iota
	ModAlt
	ModShift
	ModMeta
)

// Key returns the physical key a modifier presses. The left-hand variant is
// always used.
func (m Modifier) Key() Key {
	switch m {
	case ModAlt:
		return KeyAlt
	case ModShift:
		return KeyShiftLeft
	case ModMeta:
		return KeyMetaLeft
	default:
		return KeyControlLeft
	}
}

// LookupKey maps a key name from the wire to a Key. Names are single
// characters or control characters as the client sends them; shifted
// punctuation maps onto the unshifted physical key. Unmapped names return
// false and are skipped by callers.
func LookupKey(name string) (Key, bool) {
	switch name {
	case " ":
		return KeySpace, true
	case "\n", "\r":
		return KeyReturn, true
	case "\t":
		return KeyTab, true
	case "\x08", "\x7f":
		return KeyBackspace, true
	case ".", ">":
		return KeyDot, true
	case ",", "<":
		return KeyComma, true
	case ";", ":":
		return KeySemiColon, true
	case "!":
		return Key1, true
	case "?", "/":
		return KeySlash, true
	case "-", "_":
		return KeyMinus, true
	case "=", "+":
		return KeyEqual, true
	case "[", "{":
		return KeyLeftBracket, true
	case "]", "}":
		return KeyRightBracket, true
	case "(":
		return Key9, true
	case ")":
		return Key0, true
	case "'", `"`:
		return KeyQuote, true
	case "\\", "|":
		return KeyBackSlash, true
	}

	runes := []rune(name)
	if len(runes) != 1 {
		return 0, false
	}
	switch c := runes[0]; {
	case c >= 'a' && c <= 'z':
		return KeyA + Key(c-'a'), true
	case c >= 'A' && c <= 'Z':
		return KeyA + Key(c-'A'), true
	case c >= '0' && c <= '9':
		return Key0 + Key(c-'0'), true
	}
	return 0, false
}

// LookupButton maps a wire button id to a Button. Out-of-range ids fall back
// to the left button.
func LookupButton(id uint8) Button {
	switch id {
	case 2:
		return ButtonRight
	case 3:
		return ButtonMiddle
	default:
		return ButtonLeft
	}
}

// ParseModifier maps a modifier name from the wire to a Modifier.
// Case-insensitive; unknown names return false and are silently ignored by
// callers.
func ParseModifier(name string) (Modifier, bool) {
	switch strings.ToLower(name) {
	case "ctrl", "control":
		return ModCtrl, true
	case "alt":
		return ModAlt, true
	case "shift":
		return ModShift, true
	case "meta", "super", "cmd":
		return ModMeta, true
	}
	return 0, false
}
