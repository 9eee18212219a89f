package protocol

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// CommandType is the wire value of the "type" discriminator on a command
// datagram.
type CommandType string

const (
	CmdMouseMove       CommandType = "MouseMove"
	CmdMouseClick      CommandType = "MouseClick"
	CmdMouseDown       CommandType = "MouseDown"
	CmdMouseUp         CommandType = "MouseUp"
	CmdMouseScroll     CommandType = "MouseScroll"
	CmdKeyPress        CommandType = "KeyPress"
	CmdKeyRelease      CommandType = "KeyRelease"
	CmdModifierPress   CommandType = "ModifierPress"
	CmdModifierRelease CommandType = "ModifierRelease"
)

// Command is one decoded input instruction from the remote client. The set
// of commands is closed: every variant lives in this package and a datagram
// that matches none of them fails to decode.
type Command interface {
	isCommand()
}

// ModifierKeys is the modifier state attached to a key press. Absent fields
// decode to false.
type ModifierKeys struct {
	Ctrl  bool `json:"ctrl"`
	Alt   bool `json:"alt"`
	Shift bool `json:"shift"`
	Meta  bool `json:"meta"`
}

// MouseMove carries a relative pointer delta in points.
type MouseMove struct {
	X float64
	Y float64
}

// MouseClick is a full press/release of a button (1 left, 2 right, 3 middle).
type MouseClick struct {
	Button uint8
}

// MouseDown holds a button down until a matching MouseUp arrives.
type MouseDown struct {
	Button uint8
}

// MouseUp releases a held button.
type MouseUp struct {
	Button uint8
}

// MouseScroll carries wheel deltas for both axes.
type MouseScroll struct {
	DeltaX float64
	DeltaY float64
}

// KeyPress presses a named key with the given modifiers held.
type KeyPress struct {
	Key       string
	Modifiers ModifierKeys
}

// KeyRelease releases a named key. The wire schema carries a modifiers
// field here too; it is accepted and ignored downstream.
type KeyRelease struct {
	Key       string
	Modifiers ModifierKeys
}

// ModifierPress holds a modifier key down by name.
type ModifierPress struct {
	Modifier string
}

// ModifierRelease releases a modifier key by name.
type ModifierRelease struct {
	Modifier string
}

func (MouseMove) isCommand()       {}
func (MouseClick) isCommand()      {}
func (MouseDown) isCommand()       {}
func (MouseUp) isCommand()         {}
func (MouseScroll) isCommand()     {}
func (KeyPress) isCommand()        {}
func (KeyRelease) isCommand()      {}
func (ModifierPress) isCommand()   {}
func (ModifierRelease) isCommand() {}

// envelope is the superset of all command fields. Pointer fields distinguish
// absent from zero so required fields can be enforced per variant.
type envelope struct {
	Type      CommandType   `json:"type"`
	X         *float64      `json:"x"`
	Y         *float64      `json:"y"`
	Button    *uint8        `json:"button"`
	DeltaX    *float64      `json:"delta_x"`
	DeltaY    *float64      `json:"delta_y"`
	Key       *string       `json:"key"`
	Modifiers *ModifierKeys `json:"modifiers"`
	Modifier  *string       `json:"modifier"`
}

// Decode parses one command datagram. It returns an error for an unknown
// type tag, a missing required field, or a field of the wrong JSON type;
// extra fields are ignored. A non-nil Command is always fully populated.
func Decode(data []byte) (Command, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, errors.Wrap(err, "unmarshaling command")
	}

	switch env.Type {
	case CmdMouseMove:
		if env.X == nil || env.Y == nil {
			return nil, errors.Errorf("%s: missing x or y", env.Type)
		}
		return MouseMove{X: *env.X, Y: *env.Y}, nil
	case CmdMouseClick, CmdMouseDown, CmdMouseUp:
		if env.Button == nil {
			return nil, errors.Errorf("%s: missing button", env.Type)
		}
		switch env.Type {
		case CmdMouseClick:
			return MouseClick{Button: *env.Button}, nil
		case CmdMouseDown:
			return MouseDown{Button: *env.Button}, nil
		default:
			return MouseUp{Button: *env.Button}, nil
		}
	case CmdMouseScroll:
		if env.DeltaX == nil || env.DeltaY == nil {
			return nil, errors.Errorf("%s: missing delta_x or delta_y", env.Type)
		}
		return MouseScroll{DeltaX: *env.DeltaX, DeltaY: *env.DeltaY}, nil
	case CmdKeyPress, CmdKeyRelease:
		if env.Key == nil {
			return nil, errors.Errorf("%s: missing key", env.Type)
		}
		var mods ModifierKeys
		if env.Modifiers != nil {
			mods = *env.Modifiers
		}
		if env.Type == CmdKeyPress {
			return KeyPress{Key: *env.Key, Modifiers: mods}, nil
		}
		return KeyRelease{Key: *env.Key, Modifiers: mods}, nil
	case CmdModifierPress, CmdModifierRelease:
		if env.Modifier == nil {
			return nil, errors.Errorf("%s: missing modifier", env.Type)
		}
		if env.Type == CmdModifierPress {
			return ModifierPress{Modifier: *env.Modifier}, nil
		}
		return ModifierRelease{Modifier: *env.Modifier}, nil
	default:
		return nil, errors.Errorf("unknown command type %q", env.Type)
	}
}
