//go:build linux

package input

import (
	"math"
	"time"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
	"github.com/jezek/xgb/xtest"
	"github.com/pkg/errors"

	"pointz/internal/protocol"
)

// X11 core protocol event codes accepted by XTEST FakeInput.
const (
	x11KeyPress      = 2
	x11KeyRelease    = 3
	x11ButtonPress   = 4
	x11ButtonRelease = 5
	x11MotionNotify  = 6
)

// Scroll wheel button codes.
const (
	wheelUp    = 4
	wheelDown  = 5
	wheelLeft  = 6
	wheelRight = 7
)

// x11Keycodes maps neutral keys to X11 keycodes (evdev scancode + 8).
var x11Keycodes = map[Key]byte{
	KeyA: 38, KeyB: 56, KeyC: 54, KeyD: 40, KeyE: 26, KeyF: 41, KeyG: 42,
	KeyH: 43, KeyI: 31, KeyJ: 44, KeyK: 45, KeyL: 46, KeyM: 58, KeyN: 57,
	KeyO: 32, KeyP: 33, KeyQ: 24, KeyR: 27, KeyS: 39, KeyT: 28, KeyU: 30,
	KeyV: 55, KeyW: 25, KeyX: 53, KeyY: 29, KeyZ: 52,

	Key0: 19, Key1: 10, Key2: 11, Key3: 12, Key4: 13,
	Key5: 14, Key6: 15, Key7: 16, Key8: 17, Key9: 18,

	KeySpace:        65,
	KeyReturn:       36,
	KeyTab:          23,
	KeyBackspace:    22,
	KeyDot:          60,
	KeyComma:        59,
	KeySemiColon:    47,
	KeySlash:        61,
	KeyMinus:        20,
	KeyEqual:        21,
	KeyLeftBracket:  34,
	KeyRightBracket: 35,
	KeyQuote:        48,
	KeyBackSlash:    51,
	KeyControlLeft:  37,
	KeyAlt:          64,
	KeyShiftLeft:    50,
	KeyMetaLeft:     133,
}

// x11Simulator injects input through the XTEST extension. Moves place the
// cursor directly and every move command produces an event; clicks are plain
// press/release pairs without click counts, and drags are not batched.
type x11Simulator struct {
	session *Session
	conn    *xgb.Conn
	root    xproto.Window
}

// NewSimulator connects to the X server and returns the XTEST backend.
func NewSimulator(session *Session) (Simulator, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, errors.Wrap(err, "connecting to X server")
	}
	if err := xtest.Init(conn); err != nil {
		conn.Close()
		return nil, errors.Wrap(err, "initializing XTEST extension")
	}
	root := xproto.Setup(conn).DefaultScreen(conn).Root
	return &x11Simulator{session: session, conn: conn, root: root}, nil
}

func (s *x11Simulator) fakeInput(eventType, detail byte, x, y int16) error {
	return xtest.FakeInputChecked(s.conn, eventType, detail, 0, s.root, x, y, 0).Check()
}

func (s *x11Simulator) queryPointer() (Point, bool) {
	reply, err := xproto.QueryPointer(s.conn, s.root).Reply()
	if err != nil {
		return Point{}, false
	}
	return Point{X: float64(reply.RootX), Y: float64(reply.RootY)}, true
}

func x11Button(b Button) byte {
	switch b {
	case ButtonRight:
		return 3
	case ButtonMiddle:
		return 2
	default:
		return 1
	}
}

func (s *x11Simulator) emitKey(code byte, down bool) error {
	eventType := byte(x11KeyRelease)
	if down {
		eventType = x11KeyPress
	}
	return s.fakeInput(eventType, code, 0, 0)
}

func (s *x11Simulator) emitModifier(mod Modifier, down bool) error {
	return s.emitKey(x11Keycodes[mod.Key()], down)
}

func (s *x11Simulator) MouseMove(dx, dy float64) error {
	target, _, _ := s.session.AdvancePointer(dx, dy, s.queryPointer)
	if err := s.fakeInput(x11MotionNotify, 0, int16(target.X), int16(target.Y)); err != nil {
		return errors.Wrap(err, "moving pointer")
	}
	return nil
}

func (s *x11Simulator) MouseClick(button uint8) error {
	if err := s.MouseDown(button); err != nil {
		return err
	}
	time.Sleep(s.session.timing.ClickDelay)
	return s.MouseUp(button)
}

func (s *x11Simulator) MouseDown(button uint8) error {
	b := x11Button(LookupButton(button))
	if err := s.fakeInput(x11ButtonPress, b, 0, 0); err != nil {
		return errors.Wrapf(err, "pressing button %d", b)
	}
	return nil
}

func (s *x11Simulator) MouseUp(button uint8) error {
	b := x11Button(LookupButton(button))
	if err := s.fakeInput(x11ButtonRelease, b, 0, 0); err != nil {
		return errors.Wrapf(err, "releasing button %d", b)
	}
	return nil
}

func (s *x11Simulator) MouseScroll(deltaX, deltaY float64) error {
	if deltaY != 0 {
		button := byte(wheelUp)
		if deltaY < 0 {
			button = wheelDown
		}
		if err := s.clickWheel(button, deltaY); err != nil {
			return err
		}
	}
	if deltaX != 0 {
		button := byte(wheelRight)
		if deltaX < 0 {
			button = wheelLeft
		}
		if err := s.clickWheel(button, deltaX); err != nil {
			return err
		}
	}
	return nil
}

// clickWheel presses the wheel button once per whole delta unit, at least
// once for any nonzero delta.
func (s *x11Simulator) clickWheel(button byte, delta float64) error {
	clicks := int(math.Abs(delta))
	if clicks == 0 {
		clicks = 1
	}
	for i := 0; i < clicks; i++ {
		if err := s.fakeInput(x11ButtonPress, button, 0, 0); err != nil {
			return errors.Wrapf(err, "pressing wheel button %d", button)
		}
		if err := s.fakeInput(x11ButtonRelease, button, 0, 0); err != nil {
			return errors.Wrapf(err, "releasing wheel button %d", button)
		}
	}
	return nil
}

func (s *x11Simulator) KeyPress(name string, modifiers protocol.ModifierKeys) error {
	if err := s.session.ApplyModifiers(modifiers, s.emitModifier); err != nil {
		return err
	}
	k, ok := LookupKey(name)
	if !ok {
		return nil
	}
	if err := s.emitKey(x11Keycodes[k], true); err != nil {
		return errors.Wrapf(err, "pressing key %q", name)
	}
	return nil
}

func (s *x11Simulator) KeyRelease(name string) error {
	k, ok := LookupKey(name)
	if !ok {
		return nil
	}
	if err := s.emitKey(x11Keycodes[k], false); err != nil {
		return errors.Wrapf(err, "releasing key %q", name)
	}
	return nil
}

func (s *x11Simulator) ModifierPress(name string) error {
	return s.session.SetModifier(name, true, s.emitModifier)
}

func (s *x11Simulator) ModifierRelease(name string) error {
	return s.session.SetModifier(name, false, s.emitModifier)
}

func (s *x11Simulator) Close() error {
	s.conn.Close()
	return nil
}
