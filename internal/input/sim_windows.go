//go:build windows

package input

import (
	"time"
	"unsafe"

	"github.com/pkg/errors"
	"golang.org/x/sys/windows"

	"pointz/internal/protocol"
)

var (
	user32           = windows.NewLazySystemDLL("user32.dll")
	procSendInput    = user32.NewProc("SendInput")
	procGetCursorPos = user32.NewProc("GetCursorPos")
	procSetCursorPos = user32.NewProc("SetCursorPos")
)

const (
	INPUT_MOUSE    = 0
	INPUT_KEYBOARD = 1

	MOUSEEVENTF_LEFTDOWN   = 0x0002
	MOUSEEVENTF_LEFTUP     = 0x0004
	MOUSEEVENTF_RIGHTDOWN  = 0x0008
	MOUSEEVENTF_RIGHTUP    = 0x0010
	MOUSEEVENTF_MIDDLEDOWN = 0x0020
	MOUSEEVENTF_MIDDLEUP   = 0x0040
	MOUSEEVENTF_WHEEL      = 0x0800
	MOUSEEVENTF_HWHEEL     = 0x1000

	KEYEVENTF_KEYUP = 0x0002

	WHEEL_DELTA = 120
)

const (
	VK_BACK    = 0x08
	VK_TAB     = 0x09
	VK_RETURN  = 0x0D
	VK_SHIFT   = 0x10
	VK_CONTROL = 0x11
	VK_MENU    = 0x12
	VK_SPACE   = 0x20
	VK_LWIN    = 0x5B

	VK_OEM_1      = 0xBA
	VK_OEM_PLUS   = 0xBB
	VK_OEM_COMMA  = 0xBC
	VK_OEM_MINUS  = 0xBD
	VK_OEM_PERIOD = 0xBE
	VK_OEM_2      = 0xBF
	VK_OEM_4      = 0xDB
	VK_OEM_5      = 0xDC
	VK_OEM_6      = 0xDD
	VK_OEM_7      = 0xDE
)

type POINT struct {
	X int32
	Y int32
}

type MOUSEINPUT struct {
	Dx          int32
	Dy          int32
	MouseData   uint32
	DwFlags     uint32
	Time        uint32
	DwExtraInfo uintptr
}

type KEYBDINPUT struct {
	WVk         uint16
	WScan       uint16
	DwFlags     uint32
	Time        uint32
	DwExtraInfo uintptr
}

// mouseINPUT and keybdINPUT are the C INPUT struct with the union collapsed
// to one arm. The 4 bytes after Type pad the union to its 8-byte alignment;
// both structs are 40 bytes on 64-bit Windows, matching sizeof(INPUT).
type mouseINPUT struct {
	Type uint32
	_    [4]byte
	Mi   MOUSEINPUT
}

type keybdINPUT struct {
	Type uint32
	_    [4]byte
	Ki   KEYBDINPUT
	_    [8]byte
}

// vkCodes maps neutral keys to Windows virtual-key codes.
var vkCodes = map[Key]uint16{
	KeySpace:        VK_SPACE,
	KeyReturn:       VK_RETURN,
	KeyTab:          VK_TAB,
	KeyBackspace:    VK_BACK,
	KeyDot:          VK_OEM_PERIOD,
	KeyComma:        VK_OEM_COMMA,
	KeySemiColon:    VK_OEM_1,
	KeySlash:        VK_OEM_2,
	KeyMinus:        VK_OEM_MINUS,
	KeyEqual:        VK_OEM_PLUS,
	KeyLeftBracket:  VK_OEM_4,
	KeyRightBracket: VK_OEM_6,
	KeyQuote:        VK_OEM_7,
	KeyBackSlash:    VK_OEM_5,
	KeyControlLeft:  VK_CONTROL,
	KeyAlt:          VK_MENU,
	KeyShiftLeft:    VK_SHIFT,
	KeyMetaLeft:     VK_LWIN,
}

func init() {
	for i := 0; i < 26; i++ {
		vkCodes[KeyA+Key(i)] = uint16('A' + i)
	}
	for i := 0; i < 10; i++ {
		vkCodes[Key0+Key(i)] = uint16('0' + i)
	}
}

// winSimulator injects input through SendInput. Moves place the cursor
// directly and every move command produces an event; clicks are plain
// press/release pairs without click counts, and drags are not batched.
type winSimulator struct {
	session *Session
}

// NewSimulator returns the SendInput backend.
func NewSimulator(session *Session) (Simulator, error) {
	return &winSimulator{session: session}, nil
}

func queryCursor() (Point, bool) {
	var pt POINT
	ret, _, _ := procGetCursorPos.Call(uintptr(unsafe.Pointer(&pt)))
	if ret == 0 {
		return Point{}, false
	}
	return Point{X: float64(pt.X), Y: float64(pt.Y)}, true
}

func sendMouseInput(flags, mouseData uint32) {
	input := mouseINPUT{Type: INPUT_MOUSE}
	input.Mi.DwFlags = flags
	input.Mi.MouseData = mouseData
	procSendInput.Call(1, uintptr(unsafe.Pointer(&input)), unsafe.Sizeof(input))
}

func sendKeyInput(vk uint16, flags uint32) {
	input := keybdINPUT{Type: INPUT_KEYBOARD}
	input.Ki.WVk = vk
	input.Ki.DwFlags = flags
	procSendInput.Call(1, uintptr(unsafe.Pointer(&input)), unsafe.Sizeof(input))
}

func buttonDownFlags(b Button) uint32 {
	switch b {
	case ButtonRight:
		return MOUSEEVENTF_RIGHTDOWN
	case ButtonMiddle:
		return MOUSEEVENTF_MIDDLEDOWN
	default:
		return MOUSEEVENTF_LEFTDOWN
	}
}

func buttonUpFlags(b Button) uint32 {
	switch b {
	case ButtonRight:
		return MOUSEEVENTF_RIGHTUP
	case ButtonMiddle:
		return MOUSEEVENTF_MIDDLEUP
	default:
		return MOUSEEVENTF_LEFTUP
	}
}

func emitModifierKey(mod Modifier, down bool) error {
	var flags uint32
	if !down {
		flags = KEYEVENTF_KEYUP
	}
	sendKeyInput(vkCodes[mod.Key()], flags)
	return nil
}

func (s *winSimulator) MouseMove(dx, dy float64) error {
	target, _, _ := s.session.AdvancePointer(dx, dy, queryCursor)
	ret, _, callErr := procSetCursorPos.Call(uintptr(int32(target.X)), uintptr(int32(target.Y)))
	if ret == 0 {
		return errors.Wrap(callErr, "setting cursor position")
	}
	return nil
}

func (s *winSimulator) MouseClick(button uint8) error {
	if err := s.MouseDown(button); err != nil {
		return err
	}
	time.Sleep(s.session.timing.ClickDelay)
	return s.MouseUp(button)
}

func (s *winSimulator) MouseDown(button uint8) error {
	sendMouseInput(buttonDownFlags(LookupButton(button)), 0)
	return nil
}

func (s *winSimulator) MouseUp(button uint8) error {
	sendMouseInput(buttonUpFlags(LookupButton(button)), 0)
	return nil
}

func (s *winSimulator) MouseScroll(deltaX, deltaY float64) error {
	if deltaY != 0 {
		sendMouseInput(MOUSEEVENTF_WHEEL, uint32(int32(deltaY*WHEEL_DELTA)))
	}
	if deltaX != 0 {
		sendMouseInput(MOUSEEVENTF_HWHEEL, uint32(int32(deltaX*WHEEL_DELTA)))
	}
	return nil
}

func (s *winSimulator) KeyPress(name string, modifiers protocol.ModifierKeys) error {
	if err := s.session.ApplyModifiers(modifiers, emitModifierKey); err != nil {
		return err
	}
	k, ok := LookupKey(name)
	if !ok {
		return nil
	}
	sendKeyInput(vkCodes[k], 0)
	return nil
}

func (s *winSimulator) KeyRelease(name string) error {
	k, ok := LookupKey(name)
	if !ok {
		return nil
	}
	sendKeyInput(vkCodes[k], KEYEVENTF_KEYUP)
	return nil
}

func (s *winSimulator) ModifierPress(name string) error {
	return s.session.SetModifier(name, true, emitModifierKey)
}

func (s *winSimulator) ModifierRelease(name string) error {
	return s.session.SetModifier(name, false, emitModifierKey)
}

func (s *winSimulator) Close() error {
	return nil
}
