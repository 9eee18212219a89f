package input

import (
	"sync"
	"time"

	"pointz/internal/config"
	"pointz/internal/protocol"
)

// Point is an absolute screen position in points.
type Point struct {
	X float64
	Y float64
}

// CursorQuery reads the real cursor position from the OS. Backends that
// cannot or do not query pass nil.
type CursorQuery func() (Point, bool)

// DragEmitter posts one native drag event at an absolute position.
type DragEmitter func(pos Point, button Button) error

// ModifierEmitter posts one native key transition for a modifier.
type ModifierEmitter func(mod Modifier, down bool) error

// Session tracks everything the host remembers between commands: pointer
// position, held button, the last click, the pending drag, and the held
// modifier set. Each sub-state has its own lock so unrelated commands never
// contend; a command that needs several acquires them in a fixed order.
type Session struct {
	timing config.Timing

	posMu sync.Mutex
	pos   *Point

	buttonMu sync.Mutex
	held     *Button

	clickMu   sync.Mutex
	lastClick *clickRecord

	dragMu sync.Mutex
	drag   dragState

	modMu sync.Mutex
	mods  protocol.ModifierKeys
}

type clickRecord struct {
	button uint8
	at     time.Time
	count  uint8
}

type dragState struct {
	pendingX  float64
	pendingY  float64
	lastFlush time.Time
	button    *Button
}

// NewSession creates an empty session. The pointer position stays unknown
// until the first move or click resolves it.
func NewSession(timing config.Timing) *Session {
	return &Session{
		timing: timing,
		drag:   dragState{lastFlush: time.Now()},
	}
}

func (s *Session) fallbackCenter() Point {
	return Point{
		X: s.timing.FallbackScreenWidth / 2,
		Y: s.timing.FallbackScreenHeight / 2,
	}
}

// AdvancePointer applies a relative delta to the tracked position and
// reports the button held while moving. With no known position the base is
// the query result, or the fallback screen center when query is nil or
// fails. The new position is always recorded.
func (s *Session) AdvancePointer(dx, dy float64, query CursorQuery) (Point, Button, bool) {
	s.posMu.Lock()
	defer s.posMu.Unlock()

	s.buttonMu.Lock()
	var held Button
	dragging := s.held != nil
	if dragging {
		held = *s.held
	}
	s.buttonMu.Unlock()

	var base Point
	switch {
	case s.pos != nil:
		base = *s.pos
	case query != nil:
		if p, ok := query(); ok {
			base = p
		} else {
			base = s.fallbackCenter()
		}
	default:
		base = s.fallbackCenter()
	}

	target := Point{X: base.X + dx, Y: base.Y + dy}
	s.pos = &target
	return target, held, dragging
}

// ResolvePointer returns the last tracked position, establishing the
// fallback screen center as the position when none is known yet.
func (s *Session) ResolvePointer() Point {
	s.posMu.Lock()
	defer s.posMu.Unlock()

	if s.pos != nil {
		return *s.pos
	}
	p := s.fallbackCenter()
	s.pos = &p
	return p
}

// NextClickCount classifies a click as single or double. A second click on
// the same button within the double-click timeout escalates to 2; anything
// else, including a third rapid click, restarts at 1. The click record is
// always overwritten.
func (s *Session) NextClickCount(button uint8) int64 {
	s.clickMu.Lock()
	defer s.clickMu.Unlock()

	now := time.Now()
	count := uint8(1)
	if prev := s.lastClick; prev != nil &&
		prev.button == button &&
		now.Sub(prev.at) <= s.timing.DoubleClickTimeout &&
		prev.count == 1 {
		count = 2
	}
	s.lastClick = &clickRecord{button: button, at: now, count: count}
	return int64(count)
}

// SetHeld records the button about to be pressed.
func (s *Session) SetHeld(b Button) {
	s.buttonMu.Lock()
	s.held = &b
	s.buttonMu.Unlock()
}

// ClearHeld forgets the held button.
func (s *Session) ClearHeld() {
	s.buttonMu.Lock()
	s.held = nil
	s.buttonMu.Unlock()
}

// BeginDrag arms the drag accumulator for a newly held button.
func (s *Session) BeginDrag(b Button) {
	s.dragMu.Lock()
	s.drag.pendingX = 0
	s.drag.pendingY = 0
	s.drag.lastFlush = time.Now()
	s.drag.button = &b
	s.dragMu.Unlock()
}

// EndDrag clears the accumulator after a release. The flush timestamp is
// left alone.
func (s *Session) EndDrag() {
	s.dragMu.Lock()
	s.drag.pendingX = 0
	s.drag.pendingY = 0
	s.drag.button = nil
	s.dragMu.Unlock()
}

// AccumulateDrag adds a move delta to the pending drag and, once the batch
// interval has elapsed since the last flush, emits a single drag event at
// the target position. On emit failure the accumulated delta is kept for the
// next flush.
func (s *Session) AccumulateDrag(dx, dy float64, target Point, button Button, emit DragEmitter) error {
	s.dragMu.Lock()
	defer s.dragMu.Unlock()

	s.drag.pendingX += dx
	s.drag.pendingY += dy

	if time.Since(s.drag.lastFlush) < s.timing.DragBatchInterval {
		return nil
	}
	if err := emit(target, button); err != nil {
		return err
	}
	s.drag.pendingX = 0
	s.drag.pendingY = 0
	s.drag.lastFlush = time.Now()
	return nil
}

// FlushDrag emits any residual drag movement at the last resolved position.
// Called before a button release so the final position always lands, even
// when the batch interval has not elapsed. The flush timestamp is not reset
// here.
func (s *Session) FlushDrag(emit DragEmitter) error {
	s.dragMu.Lock()
	defer s.dragMu.Unlock()

	if s.drag.pendingX == 0 && s.drag.pendingY == 0 {
		return nil
	}
	pos := s.ResolvePointer()
	button := ButtonLeft
	if s.drag.button != nil {
		button = *s.drag.button
	}
	if err := emit(pos, button); err != nil {
		return err
	}
	s.drag.pendingX = 0
	s.drag.pendingY = 0
	return nil
}

// ApplyModifiers reconciles the held modifier set with the desired one,
// pressing every missing modifier before releasing every surplus one, in
// ctrl, alt, shift, meta order. Each transition is recorded as it is
// emitted, so a mid-way failure leaves the set consistent with what was
// actually sent.
func (s *Session) ApplyModifiers(desired protocol.ModifierKeys, emit ModifierEmitter) error {
	s.modMu.Lock()
	defer s.modMu.Unlock()

	states := [...]struct {
		mod  Modifier
		want bool
		have *bool
	}{
		{ModCtrl, desired.Ctrl, &s.mods.Ctrl},
		{ModAlt, desired.Alt, &s.mods.Alt},
		{ModShift, desired.Shift, &s.mods.Shift},
		{ModMeta, desired.Meta, &s.mods.Meta},
	}

	for _, st := range states {
		if st.want && !*st.have {
			if err := emit(st.mod, true); err != nil {
				return err
			}
			*st.have = true
		}
	}
	for _, st := range states {
		if !st.want && *st.have {
			if err := emit(st.mod, false); err != nil {
				return err
			}
			*st.have = false
		}
	}
	return nil
}

// SetModifier forces one modifier to a state by wire name and emits the
// transition unconditionally. Unknown names are ignored. The tracked state
// is updated before emission.
func (s *Session) SetModifier(name string, down bool, emit ModifierEmitter) error {
	mod, ok := ParseModifier(name)
	if !ok {
		return nil
	}

	s.modMu.Lock()
	defer s.modMu.Unlock()

	switch mod {
	case ModCtrl:
		s.mods.Ctrl = down
	case ModAlt:
		s.mods.Alt = down
	case ModShift:
		s.mods.Shift = down
	case ModMeta:
		s.mods.Meta = down
	}
	return emit(mod, down)
}
