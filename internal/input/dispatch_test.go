package input

import (
	"testing"

	"github.com/edaniels/golog"
	"github.com/pkg/errors"

	"pointz/internal/protocol"
)

type simCall struct {
	op     string
	x, y   float64
	button uint8
	key    string
	mods   protocol.ModifierKeys
	name   string
}

type fakeSimulator struct {
	calls []simCall
	err   error
}

func (f *fakeSimulator) MouseMove(dx, dy float64) error {
	f.calls = append(f.calls, simCall{op: "move", x: dx, y: dy})
	return f.err
}

func (f *fakeSimulator) MouseClick(button uint8) error {
	f.calls = append(f.calls, simCall{op: "click", button: button})
	return f.err
}

func (f *fakeSimulator) MouseDown(button uint8) error {
	f.calls = append(f.calls, simCall{op: "down", button: button})
	return f.err
}

func (f *fakeSimulator) MouseUp(button uint8) error {
	f.calls = append(f.calls, simCall{op: "up", button: button})
	return f.err
}

func (f *fakeSimulator) MouseScroll(deltaX, deltaY float64) error {
	f.calls = append(f.calls, simCall{op: "scroll", x: deltaX, y: deltaY})
	return f.err
}

func (f *fakeSimulator) KeyPress(key string, modifiers protocol.ModifierKeys) error {
	f.calls = append(f.calls, simCall{op: "keypress", key: key, mods: modifiers})
	return f.err
}

func (f *fakeSimulator) KeyRelease(key string) error {
	f.calls = append(f.calls, simCall{op: "keyrelease", key: key})
	return f.err
}

func (f *fakeSimulator) ModifierPress(name string) error {
	f.calls = append(f.calls, simCall{op: "modpress", name: name})
	return f.err
}

func (f *fakeSimulator) ModifierRelease(name string) error {
	f.calls = append(f.calls, simCall{op: "modrelease", name: name})
	return f.err
}

func (f *fakeSimulator) Close() error {
	return nil
}

// TestDispatchRoutes tests that every command variant reaches the matching
// simulator operation with its fields intact
func TestDispatchRoutes(t *testing.T) {
	tests := []struct {
		name string
		cmd  protocol.Command
		want simCall
	}{
		{
			"mouse move",
			protocol.MouseMove{X: 10.5, Y: -5},
			simCall{op: "move", x: 10.5, y: -5},
		},
		{
			"mouse click",
			protocol.MouseClick{Button: 2},
			simCall{op: "click", button: 2},
		},
		{
			"mouse down",
			protocol.MouseDown{Button: 1},
			simCall{op: "down", button: 1},
		},
		{
			"mouse up",
			protocol.MouseUp{Button: 3},
			simCall{op: "up", button: 3},
		},
		{
			"mouse scroll",
			protocol.MouseScroll{DeltaX: 1.5, DeltaY: -3},
			simCall{op: "scroll", x: 1.5, y: -3},
		},
		{
			"key press",
			protocol.KeyPress{Key: "a", Modifiers: protocol.ModifierKeys{Shift: true}},
			simCall{op: "keypress", key: "a", mods: protocol.ModifierKeys{Shift: true}},
		},
		{
			"key release",
			protocol.KeyRelease{Key: "a"},
			simCall{op: "keyrelease", key: "a"},
		},
		{
			"modifier press",
			protocol.ModifierPress{Modifier: "ctrl"},
			simCall{op: "modpress", name: "ctrl"},
		},
		{
			"modifier release",
			protocol.ModifierRelease{Modifier: "cmd"},
			simCall{op: "modrelease", name: "cmd"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeSimulator{}
			d := NewDispatcher(fake, golog.NewTestLogger(t))

			if err := d.Dispatch(tt.cmd); err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			if len(fake.calls) != 1 {
				t.Fatalf("Expected 1 simulator call, got %d", len(fake.calls))
			}
			if fake.calls[0] != tt.want {
				t.Errorf("Expected call %+v, got %+v", tt.want, fake.calls[0])
			}
		})
	}
}

// TestDispatchOrder tests that a command sequence reaches the simulator in
// arrival order
func TestDispatchOrder(t *testing.T) {
	fake := &fakeSimulator{}
	d := NewDispatcher(fake, golog.NewTestLogger(t))

	cmds := []protocol.Command{
		protocol.MouseDown{Button: 1},
		protocol.MouseMove{X: 5, Y: 0},
		protocol.MouseMove{X: 5, Y: 0},
		protocol.MouseMove{X: 5, Y: 0},
		protocol.MouseUp{Button: 1},
	}
	for _, cmd := range cmds {
		if err := d.Dispatch(cmd); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
	}

	wantOps := []string{"down", "move", "move", "move", "up"}
	if len(fake.calls) != len(wantOps) {
		t.Fatalf("Expected %d calls, got %d", len(wantOps), len(fake.calls))
	}
	for i, op := range wantOps {
		if fake.calls[i].op != op {
			t.Errorf("Expected call %d to be %q, got %q", i, op, fake.calls[i].op)
		}
	}
}

// TestDispatchActivityHook tests that the activity callback fires once per
// successful command with the command type
func TestDispatchActivityHook(t *testing.T) {
	fake := &fakeSimulator{}
	d := NewDispatcher(fake, golog.NewTestLogger(t))

	var seen []protocol.CommandType
	d.OnActivity(func(kind protocol.CommandType) {
		seen = append(seen, kind)
	})

	if err := d.Dispatch(protocol.MouseMove{X: 1, Y: 1}); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if err := d.Dispatch(protocol.KeyRelease{Key: "a"}); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(seen) != 2 {
		t.Fatalf("Expected 2 activity callbacks, got %d", len(seen))
	}
	if seen[0] != protocol.CmdMouseMove || seen[1] != protocol.CmdKeyRelease {
		t.Errorf("Expected activity [%s %s], got %v",
			protocol.CmdMouseMove, protocol.CmdKeyRelease, seen)
	}
}

// TestDispatchErrorSkipsHook tests that a failed injection propagates the
// error and does not count as activity
func TestDispatchErrorSkipsHook(t *testing.T) {
	fake := &fakeSimulator{err: errors.New("injection failed")}
	d := NewDispatcher(fake, golog.NewTestLogger(t))

	hooked := 0
	d.OnActivity(func(protocol.CommandType) { hooked++ })

	if err := d.Dispatch(protocol.MouseClick{Button: 1}); err == nil {
		t.Fatal("Expected the simulator error to propagate")
	}
	if hooked != 0 {
		t.Errorf("Expected no activity callback on failure, got %d", hooked)
	}
}

// TestDispatchUnknownCommandPanics tests that a command outside the decoded
// set is treated as corrupted state
func TestDispatchUnknownCommandPanics(t *testing.T) {
	d := NewDispatcher(&fakeSimulator{}, golog.NewTestLogger(t))

	defer func() {
		if recover() == nil {
			t.Error("Expected a panic for a command outside the known set")
		}
	}()
	d.Dispatch(nil)
}
