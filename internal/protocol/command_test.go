package protocol

import "testing"

// TestDecodeMouseMove tests that pointer deltas decode with float precision
func TestDecodeMouseMove(t *testing.T) {
	cmd, err := Decode([]byte(`{"type":"MouseMove","x":100.5,"y":-200.25}`))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	move, ok := cmd.(MouseMove)
	if !ok {
		t.Fatalf("Expected MouseMove, got %T", cmd)
	}
	if move.X != 100.5 {
		t.Errorf("Expected x 100.5, got %v", move.X)
	}
	if move.Y != -200.25 {
		t.Errorf("Expected y -200.25, got %v", move.Y)
	}
}

// TestDecodeMouseMoveIntegerDeltas tests that whole-number deltas are accepted
func TestDecodeMouseMoveIntegerDeltas(t *testing.T) {
	cmd, err := Decode([]byte(`{"type":"MouseMove","x":1,"y":0}`))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	move, ok := cmd.(MouseMove)
	if !ok {
		t.Fatalf("Expected MouseMove, got %T", cmd)
	}
	if move.X != 1 || move.Y != 0 {
		t.Errorf("Expected deltas (1, 0), got (%v, %v)", move.X, move.Y)
	}
}

// TestDecodeButtonCommands tests the three button command variants
func TestDecodeButtonCommands(t *testing.T) {
	cases := []struct {
		name string
		data string
		want Command
	}{
		{"click", `{"type":"MouseClick","button":1}`, MouseClick{Button: 1}},
		{"down", `{"type":"MouseDown","button":2}`, MouseDown{Button: 2}},
		{"up", `{"type":"MouseUp","button":3}`, MouseUp{Button: 3}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cmd, err := Decode([]byte(tc.data))
			if err != nil {
				t.Fatalf("Decode failed: %v", err)
			}
			if cmd != tc.want {
				t.Errorf("Expected %#v, got %#v", tc.want, cmd)
			}
		})
	}
}

// TestDecodeMouseScroll tests scroll delta decoding
func TestDecodeMouseScroll(t *testing.T) {
	cmd, err := Decode([]byte(`{"type":"MouseScroll","delta_x":-3.5,"delta_y":12}`))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	scroll, ok := cmd.(MouseScroll)
	if !ok {
		t.Fatalf("Expected MouseScroll, got %T", cmd)
	}
	if scroll.DeltaX != -3.5 {
		t.Errorf("Expected delta_x -3.5, got %v", scroll.DeltaX)
	}
	if scroll.DeltaY != 12 {
		t.Errorf("Expected delta_y 12, got %v", scroll.DeltaY)
	}
}

// TestDecodeKeyPressWithModifiers tests that a partial modifiers object
// fills unlisted modifiers with false
func TestDecodeKeyPressWithModifiers(t *testing.T) {
	cmd, err := Decode([]byte(`{"type":"KeyPress","key":"a","modifiers":{"ctrl":true,"shift":false}}`))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	press, ok := cmd.(KeyPress)
	if !ok {
		t.Fatalf("Expected KeyPress, got %T", cmd)
	}
	if press.Key != "a" {
		t.Errorf("Expected key 'a', got %q", press.Key)
	}
	if !press.Modifiers.Ctrl {
		t.Error("Expected ctrl to be set")
	}
	if press.Modifiers.Alt || press.Modifiers.Shift || press.Modifiers.Meta {
		t.Errorf("Expected only ctrl set, got %+v", press.Modifiers)
	}
}

// TestDecodeKeyPressDefaultModifiers tests that an absent modifiers object
// decodes to all-false, never an error
func TestDecodeKeyPressDefaultModifiers(t *testing.T) {
	cmd, err := Decode([]byte(`{"type":"KeyPress","key":"a"}`))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	press := cmd.(KeyPress)
	if press.Modifiers != (ModifierKeys{}) {
		t.Errorf("Expected all-false modifiers, got %+v", press.Modifiers)
	}
}

// TestDecodeKeyRelease tests the release variant, with and without the
// optional modifiers field
func TestDecodeKeyRelease(t *testing.T) {
	cmd, err := Decode([]byte(`{"type":"KeyRelease","key":"Q"}`))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if rel, ok := cmd.(KeyRelease); !ok || rel.Key != "Q" {
		t.Errorf("Expected KeyRelease for 'Q', got %#v", cmd)
	}

	cmd, err = Decode([]byte(`{"type":"KeyRelease","key":"q","modifiers":{"meta":true}}`))
	if err != nil {
		t.Fatalf("Decode with modifiers failed: %v", err)
	}
	if rel := cmd.(KeyRelease); !rel.Modifiers.Meta {
		t.Errorf("Expected meta modifier carried through, got %+v", rel.Modifiers)
	}
}

// TestDecodeModifierCommands tests modifier press/release decoding
func TestDecodeModifierCommands(t *testing.T) {
	cmd, err := Decode([]byte(`{"type":"ModifierPress","modifier":"ctrl"}`))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if press, ok := cmd.(ModifierPress); !ok || press.Modifier != "ctrl" {
		t.Errorf("Expected ModifierPress for ctrl, got %#v", cmd)
	}

	cmd, err = Decode([]byte(`{"type":"ModifierRelease","modifier":"Meta"}`))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if rel, ok := cmd.(ModifierRelease); !ok || rel.Modifier != "Meta" {
		t.Errorf("Expected ModifierRelease for Meta, got %#v", cmd)
	}
}

// TestDecodeIgnoresExtraFields tests that unknown fields do not fail decode
func TestDecodeIgnoresExtraFields(t *testing.T) {
	cmd, err := Decode([]byte(`{"type":"MouseClick","button":1,"ts":123456,"source":"phone"}`))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if cmd != (MouseClick{Button: 1}) {
		t.Errorf("Expected MouseClick button 1, got %#v", cmd)
	}
}

// TestDecodeRejectsMalformed tests that bad datagrams fail decode entirely
func TestDecodeRejectsMalformed(t *testing.T) {
	cases := []struct {
		name string
		data string
	}{
		{"unknown type", `{"type":"InvalidCommand"}`},
		{"no type", `{"button":1}`},
		{"not json", `DISCOVER`},
		{"missing button", `{"type":"MouseClick"}`},
		{"string button", `{"type":"MouseClick","button":"1"}`},
		{"fractional button", `{"type":"MouseClick","button":1.5}`},
		{"oversized button", `{"type":"MouseClick","button":300}`},
		{"missing x", `{"type":"MouseMove","y":2}`},
		{"string delta", `{"type":"MouseMove","x":"10","y":2}`},
		{"missing key", `{"type":"KeyPress"}`},
		{"missing scroll delta", `{"type":"MouseScroll","delta_x":1}`},
		{"missing modifier", `{"type":"ModifierPress"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if cmd, err := Decode([]byte(tc.data)); err == nil {
				t.Errorf("Expected decode error, got %#v", cmd)
			}
		})
	}
}
