package input

import "testing"

// TestLookupKeyNamed tests the named and punctuation key mappings
func TestLookupKeyNamed(t *testing.T) {
	tests := []struct {
		name string
		want Key
	}{
		{" ", KeySpace},
		{"\n", KeyReturn},
		{"\r", KeyReturn},
		{"\t", KeyTab},
		{"\x08", KeyBackspace},
		{"\x7f", KeyBackspace},
		{".", KeyDot},
		{">", KeyDot},
		{",", KeyComma},
		{"<", KeyComma},
		{";", KeySemiColon},
		{":", KeySemiColon},
		{"!", Key1},
		{"?", KeySlash},
		{"/", KeySlash},
		{"-", KeyMinus},
		{"_", KeyMinus},
		{"=", KeyEqual},
		{"+", KeyEqual},
		{"[", KeyLeftBracket},
		{"{", KeyLeftBracket},
		{"]", KeyRightBracket},
		{"}", KeyRightBracket},
		{"(", Key9},
		{")", Key0},
		{"'", KeyQuote},
		{`"`, KeyQuote},
		{`\`, KeyBackSlash},
		{"|", KeyBackSlash},
	}

	for _, tt := range tests {
		got, ok := LookupKey(tt.name)
		if !ok {
			t.Errorf("Expected %q to map to a key, got none", tt.name)
			continue
		}
		if got != tt.want {
			t.Errorf("Expected %q to map to key %d, got %d", tt.name, tt.want, got)
		}
	}
}

// TestLookupKeyLettersAndDigits tests that letters map case-insensitively
// and digits map to the number row
func TestLookupKeyLettersAndDigits(t *testing.T) {
	for c := byte('a'); c <= 'z'; c++ {
		lower, ok := LookupKey(string(c))
		if !ok {
			t.Fatalf("Expected %q to map to a key, got none", string(c))
		}
		upper, ok := LookupKey(string(c - 'a' + 'A'))
		if !ok {
			t.Fatalf("Expected %q to map to a key, got none", string(c-'a'+'A'))
		}
		if lower != upper {
			t.Errorf("Expected %q and its upper case to map to the same key, got %d and %d",
				string(c), lower, upper)
		}
		if want := KeyA + Key(c-'a'); lower != want {
			t.Errorf("Expected %q to map to key %d, got %d", string(c), want, lower)
		}
	}

	for c := byte('0'); c <= '9'; c++ {
		got, ok := LookupKey(string(c))
		if !ok {
			t.Fatalf("Expected %q to map to a key, got none", string(c))
		}
		if want := Key0 + Key(c-'0'); got != want {
			t.Errorf("Expected %q to map to key %d, got %d", string(c), want, got)
		}
	}
}

// TestLookupKeyUnmapped tests that unknown names report no mapping
func TestLookupKeyUnmapped(t *testing.T) {
	for _, name := range []string{"", "ab", "F1", "Escape", "é", "§"} {
		if _, ok := LookupKey(name); ok {
			t.Errorf("Expected %q to have no mapping", name)
		}
	}
}

// TestLookupButton tests the wire button ids and the left-button fallback
func TestLookupButton(t *testing.T) {
	tests := []struct {
		id   uint8
		want Button
	}{
		{1, ButtonLeft},
		{2, ButtonRight},
		{3, ButtonMiddle},
		{0, ButtonLeft},
		{4, ButtonLeft},
		{255, ButtonLeft},
	}

	for _, tt := range tests {
		if got := LookupButton(tt.id); got != tt.want {
			t.Errorf("Expected button id %d to map to %d, got %d", tt.id, tt.want, got)
		}
	}
}

// TestParseModifier tests the modifier aliases and case handling
func TestParseModifier(t *testing.T) {
	tests := []struct {
		name string
		want Modifier
	}{
		{"ctrl", ModCtrl},
		{"control", ModCtrl},
		{"Ctrl", ModCtrl},
		{"CONTROL", ModCtrl},
		{"alt", ModAlt},
		{"shift", ModShift},
		{"Shift", ModShift},
		{"meta", ModMeta},
		{"super", ModMeta},
		{"cmd", ModMeta},
		{"CMD", ModMeta},
	}

	for _, tt := range tests {
		got, ok := ParseModifier(tt.name)
		if !ok {
			t.Errorf("Expected %q to parse, got no mapping", tt.name)
			continue
		}
		if got != tt.want {
			t.Errorf("Expected %q to parse to %d, got %d", tt.name, tt.want, got)
		}
	}

	for _, name := range []string{"", "hyper", "win", "option"} {
		if _, ok := ParseModifier(name); ok {
			t.Errorf("Expected %q to have no mapping", name)
		}
	}
}

// TestModifierKey tests that each modifier presses its left-hand key
func TestModifierKey(t *testing.T) {
	tests := []struct {
		mod  Modifier
		want Key
	}{
		{ModCtrl, KeyControlLeft},
		{ModAlt, KeyAlt},
		{ModShift, KeyShiftLeft},
		{ModMeta, KeyMetaLeft},
	}

	for _, tt := range tests {
		if got := tt.mod.Key(); got != tt.want {
			t.Errorf("Expected modifier %d to press key %d, got %d", tt.mod, tt.want, got)
		}
	}
}
