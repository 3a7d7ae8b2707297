package price

import "testing"

func TestParseStrings(t *testing.T) {
	tests := []struct {
		input string
		want  float64
		ok    bool
	}{
		{"$8.99", 8.99, true},
		{"8.99", 8.99, true},
		{"$1,234.56", 1234.56, true},
		{"9.99 - 15.99", 9.99, true},
		{"$16.00 - $27.00", 16.00, true},
		{"$27.00 - $16.00", 16.00, true}, // floor regardless of order
		{"free", 0, false},
		{"", 0, false},
		{"   ", 0, false},
		{"N/A", 0, false},
		{"$", 0, false},
		{"...", 0, false},
		{"see price in cart", 0, false},
		{"save big - only $5", 5, true},
		{"0", 0, true},
	}

	for _, tt := range tests {
		got, ok := Parse(tt.input)
		if ok != tt.ok {
			t.Errorf("Parse(%q): ok = %v, want %v", tt.input, ok, tt.ok)
			continue
		}
		if ok && got != tt.want {
			t.Errorf("Parse(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestParseNumeric(t *testing.T) {
	if v, ok := Parse(12.5); !ok || v != 12.5 {
		t.Errorf("Parse(12.5) = %v, %v", v, ok)
	}
	if v, ok := Parse(7); !ok || v != 7 {
		t.Errorf("Parse(7) = %v, %v", v, ok)
	}
	if _, ok := Parse(-3.5); ok {
		t.Error("negative price should be unparseable")
	}
	if _, ok := Parse(nil); ok {
		t.Error("nil should be unparseable")
	}
}

func TestParseNeverPanics(t *testing.T) {
	inputs := []any{
		"", "-", "--", "- -", "a-b-c", "$-$", "1.2.3.4", "∞", "NaN",
		[]string{"x"}, map[string]any{"price": 1}, struct{}{}, true,
	}
	for _, in := range inputs {
		func() {
			defer func() {
				if r := recover(); r != nil {
					t.Errorf("Parse(%v) panicked: %v", in, r)
				}
			}()
			Parse(in)
		}()
	}
}

func TestResolve(t *testing.T) {
	v, ok := Parse("$8.99")
	p := Resolve(v, ok, PolicyExclude)
	if p == nil || *p != 8.99 {
		t.Fatalf("Resolve parsed price = %v", p)
	}

	v, ok = Parse("free")
	if p := Resolve(v, ok, PolicyExclude); p != nil {
		t.Errorf("PolicyExclude should leave unparseable price absent, got %v", *p)
	}
	if p := Resolve(v, ok, PolicySentinel); p == nil || *p != Sentinel {
		t.Errorf("PolicySentinel should substitute %v, got %v", Sentinel, p)
	}
}

func TestPolicyValid(t *testing.T) {
	if !PolicyExclude.Valid() || !PolicySentinel.Valid() {
		t.Error("defined policies should be valid")
	}
	if Policy("drop").Valid() {
		t.Error("undefined policy should be invalid")
	}
}
