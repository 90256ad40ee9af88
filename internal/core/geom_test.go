package core

import "testing"

func TestRectEdgesOfBlockAtFieldCorner(t *testing.T) {
	// 3x3 obstacle block in the bottom-right corner of a 72x48 field
	r := NewRect(69, 45, 3, 3)

	if r.Right() != 72 {
		t.Errorf("Right() = %d, expected 72", r.Right())
	}
	if r.Bottom() != 48 {
		t.Errorf("Bottom() = %d, expected 48", r.Bottom())
	}
}

func TestClampBlockSize(t *testing.T) {
	tests := []struct {
		name                    string
		val, min, max, expected int
	}{
		{"fits", 3, 1, 72, 3},
		{"zero becomes one", 0, 1, 72, 1},
		{"negative becomes one", -4, 1, 48, 1},
		{"wider than field", 100, 1, 72, 72},
		{"exactly field", 48, 1, 48, 48},
	}

	for _, tc := range tests {
		if got := Clamp(tc.val, tc.min, tc.max); got != tc.expected {
			t.Errorf("%s: Clamp(%d, %d, %d) = %d, expected %d", tc.name, tc.val, tc.min, tc.max, got, tc.expected)
		}
	}
}

func TestAbsCenterOffsets(t *testing.T) {
	// Offsets from the 360x240 center as used by the exclusion check
	tests := []struct{ x, want int }{
		{350 - 360, 10},
		{460 - 360, 100},
		{260 - 360, 100},
		{0, 0},
	}
	for _, tc := range tests {
		if got := Abs(tc.x); got != tc.want {
			t.Errorf("Abs(%d) = %d, expected %d", tc.x, got, tc.want)
		}
	}
}
