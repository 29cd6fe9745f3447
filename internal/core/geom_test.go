package core

import "testing"

func TestRectEdges(t *testing.T) {
	r := NewRect(5, 10, 20, 15)

	if r.Right() != 25 {
		t.Errorf("Right() = %d, expected 25", r.Right())
	}
	if r.Bottom() != 25 {
		t.Errorf("Bottom() = %d, expected 25", r.Bottom())
	}
}

func TestSpanContains(t *testing.T) {
	s := SpanAt(10, 2)

	tests := []struct {
		name     string
		v        float64
		expected bool
	}{
		{"start is inside", 10, true},
		{"middle", 11.5, true},
		{"end is exclusive", 12, false},
		{"before", 9.99, false},
		{"after", 13, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := s.Contains(tc.v); got != tc.expected {
				t.Errorf("Contains(%v) = %v, expected %v", tc.v, got, tc.expected)
			}
		})
	}
}

func TestSpanOverlaps(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Span
		expected bool
	}{
		{"overlapping", SpanAt(0, 6), SpanAt(5, 6), true},
		{"adjacent", SpanAt(0, 6), SpanAt(6, 6), false},
		{"contained", SpanAt(0, 10), SpanAt(2, 1), true},
		{"disjoint", SpanAt(0, 1), SpanAt(5, 1), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Overlaps(tc.b); got != tc.expected {
				t.Errorf("Overlaps() = %v, expected %v", got, tc.expected)
			}
			if got := tc.b.Overlaps(tc.a); got != tc.expected {
				t.Errorf("Overlaps() (reversed) = %v, expected %v", got, tc.expected)
			}
		})
	}

	if l := SpanAt(3, 4).Length(); l != 4 {
		t.Errorf("Length() = %v, expected 4", l)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},
		{-5, 0, 10, 0},
		{15, 0, 10, 10},
		{0, 0, 10, 0},
		{10, 0, 10, 10},
	}

	for _, tc := range tests {
		if got := Clamp(tc.val, tc.min, tc.max); got != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, got, tc.expected)
		}
	}
}

func TestClampF(t *testing.T) {
	tests := []struct {
		val, min, max, expected float64
	}{
		{5.5, 0.0, 10.0, 5.5},
		{-5.5, 0.0, 10.0, 0.0},
		{15.5, 0.0, 10.0, 10.0},
	}

	for _, tc := range tests {
		if got := ClampF(tc.val, tc.min, tc.max); got != tc.expected {
			t.Errorf("ClampF(%f, %f, %f) = %f, expected %f", tc.val, tc.min, tc.max, got, tc.expected)
		}
	}
}

func TestLerpAndAbs(t *testing.T) {
	if got := Lerp(-2, 2, 0.5); got != 0 {
		t.Errorf("Lerp(-2, 2, 0.5) = %v, expected 0", got)
	}
	if got := Lerp(0, 10, 1); got != 10 {
		t.Errorf("Lerp(0, 10, 1) = %v, expected 10", got)
	}
	if AbsF(-3.5) != 3.5 || AbsF(2) != 2 {
		t.Error("AbsF returned wrong value")
	}
}
