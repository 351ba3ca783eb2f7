package spreadsheet

import "testing"

func TestPositionString(t *testing.T) {
	tests := []struct {
		pos      Position
		expected string
	}{
		{Position{Row: 0, Col: 0}, "A1"},
		{Position{Row: 9, Col: 25}, "Z10"},
		{Position{Row: 0, Col: 26}, "AA1"},
		{Position{Row: 0, Col: 51}, "AZ1"},
		{Position{Row: 0, Col: 52}, "BA1"},
		{Position{Row: 0, Col: 701}, "ZZ1"},
		{Position{Row: 0, Col: 702}, "AAA1"},
		{Position{Row: MaxRows - 1, Col: MaxCols - 1}, "XFD16384"},
		{NonePosition, ""},
		{Position{Row: MaxRows, Col: 0}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.pos.String(); got != tt.expected {
				t.Errorf("%#v.String() = %q, want %q", tt.pos, got, tt.expected)
			}
		})
	}
}

func TestParsePosition(t *testing.T) {
	tests := []struct {
		input    string
		expected Position
	}{
		{"A1", Position{Row: 0, Col: 0}},
		{"B3", Position{Row: 2, Col: 1}},
		{"AA10", Position{Row: 9, Col: 26}},
		{"XFD16384", Position{Row: MaxRows - 1, Col: MaxCols - 1}},
		{"XFE1", NonePosition},
		{"A16385", NonePosition},
		{"ABCD1", NonePosition},
		{"A0", NonePosition},
		{"", NonePosition},
		{"A", NonePosition},
		{"1", NonePosition},
		{"a1", NonePosition},
		{"A1B", NonePosition},
		{"A-1", NonePosition},
		{"$A$1", NonePosition},
		{"A99999999999999999999", NonePosition},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParsePosition(tt.input); got != tt.expected {
				t.Errorf("ParsePosition(%q) = %#v, want %#v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestPositionRoundTrip(t *testing.T) {
	for _, pos := range []Position{{0, 0}, {5, 27}, {1000, 1000}, {MaxRows - 1, 0}, {0, MaxCols - 1}} {
		if got := ParsePosition(pos.String()); got != pos {
			t.Errorf("ParsePosition(%q) = %#v, want %#v", pos.String(), got, pos)
		}
	}
}

func TestPositionOrder(t *testing.T) {
	a1 := ParsePosition("A1")
	b1 := ParsePosition("B1")
	a2 := ParsePosition("A2")

	if !a1.Less(b1) || !b1.Less(a2) || !a1.Less(a2) {
		t.Errorf("want A1 < B1 < A2 in row-major order")
	}
	if a2.Less(b1) || a1.Less(a1) {
		t.Errorf("Less is not a strict order")
	}
	if a1.Compare(a1) != 0 || a1.Compare(a2) != -1 || a2.Compare(b1) != 1 {
		t.Errorf("Compare disagrees with Less")
	}
}

func TestSizeContains(t *testing.T) {
	size := Size{Rows: 2, Cols: 3}
	if !size.Contains(ParsePosition("C2")) {
		t.Errorf("want C2 inside 2x3")
	}
	if size.Contains(ParsePosition("D1")) || size.Contains(ParsePosition("A3")) || size.Contains(NonePosition) {
		t.Errorf("want D1, A3 and none outside 2x3")
	}
}
