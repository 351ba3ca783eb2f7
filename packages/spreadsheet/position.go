package spreadsheet

import (
	"strconv"
	"strings"
)

const (
	MaxRows = 16384
	MaxCols = 16384

	lettersInAlphabet = 26
	maxColumnLetters  = 3
)

// Position is a zero-based (row, column) cell address
type Position struct {
	Row int
	Col int
}

// NonePosition is the sentinel for a malformed or unrepresentable address
var NonePosition = Position{Row: -1, Col: -1}

// IsValid reports whether the position lies inside the sheet limits
func (p Position) IsValid() bool {
	return p.Row >= 0 && p.Col >= 0 && p.Row < MaxRows && p.Col < MaxCols
}

// Less orders positions row-major
func (p Position) Less(other Position) bool {
	if p.Row != other.Row {
		return p.Row < other.Row
	}
	return p.Col < other.Col
}

// Compare returns -1, 0 or 1 following row-major order, suitable for
// slices.SortFunc
func (p Position) Compare(other Position) int {
	switch {
	case p.Less(other):
		return -1
	case other.Less(p):
		return 1
	}
	return 0
}

// String renders the position in "A1" notation. invalid positions render as
// the empty string.
func (p Position) String() string {
	if !p.IsValid() {
		return ""
	}

	// column letters are bijective base-26 (A=0, Z=25, AA=26, ...)
	var letters []byte
	for col := p.Col + 1; col > 0; col = (col - 1) / lettersInAlphabet {
		letters = append(letters, byte('A'+(col-1)%lettersInAlphabet))
	}
	for i, j := 0, len(letters)-1; i < j; i, j = i+1, j-1 {
		letters[i], letters[j] = letters[j], letters[i]
	}

	return string(letters) + strconv.Itoa(p.Row+1)
}

// ParsePosition parses "A1" notation. returns NonePosition if the text is not
// a well-formed address or names a cell beyond the sheet limits.
func ParsePosition(s string) Position {
	pos, ok := parseCellAddress(s)
	if !ok || !pos.IsValid() {
		return NonePosition
	}
	return pos
}

// parseCellAddress splits "A1" notation into coordinates without applying
// the sheet limits, so callers can tell a malformed reference from one that
// is well-formed but out of range. ok is false only for malformed input.
func parseCellAddress(s string) (pos Position, ok bool) {
	// find where letters end and numbers begin
	letterEnd := 0
	for letterEnd < len(s) && s[letterEnd] >= 'A' && s[letterEnd] <= 'Z' {
		letterEnd++
	}

	if letterEnd == 0 || letterEnd == len(s) {
		return NonePosition, false
	}

	rowStr := s[letterEnd:]
	if strings.TrimLeft(rowStr, "0123456789") != "" {
		return NonePosition, false
	}

	// well-formed but too wide to represent
	if letterEnd > maxColumnLetters {
		return NonePosition, true
	}

	col := 0
	for i := 0; i < letterEnd; i++ {
		col = col*lettersInAlphabet + int(s[i]-'A') + 1
	}

	rowNum, err := strconv.Atoi(rowStr)
	if err != nil || rowNum > MaxRows {
		return NonePosition, true
	}

	return Position{Row: rowNum - 1, Col: col - 1}, true
}

// Size is the extent of a rectangular region anchored at A1
type Size struct {
	Rows int
	Cols int
}

// Contains reports whether pos falls inside the region
func (s Size) Contains(pos Position) bool {
	return pos.Row >= 0 && pos.Col >= 0 && pos.Row < s.Rows && pos.Col < s.Cols
}
