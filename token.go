package petitgo

import (
	"fmt"
	"reflect"
)

// Token pairs a matched value with the buffer span it was matched
// from: (buffer, start, stop, value), with 0 <= start <= stop <=
// len(buffer). Line and column are derived lazily by counting
// newlines in buffer[0:start].
type Token struct {
	Buffer string
	Start  int
	Stop   int
	Value  any
}

// Line returns the 1-based line the token starts on.
func (t Token) Line() int {
	line, _ := LineAndColumnOf(t.Buffer, t.Start)
	return line
}

// Column returns the 1-based column the token starts on.
func (t Token) Column() int {
	_, col := LineAndColumnOf(t.Buffer, t.Start)
	return col
}

// Text returns the matched substring, buffer[Start:Stop].
func (t Token) Text() string {
	return t.Buffer[t.Start:t.Stop]
}

// String renders the token for diagnostics.
func (t Token) String() string {
	line, col := LineAndColumnOf(t.Buffer, t.Start)
	return fmt.Sprintf("Token[%d:%d]: %v", line, col, t.Value)
}

// Equal reports structural equality over all four fields, matching
// the reference implementation's Token.__eq__.
func (t Token) Equal(other Token) bool {
	return t.Start == other.Start &&
		t.Stop == other.Stop &&
		t.Buffer == other.Buffer &&
		reflect.DeepEqual(t.Value, other.Value)
}
