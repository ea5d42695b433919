package petitgo

import "testing"

func TestLineAndColumnOf(t *testing.T) {
	buf := "ab\ncd\nef"
	cases := []struct {
		pos        int
		line, col int
	}{
		{0, 1, 1},
		{2, 1, 3},
		{3, 2, 1},
		{5, 2, 3},
		{6, 3, 1},
	}
	for _, c := range cases {
		line, col := LineAndColumnOf(buf, c.pos)
		if line != c.line || col != c.col {
			t.Errorf("LineAndColumnOf(%q, %d) = (%d,%d), want (%d,%d)",
				buf, c.pos, line, col, c.line, c.col)
		}
	}
}

func TestResultValuePanicsOnFailure(t *testing.T) {
	ctx := NewContext("abc", 0)
	res := ctx.Failure("expected x", 0)
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected Value() to panic on a Failure")
		}
		if _, ok := r.(*ParseError); !ok {
			t.Errorf("expected panic value to be *ParseError, got %T", r)
		}
	}()
	_ = res.Value()
}

func TestResultValueOrError(t *testing.T) {
	ctx := NewContext("abc", 0)
	ok := ctx.Success("a", 1)
	if v, err := ok.ValueOrError(); err != nil || v != "a" {
		t.Errorf("ValueOrError on success = (%v, %v), want (\"a\", nil)", v, err)
	}
	fail := ctx.Failure("nope", 0)
	if _, err := fail.ValueOrError(); err == nil {
		t.Error("expected ValueOrError to return an error for a Failure")
	}
}
