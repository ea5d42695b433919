package petitgo

import (
	"strings"
	"testing"
)

// E4: word().plus_lazy(digit()).parse("abc12") -> success ['a','b','c'], pos=3.
func TestPlusLazy(t *testing.T) {
	p := Word().PlusLazy(Digit())
	res := Parse(p, "abc12")
	if !res.IsSuccess() {
		t.Fatalf("expected success, got failure: %s", res.Message())
	}
	if res.Position() != 3 {
		t.Errorf("position = %d, want 3", res.Position())
	}
	got := res.Value().([]any)
	if len(got) != 3 || got[0] != "a" || got[1] != "b" || got[2] != "c" {
		t.Errorf("value = %v, want [a b c]", got)
	}
}

// E5: word().plus_greedy(digit()).parse("abc12") -> success ['a','b','c','1'], pos=4.
func TestPlusGreedy(t *testing.T) {
	p := Word().PlusGreedy(Digit())
	res := Parse(p, "abc12")
	if !res.IsSuccess() {
		t.Fatalf("expected success, got failure: %s", res.Message())
	}
	if res.Position() != 4 {
		t.Errorf("position = %d, want 4", res.Position())
	}
	got := res.Value().([]any)
	want := []any{"a", "b", "c", "1"}
	if len(got) != len(want) {
		t.Fatalf("value = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("value[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

// Testable property #5: possessive star never backtracks, so a.star().seq(a)
// always fails on "aaa"; a.star_greedy(a).seq(a) succeeds, splitting 2/1.
func TestPossessiveVsGreedy(t *testing.T) {
	a := Char('a')
	possessive := a.Star().Seq(Char('a'))
	if Parse(possessive, "aaa").IsSuccess() {
		t.Error("possessive star().seq(a) should never succeed on \"aaa\"")
	}

	greedy := Char('a').StarGreedy(Char('a')).Seq(Char('a'))
	res := Parse(greedy, "aaa")
	if !res.IsSuccess() {
		t.Fatalf("expected greedy form to succeed, got failure: %s", res.Message())
	}
	parts := res.Value().([]any)
	prefix := parts[0].([]any)
	if len(prefix) != 2 {
		t.Errorf("greedy prefix length = %d, want 2 (backtracked one 'a' for the limiter)", len(prefix))
	}
}

// Testable property #4: repeat(n,n) accepts iff p applies exactly n times.
func TestRepeatExactCount(t *testing.T) {
	p := Char('a').Repeat(3, 3)
	if !Accept(p, "aaa") {
		t.Error("repeat(3,3) should accept exactly 3 a's")
	}
	if Accept(p, "aaaa") && p.FastParseOn("aaaa", 0) == 4 {
		t.Error("repeat(3,3) should not consume a 4th 'a'")
	}
	if Accept(p, "aa") {
		t.Error("repeat(3,3) should reject only 2 a's")
	}
}

func TestStarIsRepeatZeroUnbounded(t *testing.T) {
	p := Char('a').Star()
	res := Parse(p, "")
	if !res.IsSuccess() {
		t.Error("star() should accept zero repetitions")
	}
	if len(res.Value().([]any)) != 0 {
		t.Errorf("expected empty match list, got %v", res.Value())
	}
}

func TestPlusRequiresAtLeastOne(t *testing.T) {
	p := Char('a').Plus()
	if Parse(p, "").IsSuccess() {
		t.Error("plus() should reject zero repetitions")
	}
}

// Testable property #6: 100k-iteration repetitions must not overflow the
// call stack.
func TestLargeInputNoStackOverflow(t *testing.T) {
	const n = 100_000
	input := strings.Repeat("a", n)
	p := Char('a').Repeat(2, -1)
	res := Parse(p, input)
	if !res.IsSuccess() {
		t.Fatalf("expected success on %d a's, got failure: %s", n, res.Message())
	}
	if res.Position() != n {
		t.Errorf("position = %d, want %d", res.Position(), n)
	}
	if len(res.Value().([]any)) != n {
		t.Errorf("matched %d elements, want %d", len(res.Value().([]any)), n)
	}
}

func TestGreedyLimiterIsWitnessOnly(t *testing.T) {
	// a* followed by "ab": greedy backtracks until the limiter "ab" can
	// match, but the limiter's own match is not consumed by the repetition.
	p := Char('a').StarGreedy(StringOf("ab")).Seq(StringOf("ab"))
	res := Parse(p, "aaab")
	if !res.IsSuccess() {
		t.Fatalf("expected success, got failure: %s", res.Message())
	}
	if res.Position() != len("aaab") {
		t.Errorf("position = %d, want %d (limiter not double-consumed)", res.Position(), len("aaab"))
	}
}
