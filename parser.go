package petitgo

// Parser is the contract every parser-graph node implements: the two
// execution primitives (ParseOn/FastParseOn, spec.md §4.2) and the
// graph algebra (Children/Replace/Copy/HasEqualProperties, spec.md
// §4.7). It intentionally carries no combinator methods — those live
// on Node, a thin wrapper every public factory returns, so the ~20
// concrete node kinds need not implement them and composition stays
// independent of any one kind's identity (spec.md §9: "avoid deep
// inheritance chains; favor composition").
type Parser interface {
	// ParseOn runs the full parse semantics against ctx, producing a
	// typed value on success.
	ParseOn(ctx Context) Result

	// FastParseOn is the position-only fast path: it must accept
	// exactly the same inputs as ParseOn and agree on the resulting
	// position, but may skip building a value. Nodes with user-visible
	// side effects (Action with sideEffects set) must not skip them.
	FastParseOn(buffer string, position int) int

	// Children enumerates this node's direct child slots in a stable
	// order. Leaf nodes return nil.
	Children() []Parser

	// Replace rewrites any direct child slot currently holding source
	// so that it holds target instead. Used by reference resolution
	// and by Mirror.Transform.
	Replace(source, target Parser)

	// Copy returns a new node with the same child references and
	// scalar properties (a shallow copy).
	Copy() Parser

	// HasEqualProperties compares this node's scalar properties (not
	// children) against other, which is guaranteed to be the same
	// concrete kind.
	HasEqualProperties(other Parser) bool

	// String renders a short diagnostic description, used in
	// synthesized Choice failure messages among other things.
	String() string
}

// Node is the fluent, public-facing view of a Parser: every
// combinator method spec.md §6 lists as "methods on every parser",
// plus promoted access to the underlying Parser contract. The façade
// factories (Char, Digit, StringOf, …) return a Node; the concrete
// node types and their New… constructors are exported as well and
// return the concrete type.
type Node interface {
	Parser

	Seq(others ...Parser) Node
	Or(others ...Parser) Node
	Optional(otherwise any) Node
	Star() Node
	Plus() Node
	Times(count int) Node
	Repeat(min, max int) Node
	StarGreedy(limit Parser) Node
	PlusGreedy(limit Parser) Node
	RepeatGreedy(limit Parser, min, max int) Node
	StarLazy(limit Parser) Node
	PlusLazy(limit Parser) Node
	RepeatLazy(limit Parser, min, max int) Node
	And() Node
	Not(message ...string) Node
	Neg(message ...string) Node
	End(message ...string) Node
	Settable() SettableNode
	Map(f func(any) any) Node
	MapWithSideEffects(f func(any) any) Node
	Pick(index int) Node
	Permute(indexes ...int) Node
	Flatten(message ...string) Node
	Token() Node
	Trim(around ...Parser) Node
	SeparatedBy(separator Parser) Node
	DelimitedBy(separator Parser) Node
	CallCC(handler ContinuationHandler) Node
	DeepCopy() Node
	IsEqualTo(other Parser) bool
}

// node is the concrete Node implementation: a Parser plus combinator
// sugar. Embedding Parser promotes ParseOn/FastParseOn/Children/
// Replace/Copy/HasEqualProperties/String for free.
type node struct {
	Parser
}

// Wrap adapts any Parser to the fluent Node interface. Constructors
// that build a lower-level Parser directly (grammar references,
// expression-builder internals) use this to hand a Node back to
// callers that want to keep composing.
func Wrap(p Parser) Node {
	if n, ok := p.(Node); ok {
		return n
	}
	return node{p}
}

func (n node) Seq(others ...Parser) Node {
	if seq, ok := n.Parser.(*SequenceParser); ok {
		return Wrap(NewSequence(append(append([]Parser{}, seq.parsers...), others...)...))
	}
	return Wrap(NewSequence(append([]Parser{n.Parser}, others...)...))
}

func (n node) Or(others ...Parser) Node {
	if ch, ok := n.Parser.(*ChoiceParser); ok {
		return Wrap(NewChoice(append(append([]Parser{}, ch.parsers...), others...)...))
	}
	return Wrap(NewChoice(append([]Parser{n.Parser}, others...)...))
}

func (n node) Optional(otherwise any) Node {
	return Wrap(NewOptional(n.Parser, otherwise))
}

func (n node) Star() Node { return n.Repeat(0, -1) }
func (n node) Plus() Node { return n.Repeat(1, -1) }
func (n node) Times(count int) Node { return n.Repeat(count, count) }

func (n node) Repeat(min, max int) Node {
	return Wrap(NewPossessiveRepeating(n.Parser, min, max))
}

func (n node) StarGreedy(limit Parser) Node { return n.RepeatGreedy(limit, 0, -1) }
func (n node) PlusGreedy(limit Parser) Node { return n.RepeatGreedy(limit, 1, -1) }

func (n node) RepeatGreedy(limit Parser, min, max int) Node {
	return Wrap(NewGreedyRepeating(n.Parser, limit, min, max))
}

func (n node) StarLazy(limit Parser) Node { return n.RepeatLazy(limit, 0, -1) }
func (n node) PlusLazy(limit Parser) Node { return n.RepeatLazy(limit, 1, -1) }

func (n node) RepeatLazy(limit Parser, min, max int) Node {
	return Wrap(NewLazyRepeating(n.Parser, limit, min, max))
}

func (n node) And() Node {
	return Wrap(NewAnd(n.Parser))
}

func (n node) Not(message ...string) Node {
	msg := "unexpected"
	if len(message) > 0 {
		msg = message[0]
	}
	return Wrap(NewNot(n.Parser, msg))
}

func (n node) Neg(message ...string) Node {
	// CharacterParser gets the optimized form spec.md §4.3 calls out:
	// a fresh CharacterParser over the inverted predicate, rather than
	// the general not().seq(any()).pick(1) construction.
	if cp, ok := n.Parser.(*CharacterParser); ok {
		msg := "not " + cp.message
		if len(message) > 0 {
			msg = message[0]
		}
		return Wrap(NewCharacterParser(func(r rune) bool { return !cp.predicate(r) }, msg))
	}
	msg := n.String() + " not expected"
	if len(message) > 0 {
		msg = message[0]
	}
	return n.Not(msg).Seq(AnyChar()).Pick(1)
}

func (n node) End(message ...string) Node {
	msg := "end of input expected"
	if len(message) > 0 {
		msg = message[0]
	}
	return n.Seq(NewEndOfInput(msg)).Pick(0)
}

func (n node) Settable() SettableNode {
	s := NewSettableParser(n.Parser)
	return SettableNode{node{s}, s}
}

func (n node) Map(f func(any) any) Node {
	return Wrap(NewAction(n.Parser, f, false))
}

func (n node) MapWithSideEffects(f func(any) any) Node {
	return Wrap(NewAction(n.Parser, f, true))
}

func (n node) Pick(index int) Node {
	return n.Map(func(v any) any {
		list := v.([]any)
		i := index
		if i < 0 {
			i += len(list)
		}
		return list[i]
	})
}

func (n node) Permute(indexes ...int) Node {
	return n.Map(func(v any) any {
		list := v.([]any)
		out := make([]any, len(indexes))
		for j, i := range indexes {
			k := i
			if k < 0 {
				k += len(list)
			}
			out[j] = list[k]
		}
		return out
	})
}

func (n node) Flatten(message ...string) Node {
	msg := ""
	if len(message) > 0 {
		msg = message[0]
	}
	return Wrap(NewFlatten(n.Parser, msg))
}

func (n node) Token() Node {
	return Wrap(NewTokenParser(n.Parser))
}

func (n node) Trim(around ...Parser) Node {
	var left, right Parser
	switch len(around) {
	case 0:
		left = Whitespace()
		right = left
	case 1:
		left = around[0]
		right = left
	default:
		left = around[0]
		right = around[1]
	}
	return Wrap(NewTrim(n.Parser, left, right))
}

func (n node) SeparatedBy(separator Parser) Node {
	self := n.Parser
	return Seq(self, Wrap(NewSequence(separator, self)).Star()).Map(func(v any) any {
		pair := v.([]any)
		result := []any{pair[0]}
		for _, elem := range pair[1].([]any) {
			result = append(result, elem.([]any)...)
		}
		return result
	})
}

func (n node) DelimitedBy(separator Parser) Node {
	return n.SeparatedBy(separator).Seq(Wrap(separator).Optional(nil)).Map(func(v any) any {
		pair := v.([]any)
		result := append([]any{}, pair[0].([]any)...)
		if pair[1] != nil {
			result = append(result, pair[1])
		}
		return result
	})
}

func (n node) CallCC(handler ContinuationHandler) Node {
	return Wrap(NewContinuation(n.Parser, handler))
}

func (n node) DeepCopy() Node {
	return Wrap(DeepCopy(n.Parser))
}

func (n node) IsEqualTo(other Parser) bool {
	return IsEqualTo(n.Parser, other)
}

// --- Free-function combinator surface ---------------------------------
//
// Idiomatic Go favors top-level functions over chained methods when
// composing a slice of parsers gathered elsewhere (e.g. inside a
// loop); these build the same node kinds as the Node methods above
// through the same constructors. Unlike the Seq and Or methods, they
// never merge into a first argument that is already a Sequence or
// Choice.

// Seq builds a Sequence parser out of parsers, in order.
func Seq(parsers ...Parser) Node { return Wrap(NewSequence(parsers...)) }

// Or builds a Choice parser trying parsers in order.
func Or(parsers ...Parser) Node { return Wrap(NewChoice(parsers...)) }

// Repeat builds a possessive repetition of p bounded by [min, max]
// (max == -1 means unbounded).
func Repeat(p Parser, min, max int) Node { return Wrap(NewPossessiveRepeating(p, min, max)) }

// --- Top-level parse entry points --------------------------------------

// Parse runs p against input, starting at position 0. Like Accept, it
// matches a prefix: success does not require consuming all of input.
func Parse(p Parser, input string) Result {
	return p.ParseOn(NewContext(input, 0))
}

// Accept reports whether p matches a prefix of input (position-only
// fast path).
func Accept(p Parser, input string) bool {
	return p.FastParseOn(input, 0) >= 0
}

// Matches returns every match of p anchored at each position of input
// (overlapping matches included), found by repeatedly attempting p via
// a positive lookahead and then always advancing a single character
// (one rune, by its full encoded width). Uses a side-effecting Action so
// FastParseOn cannot elide the collection, per spec.md §4.2.
func Matches(p Parser, input string) []any {
	var collected []any
	lookahead := NewAnd(p)
	collector := NewAction(lookahead, func(v any) any {
		collected = append(collected, v)
		return v
	}, true)
	step := Wrap(collector).Seq(AnyChar()).Or(AnyChar())
	for pos := 0; pos < len(input); {
		next := step.FastParseOn(input, pos)
		if next < 0 {
			break
		}
		pos = next
	}
	return collected
}

// MatchesSkipping is like Matches, but after each successful match
// the next attempt starts at the match's end instead of advancing by
// a single character (non-overlapping skipping form); on a mismatch it
// still advances by one character.
//
// spec.md §9's open question flags that a zero-width success here
// would loop forever, since (unlike Matches) nothing forces a minimum
// advance; we treat that as bug-equivalent and force a one-byte
// advance, logging a diagnostic, rather than hanging.
func MatchesSkipping(p Parser, input string) []any {
	var collected []any
	collector := NewAction(p, func(v any) any {
		collected = append(collected, v)
		return v
	}, true)
	step := Wrap(collector).Or(AnyChar())
	for pos := 0; pos < len(input); {
		next := step.FastParseOn(input, pos)
		if next < 0 {
			break
		}
		if next <= pos {
			tracer().Errorf("matches_skipping: zero-width success at position %d, forcing advance", pos)
			next = pos + 1
		}
		pos = next
	}
	return collected
}
