package petitgo

import "strings"

// delegateBase is the embeddable building block for every combinator
// that wraps exactly one child parser (spec.md §3's "Delegate"
// family): And, Not, Optional, Action, Flatten, Token, Continuation
// all embed it and only override what differs.
type delegateBase struct {
	delegate Parser
}

func (d *delegateBase) Children() []Parser { return []Parser{d.delegate} }

func (d *delegateBase) Replace(source, target Parser) {
	if d.delegate == source {
		d.delegate = target
	}
}

// FastParseOn is the default delegating fast path; kinds whose fast
// semantics differ from "ask the child" (And, Not, Optional) override
// it explicitly.
func (d *delegateBase) FastParseOn(buffer string, position int) int {
	return d.delegate.FastParseOn(buffer, position)
}

// --- Sequence ------------------------------------------------------------

// SequenceParser runs its children in order over a threaded position,
// propagating the first child failure unchanged (spec.md §4.4).
type SequenceParser struct {
	parsers []Parser
}

// NewSequence builds a Sequence over parsers, in order. Panics if any
// element is nil, matching the reference implementation's
// construction-time validation.
func NewSequence(parsers ...Parser) *SequenceParser {
	cp := make([]Parser, len(parsers))
	for i, p := range parsers {
		if p == nil {
			panic("petitgo: nil parser in sequence")
		}
		cp[i] = p
	}
	return &SequenceParser{parsers: cp}
}

func (s *SequenceParser) ParseOn(ctx Context) Result {
	cur := ctx
	elems := make([]any, 0, len(s.parsers))
	for _, p := range s.parsers {
		res := p.ParseOn(cur)
		if res.IsFailure() {
			return res
		}
		elems = append(elems, res.value)
		cur = NewContext(res.buffer, res.position)
	}
	return cur.Success(elems, cur.Position())
}

func (s *SequenceParser) FastParseOn(buffer string, position int) int {
	for _, p := range s.parsers {
		position = p.FastParseOn(buffer, position)
		if position < 0 {
			return position
		}
	}
	return position
}

func (s *SequenceParser) Children() []Parser { return s.parsers }

func (s *SequenceParser) Replace(source, target Parser) {
	for i, p := range s.parsers {
		if p == source {
			s.parsers[i] = target
		}
	}
}

func (s *SequenceParser) Copy() Parser { return NewSequence(s.parsers...) }

func (s *SequenceParser) HasEqualProperties(other Parser) bool { return true }

func (s *SequenceParser) String() string { return "Sequence" }

// --- Choice ---------------------------------------------------------------

// ChoiceParser tries its children in order against the same starting
// context; the first success wins. On total failure it synthesizes
// its own failure at the original position (spec.md §4.4, §4.10).
type ChoiceParser struct {
	parsers []Parser
}

// NewChoice builds a Choice over parsers. Panics if parsers is empty,
// matching the reference implementation.
func NewChoice(parsers ...Parser) *ChoiceParser {
	if len(parsers) == 0 {
		panic("petitgo: choice parser cannot be empty")
	}
	cp := append([]Parser{}, parsers...)
	return &ChoiceParser{parsers: cp}
}

func (c *ChoiceParser) ParseOn(ctx Context) Result {
	for _, p := range c.parsers {
		res := p.ParseOn(ctx)
		if res.IsSuccess() {
			return res
		}
	}
	return ctx.Failure(c.describe(), ctx.Position())
}

func (c *ChoiceParser) describe() string {
	descs := make([]string, len(c.parsers))
	for i, p := range c.parsers {
		descs[i] = p.String()
	}
	return "expected " + strings.Join(descs, " or ")
}

func (c *ChoiceParser) FastParseOn(buffer string, position int) int {
	for _, p := range c.parsers {
		if r := p.FastParseOn(buffer, position); r >= 0 {
			return r
		}
	}
	return -1
}

func (c *ChoiceParser) Children() []Parser { return c.parsers }

func (c *ChoiceParser) Replace(source, target Parser) {
	for i, p := range c.parsers {
		if p == source {
			c.parsers[i] = target
		}
	}
}

func (c *ChoiceParser) Copy() Parser { return NewChoice(c.parsers...) }

func (c *ChoiceParser) HasEqualProperties(other Parser) bool { return true }

func (c *ChoiceParser) String() string { return "Choice" }

// --- Optional ---------------------------------------------------------------

// OptionalParser succeeds with otherwise at the original position
// whenever its delegate fails.
type OptionalParser struct {
	delegateBase
	otherwise any
}

// NewOptional wraps delegate, falling back to otherwise on failure.
func NewOptional(delegate Parser, otherwise any) *OptionalParser {
	return &OptionalParser{delegateBase{delegate}, otherwise}
}

func (o *OptionalParser) ParseOn(ctx Context) Result {
	res := o.delegate.ParseOn(ctx)
	if res.IsSuccess() {
		return res
	}
	return ctx.Success(o.otherwise, ctx.Position())
}

func (o *OptionalParser) FastParseOn(buffer string, position int) int {
	if r := o.delegate.FastParseOn(buffer, position); r >= 0 {
		return r
	}
	return position
}

func (o *OptionalParser) Copy() Parser { return NewOptional(o.delegate, o.otherwise) }

func (o *OptionalParser) HasEqualProperties(other Parser) bool {
	return o.otherwise == other.(*OptionalParser).otherwise
}

func (o *OptionalParser) String() string { return "Optional" }

// --- And (positive lookahead) ----------------------------------------------

// AndParser succeeds iff its delegate succeeds, but consumes no
// input — the result is reported at the original position.
type AndParser struct {
	delegateBase
}

// NewAnd builds a positive-lookahead wrapper around delegate.
func NewAnd(delegate Parser) *AndParser { return &AndParser{delegateBase{delegate}} }

func (a *AndParser) ParseOn(ctx Context) Result {
	res := a.delegate.ParseOn(ctx)
	if res.IsSuccess() {
		return ctx.Success(res.value, ctx.Position())
	}
	return res
}

func (a *AndParser) FastParseOn(buffer string, position int) int {
	if a.delegate.FastParseOn(buffer, position) < 0 {
		return -1
	}
	return position
}

func (a *AndParser) Copy() Parser { return NewAnd(a.delegate) }

func (a *AndParser) HasEqualProperties(other Parser) bool { return true }

func (a *AndParser) String() string { return "And" }

// --- Not (negative lookahead) -----------------------------------------------

// NotParser succeeds with a nil value iff its delegate fails; it
// reports its own message on delegate success. Consumes no input.
type NotParser struct {
	delegateBase
	message string
}

// NewNot builds a negative-lookahead wrapper around delegate.
func NewNot(delegate Parser, message string) *NotParser {
	return &NotParser{delegateBase{delegate}, message}
}

func (n *NotParser) ParseOn(ctx Context) Result {
	res := n.delegate.ParseOn(ctx)
	if res.IsFailure() {
		return ctx.Success(nil, ctx.Position())
	}
	return ctx.Failure(n.message, ctx.Position())
}

func (n *NotParser) FastParseOn(buffer string, position int) int {
	if n.delegate.FastParseOn(buffer, position) < 0 {
		return position
	}
	return -1
}

func (n *NotParser) Copy() Parser { return NewNot(n.delegate, n.message) }

func (n *NotParser) HasEqualProperties(other Parser) bool {
	return n.message == other.(*NotParser).message
}

func (n *NotParser) String() string { return "Not[" + n.message + "]" }

// --- EndOfInput -------------------------------------------------------------

// EndOfInputParser succeeds iff the context is at the end of the
// buffer.
type EndOfInputParser struct {
	message string
}

// NewEndOfInput builds an end-of-input assertion.
func NewEndOfInput(message string) *EndOfInputParser { return &EndOfInputParser{message} }

func (e *EndOfInputParser) ParseOn(ctx Context) Result {
	if ctx.Position() < len(ctx.Buffer()) {
		return ctx.Failure(e.message, ctx.Position())
	}
	return ctx.Success(nil, ctx.Position())
}

func (e *EndOfInputParser) FastParseOn(buffer string, position int) int {
	if position < len(buffer) {
		return -1
	}
	return position
}

func (e *EndOfInputParser) Children() []Parser       { return nil }
func (e *EndOfInputParser) Replace(source, target Parser) {}
func (e *EndOfInputParser) Copy() Parser             { return NewEndOfInput(e.message) }

func (e *EndOfInputParser) HasEqualProperties(other Parser) bool {
	return e.message == other.(*EndOfInputParser).message
}

func (e *EndOfInputParser) String() string { return "EndOfInput[" + e.message + "]" }

// --- Settable ---------------------------------------------------------------

// SettableParser is a mutable-slot indirection: its delegate can be
// rebound at any time via Set, which is how recursive grammars form
// cycles (spec.md §3, §9 — "model cycles only through a mutable-slot
// indirection node").
type SettableParser struct {
	delegate Parser
}

// NewSettableParser wraps delegate in a rebindable slot.
func NewSettableParser(delegate Parser) *SettableParser {
	return &SettableParser{delegate: delegate}
}

// UndefinedSettable builds a Settable whose delegate fails with
// message until Set is called — useful as a forward-declared
// recursion point.
func UndefinedSettable(message string) *SettableParser {
	if message == "" {
		message = "Undefined parser"
	}
	return NewSettableParser(NewFailureParser(message))
}

// Get returns the current delegate.
func (s *SettableParser) Get() Parser { return s.delegate }

// Set rebinds the delegate; observed immediately by every parser
// graph that references this Settable.
func (s *SettableParser) Set(p Parser) { s.delegate = p }

func (s *SettableParser) ParseOn(ctx Context) Result { return s.delegate.ParseOn(ctx) }

func (s *SettableParser) FastParseOn(buffer string, position int) int {
	return s.delegate.FastParseOn(buffer, position)
}

func (s *SettableParser) Children() []Parser { return []Parser{s.delegate} }

func (s *SettableParser) Replace(source, target Parser) {
	if s.delegate == source {
		s.delegate = target
	}
}

func (s *SettableParser) Copy() Parser { return NewSettableParser(s.delegate) }

func (s *SettableParser) HasEqualProperties(other Parser) bool { return true }

func (s *SettableParser) String() string { return "Settable" }

// SettableNode is the fluent view of a Settable: Node's combinator
// sugar plus the Get/Set pair spec.md §6 lists as the settable-parser
// surface.
type SettableNode struct {
	node
	S *SettableParser
}

// Get returns the current delegate as a Parser.
func (s SettableNode) Get() Parser { return s.S.Get() }

// Set rebinds the delegate.
func (s SettableNode) Set(p Parser) { s.S.Set(p) }
