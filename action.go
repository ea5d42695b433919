package petitgo

// ActionParser transforms a successful delegate result by applying f.
// When sideEffects is true, f must run even on the fast position-only
// path, because its caller depends on f's side effect (spec.md §4.2's
// Matches/MatchesSkipping use this to collect matches during a
// FastParseOn-only scan).
type ActionParser struct {
	delegateBase
	f           func(any) any
	sideEffects bool
}

// NewAction wraps delegate, applying f to its success value.
func NewAction(delegate Parser, f func(any) any, sideEffects bool) *ActionParser {
	return &ActionParser{delegateBase{delegate}, f, sideEffects}
}

func (a *ActionParser) ParseOn(ctx Context) Result {
	res := a.delegate.ParseOn(ctx)
	if res.IsFailure() {
		return res
	}
	return res.WithValue(a.f(res.value))
}

func (a *ActionParser) FastParseOn(buffer string, position int) int {
	if !a.sideEffects {
		return a.delegate.FastParseOn(buffer, position)
	}
	// Side effects must run: fall back to the full parse so f sees
	// the real value, then report its resulting position.
	res := a.delegate.ParseOn(NewContext(buffer, position))
	if res.IsFailure() {
		return -1
	}
	a.f(res.value)
	return res.position
}

func (a *ActionParser) Copy() Parser { return NewAction(a.delegate, a.f, a.sideEffects) }

func (a *ActionParser) HasEqualProperties(other Parser) bool {
	o := other.(*ActionParser)
	return a.sideEffects == o.sideEffects
}

func (a *ActionParser) String() string { return "Action" }

// --- Flatten ---------------------------------------------------------------

// FlattenParser replaces a successful delegate result with the raw
// substring it consumed, discarding whatever structured value the
// delegate produced.
type FlattenParser struct {
	delegateBase
	message string
}

// NewFlatten wraps delegate, reporting message (if non-empty) instead
// of the delegate's own failure message on mismatch — this is the
// Open Question spec.md §9 raises about whether Flatten should
// override failure text; we follow the reference implementation and
// only override when a message was explicitly supplied.
func NewFlatten(delegate Parser, message string) *FlattenParser {
	return &FlattenParser{delegateBase{delegate}, message}
}

func (f *FlattenParser) ParseOn(ctx Context) Result {
	if f.message != "" {
		buffer, start := ctx.Buffer(), ctx.Position()
		end := f.delegate.FastParseOn(buffer, start)
		if end < 0 {
			return ctx.Failure(f.message, start)
		}
		return ctx.Success(buffer[start:end], end)
	}
	res := f.delegate.ParseOn(ctx)
	if res.IsFailure() {
		return res
	}
	return ctx.Success(ctx.Buffer()[ctx.Position():res.position], res.position)
}

func (f *FlattenParser) Copy() Parser { return NewFlatten(f.delegate, f.message) }

func (f *FlattenParser) HasEqualProperties(other Parser) bool {
	return f.message == other.(*FlattenParser).message
}

func (f *FlattenParser) String() string { return "Flatten" }

// --- Token -------------------------------------------------------------------

// TokenParser wraps a successful delegate result into a Token,
// recording the consumed span alongside the delegate's own value.
type TokenParser struct {
	delegateBase
}

// NewTokenParser wraps delegate so its success value is reported as a
// Token.
func NewTokenParser(delegate Parser) *TokenParser {
	return &TokenParser{delegateBase{delegate}}
}

func (t *TokenParser) ParseOn(ctx Context) Result {
	res := t.delegate.ParseOn(ctx)
	if res.IsFailure() {
		return res
	}
	tok := Token{Buffer: ctx.Buffer(), Start: ctx.Position(), Stop: res.position, Value: res.value}
	return ctx.Success(tok, res.position)
}

func (t *TokenParser) Copy() Parser { return NewTokenParser(t.delegate) }

func (t *TokenParser) HasEqualProperties(other Parser) bool { return true }

func (t *TokenParser) String() string { return "Token" }

// --- Trim ---------------------------------------------------------------

// TrimParser skips left before delegate and right after it, reporting
// only delegate's own value (spec.md §4.6).
type TrimParser struct {
	delegate Parser
	left     Parser
	right    Parser
}

// NewTrim wraps delegate, consuming as many repetitions of left before
// it and right after it as possible.
func NewTrim(delegate, left, right Parser) *TrimParser {
	return &TrimParser{delegate: delegate, left: left, right: right}
}

func (t *TrimParser) skipLeft(buffer string, position int) int {
	for {
		next := t.left.FastParseOn(buffer, position)
		if next < 0 || next == position {
			return position
		}
		position = next
	}
}

func (t *TrimParser) skipRight(buffer string, position int) int {
	for {
		next := t.right.FastParseOn(buffer, position)
		if next < 0 || next == position {
			return position
		}
		position = next
	}
}

func (t *TrimParser) ParseOn(ctx Context) Result {
	buffer := ctx.Buffer()
	start := t.skipLeft(buffer, ctx.Position())
	res := t.delegate.ParseOn(NewContext(buffer, start))
	if res.IsFailure() {
		return res
	}
	end := t.skipRight(buffer, res.position)
	return NewContext(buffer, end).Success(res.value, end)
}

func (t *TrimParser) FastParseOn(buffer string, position int) int {
	start := t.skipLeft(buffer, position)
	next := t.delegate.FastParseOn(buffer, start)
	if next < 0 {
		return -1
	}
	return t.skipRight(buffer, next)
}

func (t *TrimParser) Children() []Parser { return []Parser{t.delegate, t.left, t.right} }

func (t *TrimParser) Replace(source, target Parser) {
	if t.delegate == source {
		t.delegate = target
	}
	if t.left == source {
		t.left = target
	}
	if t.right == source {
		t.right = target
	}
}

func (t *TrimParser) Copy() Parser { return NewTrim(t.delegate, t.left, t.right) }

func (t *TrimParser) HasEqualProperties(other Parser) bool { return true }

func (t *TrimParser) String() string { return "Trim" }

// --- Continuation -------------------------------------------------------------

// ContinuationHandler receives a function that resumes the wrapped
// parser's own parsing (the "continue" escape), plus the context it
// was invoked at, and returns the final result. It is how CallCC lets
// a grammar intercept control flow mid-parse (spec.md §4.10).
type ContinuationHandler func(resume func(Context) Result, ctx Context) Result

// ContinuationParser hands control to handler instead of running
// delegate directly; handler decides whether, and how, to resume.
type ContinuationParser struct {
	delegateBase
	handler ContinuationHandler
}

// NewContinuation wraps delegate with handler.
func NewContinuation(delegate Parser, handler ContinuationHandler) *ContinuationParser {
	return &ContinuationParser{delegateBase{delegate}, handler}
}

func (c *ContinuationParser) ParseOn(ctx Context) Result {
	return c.handler(c.delegate.ParseOn, ctx)
}

func (c *ContinuationParser) FastParseOn(buffer string, position int) int {
	res := c.handler(c.delegate.ParseOn, NewContext(buffer, position))
	if res.IsFailure() {
		return -1
	}
	return res.position
}

func (c *ContinuationParser) Copy() Parser { return NewContinuation(c.delegate, c.handler) }

func (c *ContinuationParser) HasEqualProperties(other Parser) bool { return true }

func (c *ContinuationParser) String() string { return "CallCC" }
