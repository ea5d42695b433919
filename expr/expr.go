// Package expr builds operator-precedence expression parsers out of a
// list of priority groups, from tightest-binding (a primitive atom) to
// loosest (assignment-like right-associative operators, say). Each
// group contributes wrapper, prefix, postfix, left- and
// right-associative operator parsers; Build assembles them into one
// parser graph with a Settable loopback so every group's operators can
// recurse back into the full expression.
package expr

import (
	"fmt"

	"github.com/npillmayer/schuko/tracing"
	"github.com/pterm/pterm"

	"github.com/nbebic/petitgo"
)

func tracer() tracing.Trace { return tracing.Select("petitgo.expr") }

// action receives the matched operator token(s) alongside the operand
// value(s) already reduced so far, and produces the combined value.
// Its arity differs by group kind: prefix/postfix take (operator,
// operand) or (operand, operator); left/right take (left, operator,
// right); wrapper takes (left, inner, right).
type action func(args ...any) any

// collectArgs is the fallback action used wherever a group method is
// called without an explicit one: it just collects its arguments into
// a slice, mirroring the reference implementation's `lambda *x:
// list(x)`.
func collectArgs(args ...any) any { return args }

// Builder assembles a full expression parser out of priority-ordered
// Groups, tightest binding first. Every Group's operator parsers are
// composed against a single shared Settable loopback, so `builder.
// group(...)` calls at any priority can recurse into the whole
// expression (e.g. a parenthesized sub-expression).
type Builder struct {
	loopback *petitgo.SettableParser
	groups   []*Group
}

// NewBuilder creates an empty expression builder.
func NewBuilder() *Builder {
	return &Builder{loopback: petitgo.UndefinedSettable("expression builder not yet built")}
}

// Group appends a new, initially empty priority group to the builder,
// binding tighter than every group added after it and looser than
// every one added before it. defaultAction, if non-nil, is used by
// every operator in this group that omits its own action.
func (b *Builder) Group(defaultAction ...action) *Group {
	g := &Group{builder: b}
	if len(defaultAction) > 0 {
		g.defaultAction = defaultAction[0]
	} else {
		g.defaultAction = collectArgs
	}
	b.groups = append(b.groups, g)
	return g
}

// Loopback returns the parser every group's sub-expression references
// should point at (e.g. inside a wrapper's parenthesization). Valid
// to call before Build; the Settable only needs to exist, not yet be
// bound.
func (b *Builder) Loopback() petitgo.Parser { return b.loopback }

// Build assembles every group, tightest-binding first, into one
// parser graph and closes the loopback over the result. The chain
// starts from a parser that always fails, so if no group defines a
// primitive parser the result rejects every input; Build does not
// panic in that case.
func (b *Builder) Build() petitgo.Parser {
	var parser petitgo.Parser = petitgo.NewFailureParser(
		"highest priority group should define a primitive parser")
	for i, g := range b.groups {
		parser = g.build(parser)
		tracer().Debugf("assembled group %d: %d primitive, %d wrapper, %d prefix, %d postfix, %d left, %d right",
			i, len(g.primitives), len(g.wrappers), len(g.prefix), len(g.postfix), len(g.left), len(g.right))
	}
	b.loopback.Set(parser)
	tracer().Debugf("closed loopback over %d group(s)", len(b.groups))
	return parser
}

// Dump renders the declared groups and their operator counts, for
// interactive inspection while assembling a large grammar. Uses
// pterm, the same library the reference tooling used for rendering
// live parser/grammar state.
func (b *Builder) Dump() string {
	items := make([]pterm.BulletListItem, 0, len(b.groups))
	for i, g := range b.groups {
		items = append(items, pterm.BulletListItem{
			Level: 0,
			Text: fmt.Sprintf("group %d: %d primitive, %d wrapper, %d prefix, %d postfix, %d left, %d right",
				i, len(g.primitives), len(g.wrappers), len(g.prefix), len(g.postfix), len(g.left), len(g.right)),
		})
	}
	rendered, err := pterm.DefaultBulletList.WithItems(items).Srender()
	if err != nil {
		return err.Error()
	}
	return rendered
}

// opAction pairs a matched operator's value with the action to apply
// it with; every *Parser below first maps its raw match into one of
// these before being folded into a Group's operand chain.
type opAction struct {
	operator any
	action   action
}

// Group holds one priority level's operator parsers. Every add-method
// returns the Group itself so calls can be chained the way the
// reference builder's fluent API reads.
type Group struct {
	builder *Builder

	primitives []petitgo.Parser
	wrappers   []petitgo.Parser
	prefix     []petitgo.Parser
	postfix    []petitgo.Parser
	left       []petitgo.Parser
	right      []petitgo.Parser

	defaultAction action
}

func buildChoice(parsers []petitgo.Parser, otherwise petitgo.Parser) petitgo.Parser {
	switch len(parsers) {
	case 0:
		if otherwise == nil {
			panic("petitgo/expr: empty choice with no fallback")
		}
		return otherwise
	case 1:
		return parsers[0]
	default:
		return petitgo.NewChoice(parsers...)
	}
}

// Primitive adds an atomic operand parser to this group, e.g. a
// number or identifier literal. act, if given, transforms the matched
// value before it enters the surrounding operator chain.
func (g *Group) Primitive(parser petitgo.Parser, act ...func(any) any) *Group {
	if len(act) > 0 {
		f := act[0]
		g.primitives = append(g.primitives, petitgo.NewAction(parser, f, false))
	} else {
		g.primitives = append(g.primitives, parser)
	}
	return g
}

func (g *Group) buildPrimitive(inner petitgo.Parser) petitgo.Parser {
	return buildChoice(g.primitives, inner)
}

// Wrapper adds a bracketing pair (e.g. "(" ... ")") around a full
// recursive sub-expression. act receives (left, inner, right); the
// default collects them into a slice.
func (g *Group) Wrapper(left, right petitgo.Parser, act ...action) *Group {
	f := g.defaultAction
	if len(act) > 0 {
		f = act[0]
	}
	seq := petitgo.NewSequence(left, g.builder.loopback, right)
	wrapped := petitgo.NewAction(seq, func(v any) any {
		parts := v.([]any)
		return f(parts[0], parts[1], parts[2])
	}, false)
	g.wrappers = append(g.wrappers, wrapped)
	return g
}

func (g *Group) buildWrapper(inner petitgo.Parser) petitgo.Parser {
	choices := append(append([]petitgo.Parser{}, g.wrappers...), inner)
	return buildChoice(choices, inner)
}

func (g *Group) addTo(list *[]petitgo.Parser, parser petitgo.Parser, act []action) {
	f := g.defaultAction
	if len(act) > 0 {
		f = act[0]
	}
	mapped := petitgo.NewAction(parser, func(v any) any {
		return opAction{operator: v, action: f}
	}, false)
	*list = append(*list, mapped)
}

// Prefix adds a prefix operator (e.g. unary "-"). act receives
// (operator, operand).
func (g *Group) Prefix(parser petitgo.Parser, act ...action) *Group {
	g.addTo(&g.prefix, parser, act)
	return g
}

func (g *Group) buildPrefix(inner petitgo.Parser) petitgo.Parser {
	if len(g.prefix) == 0 {
		return inner
	}
	ops := petitgo.NewPossessiveRepeating(buildChoice(g.prefix, nil), 0, -1)
	seq := petitgo.NewSequence(ops, inner)
	return petitgo.NewAction(seq, func(v any) any {
		parts := v.([]any)
		tuples := parts[0].([]any)
		value := parts[1]
		for i := len(tuples) - 1; i >= 0; i-- {
			op := tuples[i].(opAction)
			value = op.action(op.operator, value)
		}
		return value
	}, false)
}

// Postfix adds a postfix operator (e.g. factorial "!"). act receives
// (operand, operator).
func (g *Group) Postfix(parser petitgo.Parser, act ...action) *Group {
	g.addTo(&g.postfix, parser, act)
	return g
}

func (g *Group) buildPostfix(inner petitgo.Parser) petitgo.Parser {
	if len(g.postfix) == 0 {
		return inner
	}
	ops := petitgo.NewPossessiveRepeating(buildChoice(g.postfix, nil), 0, -1)
	seq := petitgo.NewSequence(inner, ops)
	return petitgo.NewAction(seq, func(v any) any {
		parts := v.([]any)
		value := parts[0]
		for _, t := range parts[1].([]any) {
			op := t.(opAction)
			value = op.action(value, op.operator)
		}
		return value
	}, false)
}

// Right adds a right-associative infix operator (e.g. "^"). act
// receives (left, operator, right).
func (g *Group) Right(parser petitgo.Parser, act ...action) *Group {
	g.addTo(&g.right, parser, act)
	return g
}

func (g *Group) buildRight(inner petitgo.Parser) petitgo.Parser {
	if len(g.right) == 0 {
		return inner
	}
	sep := petitgo.Wrap(inner).SeparatedBy(buildChoice(g.right, nil))
	return petitgo.NewAction(sep, func(v any) any {
		seq := v.([]any)
		result := seq[len(seq)-1]
		for i := len(seq) - 2; i > 0; i -= 2 {
			op := seq[i].(opAction)
			result = op.action(seq[i-1], op.operator, result)
		}
		return result
	}, false)
}

// Left adds a left-associative infix operator (e.g. "+"). act
// receives (left, operator, right).
func (g *Group) Left(parser petitgo.Parser, act ...action) *Group {
	g.addTo(&g.left, parser, act)
	return g
}

func (g *Group) buildLeft(inner petitgo.Parser) petitgo.Parser {
	if len(g.left) == 0 {
		return inner
	}
	sep := petitgo.Wrap(inner).SeparatedBy(buildChoice(g.left, nil))
	return petitgo.NewAction(sep, func(v any) any {
		seq := v.([]any)
		result := seq[0]
		for i := 1; i < len(seq); i += 2 {
			op := seq[i].(opAction)
			result = op.action(result, op.operator, seq[i+1])
		}
		return result
	}, false)
}

func (g *Group) build(inner petitgo.Parser) petitgo.Parser {
	p := g.buildPrimitive(inner)
	p = g.buildWrapper(p)
	p = g.buildPrefix(p)
	p = g.buildPostfix(p)
	p = g.buildRight(p)
	p = g.buildLeft(p)
	return p
}
