package petitgo

import (
	"reflect"

	"github.com/emirpasic/gods/sets/hashset"
)

// pairKey identifies one (a, b) comparison so IsEqualTo can detect
// when it has looped back onto a pair it already assumed equal —
// without that, a grammar with a Settable cycle would recurse
// forever comparing itself to itself.
type pairKey struct {
	a, b Parser
}

// IsEqualTo reports whether p and other are structurally equivalent:
// same concrete kind, same scalar properties (HasEqualProperties),
// and pairwise-equal children in order. Cyclic graphs are handled by
// assuming equality holds for any pair already being compared further
// up the call stack (spec.md §4.7/§4.9). A Node facade is compared as
// the Parser it wraps.
func IsEqualTo(p, other Parser) bool {
	seen := hashset.New()
	var eq func(a, b Parser) bool
	eq = func(a, b Parser) bool {
		a, b = unwrapNode(a), unwrapNode(b)
		if a == b {
			return true
		}
		if a == nil || b == nil {
			return false
		}
		key := pairKey{a, b}
		if seen.Contains(key) {
			return true
		}
		seen.Add(key)

		if reflect.TypeOf(a) != reflect.TypeOf(b) {
			return false
		}
		if !a.HasEqualProperties(b) {
			return false
		}
		ac, bc := a.Children(), b.Children()
		if len(ac) != len(bc) {
			return false
		}
		for i := range ac {
			if !eq(ac[i], bc[i]) {
				return false
			}
		}
		return true
	}
	return eq(p, other)
}

// unwrapNode returns the Parser behind a Node facade, or p itself.
func unwrapNode(p Parser) Parser {
	switch n := p.(type) {
	case node:
		return n.Parser
	case SettableNode:
		return n.S
	}
	return p
}

// DeepCopy returns an independent copy of the graph rooted at p: every
// reachable node is copied, and every copy's children point at the
// corresponding copies rather than the originals, so mutating the
// copy (e.g. rebinding one of its Settables) never touches p.
//
// Built directly on Transform with an identity function, the same way
// the reference implementation gets deep_copy for free out of its
// generic Mirror.transform.
func DeepCopy(p Parser) Parser {
	return Transform(p, func(n Parser) Parser { return n })
}
