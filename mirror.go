package petitgo

import "github.com/emirpasic/gods/sets/hashset"

// Mirror walks a parser graph depth-first, visiting each distinct
// node exactly once by identity — required since grammars are
// graphs, not trees, once a Settable closes a cycle (spec.md §4.7).
// A Node facade counts as the Parser it wraps.
type Mirror struct {
	root Parser
}

// NewMirror builds a Mirror rooted at p.
func NewMirror(p Parser) Mirror { return Mirror{root: p} }

// Each calls visit once for every distinct node reachable from the
// root, in pre-order, stopping a branch's descent the first time it
// revisits an already-seen node.
func (m Mirror) Each(visit func(Parser)) {
	seen := hashset.New()
	var walk func(Parser)
	walk = func(p Parser) {
		p = unwrapNode(p)
		if p == nil || seen.Contains(p) {
			return
		}
		seen.Add(p)
		visit(p)
		for _, child := range p.Children() {
			walk(child)
		}
	}
	walk(m.root)
}

// Transform rewrites the graph rooted at p by replacing every node n
// with f(n), threading replacements through every parent's Replace so
// the graph's shape is preserved. f is called exactly once per
// distinct node (by identity); it may return n unchanged.
//
// Grounded on utils.py's Mirror.transform: copy every reachable node
// first (so f never observes a half-rewritten graph), then rewire
// children against the copy map, then let f run over the copies.
func Transform(p Parser, f func(Parser) Parser) Parser {
	seen := hashset.New()
	copies := make(map[Parser]Parser)
	var order []Parser

	var collect func(Parser)
	collect = func(n Parser) {
		if n == nil || seen.Contains(n) {
			return
		}
		seen.Add(n)
		order = append(order, n)
		for _, child := range n.Children() {
			collect(child)
		}
	}
	collect(p)

	for _, n := range order {
		copies[n] = n.Copy()
	}
	for _, n := range order {
		cp := copies[n]
		for _, child := range n.Children() {
			cp.Replace(child, copies[child])
		}
	}

	transformed := make(map[Parser]Parser)
	var apply func(Parser) Parser
	apply = func(n Parser) Parser {
		if out, ok := transformed[n]; ok {
			return out
		}
		cp := copies[n]
		out := f(cp)
		transformed[n] = out
		for _, child := range n.Children() {
			cp.Replace(copies[child], apply(child))
		}
		return out
	}
	return apply(p)
}
