// Package grammar lets a set of mutually-recursive productions be
// declared by name and later resolved into one parser graph, without
// requiring every production to be written in dependency order (the
// way Go's top-to-bottom compilation would otherwise force). It is the
// petitgo analogue of an EBNF grammar file: Define is a production
// rule, Ref is a forward (or backward) reference to one, and Build
// wires every reference to its target in a single pass.
package grammar

import (
	"fmt"

	"github.com/cnf/structhash"
	"github.com/emirpasic/gods/maps/linkedhashmap"
	"github.com/npillmayer/schuko/tracing"
	"github.com/pterm/pterm"

	"github.com/nbebic/petitgo"
)

func tracer() tracing.Trace { return tracing.Select("petitgo.grammar") }

// Reference is a placeholder parser that stands in for a named
// production until Build resolves it. It can appear anywhere another
// parser can, but parsing it directly (before resolution) panics.
type Reference struct {
	name string
}

// Ref builds a reference to the production named name.
func Ref(name string) *Reference { return &Reference{name} }

func (r *Reference) ParseOn(ctx petitgo.Context) petitgo.Result {
	panic("petitgo/grammar: unresolved reference " + r.name)
}

func (r *Reference) FastParseOn(buffer string, position int) int {
	panic("petitgo/grammar: unresolved reference " + r.name)
}

func (r *Reference) Children() []petitgo.Parser           { return nil }
func (r *Reference) Replace(source, target petitgo.Parser) {}
func (r *Reference) Copy() petitgo.Parser                  { return r }

func (r *Reference) HasEqualProperties(other petitgo.Parser) bool {
	o, ok := other.(*Reference)
	return ok && r.name == o.name
}

func (r *Reference) String() string { return "Reference[" + r.name + "]" }

// Definition collects a grammar's named productions. Productions can
// be declared in any order — forward references through Ref are
// resolved once, at Build time. The underlying table is a
// linkedhashmap so Dump and any diagnostic iteration see productions
// in declaration order rather than Go's randomized map order.
type Definition struct {
	productions *linkedhashmap.Map
}

// NewDefinition creates an empty grammar definition.
func NewDefinition() *Definition {
	return &Definition{productions: linkedhashmap.New()}
}

// Define declares a new production named name. It panics if name is
// already defined — use Redef or Action to modify an existing one.
func (d *Definition) Define(name string, parser petitgo.Parser) {
	if _, found := d.productions.Get(name); found {
		panic("petitgo/grammar: duplicate production " + name)
	}
	d.productions.Put(name, parser)
	tracer().Debugf("defined production %q", name)
}

// Redef replaces an existing production's parser outright. It panics
// if name has not been defined yet.
func (d *Definition) Redef(name string, parser petitgo.Parser) {
	if _, found := d.productions.Get(name); !found {
		panic("petitgo/grammar: undefined production " + name)
	}
	d.productions.Put(name, parser)
	tracer().Debugf("redefined production %q", name)
}

// Action rewraps an existing production with a value transform,
// equivalent to Redef(name, Ref(name)-style-self-reference.Map(f))
// but without the caller needing to fetch the current parser first.
func (d *Definition) Action(name string, f func(any) any) {
	current, found := d.productions.Get(name)
	if !found {
		panic("petitgo/grammar: undefined production " + name)
	}
	d.Redef(name, petitgo.Wrap(current.(petitgo.Parser)).Map(f))
}

// Extend copies every production from base into a new Definition,
// letting a grammar override or add productions without mutating the
// parent (the Go analogue of subclassing a GrammarDefinition).
func Extend(base *Definition) *Definition {
	d := NewDefinition()
	it := base.productions.Iterator()
	for it.Next() {
		d.productions.Put(it.Key(), it.Value())
	}
	return d
}

// Build resolves name (default "start" when name is "") into a
// complete parser graph: every Reference reachable from it is
// replaced by its named production, recursively, with cycles
// detected rather than looped on forever.
//
// Grounded on grammar_definition.py's _resolve/_dereference: first
// collapse chains of Reference-to-Reference into their final target,
// raising on a cycle of bare references, then walk the resulting
// graph replacing every remaining Reference child in place.
func (d *Definition) Build(name string) (petitgo.Parser, error) {
	if name == "" {
		name = "start"
	}

	// Deep-copy the whole production table before touching any of it: the
	// reference-resolution walk below replaces Reference children in place
	// via Parser.Replace, and a derived Definition's table (see Extend)
	// shares unmodified production values with its base by pointer. Without
	// this copy, resolving a derived grammar would mutate the base's graph.
	table := make(map[string]petitgo.Parser)
	it := d.productions.Iterator()
	for it.Next() {
		key := it.Key().(string)
		table[key] = petitgo.DeepCopy(it.Value().(petitgo.Parser))
	}

	root, found := table[name]
	if !found {
		return nil, fmt.Errorf("petitgo/grammar: undefined production %q", name)
	}

	resolved := make(map[string]petitgo.Parser)
	var dereference func(refName string, chain []string) (petitgo.Parser, error)
	dereference = func(refName string, chain []string) (petitgo.Parser, error) {
		if target, ok := resolved[refName]; ok {
			return target, nil
		}
		for _, seen := range chain {
			if seen == refName {
				fingerprint, hashErr := structhash.Hash(struct{ chain []string }{chain}, 1)
				if hashErr != nil {
					fingerprint = "?"
				}
				return nil, fmt.Errorf("petitgo/grammar: recursive reference chain detected: %v [%s]",
					chain, fingerprint)
			}
		}
		parser, found := table[refName]
		if !found {
			return nil, fmt.Errorf("petitgo/grammar: unknown production reference %q", refName)
		}
		if ref, ok := parser.(*Reference); ok {
			return dereference(ref.name, append(chain, refName))
		}
		resolved[refName] = parser
		return parser, nil
	}

	rootParser, err := dereference(name, nil)
	if err != nil {
		return nil, err
	}
	if _, ok := root.(*Reference); !ok {
		rootParser = root.(petitgo.Parser)
		resolved[name] = rootParser
	}

	seen := map[petitgo.Parser]bool{rootParser: true}
	todo := []petitgo.Parser{rootParser}
	for len(todo) > 0 {
		n := len(todo) - 1
		parent := todo[n]
		todo = todo[:n]
		for _, child := range parent.Children() {
			actual := child
			if ref, ok := child.(*Reference); ok {
				target, err := dereference(ref.name, nil)
				if err != nil {
					return nil, err
				}
				parent.Replace(child, target)
				actual = target
			}
			if !seen[actual] {
				seen[actual] = true
				todo = append(todo, actual)
			}
		}
	}
	return rootParser, nil
}

// Dump renders every declared production name, in declaration order,
// for interactive inspection of a grammar under construction. Uses
// pterm's bullet list, the same rendering library the original
// REPL tooling used for inspecting live parser state.
func Dump(d *Definition) string {
	items := make([]pterm.BulletListItem, 0)
	it := d.productions.Iterator()
	for it.Next() {
		items = append(items, pterm.BulletListItem{
			Level: 0,
			Text:  fmt.Sprintf("%s = %s", it.Key(), it.Value().(petitgo.Parser).String()),
		})
	}
	rendered, err := pterm.DefaultBulletList.WithItems(items).Srender()
	if err != nil {
		return err.Error()
	}
	return rendered
}
