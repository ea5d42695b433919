package grammar

import (
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"

	"github.com/nbebic/petitgo"
)

func TestDefineAndBuildSimple(t *testing.T) {
	d := NewDefinition()
	d.Define("start", petitgo.Char('a').Seq(petitgo.Char('b')))

	p, err := d.Build("start")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !petitgo.Accept(p, "ab") {
		t.Error("expected the built grammar to accept \"ab\"")
	}
}

func TestDefinePanicsOnDuplicate(t *testing.T) {
	d := NewDefinition()
	d.Define("x", petitgo.Char('a'))
	defer func() {
		if recover() == nil {
			t.Error("expected Define to panic on a duplicate name")
		}
	}()
	d.Define("x", petitgo.Char('b'))
}

func TestRedefPanicsOnUnknown(t *testing.T) {
	d := NewDefinition()
	defer func() {
		if recover() == nil {
			t.Error("expected Redef to panic on an undefined name")
		}
	}()
	d.Redef("nope", petitgo.Char('a'))
}

func TestActionWrapsExistingProduction(t *testing.T) {
	d := NewDefinition()
	d.Define("digits", petitgo.Digit().Plus().Flatten())
	d.Action("digits", func(v any) any { return len(v.(string)) })

	p, err := d.Build("digits")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	res := petitgo.Parse(p, "123")
	if !res.IsSuccess() || res.Value() != 3 {
		t.Errorf("got %v, want success(3)", res)
	}
}

// A grammar with forward references: "start" refers to "b" before it's
// declared.
func TestForwardReference(t *testing.T) {
	d := NewDefinition()
	d.Define("start", petitgo.Char('a').Seq(Ref("b")))
	d.Define("b", petitgo.Char('b'))

	p, err := d.Build("start")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !petitgo.Accept(p, "ab") {
		t.Error("expected forward-referenced grammar to accept \"ab\"")
	}
}

// E10: a grammar with a direct self-reference x := x must fail to build
// with a cycle error.
func TestDirectSelfReferenceIsACycleError(t *testing.T) {
	d := NewDefinition()
	d.Define("x", Ref("x"))

	_, err := d.Build("x")
	if err == nil {
		t.Fatal("expected Build to report a reference cycle")
	}
}

func TestIndirectReferenceCycleIsAnError(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "petitgo.grammar")
	defer teardown()

	d := NewDefinition()
	d.Define("a", Ref("b"))
	d.Define("b", Ref("a"))

	_, err := d.Build("a")
	if err == nil {
		t.Fatal("expected Build to report a reference cycle across a and b")
	}
}

func TestBuildOnUnknownProductionErrors(t *testing.T) {
	d := NewDefinition()
	if _, err := d.Build("nonexistent"); err == nil {
		t.Error("expected Build to error for an undeclared production")
	}
}

// Testable property #3: building an already-resolved parser again is a
// no-op and returns a structurally equal parser.
func TestIdempotentResolution(t *testing.T) {
	d := NewDefinition()
	d.Define("start", petitgo.Char('a').Seq(Ref("b")))
	d.Define("b", petitgo.Char('b'))

	first, err := d.Build("start")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := d.Build("start")
	if err != nil {
		t.Fatalf("unexpected error on second build: %v", err)
	}
	if !petitgo.IsEqualTo(first, second) {
		t.Error("re-building an already-resolved grammar should be structurally a no-op")
	}
}

func TestExtendInheritsAndOverrides(t *testing.T) {
	base := NewDefinition()
	base.Define("digit", petitgo.Digit())
	base.Define("start", Ref("digit"))

	derived := Extend(base)
	derived.Redef("digit", petitgo.Digit().Map(func(v any) any { return "digit:" + v.(string) }))

	p, err := derived.Build("start")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	res := petitgo.Parse(p, "5")
	if !res.IsSuccess() || res.Value() != "digit:5" {
		t.Errorf("got %v, want success(\"digit:5\")", res)
	}

	// the base definition itself must be unaffected by the derived redef.
	baseParser, err := base.Build("start")
	if err != nil {
		t.Fatalf("unexpected error building base: %v", err)
	}
	baseRes := petitgo.Parse(baseParser, "5")
	if baseRes.Value() != "5" {
		t.Errorf("base grammar should be unaffected by derived's redef, got %v", baseRes.Value())
	}
}

func TestDumpListsProductionsInDeclarationOrder(t *testing.T) {
	d := NewDefinition()
	d.Define("first", petitgo.Char('a'))
	d.Define("second", petitgo.Char('b'))
	out := Dump(d)
	if out == "" {
		t.Error("expected Dump to render a non-empty description")
	}
	first, second := strings.Index(out, "first ="), strings.Index(out, "second =")
	if first < 0 || second < 0 || first > second {
		t.Errorf("expected Dump to list \"first\" before \"second\", got %q", out)
	}
}
