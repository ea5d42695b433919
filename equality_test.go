package petitgo

import "testing"

func TestIsEqualToStructural(t *testing.T) {
	a := Char('a').Seq(Char('b')).Or(Digit().Plus())
	b := Char('a').Seq(Char('b')).Or(Digit().Plus())
	if !IsEqualTo(a, b) {
		t.Error("two independently-built but structurally identical graphs should be equal")
	}
}

func TestIsEqualToDetectsDifference(t *testing.T) {
	a := Char('a').Seq(Char('b'))
	b := Char('a').Seq(Char('c'))
	if IsEqualTo(a, b) {
		t.Error("graphs differing in a leaf predicate message should not be equal")
	}
}

func TestIsEqualToDifferentKinds(t *testing.T) {
	a := Char('a')
	b := Digit()
	if IsEqualTo(a, b) {
		t.Error("different concrete kinds should never be equal")
	}
}

func TestIsEqualToCyclicGraphs(t *testing.T) {
	s1 := UndefinedSettable("e")
	g1 := Char('(').Seq(Wrap(s1)).Seq(Char(')')).Or(Char('x'))
	s1.Set(g1)

	s2 := UndefinedSettable("e")
	g2 := Char('(').Seq(Wrap(s2)).Seq(Char(')')).Or(Char('x'))
	s2.Set(g2)

	if !IsEqualTo(s1, s2) {
		t.Error("two independently-built cyclic grammars with the same shape should be equal")
	}
}
