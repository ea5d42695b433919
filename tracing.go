/*
Package petitgo implements a parser combinator toolkit: small
composable recognizers for characters, strings, sequences, choices
and repetitions, wired together into a directed graph of parser nodes
that is run against an input string to produce either a value or a
diagnostic failure.

The engine is grounded on the PetitParser family of libraries
(Smalltalk/Dart/Python): a parser is a node that knows how to consume
a prefix of a buffer starting at some position, either succeeding with
a value and a new position or failing with a message. Composing nodes
builds up grammars without any separate grammar-description language.

License

Governed by a 3-Clause BSD license.
*/
package petitgo

import (
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'petitgo'.
func tracer() tracing.Trace {
	return tracing.Select("petitgo")
}

// T traces to the global syntax tracer (gtrace.SyntaxTracer). The
// package's own diagnostics go to tracer() instead, and the grammar
// and expr packages select their own "petitgo.grammar" and
// "petitgo.expr" tracers.
func T() tracing.Trace {
	return gtrace.SyntaxTracer
}
