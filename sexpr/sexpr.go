// Package sexpr reads the s-expressions solvers print on their output
// stream. It covers the subset of SMT-LIB2 surface syntax needed to
// consume check-sat and get-value replies: atoms, lists, line comments
// and |...| quoted symbols.
package sexpr

import "strings"

// Node is one parsed expression: either an Atom or a List.
type Node interface {
	// String renders the node in canonical form, parenthesized and
	// single-space joined. It does not reproduce original whitespace
	// or comments.
	String() string
}

// Atom is a bare token or the verbatim contents of a |...| symbol.
type Atom string

func (a Atom) String() string {
	return string(a)
}

// List is an ordered sequence of sub-expressions.
type List []Node

func (l List) String() string {
	parts := make([]string, len(l))
	for i, node := range l {
		parts[i] = node.String()
	}
	return "(" + strings.Join(parts, " ") + ")"
}
