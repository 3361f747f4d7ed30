// Package sexp implements the SexpReader component: parsing of raw
// query text into an s-expression AST of atoms and linked-cell lists.
package sexp

import "strconv"

// AtomKind distinguishes an unquoted identifier/symbol/number from a
// double-quoted string literal.
type AtomKind int

const (
	// Basic atoms contain no embedded whitespace and are not quoted.
	Basic AtomKind = iota
	// Quoted atoms were written as "..." and may contain whitespace
	// and punctuation verbatim.
	Quoted
)

// Node is a single s-expression value: either an atom or a list cell.
//
// Lists are represented the way the original notmuch sexp library
// represents them: as singly linked cells. Head points at the first
// child of a list (nil for the empty list); Next chains a node to its
// following sibling within the list that contains it. An atom's Next
// is likewise its following sibling, or nil if it is the list's last
// element (or the lone root value).
type Node struct {
	IsList bool

	// Atom fields. Meaningful only when IsList is false.
	Kind AtomKind
	Text string

	// List fields. Meaningful only when IsList is true.
	Head *Node

	Next *Node
}

// NewAtom constructs a leaf atom node.
func NewAtom(kind AtomKind, text string) *Node {
	return &Node{Kind: kind, Text: text}
}

// NewList constructs a list node whose first child is head.
func NewList(head *Node) *Node {
	return &Node{IsList: true, Head: head}
}

// Empty reports whether a list node has no children.
func (n *Node) Empty() bool {
	return n.IsList && n.Head == nil
}

// Children returns the node's list elements in order. It panics if n
// is not a list; callers are expected to check IsList first, the same
// way the translator's dispatch does.
func (n *Node) Children() []*Node {
	if !n.IsList {
		panic("sexp: Children called on an atom")
	}
	var out []*Node
	for c := n.Head; c != nil; c = c.Next {
		out = append(out, c)
	}
	return out
}

// String renders n back to s-expression syntax, primarily for
// diagnostics and test failure messages.
func (n *Node) String() string {
	if n == nil {
		return "()"
	}
	if !n.IsList {
		switch n.Kind {
		case Quoted:
			return strconv.Quote(n.Text)
		default:
			return n.Text
		}
	}
	s := "("
	for c := n.Head; c != nil; c = c.Next {
		if c != n.Head {
			s += " "
		}
		s += c.String()
	}
	return s + ")"
}
