package sexp

import (
	"unicode"
	"unicode/utf8"

	"github.com/sourcegraph/sourcegraph/lib/errors"
)

// ErrBadSyntax is wrapped by every error Parse returns, so that callers
// can classify s-expression structural errors the way §7 of the
// compiler spec expects (BadQuerySyntax) without string-matching.
var ErrBadSyntax = errors.New("bad s-expression syntax")

type reader struct {
	buf []byte
	pos int
}

func (r *reader) done() bool {
	return r.pos >= len(r.buf)
}

func (r *reader) peekRune() (rune, int) {
	if r.done() {
		return 0, 0
	}
	return utf8.DecodeRune(r.buf[r.pos:])
}

func (r *reader) advance() rune {
	ru, n := utf8.DecodeRune(r.buf[r.pos:])
	r.pos += n
	return ru
}

func (r *reader) skipSpace() {
	for !r.done() {
		ru, n := r.peekRune()
		if !unicode.IsSpace(ru) {
			return
		}
		r.pos += n
	}
}

// Parse parses text into a single root Node. The root must be exactly
// one value: trailing non-whitespace content, or an unterminated list
// or quoted atom, is a syntax error.
func Parse(text string) (*Node, error) {
	r := &reader{buf: []byte(text)}
	r.skipSpace()
	if r.done() {
		return nil, errors.Wrap(ErrBadSyntax, "empty input")
	}
	node, err := r.readValue()
	if err != nil {
		return nil, err
	}
	r.skipSpace()
	if !r.done() {
		return nil, errors.Wrapf(ErrBadSyntax, "unexpected trailing input at byte %d", r.pos)
	}
	return node, nil
}

func (r *reader) readValue() (*Node, error) {
	ru, _ := r.peekRune()
	switch ru {
	case '(':
		return r.readList()
	case '"':
		return r.readQuoted()
	case ')':
		return nil, errors.Wrapf(ErrBadSyntax, "unexpected ')' at byte %d", r.pos)
	default:
		return r.readBasic(), nil
	}
}

func (r *reader) readList() (*Node, error) {
	// Consume '('.
	r.advance()

	var head, tail *Node
	for {
		r.skipSpace()
		if r.done() {
			return nil, errors.Wrap(ErrBadSyntax, "unterminated list: missing ')'")
		}
		if ru, _ := r.peekRune(); ru == ')' {
			r.advance()
			return NewList(head), nil
		}
		child, err := r.readValue()
		if err != nil {
			return nil, err
		}
		if head == nil {
			head = child
		} else {
			tail.Next = child
		}
		tail = child
	}
}

func (r *reader) readQuoted() (*Node, error) {
	start := r.pos
	r.advance() // opening quote
	var text []rune
	for {
		if r.done() {
			return nil, errors.Wrapf(ErrBadSyntax, "unterminated quoted atom starting at byte %d", start)
		}
		ru := r.advance()
		if ru == '"' {
			return NewAtom(Quoted, string(text)), nil
		}
		if ru == '\\' {
			if r.done() {
				return nil, errors.Wrapf(ErrBadSyntax, "unterminated escape in quoted atom starting at byte %d", start)
			}
			text = append(text, r.advance())
			continue
		}
		text = append(text, ru)
	}
}

func isDelimiter(ru rune) bool {
	return ru == '(' || ru == ')' || ru == '"' || unicode.IsSpace(ru)
}

func (r *reader) readBasic() *Node {
	start := r.pos
	for !r.done() {
		ru, n := r.peekRune()
		if isDelimiter(ru) {
			break
		}
		r.pos += n
	}
	return NewAtom(Basic, string(r.buf[start:r.pos]))
}
