package sexp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"empty list", "()", "()"},
		{"basic atom", "foo", "foo"},
		{"simple list", "(and foo bar)", "(and foo bar)"},
		{"nested list", "(and (or a b) c)", "(and (or a b) c)"},
		{"quoted atom", `(from "Alice Smith")`, `(from "Alice Smith")`},
		{"quoted escape", `"a\"b"`, `"a\"b"`},
		{"param ref", "(from ,f)", "(from ,f)"},
		{"wildcard star", "(subject *)", "(subject *)"},
		{"surrounding whitespace", "  (and a b)  ", "(and a b)"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			node, err := Parse(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, node.String())
		})
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name string
		in   string
	}{
		{"unterminated list", "(and foo"},
		{"unterminated quote", `(from "Alice`},
		{"stray close paren", "foo)"},
		{"trailing garbage", "(and a) (or b)"},
		{"empty input", ""},
		{"only whitespace", "   "},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(tc.in)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrBadSyntax)
		})
	}
}

func TestNodeChildrenAndEmpty(t *testing.T) {
	node, err := Parse("(a b c)")
	require.NoError(t, err)
	assert.True(t, node.IsList)
	assert.False(t, node.Empty())

	children := node.Children()
	require.Len(t, children, 3)
	assert.Equal(t, "a", children[0].Text)
	assert.Equal(t, "b", children[1].Text)
	assert.Equal(t, "c", children[2].Text)

	empty, err := Parse("()")
	require.NoError(t, err)
	assert.True(t, empty.Empty())
	assert.Nil(t, empty.Children())
}

func TestParseQuotedPreservesWhitespace(t *testing.T) {
	node, err := Parse(`"hello   world"`)
	require.NoError(t, err)
	assert.Equal(t, Quoted, node.Kind)
	assert.Equal(t, "hello   world", node.Text)
}
