package infixquery

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sourcegraph/mailquery/internal/query"
)

type fakeTerms struct{}

func (fakeTerms) Stem(word string) string  { return strings.TrimSuffix(word, "s") }
func (fakeTerms) Lower(text string) string { return strings.ToLower(text) }
func (fakeTerms) WordIter(text string) []string {
	return strings.Fields(text)
}

func TestParseBareTerm(t *testing.T) {
	tree, err := Parse("Alice", fakeTerms{})
	require.NoError(t, err)
	assert.Equal(t, query.TermTree{Term: "Zalice"}, tree)
}

func TestParseAndOr(t *testing.T) {
	tree, err := Parse("alice and bob or carol", fakeTerms{})
	require.NoError(t, err)
	or, ok := tree.(query.CombineTree)
	require.True(t, ok)
	assert.Equal(t, query.OpOr, or.Op)
	require.Len(t, or.Operands, 3) // seed + (alice and bob) + carol
}

func TestParseImplicitAnd(t *testing.T) {
	tree, err := Parse("alice bob", fakeTerms{})
	require.NoError(t, err)
	and, ok := tree.(query.CombineTree)
	require.True(t, ok)
	assert.Equal(t, query.OpAnd, and.Op)
	require.Len(t, and.Operands, 3) // seed + alice + bob
}

func TestParseNot(t *testing.T) {
	tree, err := Parse("not alice", fakeTerms{})
	require.NoError(t, err)
	not, ok := tree.(query.CombineTree)
	require.True(t, ok)
	assert.Equal(t, query.OpAndNot, not.Op)
}

func TestParseParens(t *testing.T) {
	tree, err := Parse("(alice or bob) and carol", fakeTerms{})
	require.NoError(t, err)
	and, ok := tree.(query.CombineTree)
	require.True(t, ok)
	assert.Equal(t, query.OpAnd, and.Op)
	_, ok = and.Operands[1].(query.CombineTree)
	require.True(t, ok)
}

func TestParseQuotedPhrase(t *testing.T) {
	tree, err := Parse(`"hello world"`, fakeTerms{})
	require.NoError(t, err)
	assert.Equal(t, query.PhraseTree{Terms: []string{"hello", "world"}}, tree)
}

func TestParseUnterminatedQuote(t *testing.T) {
	_, err := Parse(`"hello`, fakeTerms{})
	require.Error(t, err)
	assert.True(t, IsSyntaxError(err))
}

func TestParseUnbalancedParens(t *testing.T) {
	_, err := Parse(`(alice`, fakeTerms{})
	require.Error(t, err)
	assert.True(t, IsSyntaxError(err))
}

func TestParseTrailingGarbage(t *testing.T) {
	_, err := Parse(`alice)`, fakeTerms{})
	require.Error(t, err)
	assert.True(t, IsSyntaxError(err))
}
