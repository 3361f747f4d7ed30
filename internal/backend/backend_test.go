package backend

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sourcegraph/mailquery/internal/query"
	"github.com/sourcegraph/mailquery/internal/squery"
)

func newTestBackend(t *testing.T) *Backend {
	t.Helper()
	store, err := squery.Connect(":memory:", false)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return New(store)
}

func TestPrefixKnownField(t *testing.T) {
	b := newTestBackend(t)
	assert.Equal(t, "XFROM:", b.Prefix("from"))
	assert.Equal(t, "K", b.Prefix("tag"))
}

func TestPrefixUnknownFieldFallsBackToUppercase(t *testing.T) {
	b := newTestBackend(t)
	assert.Equal(t, "XX-PRIORITY:", b.Prefix("x-priority"))
}

func TestStemWordIterLower(t *testing.T) {
	b := newTestBackend(t)
	assert.Equal(t, "run", b.Stem("running"))
	assert.Equal(t, []string{"hello", "world"}, b.WordIter("hello, world!"))
	assert.Equal(t, "café", b.Lower("CAFÉ"))
}

func TestNamedQueryMissingReturnsError(t *testing.T) {
	b := newTestBackend(t)
	_, err := b.NamedQuery("does-not-exist")
	assert.Error(t, err)
}

func TestNamedQueryResolvesSavedSquery(t *testing.T) {
	b := newTestBackend(t)
	require.NoError(t, b.store.ConfigSet("squery.inbox", "(tag inbox)"))

	tree, err := b.NamedQuery("inbox")
	require.NoError(t, err)
	assert.NotNil(t, tree)
}

func TestInfixParseSyntaxErrorMapsToSentinel(t *testing.T) {
	b := newTestBackend(t)
	_, err := b.InfixParse("a and (b")
	require.Error(t, err)
	assert.True(t, errors.Is(err, query.ErrInfixSyntax))
}

func TestInfixParseValidExpression(t *testing.T) {
	b := newTestBackend(t)
	tree, err := b.InfixParse("alice and bob")
	require.NoError(t, err)
	assert.NotNil(t, tree)
}

func TestUserPrefixGetRoundTrip(t *testing.T) {
	b := newTestBackend(t)
	_, ok := b.UserPrefixGet("x-priority")
	assert.False(t, ok)

	require.NoError(t, b.store.RegisterUserPrefix("x-priority"))

	_, ok = b.UserPrefixGet("x-priority")
	assert.True(t, ok)
}
