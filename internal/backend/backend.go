// Package backend wires the Translator's external-collaborator seam
// (query.Backend) to concrete implementations: Unicode word-splitting,
// stemming, regex/date/lastmod/infix query construction, and a
// sqlite-backed configuration store, the way the teacher's own
// "client" packages assemble a concrete implementation behind a
// narrow internal interface.
package backend

import (
	"fmt"
	"strings"

	sglog "github.com/sourcegraph/log"

	"github.com/sourcegraph/mailquery/internal/daterange"
	"github.com/sourcegraph/mailquery/internal/infixquery"
	"github.com/sourcegraph/mailquery/internal/query"
	"github.com/sourcegraph/mailquery/internal/regexquery"
	"github.com/sourcegraph/mailquery/internal/squery"
	"github.com/sourcegraph/mailquery/internal/stem"
	"github.com/sourcegraph/mailquery/internal/unicodeword"
)

// knownPrefixes maps a field name to its Xapian-style term prefix.
// Fields outside this table (user-defined headers) fall back to an
// uppercased "X<NAME>:" form.
var knownPrefixes = map[string]string{
	"attachment": "XFILENAME:",
	"body":       "",
	"from":       "XFROM:",
	"folder":     "XFOLDER:",
	"id":         "Q",
	"is":         "XLABEL:",
	"mid":        "Q",
	"mimetype":   "XMIMETYPE:",
	"path":       "XPATH:",
	"property":   "XPROPERTY:",
	"subject":    "XSUBJECT:",
	"tag":        "K",
	"thread":     "XTHREAD:",
	"to":         "XTO:",
}

// Backend is the reference query.Backend implementation.
type Backend struct {
	store  *squery.Store
	logger sglog.Logger
}

// New builds a Backend backed by store, logging through a scoped
// logger named "mailquery.query".
func New(store *squery.Store) *Backend {
	return &Backend{
		store:  store,
		logger: sglog.Scoped("mailquery.query", "s-expression query compiler"),
	}
}

func (b *Backend) Prefix(fieldName string) string {
	if p, ok := knownPrefixes[fieldName]; ok {
		return p
	}
	return "X" + strings.ToUpper(fieldName) + ":"
}

func (b *Backend) Stem(word string) string { return stem.Word(word) }

func (b *Backend) WordIter(text string) []string { return unicodeword.Split(text) }

func (b *Backend) Lower(text string) string { return unicodeword.Lower(text) }

func (b *Backend) RegexToQuery(valueNo int, fieldName, pattern string) (query.Tree, error) {
	return regexquery.Compile(fieldName, pattern)
}

func (b *Backend) DateRangeToQuery(from, to string) (query.Tree, error) {
	return daterange.Query(from, to)
}

func (b *Backend) LastmodRangeToQuery(from, to string) (query.Tree, error) {
	return daterange.LastmodQuery(from, to)
}

func (b *Backend) InfixParse(text string) (query.Tree, error) {
	tree, err := infixquery.Parse(text, b)
	if err != nil {
		if infixquery.IsSyntaxError(err) {
			return nil, fmt.Errorf("%w: %v", query.ErrInfixSyntax, err)
		}
		return nil, err
	}
	return tree, nil
}

func (b *Backend) NamedQuery(name string) (query.Tree, error) {
	val, ok := b.store.ConfigGet("squery." + name)
	if !ok {
		return nil, fmt.Errorf("no saved query named %q", name)
	}
	return query.Compile(b, val)
}

// QueryExpand performs no expansion itself: it wraps sub and fieldName
// unchanged in an OpaqueTree tagged "expand", leaving any
// synonym/related-term lookup to whatever evaluates the tree. The
// compiler itself never inspects the result (§6); it only threads it
// through.
func (b *Backend) QueryExpand(fieldName string, sub query.Tree) (query.Tree, error) {
	return query.OpaqueTree{Source: "expand", Value: expandedQuery{Field: fieldName, Sub: sub}}, nil
}

type expandedQuery struct {
	Field string
	Sub   query.Tree
}

func (b *Backend) ConfigGet(key string) (string, bool) { return b.store.ConfigGet(key) }

func (b *Backend) UserPrefixGet(name string) (string, bool) { return b.store.UserPrefixGet(name) }

func (b *Backend) Log(message string) { b.logger.Info(message) }
