// Package regexquery compiles a regular expression into a query tree
// scoped to a single field, backing Backend.RegexToQuery (spec.md §6,
// dispatch rule 8 "regex"/"rx").
package regexquery

import (
	"fmt"

	"github.com/grafana/regexp"
	"github.com/grafana/regexp/syntax"

	"github.com/sourcegraph/mailquery/internal/query"
)

// Query is the Value of the OpaqueTree Compile returns: the compiled
// pattern together with the field it is scoped to.
type Query struct {
	Field  string
	Regexp *regexp.Regexp
}

// Compile parses pattern and, on success, wraps it with fieldName in
// an OpaqueTree the backend's executor later matches against
// fieldName's postings. A syntax error is returned directly; the
// Translator reports any RegexToQuery failure as XapianException.
func Compile(fieldName, pattern string) (query.Tree, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fieldName, err)
	}
	return query.OpaqueTree{Source: "regex", Value: Query{Field: fieldName, Regexp: re}}, nil
}

// Literal reports whether pattern has no regex metacharacters, in
// which case the backend can special-case it to a plain substring or
// wildcard match instead of building an automaton.
func Literal(pattern string) bool {
	re, err := syntax.Parse(pattern, syntax.Perl)
	if err != nil {
		return false
	}
	return re.Op == syntax.OpLiteral
}
