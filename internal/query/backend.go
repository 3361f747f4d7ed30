package query

// Backend is the external-collaborator interface of §6: the narrow
// seam through which the Translator reaches the inverted-index engine
// and its configuration, without depending on it directly.
//
// Implementations live outside this package (see internal/backend for
// the reference implementation) so that the compiler itself never
// imports storage, indexing, or transport code.
type Backend interface {
	// Prefix returns the internal term-prefix string for a field name,
	// e.g. Prefix("from") -> "XFROM:".
	Prefix(fieldName string) string

	// Stem reduces word to its morphological root for index lookup.
	Stem(word string) string

	// WordIter splits text into its Unicode word-boundary segments,
	// skipping non-word runs (spec.md §4.3.b).
	WordIter(text string) []string

	// Lower case-folds text using Unicode-aware lowercasing.
	Lower(text string) string

	// RegexToQuery compiles pattern, scoped to fieldName, into a
	// backend query. valueNo is the slot-number hint the original
	// Xapian interface threads through; -1 means "no specific slot".
	RegexToQuery(valueNo int, fieldName, pattern string) (Tree, error)

	// DateRangeToQuery resolves a [from, to) date range into a
	// backend query. Empty strings denote an open end.
	DateRangeToQuery(from, to string) (Tree, error)

	// LastmodRangeToQuery resolves a [from, to) lastmod-counter range
	// into a backend query.
	LastmodRangeToQuery(from, to string) (Tree, error)

	// InfixParse parses text with the backend's own infix query
	// parser (spec.md §4.3 rule 8, "infix").
	InfixParse(text string) (Tree, error)

	// NamedQuery resolves a saved query by name (spec.md §4.3 rule 8,
	// "query").
	NamedQuery(name string) (Tree, error)

	// QueryExpand hands sub, already compiled as if it were a
	// top-level query, to the backend's term-expansion helper scoped
	// to fieldName (spec.md §4.3 rule 8, DO_EXPAND).
	QueryExpand(fieldName string, sub Tree) (Tree, error)

	// ConfigGet looks up a configuration key, used to resolve saved
	// squeries ("squery." + name). The bool is false if unset or the
	// value is empty.
	ConfigGet(key string) (string, bool)

	// UserPrefixGet reports whether name is a user-defined header
	// prefix, and if so its exact form (spec.md §4.3 rule 6).
	UserPrefixGet(name string) (string, bool)

	// Log writes a single diagnostic line, e.g. an accompanying
	// message for a BadQuerySyntax error (§4.3 Error-diagnostic
	// contract).
	Log(message string)
}
