// Package daterange resolves the textual bounds of a (date ...) or
// (lastmod ...) form into a query tree, backing
// Backend.DateRangeToQuery/LastmodRangeToQuery (spec.md §6, §4.3.d).
package daterange

import (
	"fmt"
	"strconv"
	"time"

	naturaldate "github.com/tj/go-naturaldate"

	"github.com/sourcegraph/mailquery/internal/query"
)

// Range is the resolved [Start, End) bound of a date range. A zero
// Start/End means the range is open on that side.
type Range struct {
	Start time.Time
	End   time.Time
}

// Query resolves from/to, in natural-language or absolute form (e.g.
// "2023-01-01", "yesterday", "3 days ago"), relative to now. An empty
// string on either side leaves that side open, matching the "*"
// wildcard end of a (date ...) form.
func Query(from, to string) (query.Tree, error) {
	now := time.Now()
	r := Range{}

	if from != "" {
		t, err := naturaldate.Parse(from, now)
		if err != nil {
			return nil, fmt.Errorf("parsing date %q: %w", from, err)
		}
		r.Start = t
	}
	if to != "" {
		t, err := naturaldate.Parse(to, now)
		if err != nil {
			return nil, fmt.Errorf("parsing date %q: %w", to, err)
		}
		r.End = t
	}

	return query.OpaqueTree{Source: "date", Value: r}, nil
}

// LastmodRange is the resolved [Start, End) bound of a lastmod
// revision-counter range. HasStart/HasEnd distinguish an explicit 0
// from an open end.
type LastmodRange struct {
	Start, End       int64
	HasStart, HasEnd bool
}

// LastmodQuery resolves from/to as the database's lastmod revision
// counter, a plain non-negative integer rather than a date.
func LastmodQuery(from, to string) (query.Tree, error) {
	r := LastmodRange{}

	if from != "" {
		n, err := strconv.ParseInt(from, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parsing lastmod %q: %w", from, err)
		}
		r.Start, r.HasStart = n, true
	}
	if to != "" {
		n, err := strconv.ParseInt(to, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parsing lastmod %q: %w", to, err)
		}
		r.End, r.HasEnd = n, true
	}

	return query.OpaqueTree{Source: "lastmod", Value: r}, nil
}
