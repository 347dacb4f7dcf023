// Package sqlxrepos provides the Postgres-backed repositories.
package sqlxrepos

import (
	"strconv"

	"github.com/volatiletech/null/v8"

	"github.com/acuhub/portal/core"
)

// placeholder returns the n-th positional bindvar ($1, $2, ...).
func placeholder(n int) string {
	return "$" + strconv.Itoa(n)
}

// orderBy renders an ORDER BY clause, falling back to the given default.
func orderBy(ordering []core.DBOrdering, fallback string) string {
	if len(ordering) == 0 {
		if fallback == "" {
			return ""
		}
		return " ORDER BY " + fallback
	}
	terms := make([]string, 0, len(ordering))
	for _, ord := range ordering {
		terms = append(terms, ord.String())
	}
	clause := terms[0]
	for _, t := range terms[1:] {
		clause += ", " + t
	}
	return " ORDER BY " + clause
}

func utcNullTime(t null.Time) null.Time {
	if t.Valid {
		t.Time = t.Time.UTC()
	}
	return t
}
