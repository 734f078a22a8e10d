// Package search compiles typed, optional search parameters into a single
// ranked query tree per entity.
//
// Each searchable field is statically bound to one matching strategy in a
// declarative table, so adding a field is a data change rather than new
// control flow.
package search

import (
	"strings"

	"github.com/crux-bphc/chrono-search/internal/domain/search/query"
)

// PageSize is the fixed result page size per search call.
const PageSize = 10

type caseRule int

const (
	caseNone caseRule = iota
	caseUpper
	caseLower
)

type kind int

const (
	// exact matches a single term against a keyword or numeric field.
	exact kind = iota
	// fuzzyText matches text with length-scaled edit-distance tolerance.
	fuzzyText
	// nestedFuzzy requires at least one embedded array element to fuzzily
	// match the field.
	nestedFuzzy
	// nestedAll requires every supplied value to be present in one array
	// field occurrence (set containment).
	nestedAll
)

// strategy binds one searchable field to its matching behavior.
type strategy struct {
	kind  kind
	field string // engine field path
	path  string // nested scope, for the nested kinds
	boost float64
	rule  caseRule
}

// clause builds the query clause for a single value.
func (s strategy) clause(value any) query.Query {
	if v, ok := value.(string); ok {
		value = s.applyCase(v)
	}
	var q query.Query
	switch s.kind {
	case exact:
		q = query.Term{Field: s.field, Value: value, Boost: s.boost}
	case fuzzyText:
		q = query.Match{Field: s.field, Query: value.(string), Boost: s.boost}
	case nestedFuzzy:
		q = query.Nested{
			Path:  s.path,
			Query: query.Match{Field: s.field, Query: value.(string)},
			Boost: s.boost,
		}
	default:
		panic("clause: strategy kind takes a value list")
	}
	return q
}

// clauseAll builds the set-containment clause for a list-valued field: the
// document matches only when all supplied values are present.
func (s strategy) clauseAll(values []string) query.Query {
	terms := make([]any, len(values))
	for i, v := range values {
		terms[i] = s.applyCase(v)
	}
	ts := query.TermsSet{
		Field:              s.field,
		Terms:              terms,
		MinimumShouldMatch: len(terms),
		Boost:              s.boost,
	}
	if s.path == "" {
		return ts
	}
	return query.Nested{Path: s.path, Query: ts}
}

func (s strategy) applyCase(v string) string {
	switch s.rule {
	case caseUpper:
		return strings.ToUpper(v)
	case caseLower:
		return strings.ToLower(v)
	default:
		return v
	}
}

// unwrap avoids a redundant combinator around a single clause. Purely an
// optimization: ranking is unchanged.
func unwrap(clauses []query.Query) query.Query {
	if len(clauses) == 1 {
		return clauses[0]
	}
	return query.And(clauses...)
}
