// Package query models the engine query tree produced by the compilers.
//
// Every node serializes itself to the Elasticsearch query DSL. Score
// combination is carried by two explicit combinators: Sum (bool/should, a
// document scores the sum of every branch it satisfies) and Best (dis_max,
// the top branch plus a fraction of the rest).
package query

import "encoding/json"

// Query is a single node of the query tree.
type Query interface {
	json.Marshaler
}

// Term is an exact-term match against a keyword or numeric field.
type Term struct {
	Field string
	Value any
	Boost float64 // 0 = unboosted
}

// MarshalJSON implements the ES term query.
func (q Term) MarshalJSON() ([]byte, error) {
	body := map[string]any{"value": q.Value}
	if q.Boost != 0 {
		body["boost"] = q.Boost
	}
	return json.Marshal(map[string]any{
		"term": map[string]any{q.Field: body},
	})
}

// Match is a fuzzy full-text match. Fuzziness is always AUTO: the tolerated
// edit distance scales with term length (0 for <=2 chars, 1 for 3-5, 2
// beyond). Lenient matching ignores type mismatches instead of failing the
// whole query.
type Match struct {
	Field string
	Query string
	Boost float64
}

// MarshalJSON implements the ES match query.
func (q Match) MarshalJSON() ([]byte, error) {
	body := map[string]any{
		"query":     q.Query,
		"fuzziness": "AUTO",
		"lenient":   true,
	}
	if q.Boost != 0 {
		body["boost"] = q.Boost
	}
	return json.Marshal(map[string]any{
		"match": map[string]any{q.Field: body},
	})
}

// Nested scopes an inner query to one element of an embedded document array:
// a document matches when at least one array element satisfies the inner
// query, independent of its siblings.
type Nested struct {
	Path  string
	Query Query
	Boost float64
}

// MarshalJSON implements the ES nested query.
func (q Nested) MarshalJSON() ([]byte, error) {
	body := map[string]any{
		"path":  q.Path,
		"query": q.Query,
	}
	if q.Boost != 0 {
		body["boost"] = q.Boost
	}
	return json.Marshal(map[string]any{"nested": body})
}

// TermsSet matches an array-valued field against a set of terms, requiring
// MinimumShouldMatch of them to be present. MinimumShouldMatch equal to
// len(Terms) gives set-containment ("all N supplied values present");
// 1 gives the "at least one" form used by the free-text degree heuristics.
type TermsSet struct {
	Field              string
	Terms              []any
	MinimumShouldMatch int
	Boost              float64
}

// MarshalJSON implements the ES terms_set query.
func (q TermsSet) MarshalJSON() ([]byte, error) {
	body := map[string]any{
		"terms":                q.Terms,
		"minimum_should_match": q.MinimumShouldMatch,
	}
	if q.Boost != 0 {
		body["boost"] = q.Boost
	}
	return json.Marshal(map[string]any{
		"terms_set": map[string]any{q.Field: body},
	})
}

// Bool combines clauses: Must clauses all have to hold (logical AND), Should
// clauses are optional. A document's score is the sum of the scores of every
// clause it satisfies, so Bool{Should: ...} is the summed-OR combinator.
type Bool struct {
	Must   []Query
	Should []Query
	Boost  float64
}

// MarshalJSON implements the ES bool query.
func (q Bool) MarshalJSON() ([]byte, error) {
	body := map[string]any{}
	if len(q.Must) > 0 {
		body["must"] = q.Must
	}
	if len(q.Should) > 0 {
		body["should"] = q.Should
	}
	if q.Boost != 0 {
		body["boost"] = q.Boost
	}
	return json.Marshal(map[string]any{"bool": body})
}

// Sum builds the summed-OR combinator over the given branches.
func Sum(branches ...Query) Bool {
	return Bool{Should: branches}
}

// And builds a conjunction of filter clauses.
func And(clauses ...Query) Bool {
	return Bool{Must: clauses}
}

// Best is the best-branch-plus-fraction combinator: a document's score is
// its single highest-scoring branch plus TieBreaker times the sum of every
// other satisfied branch. It rewards one strong field match over weak
// matches spread across many fields.
type Best struct {
	Branches   []Query
	TieBreaker float64
}

// MarshalJSON implements the ES dis_max query.
func (q Best) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{
		"dis_max": map[string]any{
			"queries":     q.Branches,
			"tie_breaker": q.TieBreaker,
		},
	})
}

// MatchAll matches every document with a neutral score.
type MatchAll struct{}

// MarshalJSON implements the ES match_all query.
func (MatchAll) MarshalJSON() ([]byte, error) {
	return []byte(`{"match_all":{}}`), nil
}
