package search

import (
	"strconv"
	"strings"

	"github.com/crux-bphc/chrono-search/internal/domain/search/params"
	"github.com/crux-bphc/chrono-search/internal/domain/search/query"
)

// Per-field strategies for explicit timetable filters.
var (
	timetableAuthor   = strategy{kind: exact, field: "authorId", rule: caseLower}
	timetableYear     = strategy{kind: exact, field: "year"}
	timetableAcadYear = strategy{kind: exact, field: "acadYear"}
	timetableSemester = strategy{kind: exact, field: "semester"}
	timetableDegrees  = strategy{kind: nestedAll, field: "degrees", rule: caseUpper}
	timetableCourses  = strategy{kind: nestedFuzzy, field: "courses.name", path: "courses"}
)

// CompileTimetable translates timetable search parameters into one query
// tree. Unlike courses, a request with no usable parameter is served as a
// relevance-less match-everything page.
func CompileTimetable(p params.Timetable) query.Query {
	if p.Empty() {
		return query.MatchAll{}
	}

	var clauses []query.Query

	if p.Query != "" {
		clauses = append(clauses, timetableFreeText(p.Query))
	}
	if p.AuthorID != "" {
		clauses = append(clauses, timetableAuthor.clause(p.AuthorID))
	}
	if p.Year != 0 {
		clauses = append(clauses, timetableYear.clause(p.Year))
	}
	if p.AcadYear != 0 {
		clauses = append(clauses, timetableAcadYear.clause(p.AcadYear))
	}
	if p.Semester != 0 {
		clauses = append(clauses, timetableSemester.clause(p.Semester))
	}
	if degrees := params.Clean(p.Degrees); len(degrees) > 0 {
		clauses = append(clauses, timetableDegrees.clauseAll(degrees))
	}
	// Each course name is an independent clause: all supplied names must be
	// represented, each possibly by a different referenced course.
	for _, course := range params.Clean(p.Courses) {
		clauses = append(clauses, timetableCourses.clause(course))
	}

	return unwrap(clauses)
}

// timetableFreeText fans the phrase out over five branches combined by
// best-branch-plus-fraction (tie breaker 0.7): one strong field match beats
// weak matches spread across many fields.
func timetableFreeText(phrase string) query.Query {
	branches := []query.Query{}

	if bundle := degreeYearBundle(phrase); bundle != nil {
		branches = append(branches, bundle)
	}

	branches = append(branches,
		query.Nested{
			Path: "courses",
			Query: query.Bool{
				Should: []query.Query{
					query.Match{Field: "courses.code", Query: phrase, Boost: 2.0},
					query.Match{Field: "courses.name", Query: phrase, Boost: 2.0},
				},
				Boost: 2.0,
			},
		},
		query.Nested{
			Path:  "sections",
			Query: query.Match{Field: "sections.instructors", Query: phrase},
			Boost: 1.5,
		},
		query.Match{Field: "name", Query: phrase},
		query.Term{Field: "authorId", Value: strings.ToLower(phrase), Boost: 2.0},
	)

	return query.Best{Branches: branches, TieBreaker: 0.7}
}

// degreeYearBundle derives degree and year candidates from the free-text
// phrase: 4-character alphanumeric tokens are split into two 2-character
// degree codes ("degree pair" heuristic), every token is upper-cased as a
// literal degree candidate, and purely numeric tokens become year candidates.
// Returns nil when the phrase yields no candidates at all.
func degreeYearBundle(phrase string) query.Query {
	var should []query.Query

	if pairs := degreePairTokens(phrase); len(pairs) > 0 {
		should = append(should, query.TermsSet{
			Field: "degrees", Terms: pairs, MinimumShouldMatch: 1, Boost: 2.0,
		})
	}
	if literals := upperTokens(phrase); len(literals) > 0 {
		should = append(should, query.TermsSet{
			Field: "degrees", Terms: literals, MinimumShouldMatch: 1, Boost: 1.0,
		})
	}
	if years := numericTokens(phrase); len(years) > 0 {
		should = append(should, query.TermsSet{
			Field: "year", Terms: years, MinimumShouldMatch: 1, Boost: 4.0,
		})
	}

	if len(should) == 0 {
		return nil
	}
	return query.Bool{Should: should, Boost: 1.5}
}

func degreePairTokens(phrase string) []any {
	var pairs []any
	for _, token := range strings.Fields(phrase) {
		if len(token) != 4 || !isAlphanumeric(token) {
			continue
		}
		upper := strings.ToUpper(token)
		pairs = append(pairs, upper[0:2], upper[2:4])
	}
	return pairs
}

func upperTokens(phrase string) []any {
	fields := strings.Fields(phrase)
	tokens := make([]any, len(fields))
	for i, f := range fields {
		tokens[i] = strings.ToUpper(f)
	}
	return tokens
}

func numericTokens(phrase string) []any {
	var years []any
	for _, token := range strings.Fields(phrase) {
		if n, err := strconv.Atoi(token); err == nil && n >= 0 {
			years = append(years, n)
		}
	}
	return years
}

func isAlphanumeric(s string) bool {
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}
