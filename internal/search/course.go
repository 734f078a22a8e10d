package search

import (
	"github.com/crux-bphc/chrono-search/internal/domain"
	"github.com/crux-bphc/chrono-search/internal/domain/search/params"
	"github.com/crux-bphc/chrono-search/internal/domain/search/query"
)

// Per-field strategies for explicit course filters.
var (
	courseName        = strategy{kind: fuzzyText, field: "name"}
	courseCode        = strategy{kind: exact, field: "code", rule: caseUpper}
	courseDept        = strategy{kind: exact, field: "dept", rule: caseUpper}
	courseInstructors = strategy{kind: nestedFuzzy, field: "sections.instructors", path: "sections"}
	courseTime        = strategy{kind: nestedAll, field: "sections.time", path: "sections"}
)

// Branches of the course free-text fan-out, combined by summed-OR: a course
// matching several branches scores the sum of all of them.
var courseFreeText = []strategy{
	{kind: exact, field: "code", rule: caseUpper, boost: 2.0},
	{kind: exact, field: "dept", rule: caseUpper, boost: 2.5},
	{kind: fuzzyText, field: "name", boost: 2.0},
	{kind: nestedFuzzy, field: "sections.instructors", path: "sections"},
}

// CompileCourse translates course search parameters into one query tree.
// All resulting clauses are AND-ed; a request with no usable parameter is
// rejected with domain.ErrBadRequest.
func CompileCourse(p params.Course) (query.Query, error) {
	if p.Empty() {
		return nil, domain.ErrBadRequest
	}

	var clauses []query.Query

	if p.Query != "" {
		branches := make([]query.Query, len(courseFreeText))
		for i, s := range courseFreeText {
			branches[i] = s.clause(p.Query)
		}
		clauses = append(clauses, query.Sum(branches...))
	}
	if p.Name != "" {
		clauses = append(clauses, courseName.clause(p.Name))
	}
	if p.Code != "" {
		clauses = append(clauses, courseCode.clause(p.Code))
	}
	if p.Dept != "" {
		clauses = append(clauses, courseDept.clause(p.Dept))
	}
	// Each instructor is an independent clause: all supplied names must
	// appear, each possibly on a different section.
	for _, instructor := range params.Clean(p.Instructors) {
		clauses = append(clauses, courseInstructors.clause(instructor))
	}
	if times := params.Clean(p.Time); len(times) > 0 {
		clauses = append(clauses, courseTime.clauseAll(times))
	}

	return unwrap(clauses), nil
}
