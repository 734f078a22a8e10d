// Package params holds the typed, optional search parameters accepted for
// each entity. Empty values mean "not supplied" and are ignored by the
// compilers.
package params

// Course are the recognized course search parameters.
type Course struct {
	Query       string
	Name        string
	Code        string
	Dept        string
	Instructors []string
	Time        []string
}

// Empty reports whether no usable parameter was supplied.
func (p Course) Empty() bool {
	return p.Query == "" && p.Name == "" && p.Code == "" && p.Dept == "" &&
		!anyValue(p.Instructors) && !anyValue(p.Time)
}

// Timetable are the recognized timetable search parameters. Offset is the
// zero-based result offset for pagination. Zero-valued ints mean "not
// supplied"; year 0 is not a meaningful timetable year.
type Timetable struct {
	Query    string
	AuthorID string
	Year     int
	AcadYear int
	Semester int
	Degrees  []string
	Courses  []string
	Offset   int
}

// Empty reports whether no usable parameter was supplied. An empty timetable
// request is still served (match-everything), unlike the course case.
func (p Timetable) Empty() bool {
	return p.Query == "" && p.AuthorID == "" && p.Year == 0 &&
		p.AcadYear == 0 && p.Semester == 0 && !anyValue(p.Degrees) &&
		!anyValue(p.Courses)
}

// Clean drops empty strings from a list parameter, preserving order.
func Clean(values []string) []string {
	out := values[:0]
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

func anyValue(values []string) bool {
	for _, v := range values {
		if v != "" {
			return true
		}
	}
	return false
}
