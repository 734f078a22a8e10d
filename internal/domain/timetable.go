package domain

import "sort"

// CourseSummary is the {code, name} pair denormalized into a timetable at
// insertion time. It is a point-in-time copy and is never refreshed when the
// source course changes.
type CourseSummary struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// Timetable is a user-built timetable document.
type Timetable struct {
	ID          string          `json:"id"`
	AuthorID    string          `json:"authorId"`
	Name        string          `json:"name"`
	Degrees     []string        `json:"degrees"`
	Private     bool            `json:"private"`
	Draft       bool            `json:"draft"`
	Archived    bool            `json:"archived"`
	Year        int             `json:"year"`
	AcadYear    int             `json:"acadYear"`
	Semester    int             `json:"semester"`
	Sections    []Section       `json:"sections"`
	Timings     []string        `json:"timings"`
	ExamTimes   []string        `json:"examTimes"`
	Warnings    []string        `json:"warnings"`
	CreatedAt   string          `json:"createdAt"`
	LastUpdated string          `json:"lastUpdated"`
	Courses     []CourseSummary `json:"courses,omitempty"`
}

// CourseIDs returns the distinct courseId values referenced by the
// timetable's sections, in sorted order.
func (t *Timetable) CourseIDs() []string {
	seen := make(map[string]struct{}, len(t.Sections))
	for _, s := range t.Sections {
		seen[s.CourseID] = struct{}{}
	}
	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Enrich attaches the denormalized course summaries and flattens every string
// field to a single line. Summaries must be supplied in the order returned by
// CourseIDs.
func (t *Timetable) Enrich(courses []CourseSummary) {
	t.Courses = courses
	t.sanitize()
}

func (t *Timetable) sanitize() {
	t.ID = singleLine(t.ID)
	t.AuthorID = singleLine(t.AuthorID)
	t.Name = singleLine(t.Name)
	t.CreatedAt = singleLine(t.CreatedAt)
	t.LastUpdated = singleLine(t.LastUpdated)
	singleLineAll(t.Degrees)
	singleLineAll(t.Timings)
	singleLineAll(t.ExamTimes)
	singleLineAll(t.Warnings)
	for i := range t.Sections {
		t.Sections[i].sanitize()
	}
	for i := range t.Courses {
		t.Courses[i].Code = singleLine(t.Courses[i].Code)
		t.Courses[i].Name = singleLine(t.Courses[i].Name)
	}
}
