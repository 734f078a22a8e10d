package domain

import "strings"

// Index names for the two document collections.
const (
	CourseIndex    = "courses"
	TimetableIndex = "timetables"
)

// Section is a course section embedded in a Course or Timetable document.
// RoomTime carries the raw "room:day:hour:slot" strings from the upstream
// catalog; Enrich replaces it with the derived Time list.
type Section struct {
	ID          string   `json:"id"`
	CourseID    string   `json:"courseId"`
	Type        string   `json:"type"`
	Number      int      `json:"number"`
	Instructors []string `json:"instructors"`
	RoomTime    []string `json:"roomTime,omitempty"`
	Time        []string `json:"time,omitempty"`
	CreatedAt   string   `json:"createdAt"`
}

// Course is an academic course document.
type Course struct {
	ID              string    `json:"id"`
	Code            string    `json:"code"`
	Dept            string    `json:"dept,omitempty"`
	Name            string    `json:"name"`
	Sections        []Section `json:"sections"`
	MidsemStartTime *string   `json:"midsemStartTime"`
	MidsemEndTime   *string   `json:"midsemEndTime"`
	CompreStartTime *string   `json:"compreStartTime"`
	CompreEndTime   *string   `json:"compreEndTime"`
	Archived        bool      `json:"archived"`
	AcadYear        int       `json:"acadYear"`
	Semester        int       `json:"semester"`
	CreatedAt       string    `json:"createdAt"`
}

// Enrich computes the derived fields stored in the index: Dept is the first
// whitespace-delimited token of Code, and each section's RoomTime list is
// collapsed into Time, keeping only the trailing "HH:SS" part of each entry.
// All string fields are flattened to a single line.
func (c *Course) Enrich() {
	c.Dept = DeriveDept(c.Code)
	for i := range c.Sections {
		c.Sections[i].enrich()
	}
	c.sanitize()
}

func (s *Section) enrich() {
	s.Time = make([]string, 0, len(s.RoomTime))
	for _, rt := range s.RoomTime {
		s.Time = append(s.Time, timeSlot(rt))
	}
	s.RoomTime = nil
}

// DeriveDept extracts the department code from a course code such as "CS F111".
func DeriveDept(code string) string {
	if fields := strings.Fields(code); len(fields) > 0 {
		return fields[0]
	}
	return ""
}

// timeSlot keeps the last two colon-separated components of a roomTime entry,
// discarding the leading room/day qualifier: "L1:MON:08:09" -> "08:09".
func timeSlot(roomTime string) string {
	parts := strings.Split(roomTime, ":")
	if len(parts) > 2 {
		parts = parts[len(parts)-2:]
	}
	return strings.Join(parts, ":")
}

func (c *Course) sanitize() {
	c.ID = singleLine(c.ID)
	c.Code = singleLine(c.Code)
	c.Dept = singleLine(c.Dept)
	c.Name = singleLine(c.Name)
	c.CreatedAt = singleLine(c.CreatedAt)
	singleLinePtr(c.MidsemStartTime)
	singleLinePtr(c.MidsemEndTime)
	singleLinePtr(c.CompreStartTime)
	singleLinePtr(c.CompreEndTime)
	for i := range c.Sections {
		c.Sections[i].sanitize()
	}
}

func (s *Section) sanitize() {
	s.ID = singleLine(s.ID)
	s.CourseID = singleLine(s.CourseID)
	s.Type = singleLine(s.Type)
	s.CreatedAt = singleLine(s.CreatedAt)
	singleLineAll(s.Instructors)
	singleLineAll(s.Time)
}

// singleLine replaces newline characters so serialized documents stay one line.
func singleLine(s string) string {
	return strings.ReplaceAll(s, "\n", " ")
}

func singleLineAll(ss []string) {
	for i, s := range ss {
		ss[i] = singleLine(s)
	}
}

func singleLinePtr(p *string) {
	if p != nil {
		*p = singleLine(*p)
	}
}
