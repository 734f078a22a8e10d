package params

import (
	"reflect"
	"testing"
)

func TestCourseEmpty(t *testing.T) {
	tests := []struct {
		name string
		p    Course
		want bool
	}{
		{name: "no parameters", p: Course{}, want: true},
		{name: "blank list values only", p: Course{Instructors: []string{"", ""}}, want: true},
		{name: "free text", p: Course{Query: "thermo"}, want: false},
		{name: "dept filter", p: Course{Dept: "CS"}, want: false},
		{name: "time filter", p: Course{Time: []string{"08:09"}}, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.p.Empty(); got != tt.want {
				t.Errorf("Empty() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTimetableEmpty(t *testing.T) {
	if !(Timetable{}).Empty() {
		t.Error("zero Timetable params should be empty")
	}
	if (Timetable{AuthorID: "u1"}).Empty() {
		t.Error("authorId should count as a usable parameter")
	}
	if (Timetable{Year: 3}).Empty() {
		t.Error("year should count as a usable parameter")
	}
	if (Timetable{Courses: []string{"thermo"}}).Empty() {
		t.Error("course name filter should count as a usable parameter")
	}
	// Offset alone does not make a request filtered.
	if !(Timetable{Offset: 20}).Empty() {
		t.Error("offset alone should still be an empty request")
	}
}

func TestClean(t *testing.T) {
	got := Clean([]string{"", "a", "", "b"})
	if want := []string{"a", "b"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Clean() = %v, want %v", got, want)
	}
}
