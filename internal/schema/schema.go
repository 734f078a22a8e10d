// Package schema validates inbound documents against their structural
// contract before ingestion: required fields, types, closed field sets, and
// timestamp formats.
package schema

import (
	_ "embed"
	"fmt"

	"github.com/xeipuuv/gojsonschema"

	"github.com/crux-bphc/chrono-search/internal/domain"
)

//go:embed course.json
var courseSchema string

//go:embed timetable.json
var timetableSchema string

// Validator checks raw documents against the course and timetable schemas.
type Validator struct {
	course    *gojsonschema.Schema
	timetable *gojsonschema.Schema
}

// New compiles the embedded schemas.
func New() (*Validator, error) {
	course, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(courseSchema))
	if err != nil {
		return nil, fmt.Errorf("compile course schema: %w", err)
	}
	timetable, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(timetableSchema))
	if err != nil {
		return nil, fmt.Errorf("compile timetable schema: %w", err)
	}
	return &Validator{course: course, timetable: timetable}, nil
}

// ValidateCourse checks a raw course document. The returned error wraps
// domain.ErrValidation and carries the first structural violation verbatim.
func (v *Validator) ValidateCourse(raw []byte) error {
	return validate(v.course, raw)
}

// ValidateTimetable checks a raw timetable document.
func (v *Validator) ValidateTimetable(raw []byte) error {
	return validate(v.timetable, raw)
}

func validate(s *gojsonschema.Schema, raw []byte) error {
	res, err := s.Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return fmt.Errorf("%w: %s", domain.ErrValidation, err)
	}
	if !res.Valid() {
		return fmt.Errorf("%w: %s", domain.ErrValidation, res.Errors()[0])
	}
	return nil
}
