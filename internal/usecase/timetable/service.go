package timetable

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/crux-bphc/chrono-search/internal/db"
	"github.com/crux-bphc/chrono-search/internal/domain"
	"github.com/crux-bphc/chrono-search/internal/domain/search/params"
	"github.com/crux-bphc/chrono-search/internal/domain/search/result"
	"github.com/crux-bphc/chrono-search/internal/search"
)

// Service handles timetable search, ingestion, and removal.
type Service struct {
	gw       Gateway
	validate Validator
}

// New creates a timetable service.
func New(gw Gateway, validate Validator) *Service {
	return &Service{gw: gw, validate: validate}
}

// Search compiles the parameters and returns one page of ranked hits at the
// requested offset. A request with no usable parameter returns an unfiltered
// page rather than an error.
func (s *Service) Search(ctx context.Context, p params.Timetable) ([]result.Hit, error) {
	q := search.CompileTimetable(p)

	from := p.Offset
	if from < 0 {
		from = 0
	}

	hits, err := s.gw.Search(ctx, domain.TimetableIndex, q, search.PageSize, from)
	if err != nil {
		return nil, fmt.Errorf("search timetables: %w", err)
	}
	return toResults(hits), nil
}

// Add validates, duplicate-checks, enriches, and writes a timetable. Every
// courseId referenced by the sections must resolve to an existing course; its
// {code, name} summary is denormalized into the stored document. A dangling
// reference aborts the write with domain.ErrNotFound.
func (s *Service) Add(ctx context.Context, raw json.RawMessage) (domain.Timetable, error) {
	if err := s.validate.ValidateTimetable(raw); err != nil {
		return domain.Timetable{}, err
	}

	var t domain.Timetable
	if err := json.Unmarshal(raw, &t); err != nil {
		return domain.Timetable{}, fmt.Errorf("%w: %s", domain.ErrValidation, err)
	}

	existing, err := s.gw.FindByID(ctx, domain.TimetableIndex, t.ID)
	if err != nil {
		return domain.Timetable{}, fmt.Errorf("check duplicate timetable: %w", err)
	}
	if existing != nil {
		return domain.Timetable{}, fmt.Errorf("timetable %q: %w", t.ID, domain.ErrAlreadyExists)
	}

	summaries, err := s.courseSummaries(ctx, t.CourseIDs())
	if err != nil {
		return domain.Timetable{}, err
	}
	t.Enrich(summaries)

	if err := s.gw.Index(ctx, domain.TimetableIndex, &t); err != nil {
		return domain.Timetable{}, fmt.Errorf("index timetable %q: %w", t.ID, err)
	}
	return t, nil
}

// courseSummaries resolves each distinct referenced course to its current
// {code, name}. The lookups are independent; a course deleted between lookup
// and the timetable write is an accepted race.
func (s *Service) courseSummaries(ctx context.Context, ids []string) ([]domain.CourseSummary, error) {
	summaries := make([]domain.CourseSummary, 0, len(ids))
	for _, id := range ids {
		hit, err := s.gw.FindByID(ctx, domain.CourseIndex, id)
		if err != nil {
			return nil, fmt.Errorf("look up course %q: %w", id, err)
		}
		if hit == nil {
			return nil, fmt.Errorf("referenced course %q: %w", id, domain.ErrNotFound)
		}
		var summary domain.CourseSummary
		if err := json.Unmarshal(hit.Source, &summary); err != nil {
			return nil, fmt.Errorf("decode course %q: %w", id, err)
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

// Remove locates a timetable by its logical id and deletes it by the
// engine's internal key. Absence at either step is domain.ErrNotFound.
func (s *Service) Remove(ctx context.Context, id string) error {
	hit, err := s.gw.FindByID(ctx, domain.TimetableIndex, id)
	if err != nil {
		return fmt.Errorf("locate timetable %q: %w", id, err)
	}
	if hit == nil {
		return fmt.Errorf("timetable %q: %w", id, domain.ErrNotFound)
	}

	if err := s.gw.Delete(ctx, domain.TimetableIndex, hit.Key); err != nil {
		if errors.Is(err, db.ErrDocNotFound) {
			return fmt.Errorf("timetable %q: %w", id, domain.ErrNotFound)
		}
		return fmt.Errorf("delete timetable %q: %w", id, err)
	}
	return nil
}

func toResults(hits []db.Hit) []result.Hit {
	results := make([]result.Hit, len(hits))
	for i, h := range hits {
		results[i] = result.Hit{Document: h.Source, Score: h.Score}
	}
	return results
}
