package course

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

// Service handles course search, ingestion, and removal.
type Service struct {
	gw       Gateway
	validate Validator
}

// New creates a course service.
func New(gw Gateway, validate Validator) *Service {
	return &Service{gw: gw, validate: validate}
}

// Search compiles the parameters and returns up to one page of ranked hits.
// A request with no usable parameter fails with domain.ErrBadRequest.
func (s *Service) Search(ctx context.Context, p params.Course) ([]result.Hit, error) {
	q, err := search.CompileCourse(p)
	if err != nil {
		return nil, err
	}

	hits, err := s.gw.Search(ctx, domain.CourseIndex, q, search.PageSize, 0)
	if err != nil {
		return nil, fmt.Errorf("search courses: %w", err)
	}
	return toResults(hits), nil
}

// Add validates, duplicate-checks, enriches, and writes a course. The raw
// document is rejected before any side effect on schema violation or
// duplicate id.
func (s *Service) Add(ctx context.Context, raw json.RawMessage) (domain.Course, error) {
	if err := s.validate.ValidateCourse(raw); err != nil {
		return domain.Course{}, err
	}

	var c domain.Course
	if err := json.Unmarshal(raw, &c); err != nil {
		return domain.Course{}, fmt.Errorf("%w: %s", domain.ErrValidation, err)
	}

	existing, err := s.gw.FindByID(ctx, domain.CourseIndex, c.ID)
	if err != nil {
		return domain.Course{}, fmt.Errorf("check duplicate course: %w", err)
	}
	if existing != nil {
		return domain.Course{}, fmt.Errorf("course %q: %w", c.ID, domain.ErrAlreadyExists)
	}

	c.Enrich()

	if err := s.gw.Index(ctx, domain.CourseIndex, &c); err != nil {
		return domain.Course{}, fmt.Errorf("index course %q: %w", c.ID, err)
	}
	return c, nil
}

// Remove locates a course by its logical id and deletes it by the engine's
// internal key. Absence at either step is domain.ErrNotFound.
func (s *Service) Remove(ctx context.Context, id string) error {
	hit, err := s.gw.FindByID(ctx, domain.CourseIndex, id)
	if err != nil {
		return fmt.Errorf("locate course %q: %w", id, err)
	}
	if hit == nil {
		return fmt.Errorf("course %q: %w", id, domain.ErrNotFound)
	}

	if err := s.gw.Delete(ctx, domain.CourseIndex, hit.Key); err != nil {
		if errors.Is(err, db.ErrDocNotFound) {
			return fmt.Errorf("course %q: %w", id, domain.ErrNotFound)
		}
		return fmt.Errorf("delete course %q: %w", id, err)
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
