// Package chi exposes the course and timetable operations over HTTP and maps
// domain errors onto the transport's status vocabulary.
package chi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/crux-bphc/chrono-search/internal/domain"
	"github.com/crux-bphc/chrono-search/internal/domain/search/params"
	logpkg "github.com/crux-bphc/chrono-search/internal/logger"
	courseuc "github.com/crux-bphc/chrono-search/internal/usecase/course"
	timetableuc "github.com/crux-bphc/chrono-search/internal/usecase/timetable"
)

// Server wires the use case services to HTTP handlers.
type Server struct {
	courses    *courseuc.Service
	timetables *timetableuc.Service
}

// NewServer creates an HTTP API server.
func NewServer(courses *courseuc.Service, timetables *timetableuc.Service) *Server {
	return &Server{courses: courses, timetables: timetables}
}

// Routes mounts the three operations per entity.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Route("/course", func(r chi.Router) {
		r.Get("/search", s.searchCourses)
		r.Post("/add", s.addCourse)
		r.Delete("/remove", s.removeCourse)
	})
	r.Route("/timetable", func(r chi.Router) {
		r.Get("/search", s.searchTimetables)
		r.Post("/add", s.addTimetable)
		r.Delete("/remove", s.removeTimetable)
	})
	return r
}

// courseHit is the search response item shape for courses.
type courseHit struct {
	Course json.RawMessage `json:"course"`
	Score  float64         `json:"score"`
}

// timetableHit is the search response item shape for timetables.
type timetableHit struct {
	Timetable json.RawMessage `json:"timetable"`
	Score     float64         `json:"score"`
}

func (s *Server) searchCourses(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	p := params.Course{
		Query:       q.Get("query"),
		Name:        q.Get("name"),
		Code:        q.Get("code"),
		Dept:        q.Get("dept"),
		Instructors: q["instructor"],
		Time:        q["time"],
	}

	hits, err := s.courses.Search(r.Context(), p)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	items := make([]courseHit, len(hits))
	for i, h := range hits {
		items[i] = courseHit{Course: h.Document, Score: h.Score}
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) addCourse(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad-request", "failed to read request body")
		return
	}

	course, err := s.courses.Add(r.Context(), raw)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, course)
}

func (s *Server) removeCourse(w http.ResponseWriter, r *http.Request) {
	id, ok := decodeRemoveID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "bad-request", "invalid course id")
		return
	}

	if err := s.courses.Remove(r.Context(), id); err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) searchTimetables(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	p := params.Timetable{
		Query:    q.Get("query"),
		AuthorID: q.Get("authorId"),
		Degrees:  q["degree"],
		Courses:  q["course"],
	}

	for _, f := range []struct {
		name string
		dst  *int
	}{
		{name: "year", dst: &p.Year},
		{name: "acadYear", dst: &p.AcadYear},
		{name: "semester", dst: &p.Semester},
		{name: "offset", dst: &p.Offset},
	} {
		raw := q.Get(f.name)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "bad-request", "invalid "+f.name+" parameter")
			return
		}
		*f.dst = n
	}

	hits, err := s.timetables.Search(r.Context(), p)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	items := make([]timetableHit, len(hits))
	for i, h := range hits {
		items[i] = timetableHit{Timetable: h.Document, Score: h.Score}
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) addTimetable(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad-request", "failed to read request body")
		return
	}

	timetable, err := s.timetables.Add(r.Context(), raw)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, timetable)
}

func (s *Server) removeTimetable(w http.ResponseWriter, r *http.Request) {
	id, ok := decodeRemoveID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "bad-request", "invalid timetable id")
		return
	}

	if err := s.timetables.Remove(r.Context(), id); err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// decodeRemoveID reads the {"id": "..."} removal body.
func decodeRemoveID(r *http.Request) (string, bool) {
	var body struct {
		ID *string `json:"id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return "", false
	}
	if body.ID == nil || *body.ID == "" {
		return "", false
	}
	return *body.ID, true
}

// handleDomainError maps the client-facing error kinds onto statuses.
// Anything else is an engine failure and is surfaced as-is.
func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, "validation", err.Error())
	case errors.Is(err, domain.ErrBadRequest):
		writeError(w, http.StatusBadRequest, "bad-request", err.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not-found", err.Error())
	case errors.Is(err, domain.ErrAlreadyExists):
		writeError(w, http.StatusConflict, "conflict", err.Error())
	default:
		logpkg.FromContext(r.Context()).Error("engine call failed", zap.Error(err))
		writeError(w, http.StatusBadGateway, "backend", err.Error())
	}
}

type errorResponse struct {
	Kind  string `json:"kind"`
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, kind, msg string) {
	writeJSON(w, status, errorResponse{Kind: kind, Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
