package atstest

import (
	"net/http"
	"time"

	"github.com/hiredesk/hiredesk/pkg/atsapi"
)

// visibleApplications returns the applications the user may see, mirroring
// the real API's queryset rules. Callers hold s.mu.
func (s *Server) visibleApplications(u *userRecord) []atsapi.Application {
	apps := make([]atsapi.Application, 0)
	for _, app := range s.applications {
		if s.applicationVisible(u, app) {
			apps = append(apps, *app)
		}
	}
	return apps
}

func (s *Server) applicationVisible(u *userRecord, app *atsapi.Application) bool {
	switch u.role {
	case atsapi.RoleAdmin:
		return true
	case atsapi.RoleEmployer:
		job, exists := s.jobs[app.Job]
		return exists && job.Employer == u.id
	default:
		return app.Candidate == u.id
	}
}

func (s *Server) handleListApplications(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.visibleApplications(currentUser(r)))
}

func (s *Server) handleGetApplication(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusNotFound, "Not found")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	app, exists := s.applications[id]
	if !exists || !s.applicationVisible(currentUser(r), app) {
		writeError(w, http.StatusNotFound, "Not found")
		return
	}
	writeJSON(w, http.StatusOK, *app)
}

func (s *Server) handleCreateApplication(w http.ResponseWriter, r *http.Request) {
	var req atsapi.ApplicationRequest
	if !decodeBody(w, r, &req) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	job, exists := s.jobs[req.Job]
	if !exists {
		writeError(w, http.StatusBadRequest, "Unknown job")
		return
	}

	u := currentUser(r)
	now := time.Now().UTC()
	app := &atsapi.Application{
		ID:              s.nextID,
		Job:             job.ID,
		JobTitle:        job.Title,
		Candidate:       u.id,
		CandidateName:   u.username,
		Resume:          req.Resume,
		CoverLetter:     req.CoverLetter,
		Status:          atsapi.ApplicationStatusPending,
		ApplicationDate: now,
		LastUpdated:     now,
	}
	if req.Resume != nil {
		if resume, found := s.resumes[*req.Resume]; found {
			app.ResumeTitle = resume.Title
		}
	}
	s.nextID++
	s.applications[app.ID] = app
	writeJSON(w, http.StatusCreated, *app)
}

func (s *Server) handleUpdateApplication(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusNotFound, "Not found")
		return
	}
	var req atsapi.ApplicationUpdate
	if !decodeBody(w, r, &req) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	app, exists := s.applications[id]
	if !exists || !s.applicationVisible(currentUser(r), app) {
		writeError(w, http.StatusNotFound, "Not found")
		return
	}

	if req.Status != "" {
		app.Status = req.Status
	}
	if req.EmployerNotes != "" {
		app.EmployerNotes = req.EmployerNotes
	}
	app.LastUpdated = time.Now().UTC()
	writeJSON(w, http.StatusOK, *app)
}
