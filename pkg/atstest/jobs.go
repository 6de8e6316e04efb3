package atstest

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/hiredesk/hiredesk/pkg/atsapi"
)

func pathID(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	return id, err == nil
}

func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")

	s.mu.Lock()
	defer s.mu.Unlock()

	jobs := make([]atsapi.Job, 0, len(s.jobs))
	for _, job := range s.jobs {
		if status != "" && string(job.Status) != status {
			continue
		}
		jobs = append(jobs, *job)
	}
	writeJSON(w, http.StatusOK, jobs)
}

func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusNotFound, "Not found")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	job, exists := s.jobs[id]
	if !exists {
		writeError(w, http.StatusNotFound, "Not found")
		return
	}
	writeJSON(w, http.StatusOK, *job)
}

func (s *Server) handleCreateJob(w http.ResponseWriter, r *http.Request) {
	var req atsapi.JobRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Title == "" {
		writeError(w, http.StatusBadRequest, "Title is required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	job := s.addJob(currentUser(r), req)
	writeJSON(w, http.StatusCreated, *job)
}

func (s *Server) handleUpdateJob(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusNotFound, "Not found")
		return
	}
	var req atsapi.JobRequest
	if !decodeBody(w, r, &req) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	job, exists := s.jobs[id]
	if !exists {
		writeError(w, http.StatusNotFound, "Not found")
		return
	}
	if job.Employer != currentUser(r).id {
		writeError(w, http.StatusForbidden, "Access denied")
		return
	}

	if req.Title != "" {
		job.Title = req.Title
	}
	if req.Description != "" {
		job.Description = req.Description
	}
	if req.Requirements != "" {
		job.Requirements = req.Requirements
	}
	if req.Location != "" {
		job.Location = req.Location
	}
	if req.SalaryRange != "" {
		job.SalaryRange = req.SalaryRange
	}
	if req.JobType != "" {
		job.JobType = req.JobType
	}
	if req.Status != "" {
		job.Status = req.Status
	}
	if req.Deadline != nil {
		job.Deadline = req.Deadline
	}
	writeJSON(w, http.StatusOK, *job)
}

func (s *Server) handleDeleteJob(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusNotFound, "Not found")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	job, exists := s.jobs[id]
	if !exists {
		writeError(w, http.StatusNotFound, "Not found")
		return
	}
	if job.Employer != currentUser(r).id {
		writeError(w, http.StatusForbidden, "Access denied")
		return
	}
	delete(s.jobs, id)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSearchJobs(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	search := strings.ToLower(query.Get("search"))
	location := strings.ToLower(query.Get("location"))
	jobType := query.Get("job_type")

	s.mu.Lock()
	defer s.mu.Unlock()

	jobs := make([]atsapi.Job, 0)
	for _, job := range s.jobs {
		if job.Status != atsapi.JobStatusActive {
			continue
		}
		if search != "" && !containsFold(search, job.Title, job.Description, job.Requirements) {
			continue
		}
		if location != "" && !strings.Contains(strings.ToLower(job.Location), location) {
			continue
		}
		if jobType != "" && job.JobType != jobType {
			continue
		}
		jobs = append(jobs, *job)
	}
	writeJSON(w, http.StatusOK, jobs)
}

// containsFold reports whether any field contains the already-lowercased
// needle, case-insensitively.
func containsFold(needle string, fields ...string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}
	return false
}
