package atstest

import (
	"net/http"
	"time"

	"github.com/hiredesk/hiredesk/pkg/atsapi"
)

// visibleResumes mirrors the real API: candidates see their own, employers
// see resumes attached to applications for their jobs, admins see all.
// Callers hold s.mu.
func (s *Server) visibleResumes(u *userRecord) []atsapi.Resume {
	resumes := make([]atsapi.Resume, 0)
	for _, resume := range s.resumes {
		if s.resumeVisible(u, resume) {
			resumes = append(resumes, *resume)
		}
	}
	return resumes
}

func (s *Server) resumeVisible(u *userRecord, resume *atsapi.Resume) bool {
	switch u.role {
	case atsapi.RoleAdmin:
		return true
	case atsapi.RoleEmployer:
		for _, app := range s.applications {
			if app.Resume == nil || *app.Resume != resume.ID {
				continue
			}
			if job, exists := s.jobs[app.Job]; exists && job.Employer == u.id {
				return true
			}
		}
		return false
	default:
		return resume.Candidate == u.id
	}
}

func (s *Server) handleListResumes(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.visibleResumes(currentUser(r)))
}

func (s *Server) handleCreateResume(w http.ResponseWriter, r *http.Request) {
	var req atsapi.ResumeRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Title == "" {
		writeError(w, http.StatusBadRequest, "Title is required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	u := currentUser(r)
	resume := &atsapi.Resume{
		ID:            s.nextID,
		Candidate:     u.id,
		CandidateName: u.username,
		Title:         req.Title,
		File:          req.File,
		UploadDate:    time.Now().UTC(),
		IsActive:      req.IsActive,
	}
	s.nextID++
	s.resumes[resume.ID] = resume
	writeJSON(w, http.StatusCreated, *resume)
}

func (s *Server) handleDeleteResume(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusNotFound, "Not found")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	resume, exists := s.resumes[id]
	if !exists {
		writeError(w, http.StatusNotFound, "Not found")
		return
	}
	if resume.Candidate != currentUser(r).id && currentUser(r).role != atsapi.RoleAdmin {
		writeError(w, http.StatusForbidden, "Access denied")
		return
	}
	delete(s.resumes, id)
	w.WriteHeader(http.StatusNoContent)
}
