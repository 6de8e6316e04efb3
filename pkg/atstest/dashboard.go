package atstest

import (
	"net/http"

	"github.com/hiredesk/hiredesk/pkg/atsapi"
)

func (s *Server) handleCandidateDashboard(w http.ResponseWriter, r *http.Request) {
	u := currentUser(r)
	if u.role != atsapi.RoleCandidate {
		writeError(w, http.StatusForbidden, "Access denied")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	apps := make([]atsapi.Application, 0)
	for _, app := range s.applications {
		if app.Candidate == u.id {
			apps = append(apps, *app)
		}
	}
	resumes := make([]atsapi.Resume, 0)
	for _, resume := range s.resumes {
		if resume.Candidate == u.id {
			resumes = append(resumes, *resume)
		}
	}

	stats := atsapi.DashboardStats{TotalApplications: len(apps)}
	for _, app := range apps {
		switch app.Status {
		case atsapi.ApplicationStatusPending:
			stats.PendingApplications++
		case atsapi.ApplicationStatusReviewed:
			stats.ReviewedApplications++
		case atsapi.ApplicationStatusInterview:
			stats.InterviewApplications++
		}
	}

	writeJSON(w, http.StatusOK, atsapi.CandidateDashboard{
		Applications: apps,
		Resumes:      resumes,
		Stats:        stats,
	})
}

func (s *Server) handleEmployerDashboard(w http.ResponseWriter, r *http.Request) {
	u := currentUser(r)
	if u.role != atsapi.RoleEmployer {
		writeError(w, http.StatusForbidden, "Access denied")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	jobs := make([]atsapi.Job, 0)
	ownJobs := make(map[int]bool)
	for _, job := range s.jobs {
		if job.Employer == u.id {
			jobs = append(jobs, *job)
			ownJobs[job.ID] = true
		}
	}
	apps := make([]atsapi.Application, 0)
	for _, app := range s.applications {
		if ownJobs[app.Job] {
			apps = append(apps, *app)
		}
	}

	stats := atsapi.DashboardStats{TotalApplications: len(apps)}
	for _, app := range apps {
		switch app.Status {
		case atsapi.ApplicationStatusPending:
			stats.PendingApplications++
		case atsapi.ApplicationStatusReviewed:
			stats.ReviewedApplications++
		case atsapi.ApplicationStatusShortlisted:
			stats.ShortlistedApplications++
		}
	}

	writeJSON(w, http.StatusOK, atsapi.EmployerDashboard{
		Jobs:         jobs,
		Applications: apps,
		Stats:        stats,
	})
}
