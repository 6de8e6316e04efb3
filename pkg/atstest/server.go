package atstest

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/hiredesk/hiredesk/pkg/atsapi"
)

// Server is an in-memory fake of the HireDesk API. It implements the full
// endpoint surface the SDK talks to, with faithful status codes and error
// payloads, against maps instead of a database. Safe for concurrent use.
type Server struct {
	mu            sync.Mutex
	users         map[string]*userRecord // keyed by username
	usersByID     map[int]*userRecord
	jobs          map[int]*atsapi.Job
	applications  map[int]*atsapi.Application
	resumes       map[int]*atsapi.Resume
	refreshTokens map[string]int // refresh token -> user ID
	nextID        int

	signingKey []byte
	accessTTL  time.Duration // TTL of login-issued access tokens
	refreshTTL time.Duration // TTL of access tokens issued by the refresh exchange

	router chi.Router
}

// Option configures a Server.
type Option func(*Server)

// WithAccessTTL sets the lifetime of access tokens issued at login. A
// negative TTL issues already-expired tokens, which is how tests exercise
// the client's refresh-on-401 path; tokens issued by the refresh exchange
// always get a sane lifetime.
func WithAccessTTL(ttl time.Duration) Option {
	return func(s *Server) { s.accessTTL = ttl }
}

// WithSigningKey overrides the HMAC key used to sign access tokens.
func WithSigningKey(key []byte) Option {
	return func(s *Server) {
		if len(key) > 0 {
			s.signingKey = key
		}
	}
}

// New creates a fake API server with no data. Seed users and jobs before
// pointing a client at Handler().
func New(opts ...Option) *Server {
	s := &Server{
		users:         make(map[string]*userRecord),
		usersByID:     make(map[int]*userRecord),
		jobs:          make(map[int]*atsapi.Job),
		applications:  make(map[int]*atsapi.Application),
		resumes:       make(map[int]*atsapi.Resume),
		refreshTokens: make(map[string]int),
		nextID:        1,
		signingKey:    []byte("atstest-signing-key"),
		accessTTL:     15 * time.Minute,
		refreshTTL:    15 * time.Minute,
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Post("/api/login/", s.handleLogin)
	r.Post("/api/register/", s.handleRegister)
	r.Post("/api/token/refresh/", s.handleRefresh)

	// Job reads and search are public, matching the real API.
	r.Get("/api/jobs/", s.handleListJobs)
	r.Get("/api/jobs/{id}/", s.handleGetJob)
	r.Get("/api/search-jobs/", s.handleSearchJobs)

	r.Group(func(r chi.Router) {
		r.Use(s.requireAuth)
		r.Post("/api/jobs/", s.handleCreateJob)
		r.Patch("/api/jobs/{id}/", s.handleUpdateJob)
		r.Delete("/api/jobs/{id}/", s.handleDeleteJob)

		r.Get("/api/applications/", s.handleListApplications)
		r.Post("/api/applications/", s.handleCreateApplication)
		r.Get("/api/applications/{id}/", s.handleGetApplication)
		r.Patch("/api/applications/{id}/", s.handleUpdateApplication)

		r.Get("/api/resumes/", s.handleListResumes)
		r.Post("/api/resumes/", s.handleCreateResume)
		r.Delete("/api/resumes/{id}/", s.handleDeleteResume)

		r.Get("/api/profiles/", s.handleListProfiles)
		r.Get("/api/profiles/{id}/", s.handleGetProfile)
		r.Patch("/api/profiles/{id}/", s.handleUpdateProfile)

		r.Get("/api/candidate-dashboard/", s.handleCandidateDashboard)
		r.Get("/api/employer-dashboard/", s.handleEmployerDashboard)
	})
	s.router = r

	return s
}

// Handler returns the server's HTTP handler, suitable for httptest.NewServer
// or http.ListenAndServe.
func (s *Server) Handler() http.Handler {
	return s.router
}

type userRecord struct {
	id           int
	username     string
	email        string
	role         atsapi.Role
	passwordHash []byte
	companyName  string
	phoneNumber  string
	address      string
}

func (u *userRecord) user() atsapi.User {
	return atsapi.User{ID: u.id, Username: u.username, Email: u.email, Role: u.role}
}

func (u *userRecord) profile() atsapi.Profile {
	return atsapi.Profile{
		ID:          u.id,
		User:        u.user(),
		Role:        u.role,
		CompanyName: u.companyName,
		PhoneNumber: u.phoneNumber,
		Address:     u.address,
	}
}

// SeedUser registers a user directly, bypassing the HTTP surface.
func (s *Server) SeedUser(username, password, email string, role atsapi.Role) atsapi.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addUser(username, password, email, role).user()
}

// SeedJob creates a job posting owned by the given employer username. Status
// defaults to active.
func (s *Server) SeedJob(employer string, req atsapi.JobRequest) atsapi.Job {
	s.mu.Lock()
	defer s.mu.Unlock()

	owner, ok := s.users[employer]
	if !ok {
		panic("atstest: unknown employer " + employer)
	}
	return *s.addJob(owner, req)
}

// RevokeRefreshTokens invalidates every outstanding refresh token, forcing
// the next refresh exchange to fail.
func (s *Server) RevokeRefreshTokens() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refreshTokens = make(map[string]int)
}

func (s *Server) addUser(username, password, email string, role atsapi.Role) *userRecord {
	// MinCost keeps seeding fast; these hashes only live for a test run.
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		panic("atstest: hash password: " + err.Error())
	}

	u := &userRecord{
		id:           s.nextID,
		username:     username,
		email:        email,
		role:         role,
		passwordHash: hash,
	}
	s.nextID++
	s.users[username] = u
	s.usersByID[u.id] = u
	return u
}

func (s *Server) addJob(owner *userRecord, req atsapi.JobRequest) *atsapi.Job {
	status := req.Status
	if status == "" {
		status = atsapi.JobStatusActive
	}

	job := &atsapi.Job{
		ID:           s.nextID,
		Title:        req.Title,
		Employer:     owner.id,
		EmployerName: owner.username,
		CompanyName:  owner.companyName,
		Description:  req.Description,
		Requirements: req.Requirements,
		Location:     req.Location,
		SalaryRange:  req.SalaryRange,
		JobType:      req.JobType,
		Status:       status,
		PostedDate:   time.Now().UTC(),
		Deadline:     req.Deadline,
	}
	s.nextID++
	s.jobs[job.ID] = job
	return job
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "Malformed request body")
		return false
	}
	return true
}
