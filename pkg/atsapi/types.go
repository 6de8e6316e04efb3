package atsapi

import "time"

// Role is the account role assigned at registration.
type Role string

const (
	RoleCandidate Role = "candidate"
	RoleEmployer  Role = "employer"
	RoleAdmin     Role = "admin"
)

// JobStatus is the lifecycle status of a job posting.
type JobStatus string

const (
	JobStatusActive   JobStatus = "active"
	JobStatusInactive JobStatus = "inactive"
	JobStatusFilled   JobStatus = "filled"
	JobStatusExpired  JobStatus = "expired"
)

// ApplicationStatus is the review status of a job application. The server
// owns transitions between statuses; the client treats them as data.
type ApplicationStatus string

const (
	ApplicationStatusPending     ApplicationStatus = "pending"
	ApplicationStatusReviewed    ApplicationStatus = "reviewed"
	ApplicationStatusShortlisted ApplicationStatus = "shortlisted"
	ApplicationStatusRejected    ApplicationStatus = "rejected"
	ApplicationStatusInterview   ApplicationStatus = "interview"
	ApplicationStatusOffered     ApplicationStatus = "offered"
	ApplicationStatusHired       ApplicationStatus = "hired"
)

// User is the account record the API returns on login.
type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
}

// LoginResponse is the payload of POST /api/login/.
type LoginResponse struct {
	Access   string `json:"access"`
	Refresh  string `json:"refresh"`
	UserID   int    `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`

	// AccessExpiresAt is derived from the access token's exp claim when the
	// token is a parseable JWT. Informational only; it is never used to gate
	// requests.
	AccessExpiresAt time.Time `json:"-"`
}

// User assembles the session user record from the login payload.
func (r *LoginResponse) User() User {
	return User{
		ID:       r.UserID,
		Username: r.Username,
		Email:    r.Email,
		Role:     r.Role,
	}
}

// RefreshResponse is the payload of POST /api/token/refresh/.
type RefreshResponse struct {
	Access string `json:"access"`
}

// RegisterRequest is the body of POST /api/register/. It is forwarded to the
// server verbatim; validation happens server-side.
type RegisterRequest struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	Role        Role   `json:"role"`
	CompanyName string `json:"company_name,omitempty"`
	PhoneNumber string `json:"phone_number,omitempty"`
	Address     string `json:"address,omitempty"`
}

// Job is a job posting as serialized by the API.
type Job struct {
	ID           int        `json:"id"`
	Title        string     `json:"title"`
	Employer     int        `json:"employer"`
	EmployerName string     `json:"employer_name,omitempty"`
	CompanyName  string     `json:"company_name,omitempty"`
	Description  string     `json:"description"`
	Requirements string     `json:"requirements"`
	Location     string     `json:"location"`
	SalaryRange  string     `json:"salary_range,omitempty"`
	JobType      string     `json:"job_type,omitempty"`
	Status       JobStatus  `json:"status"`
	PostedDate   time.Time  `json:"posted_date"`
	Deadline     *time.Time `json:"deadline,omitempty"`
}

// JobRequest is the writable subset of Job used for create and update.
type JobRequest struct {
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Requirements string     `json:"requirements"`
	Location     string     `json:"location"`
	SalaryRange  string     `json:"salary_range,omitempty"`
	JobType      string     `json:"job_type,omitempty"`
	Status       JobStatus  `json:"status,omitempty"`
	Deadline     *time.Time `json:"deadline,omitempty"`
}

// ListJobsParams filters GET /api/jobs/.
type ListJobsParams struct {
	Status JobStatus
}

// SearchJobsParams filters GET /api/search-jobs/, which only returns active
// postings.
type SearchJobsParams struct {
	Search   string
	Location string
	JobType  string
}

// Resume is a stored resume record. File is a URL; the client does not
// handle uploads.
type Resume struct {
	ID            int       `json:"id"`
	Candidate     int       `json:"candidate"`
	CandidateName string    `json:"candidate_name,omitempty"`
	Title         string    `json:"title"`
	File          string    `json:"file"`
	UploadDate    time.Time `json:"upload_date"`
	IsActive      bool      `json:"is_active"`
}

// ResumeRequest is the writable subset of Resume.
type ResumeRequest struct {
	Title    string `json:"title"`
	File     string `json:"file"`
	IsActive bool   `json:"is_active"`
}

// Application is a candidate's application to a job.
type Application struct {
	ID              int               `json:"id"`
	Job             int               `json:"job"`
	JobTitle        string            `json:"job_title,omitempty"`
	Candidate       int               `json:"candidate"`
	CandidateName   string            `json:"candidate_name,omitempty"`
	Resume          *int              `json:"resume,omitempty"`
	ResumeTitle     string            `json:"resume_title,omitempty"`
	CoverLetter     string            `json:"cover_letter,omitempty"`
	Status          ApplicationStatus `json:"status"`
	ApplicationDate time.Time         `json:"application_date"`
	LastUpdated     time.Time         `json:"last_updated"`
	EmployerNotes   string            `json:"employer_notes,omitempty"`
}

// ApplicationRequest creates an application. The candidate is inferred from
// the authenticated user server-side.
type ApplicationRequest struct {
	Job         int    `json:"job"`
	Resume      *int   `json:"resume,omitempty"`
	CoverLetter string `json:"cover_letter,omitempty"`
}

// ApplicationUpdate mutates the employer-owned fields of an application.
type ApplicationUpdate struct {
	Status        ApplicationStatus `json:"status,omitempty"`
	EmployerNotes string            `json:"employer_notes,omitempty"`
}

// Profile is the extended account record behind /api/profiles/.
type Profile struct {
	ID          int    `json:"id"`
	User        User   `json:"user"`
	Role        Role   `json:"role"`
	CompanyName string `json:"company_name,omitempty"`
	PhoneNumber string `json:"phone_number,omitempty"`
	Address     string `json:"address,omitempty"`
}

// ProfileUpdate mutates the owner-editable profile fields.
type ProfileUpdate struct {
	CompanyName string `json:"company_name,omitempty"`
	PhoneNumber string `json:"phone_number,omitempty"`
	Address     string `json:"address,omitempty"`
}

// DashboardStats aggregates application counts for the dashboards. The
// shortlisted counter is employer-specific and the interview counter is
// candidate-specific; the server omits the one that does not apply.
type DashboardStats struct {
	TotalApplications       int `json:"total_applications"`
	PendingApplications     int `json:"pending_applications"`
	ReviewedApplications    int `json:"reviewed_applications"`
	ShortlistedApplications int `json:"shortlisted_applications,omitempty"`
	InterviewApplications   int `json:"interview_applications,omitempty"`
}

// EmployerDashboard is the payload of GET /api/employer-dashboard/.
type EmployerDashboard struct {
	Jobs         []Job          `json:"jobs"`
	Applications []Application  `json:"applications"`
	Stats        DashboardStats `json:"stats"`
}

// CandidateDashboard is the payload of GET /api/candidate-dashboard/.
type CandidateDashboard struct {
	Applications []Application  `json:"applications"`
	Resumes      []Resume       `json:"resumes"`
	Stats        DashboardStats `json:"stats"`
}
