package atsapi_test

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hiredesk/hiredesk/pkg/atsapi"
	"github.com/hiredesk/hiredesk/pkg/atstest"
)

func newTestClient(t *testing.T, srv *atstest.Server, opts ...atsapi.Option) *atsapi.Client {
	t.Helper()

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	client, err := atsapi.New(atsapi.Config{BaseURL: ts.URL, Timeout: 5 * time.Second}, opts...)
	require.NoError(t, err)
	return client
}

// login authenticates the seeded user and arms the source with the result.
func login(t *testing.T, client *atsapi.Client, source *atsapi.CredentialSource, username, password string) *atsapi.LoginResponse {
	t.Helper()
	resp, err := client.Login(context.Background(), username, password)
	require.NoError(t, err)
	source.Set(resp.Access, resp.Refresh)
	return resp
}

func TestNew(t *testing.T) {
	t.Run("requires base URL", func(t *testing.T) {
		_, err := atsapi.New(atsapi.Config{})
		assert.ErrorIs(t, err, atsapi.ErrMissingBaseURL)
	})

	t.Run("rejects unparsable base URL", func(t *testing.T) {
		_, err := atsapi.New(atsapi.Config{BaseURL: "http://exa mple.com\x00"})
		assert.ErrorIs(t, err, atsapi.ErrInvalidBaseURL)
	})
}

func TestClient_Login(t *testing.T) {
	srv := atstest.New()
	srv.SeedUser("alice", "secret", "a@x.com", atsapi.RoleCandidate)
	client := newTestClient(t, srv)
	ctx := context.Background()

	t.Run("success returns tokens and user fields", func(t *testing.T) {
		resp, err := client.Login(ctx, "alice", "secret")
		require.NoError(t, err)

		assert.NotEmpty(t, resp.Access)
		assert.NotEmpty(t, resp.Refresh)
		assert.Equal(t, "alice", resp.Username)
		assert.Equal(t, "a@x.com", resp.Email)
		assert.Equal(t, atsapi.RoleCandidate, resp.Role)
		assert.True(t, resp.AccessExpiresAt.After(time.Now()),
			"expiry should be parsed from the access token")
	})

	t.Run("wrong password surfaces server message", func(t *testing.T) {
		_, err := client.Login(ctx, "alice", "wrongpass")
		require.Error(t, err)

		apiErr, ok := atsapi.AsAPIError(err)
		require.True(t, ok)
		assert.Equal(t, 401, apiErr.StatusCode)
		assert.Equal(t, "Invalid credentials", apiErr.Message)
		assert.True(t, atsapi.IsUnauthorized(err))
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := client.Login(ctx, "nobody", "secret")
		assert.True(t, atsapi.IsUnauthorized(err))
	})
}

func TestClient_Register(t *testing.T) {
	srv := atstest.New()
	srv.SeedUser("taken", "pw", "t@x.com", atsapi.RoleCandidate)
	client := newTestClient(t, srv)
	ctx := context.Background()

	t.Run("creates account", func(t *testing.T) {
		err := client.Register(ctx, atsapi.RegisterRequest{
			Username: "bob",
			Email:    "b@x.com",
			Password: "hunter2",
			Role:     atsapi.RoleEmployer,
		})
		require.NoError(t, err)

		_, err = client.Login(ctx, "bob", "hunter2")
		assert.NoError(t, err)
	})

	t.Run("duplicate username", func(t *testing.T) {
		err := client.Register(ctx, atsapi.RegisterRequest{
			Username: "taken",
			Email:    "t2@x.com",
			Password: "pw",
			Role:     atsapi.RoleCandidate,
		})
		apiErr, ok := atsapi.AsAPIError(err)
		require.True(t, ok)
		assert.Equal(t, 400, apiErr.StatusCode)
		assert.Equal(t, "Username already exists", apiErr.Message)
	})
}

func TestClient_Jobs(t *testing.T) {
	srv := atstest.New()
	srv.SeedUser("acme", "pw", "hr@acme.com", atsapi.RoleEmployer)
	srv.SeedJob("acme", atsapi.JobRequest{
		Title:        "Go Engineer",
		Description:  "Build services",
		Requirements: "Go, SQL",
		Location:     "Berlin",
		JobType:      "Full-time",
	})
	srv.SeedJob("acme", atsapi.JobRequest{
		Title:    "Data Analyst",
		Location: "Remote",
		Status:   atsapi.JobStatusFilled,
	})

	source := atsapi.NewCredentialSource()
	client := newTestClient(t, srv, atsapi.WithTokenSource(source))
	ctx := context.Background()

	t.Run("list is public", func(t *testing.T) {
		jobs, err := client.ListJobs(ctx, atsapi.ListJobsParams{})
		require.NoError(t, err)
		assert.Len(t, jobs, 2)
	})

	t.Run("list filters by status", func(t *testing.T) {
		jobs, err := client.ListJobs(ctx, atsapi.ListJobsParams{Status: atsapi.JobStatusFilled})
		require.NoError(t, err)
		require.Len(t, jobs, 1)
		assert.Equal(t, "Data Analyst", jobs[0].Title)
	})

	t.Run("search matches active jobs only", func(t *testing.T) {
		jobs, err := client.SearchJobs(ctx, atsapi.SearchJobsParams{Search: "go"})
		require.NoError(t, err)
		require.Len(t, jobs, 1)
		assert.Equal(t, "Go Engineer", jobs[0].Title)

		jobs, err = client.SearchJobs(ctx, atsapi.SearchJobsParams{Location: "ber"})
		require.NoError(t, err)
		require.Len(t, jobs, 1)

		jobs, err = client.SearchJobs(ctx, atsapi.SearchJobsParams{Search: "analyst"})
		require.NoError(t, err)
		assert.Empty(t, jobs, "filled jobs are not searchable")
	})

	t.Run("create requires authentication", func(t *testing.T) {
		_, err := client.CreateJob(ctx, atsapi.JobRequest{Title: "Intern"})
		assert.True(t, atsapi.IsUnauthorized(err))
	})

	t.Run("create, update and delete as employer", func(t *testing.T) {
		login(t, client, source, "acme", "pw")
		t.Cleanup(source.Clear)

		job, err := client.CreateJob(ctx, atsapi.JobRequest{Title: "SRE", Location: "Berlin"})
		require.NoError(t, err)
		assert.Equal(t, atsapi.JobStatusActive, job.Status)
		assert.Equal(t, "acme", job.EmployerName)

		updated, err := client.UpdateJob(ctx, job.ID, atsapi.JobRequest{Status: atsapi.JobStatusInactive})
		require.NoError(t, err)
		assert.Equal(t, atsapi.JobStatusInactive, updated.Status)

		require.NoError(t, client.DeleteJob(ctx, job.ID))
		_, err = client.GetJob(ctx, job.ID)
		assert.True(t, atsapi.IsNotFound(err))
	})
}

func TestClient_Applications(t *testing.T) {
	srv := atstest.New()
	srv.SeedUser("acme", "pw", "hr@acme.com", atsapi.RoleEmployer)
	srv.SeedUser("alice", "secret", "a@x.com", atsapi.RoleCandidate)
	job := srv.SeedJob("acme", atsapi.JobRequest{Title: "Go Engineer"})

	source := atsapi.NewCredentialSource()
	client := newTestClient(t, srv, atsapi.WithTokenSource(source))
	ctx := context.Background()

	login(t, client, source, "alice", "secret")

	resume, err := client.CreateResume(ctx, atsapi.ResumeRequest{
		Title: "Alice 2026", File: "https://cdn.example.com/alice.pdf", IsActive: true,
	})
	require.NoError(t, err)

	app, err := client.CreateApplication(ctx, atsapi.ApplicationRequest{
		Job:         job.ID,
		Resume:      &resume.ID,
		CoverLetter: "Hello!",
	})
	require.NoError(t, err)
	assert.Equal(t, atsapi.ApplicationStatusPending, app.Status)
	assert.Equal(t, "Go Engineer", app.JobTitle)
	assert.Equal(t, "Alice 2026", app.ResumeTitle)

	t.Run("candidate sees own applications", func(t *testing.T) {
		apps, err := client.ListApplications(ctx)
		require.NoError(t, err)
		require.Len(t, apps, 1)
		assert.Equal(t, app.ID, apps[0].ID)
	})

	t.Run("employer reviews the application", func(t *testing.T) {
		login(t, client, source, "acme", "pw")

		apps, err := client.ListApplications(ctx)
		require.NoError(t, err)
		require.Len(t, apps, 1)

		updated, err := client.UpdateApplication(ctx, app.ID, atsapi.ApplicationUpdate{
			Status:        atsapi.ApplicationStatusShortlisted,
			EmployerNotes: "Strong resume",
		})
		require.NoError(t, err)
		assert.Equal(t, atsapi.ApplicationStatusShortlisted, updated.Status)

		// The attached resume became visible to the employer.
		resumes, err := client.ListResumes(ctx)
		require.NoError(t, err)
		require.Len(t, resumes, 1)
		assert.Equal(t, resume.ID, resumes[0].ID)
	})
}

func TestClient_Dashboards(t *testing.T) {
	srv := atstest.New()
	srv.SeedUser("acme", "pw", "hr@acme.com", atsapi.RoleEmployer)
	srv.SeedUser("alice", "secret", "a@x.com", atsapi.RoleCandidate)
	job := srv.SeedJob("acme", atsapi.JobRequest{Title: "Go Engineer"})

	source := atsapi.NewCredentialSource()
	client := newTestClient(t, srv, atsapi.WithTokenSource(source))
	ctx := context.Background()

	login(t, client, source, "alice", "secret")
	_, err := client.CreateApplication(ctx, atsapi.ApplicationRequest{Job: job.ID})
	require.NoError(t, err)

	t.Run("candidate dashboard", func(t *testing.T) {
		dash, err := client.GetCandidateDashboard(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, dash.Stats.TotalApplications)
		assert.Equal(t, 1, dash.Stats.PendingApplications)
		require.Len(t, dash.Applications, 1)
	})

	t.Run("candidate cannot read employer dashboard", func(t *testing.T) {
		_, err := client.GetEmployerDashboard(ctx)
		require.Error(t, err)
		assert.True(t, atsapi.IsForbidden(err))

		apiErr, _ := atsapi.AsAPIError(err)
		assert.Equal(t, "Access denied", apiErr.Message)
	})

	t.Run("employer dashboard aggregates incoming applications", func(t *testing.T) {
		login(t, client, source, "acme", "pw")

		dash, err := client.GetEmployerDashboard(ctx)
		require.NoError(t, err)
		require.Len(t, dash.Jobs, 1)
		assert.Equal(t, 1, dash.Stats.TotalApplications)
		assert.Equal(t, 1, dash.Stats.PendingApplications)
	})
}

func TestClient_Profiles(t *testing.T) {
	srv := atstest.New()
	srv.SeedUser("alice", "secret", "a@x.com", atsapi.RoleCandidate)

	source := atsapi.NewCredentialSource()
	client := newTestClient(t, srv, atsapi.WithTokenSource(source))
	ctx := context.Background()

	resp := login(t, client, source, "alice", "secret")

	profiles, err := client.ListProfiles(ctx)
	require.NoError(t, err)
	require.Len(t, profiles, 1)
	assert.Equal(t, "alice", profiles[0].User.Username)

	updated, err := client.UpdateProfile(ctx, resp.UserID, atsapi.ProfileUpdate{PhoneNumber: "555-0101"})
	require.NoError(t, err)
	assert.Equal(t, "555-0101", updated.PhoneNumber)
}
