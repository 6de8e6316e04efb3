package atsapi

import (
	"context"
	"net/http"
)

// GetCandidateDashboard returns the candidate's applications, resumes and
// aggregate stats. The server rejects non-candidate accounts with 403.
func (c *Client) GetCandidateDashboard(ctx context.Context) (*CandidateDashboard, error) {
	var dashboard CandidateDashboard
	if err := c.do(ctx, http.MethodGet, "/api/candidate-dashboard/", nil, nil, &dashboard); err != nil {
		return nil, err
	}
	return &dashboard, nil
}

// GetEmployerDashboard returns the employer's postings, incoming applications
// and aggregate stats. The server rejects non-employer accounts with 403.
func (c *Client) GetEmployerDashboard(ctx context.Context) (*EmployerDashboard, error) {
	var dashboard EmployerDashboard
	if err := c.do(ctx, http.MethodGet, "/api/employer-dashboard/", nil, nil, &dashboard); err != nil {
		return nil, err
	}
	return &dashboard, nil
}
