package atsapi

import (
	"context"
	"fmt"
	"net/http"
)

// ListApplications returns the applications visible to the authenticated
// user: their own for candidates, those for their postings for employers.
func (c *Client) ListApplications(ctx context.Context) ([]Application, error) {
	var apps []Application
	if err := c.do(ctx, http.MethodGet, "/api/applications/", nil, nil, &apps); err != nil {
		return nil, err
	}
	return apps, nil
}

// GetApplication returns a single application.
func (c *Client) GetApplication(ctx context.Context, id int) (*Application, error) {
	var app Application
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/applications/%d/", id), nil, nil, &app); err != nil {
		return nil, err
	}
	return &app, nil
}

// CreateApplication applies the authenticated candidate to a job.
func (c *Client) CreateApplication(ctx context.Context, req ApplicationRequest) (*Application, error) {
	var app Application
	if err := c.do(ctx, http.MethodPost, "/api/applications/", nil, req, &app); err != nil {
		return nil, err
	}
	return &app, nil
}

// UpdateApplication updates an application's status or employer notes.
func (c *Client) UpdateApplication(ctx context.Context, id int, req ApplicationUpdate) (*Application, error) {
	var app Application
	if err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/api/applications/%d/", id), nil, req, &app); err != nil {
		return nil, err
	}
	return &app, nil
}
