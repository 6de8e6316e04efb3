package atsapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// ListJobs returns job postings, optionally filtered by status.
func (c *Client) ListJobs(ctx context.Context, params ListJobsParams) ([]Job, error) {
	query := url.Values{}
	if params.Status != "" {
		query.Set("status", string(params.Status))
	}

	var jobs []Job
	if err := c.do(ctx, http.MethodGet, "/api/jobs/", query, nil, &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

// GetJob returns a single job posting.
func (c *Client) GetJob(ctx context.Context, id int) (*Job, error) {
	var job Job
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/jobs/%d/", id), nil, nil, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

// CreateJob posts a new job. The authenticated user becomes the employer.
func (c *Client) CreateJob(ctx context.Context, req JobRequest) (*Job, error) {
	var job Job
	if err := c.do(ctx, http.MethodPost, "/api/jobs/", nil, req, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

// UpdateJob updates an existing job posting.
func (c *Client) UpdateJob(ctx context.Context, id int, req JobRequest) (*Job, error) {
	var job Job
	if err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/api/jobs/%d/", id), nil, req, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

// DeleteJob removes a job posting.
func (c *Client) DeleteJob(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/jobs/%d/", id), nil, nil, nil)
}

// SearchJobs searches active postings by free text, location and job type.
func (c *Client) SearchJobs(ctx context.Context, params SearchJobsParams) ([]Job, error) {
	query := url.Values{}
	if params.Search != "" {
		query.Set("search", params.Search)
	}
	if params.Location != "" {
		query.Set("location", params.Location)
	}
	if params.JobType != "" {
		query.Set("job_type", params.JobType)
	}

	var jobs []Job
	if err := c.do(ctx, http.MethodGet, "/api/search-jobs/", query, nil, &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}
