package atsapi

import (
	"context"
	"fmt"
	"net/http"
)

// ListResumes returns the resumes visible to the authenticated user.
func (c *Client) ListResumes(ctx context.Context) ([]Resume, error) {
	var resumes []Resume
	if err := c.do(ctx, http.MethodGet, "/api/resumes/", nil, nil, &resumes); err != nil {
		return nil, err
	}
	return resumes, nil
}

// CreateResume registers a resume record for the authenticated candidate.
func (c *Client) CreateResume(ctx context.Context, req ResumeRequest) (*Resume, error) {
	var resume Resume
	if err := c.do(ctx, http.MethodPost, "/api/resumes/", nil, req, &resume); err != nil {
		return nil, err
	}
	return &resume, nil
}

// DeleteResume removes a resume record.
func (c *Client) DeleteResume(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/resumes/%d/", id), nil, nil, nil)
}
