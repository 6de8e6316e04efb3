package atsapi

import (
	"context"
	"fmt"
	"net/http"
)

// ListProfiles returns the profiles visible to the authenticated user; for
// non-admin accounts that is only their own.
func (c *Client) ListProfiles(ctx context.Context) ([]Profile, error) {
	var profiles []Profile
	if err := c.do(ctx, http.MethodGet, "/api/profiles/", nil, nil, &profiles); err != nil {
		return nil, err
	}
	return profiles, nil
}

// GetProfile returns a single profile.
func (c *Client) GetProfile(ctx context.Context, id int) (*Profile, error) {
	var profile Profile
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/profiles/%d/", id), nil, nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpdateProfile updates the owner-editable profile fields.
func (c *Client) UpdateProfile(ctx context.Context, id int, req ProfileUpdate) (*Profile, error) {
	var profile Profile
	if err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/api/profiles/%d/", id), nil, req, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}
