package atsapi

import (
	"context"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type refreshRequest struct {
	Refresh string `json:"refresh"`
}

// Login exchanges credentials for a token pair and the account record. The
// request itself is never authenticated with a stored token.
func (c *Client) Login(ctx context.Context, username, password string) (*LoginResponse, error) {
	var out LoginResponse
	err := c.do(withoutAuth(ctx), http.MethodPost, "/api/login/", nil, loginRequest{
		Username: username,
		Password: password,
	}, &out)
	if err != nil {
		return nil, err
	}
	out.AccessExpiresAt = accessExpiry(out.Access)
	return &out, nil
}

// Register creates a new account. It does not establish a session; callers
// are expected to log in afterwards.
func (c *Client) Register(ctx context.Context, req RegisterRequest) error {
	return c.do(withoutAuth(ctx), http.MethodPost, "/api/register/", nil, req, nil)
}

// RefreshToken exchanges a refresh token for a new access token. The
// authenticating transport calls this on 401; it is exported for callers
// implementing their own policies.
func (c *Client) RefreshToken(ctx context.Context, refreshToken string) (*RefreshResponse, error) {
	var out RefreshResponse
	err := c.do(withoutAuth(ctx), http.MethodPost, "/api/token/refresh/", nil, refreshRequest{
		Refresh: refreshToken,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// accessExpiry extracts the exp claim without verifying the signature. The
// client has no signing key and does not need one; the value is display-only.
func accessExpiry(token string) time.Time {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}
	return exp.Time
}
