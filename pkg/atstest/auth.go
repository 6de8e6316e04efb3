package atstest

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/hiredesk/hiredesk/pkg/atsapi"
)

type ctxKey struct{ name string }

var userKey = ctxKey{"atstest-user"}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[req.Username]
	if !ok || bcrypt.CompareHashAndPassword(u.passwordHash, []byte(req.Password)) != nil {
		writeError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	access := s.issueAccess(u, s.accessTTL)
	refresh := uuid.NewString()
	s.refreshTokens[refresh] = u.id

	writeJSON(w, http.StatusOK, atsapi.LoginResponse{
		Access:   access,
		Refresh:  refresh,
		UserID:   u.id,
		Username: u.username,
		Email:    u.email,
		Role:     u.role,
	})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req atsapi.RegisterRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Username == "" || req.Email == "" || req.Password == "" || req.Role == "" {
		writeError(w, http.StatusBadRequest, "Username, email, password and role are required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[req.Username]; exists {
		writeError(w, http.StatusBadRequest, "Username already exists")
		return
	}

	u := s.addUser(req.Username, req.Password, req.Email, req.Role)
	u.companyName = req.CompanyName
	u.phoneNumber = req.PhoneNumber
	u.address = req.Address

	writeJSON(w, http.StatusCreated, map[string]string{})
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Refresh string `json:"refresh"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	userID, ok := s.refreshTokens[req.Refresh]
	if !ok {
		writeError(w, http.StatusUnauthorized, "Invalid refresh token")
		return
	}
	u, ok := s.usersByID[userID]
	if !ok {
		writeError(w, http.StatusUnauthorized, "Invalid refresh token")
		return
	}

	writeJSON(w, http.StatusOK, atsapi.RefreshResponse{
		Access: s.issueAccess(u, s.refreshTTL),
	})
}

// issueAccess mints an HS256 access token. Callers hold s.mu.
func (s *Server) issueAccess(u *userRecord, ttl time.Duration) string {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"jti":     uuid.NewString(),
		"user_id": u.id,
		"sub":     u.username,
		"iat":     now.Unix(),
		"exp":     now.Add(ttl).Unix(),
	})
	signed, err := token.SignedString(s.signingKey)
	if err != nil {
		panic("atstest: sign token: " + err.Error())
	}
	return signed
}

// requireAuth validates the bearer token and stores the account on the
// request context.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		raw, found := strings.CutPrefix(header, "Bearer ")
		if !found || raw == "" {
			writeError(w, http.StatusUnauthorized, "Authentication required")
			return
		}

		claims := jwt.MapClaims{}
		_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
			return s.signingKey, nil
		}, jwt.WithValidMethods([]string{"HS256"}))
		if err != nil {
			writeError(w, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		userID, ok := claims["user_id"].(float64)
		if !ok {
			writeError(w, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		s.mu.Lock()
		u, exists := s.usersByID[int(userID)]
		s.mu.Unlock()
		if !exists {
			writeError(w, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userKey, u)))
	})
}

func currentUser(r *http.Request) *userRecord {
	u, _ := r.Context().Value(userKey).(*userRecord)
	return u
}
