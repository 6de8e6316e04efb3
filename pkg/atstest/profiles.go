package atstest

import (
	"net/http"

	"github.com/hiredesk/hiredesk/pkg/atsapi"
)

func (s *Server) handleListProfiles(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := currentUser(r)
	profiles := make([]atsapi.Profile, 0, 1)
	if u.role == atsapi.RoleAdmin {
		for _, record := range s.usersByID {
			profiles = append(profiles, record.profile())
		}
	} else {
		profiles = append(profiles, u.profile())
	}
	writeJSON(w, http.StatusOK, profiles)
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusNotFound, "Not found")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	u := currentUser(r)
	record, exists := s.usersByID[id]
	if !exists || (u.role != atsapi.RoleAdmin && record.id != u.id) {
		writeError(w, http.StatusNotFound, "Not found")
		return
	}
	writeJSON(w, http.StatusOK, record.profile())
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusNotFound, "Not found")
		return
	}
	var req atsapi.ProfileUpdate
	if !decodeBody(w, r, &req) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	u := currentUser(r)
	record, exists := s.usersByID[id]
	if !exists || (u.role != atsapi.RoleAdmin && record.id != u.id) {
		writeError(w, http.StatusNotFound, "Not found")
		return
	}

	if req.CompanyName != "" {
		record.companyName = req.CompanyName
	}
	if req.PhoneNumber != "" {
		record.phoneNumber = req.PhoneNumber
	}
	if req.Address != "" {
		record.address = req.Address
	}
	writeJSON(w, http.StatusOK, record.profile())
}
