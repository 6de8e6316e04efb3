// Package atstest is an in-process fake of the HireDesk API for SDK tests
// and local development. It serves the full endpoint surface — login,
// registration, token refresh, jobs, applications, resumes, profiles and the
// role-gated dashboards — against in-memory maps, with the same status codes
// and {"error": ...} payloads as the real server.
//
//	srv := atstest.New()
//	srv.SeedUser("alice", "secret", "a@x.com", atsapi.RoleCandidate)
//	ts := httptest.NewServer(srv.Handler())
//	defer ts.Close()
//
//	client, _ := atsapi.New(atsapi.Config{BaseURL: ts.URL})
//
// Access tokens are real HS256 JWTs, so client-side claims parsing behaves
// as in production. WithAccessTTL(-time.Minute) makes login hand out
// already-expired tokens, which is the lever tests use to drive the client's
// refresh-on-401 path.
package atstest
