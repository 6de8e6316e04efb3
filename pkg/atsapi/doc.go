// Package atsapi is the HTTP client for the HireDesk applicant-tracking REST
// API: authentication, jobs, applications, resumes, profiles and the
// role-specific dashboards.
//
// Authentication is injected per request through a TokenSource rather than a
// process-wide default header. The provided CredentialSource is a mutable
// single-credential holder the session layer controls; every request reads
// whatever credential is current at send time, so attaching or clearing it
// immediately affects all subsequent calls made through the client:
//
//	source := atsapi.NewCredentialSource()
//	client, err := atsapi.New(cfg, atsapi.WithTokenSource(source))
//	...
//	source.Set(access, refresh) // requests now carry Authorization: Bearer <access>
//	source.Clear()              // requests go out unauthenticated again
//
// When an authenticated request is answered with 401 and a refresh token is
// held, the transport performs a single-flight POST /api/token/refresh/
// exchange, rotates the access token in the source and retries the request
// once. A failed exchange leaves the original 401 for the caller to handle.
//
// Server-reported failures are returned as *APIError carrying the payload's
// `error` message; IsUnauthorized, IsForbidden and IsNotFound match the
// common cases.
package atsapi
