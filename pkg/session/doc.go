// Package session implements the client-side authentication lifecycle:
// bootstrapping a stored session at startup, login, registration and logout,
// plus the read-only session state the rest of the application consumes.
//
// A Manager coordinates three collaborators, all injected explicitly:
//
//   - a credstore.Store persisting the credential and cached user record,
//   - an AuthAPI (the atsapi client) for the login/register endpoints,
//   - an atsapi.CredentialSource arming the API transport with the current
//     token.
//
// The lifecycle is driven by a small state machine with states anonymous,
// authenticating and authenticated. Bootstrap moves anonymous straight to
// authenticated without verifying the stored token against the server;
// staleness surfaces later as a 401 and is handled by the transport's refresh
// exchange. Login and registration return a Result rather than an error so
// failures can be rendered inline; an in-flight attempt guard rejects
// overlapping calls.
//
//	store, _ := credstore.NewFileStore(path)
//	source := atsapi.NewCredentialSource()
//	client, _ := atsapi.New(cfg, atsapi.WithTokenSource(source))
//	mgr := session.NewManager(store, client, source)
//
//	mgr.Bootstrap(ctx)
//	if res := mgr.Login(ctx, username, password); !res.Success {
//	    fmt.Println(res.Error)
//	}
//
// Invariant: the credential source holds a token if and only if State().User
// is non-nil. The manager is the only writer of both.
package session
