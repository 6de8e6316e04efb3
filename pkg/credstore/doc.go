// Package credstore persists the API credential (access/refresh token pair)
// and the cached user record between process runs.
//
// The store is intentionally dumb: it validates nothing about the tokens it
// holds, and any missing, incomplete or corrupt stored state is reported as
// ErrNoCredential so callers can treat it uniformly as "not logged in".
//
// FileStore keeps everything in one 0600 JSON file (default
// $HOME/.hiredesk/credentials.json) and replaces it atomically via
// write-then-rename. MemoryStore backs tests and ephemeral sessions.
package credstore
