// Package client implements the transport to the roomadmin REST backend.
//
// HTTPClient wraps every call in the backend JSON envelope, retries
// idempotent requests with exponential backoff and keeps the access token
// fresh: it refreshes proactively shortly before the token expires and
// once more when the backend answers 401, replaying the failed request.
//
// Failures surface as *APIError values which unwrap to ErrUnauthorized,
// ErrNotFound or ErrUnavailable depending on the status code.
package client
