// Package metadata keeps small string settings of the CLI session in the
// local database, such as the name of the logged-in user.
package metadata

import (
	"context"
)

// Well-known keys.
const (
	KeyUsername    = "username"
	KeyUserID      = "user_id"
	KeyLastLoginAt = "last_login_at"
)

type Repository interface {
	// Get returns ("", false, nil) when key is absent.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string]string, error)
	Clear(ctx context.Context) error
}
