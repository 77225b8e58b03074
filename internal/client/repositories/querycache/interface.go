// Package querycache is a local read-through cache for backend queries,
// stored in the client SQLite database.
//
// Entries are JSON documents under hierarchical keys such as
// "rooms/detail/<id>". Invalidate marks every entry under a prefix stale so
// the next read goes to the backend; Remove deletes them outright.
package querycache

import (
	"context"
)

type Repository interface {
	// Get decodes the fresh entry at key into dst and reports whether there
	// was one. Stale and expired entries are misses.
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, value any) error
	Invalidate(ctx context.Context, prefix string) error
	Remove(ctx context.Context, prefix string) error
}
