// Package store provides the key-value document store behind every
// collection. Each collection lives as one JSON-serialized array under one
// key; there is no per-item addressability at the storage layer.
package store

import "context"

// Collection keys.
const (
	KeyPosts        = "posts"
	KeyProjects     = "projects"
	KeyAdminIPs     = "admin_ips"
	KeyAdminIPsList = "admin_ips_list"
)

// ViewKey returns the counter key for one post.
func ViewKey(postID string) string { return "views:" + postID }

// DocumentStore is the uniform get/set/delete surface over a pluggable
// backend. Get reports false when the key has never been written.
type DocumentStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Del(ctx context.Context, key string) error
	Incr(ctx context.Context, key string) (int64, error)
	Close() error
}
