// Package auth implements the IP allow-list gate in front of every admin
// operation.
package auth

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vialtyfake/vialty-blog/internal/apperr"
	"github.com/vialtyfake/vialty-blog/internal/models"
	"github.com/vialtyfake/vialty-blog/internal/store"
)

// Seeded on first use so the local operator is never locked out.
var defaultEntries = []struct{ ip, name string }{
	{"127.0.0.1", "Local Admin IPv4"},
	{"::1", "Local Admin IPv6"},
}

type Gate struct {
	store store.DocumentStore
	log   *zap.Logger
}

func NewGate(s store.DocumentStore, log *zap.Logger) *Gate {
	return &Gate{store: s, log: log}
}

// ClientIP derives the caller's address: first comma-separated token of
// X-Forwarded-For, else X-Real-IP, else the literal "unknown", with any
// IPv6-mapped-IPv4 prefix stripped.
func ClientIP(r *http.Request) string {
	ip := r.Header.Get("X-Forwarded-For")
	if ip == "" {
		ip = r.Header.Get("X-Real-IP")
	}
	if ip == "" {
		return "unknown"
	}
	return Normalize(ip)
}

// Normalize trims the first forwarded-for token and strips a leading
// "::ffff:" prefix.
func Normalize(ip string) string {
	if i := strings.Index(ip, ","); i >= 0 {
		ip = ip[:i]
	}
	return strings.TrimPrefix(strings.TrimSpace(ip), "::ffff:")
}

// IsAuthorized reports whether the normalized address is an active
// allow-list entry. A storage failure denies access (fail closed).
func (g *Gate) IsAuthorized(ctx context.Context, ip string) (bool, error) {
	entries, err := g.entries(ctx)
	if err != nil {
		g.log.Warn("allow-list lookup failed, denying access", zap.Error(err))
		return false, err
	}
	for _, e := range entries {
		if e.IsActive && e.IPAddress == ip {
			return true, nil
		}
	}
	return false, nil
}

// List returns all allow-list entries, seeding the defaults on first use.
func (g *Gate) List(ctx context.Context) ([]models.AllowListEntry, error) {
	return g.entries(ctx)
}

// Add appends a new entry to the detailed list and keeps the simple string
// list in sync. An empty ip_address is rejected; an empty name defaults to
// "Admin".
func (g *Gate) Add(ctx context.Context, ipAddress, name string) (*models.AllowListEntry, error) {
	ipAddress = strings.TrimSpace(ipAddress)
	if ipAddress == "" {
		return nil, apperr.Invalid("ip_address is required")
	}
	if name == "" {
		name = "Admin"
	}

	entries, err := g.entries(ctx)
	if err != nil {
		return nil, err
	}
	entry := models.AllowListEntry{
		ID:        uuid.NewString(),
		IPAddress: ipAddress,
		Name:      name,
		CreatedAt: time.Now().UTC(),
		IsActive:  true,
	}
	entries = append(entries, entry)
	if err := g.persist(ctx, entries); err != nil {
		return nil, err
	}
	return &entry, nil
}

// Remove deletes the entry with the given id from both representations.
// Removing an unknown id succeeds without changes.
func (g *Gate) Remove(ctx context.Context, id string) error {
	entries, err := g.entries(ctx)
	if err != nil {
		return err
	}
	kept := entries[:0]
	for _, e := range entries {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	return g.persist(ctx, kept)
}

// entries loads the detailed list, writing the default entries back to
// storage the first time the key is seen.
func (g *Gate) entries(ctx context.Context) ([]models.AllowListEntry, error) {
	_, ok, err := g.store.Get(ctx, store.KeyAdminIPsList)
	if err != nil {
		return nil, err
	}
	if !ok {
		seeded := make([]models.AllowListEntry, 0, len(defaultEntries))
		now := time.Now().UTC()
		for _, d := range defaultEntries {
			seeded = append(seeded, models.AllowListEntry{
				ID:        uuid.NewString(),
				IPAddress: d.ip,
				Name:      d.name,
				CreatedAt: now,
				IsActive:  true,
			})
		}
		if err := g.persist(ctx, seeded); err != nil {
			return nil, err
		}
		g.log.Info("seeded default admin allow-list")
		return seeded, nil
	}
	return store.ReadCollection[models.AllowListEntry](ctx, g.store, store.KeyAdminIPsList)
}

// persist writes the detailed list and the derived simple string list.
func (g *Gate) persist(ctx context.Context, entries []models.AllowListEntry) error {
	if err := store.WriteCollection(ctx, g.store, store.KeyAdminIPsList, entries); err != nil {
		return err
	}
	simple := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsActive {
			simple = append(simple, e.IPAddress)
		}
	}
	return store.WriteCollection(ctx, g.store, store.KeyAdminIPs, simple)
}
