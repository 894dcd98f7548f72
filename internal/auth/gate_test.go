package auth

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/vialtyfake/vialty-blog/internal/models"
	"github.com/vialtyfake/vialty-blog/internal/store"
)

func newGate(t *testing.T) (*Gate, *store.MemoryStore) {
	t.Helper()
	s := store.NewMemoryStore()
	return NewGate(s, zap.NewNop()), s
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"203.0.113.9", "203.0.113.9"},
		{"::ffff:203.0.113.9", "203.0.113.9"},
		{" 203.0.113.9 , 10.0.0.1", "203.0.113.9"},
		{"::1", "::1"},
	}
	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestClientIP(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	if got := ClientIP(r); got != "unknown" {
		t.Errorf("no headers: got %q, want unknown", got)
	}

	r.Header.Set("X-Real-IP", "198.51.100.7")
	if got := ClientIP(r); got != "198.51.100.7" {
		t.Errorf("real-ip: got %q", got)
	}

	r.Header.Set("X-Forwarded-For", "::ffff:203.0.113.9, 10.0.0.1")
	if got := ClientIP(r); got != "203.0.113.9" {
		t.Errorf("forwarded-for takes precedence: got %q", got)
	}
}

func TestIsAuthorizedSeedsDefaults(t *testing.T) {
	g, s := newGate(t)
	ctx := context.Background()

	ok, err := g.IsAuthorized(ctx, "127.0.0.1")
	if err != nil || !ok {
		t.Fatalf("localhost should be seeded: ok=%v err=%v", ok, err)
	}
	ok, _ = g.IsAuthorized(ctx, "::1")
	if !ok {
		t.Fatal("::1 should be seeded")
	}
	ok, _ = g.IsAuthorized(ctx, "203.0.113.9")
	if ok {
		t.Fatal("unknown address must be denied")
	}

	// The seed persists both representations.
	if _, ok, _ := s.Get(ctx, store.KeyAdminIPsList); !ok {
		t.Fatal("detailed list not persisted")
	}
	simple, err := store.ReadCollection[string](ctx, s, store.KeyAdminIPs)
	if err != nil || len(simple) != 2 {
		t.Fatalf("simple list = %v err %v, want two entries", simple, err)
	}
}

func TestAddAndRemoveKeepListsInSync(t *testing.T) {
	g, s := newGate(t)
	ctx := context.Background()

	entry, err := g.Add(ctx, "203.0.113.9", "laptop")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if entry.ID == "" || !entry.IsActive || entry.Name != "laptop" {
		t.Fatalf("unexpected entry: %+v", entry)
	}
	if ok, _ := g.IsAuthorized(ctx, "203.0.113.9"); !ok {
		t.Fatal("added address should be authorized")
	}

	if err := g.Remove(ctx, entry.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if ok, _ := g.IsAuthorized(ctx, "203.0.113.9"); ok {
		t.Fatal("removed address must be denied")
	}
	simple, _ := store.ReadCollection[string](ctx, s, store.KeyAdminIPs)
	for _, ip := range simple {
		if ip == "203.0.113.9" {
			t.Fatal("simple list still carries removed address")
		}
	}

	// Removing an unknown id is a no-op success.
	if err := g.Remove(ctx, "no-such-id"); err != nil {
		t.Fatalf("remove unknown id: %v", err)
	}
}

func TestAddRejectsEmptyAddress(t *testing.T) {
	g, _ := newGate(t)
	if _, err := g.Add(context.Background(), "  ", "x"); err == nil {
		t.Fatal("expected validation error for empty ip_address")
	}
}

func TestInactiveEntryDenied(t *testing.T) {
	g, s := newGate(t)
	ctx := context.Background()

	entries := []models.AllowListEntry{{ID: "1", IPAddress: "203.0.113.9", IsActive: false}}
	if err := store.WriteCollection(ctx, s, store.KeyAdminIPsList, entries); err != nil {
		t.Fatal(err)
	}
	if ok, _ := g.IsAuthorized(ctx, "203.0.113.9"); ok {
		t.Fatal("inactive entry must be denied")
	}
}

// failingStore errors on every operation.
type failingStore struct{}

func (failingStore) Get(context.Context, string) (string, bool, error) {
	return "", false, errors.New("store down")
}
func (failingStore) Set(context.Context, string, string) error { return errors.New("store down") }
func (failingStore) Del(context.Context, string) error         { return errors.New("store down") }
func (failingStore) Incr(context.Context, string) (int64, error) {
	return 0, errors.New("store down")
}
func (failingStore) Close() error { return nil }

func TestStorageFailureDenies(t *testing.T) {
	g := NewGate(failingStore{}, zap.NewNop())
	ok, err := g.IsAuthorized(context.Background(), "127.0.0.1")
	if ok {
		t.Fatal("gate must fail closed on storage errors")
	}
	if err == nil {
		t.Fatal("expected the storage error to surface")
	}
}
