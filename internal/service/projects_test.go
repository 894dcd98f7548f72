package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/vialtyfake/vialty-blog/internal/apperr"
	"github.com/vialtyfake/vialty-blog/internal/store"
)

func newProjectService(t *testing.T) *ProjectService {
	t.Helper()
	return NewProjectService(store.NewMemoryStore(), zap.NewNop())
}

func TestProjectCRUD(t *testing.T) {
	s := newProjectService(t)
	ctx := context.Background()

	created, err := s.Create(ctx, CreateProjectInput{
		Title: "vialty",
		Role:  "author",
		Stack: "go, redis",
		Link:  "https://example.com",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == "" || created.CreatedAt.IsZero() {
		t.Fatalf("missing id or created_at: %+v", created)
	}

	updated, err := s.Update(ctx, created.ID, UpdateProjectInput{Blurb: strPtr("a blog engine")})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Blurb != "a blog engine" || updated.Title != "vialty" {
		t.Fatalf("merge wrong: %+v", updated)
	}

	list, _ := s.List(ctx)
	if len(list) != 1 || list[0].Blurb != "a blog engine" {
		t.Fatalf("list: %+v", list)
	}

	if err := s.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := s.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete absent id must succeed: %v", err)
	}
	list, _ = s.List(ctx)
	if len(list) != 0 {
		t.Fatalf("projects remain: %+v", list)
	}
}

func TestProjectValidation(t *testing.T) {
	s := newProjectService(t)
	ctx := context.Background()

	var verr *apperr.ValidationError
	if _, err := s.Create(ctx, CreateProjectInput{Title: " "}); !errors.As(err, &verr) {
		t.Fatalf("empty title: got %v", err)
	}
	if _, err := s.Update(ctx, "missing", UpdateProjectInput{}); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("unknown id: got %v", err)
	}
}
