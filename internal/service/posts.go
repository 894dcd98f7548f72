// Package service holds the domain logic between the HTTP handlers and the
// document store. Every mutation follows the store's read-whole, modify,
// write-whole discipline.
package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vialtyfake/vialty-blog/internal/apperr"
	"github.com/vialtyfake/vialty-blog/internal/models"
	"github.com/vialtyfake/vialty-blog/internal/store"
)

const maxPostImages = 3

type PostService struct {
	store store.DocumentStore
	log   *zap.Logger
}

func NewPostService(s store.DocumentStore, log *zap.Logger) *PostService {
	return &PostService{store: s, log: log}
}

type CreatePostInput struct {
	Title       string
	Content     string
	Tags        []string
	Images      []string
	IsPublished *bool
	AuthorIP    string
}

type UpdatePostInput struct {
	Title       *string
	Content     *string
	Tags        *[]string
	Images      *[]string
	IsPublished *bool
}

// ListPublic returns published posts in stored (newest-first) order.
func (s *PostService) ListPublic(ctx context.Context) ([]models.Post, error) {
	posts, err := store.ReadCollection[models.Post](ctx, s.store, store.KeyPosts)
	if err != nil {
		return nil, err
	}
	published := make([]models.Post, 0, len(posts))
	for _, p := range posts {
		if p.IsPublished {
			published = append(published, p)
		}
	}
	return published, nil
}

// ListAdmin returns every post, drafts included.
func (s *PostService) ListAdmin(ctx context.Context) ([]models.Post, error) {
	return store.ReadCollection[models.Post](ctx, s.store, store.KeyPosts)
}

// Create prepends a new post to the collection. Posts default to published.
func (s *PostService) Create(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, apperr.Invalid("title is required")
	}
	if len(in.Images) > maxPostImages {
		return nil, apperr.Invalid("a post can carry at most 3 images")
	}

	published := true
	if in.IsPublished != nil {
		published = *in.IsPublished
	}
	now := time.Now().UTC()
	post := models.Post{
		ID:          uuid.NewString(),
		Title:       in.Title,
		Content:     in.Content,
		Tags:        models.EncodeTags(in.Tags),
		Images:      in.Images,
		IsPublished: published,
		AuthorIP:    in.AuthorIP,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	posts, err := store.ReadCollection[models.Post](ctx, s.store, store.KeyPosts)
	if err != nil {
		return nil, err
	}
	posts = append([]models.Post{post}, posts...)
	if err := store.WriteCollection(ctx, s.store, store.KeyPosts, posts); err != nil {
		return nil, err
	}
	s.log.Info("post created", zap.String("id", post.ID), zap.String("title", post.Title))
	return &post, nil
}

// Update shallow-merges the supplied fields over the stored post and stamps
// updated_at.
func (s *PostService) Update(ctx context.Context, id string, in UpdatePostInput) (*models.Post, error) {
	if in.Images != nil && len(*in.Images) > maxPostImages {
		return nil, apperr.Invalid("a post can carry at most 3 images")
	}

	posts, err := store.ReadCollection[models.Post](ctx, s.store, store.KeyPosts)
	if err != nil {
		return nil, err
	}
	idx := -1
	for i := range posts {
		if posts[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, apperr.ErrNotFound
	}

	p := &posts[idx]
	if in.Title != nil {
		p.Title = *in.Title
	}
	if in.Content != nil {
		p.Content = *in.Content
	}
	if in.Tags != nil {
		p.Tags = models.EncodeTags(*in.Tags)
	}
	if in.Images != nil {
		p.Images = *in.Images
	}
	if in.IsPublished != nil {
		p.IsPublished = *in.IsPublished
	}
	p.UpdatedAt = time.Now().UTC()

	if err := store.WriteCollection(ctx, s.store, store.KeyPosts, posts); err != nil {
		return nil, err
	}
	updated := posts[idx]
	return &updated, nil
}

// Delete removes the post with the given id. Deleting an unknown id
// succeeds without changes.
func (s *PostService) Delete(ctx context.Context, id string) error {
	return store.RemoveByID(ctx, s.store, store.KeyPosts, id,
		func(p models.Post) string { return p.ID })
}

// Search scans published posts for a case-insensitive substring match in
// title, content or any decoded tag. Queries shorter than two characters
// are rejected.
func (s *PostService) Search(ctx context.Context, query string) ([]models.Post, error) {
	query = strings.TrimSpace(query)
	if len(query) < 2 {
		return nil, apperr.Invalid("search query must be at least 2 characters")
	}
	term := strings.ToLower(query)

	posts, err := s.ListPublic(ctx)
	if err != nil {
		return nil, err
	}
	results := make([]models.Post, 0)
	for _, p := range posts {
		if postMatches(&p, term) {
			results = append(results, p)
		}
	}
	return results, nil
}

func postMatches(p *models.Post, term string) bool {
	if strings.Contains(strings.ToLower(p.Title), term) {
		return true
	}
	if strings.Contains(strings.ToLower(p.Content), term) {
		return true
	}
	for _, tag := range p.DecodedTags() {
		if strings.Contains(strings.ToLower(tag), term) {
			return true
		}
	}
	return false
}

// IncrementViews bumps the per-post counter and mirrors the new value onto
// the post record. The mirror write is best-effort.
func (s *PostService) IncrementViews(ctx context.Context, postID string) (int64, error) {
	views, err := s.store.Incr(ctx, store.ViewKey(postID))
	if err != nil {
		return 0, err
	}

	posts, err := store.ReadCollection[models.Post](ctx, s.store, store.KeyPosts)
	if err == nil {
		for i := range posts {
			if posts[i].ID == postID {
				posts[i].Views = views
				err = store.WriteCollection(ctx, s.store, store.KeyPosts, posts)
				break
			}
		}
	}
	if err != nil {
		s.log.Warn("view mirror failed", zap.String("post", postID), zap.Error(err))
	}
	return views, nil
}

// Views reads the counter for one post, defaulting to zero.
func (s *PostService) Views(ctx context.Context, postID string) (int64, error) {
	raw, ok, err := s.store.Get(ctx, store.ViewKey(postID))
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, nil
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, nil
	}
	return n, nil
}
