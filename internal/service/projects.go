package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vialtyfake/vialty-blog/internal/apperr"
	"github.com/vialtyfake/vialty-blog/internal/models"
	"github.com/vialtyfake/vialty-blog/internal/store"
)

type ProjectService struct {
	store store.DocumentStore
	log   *zap.Logger
}

func NewProjectService(s store.DocumentStore, log *zap.Logger) *ProjectService {
	return &ProjectService{store: s, log: log}
}

type CreateProjectInput struct {
	Title     string
	Role      string
	Stack     string
	Link      string
	Image     string
	Blurb     string
	StartDate string
	EndDate   string
}

type UpdateProjectInput struct {
	Title     *string
	Role      *string
	Stack     *string
	Link      *string
	Image     *string
	Blurb     *string
	StartDate *string
	EndDate   *string
}

func (s *ProjectService) List(ctx context.Context) ([]models.Project, error) {
	return store.ReadCollection[models.Project](ctx, s.store, store.KeyProjects)
}

func (s *ProjectService) Create(ctx context.Context, in CreateProjectInput) (*models.Project, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, apperr.Invalid("title is required")
	}
	now := time.Now().UTC()
	project := models.Project{
		ID:        uuid.NewString(),
		Title:     in.Title,
		Role:      in.Role,
		Stack:     in.Stack,
		Link:      in.Link,
		Image:     in.Image,
		Blurb:     in.Blurb,
		StartDate: in.StartDate,
		EndDate:   in.EndDate,
		CreatedAt: now,
		UpdatedAt: now,
	}

	projects, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	projects = append([]models.Project{project}, projects...)
	if err := store.WriteCollection(ctx, s.store, store.KeyProjects, projects); err != nil {
		return nil, err
	}
	s.log.Info("project created", zap.String("id", project.ID), zap.String("title", project.Title))
	return &project, nil
}

func (s *ProjectService) Update(ctx context.Context, id string, in UpdateProjectInput) (*models.Project, error) {
	projects, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	idx := -1
	for i := range projects {
		if projects[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, apperr.ErrNotFound
	}

	p := &projects[idx]
	if in.Title != nil {
		p.Title = *in.Title
	}
	if in.Role != nil {
		p.Role = *in.Role
	}
	if in.Stack != nil {
		p.Stack = *in.Stack
	}
	if in.Link != nil {
		p.Link = *in.Link
	}
	if in.Image != nil {
		p.Image = *in.Image
	}
	if in.Blurb != nil {
		p.Blurb = *in.Blurb
	}
	if in.StartDate != nil {
		p.StartDate = *in.StartDate
	}
	if in.EndDate != nil {
		p.EndDate = *in.EndDate
	}
	p.UpdatedAt = time.Now().UTC()

	if err := store.WriteCollection(ctx, s.store, store.KeyProjects, projects); err != nil {
		return nil, err
	}
	updated := projects[idx]
	return &updated, nil
}

func (s *ProjectService) Delete(ctx context.Context, id string) error {
	return store.RemoveByID(ctx, s.store, store.KeyProjects, id,
		func(p models.Project) string { return p.ID })
}
