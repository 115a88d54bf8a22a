package service

import (
	"context"

	"github.com/facebookgo/clock"
	"github.com/google/uuid"

	"projectapi/internal/model"
	"projectapi/internal/repository"
)

// NoteService defines the use cases for project notes.
type NoteService interface {
	Create(ctx context.Context, requester, projectID, content string) (*model.ProjectNote, error)
	List(ctx context.Context, requester, projectID string, limit, offset int) (*ListResult[model.ProjectNote], error)
	Get(ctx context.Context, requester, id string) (*model.ProjectNote, error)
	Update(ctx context.Context, requester, id, content string) (*model.ProjectNote, error)
	Delete(ctx context.Context, requester, id string) error
}

type noteService struct {
	guard
	repo  repository.NoteRepository
	clock clock.Clock
}

// NewNoteService constructs a new NoteService.
func NewNoteService(repo repository.NoteRepository, projects repository.ProjectRepository, clk clock.Clock) NoteService {
	return &noteService{guard: guard{projects: projects}, repo: repo, clock: clk}
}

func (s *noteService) Create(ctx context.Context, requester, projectID, content string) (*model.ProjectNote, error) {
	if _, err := s.requireProject(ctx, requester, projectID); err != nil {
		return nil, err
	}
	now := s.clock.Now().UTC()
	stored, err := s.repo.Create(ctx, &model.ProjectNote{
		ID:        uuid.New().String(),
		ProjectID: projectID,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return nil, translate(err)
	}
	return stored, nil
}

func (s *noteService) List(ctx context.Context, requester, projectID string, limit, offset int) (*ListResult[model.ProjectNote], error) {
	filter, err := s.scope(ctx, requester, projectID)
	if err != nil {
		return nil, err
	}
	res, err := s.repo.List(ctx, filter, pageQuery(limit, offset))
	if err != nil {
		return nil, err
	}
	return &ListResult[model.ProjectNote]{Items: res.Items, Total: res.Total}, nil
}

func (s *noteService) Get(ctx context.Context, requester, id string) (*model.ProjectNote, error) {
	return s.find(ctx, requester, id)
}

func (s *noteService) Update(ctx context.Context, requester, id, content string) (*model.ProjectNote, error) {
	n, err := s.find(ctx, requester, id)
	if err != nil {
		return nil, err
	}
	n.Content = content
	n.UpdatedAt = s.clock.Now().UTC()
	stored, err := s.repo.Update(ctx, n)
	if err != nil {
		return nil, translate(err)
	}
	return stored, nil
}

func (s *noteService) Delete(ctx context.Context, requester, id string) error {
	if _, err := s.find(ctx, requester, id); err != nil {
		return err
	}
	return translate(s.repo.Delete(ctx, id))
}

func (s *noteService) find(ctx context.Context, requester, id string) (*model.ProjectNote, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	n, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, translate(err)
	}
	if _, err := s.owned(ctx, requester, n.ProjectID); err != nil {
		return nil, err
	}
	return n, nil
}
