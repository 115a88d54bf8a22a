package service

import (
	"context"
	"strings"

	"github.com/facebookgo/clock"
	"github.com/google/uuid"

	"projectapi/internal/model"
	"projectapi/internal/repository"
)

// CommentService defines the use cases for project comments.
// The requester becomes the comment's author.
type CommentService interface {
	Create(ctx context.Context, requester, projectID, message string) (*model.Comment, error)
	List(ctx context.Context, requester, projectID string, limit, offset int) (*ListResult[model.Comment], error)
	Get(ctx context.Context, requester, id string) (*model.Comment, error)
	Update(ctx context.Context, requester, id, message string) (*model.Comment, error)
	Delete(ctx context.Context, requester, id string) error
}

type commentService struct {
	guard
	repo  repository.CommentRepository
	clock clock.Clock
}

// NewCommentService constructs a new CommentService.
func NewCommentService(repo repository.CommentRepository, projects repository.ProjectRepository, clk clock.Clock) CommentService {
	return &commentService{guard: guard{projects: projects}, repo: repo, clock: clk}
}

func (s *commentService) Create(ctx context.Context, requester, projectID, message string) (*model.Comment, error) {
	if err := checkMessage(message); err != nil {
		return nil, err
	}
	if _, err := s.requireProject(ctx, requester, projectID); err != nil {
		return nil, err
	}
	now := s.clock.Now().UTC()
	stored, err := s.repo.Create(ctx, &model.Comment{
		ID:        uuid.New().String(),
		ProjectID: projectID,
		UserID:    requester,
		Message:   message,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return nil, translate(err)
	}
	return stored, nil
}

func (s *commentService) List(ctx context.Context, requester, projectID string, limit, offset int) (*ListResult[model.Comment], error) {
	filter, err := s.scope(ctx, requester, projectID)
	if err != nil {
		return nil, err
	}
	res, err := s.repo.List(ctx, filter, pageQuery(limit, offset))
	if err != nil {
		return nil, err
	}
	return &ListResult[model.Comment]{Items: res.Items, Total: res.Total}, nil
}

func (s *commentService) Get(ctx context.Context, requester, id string) (*model.Comment, error) {
	return s.find(ctx, requester, id)
}

func (s *commentService) Update(ctx context.Context, requester, id, message string) (*model.Comment, error) {
	if err := checkMessage(message); err != nil {
		return nil, err
	}
	c, err := s.find(ctx, requester, id)
	if err != nil {
		return nil, err
	}
	c.Message = message
	c.UpdatedAt = s.clock.Now().UTC()
	stored, err := s.repo.Update(ctx, c)
	if err != nil {
		return nil, translate(err)
	}
	return stored, nil
}

func (s *commentService) Delete(ctx context.Context, requester, id string) error {
	if _, err := s.find(ctx, requester, id); err != nil {
		return err
	}
	return translate(s.repo.Delete(ctx, id))
}

func (s *commentService) find(ctx context.Context, requester, id string) (*model.Comment, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, translate(err)
	}
	if _, err := s.owned(ctx, requester, c.ProjectID); err != nil {
		return nil, err
	}
	return c, nil
}

func checkMessage(message string) error {
	if strings.TrimSpace(message) == "" {
		return invalid("message", "This field may not be blank.")
	}
	return nil
}
