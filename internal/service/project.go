package service

import (
	"context"
	"time"

	"github.com/facebookgo/clock"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"projectapi/internal/model"
	"projectapi/internal/repository"
	"projectapi/internal/storage"
)

const dateLayout = "2006-01-02"

// ProjectInput carries client-supplied project fields. Dates use YYYY-MM-DD;
// an empty string clears the date.
type ProjectInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	StartDate   *string `json:"start_date"`
	EndDate     *string `json:"end_date"`
}

// ProjectService defines the use cases for a user's projects.
type ProjectService interface {
	Create(ctx context.Context, requester string, in ProjectInput) (*model.Project, error)
	List(ctx context.Context, requester string, limit, offset int) (*ListResult[model.Project], error)
	Get(ctx context.Context, requester, id string) (*model.Project, error)
	// Update replaces every field when partial is false and only the supplied ones otherwise.
	Update(ctx context.Context, requester, id string, in ProjectInput, partial bool) (*model.Project, error)
	// Delete removes the project with every dependent row, then its attachment objects.
	Delete(ctx context.Context, requester, id string) error
}

type projectService struct {
	guard
	repo  repository.ProjectRepository
	store storage.Storage
	clock clock.Clock
	log   *zap.Logger
}

// NewProjectService constructs a new ProjectService. store may be nil when attachments are disabled.
func NewProjectService(repo repository.ProjectRepository, store storage.Storage, clk clock.Clock, log *zap.Logger) ProjectService {
	return &projectService{guard: guard{projects: repo}, repo: repo, store: store, clock: clk, log: log}
}

func (s *projectService) Create(ctx context.Context, requester string, in ProjectInput) (*model.Project, error) {
	p := &model.Project{}
	if err := applyProjectInput(p, in, false); err != nil {
		return nil, err
	}
	now := s.clock.Now().UTC()
	p.ID = uuid.New().String()
	p.CreatedBy = requester
	p.CreatedAt = now
	p.UpdatedAt = now
	stored, err := s.repo.Create(ctx, p)
	if err != nil {
		return nil, translate(err)
	}
	return stored, nil
}

func (s *projectService) List(ctx context.Context, requester string, limit, offset int) (*ListResult[model.Project], error) {
	res, err := s.repo.ListByOwner(ctx, requester, pageQuery(limit, offset))
	if err != nil {
		return nil, err
	}
	return &ListResult[model.Project]{Items: res.Items, Total: res.Total}, nil
}

func (s *projectService) Get(ctx context.Context, requester, id string) (*model.Project, error) {
	return s.owned(ctx, requester, id)
}

func (s *projectService) Update(ctx context.Context, requester, id string, in ProjectInput, partial bool) (*model.Project, error) {
	p, err := s.owned(ctx, requester, id)
	if err != nil {
		return nil, err
	}
	if err := applyProjectInput(p, in, partial); err != nil {
		return nil, err
	}
	p.UpdatedAt = s.clock.Now().UTC()
	stored, err := s.repo.Update(ctx, p)
	if err != nil {
		return nil, translate(err)
	}
	return stored, nil
}

func (s *projectService) Delete(ctx context.Context, requester, id string) error {
	if _, err := s.owned(ctx, requester, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return translate(err)
	}
	if s.store == nil {
		return nil
	}
	// Rows are gone at this point; leftover objects are only logged.
	if err := s.store.DeletePrefix(ctx, storage.ProjectPrefix(id)); err != nil {
		s.log.Warn("project_attachments_cleanup_failed",
			zap.String("project_id", id),
			zap.Error(err),
		)
	}
	return nil
}

// applyProjectInput validates in and writes it onto p. In partial mode nil fields are left alone.
func applyProjectInput(p *model.Project, in ProjectInput, partial bool) error {
	fe := fieldErrors{}

	if in.Name != nil {
		p.Name = checkTitle(fe, "name", *in.Name)
	} else if !partial {
		fe.add("name", "This field is required.")
	}

	if in.Description != nil || !partial {
		p.Description = in.Description
	}

	start, startOK := parseDate(fe, "start_date", in.StartDate)
	if startOK && (in.StartDate != nil || !partial) {
		p.StartDate = start
	}
	end, endOK := parseDate(fe, "end_date", in.EndDate)
	if endOK && (in.EndDate != nil || !partial) {
		p.EndDate = end
	}

	if startOK && endOK && p.StartDate != nil && p.EndDate != nil && p.EndDate.Before(*p.StartDate) {
		fe.add("end_date", "End date cannot be before start date.")
	}
	return fe.err()
}

func parseDate(fe fieldErrors, field string, v *string) (*time.Time, bool) {
	if v == nil || *v == "" {
		return nil, true
	}
	t, err := time.Parse(dateLayout, *v)
	if err != nil {
		fe.add(field, "Date has wrong format. Use YYYY-MM-DD.")
		return nil, false
	}
	return &t, true
}
