package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/facebookgo/clock"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"projectapi/internal/metrics"
	"projectapi/internal/model"
	"projectapi/internal/repository"
	"projectapi/internal/share"
)

// sharedNotesLimit caps the notes included in a public share view.
const sharedNotesLimit = 100

// SharedProject is the public view behind an active share token.
type SharedProject struct {
	Project   model.Project       `json:"project"`
	OwnerName string              `json:"owner_name"`
	Notes     []model.ProjectNote `json:"notes"`
}

// ShareLinkService defines the use cases for share links.
type ShareLinkService interface {
	// Ensure returns the project's active link, creating one if none exists.
	// created reports whether this call inserted it.
	Ensure(ctx context.Context, requester, projectID string) (link *model.ShareLink, created bool, err error)
	List(ctx context.Context, requester, projectID string, limit, offset int) (*ListResult[model.ShareLink], error)
	Get(ctx context.Context, requester, id string) (*model.ShareLink, error)
	// SetActive toggles a link. Activating while the project has another active link fails with ErrConflict.
	SetActive(ctx context.Context, requester, id string, active bool) (*model.ShareLink, error)
	Delete(ctx context.Context, requester, id string) error
	// Resolve returns the shared view for an active token without authentication.
	Resolve(ctx context.Context, token string) (*SharedProject, error)
}

type shareLinkService struct {
	guard
	repo    repository.ShareLinkRepository
	users   repository.UserRepository
	notes   repository.NoteRepository
	clock   clock.Clock
	log     *zap.Logger
	metrics *metrics.Metrics
}

// NewShareLinkService constructs a new ShareLinkService. m may be nil.
func NewShareLinkService(
	repo repository.ShareLinkRepository,
	projects repository.ProjectRepository,
	users repository.UserRepository,
	notes repository.NoteRepository,
	clk clock.Clock,
	log *zap.Logger,
	m *metrics.Metrics,
) ShareLinkService {
	return &shareLinkService{
		guard:   guard{projects: projects},
		repo:    repo,
		users:   users,
		notes:   notes,
		clock:   clk,
		log:     log,
		metrics: m,
	}
}

func (s *shareLinkService) Ensure(ctx context.Context, requester, projectID string) (*model.ShareLink, bool, error) {
	if _, err := s.owned(ctx, requester, projectID); err != nil {
		return nil, false, err
	}

	existing, err := s.repo.FindActiveByProject(ctx, projectID)
	switch {
	case err == nil:
		s.metrics.ShareLinkIssued(false)
		return existing, false, nil
	case !errors.Is(err, repository.ErrNotFound):
		return nil, false, err
	}

	token, err := share.NewToken()
	if err != nil {
		return nil, false, err
	}
	link := &model.ShareLink{
		ID:        uuid.New().String(),
		ProjectID: projectID,
		Token:     token,
		IsActive:  true,
		CreatedBy: &requester,
		CreatedAt: s.clock.Now().UTC(),
	}
	created, err := s.repo.CreateActive(ctx, link)
	if err != nil {
		return nil, false, translate(err)
	}

	if !created {
		// A concurrent request won the insert; hand back its link.
		s.log.Info("share_link_insert_skipped", zap.String("project_id", projectID))
		winner, err := s.repo.FindActiveByProject(ctx, projectID)
		if err != nil {
			return nil, false, fmt.Errorf("reload active share link: %w", translate(err))
		}
		s.metrics.ShareLinkIssued(false)
		return winner, false, nil
	}

	stored, err := s.repo.FindByID(ctx, link.ID)
	if err != nil {
		return nil, false, translate(err)
	}
	s.metrics.ShareLinkIssued(true)
	return stored, true, nil
}

func (s *shareLinkService) List(ctx context.Context, requester, projectID string, limit, offset int) (*ListResult[model.ShareLink], error) {
	filter, err := s.scope(ctx, requester, projectID)
	if err != nil {
		return nil, err
	}
	res, err := s.repo.List(ctx, filter, pageQuery(limit, offset))
	if err != nil {
		return nil, err
	}
	return &ListResult[model.ShareLink]{Items: res.Items, Total: res.Total}, nil
}

func (s *shareLinkService) Get(ctx context.Context, requester, id string) (*model.ShareLink, error) {
	return s.find(ctx, requester, id)
}

func (s *shareLinkService) SetActive(ctx context.Context, requester, id string, active bool) (*model.ShareLink, error) {
	l, err := s.find(ctx, requester, id)
	if err != nil {
		return nil, err
	}
	if l.IsActive == active {
		return l, nil
	}
	updated, err := s.repo.SetActive(ctx, id, active)
	if err != nil {
		return nil, translate(err)
	}
	return updated, nil
}

func (s *shareLinkService) Delete(ctx context.Context, requester, id string) error {
	if _, err := s.find(ctx, requester, id); err != nil {
		return err
	}
	return translate(s.repo.Delete(ctx, id))
}

func (s *shareLinkService) Resolve(ctx context.Context, token string) (*SharedProject, error) {
	if token == "" {
		return nil, ErrNotFound
	}
	l, err := s.repo.FindActiveByToken(ctx, token)
	if err != nil {
		return nil, translate(err)
	}
	p, err := s.projects.FindByID(ctx, l.ProjectID)
	if err != nil {
		return nil, translate(err)
	}
	owner, err := s.users.FindByID(ctx, p.CreatedBy)
	if err != nil {
		return nil, translate(err)
	}
	notes, err := s.notes.List(ctx, repository.ListFilter{ProjectID: p.ID}, repository.PageQuery{Limit: sharedNotesLimit})
	if err != nil {
		return nil, err
	}
	return &SharedProject{Project: *p, OwnerName: owner.Name, Notes: notes.Items}, nil
}

func (s *shareLinkService) find(ctx context.Context, requester, id string) (*model.ShareLink, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	l, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, translate(err)
	}
	if _, err := s.owned(ctx, requester, l.ProjectID); err != nil {
		return nil, err
	}
	return l, nil
}
