package service

import (
	"context"
	"time"

	"github.com/facebookgo/clock"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"projectapi/internal/metrics"
	"projectapi/internal/model"
	"projectapi/internal/repository"
)

// ReminderInput carries client-supplied reminder fields. On update nil fields are left alone.
type ReminderInput struct {
	ProjectID        string                `json:"project"`
	Title            *string               `json:"title"`
	ReminderDatetime *time.Time            `json:"reminder_datetime"`
	Status           *model.ReminderStatus `json:"status"`
}

// ReminderService defines the use cases for reminders. Reads report the status
// the reminder has at the time of the call.
type ReminderService interface {
	// Create rejects due times in the past and stores the computed initial status.
	Create(ctx context.Context, requester string, in ReminderInput) (*model.Reminder, error)
	List(ctx context.Context, requester, projectID string, limit, offset int) (*ListResult[model.Reminder], error)
	Get(ctx context.Context, requester, id string) (*model.Reminder, error)
	// Update changes title and due time. The only status a client may set is completed.
	Update(ctx context.Context, requester, id string, in ReminderInput) (*model.Reminder, error)
	Delete(ctx context.Context, requester, id string) error
	// RefreshStatuses persists the computed status of every pending and due_soon reminder.
	RefreshStatuses(ctx context.Context) (int64, error)
}

// ReminderOptions tunes the reminder service.
type ReminderOptions struct {
	// PersistOnRead writes changed statuses back while listing.
	PersistOnRead bool
}

type reminderService struct {
	guard
	repo    repository.ReminderRepository
	clock   clock.Clock
	log     *zap.Logger
	metrics *metrics.Metrics
	opts    ReminderOptions
}

// NewReminderService constructs a new ReminderService. m may be nil.
func NewReminderService(
	repo repository.ReminderRepository,
	projects repository.ProjectRepository,
	clk clock.Clock,
	log *zap.Logger,
	m *metrics.Metrics,
	opts ReminderOptions,
) ReminderService {
	return &reminderService{
		guard:   guard{projects: projects},
		repo:    repo,
		clock:   clk,
		log:     log,
		metrics: m,
		opts:    opts,
	}
}

func (s *reminderService) Create(ctx context.Context, requester string, in ReminderInput) (*model.Reminder, error) {
	now := s.clock.Now().UTC()

	fe := fieldErrors{}
	var title string
	if in.Title != nil {
		title = checkTitle(fe, "title", *in.Title)
	} else {
		fe.add("title", "This field is required.")
	}
	switch {
	case in.ReminderDatetime == nil:
		fe.add("reminder_datetime", "This field is required.")
	case in.ReminderDatetime.Before(now):
		fe.add("reminder_datetime", "Reminder datetime must be in the future.")
	}
	if in.ProjectID == "" {
		fe.add("project", "This field is required.")
	}
	if err := fe.err(); err != nil {
		return nil, err
	}

	if _, err := s.owned(ctx, requester, in.ProjectID); err != nil {
		return nil, err
	}

	due := in.ReminderDatetime.UTC()
	stored, err := s.repo.Create(ctx, &model.Reminder{
		ID:               uuid.New().String(),
		ProjectID:        in.ProjectID,
		Title:            title,
		ReminderDatetime: due,
		Status:           model.ComputeReminderStatus(due, now),
		CreatedBy:        requester,
		CreatedAt:        now,
		UpdatedAt:        now,
	})
	if err != nil {
		return nil, translate(err)
	}
	return stored, nil
}

func (s *reminderService) List(ctx context.Context, requester, projectID string, limit, offset int) (*ListResult[model.Reminder], error) {
	filter, err := s.scope(ctx, requester, projectID)
	if err != nil {
		return nil, err
	}
	res, err := s.repo.List(ctx, filter, pageQuery(limit, offset))
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	var written int64
	for i := range res.Items {
		r := &res.Items[i]
		projected := r.ProjectedStatus(now)
		if projected == r.Status {
			continue
		}
		if s.opts.PersistOnRead {
			changed, err := s.repo.UpdateStatus(ctx, r.ID, r.Status, projected)
			if err != nil {
				return nil, err
			}
			if changed {
				written++
			}
		}
		r.Status = projected
	}
	s.metrics.ReminderStatusesUpdated("read", written)

	return &ListResult[model.Reminder]{Items: res.Items, Total: res.Total}, nil
}

func (s *reminderService) Get(ctx context.Context, requester, id string) (*model.Reminder, error) {
	r, err := s.find(ctx, requester, id)
	if err != nil {
		return nil, err
	}
	r.Status = r.ProjectedStatus(s.clock.Now())
	return r, nil
}

func (s *reminderService) Update(ctx context.Context, requester, id string, in ReminderInput) (*model.Reminder, error) {
	r, err := s.find(ctx, requester, id)
	if err != nil {
		return nil, err
	}
	now := s.clock.Now().UTC()

	fe := fieldErrors{}
	if in.Title != nil {
		r.Title = checkTitle(fe, "title", *in.Title)
	}
	if in.ReminderDatetime != nil {
		r.ReminderDatetime = in.ReminderDatetime.UTC()
	}
	if in.Status != nil && *in.Status != r.Status && *in.Status != r.ProjectedStatus(now) {
		if *in.Status != model.ReminderCompleted {
			fe.add("status", "Only \"completed\" can be set explicitly.")
		} else {
			r.Status = model.ReminderCompleted
		}
	}
	if err := fe.err(); err != nil {
		return nil, err
	}

	if r.Status.Automatic() || r.Status == model.ReminderOverdue {
		r.Status = model.ComputeReminderStatus(r.ReminderDatetime, now)
	}
	r.UpdatedAt = now

	stored, err := s.repo.Update(ctx, r)
	if err != nil {
		return nil, translate(err)
	}
	return stored, nil
}

func (s *reminderService) Delete(ctx context.Context, requester, id string) error {
	if _, err := s.find(ctx, requester, id); err != nil {
		return err
	}
	return translate(s.repo.Delete(ctx, id))
}

func (s *reminderService) RefreshStatuses(ctx context.Context) (int64, error) {
	n, err := s.repo.RefreshStatuses(ctx, s.clock.Now().UTC())
	if err != nil {
		return 0, err
	}
	s.metrics.ReminderStatusesUpdated("sweep", n)
	if n > 0 {
		s.log.Debug("reminder_statuses_refreshed", zap.Int64("updated", n))
	}
	return n, nil
}

func (s *reminderService) find(ctx context.Context, requester, id string) (*model.Reminder, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	r, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, translate(err)
	}
	if _, err := s.owned(ctx, requester, r.ProjectID); err != nil {
		return nil, err
	}
	return r, nil
}
