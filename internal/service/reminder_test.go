package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"projectapi/internal/metrics"
	"projectapi/internal/model"
	"projectapi/internal/repository"
	repoMocks "projectapi/internal/repository/mocks"
)

func timePtr(t time.Time) *time.Time { return &t }

func statusPtr(s model.ReminderStatus) *model.ReminderStatus { return &s }

func newReminderService(repo *repoMocks.MockReminderRepository, projects *repoMocks.MockProjectRepository, m *metrics.Metrics, opts ReminderOptions) ReminderService {
	return NewReminderService(repo, projects, newClock(), zap.NewNop(), m, opts)
}

func TestReminderService_Create(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		in         ReminderInput
		setupMocks func(mRepo *repoMocks.MockReminderRepository, mProj *repoMocks.MockProjectRepository)
		wantStatus model.ReminderStatus
		wantFields []string
		wantErr    error
	}{
		{
			name: "two hours ahead is due soon",
			in:   ReminderInput{ProjectID: projectID, Title: strPtr("Call roofer"), ReminderDatetime: timePtr(fixedNow.Add(2 * time.Hour))},
			setupMocks: func(mRepo *repoMocks.MockReminderRepository, mProj *repoMocks.MockProjectRepository) {
				mProj.On("FindByID", ctx, projectID).Return(ownedProject(), nil)
				mRepo.On("Create", ctx, mock.MatchedBy(func(r *model.Reminder) bool {
					return r.Status == model.ReminderDueSoon && r.CreatedBy == ownerID && r.Title == "Call roofer"
				})).Return(&model.Reminder{ID: "rem-1", Status: model.ReminderDueSoon}, nil)
			},
			wantStatus: model.ReminderDueSoon,
		},
		{
			name: "a week ahead is pending",
			in:   ReminderInput{ProjectID: projectID, Title: strPtr("Inspection"), ReminderDatetime: timePtr(fixedNow.Add(7 * 24 * time.Hour))},
			setupMocks: func(mRepo *repoMocks.MockReminderRepository, mProj *repoMocks.MockProjectRepository) {
				mProj.On("FindByID", ctx, projectID).Return(ownedProject(), nil)
				mRepo.On("Create", ctx, mock.MatchedBy(func(r *model.Reminder) bool {
					return r.Status == model.ReminderPending
				})).Return(&model.Reminder{ID: "rem-2", Status: model.ReminderPending}, nil)
			},
			wantStatus: model.ReminderPending,
		},
		{
			name:       "past due time is rejected",
			in:         ReminderInput{ProjectID: projectID, Title: strPtr("Late"), ReminderDatetime: timePtr(fixedNow.Add(-time.Second))},
			setupMocks: func(mRepo *repoMocks.MockReminderRepository, mProj *repoMocks.MockProjectRepository) {},
			wantFields: []string{"reminder_datetime"},
		},
		{
			name:       "missing fields",
			in:         ReminderInput{},
			setupMocks: func(mRepo *repoMocks.MockReminderRepository, mProj *repoMocks.MockProjectRepository) {},
			wantFields: []string{"project", "title", "reminder_datetime"},
		},
		{
			name: "not the owner",
			in:   ReminderInput{ProjectID: projectID, Title: strPtr("x"), ReminderDatetime: timePtr(fixedNow.Add(time.Hour))},
			setupMocks: func(mRepo *repoMocks.MockReminderRepository, mProj *repoMocks.MockProjectRepository) {
				mProj.On("FindByID", ctx, projectID).Return(&model.Project{ID: projectID, CreatedBy: strangerID}, nil)
			},
			wantErr: ErrPermissionDenied,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mRepo := new(repoMocks.MockReminderRepository)
			mProj := new(repoMocks.MockProjectRepository)
			tt.setupMocks(mRepo, mProj)
			svc := newReminderService(mRepo, mProj, nil, ReminderOptions{})

			r, err := svc.Create(ctx, ownerID, tt.in)
			switch {
			case tt.wantFields != nil:
				var ve *ValidationError
				require.ErrorAs(t, err, &ve)
				for _, f := range tt.wantFields {
					assert.Contains(t, ve.Fields, f)
				}
				mRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
				mRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			default:
				require.NoError(t, err)
				assert.Equal(t, tt.wantStatus, r.Status)
			}
			mRepo.AssertExpectations(t)
			mProj.AssertExpectations(t)
		})
	}
}

func listFixture() *repository.PageResult[model.Reminder] {
	return &repository.PageResult[model.Reminder]{
		Items: []model.Reminder{
			{ID: "late", ProjectID: projectID, ReminderDatetime: fixedNow.Add(-time.Second), Status: model.ReminderPending},
			{ID: "soon", ProjectID: projectID, ReminderDatetime: fixedNow.Add(time.Hour), Status: model.ReminderPending},
			{ID: "done", ProjectID: projectID, ReminderDatetime: fixedNow.Add(-time.Hour), Status: model.ReminderCompleted},
			{ID: "far", ProjectID: projectID, ReminderDatetime: fixedNow.Add(48 * time.Hour), Status: model.ReminderPending},
		},
		Total: 4,
	}
}

func TestReminderService_List(t *testing.T) {
	ctx := context.Background()
	filter := repository.ListFilter{OwnerID: ownerID, ProjectID: projectID}
	pq := repository.PageQuery{Limit: 10, Offset: 0}

	t.Run("projects statuses without writing", func(t *testing.T) {
		mRepo := new(repoMocks.MockReminderRepository)
		mProj := new(repoMocks.MockProjectRepository)
		mProj.On("FindByID", ctx, projectID).Return(ownedProject(), nil)
		mRepo.On("List", ctx, filter, pq).Return(listFixture(), nil)

		svc := newReminderService(mRepo, mProj, nil, ReminderOptions{})
		res, err := svc.List(ctx, ownerID, projectID, 10, 0)
		require.NoError(t, err)

		got := map[string]model.ReminderStatus{}
		for _, r := range res.Items {
			got[r.ID] = r.Status
		}
		assert.Equal(t, model.ReminderOverdue, got["late"])
		assert.Equal(t, model.ReminderDueSoon, got["soon"])
		assert.Equal(t, model.ReminderCompleted, got["done"])
		assert.Equal(t, model.ReminderPending, got["far"])
		mRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("persist on read writes changed statuses back", func(t *testing.T) {
		mRepo := new(repoMocks.MockReminderRepository)
		mProj := new(repoMocks.MockProjectRepository)
		m := metrics.New(prometheus.NewRegistry())
		mProj.On("FindByID", ctx, projectID).Return(ownedProject(), nil)
		mRepo.On("List", ctx, filter, pq).Return(listFixture(), nil)
		mRepo.On("UpdateStatus", ctx, "late", model.ReminderPending, model.ReminderOverdue).Return(true, nil).Once()
		mRepo.On("UpdateStatus", ctx, "soon", model.ReminderPending, model.ReminderDueSoon).Return(false, nil).Once()

		svc := newReminderService(mRepo, mProj, m, ReminderOptions{PersistOnRead: true})
		res, err := svc.List(ctx, ownerID, projectID, 10, 0)
		require.NoError(t, err)
		assert.Equal(t, model.ReminderOverdue, res.Items[0].Status)
		assert.Equal(t, model.ReminderDueSoon, res.Items[1].Status)
		assert.Equal(t, 1.0, testutil.ToFloat64(m.ReminderStatusUpdates.WithLabelValues("read")))
		mRepo.AssertExpectations(t)
	})

	t.Run("write back failure surfaces", func(t *testing.T) {
		mRepo := new(repoMocks.MockReminderRepository)
		mProj := new(repoMocks.MockProjectRepository)
		mProj.On("FindByID", ctx, projectID).Return(ownedProject(), nil)
		mRepo.On("List", ctx, filter, pq).Return(listFixture(), nil)
		mRepo.On("UpdateStatus", ctx, "late", mock.Anything, mock.Anything).Return(false, errors.New("db fail"))

		svc := newReminderService(mRepo, mProj, nil, ReminderOptions{PersistOnRead: true})
		_, err := svc.List(ctx, ownerID, projectID, 10, 0)
		assert.Error(t, err)
	})

	t.Run("foreign project", func(t *testing.T) {
		mRepo := new(repoMocks.MockReminderRepository)
		mProj := new(repoMocks.MockProjectRepository)
		mProj.On("FindByID", ctx, projectID).Return(ownedProject(), nil)

		svc := newReminderService(mRepo, mProj, nil, ReminderOptions{})
		_, err := svc.List(ctx, strangerID, projectID, 10, 0)
		assert.ErrorIs(t, err, ErrPermissionDenied)
	})
}

func TestReminderService_Get(t *testing.T) {
	ctx := context.Background()
	mRepo := new(repoMocks.MockReminderRepository)
	mProj := new(repoMocks.MockProjectRepository)
	mRepo.On("FindByID", ctx, "rem-1").Return(&model.Reminder{
		ID: "rem-1", ProjectID: projectID, ReminderDatetime: fixedNow.Add(-time.Minute), Status: model.ReminderDueSoon,
	}, nil)
	mProj.On("FindByID", ctx, projectID).Return(ownedProject(), nil)

	svc := newReminderService(mRepo, mProj, nil, ReminderOptions{})
	r, err := svc.Get(ctx, ownerID, "rem-1")
	require.NoError(t, err)
	assert.Equal(t, model.ReminderOverdue, r.Status)
}

func TestReminderService_Update(t *testing.T) {
	ctx := context.Background()
	stored := func(status model.ReminderStatus, due time.Time) *model.Reminder {
		return &model.Reminder{ID: "rem-1", ProjectID: projectID, Title: "t", ReminderDatetime: due, Status: status}
	}

	tests := []struct {
		name       string
		current    *model.Reminder
		in         ReminderInput
		wantStatus model.ReminderStatus
		wantFields []string
	}{
		{
			name:       "moving the due time recomputes",
			current:    stored(model.ReminderPending, fixedNow.Add(72*time.Hour)),
			in:         ReminderInput{ReminderDatetime: timePtr(fixedNow.Add(time.Hour))},
			wantStatus: model.ReminderDueSoon,
		},
		{
			name:       "overdue moved into the future",
			current:    stored(model.ReminderOverdue, fixedNow.Add(-time.Hour)),
			in:         ReminderInput{ReminderDatetime: timePtr(fixedNow.Add(72 * time.Hour))},
			wantStatus: model.ReminderPending,
		},
		{
			name:       "completing",
			current:    stored(model.ReminderDueSoon, fixedNow.Add(time.Hour)),
			in:         ReminderInput{Status: statusPtr(model.ReminderCompleted)},
			wantStatus: model.ReminderCompleted,
		},
		{
			name:       "completed is never recomputed",
			current:    stored(model.ReminderCompleted, fixedNow.Add(72*time.Hour)),
			in:         ReminderInput{ReminderDatetime: timePtr(fixedNow.Add(-time.Hour))},
			wantStatus: model.ReminderCompleted,
		},
		{
			name:       "echoing the current status is accepted",
			current:    stored(model.ReminderPending, fixedNow.Add(72*time.Hour)),
			in:         ReminderInput{Title: strPtr("renamed"), Status: statusPtr(model.ReminderPending)},
			wantStatus: model.ReminderPending,
		},
		{
			name:       "other explicit statuses are rejected",
			current:    stored(model.ReminderPending, fixedNow.Add(72*time.Hour)),
			in:         ReminderInput{Status: statusPtr(model.ReminderOverdue)},
			wantFields: []string{"status"},
		},
		{
			name:       "blank title",
			current:    stored(model.ReminderPending, fixedNow.Add(72*time.Hour)),
			in:         ReminderInput{Title: strPtr("  ")},
			wantFields: []string{"title"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mRepo := new(repoMocks.MockReminderRepository)
			mProj := new(repoMocks.MockProjectRepository)
			mRepo.On("FindByID", ctx, "rem-1").Return(tt.current, nil)
			mProj.On("FindByID", ctx, projectID).Return(ownedProject(), nil)
			if tt.wantFields == nil {
				updated := *tt.current
				updated.Status = tt.wantStatus
				mRepo.On("Update", ctx, mock.MatchedBy(func(r *model.Reminder) bool {
					return r.Status == tt.wantStatus && r.UpdatedAt.Equal(fixedNow)
				})).Return(&updated, nil)
			}

			svc := newReminderService(mRepo, mProj, nil, ReminderOptions{})
			r, err := svc.Update(ctx, ownerID, "rem-1", tt.in)
			if tt.wantFields != nil {
				var ve *ValidationError
				require.ErrorAs(t, err, &ve)
				for _, f := range tt.wantFields {
					assert.Contains(t, ve.Fields, f)
				}
				mRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, r.Status)
			mRepo.AssertExpectations(t)
		})
	}
}

func TestReminderService_Delete(t *testing.T) {
	ctx := context.Background()
	mRepo := new(repoMocks.MockReminderRepository)
	mProj := new(repoMocks.MockProjectRepository)
	mRepo.On("FindByID", ctx, "rem-1").Return(&model.Reminder{ID: "rem-1", ProjectID: projectID}, nil)
	mProj.On("FindByID", ctx, projectID).Return(ownedProject(), nil)

	svc := newReminderService(mRepo, mProj, nil, ReminderOptions{})
	assert.ErrorIs(t, svc.Delete(ctx, strangerID, "rem-1"), ErrPermissionDenied)
	mRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)

	mRepo.On("Delete", ctx, "rem-1").Return(nil)
	assert.NoError(t, svc.Delete(ctx, ownerID, "rem-1"))
}

func TestReminderService_RefreshStatuses(t *testing.T) {
	ctx := context.Background()
	mRepo := new(repoMocks.MockReminderRepository)
	m := metrics.New(prometheus.NewRegistry())
	mRepo.On("RefreshStatuses", ctx, mock.MatchedBy(func(now time.Time) bool {
		return now.Equal(fixedNow)
	})).Return(int64(2), nil)

	svc := newReminderService(mRepo, new(repoMocks.MockProjectRepository), m, ReminderOptions{})
	n, err := svc.RefreshStatuses(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.Equal(t, 2.0, testutil.ToFloat64(m.ReminderStatusUpdates.WithLabelValues("sweep")))
}
