package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

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

type shareMocks struct {
	links    *repoMocks.MockShareLinkRepository
	projects *repoMocks.MockProjectRepository
	users    *repoMocks.MockUserRepository
	notes    *repoMocks.MockNoteRepository
}

func newShareMocks() shareMocks {
	return shareMocks{
		links:    new(repoMocks.MockShareLinkRepository),
		projects: new(repoMocks.MockProjectRepository),
		users:    new(repoMocks.MockUserRepository),
		notes:    new(repoMocks.MockNoteRepository),
	}
}

func (m shareMocks) service(mt *metrics.Metrics) ShareLinkService {
	return NewShareLinkService(m.links, m.projects, m.users, m.notes, newClock(), zap.NewNop(), mt)
}

func activeLink(token string) *model.ShareLink {
	owner := ownerID
	return &model.ShareLink{ID: "link-1", ProjectID: projectID, Token: token, IsActive: true, CreatedBy: &owner}
}

func TestShareLinkService_Ensure(t *testing.T) {
	ctx := context.Background()

	t.Run("creates when none is active", func(t *testing.T) {
		m := newShareMocks()
		mt := metrics.New(prometheus.NewRegistry())
		var inserted *model.ShareLink
		m.projects.On("FindByID", ctx, projectID).Return(ownedProject(), nil)
		m.links.On("FindActiveByProject", ctx, projectID).Return(nil, repository.ErrNotFound).Once()
		m.links.On("CreateActive", ctx, mock.MatchedBy(func(l *model.ShareLink) bool {
			inserted = l
			return len(l.Token) == 64 && l.IsActive && l.CreatedBy != nil && *l.CreatedBy == ownerID && l.CreatedAt.Equal(fixedNow)
		})).Return(true, nil)
		m.links.On("FindByID", ctx, mock.AnythingOfType("string")).Return(activeLink("fresh"), nil)

		link, created, err := m.service(mt).Ensure(ctx, ownerID, projectID)
		require.NoError(t, err)
		assert.True(t, created)
		assert.Equal(t, "fresh", link.Token)
		require.NotNil(t, inserted)
		m.links.AssertCalled(t, "FindByID", ctx, inserted.ID)
		assert.Equal(t, 1.0, testutil.ToFloat64(mt.ShareLinksIssued.WithLabelValues(metrics.OutcomeCreated)))
	})

	t.Run("returns the active link unchanged", func(t *testing.T) {
		m := newShareMocks()
		m.projects.On("FindByID", ctx, projectID).Return(ownedProject(), nil)
		m.links.On("FindActiveByProject", ctx, projectID).Return(activeLink("existing"), nil)

		svc := m.service(nil)
		first, created, err := svc.Ensure(ctx, ownerID, projectID)
		require.NoError(t, err)
		assert.False(t, created)
		second, _, err := svc.Ensure(ctx, ownerID, projectID)
		require.NoError(t, err)
		assert.Equal(t, first.Token, second.Token)
		m.links.AssertNotCalled(t, "CreateActive", mock.Anything, mock.Anything)
	})

	t.Run("concurrent creator wins the insert", func(t *testing.T) {
		m := newShareMocks()
		m.projects.On("FindByID", ctx, projectID).Return(ownedProject(), nil)
		m.links.On("FindActiveByProject", ctx, projectID).Return(nil, repository.ErrNotFound).Once()
		m.links.On("CreateActive", ctx, mock.Anything).Return(false, nil)
		m.links.On("FindActiveByProject", ctx, projectID).Return(activeLink("winner"), nil).Once()

		link, created, err := m.service(nil).Ensure(ctx, ownerID, projectID)
		require.NoError(t, err)
		assert.False(t, created)
		assert.Equal(t, "winner", link.Token)
		m.links.AssertExpectations(t)
	})

	t.Run("non-owner creates nothing", func(t *testing.T) {
		m := newShareMocks()
		m.projects.On("FindByID", ctx, projectID).Return(ownedProject(), nil)

		link, created, err := m.service(nil).Ensure(ctx, strangerID, projectID)
		assert.ErrorIs(t, err, ErrPermissionDenied)
		assert.False(t, created)
		assert.Nil(t, link)
		m.links.AssertNotCalled(t, "FindActiveByProject", mock.Anything, mock.Anything)
		m.links.AssertNotCalled(t, "CreateActive", mock.Anything, mock.Anything)
	})

	t.Run("missing project", func(t *testing.T) {
		m := newShareMocks()
		m.projects.On("FindByID", ctx, "gone").Return(nil, repository.ErrNotFound)

		_, _, err := m.service(nil).Ensure(ctx, ownerID, "gone")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("lookup failure", func(t *testing.T) {
		m := newShareMocks()
		m.projects.On("FindByID", ctx, projectID).Return(ownedProject(), nil)
		m.links.On("FindActiveByProject", ctx, projectID).Return(nil, errors.New("db fail"))

		_, _, err := m.service(nil).Ensure(ctx, ownerID, projectID)
		assert.EqualError(t, err, "db fail")
	})
}

func TestShareLinkService_SetActive(t *testing.T) {
	ctx := context.Background()

	t.Run("deactivate", func(t *testing.T) {
		m := newShareMocks()
		m.links.On("FindByID", ctx, "link-1").Return(activeLink("tok"), nil)
		m.projects.On("FindByID", ctx, projectID).Return(ownedProject(), nil)
		inactive := activeLink("tok")
		inactive.IsActive = false
		m.links.On("SetActive", ctx, "link-1", false).Return(inactive, nil)

		l, err := m.service(nil).SetActive(ctx, ownerID, "link-1", false)
		require.NoError(t, err)
		assert.False(t, l.IsActive)
	})

	t.Run("no-op when unchanged", func(t *testing.T) {
		m := newShareMocks()
		m.links.On("FindByID", ctx, "link-1").Return(activeLink("tok"), nil)
		m.projects.On("FindByID", ctx, projectID).Return(ownedProject(), nil)

		_, err := m.service(nil).SetActive(ctx, ownerID, "link-1", true)
		require.NoError(t, err)
		m.links.AssertNotCalled(t, "SetActive", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("reactivation conflict", func(t *testing.T) {
		m := newShareMocks()
		inactive := activeLink("old")
		inactive.IsActive = false
		m.links.On("FindByID", ctx, "link-1").Return(inactive, nil)
		m.projects.On("FindByID", ctx, projectID).Return(ownedProject(), nil)
		m.links.On("SetActive", ctx, "link-1", true).
			Return(nil, fmt.Errorf("%w: uq_share_links_active_project", repository.ErrConflict))

		_, err := m.service(nil).SetActive(ctx, ownerID, "link-1", true)
		assert.ErrorIs(t, err, ErrConflict)
	})
}

func TestShareLinkService_List(t *testing.T) {
	ctx := context.Background()
	m := newShareMocks()
	m.links.On("List", ctx, repository.ListFilter{OwnerID: ownerID}, repository.PageQuery{Limit: 5, Offset: 10}).
		Return(&repository.PageResult[model.ShareLink]{Items: []model.ShareLink{*activeLink("a")}, Total: 11}, nil)

	res, err := m.service(nil).List(ctx, ownerID, "", 5, 10)
	require.NoError(t, err)
	assert.Equal(t, 11, res.Total)
	assert.Len(t, res.Items, 1)
}

func TestShareLinkService_Resolve(t *testing.T) {
	ctx := context.Background()

	t.Run("active token", func(t *testing.T) {
		m := newShareMocks()
		m.links.On("FindActiveByToken", ctx, "tok").Return(activeLink("tok"), nil)
		m.projects.On("FindByID", ctx, projectID).Return(ownedProject(), nil)
		m.users.On("FindByID", ctx, ownerID).Return(&model.User{ID: ownerID, Name: "Ada"}, nil)
		m.notes.On("List", ctx, repository.ListFilter{ProjectID: projectID}, repository.PageQuery{Limit: sharedNotesLimit}).
			Return(&repository.PageResult[model.ProjectNote]{Items: []model.ProjectNote{{ID: "n1", Content: "hello"}}, Total: 1}, nil)

		view, err := m.service(nil).Resolve(ctx, "tok")
		require.NoError(t, err)
		assert.Equal(t, "Roof repair", view.Project.Name)
		assert.Equal(t, "Ada", view.OwnerName)
		assert.Len(t, view.Notes, 1)
	})

	t.Run("inactive or unknown token", func(t *testing.T) {
		m := newShareMocks()
		m.links.On("FindActiveByToken", ctx, "nope").Return(nil, repository.ErrNotFound)

		_, err := m.service(nil).Resolve(ctx, "nope")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("empty token", func(t *testing.T) {
		_, err := newShareMocks().service(nil).Resolve(ctx, "")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestShareLinkService_Delete(t *testing.T) {
	ctx := context.Background()
	m := newShareMocks()
	m.links.On("FindByID", ctx, "link-1").Return(activeLink("tok"), nil)
	m.projects.On("FindByID", ctx, projectID).Return(ownedProject(), nil)
	m.links.On("Delete", ctx, "link-1").Return(nil)

	svc := m.service(nil)
	assert.ErrorIs(t, svc.Delete(ctx, strangerID, "link-1"), ErrPermissionDenied)
	assert.NoError(t, svc.Delete(ctx, ownerID, "link-1"))
	m.links.AssertNumberOfCalls(t, "Delete", 1)
}
