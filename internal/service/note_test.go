package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"projectapi/internal/model"
	"projectapi/internal/repository"
	repoMocks "projectapi/internal/repository/mocks"
)

func TestNoteService_Create(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		requester string
		projectID string
		content   string
		setup     func(mRepo *repoMocks.MockNoteRepository, mProj *repoMocks.MockProjectRepository)
		wantErr   error
		wantField string
	}{
		{
			name:      "empty content is allowed",
			requester: ownerID,
			projectID: projectID,
			setup: func(mRepo *repoMocks.MockNoteRepository, mProj *repoMocks.MockProjectRepository) {
				mProj.On("FindByID", ctx, projectID).Return(ownedProject(), nil)
				mRepo.On("Create", ctx, mock.MatchedBy(func(n *model.ProjectNote) bool {
					return n.Content == "" && n.ProjectID == projectID && n.CreatedAt.Equal(fixedNow)
				})).Return(&model.ProjectNote{ID: "n1", ProjectID: projectID}, nil)
			},
		},
		{
			name:      "not the owner",
			requester: strangerID,
			projectID: projectID,
			content:   "hi",
			setup: func(mRepo *repoMocks.MockNoteRepository, mProj *repoMocks.MockProjectRepository) {
				mProj.On("FindByID", ctx, projectID).Return(ownedProject(), nil)
			},
			wantErr: ErrPermissionDenied,
		},
		{
			name:      "missing project",
			requester: ownerID,
			projectID: "gone",
			setup: func(mRepo *repoMocks.MockNoteRepository, mProj *repoMocks.MockProjectRepository) {
				mProj.On("FindByID", ctx, "gone").Return(nil, repository.ErrNotFound)
			},
			wantErr: ErrNotFound,
		},
		{
			name:      "project is required",
			requester: ownerID,
			setup:     func(mRepo *repoMocks.MockNoteRepository, mProj *repoMocks.MockProjectRepository) {},
			wantField: "project",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mRepo := new(repoMocks.MockNoteRepository)
			mProj := new(repoMocks.MockProjectRepository)
			tt.setup(mRepo, mProj)

			n, err := NewNoteService(mRepo, mProj, newClock()).Create(ctx, tt.requester, tt.projectID, tt.content)
			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
				mRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			case tt.wantField != "":
				var ve *ValidationError
				require.ErrorAs(t, err, &ve)
				assert.Contains(t, ve.Fields, tt.wantField)
			default:
				require.NoError(t, err)
				assert.Equal(t, "n1", n.ID)
			}
			mRepo.AssertExpectations(t)
		})
	}
}

func TestNoteService_Update(t *testing.T) {
	ctx := context.Background()
	mRepo := new(repoMocks.MockNoteRepository)
	mProj := new(repoMocks.MockProjectRepository)
	mRepo.On("FindByID", ctx, "n1").Return(&model.ProjectNote{ID: "n1", ProjectID: projectID, Content: "old"}, nil)
	mProj.On("FindByID", ctx, projectID).Return(ownedProject(), nil)
	mRepo.On("Update", ctx, mock.MatchedBy(func(n *model.ProjectNote) bool {
		return n.Content == "new" && n.UpdatedAt.Equal(fixedNow)
	})).Return(&model.ProjectNote{ID: "n1", Content: "new"}, nil)

	svc := NewNoteService(mRepo, mProj, newClock())
	n, err := svc.Update(ctx, ownerID, "n1", "new")
	require.NoError(t, err)
	assert.Equal(t, "new", n.Content)

	_, err = svc.Update(ctx, strangerID, "n1", "hijack")
	assert.ErrorIs(t, err, ErrPermissionDenied)
	mRepo.AssertNumberOfCalls(t, "Update", 1)
}

func TestNoteService_ListAndGet(t *testing.T) {
	ctx := context.Background()
	mRepo := new(repoMocks.MockNoteRepository)
	mProj := new(repoMocks.MockProjectRepository)
	mRepo.On("List", ctx, repository.ListFilter{OwnerID: ownerID}, repository.PageQuery{Limit: 10}).
		Return(&repository.PageResult[model.ProjectNote]{Items: []model.ProjectNote{}, Total: 0}, nil)
	mRepo.On("FindByID", ctx, "missing").Return(nil, repository.ErrNotFound)

	svc := NewNoteService(mRepo, mProj, newClock())
	res, err := svc.List(ctx, ownerID, "", 0, 0)
	require.NoError(t, err)
	assert.Empty(t, res.Items)

	_, err = svc.Get(ctx, ownerID, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Get(ctx, ownerID, "")
	assert.ErrorIs(t, err, ErrIDRequired)
}

func TestNoteService_Delete(t *testing.T) {
	ctx := context.Background()
	mRepo := new(repoMocks.MockNoteRepository)
	mProj := new(repoMocks.MockProjectRepository)
	mRepo.On("FindByID", ctx, "n1").Return(&model.ProjectNote{ID: "n1", ProjectID: projectID}, nil)
	mProj.On("FindByID", ctx, projectID).Return(ownedProject(), nil)
	mRepo.On("Delete", ctx, "n1").Return(repository.ErrNotFound)

	err := NewNoteService(mRepo, mProj, newClock()).Delete(ctx, ownerID, "n1")
	assert.ErrorIs(t, err, ErrNotFound)
}
