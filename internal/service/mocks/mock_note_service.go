package mocks

import (
	"context"

	"projectapi/internal/model"
	"projectapi/internal/service"

	"github.com/stretchr/testify/mock"
)

type MockNoteService struct {
	mock.Mock
}

func (m *MockNoteService) Create(ctx context.Context, requester, projectID, content string) (*model.ProjectNote, error) {
	args := m.Called(ctx, requester, projectID, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ProjectNote), args.Error(1)
}

func (m *MockNoteService) List(ctx context.Context, requester, projectID string, limit, offset int) (*service.ListResult[model.ProjectNote], error) {
	args := m.Called(ctx, requester, projectID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ListResult[model.ProjectNote]), args.Error(1)
}

func (m *MockNoteService) Get(ctx context.Context, requester, id string) (*model.ProjectNote, error) {
	args := m.Called(ctx, requester, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ProjectNote), args.Error(1)
}

func (m *MockNoteService) Update(ctx context.Context, requester, id, content string) (*model.ProjectNote, error) {
	args := m.Called(ctx, requester, id, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ProjectNote), args.Error(1)
}

func (m *MockNoteService) Delete(ctx context.Context, requester, id string) error {
	args := m.Called(ctx, requester, id)
	return args.Error(0)
}
