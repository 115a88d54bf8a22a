package mocks

import (
	"context"

	"projectapi/internal/model"
	"projectapi/internal/service"

	"github.com/stretchr/testify/mock"
)

type MockCommentService struct {
	mock.Mock
}

func (m *MockCommentService) Create(ctx context.Context, requester, projectID, message string) (*model.Comment, error) {
	args := m.Called(ctx, requester, projectID, message)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Comment), args.Error(1)
}

func (m *MockCommentService) List(ctx context.Context, requester, projectID string, limit, offset int) (*service.ListResult[model.Comment], error) {
	args := m.Called(ctx, requester, projectID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ListResult[model.Comment]), args.Error(1)
}

func (m *MockCommentService) Get(ctx context.Context, requester, id string) (*model.Comment, error) {
	args := m.Called(ctx, requester, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Comment), args.Error(1)
}

func (m *MockCommentService) Update(ctx context.Context, requester, id, message string) (*model.Comment, error) {
	args := m.Called(ctx, requester, id, message)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Comment), args.Error(1)
}

func (m *MockCommentService) Delete(ctx context.Context, requester, id string) error {
	args := m.Called(ctx, requester, id)
	return args.Error(0)
}
