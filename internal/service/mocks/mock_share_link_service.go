package mocks

import (
	"context"

	"projectapi/internal/model"
	"projectapi/internal/service"

	"github.com/stretchr/testify/mock"
)

type MockShareLinkService struct {
	mock.Mock
}

func (m *MockShareLinkService) Ensure(ctx context.Context, requester, projectID string) (*model.ShareLink, bool, error) {
	args := m.Called(ctx, requester, projectID)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*model.ShareLink), args.Bool(1), args.Error(2)
}

func (m *MockShareLinkService) List(ctx context.Context, requester, projectID string, limit, offset int) (*service.ListResult[model.ShareLink], error) {
	args := m.Called(ctx, requester, projectID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ListResult[model.ShareLink]), args.Error(1)
}

func (m *MockShareLinkService) Get(ctx context.Context, requester, id string) (*model.ShareLink, error) {
	args := m.Called(ctx, requester, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ShareLink), args.Error(1)
}

func (m *MockShareLinkService) SetActive(ctx context.Context, requester, id string, active bool) (*model.ShareLink, error) {
	args := m.Called(ctx, requester, id, active)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ShareLink), args.Error(1)
}

func (m *MockShareLinkService) Delete(ctx context.Context, requester, id string) error {
	args := m.Called(ctx, requester, id)
	return args.Error(0)
}

func (m *MockShareLinkService) Resolve(ctx context.Context, token string) (*service.SharedProject, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.SharedProject), args.Error(1)
}
