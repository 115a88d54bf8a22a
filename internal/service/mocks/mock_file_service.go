package mocks

import (
	"context"
	"io"

	"projectapi/internal/model"
	"projectapi/internal/service"

	"github.com/stretchr/testify/mock"
)

type MockFileService struct {
	mock.Mock
}

func (m *MockFileService) Upload(ctx context.Context, requester string, r io.Reader, in service.FileUpload) (*model.ProjectFile, error) {
	args := m.Called(ctx, requester, r, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ProjectFile), args.Error(1)
}

func (m *MockFileService) List(ctx context.Context, requester, projectID string, limit, offset int) (*service.ListResult[model.ProjectFile], error) {
	args := m.Called(ctx, requester, projectID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ListResult[model.ProjectFile]), args.Error(1)
}

func (m *MockFileService) Get(ctx context.Context, requester, id string) (*service.FileDownload, error) {
	args := m.Called(ctx, requester, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.FileDownload), args.Error(1)
}

func (m *MockFileService) Delete(ctx context.Context, requester, id string) error {
	args := m.Called(ctx, requester, id)
	return args.Error(0)
}
