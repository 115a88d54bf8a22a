package mocks

import (
	"context"

	"projectapi/internal/model"
	"projectapi/internal/repository"

	"github.com/stretchr/testify/mock"
)

type MockProjectFileRepository struct {
	mock.Mock
}

func (m *MockProjectFileRepository) Create(ctx context.Context, f *model.ProjectFile) (*model.ProjectFile, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ProjectFile), args.Error(1)
}

func (m *MockProjectFileRepository) FindByID(ctx context.Context, id string) (*model.ProjectFile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ProjectFile), args.Error(1)
}

func (m *MockProjectFileRepository) List(ctx context.Context, f repository.ListFilter, pq repository.PageQuery) (*repository.PageResult[model.ProjectFile], error) {
	args := m.Called(ctx, f, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.ProjectFile]), args.Error(1)
}

func (m *MockProjectFileRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
