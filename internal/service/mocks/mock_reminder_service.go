package mocks

import (
	"context"

	"projectapi/internal/model"
	"projectapi/internal/service"

	"github.com/stretchr/testify/mock"
)

type MockReminderService struct {
	mock.Mock
}

func (m *MockReminderService) Create(ctx context.Context, requester string, in service.ReminderInput) (*model.Reminder, error) {
	args := m.Called(ctx, requester, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Reminder), args.Error(1)
}

func (m *MockReminderService) List(ctx context.Context, requester, projectID string, limit, offset int) (*service.ListResult[model.Reminder], error) {
	args := m.Called(ctx, requester, projectID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ListResult[model.Reminder]), args.Error(1)
}

func (m *MockReminderService) Get(ctx context.Context, requester, id string) (*model.Reminder, error) {
	args := m.Called(ctx, requester, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Reminder), args.Error(1)
}

func (m *MockReminderService) Update(ctx context.Context, requester, id string, in service.ReminderInput) (*model.Reminder, error) {
	args := m.Called(ctx, requester, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Reminder), args.Error(1)
}

func (m *MockReminderService) Delete(ctx context.Context, requester, id string) error {
	args := m.Called(ctx, requester, id)
	return args.Error(0)
}

func (m *MockReminderService) RefreshStatuses(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}
