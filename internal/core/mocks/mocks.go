package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/alexandreCDB/sistema-de-ticket-frota-sub000/internal/core/domain"
)

// MockNotificationAPI is a mock implementation of ports.NotificationAPI
type MockNotificationAPI struct {
	mock.Mock
}

func NewMockNotificationAPI() *MockNotificationAPI {
	return &MockNotificationAPI{}
}

func (m *MockNotificationAPI) UnreadNotifications(ctx context.Context, userID int64) ([]domain.NotificationRecord, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.NotificationRecord), args.Error(1)
}

func (m *MockNotificationAPI) MarkNotificationRead(ctx context.Context, notificationID int64) error {
	args := m.Called(ctx, notificationID)
	return args.Error(0)
}

// MockAlerter is a mock implementation of ports.Alerter
type MockAlerter struct {
	mock.Mock
}

func NewMockAlerter() *MockAlerter {
	return &MockAlerter{}
}

func (m *MockAlerter) Alert(n domain.Notification) {
	m.Called(n)
}

// MockArchive is a mock implementation of ports.NotificationArchive
type MockArchive struct {
	mock.Mock
}

func NewMockArchive() *MockArchive {
	return &MockArchive{}
}

func (m *MockArchive) Record(ctx context.Context, n domain.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func (m *MockArchive) MarkRead(ctx context.Context, notificationID int64) error {
	args := m.Called(ctx, notificationID)
	return args.Error(0)
}

func (m *MockArchive) Recent(ctx context.Context, limit int) ([]domain.ArchivedNotification, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ArchivedNotification), args.Error(1)
}

func (m *MockArchive) Close() error {
	args := m.Called()
	return args.Error(0)
}
