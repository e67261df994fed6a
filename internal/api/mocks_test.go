package api

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/zen-api/internal/domain"
	"github.com/phrazzld/zen-api/internal/service"
	"github.com/stretchr/testify/mock"
)

type MockUserService struct {
	mock.Mock
}

var _ service.UserService = (*MockUserService)(nil)

func (m *MockUserService) Register(ctx context.Context, in service.RegisterInput) (*domain.User, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.User), args.Error(1)
}

func (m *MockUserService) UpdatePlan(ctx context.Context, userID uuid.UUID, rawPlan string) (*domain.User, error) {
	args := m.Called(ctx, userID, rawPlan)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) Checkout(ctx context.Context, userID uuid.UUID, rawPlan string) (domain.Plan, error) {
	args := m.Called(ctx, userID, rawPlan)
	return args.Get(0).(domain.Plan), args.Error(1)
}

func (m *MockUserService) DeleteUser(ctx context.Context, userID uuid.UUID) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *MockUserService) EnsureAdmin(ctx context.Context, email, password string) (*domain.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type MockReadingService struct {
	mock.Mock
}

var _ service.ReadingService = (*MockReadingService)(nil)

func (m *MockReadingService) Draw(ctx context.Context, req service.DrawRequest) (*service.DrawResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.DrawResult), args.Error(1)
}

func (m *MockReadingService) QuotaStatus(ctx context.Context, userID uuid.UUID) (*service.QuotaStatus, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.QuotaStatus), args.Error(1)
}

func (m *MockReadingService) History(ctx context.Context, userID uuid.UUID) ([]*domain.Reading, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Reading), args.Error(1)
}
