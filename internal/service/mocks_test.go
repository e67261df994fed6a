package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/zen-api/internal/domain"
	"github.com/phrazzld/zen-api/internal/store"
	"github.com/stretchr/testify/mock"
)

// MockUserStore mocks store.UserStore. WithTx returns the mock itself so
// expectations hold inside transactions.
type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserStore) List(ctx context.Context) ([]*domain.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.User), args.Error(1)
}

func (m *MockUserStore) UpdatePlan(ctx context.Context, id uuid.UUID, plan domain.Plan, since time.Time) error {
	args := m.Called(ctx, id, plan, since)
	return args.Error(0)
}

func (m *MockUserStore) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserStore) LockForQuota(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserStore) WithTx(tx *sql.Tx) store.UserStore {
	return m
}

// MockReadingStore mocks store.ReadingStore. WithTx returns the mock itself.
type MockReadingStore struct {
	mock.Mock
}

func (m *MockReadingStore) CountByUserInWindow(ctx context.Context, userID uuid.UUID, start, end time.Time) (int, error) {
	args := m.Called(ctx, userID, start, end)
	return args.Int(0), args.Error(1)
}

func (m *MockReadingStore) Create(ctx context.Context, reading *domain.Reading) error {
	args := m.Called(ctx, reading)
	return args.Error(0)
}

func (m *MockReadingStore) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.Reading, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Reading), args.Error(1)
}

func (m *MockReadingStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Reading, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reading), args.Error(1)
}

func (m *MockReadingStore) WithTx(tx *sql.Tx) store.ReadingStore {
	return m
}

// MockPasswordVerifier mocks auth.PasswordVerifier.
type MockPasswordVerifier struct {
	mock.Mock
}

func (m *MockPasswordVerifier) Compare(hashedPassword, password string) error {
	args := m.Called(hashedPassword, password)
	return args.Error(0)
}
