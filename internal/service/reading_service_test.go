package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/phrazzld/zen-api/internal/domain"
	"github.com/phrazzld/zen-api/internal/domain/oracle"
	"github.com/phrazzld/zen-api/internal/platform/logger"
	"github.com/phrazzld/zen-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// fixedRNG always returns the same value, drawing the card at that index
// upright when value is 0.
type fixedRNG int

func (f fixedRNG) IntN(n int) int { return int(f) % n }

var (
	// Wednesday; the Sunday-start UTC week runs from Jan 12 to Jan 18.
	testNow         = time.Date(2025, 1, 15, 10, 30, 0, 0, time.UTC)
	testWindowStart = time.Date(2025, 1, 12, 0, 0, 0, 0, time.UTC)
	testWindowEnd   = time.Date(2025, 1, 19, 0, 0, 0, 0, time.UTC).Add(-time.Microsecond)
)

type readingFixture struct {
	users    *MockUserStore
	readings *MockReadingStore
	sqlMock  sqlmock.Sqlmock
	svc      *readingService
}

func newReadingFixture(t *testing.T, strict bool) *readingFixture {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	users := new(MockUserStore)
	readings := new(MockReadingStore)
	log, _ := logger.NewTestLogger(t)

	svc, err := NewReadingService(
		users,
		readings,
		db,
		oracle.NewDeck(fixedRNG(0)),
		ReadingServiceConfig{
			Policy:   oracle.DefaultQuotaPolicy(),
			Calendar: oracle.WeekCalendar{Location: time.UTC, WeekStart: time.Sunday},
			Strict:   strict,
		},
		log,
	)
	require.NoError(t, err)

	impl := svc.(*readingService)
	impl.now = func() time.Time { return testNow }

	return &readingFixture{users: users, readings: readings, sqlMock: sqlMock, svc: impl}
}

func memberOn(plan domain.Plan) *domain.User {
	return &domain.User{
		ID:             uuid.New(),
		Email:          "member@example.com",
		HashedPassword: "hash",
		Plan:           plan,
	}
}

func TestNewReadingService_Validation(t *testing.T) {
	cfg := ReadingServiceConfig{Policy: oracle.DefaultQuotaPolicy(), Strict: true}

	_, err := NewReadingService(nil, new(MockReadingStore), nil, nil, cfg, nil)
	assert.Error(t, err)

	_, err = NewReadingService(new(MockUserStore), nil, nil, nil, cfg, nil)
	assert.Error(t, err)

	_, err = NewReadingService(new(MockUserStore), new(MockReadingStore), nil, nil, cfg, nil)
	assert.Error(t, err, "strict mode needs a db")

	cfg.Strict = false
	svc, err := NewReadingService(new(MockUserStore), new(MockReadingStore), nil, nil, cfg, nil)
	assert.NoError(t, err)
	assert.NotNil(t, svc)
}

func TestReadingService_AnonymousDraw(t *testing.T) {
	f := newReadingFixture(t, true)

	result, err := f.svc.Draw(context.Background(), DrawRequest{
		Question:  "Vou encontrar um casamento?",
		FullName:  "Maria",
		BirthDate: "1990-07-30",
	})
	require.NoError(t, err)

	assert.False(t, result.Blocked)
	assert.Equal(t, "Vou encontrar um casamento?", result.Question)
	assert.Equal(t, "Maria", result.FullName)
	assert.Equal(t, "1990-07-30", result.BirthDate)
	assert.Equal(t, oracle.TopicLove, result.Topic)
	assert.Equal(t, oracle.Leao, result.Sign)
	require.NotNil(t, result.Card)
	assert.Equal(t, "00-louco", result.Card.Key)
	assert.True(t, result.Card.Upright)
	assert.Equal(t, oracle.Compose(oracle.TopicLove, *result.Card, oracle.Leao), result.Reading)
	assert.Nil(t, result.ReadingID)

	f.users.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	f.users.AssertNotCalled(t, "LockForQuota", mock.Anything, mock.Anything)
	f.readings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	assert.NoError(t, f.sqlMock.ExpectationsWereMet(), "anonymous draws open no transaction")
}

func TestReadingService_MemberDraw_EndToEnd(t *testing.T) {
	for _, strict := range []bool{true, false} {
		t.Run(fmt.Sprintf("strict=%v", strict), func(t *testing.T) {
			f := newReadingFixture(t, strict)
			user := memberOn(domain.PlanFree)
			createdAt := testNow.Add(time.Second)

			if strict {
				f.sqlMock.ExpectBegin()
				f.users.On("LockForQuota", mock.Anything, user.ID).Return(user, nil).Once()
			} else {
				f.users.On("GetByID", mock.Anything, user.ID).Return(user, nil).Once()
			}
			f.readings.On("CountByUserInWindow", mock.Anything, user.ID, testWindowStart, testWindowEnd).
				Return(0, nil).Once()

			var saved *domain.Reading
			f.readings.On("Create", mock.Anything, mock.AnythingOfType("*domain.Reading")).
				Run(func(args mock.Arguments) {
					saved = args.Get(1).(*domain.Reading)
					saved.CreatedAt = createdAt
				}).
				Return(nil).Once()
			if strict {
				f.sqlMock.ExpectCommit()
			}

			result, err := f.svc.Draw(context.Background(), DrawRequest{
				UserID:    &user.ID,
				Question:  "Vou conseguir o emprego?",
				BirthDate: "1995-03-25",
			})
			require.NoError(t, err)

			assert.False(t, result.Blocked)
			assert.Equal(t, oracle.Aries, result.Sign)
			assert.Equal(t, oracle.TopicWork, result.Topic)
			assert.Contains(t, result.Reading, result.Card.Name)

			require.NotNil(t, saved)
			assert.Equal(t, user.ID, saved.UserID)
			assert.Equal(t, "Vou conseguir o emprego?", saved.Question)
			assert.Equal(t, result.Card.Key, saved.CardKey)
			assert.Equal(t, result.Card.Name, saved.CardName)
			assert.Equal(t, result.Card.Upright, saved.Upright)
			assert.Equal(t, "Aries", saved.Sign)
			assert.Equal(t, result.Reading, saved.ReadingText)
			require.NotNil(t, result.ReadingID)
			assert.Equal(t, saved.ID, *result.ReadingID)
			assert.Equal(t, createdAt, *result.CreatedAt)

			f.users.AssertExpectations(t)
			f.readings.AssertExpectations(t)
			assert.NoError(t, f.sqlMock.ExpectationsWereMet())
		})
	}
}

func TestReadingService_BlockedDrawPersistsNothing(t *testing.T) {
	for _, strict := range []bool{true, false} {
		t.Run(fmt.Sprintf("strict=%v", strict), func(t *testing.T) {
			f := newReadingFixture(t, strict)
			user := memberOn(domain.PlanFree)

			if strict {
				f.sqlMock.ExpectBegin()
				f.users.On("LockForQuota", mock.Anything, user.ID).Return(user, nil)
			} else {
				f.users.On("GetByID", mock.Anything, user.ID).Return(user, nil)
			}
			f.readings.On("CountByUserInWindow", mock.Anything, user.ID, testWindowStart, testWindowEnd).
				Return(1, nil)
			if strict {
				f.sqlMock.ExpectCommit()
			}

			result, err := f.svc.Draw(context.Background(), DrawRequest{
				UserID:    &user.ID,
				Question:  "E agora?",
				FullName:  "Ana",
				BirthDate: "1988-12-01",
			})
			require.NoError(t, err)

			assert.Equal(t, &DrawResult{
				Blocked:   true,
				Question:  "E agora?",
				FullName:  "Ana",
				BirthDate: "1988-12-01",
			}, result)
			f.readings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			assert.NoError(t, f.sqlMock.ExpectationsWereMet())
		})
	}
}

func TestReadingService_QuotaPerPlan(t *testing.T) {
	tests := []struct {
		plan        domain.Plan
		count       int
		wantBlocked bool
	}{
		{domain.PlanFree, 0, false},
		{domain.PlanFree, 1, true},
		{domain.PlanStandard, 2, false},
		{domain.PlanStandard, 3, true},
		{domain.PlanPremiumCustom, 100, false},
		{domain.Plan("gold"), 0, false},
		{domain.Plan("gold"), 1, true},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s/%d", tt.plan, tt.count), func(t *testing.T) {
			f := newReadingFixture(t, false)
			user := memberOn(tt.plan)

			f.users.On("GetByID", mock.Anything, user.ID).Return(user, nil)
			f.readings.On("CountByUserInWindow", mock.Anything, user.ID, mock.Anything, mock.Anything).
				Return(tt.count, nil)
			f.readings.On("Create", mock.Anything, mock.Anything).Return(nil)

			result, err := f.svc.Draw(context.Background(), DrawRequest{UserID: &user.ID})
			require.NoError(t, err)
			assert.Equal(t, tt.wantBlocked, result.Blocked)
			if tt.wantBlocked {
				f.readings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			} else {
				f.readings.AssertNumberOfCalls(t, "Create", 1)
			}
		})
	}
}

func TestReadingService_CountFailureIsNotZero(t *testing.T) {
	dbErr := errors.New("connection refused")

	t.Run("strict rolls back", func(t *testing.T) {
		f := newReadingFixture(t, true)
		user := memberOn(domain.PlanFree)

		f.sqlMock.ExpectBegin()
		f.users.On("LockForQuota", mock.Anything, user.ID).Return(user, nil)
		f.readings.On("CountByUserInWindow", mock.Anything, user.ID, mock.Anything, mock.Anything).
			Return(0, dbErr)
		f.sqlMock.ExpectRollback()

		result, err := f.svc.Draw(context.Background(), DrawRequest{UserID: &user.ID})
		assert.Nil(t, result)
		assert.ErrorIs(t, err, dbErr)
		var svcErr *ServiceError
		assert.ErrorAs(t, err, &svcErr)
		f.readings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		assert.NoError(t, f.sqlMock.ExpectationsWereMet())
	})

	t.Run("non-strict", func(t *testing.T) {
		f := newReadingFixture(t, false)
		user := memberOn(domain.PlanPremiumCustom)

		f.users.On("GetByID", mock.Anything, user.ID).Return(user, nil)
		f.readings.On("CountByUserInWindow", mock.Anything, user.ID, mock.Anything, mock.Anything).
			Return(0, dbErr)

		_, err := f.svc.Draw(context.Background(), DrawRequest{UserID: &user.ID})
		assert.ErrorIs(t, err, dbErr)
		f.readings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestReadingService_InsertFailure(t *testing.T) {
	f := newReadingFixture(t, true)
	user := memberOn(domain.PlanStandard)
	dbErr := errors.New("disk full")

	f.sqlMock.ExpectBegin()
	f.users.On("LockForQuota", mock.Anything, user.ID).Return(user, nil)
	f.readings.On("CountByUserInWindow", mock.Anything, user.ID, mock.Anything, mock.Anything).Return(0, nil)
	f.readings.On("Create", mock.Anything, mock.Anything).Return(dbErr)
	f.sqlMock.ExpectRollback()

	_, err := f.svc.Draw(context.Background(), DrawRequest{UserID: &user.ID, Question: "?"})
	assert.ErrorIs(t, err, dbErr)
	assert.NoError(t, f.sqlMock.ExpectationsWereMet())
}

func TestReadingService_UnknownMember(t *testing.T) {
	f := newReadingFixture(t, false)
	id := uuid.New()

	f.users.On("GetByID", mock.Anything, id).Return(nil, store.ErrUserNotFound)

	_, err := f.svc.Draw(context.Background(), DrawRequest{UserID: &id})
	assert.Equal(t, ErrUserNotFound, err)
}

func TestReadingService_SignInvariantViolationDegrades(t *testing.T) {
	f := newReadingFixture(t, false)
	f.svc.resolveSign = func(string) (oracle.Sign, error) {
		return oracle.SignNone, fmt.Errorf("%w: 02-30", oracle.ErrNoSign)
	}
	ctx, logs := logger.NewTestContext(t)

	result, err := f.svc.Draw(ctx, DrawRequest{Question: "e a saúde?", BirthDate: "2000-01-01"})
	require.NoError(t, err)

	assert.Equal(t, oracle.SignNone, result.Sign)
	assert.Contains(t, result.Reading, "Foque no essencial: ")
	assert.NotContains(t, result.Reading, "Em ")
	logger.AssertLogContains(t, logs, "sign table has no match for birth date")
}

func TestReadingService_UnparseableBirthDate(t *testing.T) {
	f := newReadingFixture(t, false)

	result, err := f.svc.Draw(context.Background(), DrawRequest{BirthDate: "not a date"})
	require.NoError(t, err)
	assert.Equal(t, oracle.SignNone, result.Sign)
	assert.Equal(t, oracle.TopicGeneral, result.Topic)
}

func TestReadingService_QuotaStatus(t *testing.T) {
	f := newReadingFixture(t, false)
	user := memberOn(domain.PlanStandard)

	f.users.On("GetByID", mock.Anything, user.ID).Return(user, nil)
	f.readings.On("CountByUserInWindow", mock.Anything, user.ID, testWindowStart, testWindowEnd).Return(2, nil)

	status, err := f.svc.QuotaStatus(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, &QuotaStatus{
		Plan:      domain.PlanStandard,
		Limit:     3,
		Used:      2,
		Remaining: 1,
		Window:    oracle.Window{Start: testWindowStart, End: testWindowEnd},
	}, status)

	t.Run("premium is unlimited", func(t *testing.T) {
		f := newReadingFixture(t, false)
		premium := memberOn(domain.PlanPremiumCustom)
		f.users.On("GetByID", mock.Anything, premium.ID).Return(premium, nil)
		f.readings.On("CountByUserInWindow", mock.Anything, premium.ID, mock.Anything, mock.Anything).Return(7, nil)

		status, err := f.svc.QuotaStatus(context.Background(), premium.ID)
		require.NoError(t, err)
		assert.Equal(t, oracle.Unlimited, status.Limit)
		assert.Equal(t, oracle.Unlimited, status.Remaining)
		assert.Equal(t, 7, status.Used)
	})
}

func TestReadingService_History(t *testing.T) {
	f := newReadingFixture(t, false)
	userID := uuid.New()
	readings := []*domain.Reading{{ID: uuid.New(), UserID: userID}}

	f.readings.On("ListByUser", mock.Anything, userID, HistoryLimit).Return(readings, nil)

	got, err := f.svc.History(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, readings, got)

	t.Run("store failure", func(t *testing.T) {
		f := newReadingFixture(t, false)
		f.readings.On("ListByUser", mock.Anything, userID, HistoryLimit).Return(nil, errors.New("boom"))

		_, err := f.svc.History(context.Background(), userID)
		var svcErr *ServiceError
		assert.ErrorAs(t, err, &svcErr)
	})
}
