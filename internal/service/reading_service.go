package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/zen-api/internal/domain"
	"github.com/phrazzld/zen-api/internal/domain/oracle"
	"github.com/phrazzld/zen-api/internal/platform/logger"
	"github.com/phrazzld/zen-api/internal/store"
)

// HistoryLimit caps the number of readings returned by History.
const HistoryLimit = 50

// DrawRequest is the input of a draw. A nil UserID is an anonymous draw.
type DrawRequest struct {
	UserID    *uuid.UUID
	Question  string
	FullName  string
	BirthDate string
}

// DrawResult is the outcome of a draw. When Blocked is true only the echoed
// request fields are set.
type DrawResult struct {
	Blocked   bool
	Question  string
	FullName  string
	BirthDate string

	Topic   oracle.Topic
	Sign    oracle.Sign
	Card    *oracle.DrawnCard
	Reading string

	// Set for persisted draws only.
	ReadingID *uuid.UUID
	CreatedAt *time.Time
}

// QuotaStatus describes a member's position in the current weekly window.
// Limit and Remaining are oracle.Unlimited for uncapped plans.
type QuotaStatus struct {
	Plan      domain.Plan
	Limit     int
	Used      int
	Remaining int
	Window    oracle.Window
}

// ReadingService runs draws and exposes the member's quota and history.
type ReadingService interface {
	// Draw classifies the question, draws a card, resolves the sign and
	// composes the reading. Member draws are checked against the weekly quota
	// first and persisted when allowed; a quota refusal is a Blocked result,
	// not an error.
	Draw(ctx context.Context, req DrawRequest) (*DrawResult, error)

	// QuotaStatus reports the member's usage in the current window.
	QuotaStatus(ctx context.Context, userID uuid.UUID) (*QuotaStatus, error)

	// History returns the member's latest readings, newest first.
	History(ctx context.Context, userID uuid.UUID) ([]*domain.Reading, error)
}

// ReadingServiceConfig carries the quota rules of a ReadingService.
type ReadingServiceConfig struct {
	Policy   oracle.QuotaPolicy
	Calendar oracle.WeekCalendar
	// Strict runs the quota check and the insert in one transaction holding
	// a row lock on the member.
	Strict bool
}

type readingService struct {
	userStore    store.UserStore
	readingStore store.ReadingStore
	db           *sql.DB
	deck         *oracle.Deck
	policy       oracle.QuotaPolicy
	calendar     oracle.WeekCalendar
	strict       bool
	logger       *slog.Logger

	now         func() time.Time
	resolveSign func(string) (oracle.Sign, error)
}

// NewReadingService creates a ReadingService.
// It returns an error if any of the required dependencies are nil.
func NewReadingService(
	userStore store.UserStore,
	readingStore store.ReadingStore,
	db *sql.DB,
	deck *oracle.Deck,
	cfg ReadingServiceConfig,
	logger *slog.Logger,
) (ReadingService, error) {
	if userStore == nil {
		return nil, &ServiceError{Service: "reading", Op: "create_service", Err: errors.New("userStore cannot be nil")}
	}
	if readingStore == nil {
		return nil, &ServiceError{Service: "reading", Op: "create_service", Err: errors.New("readingStore cannot be nil")}
	}
	if db == nil && cfg.Strict {
		return nil, &ServiceError{Service: "reading", Op: "create_service", Err: errors.New("db cannot be nil in strict mode")}
	}
	if deck == nil {
		deck = oracle.NewDeck(nil)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &readingService{
		userStore:    userStore,
		readingStore: readingStore,
		db:           db,
		deck:         deck,
		policy:       cfg.Policy,
		calendar:     cfg.Calendar,
		strict:       cfg.Strict,
		logger:       logger.With(slog.String("component", "reading_service")),
		now:          time.Now,
		resolveSign:  oracle.ResolveSign,
	}, nil
}

// Draw implements ReadingService.Draw.
func (s *readingService) Draw(ctx context.Context, req DrawRequest) (*DrawResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if req.UserID == nil {
		result := s.generate(ctx, req)
		log.Debug("anonymous draw",
			slog.String("card_key", result.Card.Key),
			slog.String("topic", string(result.Topic)))
		return result, nil
	}

	var (
		result *DrawResult
		err    error
	)
	if s.strict {
		txOpts := &sql.TxOptions{Isolation: sql.LevelReadCommitted}
		err = store.RunInTransactionWithOptions(ctx, s.db, txOpts, func(ctx context.Context, tx *sql.Tx) error {
			var txErr error
			result, txErr = s.drawForMember(ctx, req, s.userStore.WithTx(tx), s.readingStore.WithTx(tx), true)
			return txErr
		})
	} else {
		result, err = s.drawForMember(ctx, req, s.userStore, s.readingStore, false)
	}
	if err != nil {
		log.Error("member draw failed",
			slog.String("error", err.Error()),
			slog.String("user_id", req.UserID.String()))
		return nil, wrapError("reading", "draw", err)
	}
	return result, nil
}

// drawForMember runs the quota check and, when allowed, the draw and the
// insert against the given stores. With lock set the member row is locked
// first, so the stores must be bound to a transaction.
func (s *readingService) drawForMember(
	ctx context.Context,
	req DrawRequest,
	users store.UserStore,
	readings store.ReadingStore,
	lock bool,
) (*DrawResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var (
		user *domain.User
		err  error
	)
	if lock {
		user, err = users.LockForQuota(ctx, *req.UserID)
	} else {
		user, err = users.GetByID(ctx, *req.UserID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load member: %w", err)
	}

	window := s.calendar.WindowAt(s.now())
	count, err := readings.CountByUserInWindow(ctx, user.ID, window.Start, window.End)
	if err != nil {
		return nil, fmt.Errorf("failed to count readings: %w", err)
	}

	if !s.policy.Allows(user.Plan, count) {
		log.Info("draw blocked by weekly quota",
			slog.String("user_id", user.ID.String()),
			slog.String("plan", string(user.Plan)),
			slog.Int("count", count),
			slog.Int("limit", s.policy.WeeklyLimit(user.Plan)))
		return &DrawResult{
			Blocked:   true,
			Question:  req.Question,
			FullName:  req.FullName,
			BirthDate: req.BirthDate,
		}, nil
	}

	result := s.generate(ctx, req)
	reading, err := domain.NewReading(
		user.ID,
		req.Question,
		result.Card.Key,
		result.Card.Name,
		result.Card.Upright,
		string(result.Sign),
		result.Reading,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build reading: %w", err)
	}
	if err := readings.Create(ctx, reading); err != nil {
		return nil, fmt.Errorf("failed to save reading: %w", err)
	}

	result.ReadingID = &reading.ID
	result.CreatedAt = &reading.CreatedAt
	log.Info("member draw recorded",
		slog.String("user_id", user.ID.String()),
		slog.String("reading_id", reading.ID.String()),
		slog.Int("count_before", count))
	return result, nil
}

// generate runs the pure part of a draw: classify, draw, resolve, compose.
func (s *readingService) generate(ctx context.Context, req DrawRequest) *DrawResult {
	topic := oracle.ClassifyTopic(req.Question)
	card := s.deck.Draw()

	sign, err := s.resolveSign(req.BirthDate)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("sign table has no match for birth date",
			slog.String("error", err.Error()))
		sign = oracle.SignNone
	}

	return &DrawResult{
		Question:  req.Question,
		FullName:  req.FullName,
		BirthDate: req.BirthDate,
		Topic:     topic,
		Sign:      sign,
		Card:      &card,
		Reading:   oracle.Compose(topic, card, sign),
	}
}

// QuotaStatus implements ReadingService.QuotaStatus.
func (s *readingService) QuotaStatus(ctx context.Context, userID uuid.UUID) (*QuotaStatus, error) {
	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		return nil, wrapError("reading", "quota_status", err)
	}

	window := s.calendar.WindowAt(s.now())
	used, err := s.readingStore.CountByUserInWindow(ctx, userID, window.Start, window.End)
	if err != nil {
		return nil, wrapError("reading", "quota_status", err)
	}

	return &QuotaStatus{
		Plan:      user.Plan,
		Limit:     s.policy.WeeklyLimit(user.Plan),
		Used:      used,
		Remaining: s.policy.Remaining(user.Plan, used),
		Window:    window,
	}, nil
}

// History implements ReadingService.History.
func (s *readingService) History(ctx context.Context, userID uuid.UUID) ([]*domain.Reading, error) {
	readings, err := s.readingStore.ListByUser(ctx, userID, HistoryLimit)
	if err != nil {
		return nil, wrapError("reading", "history", err)
	}
	return readings, nil
}
