package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Reading validation errors
var (
	ErrEmptyReadingID     = errors.New("reading ID cannot be empty")
	ErrEmptyReadingUserID = errors.New("reading user ID cannot be empty")
	ErrEmptyReadingCard   = errors.New("reading card key cannot be empty")
	ErrEmptyReadingText   = errors.New("reading text cannot be empty")
)

// Reading is a persisted draw for an authenticated member.
// Readings are immutable once created; CreatedAt is assigned by the store
// at insert time and drives the weekly quota window.
type Reading struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	Question    string    `json:"question"`
	CardKey     string    `json:"card_key"`
	CardName    string    `json:"card_name"`
	Upright     bool      `json:"upright"`
	Sign        string    `json:"sign,omitempty"`
	ReadingText string    `json:"reading_text"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewReading creates a Reading for the given user with a fresh ID.
// CreatedAt is left zero for the store to fill in.
func NewReading(userID uuid.UUID, question, cardKey, cardName string, upright bool, sign, text string) (*Reading, error) {
	r := &Reading{
		ID:          uuid.New(),
		UserID:      userID,
		Question:    question,
		CardKey:     cardKey,
		CardName:    cardName,
		Upright:     upright,
		Sign:        sign,
		ReadingText: text,
	}

	if err := r.Validate(); err != nil {
		return nil, err
	}

	return r, nil
}

// Validate checks if the Reading has valid data.
// An empty question and an empty sign are both legitimate.
func (r *Reading) Validate() error {
	if r.ID == uuid.Nil {
		return ErrEmptyReadingID
	}
	if r.UserID == uuid.Nil {
		return ErrEmptyReadingUserID
	}
	if r.CardKey == "" {
		return ErrEmptyReadingCard
	}
	if r.ReadingText == "" {
		return ErrEmptyReadingText
	}
	return nil
}
