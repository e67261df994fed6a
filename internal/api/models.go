package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/zen-api/internal/domain"
	"github.com/phrazzld/zen-api/internal/domain/oracle"
	"github.com/phrazzld/zen-api/internal/service"
)

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Email     string `json:"email"      validate:"required,email"`
	Password  string `json:"password"   validate:"required,min=8,max=72"`
	FullName  string `json:"full_name"  validate:"max=200"`
	BirthDate string `json:"birth_date" validate:"max=40"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	UserID       uuid.UUID `json:"user_id"`
	AccessToken  string    `json:"token"`
	RefreshToken string    `json:"refresh_token"`
	// ExpiresAt is the RFC 3339 time the access token expires.
	ExpiresAt string `json:"expires_at"`
}

// RefreshTokenRequest defines the payload for the token refresh endpoint.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// DrawReadingRequest is the payload of POST /api/readings. Every field is
// optional; an empty question reads as a general one.
type DrawReadingRequest struct {
	Question  string `json:"question"   validate:"max=1000"`
	FullName  string `json:"full_name"  validate:"max=200"`
	BirthDate string `json:"birth_date" validate:"max=40"`
}

// DrawnCardResponse is a drawn card with only the meaning for its orientation.
type DrawnCardResponse struct {
	Key         string             `json:"key"`
	Name        string             `json:"name"`
	Image       string             `json:"image"`
	Orientation oracle.Orientation `json:"orientation"`
	Upright     bool               `json:"upright"`
	Meaning     string             `json:"meaning"`
}

// ReadingResponse is the result of a draw. A blocked draw carries only the
// echoed request fields.
type ReadingResponse struct {
	Blocked   bool               `json:"blocked"`
	Question  string             `json:"question"`
	FullName  string             `json:"full_name,omitempty"`
	BirthDate string             `json:"birth_date,omitempty"`
	Topic     oracle.Topic       `json:"topic,omitempty"`
	Sign      oracle.Sign        `json:"sign,omitempty"`
	Card      *DrawnCardResponse `json:"card,omitempty"`
	Reading   string             `json:"reading,omitempty"`
	ReadingID *uuid.UUID         `json:"reading_id,omitempty"`
	CreatedAt *time.Time         `json:"created_at,omitempty"`
}

func newReadingResponse(r *service.DrawResult) ReadingResponse {
	resp := ReadingResponse{
		Blocked:   r.Blocked,
		Question:  r.Question,
		FullName:  r.FullName,
		BirthDate: r.BirthDate,
		Topic:     r.Topic,
		Sign:      r.Sign,
		Reading:   r.Reading,
		ReadingID: r.ReadingID,
		CreatedAt: r.CreatedAt,
	}
	if r.Card != nil {
		resp.Card = &DrawnCardResponse{
			Key:         r.Card.Key,
			Name:        r.Card.Name,
			Image:       r.Card.Image,
			Orientation: r.Card.Orientation(),
			Upright:     r.Card.Upright,
			Meaning:     r.Card.Meaning(),
		}
	}
	return resp
}

// ReadingRecordResponse is one entry of the reading history.
type ReadingRecordResponse struct {
	ID          uuid.UUID          `json:"id"`
	Question    string             `json:"question"`
	CardKey     string             `json:"card_key"`
	CardName    string             `json:"card_name"`
	Orientation oracle.Orientation `json:"orientation"`
	Sign        string             `json:"sign,omitempty"`
	Reading     string             `json:"reading"`
	CreatedAt   time.Time          `json:"created_at"`
}

// HistoryResponse lists a member's latest readings, newest first.
type HistoryResponse struct {
	Readings []ReadingRecordResponse `json:"readings"`
}

func newHistoryResponse(readings []*domain.Reading) HistoryResponse {
	out := HistoryResponse{Readings: make([]ReadingRecordResponse, 0, len(readings))}
	for _, r := range readings {
		orientation := oracle.OrientationUpright
		if !r.Upright {
			orientation = oracle.OrientationReversed
		}
		out.Readings = append(out.Readings, ReadingRecordResponse{
			ID:          r.ID,
			Question:    r.Question,
			CardKey:     r.CardKey,
			CardName:    r.CardName,
			Orientation: orientation,
			Sign:        r.Sign,
			Reading:     r.ReadingText,
			CreatedAt:   r.CreatedAt,
		})
	}
	return out
}

// UserResponse is the public view of a member.
type UserResponse struct {
	ID        uuid.UUID   `json:"id"`
	Email     string      `json:"email"`
	FullName  string      `json:"full_name"`
	BirthDate string      `json:"birth_date,omitempty"`
	Plan      domain.Plan `json:"plan"`
	PlanSince time.Time   `json:"plan_since"`
	CreatedAt time.Time   `json:"created_at"`
}

func newUserResponse(u *domain.User) UserResponse {
	resp := UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		FullName:  u.FullName,
		Plan:      u.Plan,
		PlanSince: u.PlanSince,
		CreatedAt: u.CreatedAt,
	}
	if u.BirthDate != nil {
		resp.BirthDate = u.BirthDate.Format(time.DateOnly)
	}
	return resp
}

// QuotaResponse reports weekly usage. Limit and Remaining are null for
// unlimited plans.
type QuotaResponse struct {
	Limit       *int      `json:"limit"`
	Used        int       `json:"used"`
	Remaining   *int      `json:"remaining"`
	Unlimited   bool      `json:"unlimited"`
	WindowStart time.Time `json:"window_start"`
	WindowEnd   time.Time `json:"window_end"`
}

func newQuotaResponse(q *service.QuotaStatus) QuotaResponse {
	resp := QuotaResponse{
		Used:        q.Used,
		Unlimited:   q.Limit == oracle.Unlimited,
		WindowStart: q.Window.Start,
		WindowEnd:   q.Window.End,
	}
	if !resp.Unlimited {
		limit, remaining := q.Limit, q.Remaining
		resp.Limit, resp.Remaining = &limit, &remaining
	}
	return resp
}

// MeResponse is the member area: profile, plan and weekly quota.
type MeResponse struct {
	User  UserResponse  `json:"user"`
	Quota QuotaResponse `json:"quota"`
}

// PlanResponse describes one plan of the catalog.
type PlanResponse struct {
	Plan        domain.Plan `json:"plan"`
	WeeklyLimit *int        `json:"weekly_limit"`
	Unlimited   bool        `json:"unlimited"`
}

// PlansResponse lists every plan in catalog order.
type PlansResponse struct {
	Plans []PlanResponse `json:"plans"`
}

// CardsResponse lists catalog cards.
type CardsResponse struct {
	Cards []oracle.Card `json:"cards"`
}

// CheckoutResponse is the answer of the payment stub.
type CheckoutResponse struct {
	Plan    domain.Plan `json:"plan"`
	Message string      `json:"message"`
}

// UpdatePlanRequest is the payload of the admin plan change.
type UpdatePlanRequest struct {
	Plan string `json:"plan" validate:"required"`
}

// UsersResponse lists members for the admin.
type UsersResponse struct {
	Users []UserResponse `json:"users"`
}
