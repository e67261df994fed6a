package auth

import "errors"

// Token validation failures. Handlers map all of them to 401.
var (
	ErrMissingToken     = errors.New("auth: token missing")
	ErrInvalidToken     = errors.New("auth: token invalid")
	ErrExpiredToken     = errors.New("auth: token expired")
	ErrTokenNotYetValid = errors.New("auth: token not valid yet")

	ErrInvalidRefreshToken = errors.New("auth: refresh token invalid")
	ErrExpiredRefreshToken = errors.New("auth: refresh token expired")

	// ErrWrongTokenType is returned when an access token is presented as a
	// refresh token or the other way round.
	ErrWrongTokenType = errors.New("auth: wrong token type")
)
