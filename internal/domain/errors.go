package domain

import "errors"

// Domain errors
var (
	ErrNotFound            = errors.New("resource not found")
	ErrInvalidInput        = errors.New("invalid input")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrInternalError       = errors.New("internal error")
	ErrUpstreamRejected    = errors.New("request rejected by loan service")
	ErrUpstreamUnavailable = errors.New("loan service unavailable")
)

// Validation constants
const (
	MaxStatusCommentLength = 500
	MaxLoanTypeNameLength  = 100
	MaxChatMessageLength   = 2000
)
