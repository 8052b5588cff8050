package model

import "errors"

// Application-wide standard errors
var (
	// Common Resource/DB Errors
	ErrNotFound           = errors.New("resource not found")
	ErrManuscriptNotFound = errors.New("manuscript not found")
	ErrGenerationNotFound = errors.New("generation not found")

	// User & Authentication Errors
	ErrUserNotFound       = errors.New("user not found")
	ErrUserAlreadyExists  = errors.New("user with this username already exists")
	ErrEmailAlreadyExists = errors.New("user with this email already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")

	// Token Errors
	ErrTokenInvalid   = errors.New("token is invalid")
	ErrTokenMalformed = errors.New("token is malformed")
	ErrTokenExpired   = errors.New("token has expired")
	ErrTokenNotFound  = errors.New("token not found in storage")

	// Manuscript Errors
	ErrUnsupportedFormat = errors.New("unsupported manuscript format")
	ErrFileTooLarge      = errors.New("manuscript file is too large")
	ErrExtractionFailed  = errors.New("failed to extract text from the manuscript")
	ErrEmptyManuscript   = errors.New("no text could be extracted from the manuscript")

	// General Request/Server Errors
	ErrInternalServer = errors.New("internal server error")
	ErrBadRequest     = errors.New("bad request")
	ErrInvalidInput   = errors.New("invalid input data")
)
