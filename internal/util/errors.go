package util

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailRegistered    = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrSessionNotFound    = errors.New("exam session not found")
	ErrSessionNotActive   = errors.New("exam session is not in progress")
	ErrSessionFinished    = errors.New("exam session already completed")
	ErrSessionNotOwned    = errors.New("exam session belongs to another user")
	ErrQuestionNotFound   = errors.New("question not found")
	ErrQuestionBankEmpty  = errors.New("question bank has no questions for the request")
	ErrInvalidOption      = errors.New("selected option must be one of A, B, C, D")
)
