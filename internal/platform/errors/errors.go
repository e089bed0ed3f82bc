package apperrors

import "errors"

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrNotFound         = errors.New("not found")
	ErrNoSession        = errors.New("no session for day")
	ErrSessionFinished  = errors.New("session already finished")
	ErrQuestionLocked   = errors.New("question already locked")
	ErrQuestionRunning  = errors.New("question still running")
	ErrEmptySelection   = errors.New("no questions match the selection")
	ErrAlreadyPlayed    = errors.New("weekly challenge already played today")
	ErrDuplicateAttempt = errors.New("attempt already recorded")
)
