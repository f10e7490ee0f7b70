package util

import "errors"

var (
	ErrUserNotFound          = errors.New("user not found")
	ErrEmailRegistered       = errors.New("email already registered")
	ErrPermissionDenied      = errors.New("permission denied")
	ErrUnknownSpecialization = errors.New("unknown specialization")
	ErrBankNotFound          = errors.New("question bank not found")
	ErrQuestionNotFound      = errors.New("question not found")
	ErrNoQuestionsMatched    = errors.New("filters matched zero questions")
	ErrExamNotFound          = errors.New("exam session not found")
	ErrExamAlreadyScored     = errors.New("exam session already scored")
	ErrExamNotInProgress     = errors.New("exam session is not in progress")
	ErrAchievementNotFound   = errors.New("achievement not found")
)
