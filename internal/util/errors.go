package util

import "errors"

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrEmailRegistered  = errors.New("email already registered")
	ErrLessonNotFound   = errors.New("lesson not found")
	ErrQuestionRequired = errors.New("question is required")
)
