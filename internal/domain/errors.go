package domain

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrPINMismatch        = errors.New("pins do not match")
	ErrTokenRevoked       = errors.New("token revoked")

	ErrCourseNotFound    = errors.New("course not found")
	ErrLessonNotInCourse = errors.New("lesson does not belong to course")
	ErrProgressNotFound  = errors.New("progress not found")
)
