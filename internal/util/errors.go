package util

import "errors"

var (
	// 生成管线错误
	ErrTopicRequired         = errors.New("topic is required")
	ErrGenerationUnavailable = errors.New("generation unavailable")
	ErrMalformedOutput       = errors.New("malformed generation output")

	// 资源与权限错误
	ErrCourseNotFound = errors.New("course not found")
	ErrModuleNotFound = errors.New("module not found")
	ErrLessonNotFound = errors.New("lesson not found")
	ErrNotCourseOwner = errors.New("not authorized to modify this course")
	ErrUserNotFound   = errors.New("用户不存在")

	// 认证错误
	ErrEmailRegistered    = errors.New("该邮箱已被注册")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidOTP         = errors.New("invalid or expired OTP")
	ErrUnauthorized       = errors.New("unauthorized")
)
