package common

import "errors"

var (

	// repository specific errors
	ErrorNotFound = errors.New("not found")

	// service specific errors
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorValidation   = errors.New("validation error")

	// durable-store I/O failures
	ErrorStorage = errors.New("storage error")

	// external snapshot upload failures; logged, never surfaced to callers
	ErrorBackup = errors.New("backup error")

	ErrorInvalidToken = errors.New("invalid token")
)
