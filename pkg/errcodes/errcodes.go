package errcodes

import "git.appkode.ru/pub/go/failure"

const (
	InternalServerError failure.ErrorCode = "InternalServerError"
	TimeoutExceeded     failure.ErrorCode = "TimeoutExceeded"
	Forbidden           failure.ErrorCode = "Forbidden"
	ValidationError     failure.ErrorCode = "ValidationError"
	NotFound            failure.ErrorCode = "NotFound"

	// Конфигурация и внешние сервисы
	ConfigValueMissing failure.ErrorCode = "ConfigValueMissing"
	StoreUnavailable   failure.ErrorCode = "StoreUnavailable"
	DeliveryFailed     failure.ErrorCode = "DeliveryFailed"
)
