package smsgateway

import "errors"

var (
	// ErrNotConfigured возвращается, когда не заданы учётные данные шлюза
	ErrNotConfigured = errors.New("smsgateway client: not configured")

	// ErrInvalidPhone возвращается, когда номер телефона пуст
	ErrInvalidPhone = errors.New("smsgateway client: invalid phone number")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("smsgateway client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от шлюза
	ErrInvalidResponse = errors.New("smsgateway client: invalid response")

	// ErrRateLimited возвращается, когда ожидание лимита прервано контекстом
	ErrRateLimited = errors.New("smsgateway client: rate limit wait cancelled")
)
