package bookingapi

import (
	"errors"
	"net/http"
)

var (
	// ErrInternal возвращается при внутренних ошибках клиента (запрос не удалось построить или отправить)
	ErrInternal = errors.New("bookingapi client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("bookingapi client: invalid response")

	// ErrUnauthorized возвращается на 401
	ErrUnauthorized = errors.New("bookingapi client: unauthorized")

	// ErrForbidden возвращается на 403
	ErrForbidden = errors.New("bookingapi client: forbidden")

	// ErrNotFound возвращается на 404
	ErrNotFound = errors.New("bookingapi client: not found")

	// ErrConflict возвращается на 409 (слот уже занят)
	ErrConflict = errors.New("bookingapi client: conflict")

	// ErrRejected возвращается на прочие 4xx/5xx
	ErrRejected = errors.New("bookingapi client: request rejected")
)

// APIError ошибка, которую вернул Booking API в теле {message}
type APIError struct {
	StatusCode int
	Message    string
	kind       error
}

// Error возвращает сообщение сервера как есть, чтобы его можно было показать пользователю
func (e *APIError) Error() string {
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.kind
}

func newAPIError(status int, message string) *APIError {
	if message == "" {
		message = http.StatusText(status)
	}

	kind := ErrRejected
	switch status {
	case http.StatusUnauthorized:
		kind = ErrUnauthorized
	case http.StatusForbidden:
		kind = ErrForbidden
	case http.StatusNotFound:
		kind = ErrNotFound
	case http.StatusConflict:
		kind = ErrConflict
	}

	return &APIError{StatusCode: status, Message: message, kind: kind}
}
