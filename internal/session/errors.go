package session

import "errors"

var (
	// ErrNoToken токен не найден ни в окружении, ни в файле
	ErrNoToken = errors.New("session: no token")

	// ErrMalformedToken токен не удалось разобрать
	ErrMalformedToken = errors.New("session: malformed token")

	// ErrExpired срок действия токена истек
	ErrExpired = errors.New("session: token expired")
)
