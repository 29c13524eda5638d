package domain

import "time"

// Role роль пользователя
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// AuthContext уже проверенная сессия. Нулевое значение означает "нет сессии"
type AuthContext struct {
	UserID    string
	Role      Role
	ExpiresAt time.Time // нулевое значение - без срока действия
	Token     string
}

// IsValid returns true if the session carries a token that has not expired at now
func (a AuthContext) IsValid(now time.Time) bool {
	if a.Token == "" {
		return false
	}
	return a.ExpiresAt.IsZero() || !now.After(a.ExpiresAt)
}

// IsAdmin returns true for administrator sessions
func (a AuthContext) IsAdmin() bool {
	return a.Role == RoleAdmin
}
