package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
)

type contextKey struct{}

// ExtractBearerToken извлекает токен из заголовка Authorization
func ExtractBearerToken(r *http.Request) string {
	if r == nil {
		return ""
	}
	header := strings.TrimSpace(r.Header.Get("Authorization"))

	const prefix = "bearer "
	if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		return strings.TrimSpace(header[len(prefix):])
	}
	return ""
}

// WithContext кладет проверенную сессию в контекст запроса
func WithContext(ctx context.Context, auth domain.AuthContext) context.Context {
	return context.WithValue(ctx, contextKey{}, auth)
}

// FromContext достает сессию из контекста. ok=false, если middleware не отработал
func FromContext(ctx context.Context) (domain.AuthContext, bool) {
	auth, ok := ctx.Value(contextKey{}).(domain.AuthContext)
	return auth, ok
}
