package middleware

import (
	"net/http"

	"github.com/m04kA/SMC-CourtBooking/internal/api/handlers"
	"github.com/m04kA/SMC-CourtBooking/internal/auth"
	"github.com/m04kA/SMC-CourtBooking/internal/domain"
)

// TokenValidator проверяет bearer-токен
type TokenValidator interface {
	Validate(token string) (domain.AuthContext, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Auth проверяет Authorization: Bearer <jwt> и кладет сессию в контекст запроса
func Auth(validator TokenValidator, logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, err := validator.Validate(auth.ExtractBearerToken(r))
			if err != nil {
				logger.Warn("%s %s - Unauthorized: %v", r.Method, r.URL.Path, err)
				handlers.RespondUnauthorized(w)
				return
			}
			next.ServeHTTP(w, r.WithContext(auth.WithContext(r.Context(), session)))
		})
	}
}

// RequireAdmin пропускает только администраторов. Ставится после Auth
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, ok := auth.FromContext(r.Context())
		if !ok {
			handlers.RespondUnauthorized(w)
			return
		}
		if !session.IsAdmin() {
			handlers.RespondForbidden(w, "administrator role required")
			return
		}
		next.ServeHTTP(w, r)
	})
}
