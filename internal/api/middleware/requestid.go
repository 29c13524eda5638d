package middleware

import (
	"net/http"

	"github.com/google/uuid"
)

// RequestIDHeader заголовок сквозного идентификатора запроса
const RequestIDHeader = "X-Request-ID"

// RequestID сохраняет пришедший X-Request-ID или выдает новый и возвращает его в ответе
func RequestID(logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(RequestIDHeader)
			if _, err := uuid.Parse(id); err != nil {
				id = uuid.NewString()
				r.Header.Set(RequestIDHeader, id)
			}
			w.Header().Set(RequestIDHeader, id)

			logger.Info("%s %s request_id=%s", r.Method, r.URL.Path, id)
			next.ServeHTTP(w, r)
		})
	}
}
