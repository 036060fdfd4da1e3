package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-BookingWindowService/internal/api/handlers"
)

// UserIDHeader заголовок с ID пользователя, выставляется API gateway
const UserIDHeader = "X-User-ID"

const (
	msgMissingUserID = "заголовок X-User-ID обязателен"
	msgInvalidUserID = "некорректный X-User-ID"
)

type userIDKey struct{}

// Auth пропускает только запросы с корректным X-User-ID и кладёт его в контекст
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get(UserIDHeader)
		if raw == "" {
			handlers.RespondUnauthorized(w, msgMissingUserID)
			return
		}

		userID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondUnauthorized(w, msgInvalidUserID)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
	})
}

// WithUserID возвращает контекст с ID пользователя
func WithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, userIDKey{}, userID)
}

// UserIDFromContext достаёт ID пользователя, положенный Auth
func UserIDFromContext(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(userIDKey{}).(int64)
	return userID, ok
}
