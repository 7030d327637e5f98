package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// HeaderSessionID заголовок сессии корзины
const HeaderSessionID = "X-Session-ID"

const sessionIDKey contextKey = "sessionID"

// Session извлекает идентификатор сессии корзины из заголовка
// Если клиент пришел без сессии, выдается новая: идентификатор
// возвращается в ответном заголовке, чтобы клиент сохранил его
func Session(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionID := r.Header.Get(HeaderSessionID)
		if sessionID == "" || uuid.Validate(sessionID) != nil {
			sessionID = uuid.NewString()
		}

		w.Header().Set(HeaderSessionID, sessionID)

		ctx := context.WithValue(r.Context(), sessionIDKey, sessionID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// SessionIDFromContext возвращает идентификатор сессии корзины
func SessionIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(sessionIDKey).(string)
	return id, ok
}
