// Package middlewarectx содержит HTTP middleware аутентификации по сессионной cookie.
//
// SessionMiddleware читает cookie, проверяет её подпись, находит привязку
// сессии и сверяет её с реальной учётной записью. Идентичность кладётся
// в контекст запроса и передаётся обработчикам явно, а не через глобальное
// состояние. Запросы без валидной сессии получают HTTP 401.
package middlewarectx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/subtrack-app/subtrack/internal/http/response"
	"github.com/subtrack-app/subtrack/internal/lib/sl"
	"github.com/subtrack-app/subtrack/internal/models"
	"github.com/subtrack-app/subtrack/internal/session"
	"github.com/subtrack-app/subtrack/internal/storage/repository"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

const (
	// UserUID — ключ для идентификатора пользователя в контексте
	UserUID Key = "user_uid"
	// Username — ключ для имени пользователя в контексте
	Username Key = "username"
)

// SessionStore описывает интерфейс хранилища сессий.
type SessionStore interface {
	Get(cookieValue string) (*session.Session, bool, error)
}

// UserProvider описывает сервис, по UID возвращающий учётную запись.
type UserProvider interface {
	GetUser(ctx context.Context, userUID string) (*models.User, error)
}

// SessionMiddleware возвращает HTTP middleware, которое требует валидную сессию.
//
// Привязка сессии сверяется с таблицей пользователей: после восстановления
// из резервной копии старые сессии указывают на несуществующие uid и
// отклоняются так же, как отсутствующая cookie.
func SessionMiddleware(store SessionStore, users UserProvider, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.SessionMiddleware"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			cookie, err := r.Cookie(session.CookieName)
			if err != nil {
				log.Info("request without session cookie")
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error("authentication required"))
				return
			}

			sess, ok, err := store.Get(cookie.Value)
			if err != nil {
				log.Error("failed to load session", sl.Err(err))
				w.WriteHeader(http.StatusInternalServerError)
				render.JSON(w, r, response.Error("internal server error"))
				return
			}
			if !ok {
				log.Info("invalid or expired session")
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error("authentication required"))
				return
			}

			user, err := users.GetUser(r.Context(), sess.UserUID)
			if errors.Is(err, repository.ErrNotFound) {
				log.Info("session bound to unknown user", sl.Err(err))
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error("authentication required"))
				return
			}
			if err != nil {
				log.Error("failed to load session user", sl.Err(err))
				w.WriteHeader(http.StatusInternalServerError)
				render.JSON(w, r, response.Error("internal server error"))
				return
			}

			ctx := context.WithValue(r.Context(), UserUID, user.UID)
			ctx = context.WithValue(ctx, Username, user.Username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
