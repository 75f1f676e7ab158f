// Package logout реализует HTTP-обработчик выхода: снимает привязку сессии
// и гасит cookie.
package logout

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/subtrack-app/subtrack/internal/http/response"
	"github.com/subtrack-app/subtrack/internal/lib/sl"
	"github.com/subtrack-app/subtrack/internal/session"
)

// Sessions снимает привязку сессии.
type Sessions interface {
	Delete(cookieValue string) error
	ClearCookie(w http.ResponseWriter)
}

type Handler struct {
	log      *slog.Logger
	sessions Sessions
}

func New(log *slog.Logger, sessions Sessions) *Handler {
	return &Handler{
		log:      log,
		sessions: sessions,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.logout"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	if cookie, err := r.Cookie(session.CookieName); err == nil {
		if err := h.sessions.Delete(cookie.Value); err != nil {
			log.Error("failed to delete session", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to logout"))
			return
		}
	}
	h.sessions.ClearCookie(w)

	log.Info("logout success")
	render.JSON(w, r, response.Success())
}
