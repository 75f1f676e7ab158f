// Package rate реализует HTTP-обработчик получения курса USD/JPY.
//
// Маршрут открыт без аутентификации, но курс кешируется в разрезе сессии:
// клиенту без cookie выдается анонимный сессионный токен, чтобы у кеша
// был стабильный ключ.
package rate

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/subtrack-app/subtrack/internal/lib/sl"
	"github.com/subtrack-app/subtrack/internal/models"
	"github.com/subtrack-app/subtrack/internal/session"
)

// Service описывает интерфейс бизнес-логики курсов валют.
type Service interface {
	Get(ctx context.Context, sessionToken string) (*models.ExchangeRate, error)
}

// Sessions выдает и проверяет сессионные токены.
type Sessions interface {
	Token(cookieValue string) (string, bool)
	Anonymous() string
	SetCookie(w http.ResponseWriter, value string)
}

type Handler struct {
	log      *slog.Logger
	service  Service
	sessions Sessions
}

func New(log *slog.Logger, service Service, sessions Sessions) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		sessions: sessions,
	}
}

// sessionToken возвращает токен текущего клиента, при необходимости
// выставляя анонимную cookie.
func (h *Handler) sessionToken(w http.ResponseWriter, r *http.Request) string {
	if cookie, err := r.Cookie(session.CookieName); err == nil {
		if token, ok := h.sessions.Token(cookie.Value); ok {
			return token
		}
	}
	value := h.sessions.Anonymous()
	h.sessions.SetCookie(w, value)
	token, _ := h.sessions.Token(value)
	return token
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.rate.get"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	token := h.sessionToken(w, r)

	rate, err := h.service.Get(r.Context(), token)
	if err != nil {
		log.Error("failed to get exchange rate", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, map[string]any{
			"USD_JPY": rate.USDJPY,
			"JPY_USD": rate.JPYUSD,
			"error":   "exchange rate provider unavailable",
		})
		return
	}

	render.JSON(w, r, rate)
}
