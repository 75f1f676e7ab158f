// Package users реализует административный список пользователей.
// Маршрут намеренно не закрыт аутентификацией (см. DESIGN.md),
// разворачивать доступным недоверенным клиентам нельзя.
package users

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/subtrack-app/subtrack/internal/http/response"
	"github.com/subtrack-app/subtrack/internal/lib/sl"
	"github.com/subtrack-app/subtrack/internal/models"
)

type Repository interface {
	ListUserSummaries(ctx context.Context) ([]*models.UserSummary, error)
}

type Handler struct {
	log  *slog.Logger
	repo Repository
}

func New(log *slog.Logger, repo Repository) *Handler {
	return &Handler{
		log:  log,
		repo: repo,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.users"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	summaries, err := h.repo.ListUserSummaries(r.Context())
	if err != nil {
		log.Error("failed to list users", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error(err.Error()))
		return
	}
	if summaries == nil {
		summaries = []*models.UserSummary{}
	}

	log.Info("list users", slog.Int("count", len(summaries)))
	render.JSON(w, r, summaries)
}
