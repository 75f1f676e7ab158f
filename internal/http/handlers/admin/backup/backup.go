// Package backup реализует административную выгрузку полного набора данных.
//
// Одним вызовом выполняются оба побочных эффекта: документ отдается клиенту
// как вложение и его копия с меткой времени сохраняется в каталоге данных
// на сервере. Неудачная запись копии не срывает выгрузку.
package backup

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/subtrack-app/subtrack/internal/http/response"
	"github.com/subtrack-app/subtrack/internal/lib/sl"
	"github.com/subtrack-app/subtrack/internal/models"
)

// Service описывает интерфейс бизнес-логики резервного копирования.
type Service interface {
	Export(ctx context.Context) ([]models.UserBackup, error)
	WriteSnapshot(doc []models.UserBackup) (string, error)
}

type Handler struct {
	log     *slog.Logger
	service Service
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.backup"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	doc, err := h.service.Export(r.Context())
	if err != nil {
		log.Error("failed to export dataset", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error(err.Error()))
		return
	}

	if path, err := h.service.WriteSnapshot(doc); err != nil {
		log.Warn("failed to write server-side snapshot", sl.Err(err))
	} else {
		log.Info("snapshot written", slog.String("path", path))
	}

	filename := fmt.Sprintf("subtrack_backup_%s.json", time.Now().UTC().Format("20060102_150405"))
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if err := json.NewEncoder(w).Encode(doc); err != nil {
		log.Error("failed to write backup document", sl.Err(err))
	}
}
