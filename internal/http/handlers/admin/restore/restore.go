// Package restore реализует административное восстановление набора данных
// из загруженного документа резервной копии.
//
// Документ приходит multipart-файлом backup_file. Нечитаемый JSON или
// документ, не являющийся списком записей пользователей, отклоняется
// до каких-либо изменений; сама замена данных выполняется одной
// транзакцией хранилища.
package restore

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/subtrack-app/subtrack/internal/http/response"
	"github.com/subtrack-app/subtrack/internal/lib/sl"
	"github.com/subtrack-app/subtrack/internal/models"
)

// maxBackupSize ограничивает размер принимаемого файла.
const maxBackupSize = 32 << 20

// Service описывает интерфейс бизнес-логики восстановления.
type Service interface {
	Restore(ctx context.Context, doc []models.UserBackup) error
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
	const op = "handlers.admin.restore"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	if err := r.ParseMultipartForm(maxBackupSize); err != nil {
		log.Error("failed to parse multipart form", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("backup_file is required"))
		return
	}

	file, _, err := r.FormFile("backup_file")
	if err != nil {
		log.Error("backup_file missing", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("backup_file is required"))
		return
	}
	defer func() {
		_ = file.Close()
	}()

	data, err := io.ReadAll(file)
	if err != nil {
		log.Error("failed to read backup file", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("failed to read backup file"))
		return
	}

	// JSON null и другие не-списочные значения декодируются в nil без
	// ошибки, поэтому верхнеуровневый токен проверяется отдельно.
	if tok, err := json.NewDecoder(bytes.NewReader(data)).Token(); err != nil || tok != json.Delim('[') {
		log.Error("backup document is not a list")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid backup document: expected a list of user records"))
		return
	}

	var doc []models.UserBackup
	if err := json.Unmarshal(data, &doc); err != nil {
		log.Error("invalid backup document", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid backup document: expected a list of user records"))
		return
	}

	if err := h.service.Restore(r.Context(), doc); err != nil {
		log.Error("failed to restore dataset", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error(err.Error()))
		return
	}

	log.Info("dataset restored", slog.Int("users", len(doc)))
	render.JSON(w, r, response.Success())
}
