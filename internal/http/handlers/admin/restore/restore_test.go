package restore

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/subtrack-app/subtrack/internal/models"
)

// MockService реализует интерфейс restore.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Restore(ctx context.Context, doc []models.UserBackup) error {
	return m.Called(ctx, doc).Error(0)
}

// multipartBody собирает multipart-запрос с файлом backup_file.
func multipartBody(t *testing.T, fieldName string, content []byte) (*bytes.Buffer, string) {
	t.Helper()

	buf := &bytes.Buffer{}
	writer := multipart.NewWriter(buf)
	part, err := writer.CreateFormFile(fieldName, "backup.json")
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	return buf, writer.FormDataContentType()
}

func TestRestoreHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	validDoc := []byte(`[
		{
			"username": "alice",
			"password_hash": "hash-a",
			"subscriptions": [
				{"name": "Netflix", "fee": 1490, "currency": "JPY", "cycle": "monthly", "payment_day": 15}
			]
		}
	]`)

	tests := []struct {
		name           string
		fieldName      string
		content        []byte
		noFile         bool
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:      "успешное восстановление",
			fieldName: "backup_file",
			content:   validDoc,
			setupMock: func(m *MockService) {
				m.On("Restore", mock.Anything, mock.MatchedBy(func(doc []models.UserBackup) bool {
					return len(doc) == 1 && doc[0].Username == "alice" &&
						len(doc[0].Subscriptions) == 1 && doc[0].Subscriptions[0].Name == "Netflix"
				})).Return(nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"success":true`,
		},
		{
			name:           "файл не приложен",
			noFile:         true,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"backup_file is required"}`,
		},
		{
			name:           "неверное имя поля",
			fieldName:      "wrong_field",
			content:        validDoc,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"backup_file is required"}`,
		},
		{
			name:           "нечитаемый JSON",
			fieldName:      "backup_file",
			content:        []byte(`{broken`),
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"invalid backup document: expected a list of user records"}`,
		},
		{
			name:           "JSON-объект вместо списка",
			fieldName:      "backup_file",
			content:        []byte(`{"username": "alice"}`),
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"invalid backup document: expected a list of user records"}`,
		},
		{
			name:           "JSON null вместо списка",
			fieldName:      "backup_file",
			content:        []byte(`null`),
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"invalid backup document: expected a list of user records"}`,
		},
		{
			name:           "JSON-скаляр вместо списка",
			fieldName:      "backup_file",
			content:        []byte(`42`),
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"invalid backup document: expected a list of user records"}`,
		},
		{
			name:      "пустой список стирает данные",
			fieldName: "backup_file",
			content:   []byte(`[]`),
			setupMock: func(m *MockService) {
				m.On("Restore", mock.Anything, []models.UserBackup{}).Return(nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"success":true`,
		},
		{
			name:      "ошибка восстановления",
			fieldName: "backup_file",
			content:   validDoc,
			setupMock: func(m *MockService) {
				m.On("Restore", mock.Anything, mock.Anything).Return(errors.New("tx failed"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"error":"tx failed"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			var req *http.Request
			if tt.noFile {
				req = httptest.NewRequest(http.MethodPost, "/admin/restore", nil)
			} else {
				body, contentType := multipartBody(t, tt.fieldName, tt.content)
				req = httptest.NewRequest(http.MethodPost, "/admin/restore", body)
				req.Header.Set("Content-Type", contentType)
			}
			req = req.WithContext(context.WithValue(req.Context(), middleware.RequestIDKey, "req-id"))

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)

			mockService.AssertExpectations(t)
		})
	}
}
