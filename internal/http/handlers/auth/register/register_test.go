package register

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/subtrack-app/subtrack/internal/models"
	authservice "github.com/subtrack-app/subtrack/internal/services/auth"
	"github.com/subtrack-app/subtrack/internal/session"
)

// MockService реализует интерфейс register.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Register(ctx context.Context, username, password string) (*models.User, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// MockSessions реализует интерфейс register.Sessions
type MockSessions struct {
	mock.Mock
}

func (m *MockSessions) Create(userUID, username string) (string, error) {
	args := m.Called(userUID, username)
	return args.String(0), args.Error(1)
}

func (m *MockSessions) SetCookie(w http.ResponseWriter, value string) {
	m.Called(w, value)
	http.SetCookie(w, &http.Cookie{Name: session.CookieName, Value: value})
}

func TestRegisterHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		requestBody    interface{}
		setupMocks     func(*MockService, *MockSessions)
		expectedStatus int
		expectedBody   string
		expectCookie   bool
	}{
		{
			name:        "успешная регистрация",
			requestBody: Request{Username: "alice", Password: "password123"},
			setupMocks: func(s *MockService, sess *MockSessions) {
				s.On("Register", mock.Anything, "alice", "password123").
					Return(&models.User{UID: "uid-1", Username: "alice"}, nil)
				sess.On("Create", "uid-1", "alice").Return("cookie-value", nil)
				sess.On("SetCookie", mock.Anything, "cookie-value").Return()
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `"success":true`,
			expectCookie:   true,
		},
		{
			name:           "некорректный JSON",
			requestBody:    "not a json",
			setupMocks:     func(_ *MockService, _ *MockSessions) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"invalid request body"}`,
		},
		{
			name:           "короткое имя пользователя",
			requestBody:    Request{Username: "ab", Password: "password123"},
			setupMocks:     func(_ *MockService, _ *MockSessions) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `field Username must be at least 3`,
		},
		{
			name:           "короткий пароль",
			requestBody:    Request{Username: "alice", Password: "12345"},
			setupMocks:     func(_ *MockService, _ *MockSessions) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `field Password must be at least 6`,
		},
		{
			name:        "занятое имя пользователя",
			requestBody: Request{Username: "alice", Password: "password123"},
			setupMocks: func(s *MockService, _ *MockSessions) {
				s.On("Register", mock.Anything, "alice", "password123").
					Return(nil, authservice.ErrUserExists)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"Username already exists"}`,
		},
		{
			name:        "ошибка сервиса",
			requestBody: Request{Username: "alice", Password: "password123"},
			setupMocks: func(s *MockService, _ *MockSessions) {
				s.On("Register", mock.Anything, "alice", "password123").
					Return(nil, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"error":"failed to register user"}`,
		},
		{
			name:        "ошибка открытия сессии",
			requestBody: Request{Username: "alice", Password: "password123"},
			setupMocks: func(s *MockService, sess *MockSessions) {
				s.On("Register", mock.Anything, "alice", "password123").
					Return(&models.User{UID: "uid-1", Username: "alice"}, nil)
				sess.On("Create", "uid-1", "alice").Return("", errors.New("redis down"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"error":"failed to create session"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			mockSessions := new(MockSessions)
			tt.setupMocks(mockService, mockSessions)

			handler := New(logger, mockService, mockSessions)

			var body []byte
			var err error
			if str, ok := tt.requestBody.(string); ok {
				body = []byte(str)
			} else {
				body, err = json.Marshal(tt.requestBody)
				assert.NoError(t, err)
			}

			req := httptest.NewRequest(http.MethodPost, "/register", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			req = req.WithContext(context.WithValue(req.Context(), middleware.RequestIDKey, "req-id"))

			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)

			if tt.expectCookie {
				cookies := w.Result().Cookies()
				assert.NotEmpty(t, cookies)
				assert.Equal(t, session.CookieName, cookies[0].Name)
			}

			mockService.AssertExpectations(t)
			mockSessions.AssertExpectations(t)
		})
	}
}
