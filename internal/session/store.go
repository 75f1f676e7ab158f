// Package session реализует серверные сессии: непрозрачный токен в cookie,
// привязка токена к пользователю живёт в redis и исчезает по TTL или logout.
package session

import (
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// CookieName — имя cookie, несущей подписанный токен сессии.
const CookieName = "subtrack_session"

// Session — привязка токена к пользователю.
type Session struct {
	UserUID  string `json:"user_uid"`
	Username string `json:"username"`
}

// Cache описывает методы кеша, в котором хранятся сессии.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// Store управляет жизненным циклом сессий.
type Store struct {
	cache  Cache
	signer *signer
	ttl    time.Duration
}

// NewStore создает Store поверх кеша. secret подписывает значения cookie.
func NewStore(cache Cache, secret string, ttl time.Duration) *Store {
	return &Store{
		cache:  cache,
		signer: newSigner(secret),
		ttl:    ttl,
	}
}

func sessionKey(token string) string {
	return "session:" + token
}

// Create выдаёт новый токен, сохраняет привязку к пользователю
// и возвращает подписанное значение для cookie.
func (s *Store) Create(userUID, username string) (string, error) {
	const op = "session.Create"
	token := uuid.New().String()
	sess := Session{UserUID: userUID, Username: username}
	if err := s.cache.Set(sessionKey(token), sess, s.ttl); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return s.signer.sign(token), nil
}

// Get проверяет подпись cookie и возвращает сессию, если привязка ещё жива.
// Подделанное или неизвестное значение трактуется как отсутствие сессии.
func (s *Store) Get(cookieValue string) (*Session, bool, error) {
	const op = "session.Get"
	token, ok := s.signer.verify(cookieValue)
	if !ok {
		return nil, false, nil
	}
	var sess Session
	found, err := s.cache.Get(sessionKey(token), &sess)
	if err != nil {
		return nil, false, fmt.Errorf("%s: %w", op, err)
	}
	if !found {
		return nil, false, nil
	}
	return &sess, true, nil
}

// Delete снимает привязку токена (logout).
func (s *Store) Delete(cookieValue string) error {
	const op = "session.Delete"
	token, ok := s.signer.verify(cookieValue)
	if !ok {
		return nil
	}
	if err := s.cache.Invalidate(sessionKey(token)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Anonymous выдаёт подписанный токен без привязки к пользователю.
// Нужен маршрутам без аутентификации, которым требуется стабильный
// ключ клиента (кеш курсов валют).
func (s *Store) Anonymous() string {
	return s.signer.sign(uuid.New().String())
}

// Token возвращает сырой токен из значения cookie, если подпись верна.
func (s *Store) Token(cookieValue string) (string, bool) {
	return s.signer.verify(cookieValue)
}

// SetCookie выставляет cookie сессии.
func (s *Store) SetCookie(w http.ResponseWriter, value string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   int(s.ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearCookie немедленно гасит cookie сессии.
func (s *Store) ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
