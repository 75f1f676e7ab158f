package session

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"strings"
)

// signer подписывает токены сессий секретным ключом, чтобы клиент
// не мог подставить чужое значение cookie.
type signer struct {
	secret []byte
}

func newSigner(secret string) *signer {
	return &signer{secret: []byte(secret)}
}

func (s *signer) mac(token string) string {
	h := hmac.New(sha256.New, s.secret)
	h.Write([]byte(token))
	return base64.RawURLEncoding.EncodeToString(h.Sum(nil))
}

// sign возвращает значение вида "<token>.<подпись>".
func (s *signer) sign(token string) string {
	return token + "." + s.mac(token)
}

// verify проверяет подпись и возвращает исходный токен.
func (s *signer) verify(value string) (string, bool) {
	token, sig, ok := strings.Cut(value, ".")
	if !ok || token == "" {
		return "", false
	}
	if !hmac.Equal([]byte(sig), []byte(s.mac(token))) {
		return "", false
	}
	return token, true
}
