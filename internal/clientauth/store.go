// Package clientauth реализует клиентский менеджер жизненного цикла JWT:
// хранение токена, фоновую проверку срока действия и упреждающее обновление
// через эндпоинт /refresh.
package clientauth

import (
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"sync"
	"time"
)

// TokenStore описывает слот хранения токена.
type TokenStore interface {
	// Token возвращает текущий токен и признак его наличия.
	Token() (string, bool)
	// SetToken атомарно заменяет токен в слоте.
	SetToken(token string)
	// Clear очищает слот.
	Clear()
}

// MemoryStore потокобезопасный слот токена в памяти.
type MemoryStore struct {
	mu    sync.RWMutex
	token string
}

// NewMemoryStore создает пустой MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Token возвращает текущий токен и признак его наличия.
func (s *MemoryStore) Token() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, s.token != ""
}

// SetToken атомарно заменяет токен в слоте.
func (s *MemoryStore) SetToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
}

// Clear очищает слот.
func (s *MemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
}

// cookieLifetime время жизни зеркальной cookie с токеном.
const cookieLifetime = 5 * 24 * time.Hour

// CookieMirror зеркалирует токен в cookie jar HTTP-клиента, чтобы запросы
// к API несли токен и в заголовке, и в cookie.
type CookieMirror struct {
	jar    http.CookieJar
	apiURL *url.URL
	secure bool
}

// NewCookieMirror создает зеркало cookie для адреса API. Флаг Secure
// выставляется во всех окружениях, кроме локального.
func NewCookieMirror(apiAddress, env string) (*CookieMirror, error) {
	apiURL, err := url.Parse(apiAddress)
	if err != nil {
		return nil, err
	}
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	return &CookieMirror{
		jar:    jar,
		apiURL: apiURL,
		secure: env != "local",
	}, nil
}

// Jar возвращает cookie jar для установки в http.Client.
func (m *CookieMirror) Jar() http.CookieJar {
	return m.jar
}

// Set записывает токен в зеркальную cookie.
func (m *CookieMirror) Set(token string) {
	m.jar.SetCookies(m.apiURL, []*http.Cookie{{
		Name:     "auth_token",
		Value:    token,
		Path:     "/",
		MaxAge:   int(cookieLifetime.Seconds()),
		SameSite: http.SameSiteLaxMode,
		Secure:   m.secure,
	}})
}

// Clear удаляет зеркальную cookie.
func (m *CookieMirror) Clear() {
	m.jar.SetCookies(m.apiURL, []*http.Cookie{{
		Name:     "auth_token",
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		SameSite: http.SameSiteLaxMode,
		Secure:   m.secure,
	}})
}
