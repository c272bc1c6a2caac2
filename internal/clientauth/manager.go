package clientauth

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/sync/singleflight"

	"github.com/magabrotheeeer/school-fees-platform/internal/config"
	"github.com/magabrotheeeer/school-fees-platform/internal/lib/sl"
)

// activityWindow окно, внутри которого повторная активность пользователя
// не приводит к новой проверке токена.
const activityWindow = 60 * time.Second

// refreshResponse плоский ответ эндпоинта /refresh.
type refreshResponse struct {
	Token   string `json:"token"`
	Message string `json:"message"`
}

// Manager следит за сроком действия JWT и упреждающе обновляет его через
// эндпоинт /refresh. Все публичные методы безопасны для конкурентного
// вызова и никогда не возвращают ошибку: неудачное обновление означает,
// что старый токен остается на месте до следующей проверки.
type Manager struct {
	store    TokenStore
	mirror   *CookieMirror
	notifier *Notifier
	client   *http.Client
	log      *slog.Logger

	refreshURL string
	threshold  time.Duration
	interval   time.Duration
	maxRetries int

	onLogout func()

	group      singleflight.Group
	refreshing atomic.Bool

	activityMu   sync.Mutex
	lastActivity time.Time

	mu     sync.Mutex
	cancel context.CancelFunc
}

// New создает менеджер токенов. Пустой адрес API означает, что обновление
// не настроено: Start в этом случае ничего не запускает.
func New(cfg config.TokenManager, env string, store TokenStore, onLogout func(), log *slog.Logger) (*Manager, error) {
	var refreshURL string
	var mirror *CookieMirror
	client := &http.Client{Timeout: 10 * time.Second}

	if cfg.APIAddress != "" {
		refreshURL = strings.TrimRight(cfg.APIAddress, "/") + "/api/v1/refresh"
		m, err := NewCookieMirror(cfg.APIAddress, env)
		if err != nil {
			return nil, err
		}
		mirror = m
		client.Jar = m.Jar()
	}

	return &Manager{
		store:      store,
		mirror:     mirror,
		notifier:   NewNotifier(),
		client:     client,
		log:        log,
		refreshURL: refreshURL,
		threshold:  cfg.RefreshThreshold,
		interval:   cfg.CheckInterval,
		maxRetries: cfg.MaxRetries,
		onLogout:   onLogout,
	}, nil
}

// Subscribe добавляет подписчика на уведомления об изменении авторизации.
func (m *Manager) Subscribe(fn func()) {
	m.notifier.Subscribe(fn)
}

// Start запускает фоновую проверку токена: немедленно и далее каждые
// interval. Повторный вызов перезапускает цикл. Если эндпоинт обновления
// не настроен, метод ничего не делает.
func (m *Manager) Start() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	if m.refreshURL == "" {
		m.log.Info("token refresh endpoint is not configured, manager is idle")
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel

	go func() {
		m.CheckAndRefresh(ctx)

		ticker := time.NewTicker(m.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				m.CheckAndRefresh(ctx)
			}
		}
	}()
}

// Stop останавливает фоновую проверку. Уже начатый обмен токена не
// прерывается и доводится до конца. Повторный вызов безопасен.
func (m *Manager) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
}

// CheckAndRefresh проверяет срок действия токена и при необходимости
// обновляет его. Возвращает true, если токен действителен (свежий или
// только что обновленный). Отсутствие токена не считается поводом для
// обновления. Нечитаемый токен обновляется как истекающий.
func (m *Manager) CheckAndRefresh(ctx context.Context) bool {
	token, ok := m.store.Token()
	if !ok {
		return false
	}

	remaining, ok := tokenTimeRemaining(token)
	if ok && remaining > m.threshold {
		return true
	}

	return m.Refresh(ctx)
}

// Refresh обновляет токен через эндпоинт /refresh. Конкурентные вызовы
// объединяются в один сетевой запрос, все получают общий результат.
func (m *Manager) Refresh(ctx context.Context) bool {
	result, _, _ := m.group.Do("refresh", func() (any, error) {
		m.refreshing.Store(true)
		defer m.refreshing.Store(false)
		// Обмен отвязан от контекста первого вызова: отмена тикера через
		// Stop не обрывает запрос, объединенные вызовы дожидаются результата.
		return m.perform(context.WithoutCancel(ctx)), nil
	})
	return result.(bool)
}

// Refreshing сообщает, идет ли обновление токена прямо сейчас.
func (m *Manager) Refreshing() bool {
	return m.refreshing.Load()
}

// RefreshOnActivity вызывается при активности пользователя. Внутри окна
// троттлинга сразу возвращает true, не трогая токен; иначе выполняет
// условную проверку с обновлением.
func (m *Manager) RefreshOnActivity(ctx context.Context) bool {
	m.activityMu.Lock()
	if time.Since(m.lastActivity) < activityWindow {
		m.activityMu.Unlock()
		return true
	}
	m.lastActivity = time.Now()
	m.activityMu.Unlock()

	return m.CheckAndRefresh(ctx)
}

// TokenTimeRemaining возвращает оставшееся время жизни токена.
// ok=false, если токена нет или из него не читается срок действия.
func (m *Manager) TokenTimeRemaining() (time.Duration, bool) {
	token, ok := m.store.Token()
	if !ok {
		return 0, false
	}
	return tokenTimeRemaining(token)
}

// perform выполняет один обмен токена. 401 означает, что токен больше не
// подлежит обновлению: единственный путь принудительного разлогина.
// Прочие ошибки не трогают старый токен, следующая проверка повторит обмен.
func (m *Manager) perform(ctx context.Context) bool {
	token, ok := m.store.Token()
	if !ok {
		return false
	}

	attempts := m.maxRetries
	if attempts < 1 {
		attempts = 1
	}

	for attempt := 1; attempt <= attempts; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.refreshURL, nil)
		if err != nil {
			m.log.Error("failed to build refresh request", sl.Err(err))
			return false
		}
		req.Header.Set("Authorization", "Bearer "+token)

		resp, err := m.client.Do(req)
		if err != nil {
			m.log.Error("refresh request failed", slog.Int("attempt", attempt), sl.Err(err))
			continue
		}

		switch resp.StatusCode {
		case http.StatusOK:
			var body refreshResponse
			err := json.NewDecoder(resp.Body).Decode(&body)
			_ = resp.Body.Close()
			if err != nil || body.Token == "" {
				m.log.Error("failed to decode refresh response", sl.Err(err))
				return false
			}
			m.store.SetToken(body.Token)
			if m.mirror != nil {
				m.mirror.Set(body.Token)
			}
			m.notifier.Notify()
			m.log.Info("token refreshed")
			return true
		case http.StatusUnauthorized:
			_ = resp.Body.Close()
			m.log.Info("refresh rejected, logging out")
			m.forceLogout()
			return false
		default:
			_ = resp.Body.Close()
			m.log.Error("unexpected refresh status", slog.Int("status", resp.StatusCode), slog.Int("attempt", attempt))
		}
	}
	return false
}

// forceLogout очищает слот токена и зеркальную cookie, уведомляет
// подписчиков один раз и вызывает колбэк разлогина.
func (m *Manager) forceLogout() {
	m.store.Clear()
	if m.mirror != nil {
		m.mirror.Clear()
	}
	m.notifier.Notify()
	if m.onLogout != nil {
		m.onLogout()
	}
}

// tokenTimeRemaining читает exp из токена без проверки подписи: клиент
// не знает секрета сервера и доверяет только сроку действия.
func tokenTimeRemaining(token string) (time.Duration, bool) {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return 0, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return 0, false
	}
	remaining := time.Until(exp.Time)
	if remaining < 0 {
		remaining = 0
	}
	return remaining, true
}
