package clientauth

import "sync"

// Notifier рассылает уведомления об изменении состояния авторизации
// явному списку подписчиков.
type Notifier struct {
	mu          sync.Mutex
	subscribers []func()
}

// NewNotifier создает пустой Notifier.
func NewNotifier() *Notifier {
	return &Notifier{}
}

// Subscribe добавляет подписчика. Отписки нет: список живет столько же,
// сколько и менеджер токенов.
func (n *Notifier) Subscribe(fn func()) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.subscribers = append(n.subscribers, fn)
}

// Notify синхронно вызывает всех подписчиков.
func (n *Notifier) Notify() {
	n.mu.Lock()
	subscribers := make([]func(), len(n.subscribers))
	copy(subscribers, n.subscribers)
	n.mu.Unlock()

	for _, fn := range subscribers {
		fn()
	}
}
