// Package smtp содержит почтовый транспорт сервиса рассылки уведомлений.
package smtp

import "io"

// Client — минимальная поверхность SMTP-клиента, которой пользуется сервис
// рассылки. Повторяет одноименные методы net/smtp.Client, что позволяет
// подменять клиента в тестах.
type Client interface {
	Mail(from string) error
	Rcpt(to string) error
	Data() (io.WriteCloser, error)
	Quit() error
	Close() error
}

// TransportInterface открывает SMTP-соединения и сообщает адрес отправителя.
type TransportInterface interface {
	Connect() (Client, error)
	GetSMTPUser() string
}
