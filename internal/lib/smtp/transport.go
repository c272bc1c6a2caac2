package smtp

import (
	"crypto/tls"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/smtp"

	"github.com/magabrotheeeer/school-fees-platform/internal/config"
	"github.com/magabrotheeeer/school-fees-platform/internal/lib/sl"
)

// Transport открывает соединения с почтовым сервером, через который
// платформа рассылает уведомления родителям.
type Transport struct {
	cfg *config.Config
	log *slog.Logger
}

// NewTransport создает транспорт с настройками SMTP из конфигурации платформы.
func NewTransport(cfg *config.Config, log *slog.Logger) *Transport {
	return &Transport{cfg: cfg, log: log}
}

// Connect устанавливает соединение с почтовым сервером: TCP, затем
// обязательный STARTTLS и PLAIN-аутентификация. Возвращает клиент,
// готовый к отправке письма.
func (t *Transport) Connect() (Client, error) {
	addr := net.JoinHostPort(t.cfg.SMTPHost, t.cfg.SMTPPort)

	conn, err := net.Dial("tcp", addr)
	if err != nil {
		t.log.Error("mail server is unreachable", sl.Err(err))
		return nil, fmt.Errorf("dial mail server %s: %w", addr, err)
	}

	client, err := smtp.NewClient(conn, t.cfg.SMTPHost)
	if err != nil {
		t.log.Error("smtp handshake failed", sl.Err(err))
		_ = conn.Close()
		return nil, fmt.Errorf("smtp handshake: %w", err)
	}

	if err := t.secure(client); err != nil {
		_ = client.Close()
		return nil, err
	}

	auth := smtp.PlainAuth("", t.cfg.SMTPUser, t.cfg.SMTPPass, t.cfg.SMTPHost)
	if err := client.Auth(auth); err != nil {
		t.log.Error("smtp auth rejected", sl.Err(err))
		_ = client.Close()
		return nil, fmt.Errorf("smtp auth: %w", err)
	}

	return &mailClient{client: client}, nil
}

// secure переводит соединение в TLS. Сервер без STARTTLS не используется.
func (t *Transport) secure(client *smtp.Client) error {
	if ok, _ := client.Extension("STARTTLS"); !ok {
		t.log.Error("mail server does not offer STARTTLS")
		return fmt.Errorf("mail server does not offer STARTTLS")
	}
	tlsConfig := &tls.Config{
		ServerName: t.cfg.SMTPHost,
		MinVersion: tls.VersionTLS12,
	}
	if err := client.StartTLS(tlsConfig); err != nil {
		t.log.Error("failed to start TLS", sl.Err(err))
		return fmt.Errorf("start tls: %w", err)
	}
	return nil
}

// GetSMTPUser возвращает адрес отправителя уведомлений.
func (t *Transport) GetSMTPUser() string {
	return t.cfg.SMTPUser
}

// mailClient адаптирует *smtp.Client к интерфейсу Client.
type mailClient struct {
	client *smtp.Client
}

func (c *mailClient) Mail(from string) error        { return c.client.Mail(from) }
func (c *mailClient) Rcpt(to string) error          { return c.client.Rcpt(to) }
func (c *mailClient) Data() (io.WriteCloser, error) { return c.client.Data() }
func (c *mailClient) Quit() error                   { return c.client.Quit() }
func (c *mailClient) Close() error                  { return c.client.Close() }
