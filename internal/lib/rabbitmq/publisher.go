package rabbitmq

import (
	"encoding/json"
	"fmt"

	"github.com/streadway/amqp"
)

// NoticePublisher привязывает канал RabbitMQ к обменнику уведомлений.
// Сервисы зависят от его метода Publish, а не от *amqp.Channel напрямую.
type NoticePublisher struct {
	channel  *amqp.Channel
	exchange string
}

// NewNoticePublisher создает издателя для обменника exchange.
func NewNoticePublisher(channel *amqp.Channel, exchange string) *NoticePublisher {
	return &NoticePublisher{channel: channel, exchange: exchange}
}

// Publish публикует сообщение с указанным ключом маршрутизации.
func (p *NoticePublisher) Publish(routingKey string, payload any) error {
	return PublishMessage(p.channel, p.exchange, routingKey, payload)
}

// PublishMessage публикует сообщение в RabbitMQ.
func PublishMessage(ch *amqp.Channel, exchange string, routingkey string, message any) error {
	const op = "rabbitmq.PublishMessage"
	body, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	err = ch.Publish(
		exchange,
		routingkey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
