package rabbitmq

import (
	"fmt"

	"github.com/streadway/amqp"
)

// Exchange имя обменника событий аренды.
const Exchange = "rentals"

// Ключи маршрутизации событий.
const (
	RoutingKeyBooked = "rental.booked"
	RoutingKeyStatus = "rental.status"
)

// SetupChannel открывает канал и объявляет обменник и очереди событий аренды.
func SetupChannel(conn *amqp.Connection) (*amqp.Channel, error) {
	const op = "rabbitmq.SetupChannel"
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	err = ch.ExchangeDeclare(
		Exchange,
		"direct",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	for _, q := range []struct {
		name       string
		routingKey string
	}{
		{"rentals.booked", RoutingKeyBooked},
		{"rentals.status", RoutingKeyStatus},
	} {
		_, err = ch.QueueDeclare(
			q.name,
			true,
			false,
			false,
			false,
			nil,
		)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if err = ch.QueueBind(q.name, q.routingKey, Exchange, false, nil); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}
	return ch, nil
}
