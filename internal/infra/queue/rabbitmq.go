package queue

import (
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	ExchangeName = "ex.contact"
	DLXName      = "ex.contact.dlx"

	LeadsQueue      = "q.leads"
	QuickCallsQueue = "q.quickcalls"
	QuickCallsDLQ   = "q.quickcalls.dlq"

	RoutingKeyLeadSubmitted = "k.lead.submitted"
	RoutingKeyQuickCall     = "k.quickcall"
)

type RabbitMQ struct {
	Conn *amqp.Connection
	Ch   *amqp.Channel
}

func NewRabbitMQ(url string) (*RabbitMQ, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("rabbitmq: dial: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("rabbitmq: open channel: %w", err)
	}

	if err := setupTopology(ch); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("rabbitmq: topology: %w", err)
	}

	return &RabbitMQ{Conn: conn, Ch: ch}, nil
}

// setupTopology declares the contact exchange, the lead event queue and
// the quick-call queue with its dead-letter queue.
func setupTopology(ch *amqp.Channel) error {
	if err := ch.ExchangeDeclare(DLXName, "direct", true, false, false, false, nil); err != nil {
		return err
	}
	if _, err := ch.QueueDeclare(QuickCallsDLQ, true, false, false, false, nil); err != nil {
		return err
	}
	if err := ch.QueueBind(QuickCallsDLQ, RoutingKeyQuickCall, DLXName, false, nil); err != nil {
		return err
	}

	if err := ch.ExchangeDeclare(ExchangeName, "direct", true, false, false, false, nil); err != nil {
		return err
	}

	if _, err := ch.QueueDeclare(LeadsQueue, true, false, false, false, nil); err != nil {
		return err
	}
	if err := ch.QueueBind(LeadsQueue, RoutingKeyLeadSubmitted, ExchangeName, false, nil); err != nil {
		return err
	}

	args := amqp.Table{
		"x-dead-letter-exchange":    DLXName,
		"x-dead-letter-routing-key": RoutingKeyQuickCall,
	}
	if _, err := ch.QueueDeclare(QuickCallsQueue, true, false, false, false, args); err != nil {
		return err
	}
	return ch.QueueBind(QuickCallsQueue, RoutingKeyQuickCall, ExchangeName, false, nil)
}

func (r *RabbitMQ) Close() {
	if r.Ch != nil {
		r.Ch.Close()
	}
	if r.Conn != nil {
		r.Conn.Close()
	}
}
