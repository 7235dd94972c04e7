package eventqueue

import (
	"context"
	"docbook-service/internal/app/contracts"
	"docbook-service/internal/app/models"
	"docbook-service/internal/pkg/constvars"
	"docbook-service/internal/pkg/exceptions"
	"docbook-service/internal/pkg/utils"
	"errors"
	"fmt"
	"sync"

	"github.com/goccy/go-json"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// confirmBufferSize bounds confirmations that arrive after their Publish
// gave up waiting. The next Publish drains them.
const confirmBufferSize = 64

var (
	errNotConfirmed      = errors.New("message not confirmed")
	errConfirmChanClosed = errors.New("confirm channel closed")
	errConfirmOutOfOrder = errors.New("confirmation arrived out of order")
)

type publishChannel interface {
	GetNextPublishSeqNo() uint64
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// Publisher sends appointment lifecycle events to a durable queue and waits
// for the broker to confirm each one.
type Publisher struct {
	ch        publishChannel
	queueName string
	confirms  <-chan amqp.Confirmation
	log       *zap.Logger
	mu        sync.Mutex
}

func NewPublisher(conn *amqp.Connection, queueName string, log *zap.Logger) (*Publisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}

	_, err = ch.QueueDeclare(
		queueName, // name
		true,      // durable
		false,     // autoDelete
		false,     // exclusive
		false,     // noWait
		nil,       // args
	)
	if err != nil {
		return nil, err
	}

	if err := ch.Confirm(false); err != nil {
		return nil, err
	}

	return newPublisher(ch, ch.NotifyPublish(make(chan amqp.Confirmation, confirmBufferSize)), queueName, log), nil
}

func newPublisher(ch publishChannel, confirms <-chan amqp.Confirmation, queueName string, log *zap.Logger) *Publisher {
	return &Publisher{
		ch:        ch,
		queueName: queueName,
		confirms:  confirms,
		log:       log,
	}
}

func (p *Publisher) Publish(ctx context.Context, message *models.AppointmentEventMessage) error {
	requestID := utils.GetRequestID(ctx)
	p.log.Debug("eventqueue.Publisher.Publish called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEventKey, message.Type),
		zap.String(constvars.LoggingAppointmentIDKey, message.AppointmentID),
	)

	body, err := json.Marshal(message)
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	msg := amqp.Publishing{
		ContentType:  constvars.MIMEApplicationJSON,
		Type:         message.Type,
		MessageId:    message.AppointmentID + ":" + message.Type,
		Timestamp:    message.OccurredAt,
		Body:         body,
		DeliveryMode: amqp.Persistent,
	}

	deliveryTag := p.ch.GetNextPublishSeqNo()
	if err := p.ch.PublishWithContext(ctx, "", p.queueName, false, false, msg); err != nil {
		return exceptions.ErrRabbitMQPublishMessage(err, p.queueName)
	}

	err = p.waitConfirm(ctx, deliveryTag)
	if err != nil {
		return err
	}

	p.log.Info("eventqueue.Publisher.Publish succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEventKey, message.Type),
		zap.String(constvars.LoggingQueueNameKey, p.queueName),
	)
	return nil
}

// waitConfirm reads confirmations until the one for deliveryTag arrives.
// Late confirmations of earlier messages are discarded.
func (p *Publisher) waitConfirm(ctx context.Context, deliveryTag uint64) error {
	for {
		select {
		case confirmed, ok := <-p.confirms:
			if !ok {
				return exceptions.ErrRabbitMQPublishMessage(errConfirmChanClosed, p.queueName)
			}
			if confirmed.DeliveryTag < deliveryTag {
				p.log.Debug("eventqueue.Publisher.waitConfirm discarded stale confirmation",
					zap.Uint64("delivery_tag", confirmed.DeliveryTag),
					zap.Uint64("expected_delivery_tag", deliveryTag),
				)
				continue
			}
			if confirmed.DeliveryTag > deliveryTag {
				return exceptions.ErrRabbitMQPublishMessage(fmt.Errorf("%w: got %d, want %d", errConfirmOutOfOrder, confirmed.DeliveryTag, deliveryTag), p.queueName)
			}
			if !confirmed.Ack {
				return exceptions.ErrRabbitMQPublishMessage(errNotConfirmed, p.queueName)
			}
			return nil
		case <-ctx.Done():
			return exceptions.ErrRabbitMQPublishMessage(ctx.Err(), p.queueName)
		}
	}
}

type noopPublisher struct{}

// NewNoopPublisher is used when event publishing is disabled.
func NewNoopPublisher() contracts.AppointmentEventPublisher {
	return noopPublisher{}
}

func (noopPublisher) Publish(context.Context, *models.AppointmentEventMessage) error {
	return nil
}
