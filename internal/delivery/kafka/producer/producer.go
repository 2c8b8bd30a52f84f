package producer

import (
	"context"
	"encoding/json"
	"time"

	"github.com/IBM/sarama"

	kafka "github.com/tdnguyen2104/virtual-queue/internal/delivery/kafka"
	"github.com/tdnguyen2104/virtual-queue/pkg/logger"
)

type Producer interface {
	PublishBookingCreated(ctx context.Context, event kafka.BookingCreatedEvent) error
	PublishBookingServed(ctx context.Context, event kafka.BookingServedEvent) error
	Close() error
}

type implProducer struct {
	l    logger.Logger
	prod sarama.SyncProducer
}

func NewProducer(prod sarama.SyncProducer, l logger.Logger) Producer {
	return &implProducer{
		l:    l,
		prod: prod,
	}
}

func (p *implProducer) PublishBookingCreated(ctx context.Context, event kafka.BookingCreatedEvent) error {
	event.Timestamp = time.Now()
	val, err := json.Marshal(event)
	if err != nil {
		p.l.Errorf(ctx, "delivery.kafka.producer.PublishBookingCreated: %v", err)
		return err
	}

	msg := &sarama.ProducerMessage{
		Topic: kafka.TopicBookingCreated,
		Key:   sarama.StringEncoder(event.ServiceID), // Partition by service_id for ordering
		Value: sarama.ByteEncoder(val),
		Headers: []sarama.RecordHeader{
			{
				Key:   []byte("timestamp"),
				Value: []byte(time.Now().Format(time.RFC3339)),
			},
		},
	}

	_, _, err = p.prod.SendMessage(msg)
	return err
}

func (p *implProducer) PublishBookingServed(ctx context.Context, event kafka.BookingServedEvent) error {
	event.Timestamp = time.Now()
	val, err := json.Marshal(event)
	if err != nil {
		p.l.Errorf(ctx, "delivery.kafka.producer.PublishBookingServed: %v", err)
		return err
	}

	msg := &sarama.ProducerMessage{
		Topic: kafka.TopicBookingServed,
		Key:   sarama.StringEncoder(event.ServiceID), // Partition by service_id for ordering
		Value: sarama.ByteEncoder(val),
		Headers: []sarama.RecordHeader{
			{
				Key:   []byte("timestamp"),
				Value: []byte(time.Now().Format(time.RFC3339)),
			},
		},
	}

	_, _, err = p.prod.SendMessage(msg)
	return err
}

func (p *implProducer) Close() error {
	if err := p.prod.Close(); err != nil {
		return err
	}

	return nil
}
