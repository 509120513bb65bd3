package service

import (
	"context"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
)

type IPublisherService interface {
	Publish(ctx context.Context, payload []byte) error
}

type publisherService struct {
	topic     string
	publisher message.Publisher
}

func NewPublisherService(topic string, publisher message.Publisher) IPublisherService {
	return &publisherService{
		topic:     topic,
		publisher: publisher,
	}
}

func (s *publisherService) Publish(ctx context.Context, payload []byte) error {
	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.SetContext(ctx)
	return s.publisher.Publish(s.topic, msg)
}
