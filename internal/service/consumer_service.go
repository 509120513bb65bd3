package service

import (
	"context"
	"encoding/json"
	"time"

	"personal-notes-be/internal/dto"
	"personal-notes-be/internal/entity"
	"personal-notes-be/internal/pkg/logger"
	"personal-notes-be/internal/repository/unitofwork"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains the audit bus and persists every domain event to
// the audit_logs table. It runs for the lifetime of the process.
type consumerService struct {
	subscriber message.Subscriber
	topic      string
	uowFactory unitofwork.RepositoryFactory
	log        logger.ILogger
}

func NewConsumerService(
	subscriber message.Subscriber,
	topic string,
	uowFactory unitofwork.RepositoryFactory,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		subscriber: subscriber,
		topic:      topic,
		uowFactory: uowFactory,
		log:        log,
	}
}

func (s *consumerService) Consume(ctx context.Context) error {
	messages, err := s.subscriber.Subscribe(ctx, s.topic)
	if err != nil {
		return err
	}

	for msg := range messages {
		s.handle(ctx, msg)
		msg.Ack()
	}

	return nil
}

func (s *consumerService) handle(ctx context.Context, msg *message.Message) {
	var evt dto.AuditEventMessage
	if err := json.Unmarshal(msg.Payload, &evt); err != nil {
		s.log.Warn("audit", "Dropping malformed audit message", map[string]interface{}{
			"error":      err.Error(),
			"message_id": msg.UUID,
		})
		return
	}

	occurredAt := evt.OccurredAt
	if occurredAt.IsZero() {
		occurredAt = time.Now()
	}

	record := &entity.AuditLog{
		Id:         uuid.New(),
		EventType:  evt.EventType,
		ActorId:    evt.ActorId,
		Details:    evt.Details,
		OccurredAt: occurredAt,
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.AuditLogRepository().Create(ctx, record); err != nil {
		s.log.Error("audit", "Failed to persist audit event", map[string]interface{}{
			"error":      err.Error(),
			"event_type": evt.EventType,
		})
	}
}
