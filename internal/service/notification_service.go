package service

import (
	"context"
	"encoding/json"

	"personal-notes-be/internal/pkg/logger"
	pktNats "personal-notes-be/pkg/nats"
)

type INotificationService interface {
	Run(ctx context.Context) error
}

// notificationService tails the NATS event stream and records everything to
// an isolated log file, keeping the main application log clean.
type notificationService struct {
	subscriber *pktNats.Subscriber
	log        logger.ILogger
}

func NewNotificationService(subscriber *pktNats.Subscriber, log logger.ILogger) INotificationService {
	return &notificationService{
		subscriber: subscriber,
		log:        log,
	}
}

func (s *notificationService) Run(ctx context.Context) error {
	if s.subscriber == nil {
		// NATS is optional in development; nothing to tail
		<-ctx.Done()
		return ctx.Err()
	}

	return s.subscriber.Subscribe(ctx, "notification-logger", func(subject string, data []byte) {
		details := map[string]interface{}{"subject": subject}
		var payload map[string]interface{}
		if err := json.Unmarshal(data, &payload); err == nil {
			details["payload"] = payload
		}
		s.log.Info("notification", "Event received", details)
	})
}
