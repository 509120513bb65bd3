package service

import (
	"context"
	"encoding/json"
	"time"

	"personal-notes-be/internal/dto"
	"personal-notes-be/internal/pkg/logger"
	"personal-notes-be/pkg/events"
	pktNats "personal-notes-be/pkg/nats"

	"github.com/google/uuid"
)

// eventEmitter fans a domain event out to the internal audit bus and, best
// effort, to NATS. Emitting never fails the calling request.
type eventEmitter struct {
	audit   IPublisherService
	natsPub *pktNats.Publisher
	log     logger.ILogger
}

func newEventEmitter(audit IPublisherService, natsPub *pktNats.Publisher, log logger.ILogger) *eventEmitter {
	return &eventEmitter{
		audit:   audit,
		natsPub: natsPub,
		log:     log,
	}
}

func (e *eventEmitter) Emit(ctx context.Context, eventType string, actorId *uuid.UUID, details map[string]interface{}) {
	now := time.Now()

	msg := dto.AuditEventMessage{
		EventType:  eventType,
		ActorId:    actorId,
		Details:    details,
		OccurredAt: now,
	}
	if payload, err := json.Marshal(msg); err == nil {
		if err := e.audit.Publish(ctx, payload); err != nil {
			e.log.Warn("events", "Failed to publish audit event", map[string]interface{}{
				"error":      err.Error(),
				"event_type": eventType,
			})
		}
	}

	if e.natsPub == nil {
		return
	}
	data := map[string]interface{}{}
	for k, v := range details {
		data[k] = v
	}
	if actorId != nil {
		data["user_id"] = *actorId
	}
	evt := events.BaseEvent{
		Type:       eventType,
		Data:       data,
		OccurredAt: now,
	}
	if err := e.natsPub.Publish(ctx, evt); err != nil {
		e.log.Warn("events", "Failed to mirror event to NATS", map[string]interface{}{
			"error":      err.Error(),
			"event_type": eventType,
		})
	}
}
