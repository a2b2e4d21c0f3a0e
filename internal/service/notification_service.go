package service

import (
	"context"
	"fmt"

	"github.com/dhanushgc/HireMind/internal/constant"
	"github.com/dhanushgc/HireMind/internal/pkg/logger"
	internalWS "github.com/dhanushgc/HireMind/internal/websocket"
	"github.com/dhanushgc/HireMind/pkg/events"
	pktNats "github.com/dhanushgc/HireMind/pkg/nats" // Renamed to avoid collision
)

const notifierDurable = "interview-ws-notifier"

// NotificationDelivery defines how to push real-time updates.
// Implemented by the WebSocket Hub.
type NotificationDelivery interface {
	Send(update internalWS.Update)
}

// NotificationService fans interview events out to the session's watchers.
// Fed by NATS when available, otherwise directly through Deliver.
type NotificationService struct {
	subscriber *pktNats.Subscriber
	delivery   NotificationDelivery
	logger     logger.ILogger
}

func NewNotificationService(sub *pktNats.Subscriber, delivery NotificationDelivery, log logger.ILogger) *NotificationService {
	return &NotificationService{
		subscriber: sub,
		delivery:   delivery,
		logger:     log,
	}
}

// Start begins listening to the event bus. A no-op without a subscriber.
func (s *NotificationService) Start(ctx context.Context) {
	if s.subscriber == nil {
		s.logger.Info("NotificationService", "No event bus configured, delivering events locally", nil)
		return
	}

	subject := pktNats.Subject(">")
	if err := s.subscriber.Subscribe(ctx, subject, notifierDurable, s.handleEvent); err != nil {
		s.logger.Error("NotificationService", "Failed to start notification subscriber", map[string]interface{}{"error": err.Error()})
		return
	}
	s.logger.Info("NotificationService", fmt.Sprintf("Notification service started, listening to %s", subject), nil)
}

// Deliver pushes an event straight to the hub.
func (s *NotificationService) Deliver(event events.Event) {
	_ = s.handleEvent(context.Background(), event)
}

func (s *NotificationService) handleEvent(_ context.Context, event events.Event) error {
	payload := event.Payload()

	candidateId, _ := payload["candidate_id"].(string)
	jobId, _ := payload["job_id"].(string)
	if candidateId == "" || jobId == "" {
		s.logger.Warn("NotificationService", "Event without session coordinates", map[string]interface{}{"type": event.EventType()})
		return nil
	}

	sessionKey := constant.SessionKey(candidateId, jobId)
	data := make(map[string]interface{}, len(payload)+1)
	for k, v := range payload {
		data[k] = v
	}
	data["occurred_at"] = event.Timestamp()

	if s.delivery != nil {
		s.delivery.Send(internalWS.Update{
			Type:       event.EventType(),
			SessionKey: sessionKey,
			Data:       data,
		})
	}

	s.logger.Debug("NotificationService", "Event delivered", map[string]interface{}{
		"type":        event.EventType(),
		"session_key": sessionKey,
	})
	return nil
}
