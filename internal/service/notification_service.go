package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/crisis-support-service/internal/config"
	"github.com/spec-kit/crisis-support-service/internal/domain"
	"github.com/spec-kit/crisis-support-service/internal/events"
)

// NotificationService delivers alerts for domain events. Alerts go to a
// Redis channel that frontends subscribe to; every send is best-effort.
type NotificationService struct {
	dispatcher events.Dispatcher
	redis      *redis.Client
	logger     *zap.Logger
	cfg        config.NotificationConfig
}

// NewNotificationService creates the service. The Redis client may be
// nil, in which case alerts only reach the log.
func NewNotificationService(dispatcher events.Dispatcher, redisClient *redis.Client, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		redis:      redisClient,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventCrisisRecorded, n.handleCrisisRecorded)
	n.dispatcher.Subscribe(events.EventCrisisResolved, n.handleCrisisResolved)
	n.dispatcher.Subscribe(events.EventSupportStatusChanged, n.handleSupportStatusChanged)
}

// NotifySupportRequested publishes an SOS/crisis alert.
func (n *NotificationService) NotifySupportRequested(ctx context.Context, childID, requestID, kind string, at time.Time) error {
	n.logger.Info("SupportRequested",
		zap.String("child_id", childID),
		zap.String("request_id", requestID),
		zap.String("kind", kind))
	return n.publishAlert(ctx, map[string]any{
		"type":       "support_requested",
		"child_id":   childID,
		"request_id": requestID,
		"kind":       kind,
		"at":         at,
	})
}

// NotifyRoutineChanged publishes a routine-change alert for risky events.
func (n *NotificationService) NotifyRoutineChanged(ctx context.Context, childID, eventID string, risk domain.RiskLevel, at time.Time) error {
	n.logger.Info("RoutineChanged",
		zap.String("child_id", childID),
		zap.String("event_id", eventID),
		zap.String("risk", string(risk)))
	return n.publishAlert(ctx, map[string]any{
		"type":     "routine_changed",
		"child_id": childID,
		"event_id": eventID,
		"risk":     risk,
		"at":       at,
	})
}

func (n *NotificationService) handleCrisisRecorded(ctx context.Context, event events.Event) error {
	n.logger.Info("CrisisRecorded", zap.String("child_id", event.ChildID), zap.Any("payload", event.Payload))
	n.sendEmailNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleCrisisResolved(ctx context.Context, event events.Event) error {
	n.logger.Info("CrisisResolved", zap.String("child_id", event.ChildID), zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) handleSupportStatusChanged(ctx context.Context, event events.Event) error {
	n.logger.Info("SupportStatusChanged", zap.String("child_id", event.ChildID), zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) publishAlert(ctx context.Context, alert map[string]any) error {
	if n.redis == nil || strings.TrimSpace(n.cfg.RedisChannel) == "" {
		return nil
	}
	payload, err := json.Marshal(alert)
	if err != nil {
		return err
	}
	return n.redis.Publish(ctx, n.cfg.RedisChannel, payload).Err()
}

func (n *NotificationService) sendEmailNotificationStub(ctx context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.EmailFrom) == "" {
		return
	}
	n.logger.Debug("sendEmailNotificationStub",
		zap.String("from", n.cfg.EmailFrom),
		zap.String("child_id", event.ChildID),
		zap.String("event_type", string(event.Type)))
}

func (n *NotificationService) sendWebhookNotificationStub(ctx context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookNotificationStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.String("child_id", event.ChildID),
		zap.String("event_type", string(event.Type)))
}
