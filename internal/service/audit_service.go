// FILE: internal/service/audit_service.go
package service

import (
	"context"
	"encoding/json"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"trupilot-gateway/internal/dto"
	"trupilot-gateway/internal/pkg/logger"
)

// IAuditService drains the activity topic into the system log so
// operators can reconstruct what a session did without any database.
type IAuditService interface {
	Consume(ctx context.Context) error
}

type auditService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	logger    logger.ILogger
}

func NewAuditService(pubSub *gochannel.GoChannel, topicName string, log logger.ILogger) IAuditService {
	return &auditService{
		pubSub:    pubSub,
		topicName: topicName,
		logger:    log,
	}
}

func (as *auditService) Consume(ctx context.Context) error {
	messages, err := as.pubSub.Subscribe(ctx, as.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			as.processMessage(msg)
		}
	}()

	return nil
}

func (as *auditService) processMessage(msg *message.Message) {
	var envelope dto.ActivityMessage
	if err := json.Unmarshal(msg.Payload, &envelope); err != nil {
		as.logger.Error("Audit", "Failed to unmarshal activity message", map[string]interface{}{"error": err.Error()})
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	details := map[string]interface{}{"occurred_at": envelope.OccurredAt}
	for k, v := range envelope.Payload {
		details[k] = v
	}
	as.logger.Info("Audit", envelope.Type, details)
	msg.Ack()
}
