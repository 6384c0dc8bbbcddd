package service

import (
	"context"
	"encoding/json"

	"blog-publishing-be/internal/dto"
	"blog-publishing-be/internal/pkg/logger"
	"blog-publishing-be/internal/repository/specification"
	"blog-publishing-be/internal/repository/unitofwork"

	"github.com/ThreeDotsLabs/watermill/message"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService renders posts ahead of the first read so the render cache
// is warm when a reader arrives.
type consumerService struct {
	subscriber    message.Subscriber
	topicName     string
	uowFactory    unitofwork.RepositoryFactory
	renderService IRenderService
	logger        logger.ILogger
}

func NewConsumerService(
	subscriber message.Subscriber,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	renderService IRenderService,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		subscriber:    subscriber,
		topicName:     topicName,
		uowFactory:    uowFactory,
		renderService: renderService,
		logger:        log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishRenderPostMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("ConsumerService", "Failed to unmarshal message", map[string]interface{}{
			"message_id": msg.UUID,
			"error":      err.Error(),
		})
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)
	post, err := uow.PostRepository().FindOne(ctx, specification.ByID{ID: payload.PostId})
	if err != nil {
		cs.logger.Error("ConsumerService", "Failed to load post", map[string]interface{}{
			"post_id": payload.PostId.String(),
			"error":   err.Error(),
		})
		msg.Nack()
		return
	}
	if post == nil {
		// deleted before we got to it
		msg.Ack()
		return
	}

	rendered := cs.renderService.Render(ctx, post)
	cs.logger.Debug("ConsumerService", "Post render warmed", map[string]interface{}{
		"post_id": post.Id.String(),
		"mode":    string(rendered.Mode),
		"blocks":  len(rendered.Blocks),
	})
	msg.Ack()
}
