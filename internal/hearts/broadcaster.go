package hearts

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/lumilearn/quiz-runner/internal/models"
)

const heartsTopic = "lesson.hearts.changed"

// Broadcaster is the process-wide hearts channel. Every emission delivers
// the full hearts status to all current subscribers exactly once; there is
// no replay for late subscribers and no ordering guarantee across restarts.
// Last writer wins.
type Broadcaster struct {
	pubsub *gochannel.GoChannel
	logger *slog.Logger
}

// NewBroadcaster creates the in-process hearts pub/sub channel.
func NewBroadcaster(logger *slog.Logger) *Broadcaster {
	return &Broadcaster{
		pubsub: gochannel.NewGoChannel(gochannel.Config{}, watermill.NewSlogLogger(logger)),
		logger: logger,
	}
}

// Emit broadcasts a hearts status to every current subscriber.
func (b *Broadcaster) Emit(status models.LessonHeartsStatus) error {
	payload, err := json.Marshal(status)
	if err != nil {
		return fmt.Errorf("failed to marshal hearts status: %w", err)
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	if err := b.pubsub.Publish(heartsTopic, msg); err != nil {
		b.logger.Error("Failed to publish hearts status",
			"hearts_remaining", status.HeartsRemaining,
			"error", err)
		return fmt.Errorf("failed to publish hearts status: %w", err)
	}

	return nil
}

// Subscribe attaches a handler to the channel and returns a detach function.
// Any number of listeners may attach and detach independently.
func (b *Broadcaster) Subscribe(handler func(models.LessonHeartsStatus)) (func(), error) {
	ctx, cancel := context.WithCancel(context.Background())

	messages, err := b.pubsub.Subscribe(ctx, heartsTopic)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("failed to subscribe to hearts channel: %w", err)
	}

	go func() {
		for msg := range messages {
			var status models.LessonHeartsStatus
			if err := json.Unmarshal(msg.Payload, &status); err != nil {
				b.logger.Error("Dropping malformed hearts message", "error", err)
				msg.Ack()
				continue
			}
			handler(status)
			msg.Ack()
		}
	}()

	return cancel, nil
}

// Close shuts the channel down and releases all subscribers.
func (b *Broadcaster) Close() error {
	return b.pubsub.Close()
}
