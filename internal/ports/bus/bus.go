package bus

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/heroiclabs/nakama-common/runtime"

	"adrenaline/internal/ports"
)

// TopicMatches carries every match lifecycle notification.
const TopicMatches = "adrenaline.matches"

const (
	metaKeyMatchID = "match_id"
	metaKeyKind    = "kind"
)

// Handler consumes one notification. Errors are logged, never redelivered.
type Handler func(ctx context.Context, n ports.MatchNotification) error

// Bus is an in-process watermill GoChannel carrying match notifications
// out of the match loops.
type Bus struct {
	pubsub *gochannel.GoChannel
	logger runtime.Logger
}

// New starts an empty bus. Notifications published with no subscriber are dropped.
func New(logger runtime.Logger) *Bus {
	return &Bus{
		pubsub: gochannel.NewGoChannel(gochannel.Config{}, watermill.NewStdLogger(false, false)),
		logger: logger,
	}
}

// Publish implements ports.MatchPublisher.
func (b *Bus) Publish(ctx context.Context, n ports.MatchNotification) error {
	payload, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("failed to marshal %s notification: %w", n.Kind, err)
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set(metaKeyMatchID, n.MatchID)
	msg.Metadata.Set(metaKeyKind, n.Kind)
	msg.SetContext(ctx)
	return b.pubsub.Publish(TopicMatches, msg)
}

// Subscribe runs handler for every notification until ctx is done or the
// bus closes. It returns once the subscription is active.
func (b *Bus) Subscribe(ctx context.Context, handler Handler) error {
	messages, err := b.pubsub.Subscribe(ctx, TopicMatches)
	if err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", TopicMatches, err)
	}

	go func() {
		for msg := range messages {
			var n ports.MatchNotification
			if err := json.Unmarshal(msg.Payload, &n); err != nil {
				b.logger.Error("Bus: dropping malformed notification %s: %v", msg.UUID, err)
			} else if err := handler(ctx, n); err != nil {
				b.logger.Error("Bus: handler failed for %s of match %s: %v", msg.Metadata.Get(metaKeyKind), msg.Metadata.Get(metaKeyMatchID), err)
			}
			msg.Ack()
		}
		b.logger.Debug("Bus: subscription to %s ended", TopicMatches)
	}()
	return nil
}

// Close stops every subscription.
func (b *Bus) Close() error {
	return b.pubsub.Close()
}

var _ ports.MatchPublisher = (*Bus)(nil)
