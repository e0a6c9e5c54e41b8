package service

import (
	"context"
	"time"

	"github.com/Skotchmaster/post_shop/internal/events"
	"github.com/Skotchmaster/post_shop/internal/logging"
)

const publishTimeout = 5 * time.Second

// publish never fails the caller; delivery errors are only logged.
func publish(ctx context.Context, p events.Publisher, topic, key string, ev events.Event) {
	if p == nil {
		return
	}
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	if err := p.PublishEvent(pubCtx, topic, key, ev); err != nil {
		logging.FromContext(ctx).Error("publish_event_error", "topic", topic, "type", ev.Type, "error", err)
	}
}
