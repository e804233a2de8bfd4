// Package feed delivers live-update signals over Redis pub/sub. A signal
// carries no payload: subscribers re-query the store and emit the full
// current result set, so consumers never see partial updates.
package feed

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// Topic helpers. One topic per watched collection per namespace.
func BoardsTopic(userID uuid.UUID) string { return "boards:" + userID.String() }

func SharedBoardsTopic(userID uuid.UUID) string { return "shared:" + userID.String() }

func NotificationsTopic(userID uuid.UUID) string { return "notifications:" + userID.String() }

func TasksTopic(namespaceID, boardID uuid.UUID) string {
	return fmt.Sprintf("tasks:%s:%s", namespaceID, boardID)
}

type Hub struct {
	rdb *redis.Client
	log *logrus.Logger
}

func NewHub(rdb *redis.Client, log *logrus.Logger) *Hub {
	return &Hub{rdb: rdb, log: log}
}

// Publish signals that the collection behind topic changed. Feed delivery
// is best-effort; a publish failure is logged, never propagated to the
// write path.
func (h *Hub) Publish(ctx context.Context, topic string) {
	if err := h.rdb.Publish(ctx, topic, "1").Err(); err != nil {
		h.log.WithError(err).WithField("topic", topic).Warn("feed publish failed")
	}
}

// Subscribe returns a channel that receives a signal per change on topic,
// plus a cancel func that tears the subscription down. Callers must cancel
// before switching boards or users; a stale subscription must never keep
// delivering into current state.
func (h *Hub) Subscribe(ctx context.Context, topic string) (<-chan struct{}, func()) {
	pubsub := h.rdb.Subscribe(ctx, topic)
	signals := make(chan struct{}, 1)

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			if err := pubsub.Close(); err != nil {
				h.log.WithError(err).WithField("topic", topic).Warn("feed unsubscribe failed")
			}
		})
	}

	go func() {
		defer close(signals)
		ch := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				// Tear the subscription down here too, so a caller that
				// only cancels the context does not leak it.
				cancel()
				return
			case _, ok := <-ch:
				if !ok {
					return
				}
				// Coalesce: one pending signal is enough, the
				// subscriber re-reads the full set anyway.
				select {
				case signals <- struct{}{}:
				default:
				}
			}
		}
	}()

	return signals, cancel
}
