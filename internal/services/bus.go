package services

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Notification topics. Publishes carry no payload; subscribers re-read the
// affected collection from the store.
const TopicPostsChanged = "posts-changed"

// TopicMealsChanged returns the per-user meal collection topic.
func TopicMealsChanged(userID string) string {
	return "meals-changed:" + userID
}

// eventChannelPrefix namespaces bridge messages in Redis pub/sub.
const eventChannelPrefix = "events:"

type busSub struct {
	id      int
	handler func()
}

// Bus is the change-notification registry. Publish delivers synchronously to
// local subscribers in subscription order, then relays the topic over Redis
// so sibling instances converge; a topic received from the bridge is only
// delivered locally.
type Bus struct {
	mu     sync.Mutex
	nextID int
	subs   map[string][]busSub

	// originID identifies this instance on the bridge so relayed topics
	// are not delivered twice locally.
	originID string
	client   *redis.Client

	bridgeOnce sync.Once
}

func NewBus() *Bus {
	return &Bus{
		subs:     make(map[string][]busSub),
		originID: uuid.NewString(),
	}
}

// Subscribe registers handler for topic and returns a disposer. The disposer
// must be called when the subscriber is torn down so handlers never fire
// against dead views.
func (b *Bus) Subscribe(topic string, handler func()) func() {
	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.subs[topic] = append(b.subs[topic], busSub{id: id, handler: handler})
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		subs := b.subs[topic]
		for i, s := range subs {
			if s.id == id {
				b.subs[topic] = append(subs[:i:i], subs[i+1:]...)
				break
			}
		}
	}
}

// Publish notifies local subscribers of topic and relays it to the bridge.
// Fire-and-forget: delivery and relay failures never reach the caller.
func (b *Bus) Publish(topic string) {
	b.deliver(topic)

	if b.client != nil {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			defer cancel()
			if err := b.client.Publish(ctx, eventChannelPrefix+topic, b.originID).Err(); err != nil {
				log.Printf("event bridge publish failed for %s: %v", topic, err)
			}
		}()
	}
}

// deliver invokes current subscribers outside the lock so a handler may
// subscribe or unsubscribe without deadlocking.
func (b *Bus) deliver(topic string) {
	b.mu.Lock()
	subs := make([]busSub, len(b.subs[topic]))
	copy(subs, b.subs[topic])
	b.mu.Unlock()

	for _, s := range subs {
		s.handler()
	}
}

// StartBridge attaches the bus to Redis pub/sub so topics published by
// sibling instances reach local subscribers. Safe to call once; a nil client
// leaves the bus purely local.
func (b *Bus) StartBridge(ctx context.Context, client *redis.Client) {
	if client == nil {
		log.Println("Redis client not initialized; event bridge not started")
		return
	}
	b.bridgeOnce.Do(func() {
		b.client = client
		go b.runBridge(ctx)
	})
}

func (b *Bus) runBridge(ctx context.Context) {
	backoff := time.Second

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		func() {
			pubsub := b.client.PSubscribe(ctx, eventChannelPrefix+"*")
			defer pubsub.Close()

			log.Printf("✅ Event bridge started (pattern: %s*)", eventChannelPrefix)

			for {
				msg, err := pubsub.ReceiveMessage(ctx)
				if err != nil {
					if ctx.Err() != nil {
						return
					}
					log.Printf("event bridge error: %v", err)
					time.Sleep(backoff)
					backoff *= 2
					if backoff > 30*time.Second {
						backoff = 30 * time.Second
					}
					return
				}

				backoff = time.Second

				// Skip our own relays; they were already delivered locally
				if msg.Payload == b.originID {
					continue
				}

				b.deliver(msg.Channel[len(eventChannelPrefix):])
			}
		}()
	}
}
