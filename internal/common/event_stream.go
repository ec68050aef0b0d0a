package common

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// OpsEvent is one fleet operations event (status change, sweep, pull)
type OpsEvent struct {
	Type     string            `json:"type"`
	EntityID string            `json:"entity_id,omitempty"`
	Source   string            `json:"source,omitempty"`
	Fields   map[string]string `json:"fields,omitempty"`
	At       time.Time         `json:"at"`
}

// EventPublisher receives ops events. Publishing is best-effort.
type EventPublisher interface {
	Publish(ctx context.Context, ev OpsEvent) error
}

// NoopPublisher drops every event; used when EVENT_STREAM is empty
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, OpsEvent) error { return nil }

// MemoryPublisher keeps events in memory, mainly for tests and the CLI
type MemoryPublisher struct {
	mu     sync.Mutex
	events []OpsEvent
}

func (m *MemoryPublisher) Publish(_ context.Context, ev OpsEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, ev)
	return nil
}

// Events returns a copy of everything published so far
func (m *MemoryPublisher) Events() []OpsEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]OpsEvent(nil), m.events...)
}

// RedisEventStream appends ops events to a Redis Stream
type RedisEventStream struct {
	client *redis.Client
	stream string
	maxLen int64
}

// NewRedisEventStream creates a stream publisher capped at roughly maxLen entries
func NewRedisEventStream(client *redis.Client, stream string, maxLen int64) *RedisEventStream {
	return &RedisEventStream{
		client: client,
		stream: stream,
		maxLen: maxLen,
	}
}

// Publish adds the event using XADD stream MAXLEN ~ n * data <json>
func (s *RedisEventStream) Publish(ctx context.Context, ev OpsEvent) error {
	if ev.At.IsZero() {
		ev.At = time.Now().UTC()
	}
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	args := &redis.XAddArgs{
		Stream: s.stream,
		MaxLen: s.maxLen,
		Approx: s.maxLen > 0,
		Values: map[string]interface{}{
			"type": ev.Type,
			"data": string(data),
		},
	}

	if _, err := s.client.XAdd(ctx, args).Result(); err != nil {
		return fmt.Errorf("failed to add to stream: %w", err)
	}
	return nil
}

// Recent returns up to count newest events, newest first
func (s *RedisEventStream) Recent(ctx context.Context, count int64) ([]OpsEvent, error) {
	msgs, err := s.client.XRevRangeN(ctx, s.stream, "+", "-", count).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read stream: %w", err)
	}

	events := make([]OpsEvent, 0, len(msgs))
	for _, msg := range msgs {
		dataStr, ok := msg.Values["data"].(string)
		if !ok {
			continue
		}
		var ev OpsEvent
		if err := json.Unmarshal([]byte(dataStr), &ev); err != nil {
			continue
		}
		events = append(events, ev)
	}
	return events, nil
}

// Length returns the number of entries in the stream
func (s *RedisEventStream) Length(ctx context.Context) (int64, error) {
	length, err := s.client.XLen(ctx, s.stream).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to get stream length: %w", err)
	}
	return length, nil
}
