// Package framestore publishes rendered frames to Redis so other processes
// can show the clock without rendering it themselves.
package framestore

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/adjust/rmq/v3"
	"github.com/go-redis/redis/v7"
	"github.com/kcz17/clockface/render"
	"github.com/kcz17/clockface/surface"
)

const connectionTag = "clockface"

// Publisher announces a stored frame. An rmq.Queue satisfies it.
type Publisher interface {
	Publish(payload ...string) error
}

// FrameEvent is published after every stored frame.
type FrameEvent struct {
	Kind      string           `json:"kind"`
	Key       string           `json:"key"`
	Width     float64          `json:"width"`
	Height    float64          `json:"height"`
	Timestamp render.Timestamp `json:"timestamp"`
}

type Options struct {
	Client     *redis.Client
	Prefix     string
	TTL        time.Duration
	Format     surface.Format
	Background render.Colour
	// Timestamp reports the time shown by the frame being stored.
	Timestamp func() render.Timestamp
	// Events is optional; when nil no frame events are published.
	Events Publisher
}

type RedisStore struct {
	client     *redis.Client
	prefix     string
	ttl        time.Duration
	format     surface.Format
	background render.Colour
	timestamp  func() render.Timestamp
	events     Publisher
}

func NewRedisStore(opts *Options) *RedisStore {
	return &RedisStore{
		client:     opts.Client,
		prefix:     opts.Prefix,
		ttl:        opts.TTL,
		format:     opts.Format,
		background: opts.Background,
		timestamp:  opts.Timestamp,
		events:     opts.Events,
	}
}

// NewRedisClient connects to the Redis instance holding frames.
func NewRedisClient(addr string, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

// FrameQueue is the rmq queue frame events are published to.
type FrameQueue struct {
	queue      rmq.Queue
	connection rmq.Connection
}

// OpenFrameQueue opens the frame event queue on client. Asynchronous rmq
// errors, such as failed heartbeats, are sent to errChan until Close.
func OpenFrameQueue(client *redis.Client, prefix string, errChan chan<- error) (*FrameQueue, error) {
	connection, err := rmq.OpenConnectionWithRedisClient(connectionTag, client, errChan)
	if err != nil {
		return nil, fmt.Errorf("could not open rmq connection: %w", err)
	}
	queue, err := connection.OpenQueue(prefix + "-frames")
	if err != nil {
		<-connection.StopAllConsuming()
		return nil, fmt.Errorf("could not open frame queue: %w", err)
	}
	return &FrameQueue{queue: queue, connection: connection}, nil
}

func (q *FrameQueue) Publish(payload ...string) error {
	return q.queue.Publish(payload...)
}

// Close stops the connection heartbeat. The queue has no consumers, so this
// returns as soon as the heartbeat has stopped. It must be called before the
// Redis client is closed.
func (q *FrameQueue) Close() {
	<-q.connection.StopAllConsuming()
}

func (s *RedisStore) Name() string {
	return "redis"
}

// Key is the Redis key holding the latest frame of a clock face.
func (s *RedisStore) Key(kind render.Kind) string {
	return fmt.Sprintf("%s:frame:%s", s.prefix, kind)
}

func (s *RedisStore) Present(kind render.Kind, b render.Bounds, prims []render.Primitive) error {
	var buf bytes.Buffer
	if err := surface.Encode(&buf, s.format, b, s.background, prims); err != nil {
		return fmt.Errorf("RedisStore.Present() could not encode %s frame: %w", kind, err)
	}

	key := s.Key(kind)
	if err := s.client.Set(key, buf.Bytes(), s.ttl).Err(); err != nil {
		return fmt.Errorf("RedisStore.Present() could not store frame under %s: %w", key, err)
	}

	if s.events == nil {
		return nil
	}
	event := FrameEvent{Kind: kind.String(), Key: key, Width: b.Width, Height: b.Height}
	if s.timestamp != nil {
		event.Timestamp = s.timestamp()
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("RedisStore.Present() could not marshal frame event: %w", err)
	}
	if err := s.events.Publish(string(payload)); err != nil {
		return fmt.Errorf("RedisStore.Present() could not publish frame event: %w", err)
	}
	return nil
}

// Latest returns the most recently stored frame of a clock face.
func (s *RedisStore) Latest(kind render.Kind) ([]byte, error) {
	b, err := s.client.Get(s.Key(kind)).Bytes()
	if err == redis.Nil {
		return nil, fmt.Errorf("no %s frame stored", kind)
	}
	if err != nil {
		return nil, fmt.Errorf("RedisStore.Latest() could not read frame: %w", err)
	}
	return b, nil
}
