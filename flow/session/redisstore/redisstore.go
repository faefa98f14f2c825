// Package redisstore is a Redis-backed session.Store: sessions are
// serialised to JSON and written under a per-id key, suitable for sharing
// session state across multiple engine processes.
package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ivaflow/flowcore/flow"
	"github.com/ivaflow/flowcore/flow/session"
)

const defaultKeyPrefix = "flowcore:session:"

// Store persists sessions as JSON values in Redis.
type Store struct {
	rdb       *redis.Client
	keyPrefix string
	// TTL is applied to every Set. Zero means the key never expires,
	// leaving expiry to external Redis eviction policy.
	ttl time.Duration
}

// Option configures a Store.
type Option func(*Store)

// WithKeyPrefix overrides the default "flowcore:session:" key prefix.
func WithKeyPrefix(prefix string) Option {
	return func(s *Store) { s.keyPrefix = prefix }
}

// WithTTL sets an expiry applied to every stored session key.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) { s.ttl = ttl }
}

// New wraps an existing Redis client as a session.Store. The caller owns
// the client's lifecycle (connection pooling, Close).
func New(rdb *redis.Client, opts ...Option) *Store {
	s := &Store{rdb: rdb, keyPrefix: defaultKeyPrefix}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) key(id string) string {
	return s.keyPrefix + id
}

// Get loads and decodes the session stored for id.
func (s *Store) Get(ctx context.Context, id string) (*flow.Session, error) {
	raw, err := s.rdb.Get(ctx, s.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, session.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redisstore: get %q: %w", id, err)
	}

	var sess flow.Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		return nil, fmt.Errorf("redisstore: decode %q: %w", id, err)
	}
	return &sess, nil
}

// Set encodes sess to JSON and writes it under its id, replacing any prior
// value atomically.
func (s *Store) Set(ctx context.Context, sess *flow.Session) error {
	raw, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("redisstore: encode %q: %w", sess.ID, err)
	}
	if err := s.rdb.Set(ctx, s.key(sess.ID), raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("redisstore: set %q: %w", sess.ID, err)
	}
	return nil
}

// Delete removes the stored session for id. Deleting a missing id is not
// an error.
func (s *Store) Delete(ctx context.Context, id string) error {
	if err := s.rdb.Del(ctx, s.key(id)).Err(); err != nil {
		return fmt.Errorf("redisstore: delete %q: %w", id, err)
	}
	return nil
}

// List scans for every key under the store's prefix and returns the
// session ids. Intended for diagnostics only; it is not O(1) and should
// not sit on a request hot path.
func (s *Store) List(ctx context.Context) ([]string, error) {
	var ids []string
	iter := s.rdb.Scan(ctx, 0, s.keyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		ids = append(ids, iter.Val()[len(s.keyPrefix):])
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("redisstore: list: %w", err)
	}
	return ids, nil
}
