package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "fridgechef:session:"

// RedisSessionStore persists sessions in Redis so conversations survive
// restarts and can be shared across instances. Sessions expire after ttl of
// inactivity; an expired session simply reads back as idle.
type RedisSessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisSessionStore wraps an already-connected client.
func NewRedisSessionStore(client *redis.Client, ttl time.Duration) *RedisSessionStore {
	return &RedisSessionStore{client: client, ttl: ttl}
}

// Get returns the stored session or a fresh idle one when the key is absent.
func (s *RedisSessionStore) Get(ctx context.Context, conversation string) (Session, error) {
	val, err := s.client.Get(ctx, sessionKeyPrefix+conversation).Result()
	if errors.Is(err, redis.Nil) {
		return Session{Conversation: conversation, State: StateIdle}, nil
	}
	if err != nil {
		return Session{}, fmt.Errorf("get session: %w", err)
	}

	var sess Session
	if err := json.Unmarshal([]byte(val), &sess); err != nil {
		return Session{}, fmt.Errorf("decode session: %w", err)
	}
	return sess, nil
}

// Put stores the session under its conversation id, refreshing the TTL.
func (s *RedisSessionStore) Put(ctx context.Context, session Session) error {
	b, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := s.client.Set(ctx, sessionKeyPrefix+session.Conversation, b, s.ttl).Err(); err != nil {
		return fmt.Errorf("put session: %w", err)
	}
	return nil
}

// Delete removes the session for the conversation.
func (s *RedisSessionStore) Delete(ctx context.Context, conversation string) error {
	if err := s.client.Del(ctx, sessionKeyPrefix+conversation).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
