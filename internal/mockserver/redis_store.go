package mockserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const (
	sessionKeyPrefix  = "quizdev:session:"
	heartsKey         = "quizdev:hearts"
	progressKeyPrefix = "quizdev:progress:"
)

// RedisSessionStore persists attempt sessions, hearts and progress as JSON
// blobs in Redis so a dev backend keeps its state across restarts.
type RedisSessionStore struct {
	client *redis.Client
}

func NewRedisSessionStore(client *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{client: client}
}

func (s *RedisSessionStore) GetSession(ctx context.Context, lessonID string) (*AttemptSession, error) {
	var session AttemptSession
	found, err := s.getJSON(ctx, sessionKeyPrefix+lessonID, &session)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrSessionNotFound
	}
	return &session, nil
}

func (s *RedisSessionStore) SaveSession(ctx context.Context, session *AttemptSession) error {
	return s.setJSON(ctx, sessionKeyPrefix+session.LessonID, session)
}

func (s *RedisSessionStore) DeleteSession(ctx context.Context, lessonID string) error {
	if err := s.client.Del(ctx, sessionKeyPrefix+lessonID).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

func (s *RedisSessionStore) GetHearts(ctx context.Context) (*HeartsState, error) {
	var state HeartsState
	found, err := s.getJSON(ctx, heartsKey, &state)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &state, nil
}

func (s *RedisSessionStore) SaveHearts(ctx context.Context, state *HeartsState) error {
	return s.setJSON(ctx, heartsKey, state)
}

func (s *RedisSessionStore) GetProgress(ctx context.Context, lessonID string) (*LessonProgress, error) {
	var progress LessonProgress
	found, err := s.getJSON(ctx, progressKeyPrefix+lessonID, &progress)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &progress, nil
}

func (s *RedisSessionStore) SaveProgress(ctx context.Context, progress *LessonProgress) error {
	return s.setJSON(ctx, progressKeyPrefix+progress.LessonID, progress)
}

func (s *RedisSessionStore) getJSON(ctx context.Context, key string, dest interface{}) (bool, error) {
	raw, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return true, nil
}

func (s *RedisSessionStore) setJSON(ctx context.Context, key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := s.client.Set(ctx, key, raw, 0).Err(); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}
