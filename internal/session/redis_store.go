package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "consulta:"

type RedisStore struct {
	Client *redis.Client
}

func (s *RedisStore) Get(ctx context.Context, id string) (State, error) {
	val, err := s.Client.Get(ctx, keyPrefix+id).Result()
	if errors.Is(err, redis.Nil) {
		return State{}, nil
	}
	if err != nil {
		return State{}, fmt.Errorf("redis get %s: %w", id, err)
	}

	var st State
	if err := json.Unmarshal([]byte(val), &st); err != nil {
		return State{}, fmt.Errorf("sessão %s corrompida: %w", id, err)
	}
	return st, nil
}

func (s *RedisStore) Set(ctx context.Context, id string, st State) error {
	b, err := json.Marshal(st)
	if err != nil {
		return err
	}
	return s.Client.Set(ctx, keyPrefix+id, b, TTL).Err()
}
