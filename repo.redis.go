package main

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const entityKeyPrefix string = "entities:"

type redisEntityStore struct {
	logger *zap.Logger
	client *redis.Client
	key    string
}

// NewRedisEntityStore provides a redis-backed store for one logical entity.
// All records of the entity live in a single hash keyed by record id.
func NewRedisEntityStore(logger *zap.Logger, client *redis.Client, entity string) EntityStore {
	return &redisEntityStore{
		logger: logger,
		client: client,
		key:    entityKeyPrefix + entity,
	}
}

// GetRedisClient provides a ready to use redis client.
func GetRedisClient(config *Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%s", config.Redis.Host, config.Redis.Port),
		DialTimeout:  config.Redis.DialTimeout,
		ReadTimeout:  config.Redis.ReadTimeout,
		WriteTimeout: config.Redis.WriteTimeout,
		PoolSize:     config.Redis.PoolSize,
		PoolTimeout:  config.Redis.PoolTimeout,
		Password:     config.Redis.Password,
		Username:     config.Redis.Username,
		DB:           config.Redis.DatabaseIndex,
	})

	// test connection.
	if pong, err := client.Ping(context.Background()).Result(); pong != "PONG" || err != nil {
		return client, fmt.Errorf("test connection failed: %v", err)
	}
	return client, nil
}

// Insert stores a new record payload under its id.
func (rs *redisEntityStore) Insert(ctx context.Context, id string, data []byte) error {
	return rs.client.HSet(ctx, rs.key, id, data).Err()
}

// Get retrieves a record payload based on its id.
func (rs *redisEntityStore) Get(ctx context.Context, id string) ([]byte, error) {
	data, err := rs.client.HGet(ctx, rs.key, id).Result()
	if err == redis.Nil {
		return nil, ErrRecordNotFound
	}
	if err != nil {
		return nil, err
	}
	return []byte(data), nil
}

// Update replaces an existing record payload or inserts it if missing.
func (rs *redisEntityStore) Update(ctx context.Context, id string, data []byte) error {
	return rs.client.HSet(ctx, rs.key, id, data).Err()
}

// Delete removes a record based on its id.
func (rs *redisEntityStore) Delete(ctx context.Context, id string) error {
	removed, err := rs.client.HDel(ctx, rs.key, id).Result()
	if err != nil {
		return err
	}
	if removed == 0 {
		return ErrRecordNotFound
	}
	return nil
}

// List retrieves all record payloads of the entity.
func (rs *redisEntityStore) List(ctx context.Context) ([][]byte, error) {
	values, err := rs.client.HVals(ctx, rs.key).Result()
	if err != nil {
		return nil, err
	}
	records := make([][]byte, 0, len(values))
	for _, value := range values {
		records = append(records, []byte(value))
	}
	return records, nil
}

// Count returns the number of records stored for the entity.
func (rs *redisEntityStore) Count(ctx context.Context) (int64, error) {
	return rs.client.HLen(ctx, rs.key).Result()
}
