package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"bookcopy-server/internal/model"
)

// RedisTokenRepository хранит выданные пары токенов в Redis.
// Для каждой пары хранятся два ключа с TTL:
//  1. access_uuid:{AccessUUID} -> UserID (TTL access токена)
//  2. refresh_uuid:{RefreshUUID} -> UserID (TTL refresh токена)
type RedisTokenRepository struct {
	client *redis.Client
	logger *zap.Logger
}

// NewRedisTokenRepository creates a new Redis-backed token repository.
func NewRedisTokenRepository(client *redis.Client, logger *zap.Logger) *RedisTokenRepository {
	return &RedisTokenRepository{
		client: client,
		logger: logger.Named("RedisTokenRepo"),
	}
}

func accessKey(accessUUID string) string {
	return fmt.Sprintf("access_uuid:%s", accessUUID)
}

func refreshKey(refreshUUID string) string {
	return fmt.Sprintf("refresh_uuid:%s", refreshUUID)
}

// SetToken сохраняет детали пары токенов в Redis.
func (r *RedisTokenRepository) SetToken(ctx context.Context, userID uuid.UUID, td *model.TokenDetails) error {
	now := time.Now()
	accessTTL := time.Unix(td.AtExpires, 0).Sub(now)
	refreshTTL := time.Unix(td.RtExpires, 0).Sub(now)
	userIDStr := userID.String()

	// Пайплайн, чтобы оба ключа записались за один round trip
	pipe := r.client.Pipeline()
	pipe.Set(ctx, accessKey(td.AccessUUID), userIDStr, accessTTL)
	pipe.Set(ctx, refreshKey(td.RefreshUUID), userIDStr, refreshTTL)

	if _, err := pipe.Exec(ctx); err != nil {
		r.logger.Error("Failed to set token details in redis",
			zap.Error(err), zap.String("userID", userIDStr))
		return fmt.Errorf("failed to store token details: %w", err)
	}

	r.logger.Debug("Tokens stored in redis",
		zap.String("userID", userIDStr),
		zap.Duration("accessTTL", accessTTL),
		zap.Duration("refreshTTL", refreshTTL),
	)
	return nil
}

// GetUserIDByAccessUUID возвращает ID пользователя по access UUID.
// Отсутствие ключа означает, что токен отозван или истек.
func (r *RedisTokenRepository) GetUserIDByAccessUUID(ctx context.Context, accessUUID string) (uuid.UUID, error) {
	return r.getUserID(ctx, accessKey(accessUUID))
}

// GetUserIDByRefreshUUID возвращает ID пользователя по refresh UUID.
func (r *RedisTokenRepository) GetUserIDByRefreshUUID(ctx context.Context, refreshUUID string) (uuid.UUID, error) {
	return r.getUserID(ctx, refreshKey(refreshUUID))
}

func (r *RedisTokenRepository) getUserID(ctx context.Context, key string) (uuid.UUID, error) {
	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return uuid.Nil, model.ErrTokenNotFound
		}
		r.logger.Error("Failed to get token from redis", zap.Error(err), zap.String("key", key))
		return uuid.Nil, fmt.Errorf("failed to get token: %w", err)
	}

	userID, err := uuid.Parse(val)
	if err != nil {
		r.logger.Error("Invalid user ID stored for token", zap.Error(err), zap.String("key", key))
		return uuid.Nil, model.ErrTokenInvalid
	}
	return userID, nil
}

// DeleteTokens удаляет access и/или refresh токены из хранилища.
// Пустые UUID пропускаются. Возвращает число удаленных ключей.
func (r *RedisTokenRepository) DeleteTokens(ctx context.Context, accessUUID, refreshUUID string) (int64, error) {
	keys := make([]string, 0, 2)
	if accessUUID != "" {
		keys = append(keys, accessKey(accessUUID))
	}
	if refreshUUID != "" {
		keys = append(keys, refreshKey(refreshUUID))
	}
	if len(keys) == 0 {
		return 0, nil
	}

	deleted, err := r.client.Del(ctx, keys...).Result()
	if err != nil {
		r.logger.Error("Failed to delete tokens from redis", zap.Error(err))
		return 0, fmt.Errorf("failed to delete tokens: %w", err)
	}
	return deleted, nil
}
