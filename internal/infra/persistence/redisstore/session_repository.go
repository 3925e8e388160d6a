// Package redisstore keeps sessions in Redis so several API instances can share them.
package redisstore

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"campuseats/config"
	"campuseats/internal/domain/entity"
	"campuseats/internal/domain/lifecycle"
	"campuseats/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

const (
	keyPrefix = "campuseats:session:"
	// expiryIndexKey scores every session id by its expiry, for sweeping.
	expiryIndexKey = "campuseats:sessions:expiry"
)

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// NewClient creates the Redis client from redis.url and ties it to the fx lifecycle.
func NewClient(params Params) (*redis.Client, error) {
	if params.Config.Redis == nil || params.Config.Redis.URL == "" {
		return nil, errors.New("redis.url is required")
	}

	opt, err := redis.ParseURL(params.Config.Redis.URL)
	if err != nil {
		return nil, errors.Wrap(err, "invalid redis URL")
	}
	client := redis.NewClient(opt)

	params.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			ctx, cancel := context.WithTimeout(startCtx, lifecycle.DefaultTimeout)
			defer cancel()

			if err := client.Ping(ctx).Err(); err != nil {
				return errors.Wrap(err, "failed to connect to Redis")
			}
			params.Logger.Info("Redis session store connected", slog.String("addr", opt.Addr))

			return nil
		},
		OnStop: func(_ context.Context) error {
			return errors.WithStack(client.Close())
		},
	})

	return client, nil
}

type sessionRepository struct {
	client redis.UniversalClient
	now    func() time.Time
}

// NewSessionRepository stores each session as a hash whose Redis TTL matches the session TTL.
func NewSessionRepository(client *redis.Client) repository.SessionRepository {
	return newSessionRepository(client)
}

func newSessionRepository(client redis.UniversalClient) *sessionRepository {
	return &sessionRepository{
		client: client,
		now:    time.Now,
	}
}

func (r *sessionRepository) Create(ctx context.Context, userID int64, ttl time.Duration) (*entity.Session, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return nil, errors.Wrap(err, "generate session id")
	}

	now := r.now()
	session := &entity.Session{
		ID:        id.String(),
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}

	key := sessionKey(session.ID)
	pipe := r.client.TxPipeline()
	pipe.HSet(ctx, key, map[string]any{
		"user_id":    session.UserID,
		"created_at": session.CreatedAt.UnixMilli(),
		"expires_at": session.ExpiresAt.UnixMilli(),
	})
	pipe.PExpire(ctx, key, ttl)
	pipe.ZAdd(ctx, expiryIndexKey, redis.Z{Score: float64(session.ExpiresAt.UnixMilli()), Member: session.ID})

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrap(err, "failed to create session")
	}

	return session, nil
}

func (r *sessionRepository) Find(ctx context.Context, id string) (*entity.Session, error) {
	result, err := r.client.HGetAll(ctx, sessionKey(id)).Result()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get session")
	}
	if len(result) == 0 {
		return nil, errors.WithStack(repository.ErrSessionNotFound)
	}

	userID, err := strconv.ParseInt(result["user_id"], 10, 64)
	if err != nil {
		return nil, errors.WithStack(repository.ErrSessionNotFound)
	}

	session := &entity.Session{
		ID:        id,
		UserID:    userID,
		CreatedAt: parseMillis(result["created_at"]),
		ExpiresAt: parseMillis(result["expires_at"]),
	}
	// Redis expiry has millisecond granularity but may lag; the stored deadline is authoritative.
	if session.Expired(r.now()) {
		return nil, errors.WithStack(repository.ErrSessionNotFound)
	}

	return session, nil
}

func (r *sessionRepository) Delete(ctx context.Context, id string) error {
	pipe := r.client.TxPipeline()
	pipe.Del(ctx, sessionKey(id))
	pipe.ZRem(ctx, expiryIndexKey, id)

	if _, err := pipe.Exec(ctx); err != nil {
		return errors.Wrap(err, "failed to delete session")
	}

	return nil
}

// DeleteExpired trims the expiry index. The session hashes themselves expire through their TTL.
func (r *sessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int, error) {
	maxScore := strconv.FormatInt(now.UnixMilli(), 10)

	ids, err := r.client.ZRangeByScore(ctx, expiryIndexKey, &redis.ZRangeBy{Min: "-inf", Max: maxScore}).Result()
	if err != nil {
		return 0, errors.Wrap(err, "failed to scan expired sessions")
	}
	if len(ids) == 0 {
		return 0, nil
	}

	keys := make([]string, 0, len(ids))
	members := make([]any, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, sessionKey(id))
		members = append(members, id)
	}

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, keys...)
	pipe.ZRem(ctx, expiryIndexKey, members...)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, errors.Wrap(err, "failed to purge expired sessions")
	}

	return len(ids), nil
}

func sessionKey(id string) string {
	return keyPrefix + id
}

func parseMillis(v string) time.Time {
	ms, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return time.Time{}
	}

	return time.UnixMilli(ms)
}
