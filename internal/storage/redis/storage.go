package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"courtbook/internal/model"
	"courtbook/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Day record operations

func (s *Storage) SaveDay(ctx context.Context, record *model.DayRecord) error {
	data, err := record.ToStorageForm()
	if err != nil {
		return err
	}

	// Use pipeline for atomic save + index update
	pipe := s.client.Pipeline()
	pipe.Set(ctx, dayKey(record.Date), data, 0)
	pipe.SAdd(ctx, dateIndexKey(), string(record.Date))
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetDay(ctx context.Context, date model.DateKey) (*model.DayRecord, error) {
	data, err := s.client.Get(ctx, dayKey(date)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrDayNotFound
		}
		return nil, err
	}

	return model.DayRecordFromStorageForm(date, data)
}

func (s *Storage) DeleteDay(ctx context.Context, date model.DateKey) error {
	pipe := s.client.Pipeline()
	pipe.Del(ctx, dayKey(date))
	pipe.SRem(ctx, dateIndexKey(), string(date))
	_, err := pipe.Exec(ctx)
	return err
}

func (s *Storage) ListDates(ctx context.Context) ([]model.DateKey, error) {
	members, err := s.client.SMembers(ctx, dateIndexKey()).Result()
	if err != nil {
		return nil, err
	}

	dates := make([]model.DateKey, 0, len(members))
	for _, m := range members {
		dates = append(dates, model.DateKey(m))
	}
	return dates, nil
}

// User directory operations

func (s *Storage) SaveUser(ctx context.Context, user *model.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, userKey(user.Name), data, 0).Err()
}

func (s *Storage) GetUserByName(ctx context.Context, name string) (*model.User, error) {
	data, err := s.client.Get(ctx, userKey(name)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrUserNotFound
		}
		return nil, err
	}

	var user model.User
	if err := json.Unmarshal(data, &user); err != nil {
		// Corrupt directory entries fail open to "not found"
		return nil, model.ErrUserNotFound
	}
	return &user, nil
}
