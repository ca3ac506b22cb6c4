package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	json "github.com/goccy/go-json"
	lowimpl "github.com/redis/go-redis/v9"
)

const (
	redisKeyPrefix = "pdf_toolkit:doc:"
	redisExpiryKey = "pdf_toolkit:doc_expiry"

	// redisGrace keeps a document readable past its expiry so the janitor can
	// still find its file on disk.
	redisGrace = time.Hour
)

type RedisConf struct {
	Addr string `json:"addr"`
	PW   string `json:"pw"`
	DB   int    `json:"db"`
}

// RedisStore keeps documents as JSON values plus a sorted set of expiry times.
type RedisStore struct {
	Conf *RedisConf

	// implementation details, not exported
	internal *lowimpl.Client
	now      func() time.Time
}

// Ensure RedisStore implements Store interface
var _ Store = (*RedisStore)(nil)

// NewRedisStore connects to redis and checks the connection with a PING.
func NewRedisStore(ctx context.Context, conf *RedisConf) (*RedisStore, error) {
	client := lowimpl.NewClient(&lowimpl.Options{
		Addr:     conf.Addr,
		Password: conf.PW,
		DB:       conf.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", conf.Addr, err)
	}
	return &RedisStore{Conf: conf, internal: client, now: time.Now}, nil
}

func docKey(id string) string {
	return redisKeyPrefix + id
}

func (s *RedisStore) Put(ctx context.Context, doc *Document) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode document %s: %w", doc.ID, err)
	}
	var ttl time.Duration // 0 = no expiration
	if !doc.ExpiresAt.IsZero() {
		ttl = doc.ExpiresAt.Sub(s.now()) + redisGrace
	}
	_, err = s.internal.TxPipelined(ctx, func(pipe lowimpl.Pipeliner) error {
		pipe.Set(ctx, docKey(doc.ID), data, ttl)
		if !doc.ExpiresAt.IsZero() {
			pipe.ZAdd(ctx, redisExpiryKey, lowimpl.Z{Score: float64(doc.ExpiresAt.Unix()), Member: doc.ID})
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("store document %s: %w", doc.ID, err)
	}
	return nil
}

func (s *RedisStore) get(ctx context.Context, id string) (*Document, error) {
	data, err := s.internal.Get(ctx, docKey(id)).Bytes()
	if errors.Is(err, lowimpl.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load document %s: %w", id, err)
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode document %s: %w", id, err)
	}
	return &doc, nil
}

func (s *RedisStore) Get(ctx context.Context, id string) (*Document, error) {
	doc, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc.Expired(s.now()) {
		return nil, ErrNotFound
	}
	return doc, nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	_, err := s.internal.TxPipelined(ctx, func(pipe lowimpl.Pipeliner) error {
		pipe.Del(ctx, docKey(id))
		pipe.ZRem(ctx, redisExpiryKey, id)
		return nil
	})
	return err
}

func (s *RedisStore) Expired(ctx context.Context, now time.Time) ([]*Document, error) {
	ids, err := s.internal.ZRangeByScore(ctx, redisExpiryKey, &lowimpl.ZRangeBy{
		Min: "-inf",
		Max: strconv.FormatInt(now.Unix(), 10),
	}).Result()
	if err != nil {
		return nil, fmt.Errorf("scan expired documents: %w", err)
	}

	var expired []*Document
	for _, id := range ids {
		doc, err := s.get(ctx, id)
		if err != nil && !errors.Is(err, ErrNotFound) {
			return expired, err
		}
		if doc != nil {
			if !doc.Expired(now) {
				continue // scores are whole seconds
			}
			expired = append(expired, doc)
		}
		if err := s.Delete(ctx, id); err != nil {
			return expired, err
		}
	}
	return expired, nil
}

func (s *RedisStore) Close() error {
	if s.internal == nil {
		return nil
	}
	return s.internal.Close()
}
