// Package cache provides a Redis read-through decorator for the profile
// store. Cache failures degrade to the underlying store: a broken Redis
// never blocks authentication.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	idosoms "github.com/joaopanucci/IdosoMS"
)

const keyPrefix = "idosoms:profile:"

// New creates a Redis client and verifies connectivity.
func New(ctx context.Context, addr string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return client, nil
}

// ProfileStore wraps an idosoms.ProfileStore with a per-document Redis
// cache. Reads are served from Redis when present; writes go to the
// backing store and invalidate the cached copy.
type ProfileStore struct {
	next   idosoms.ProfileStore
	client *redis.Client
	ttl    time.Duration
	logger idosoms.Logger
}

var _ idosoms.ProfileStore = (*ProfileStore)(nil)

// NewProfileStore decorates next with client. ttl bounds how long a
// cached profile may serve stale reads.
func NewProfileStore(next idosoms.ProfileStore, client *redis.Client, ttl time.Duration) *ProfileStore {
	return &ProfileStore{
		next:   next,
		client: client,
		ttl:    ttl,
		logger: idosoms.DefaultLogger(),
	}
}

func (s *ProfileStore) WithLogger(logger idosoms.Logger) *ProfileStore {
	if logger != nil {
		s.logger = logger
	}
	return s
}

func (s *ProfileStore) key(id string) string {
	return keyPrefix + id
}

// GetDocument serves from cache on hit, populates the cache on miss, and
// falls through to the store on any Redis error.
func (s *ProfileStore) GetDocument(ctx context.Context, id string) (*idosoms.Profile, error) {
	payload, err := s.client.Get(ctx, s.key(id)).Bytes()
	if err == nil {
		var profile idosoms.Profile
		if err := json.Unmarshal(payload, &profile); err == nil {
			return &profile, nil
		}
		s.logger.Error("cache: corrupt profile entry for %s, falling through", id)
	} else if err != redis.Nil {
		s.logger.Error("cache: get %s: %v", id, err)
	}

	profile, err := s.next.GetDocument(ctx, id)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(profile); err == nil {
		if err := s.client.Set(ctx, s.key(id), raw, s.ttl).Err(); err != nil {
			s.logger.Error("cache: set %s: %v", id, err)
		}
	}
	return profile, nil
}

// SetDocument writes through and drops the cached copy.
func (s *ProfileStore) SetDocument(ctx context.Context, id string, profile *idosoms.Profile) error {
	if err := s.next.SetDocument(ctx, id, profile); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	return nil
}

// UpdateDocument writes through and drops the cached copy.
func (s *ProfileStore) UpdateDocument(ctx context.Context, id string, update idosoms.ProfileUpdate) error {
	if err := s.next.UpdateDocument(ctx, id, update); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	return nil
}

func (s *ProfileStore) invalidate(ctx context.Context, id string) {
	if err := s.client.Del(ctx, s.key(id)).Err(); err != nil {
		s.logger.Error("cache: invalidate %s: %v", id, err)
	}
}
