package cart

import (
	"context"
	"encoding/json"
	"time"

	pkgerrors "github.com/steno/caribbean-tees-pod/pkg/errors"
	"github.com/steno/caribbean-tees-pod/pkg/redis"
)

// DefaultTTL is how long an idle cart survives before expiring.
const DefaultTTL = 7 * 24 * time.Hour

// Store persists carts between requests. Implementations must return a
// not-found coded error when the cart id is unknown.
type Store interface {
	Save(ctx context.Context, c *Cart) error
	Load(ctx context.Context, id string) (*Cart, error)
	Delete(ctx context.Context, id string) error
}

type kvStore interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
	CartKey(cartID string) string
}

// RedisStore keeps carts as JSON blobs with a sliding TTL.
type RedisStore struct {
	kv  kvStore
	ttl time.Duration
}

// NewRedisStore wires the redis-backed cart store.
func NewRedisStore(kv kvStore, ttl time.Duration) (*RedisStore, error) {
	if kv == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "cart store requires a redis client")
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisStore{kv: kv, ttl: ttl}, nil
}

func (s *RedisStore) Save(ctx context.Context, c *Cart) error {
	if c == nil || c.ID == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "cart id required")
	}
	encoded, err := json.Marshal(c)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode cart")
	}
	if err := s.kv.Set(ctx, s.kv.CartKey(c.ID), encoded, s.ttl); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist cart")
	}
	return nil
}

func (s *RedisStore) Load(ctx context.Context, id string) (*Cart, error) {
	if id == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart id required")
	}
	raw, err := s.kv.Get(ctx, s.kv.CartKey(id))
	if err != nil {
		if redis.IsNil(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}
	var c Cart
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "decode cart")
	}
	return &c, nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	if id == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "cart id required")
	}
	if err := s.kv.Del(ctx, s.kv.CartKey(id)); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete cart")
	}
	return nil
}
