package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrCacheMiss = errors.New("cache: key not found")
)

// Service defines cache operations interface. Values are stored as JSON, so
// Get can decode into any type Set accepted.
type Service interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Get(ctx context.Context, key string, dest interface{}) error
	Delete(ctx context.Context, keys ...string) error
	Exists(ctx context.Context, keys ...string) (bool, error)
	Close() error
}

// GetOrLoad returns the cached value under key, or calls load, stores its
// result for ttl and returns it. Write failures are reported through onErr
// and never fail the call.
func GetOrLoad[T any](ctx context.Context, c Service, key string, ttl time.Duration, load func(context.Context) (T, error), onErr func(error)) (T, bool, error) {
	var v T
	err := c.Get(ctx, key, &v)
	if err == nil {
		return v, true, nil
	}
	if !errors.Is(err, ErrCacheMiss) && onErr != nil {
		onErr(fmt.Errorf("cache get %s: %w", key, err))
	}

	v, err = load(ctx)
	if err != nil {
		return v, false, err
	}
	if err := c.Set(ctx, key, v, ttl); err != nil && onErr != nil {
		onErr(fmt.Errorf("cache set %s: %w", key, err))
	}
	return v, false, nil
}

func encode(value interface{}) ([]byte, error) {
	switch v := value.(type) {
	case string:
		return []byte(v), nil
	case *string:
		return []byte(*v), nil
	}
	return json.Marshal(value)
}

func decode(data []byte, dest interface{}) error {
	if strPtr, ok := dest.(*string); ok {
		*strPtr = string(data)
		return nil
	}
	return json.Unmarshal(data, dest)
}

// Key joins a namespace and its parts with ":", e.g. "eph:pos:2024-03-20T12:00:00Z".
func Key(namespace string, parts ...string) string {
	if len(parts) == 0 {
		return namespace
	}
	return namespace + ":" + strings.Join(parts, ":")
}
