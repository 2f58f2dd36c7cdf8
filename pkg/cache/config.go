package cache

import "time"

// RedisConfig holds the connection settings of RedisCache.
type RedisConfig struct {
	Addr         string
	Password     string
	DB           int
	PoolSize     int
	PoolTimeout  time.Duration
	MinIdleConns int
	Prefix       string // namespaces every key as "<prefix>:<key>"
}

type RedisOption func(*RedisConfig)

func WithRedisAddr(addr string) RedisOption { return func(c *RedisConfig) { c.Addr = addr } }

func WithRedisPassword(password string) RedisOption {
	return func(c *RedisConfig) { c.Password = password }
}

func WithRedisDB(db int) RedisOption { return func(c *RedisConfig) { c.DB = db } }

// WithRedisPool sizes the connection pool; zero values keep the defaults.
func WithRedisPool(size, minIdle int, timeout time.Duration) RedisOption {
	return func(c *RedisConfig) {
		if size > 0 {
			c.PoolSize = size
		}
		if minIdle > 0 {
			c.MinIdleConns = minIdle
		}
		if timeout > 0 {
			c.PoolTimeout = timeout
		}
	}
}

// WithRedisPrefix sets the key namespace; "" stores keys as given.
func WithRedisPrefix(prefix string) RedisOption { return func(c *RedisConfig) { c.Prefix = prefix } }

// MemoryConfig holds the settings of MemoryCache.
type MemoryConfig struct {
	MaxSize         int           // entries kept before LRU eviction
	CleanupInterval time.Duration // 0 disables the background sweep
	DefaultTTL      time.Duration // lifetime of entries set without expiration
	Now             func() time.Time
}

type MemoryOption func(*MemoryConfig)

func WithMemoryMaxSize(size int) MemoryOption { return func(c *MemoryConfig) { c.MaxSize = size } }

func WithMemoryCleanup(interval time.Duration) MemoryOption {
	return func(c *MemoryConfig) { c.CleanupInterval = interval }
}

func WithMemoryDefaultTTL(ttl time.Duration) MemoryOption {
	return func(c *MemoryConfig) {
		if ttl > 0 {
			c.DefaultTTL = ttl
		}
	}
}

// WithMemoryClock replaces time.Now.
func WithMemoryClock(now func() time.Time) MemoryOption { return func(c *MemoryConfig) { c.Now = now } }

// LayeredConfig holds the settings of LayeredCache.
type LayeredConfig struct {
	MemoryMaxSize int
	// L1TTL bounds how long an entry promoted from L2 stays in memory.
	L1TTL time.Duration
}

type LayeredOption func(*LayeredConfig)

func WithLayeredMemorySize(size int) LayeredOption {
	return func(c *LayeredConfig) { c.MemoryMaxSize = size }
}

func WithLayeredL1TTL(ttl time.Duration) LayeredOption {
	return func(c *LayeredConfig) { c.L1TTL = ttl }
}
