package lookup

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// DefaultKeyPrefix namespaces the Redis sets.
const DefaultKeyPrefix = "asset-import"

// RedisSource reads a Snapshot from Redis sets named "<prefix>:<set>", e.g.
// "asset-import:office_codes". A set key that does not exist leaves the
// Snapshot member nil.
type RedisSource struct {
	client *redis.Client
	prefix string
}

// NewRedisSource wraps a client.
func NewRedisSource(client *redis.Client, prefix string) *RedisSource {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return &RedisSource{client: client, prefix: prefix}
}

// OpenRedis connects using a redis:// URL.
func OpenRedis(url, prefix string) (*RedisSource, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(context.Background()).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return NewRedisSource(client, prefix), nil
}

// Close closes the client.
func (s *RedisSource) Close() error { return s.client.Close() }

func (s *RedisSource) key(name string) string { return s.prefix + ":" + name }

// Load implements Source. All reads go out in one pipeline.
func (s *RedisSource) Load(ctx context.Context) (*Snapshot, error) {
	pipe := s.client.Pipeline()
	exists := make([]*redis.IntCmd, len(sets))
	members := make([]*redis.StringSliceCmd, len(sets))
	for i, st := range sets {
		exists[i] = pipe.Exists(ctx, s.key(st.name))
		members[i] = pipe.SMembers(ctx, s.key(st.name))
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to load lookup sets: %w", err)
	}

	snap := &Snapshot{}
	for i, st := range sets {
		if exists[i].Val() == 0 {
			continue
		}
		*st.dst(snap) = buildSet(st.kind, members[i].Val())
	}
	return snap, nil
}

// Publish replaces the Redis sets with the non-nil members of snap. Used to
// seed Redis from another source. Redis has no empty sets, so an empty member
// reads back as nil.
func (s *RedisSource) Publish(ctx context.Context, snap *Snapshot) error {
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, st := range sets {
			keys := *st.dst(snap)
			if keys == nil {
				continue
			}
			pipe.Del(ctx, s.key(st.name))
			if len(keys) == 0 {
				continue
			}
			members := make([]interface{}, 0, len(keys))
			for k := range keys {
				members = append(members, k)
			}
			pipe.SAdd(ctx, s.key(st.name), members...)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to publish lookup sets: %w", err)
	}
	return nil
}
