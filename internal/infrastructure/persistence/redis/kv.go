package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/singleflight"
)

var kvTracer = otel.Tracer("redis.kv")

// KVCommands 键值存储依赖的最小命令面
type KVCommands interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// KVStore 通用键值存储
// 承担草稿（表单向导进行中的需求）持久化与分析结果缓存，语义为 get/set/remove。
type KVStore struct {
	cmd   KVCommands
	group singleflight.Group
}

// NewKVStore 创建键值存储
func NewKVStore(client *Client) *KVStore {
	return &KVStore{
		cmd: client.rdb,
	}
}

// Get 获取值；键不存在返回 redis.Nil
func (s *KVStore) Get(ctx context.Context, key string) ([]byte, error) {
	ctx, span := kvTracer.Start(ctx, "kv.Get",
		trace.WithAttributes(attribute.String("kv.key", key)))
	defer span.End()

	val, err := s.cmd.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			span.SetAttributes(attribute.Bool("kv.hit", false))
			return nil, err
		}
		span.RecordError(err)
		return nil, err
	}

	span.SetAttributes(attribute.Bool("kv.hit", true))
	return val, nil
}

// Set 序列化并写入值
func (s *KVStore) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	ctx, span := kvTracer.Start(ctx, "kv.Set",
		trace.WithAttributes(
			attribute.String("kv.key", key),
			attribute.Int64("kv.ttl_ms", ttl.Milliseconds()),
		))
	defer span.End()

	bytes, err := json.Marshal(value)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to marshal value: %w", err)
	}

	return s.cmd.Set(ctx, key, bytes, ttl).Err()
}

// Remove 删除键
func (s *KVStore) Remove(ctx context.Context, keys ...string) error {
	ctx, span := kvTracer.Start(ctx, "kv.Remove",
		trace.WithAttributes(attribute.Int("kv.key_count", len(keys))))
	defer span.End()

	return s.cmd.Del(ctx, keys...).Err()
}

// GetOrLoadSafe Read-Through 读取，使用 singleflight 合并并发加载
func (s *KVStore) GetOrLoadSafe(ctx context.Context, key string, ttl time.Duration, loader func() (interface{}, error)) ([]byte, error) {
	ctx, span := kvTracer.Start(ctx, "kv.GetOrLoadSafe",
		trace.WithAttributes(attribute.String("kv.key", key)))
	defer span.End()

	val, err := s.cmd.Get(ctx, key).Bytes()
	if err == nil {
		span.SetAttributes(attribute.Bool("kv.hit", true))
		return val, nil
	}

	if err != redis.Nil {
		span.RecordError(err)
		return nil, err
	}

	span.SetAttributes(attribute.Bool("kv.hit", false))

	// 合并并发请求，避免同 key 的重复加载
	result, err, shared := s.group.Do(key, func() (interface{}, error) {
		// 再次检查（可能已被其他请求填充）
		val, err := s.cmd.Get(ctx, key).Bytes()
		if err == nil {
			return val, nil
		}

		data, err := loader()
		if err != nil {
			return nil, err
		}

		bytes, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal data: %w", err)
		}

		if err := s.cmd.Set(ctx, key, bytes, ttl).Err(); err != nil {
			// 写入失败不影响返回结果
			span.RecordError(err)
		}

		return bytes, nil
	})

	span.SetAttributes(attribute.Bool("kv.shared", shared))

	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	return result.([]byte), nil
}
