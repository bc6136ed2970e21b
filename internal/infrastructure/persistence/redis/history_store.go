package redis

import (
	"context"
	"encoding/json"
	"fmt"

	goredis "github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"dev-advisor-api/internal/domain/entity"
	apperrors "dev-advisor-api/pkg/errors"
	"dev-advisor-api/pkg/metrics"
)

var historyTracer = otel.Tracer("redis.history")

const (
	historyListKey    = "advisor:history:ids"
	historyItemPrefix = "advisor:history:item:"
)

// HistoryStore 分析历史存储
// 以 Redis List 维护 ID 顺序（最新在前），记录本体按 ID 单独存储；
// 超出容量上限的最旧记录在写入时被淘汰。
type HistoryStore struct {
	client     *Client
	maxEntries int
}

// NewHistoryStore 创建历史存储
func NewHistoryStore(client *Client, maxEntries int) *HistoryStore {
	if maxEntries <= 0 {
		maxEntries = 50
	}
	return &HistoryStore{
		client:     client,
		maxEntries: maxEntries,
	}
}

func historyItemKey(id string) string {
	return historyItemPrefix + id
}

// Save 保存一条历史记录并淘汰超限的最旧记录
func (s *HistoryStore) Save(ctx context.Context, record *entity.SearchHistory) error {
	ctx, span := historyTracer.Start(ctx, "history.Save",
		trace.WithAttributes(attribute.String("history.id", record.ID)))
	defer span.End()

	data, err := json.Marshal(record)
	if err != nil {
		span.RecordError(err)
		metrics.HistorySaveTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("failed to marshal history record: %w", err)
	}

	pipe := s.client.rdb.TxPipeline()
	pipe.Set(ctx, historyItemKey(record.ID), data, 0)
	pipe.LPush(ctx, historyListKey, record.ID)
	lenCmd := pipe.LLen(ctx, historyListKey)
	if _, err := pipe.Exec(ctx); err != nil {
		span.RecordError(err)
		metrics.HistorySaveTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("failed to save history record: %w", err)
	}

	// 淘汰超出上限的最旧记录
	total := lenCmd.Val()
	for total > int64(s.maxEntries) {
		oldID, err := s.client.rdb.RPop(ctx, historyListKey).Result()
		if err != nil {
			if err == goredis.Nil {
				break
			}
			span.RecordError(err)
			break
		}
		_ = s.client.rdb.Del(ctx, historyItemKey(oldID)).Err()
		total--
	}

	metrics.HistorySaveTotal.WithLabelValues("ok").Inc()
	metrics.HistorySize.Set(float64(total))
	return nil
}

// List 按最新在前返回历史记录，可选只看收藏
func (s *HistoryStore) List(ctx context.Context, favoriteOnly bool) ([]*entity.SearchHistory, error) {
	ctx, span := historyTracer.Start(ctx, "history.List",
		trace.WithAttributes(attribute.Bool("history.favorite_only", favoriteOnly)))
	defer span.End()

	ids, err := s.client.rdb.LRange(ctx, historyListKey, 0, int64(s.maxEntries)-1).Result()
	if err != nil {
		span.RecordError(err)
		return nil, apperrors.Wrap(err, apperrors.CodeCacheError, "failed to list history")
	}
	if len(ids) == 0 {
		return []*entity.SearchHistory{}, nil
	}

	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, historyItemKey(id))
	}

	values, err := s.client.rdb.MGet(ctx, keys...).Result()
	if err != nil {
		span.RecordError(err)
		return nil, apperrors.Wrap(err, apperrors.CodeCacheError, "failed to load history records")
	}

	records := make([]*entity.SearchHistory, 0, len(values))
	for _, v := range values {
		raw, ok := v.(string)
		if !ok {
			// 记录本体已被淘汰但 ID 残留，跳过
			continue
		}
		var record entity.SearchHistory
		if err := json.Unmarshal([]byte(raw), &record); err != nil {
			span.RecordError(err)
			continue
		}
		if favoriteOnly && !record.Favorite {
			continue
		}
		records = append(records, &record)
	}

	span.SetAttributes(attribute.Int("history.count", len(records)))
	return records, nil
}

// Get 按 ID 获取单条历史记录
func (s *HistoryStore) Get(ctx context.Context, id string) (*entity.SearchHistory, error) {
	ctx, span := historyTracer.Start(ctx, "history.Get",
		trace.WithAttributes(attribute.String("history.id", id)))
	defer span.End()

	raw, err := s.client.rdb.Get(ctx, historyItemKey(id)).Result()
	if err != nil {
		if err == goredis.Nil {
			return nil, apperrors.ErrHistoryNotFound
		}
		span.RecordError(err)
		return nil, apperrors.Wrap(err, apperrors.CodeCacheError, "failed to get history record")
	}

	var record entity.SearchHistory
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		span.RecordError(err)
		return nil, apperrors.Wrap(err, apperrors.CodeCacheError, "failed to decode history record")
	}
	return &record, nil
}

// SetFavorite 设置收藏标记
func (s *HistoryStore) SetFavorite(ctx context.Context, id string, favorite bool) (*entity.SearchHistory, error) {
	ctx, span := historyTracer.Start(ctx, "history.SetFavorite",
		trace.WithAttributes(
			attribute.String("history.id", id),
			attribute.Bool("history.favorite", favorite),
		))
	defer span.End()

	record, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	record.Favorite = favorite
	data, err := json.Marshal(record)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to marshal history record: %w", err)
	}
	if err := s.client.rdb.Set(ctx, historyItemKey(id), data, 0).Err(); err != nil {
		span.RecordError(err)
		return nil, apperrors.Wrap(err, apperrors.CodeCacheError, "failed to update history record")
	}
	return record, nil
}

// Delete 删除单条历史记录
func (s *HistoryStore) Delete(ctx context.Context, id string) error {
	ctx, span := historyTracer.Start(ctx, "history.Delete",
		trace.WithAttributes(attribute.String("history.id", id)))
	defer span.End()

	removed, err := s.client.rdb.LRem(ctx, historyListKey, 0, id).Result()
	if err != nil {
		span.RecordError(err)
		return apperrors.Wrap(err, apperrors.CodeCacheError, "failed to delete history record")
	}
	if removed == 0 {
		return apperrors.ErrHistoryNotFound
	}
	return s.client.rdb.Del(ctx, historyItemKey(id)).Err()
}

// Clear 清空全部历史
func (s *HistoryStore) Clear(ctx context.Context) error {
	ctx, span := historyTracer.Start(ctx, "history.Clear")
	defer span.End()

	ids, err := s.client.rdb.LRange(ctx, historyListKey, 0, -1).Result()
	if err != nil {
		span.RecordError(err)
		return apperrors.Wrap(err, apperrors.CodeCacheError, "failed to clear history")
	}

	keys := make([]string, 0, len(ids)+1)
	keys = append(keys, historyListKey)
	for _, id := range ids {
		keys = append(keys, historyItemKey(id))
	}

	if err := s.client.rdb.Del(ctx, keys...).Err(); err != nil {
		span.RecordError(err)
		return apperrors.Wrap(err, apperrors.CodeCacheError, "failed to clear history")
	}

	metrics.HistorySize.Set(0)
	return nil
}
