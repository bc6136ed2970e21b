package redis

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeKVCommands 内存实现的最小命令面
type fakeKVCommands struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newFakeKVCommands() *fakeKVCommands {
	return &fakeKVCommands{data: map[string][]byte{}}
}

func (f *fakeKVCommands) Get(ctx context.Context, key string) *redis.StringCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(string(v), nil)
}

func (f *fakeKVCommands) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	switch v := value.(type) {
	case []byte:
		f.data[key] = v
	case string:
		f.data[key] = []byte(v)
	}
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeKVCommands) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	var removed int64
	for _, key := range keys {
		if _, ok := f.data[key]; ok {
			delete(f.data, key)
			removed++
		}
	}
	return redis.NewIntResult(removed, nil)
}

func newTestKVStore() (*KVStore, *fakeKVCommands) {
	fake := newFakeKVCommands()
	return &KVStore{cmd: fake}, fake
}

func TestKVStore_GetMiss(t *testing.T) {
	store, _ := newTestKVStore()

	_, err := store.Get(context.Background(), "advisor:draft:d1")
	assert.ErrorIs(t, err, redis.Nil)
}

func TestKVStore_SetGetRemove(t *testing.T) {
	store, _ := newTestKVStore()
	ctx := context.Background()

	err := store.Set(ctx, "advisor:draft:d1", map[string]string{"step": "2"}, time.Hour)
	require.NoError(t, err)

	val, err := store.Get(ctx, "advisor:draft:d1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"step":"2"}`, string(val))

	require.NoError(t, store.Remove(ctx, "advisor:draft:d1"))
	_, err = store.Get(ctx, "advisor:draft:d1")
	assert.ErrorIs(t, err, redis.Nil)
}

func TestKVStore_GetOrLoadSafe(t *testing.T) {
	store, _ := newTestKVStore()
	ctx := context.Background()

	var calls atomic.Int32
	loader := func() (interface{}, error) {
		calls.Add(1)
		return map[string]int{"score": 7}, nil
	}

	// 未命中时触发加载并回填
	val, err := store.GetOrLoadSafe(ctx, "k", time.Hour, loader)
	require.NoError(t, err)
	assert.JSONEq(t, `{"score":7}`, string(val))
	assert.Equal(t, int32(1), calls.Load())

	// 命中后不再加载
	val, err = store.GetOrLoadSafe(ctx, "k", time.Hour, loader)
	require.NoError(t, err)
	assert.JSONEq(t, `{"score":7}`, string(val))
	assert.Equal(t, int32(1), calls.Load())
}

func TestKVStore_GetOrLoadSafeMergesConcurrentLoads(t *testing.T) {
	store, _ := newTestKVStore()
	ctx := context.Background()

	var calls atomic.Int32
	loader := func() (interface{}, error) {
		calls.Add(1)
		time.Sleep(100 * time.Millisecond)
		return map[string]string{"v": "shared"}, nil
	}

	const workers = 8
	results := make([][]byte, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			val, err := store.GetOrLoadSafe(ctx, "hot-key", time.Hour, loader)
			assert.NoError(t, err)
			results[i] = val
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load(), "并发同 key 加载应被合并为一次")
	for _, val := range results {
		assert.JSONEq(t, `{"v":"shared"}`, string(val))
	}
}

func TestKVStore_GetOrLoadSafeLoaderError(t *testing.T) {
	store, fake := newTestKVStore()

	_, err := store.GetOrLoadSafe(context.Background(), "k", time.Hour, func() (interface{}, error) {
		return nil, assert.AnError
	})
	require.Error(t, err)
	assert.Empty(t, fake.data)
}
