package storage

import (
	"context"
	"errors"
	"io"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkwell-api/internal/domain/entity"
)

type countingStore struct {
	existsCalls atomic.Int64
	existsErr   error
}

func (s *countingStore) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	return nil
}

func (s *countingStore) Delete(ctx context.Context, key string) error { return nil }

func (s *countingStore) Exists(ctx context.Context, key string) (bool, error) {
	s.existsCalls.Add(1)
	if s.existsErr != nil {
		return false, s.existsErr
	}
	return true, nil
}

func (s *countingStore) PublicURL(key string) string {
	return "https://cdn.example.com/" + key
}

func TestDefaultCoverURL_CachesFirstResolution(t *testing.T) {
	store := &countingStore{}
	cache := NewCoverURLCache(store)
	ctx := context.Background()

	url, err := cache.DefaultCoverURL(ctx)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/"+entity.DefaultCoverKey, url)

	_, err = cache.DefaultCoverURL(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), store.existsCalls.Load())
}

func TestDefaultCoverURL_ClearForcesReresolve(t *testing.T) {
	store := &countingStore{}
	cache := NewCoverURLCache(store)
	ctx := context.Background()

	_, err := cache.DefaultCoverURL(ctx)
	require.NoError(t, err)

	cache.Clear()

	_, err = cache.DefaultCoverURL(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), store.existsCalls.Load())
}

func TestDefaultCoverURL_ErrorNotCached(t *testing.T) {
	store := &countingStore{existsErr: errors.New("storage down")}
	cache := NewCoverURLCache(store)
	ctx := context.Background()

	_, err := cache.DefaultCoverURL(ctx)
	require.Error(t, err)

	// 故障恢复后重新解析成功
	store.existsErr = nil
	url, err := cache.DefaultCoverURL(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, url)
}

func TestDefaultCoverURL_ConcurrentAccess(t *testing.T) {
	store := &countingStore{}
	cache := NewCoverURLCache(store)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			url, err := cache.DefaultCoverURL(ctx)
			assert.NoError(t, err)
			assert.NotEmpty(t, url)
		}()
	}
	wg.Wait()
}

func TestCoverKey(t *testing.T) {
	key := CoverKey("story-1", "photo.jpg")
	assert.Regexp(t, `^covers/story-1-\d+\.jpg$`, key)

	// 无扩展名时回退到 .png
	key = CoverKey("story-1", "photo")
	assert.Regexp(t, `^covers/story-1-\d+\.png$`, key)
}
