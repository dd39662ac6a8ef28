// Package storage 提供 Cloudflare R2 对象存储实现
package storage

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"

	"inkwell-api/pkg/metrics"

	"inkwell-api/internal/domain/entity"
)

// CoverURLCache 默认封面地址的进程级缓存
// 首次解析后常驻内存，并发首查由 singleflight 合并为一次存储访问
type CoverURLCache struct {
	store ObjectStore

	mu  sync.RWMutex
	url string

	group singleflight.Group
}

// NewCoverURLCache 创建默认封面缓存
func NewCoverURLCache(store ObjectStore) *CoverURLCache {
	return &CoverURLCache{store: store}
}

// DefaultCoverURL 获取默认封面的公开地址
// 对象缺失不视为错误，仍返回按约定路径拼出的地址
func (c *CoverURLCache) DefaultCoverURL(ctx context.Context) (string, error) {
	c.mu.RLock()
	if c.url != "" {
		url := c.url
		c.mu.RUnlock()
		metrics.CacheHitsTotal.WithLabelValues("cover_url").Inc()
		return url, nil
	}
	c.mu.RUnlock()

	metrics.CacheMissesTotal.WithLabelValues("cover_url").Inc()

	result, err, _ := c.group.Do("default_cover", func() (interface{}, error) {
		c.mu.RLock()
		if c.url != "" {
			url := c.url
			c.mu.RUnlock()
			return url, nil
		}
		c.mu.RUnlock()

		url, err := c.resolve(ctx)
		if err != nil {
			return "", err
		}

		c.mu.Lock()
		c.url = url
		c.mu.Unlock()
		return url, nil
	})
	if err != nil {
		return "", err
	}
	return result.(string), nil
}

// Clear 清空缓存，封面占位图更换后调用
func (c *CoverURLCache) Clear() {
	c.mu.Lock()
	c.url = ""
	c.mu.Unlock()
}

func (c *CoverURLCache) resolve(ctx context.Context) (string, error) {
	// 存在性检查失败时不阻断，地址本身是确定性拼接
	if _, err := c.store.Exists(ctx, entity.DefaultCoverKey); err != nil {
		return "", err
	}
	return c.store.PublicURL(entity.DefaultCoverKey), nil
}
