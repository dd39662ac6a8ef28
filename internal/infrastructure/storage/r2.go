// Package storage 提供 Cloudflare R2 对象存储实现
package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	apperrors "inkwell-api/pkg/errors"
	"inkwell-api/pkg/metrics"

	"inkwell-api/internal/config"
)

var tracer = otel.Tracer("storage")

// ObjectStore 对象存储接口
type ObjectStore interface {
	// Put 上传对象
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error

	// Delete 删除对象
	Delete(ctx context.Context, key string) error

	// Exists 检查对象是否存在
	Exists(ctx context.Context, key string) (bool, error)

	// PublicURL 返回对象的公开访问地址
	PublicURL(key string) string
}

// R2Store Cloudflare R2 实现（S3 兼容接口）
type R2Store struct {
	client    *minio.Client
	bucket    string
	publicURL string
}

// NewR2Store 创建 R2 存储客户端
func NewR2Store(cfg *config.R2Config) (*R2Store, error) {
	endpoint := fmt.Sprintf("%s.r2.cloudflarestorage.com", cfg.AccountID)

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: true,
		Region: "auto",
	})
	if err != nil {
		return nil, fmt.Errorf("init r2 client: %w", err)
	}

	return &R2Store{
		client:    client,
		bucket:    cfg.Bucket,
		publicURL: strings.TrimRight(cfg.PublicURL, "/"),
	}, nil
}

// Put 上传对象
func (s *R2Store) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	ctx, span := tracer.Start(ctx, "r2.Put",
		trace.WithAttributes(
			attribute.String("storage.key", key),
			attribute.Int64("storage.size", size),
		))
	defer span.End()

	_, err := s.client.PutObject(ctx, s.bucket, key, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		span.RecordError(err)
		metrics.CoverUploadsTotal.WithLabelValues("error").Inc()
		return apperrors.Wrap(err, apperrors.CodeStorageError, "failed to upload object")
	}

	metrics.CoverUploadsTotal.WithLabelValues("success").Inc()
	metrics.CoverUploadBytes.Observe(float64(size))
	return nil
}

// Delete 删除对象
func (s *R2Store) Delete(ctx context.Context, key string) error {
	ctx, span := tracer.Start(ctx, "r2.Delete",
		trace.WithAttributes(attribute.String("storage.key", key)))
	defer span.End()

	err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{})
	if err != nil {
		span.RecordError(err)
		return apperrors.Wrap(err, apperrors.CodeStorageError, "failed to delete object")
	}
	return nil
}

// Exists 检查对象是否存在
func (s *R2Store) Exists(ctx context.Context, key string) (bool, error) {
	ctx, span := tracer.Start(ctx, "r2.Exists",
		trace.WithAttributes(attribute.String("storage.key", key)))
	defer span.End()

	_, err := s.client.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{})
	if err != nil {
		resp := minio.ToErrorResponse(err)
		if resp.Code == "NoSuchKey" || resp.StatusCode == 404 {
			return false, nil
		}
		span.RecordError(err)
		return false, apperrors.Wrap(err, apperrors.CodeStorageError, "failed to stat object")
	}
	return true, nil
}

// PublicURL 返回对象的公开访问地址
func (s *R2Store) PublicURL(key string) string {
	return fmt.Sprintf("%s/%s", s.publicURL, strings.TrimLeft(key, "/"))
}

// CoverKey 构建作品封面的存储路径
// 文件名带毫秒时间戳避免 CDN 缓存旧版本
func CoverKey(storyID, filename string) string {
	ext := path.Ext(filename)
	if ext == "" {
		ext = ".png"
	}
	return fmt.Sprintf("covers/%s-%d%s", storyID, time.Now().UnixMilli(), ext)
}
