// Package repository 定义数据访问层接口
package repository

import (
	"context"

	"inkwell-api/internal/domain/entity"
)

// ShelfField 用户书架字段
type ShelfField string

const (
	ShelfFavorites ShelfField = "favorites"
	ShelfReadLater ShelfField = "read_later"
)

// UserRepository 用户资料仓储接口
type UserRepository interface {
	// Create 创建用户资料
	Create(ctx context.Context, user *entity.UserProfile) error

	// GetByID 根据 ID 获取用户资料，不存在时返回 (nil, nil)
	GetByID(ctx context.Context, id string) (*entity.UserProfile, error)

	// GetByEmail 根据邮箱获取用户资料，不存在时返回 (nil, nil)
	GetByEmail(ctx context.Context, email string) (*entity.UserProfile, error)

	// ExistsByEmail 检查邮箱是否已注册
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// UpdateFields 部分字段更新，只触碰给定字段
	UpdateFields(ctx context.Context, id string, fields map[string]interface{}) error

	// ToggleShelf 原子翻转书架成员关系：storyID 在数组中则移除，
	// 否则追加。返回翻转后的成员状态；用户不存在时返回 ErrProfileNotFound
	ToggleShelf(ctx context.Context, userID string, field ShelfField, storyID string) (bool, error)

	// GetShelf 获取书架中的作品 ID 列表，用户不存在时返回 (nil, nil)
	GetShelf(ctx context.Context, userID string, field ShelfField) ([]string, error)
}
