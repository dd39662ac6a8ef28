// Package postgres 提供 PostgreSQL 数据库访问层实现
package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	apperrors "inkwell-api/pkg/errors"

	"inkwell-api/internal/domain/entity"
	"inkwell-api/internal/domain/repository"
)

// UserRepo 用户资料仓储的 PostgreSQL 实现
type UserRepo struct {
	client *Client
}

// NewUserRepo 创建用户资料仓储
func NewUserRepo(client *Client) repository.UserRepository {
	return &UserRepo{client: client}
}

// Create 创建用户资料
func (r *UserRepo) Create(ctx context.Context, user *entity.UserProfile) error {
	ctx, span := tracer.Start(ctx, "UserRepo.Create")
	defer span.End()

	if err := getDB(ctx, r.client.db).Create(user).Error; err != nil {
		span.RecordError(err)
		return apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to create user")
	}
	return nil
}

// GetByID 根据 ID 获取用户资料，不存在时返回 (nil, nil)
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.UserProfile, error) {
	ctx, span := tracer.Start(ctx, "UserRepo.GetByID")
	defer span.End()

	var user entity.UserProfile
	err := getDB(ctx, r.client.db).Where("id = ?", id).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		span.RecordError(err)
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to get user")
	}
	return &user, nil
}

// GetByEmail 根据邮箱获取用户资料，不存在时返回 (nil, nil)
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.UserProfile, error) {
	ctx, span := tracer.Start(ctx, "UserRepo.GetByEmail")
	defer span.End()

	var user entity.UserProfile
	err := getDB(ctx, r.client.db).Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		span.RecordError(err)
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to get user by email")
	}
	return &user, nil
}

// ExistsByEmail 检查邮箱是否已注册
func (r *UserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	ctx, span := tracer.Start(ctx, "UserRepo.ExistsByEmail")
	defer span.End()

	var count int64
	err := getDB(ctx, r.client.db).
		Model(&entity.UserProfile{}).
		Where("email = ?", email).
		Count(&count).Error
	if err != nil {
		span.RecordError(err)
		return false, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to check email")
	}
	return count > 0, nil
}

// UpdateFields 部分字段更新，只触碰给定字段
func (r *UserRepo) UpdateFields(ctx context.Context, id string, fields map[string]interface{}) error {
	ctx, span := tracer.Start(ctx, "UserRepo.UpdateFields")
	defer span.End()

	err := getDB(ctx, r.client.db).
		Model(&entity.UserProfile{}).
		Where("id = ?", id).
		Updates(fields).Error
	if err != nil {
		span.RecordError(err)
		return apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to update user fields")
	}
	return nil
}

// ToggleShelf 原子翻转书架成员关系
// 单条 UPDATE 内完成判断与增删，RETURNING 返回翻转后的成员状态，
// 并发翻转不会产生重复元素
func (r *UserRepo) ToggleShelf(ctx context.Context, userID string, field repository.ShelfField, storyID string) (bool, error) {
	ctx, span := tracer.Start(ctx, "UserRepo.ToggleShelf")
	defer span.End()

	column, err := shelfColumn(field)
	if err != nil {
		return false, err
	}

	query := fmt.Sprintf(`
		UPDATE users
		SET %[1]s = CASE
			WHEN ? = ANY(COALESCE(%[1]s, '{}'))
			THEN array_remove(%[1]s, ?)
			ELSE array_append(COALESCE(%[1]s, '{}'), ?)
		END,
		updated_at = NOW()
		WHERE id = ?
		RETURNING ? = ANY(%[1]s) AS member`, column)

	var member bool
	result := getDB(ctx, r.client.db).
		Raw(query, storyID, storyID, storyID, userID, storyID).
		Scan(&member)
	if result.Error != nil {
		span.RecordError(result.Error)
		return false, apperrors.Wrap(result.Error, apperrors.CodeDatabaseError, "failed to toggle shelf")
	}
	if result.RowsAffected == 0 {
		return false, apperrors.ErrProfileNotFound
	}
	return member, nil
}

// GetShelf 获取书架中的作品 ID 列表，用户不存在时返回 (nil, nil)
func (r *UserRepo) GetShelf(ctx context.Context, userID string, field repository.ShelfField) ([]string, error) {
	ctx, span := tracer.Start(ctx, "UserRepo.GetShelf")
	defer span.End()

	user, err := r.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}

	switch field {
	case repository.ShelfFavorites:
		return user.Favorites, nil
	case repository.ShelfReadLater:
		return user.ReadLater, nil
	default:
		return nil, apperrors.New(apperrors.CodeInvalidParam, fmt.Sprintf("unknown shelf field: %s", field))
	}
}

// shelfColumn 将书架字段映射为列名，拒绝未知字段以避免 SQL 注入
func shelfColumn(field repository.ShelfField) (string, error) {
	switch field {
	case repository.ShelfFavorites:
		return "favorites", nil
	case repository.ShelfReadLater:
		return "read_later", nil
	default:
		return "", apperrors.New(apperrors.CodeInvalidParam, fmt.Sprintf("unknown shelf field: %s", field))
	}
}
