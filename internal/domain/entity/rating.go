// Package entity 定义领域实体
package entity

import (
	"time"
)

const (
	// RatingMin 最低评分
	RatingMin = 1
	// RatingMax 最高评分
	RatingMax = 5
)

// Rating 评分实体
// (story_id, user_id) 组合唯一，由数据库唯一索引保证
type Rating struct {
	ID        string    `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	StoryID   string    `json:"story_id" gorm:"type:uuid;not null;uniqueIndex:idx_ratings_story_user"`
	UserID    string    `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_ratings_story_user"`
	Value     int       `json:"value" gorm:"not null"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName 指定表名
func (Rating) TableName() string {
	return "ratings"
}

// NewRating 创建新评分
func NewRating(storyID, userID string, value int) *Rating {
	now := time.Now()
	return &Rating{
		StoryID:   storyID,
		UserID:    userID,
		Value:     value,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsValidValue 检查评分值是否在 1..5 范围内
func (r *Rating) IsValidValue() bool {
	return IsValidRatingValue(r.Value)
}

// IsValidRatingValue 检查评分值是否在 1..5 范围内
func IsValidRatingValue(value int) bool {
	return value >= RatingMin && value <= RatingMax
}

// RatingStats 派生的评分统计，不落库
// Count 为全部评分文档数；非法值不计入分子但计入分母
type RatingStats struct {
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}
