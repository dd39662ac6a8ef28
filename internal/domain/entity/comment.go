// Package entity 定义领域实体
package entity

import (
	"time"
)

// Comment 评论实体
// UserAvatar 允许为 null（历史数据中未登录头像的用户）
type Comment struct {
	ID         string    `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	StoryID    string    `json:"story_id" gorm:"type:uuid;index;not null"`
	UserID     string    `json:"user_id" gorm:"type:uuid;index;not null"`
	UserName   string    `json:"user_name" gorm:"type:varchar(255)"`
	UserAvatar *string   `json:"user_avatar" gorm:"type:varchar(512)"`
	Text       string    `json:"text" gorm:"type:text;not null"`
	CreatedAt  time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt  time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName 指定表名
func (Comment) TableName() string {
	return "comments"
}

// NewComment 创建新评论
// 创建与更新时间戳取同一时刻
func NewComment(storyID, userID, userName string, userAvatar *string, text string) *Comment {
	now := time.Now()
	return &Comment{
		StoryID:    storyID,
		UserID:     userID,
		UserName:   userName,
		UserAvatar: userAvatar,
		Text:       text,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// IsOwnedBy 检查评论归属
func (c *Comment) IsOwnedBy(userID string) bool {
	return c.UserID == userID
}
