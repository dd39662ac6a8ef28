// Package entity 定义领域实体
package entity

import (
	"time"

	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"
)

// SocialLinks 社交链接
type SocialLinks struct {
	X         string `json:"x,omitempty"`
	Instagram string `json:"instagram,omitempty"`
	TikTok    string `json:"tiktok,omitempty"`
}

// UserProfile 用户资料实体
// Favorites/ReadLater 为作品 ID 集合，直接作为数组字段存储在用户行上
type UserProfile struct {
	ID           string         `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	DisplayName  string         `json:"display_name" gorm:"type:varchar(255);not null"`
	Email        string         `json:"email" gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash string         `json:"-" gorm:"type:varchar(255)"` // 不在 JSON 中暴露
	Bio          string         `json:"bio" gorm:"type:text"`
	Avatar       string         `json:"avatar" gorm:"type:varchar(512)"`
	Website      string         `json:"website,omitempty" gorm:"type:varchar(512)"`
	SocialLinks  *SocialLinks   `json:"social_links,omitempty" gorm:"type:jsonb;serializer:json"`
	Favorites    pq.StringArray `json:"favorites" gorm:"type:text[]"`
	ReadLater    pq.StringArray `json:"read_later" gorm:"type:text[]"`
	CreatedAt    time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName 指定表名
func (UserProfile) TableName() string {
	return "users"
}

// NewUserProfile 创建新用户资料
// favorites/readLater 缺省初始化为空数组
func NewUserProfile(email, displayName string) *UserProfile {
	now := time.Now()
	return &UserProfile{
		DisplayName: displayName,
		Email:       email,
		SocialLinks: &SocialLinks{},
		Favorites:   pq.StringArray{},
		ReadLater:   pq.StringArray{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// SetPassword 设置并散列密码
func (u *UserProfile) SetPassword(password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

// CheckPassword 校验密码
func (u *UserProfile) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
	return err == nil
}

// HasFavorite 检查作品是否在收藏列表中
func (u *UserProfile) HasFavorite(storyID string) bool {
	return containsID(u.Favorites, storyID)
}

// HasReadLater 检查作品是否在稍后阅读列表中
func (u *UserProfile) HasReadLater(storyID string) bool {
	return containsID(u.ReadLater, storyID)
}

func containsID(ids pq.StringArray, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
