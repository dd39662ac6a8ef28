// Package dto 提供 HTTP 层数据传输对象
package dto

import (
	"time"

	"inkwell-api/internal/domain/entity"
)

// SocialLinksRequest 社交链接
type SocialLinksRequest struct {
	X         string `json:"x"`
	Instagram string `json:"instagram"`
	TikTok    string `json:"tiktok"`
}

// UpdateProfileRequest 更新用户资料请求，缺省字段不触碰
type UpdateProfileRequest struct {
	DisplayName *string             `json:"display_name" binding:"omitempty,max=255"`
	Bio         *string             `json:"bio" binding:"omitempty,max=2000"`
	Avatar      *string             `json:"avatar" binding:"omitempty,max=512"`
	Website     *string             `json:"website" binding:"omitempty,max=512"`
	SocialLinks *SocialLinksRequest `json:"social_links"`
}

// ToFields 转换为部分更新字段映射
func (r *UpdateProfileRequest) ToFields() map[string]interface{} {
	fields := map[string]interface{}{}
	if r.DisplayName != nil {
		fields["display_name"] = *r.DisplayName
	}
	if r.Bio != nil {
		fields["bio"] = *r.Bio
	}
	if r.Avatar != nil {
		fields["avatar"] = *r.Avatar
	}
	if r.Website != nil {
		fields["website"] = *r.Website
	}
	if r.SocialLinks != nil {
		fields["social_links"] = &entity.SocialLinks{
			X:         r.SocialLinks.X,
			Instagram: r.SocialLinks.Instagram,
			TikTok:    r.SocialLinks.TikTok,
		}
	}
	return fields
}

// ProfileResponse 用户资料响应
type ProfileResponse struct {
	ID          string              `json:"id"`
	DisplayName string              `json:"display_name"`
	Email       string              `json:"email"`
	Bio         string              `json:"bio"`
	Avatar      string              `json:"avatar"`
	Website     string              `json:"website,omitempty"`
	SocialLinks *entity.SocialLinks `json:"social_links,omitempty"`
	Favorites   []string            `json:"favorites"`
	ReadLater   []string            `json:"read_later"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

// PublicProfileResponse 公开的用户资料，不含邮箱与书架
type PublicProfileResponse struct {
	ID          string              `json:"id"`
	DisplayName string              `json:"display_name"`
	Bio         string              `json:"bio"`
	Avatar      string              `json:"avatar"`
	Website     string              `json:"website,omitempty"`
	SocialLinks *entity.SocialLinks `json:"social_links,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
}

// ShelfToggleResponse 书架翻转响应
type ShelfToggleResponse struct {
	StoryID string `json:"story_id"`
	Member  bool   `json:"member"`
}

// ToProfileResponse 转换用户实体为资料响应
func ToProfileResponse(u *entity.UserProfile) ProfileResponse {
	favorites := u.Favorites
	if favorites == nil {
		favorites = []string{}
	}
	readLater := u.ReadLater
	if readLater == nil {
		readLater = []string{}
	}

	return ProfileResponse{
		ID:          u.ID,
		DisplayName: u.DisplayName,
		Email:       u.Email,
		Bio:         u.Bio,
		Avatar:      u.Avatar,
		Website:     u.Website,
		SocialLinks: u.SocialLinks,
		Favorites:   favorites,
		ReadLater:   readLater,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

// ToPublicProfileResponse 转换用户实体为公开资料响应
func ToPublicProfileResponse(u *entity.UserProfile) PublicProfileResponse {
	return PublicProfileResponse{
		ID:          u.ID,
		DisplayName: u.DisplayName,
		Bio:         u.Bio,
		Avatar:      u.Avatar,
		Website:     u.Website,
		SocialLinks: u.SocialLinks,
		CreatedAt:   u.CreatedAt,
	}
}
