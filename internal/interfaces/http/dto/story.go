// Package dto 提供 HTTP 层数据传输对象
package dto

import (
	"time"

	"inkwell-api/internal/application/story"
	"inkwell-api/internal/domain/entity"
)

// CreateStoryRequest 创建作品请求
type CreateStoryRequest struct {
	Title       string   `json:"title" binding:"required,max=255"`
	Description string   `json:"description" binding:"max=5000"`
	Genres      []string `json:"genres"`
	Tags        []string `json:"tags"`
	Status      string   `json:"status" binding:"omitempty,oneof=draft published"`
	CoverImage  string   `json:"cover_image"`
}

// ToCreateInput 转换为应用层入参
func (r *CreateStoryRequest) ToCreateInput() story.CreateInput {
	return story.CreateInput{
		Title:       r.Title,
		Description: r.Description,
		Genres:      r.Genres,
		Tags:        r.Tags,
		Status:      entity.StoryStatus(r.Status),
		CoverImage:  r.CoverImage,
	}
}

// UpdateStoryRequest 更新作品请求，缺省字段不触碰
type UpdateStoryRequest struct {
	Title       *string  `json:"title" binding:"omitempty,max=255"`
	Description *string  `json:"description" binding:"omitempty,max=5000"`
	Genres      []string `json:"genres"`
	Tags        []string `json:"tags"`
	Status      *string  `json:"status" binding:"omitempty,oneof=draft published"`
}

// ToUpdateInput 转换为应用层入参
func (r *UpdateStoryRequest) ToUpdateInput() story.UpdateInput {
	input := story.UpdateInput{
		Title:       r.Title,
		Description: r.Description,
		Genres:      r.Genres,
		Tags:        r.Tags,
	}
	if r.Status != nil {
		status := entity.StoryStatus(*r.Status)
		input.Status = &status
	}
	return input
}

// ChapterRequest 章节创建/更新请求
type ChapterRequest struct {
	Title   string `json:"title" binding:"required,max=255"`
	Content string `json:"content" binding:"required"`
}

// ReorderChaptersRequest 章节重排请求
type ReorderChaptersRequest struct {
	ChapterIDs []string `json:"chapter_ids" binding:"required,min=1"`
}

// ChapterResponse 章节响应
type ChapterResponse struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
	Order   int    `json:"order"`
}

// StoryResponse 作品响应
type StoryResponse struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Chapters    []ChapterResponse `json:"chapters"`
	Genres      []string          `json:"genres"`
	Tags        []string          `json:"tags"`
	AuthorID    string            `json:"author_id"`
	AuthorName  string            `json:"author_name"`
	Status      string            `json:"status"`
	CoverImage  string            `json:"cover_image"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// StorySummaryResponse 列表场景的作品摘要，不携带章节正文
type StorySummaryResponse struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	ChapterCount int       `json:"chapter_count"`
	Genres       []string  `json:"genres"`
	Tags         []string  `json:"tags"`
	AuthorID     string    `json:"author_id"`
	AuthorName   string    `json:"author_name"`
	Status       string    `json:"status"`
	CoverImage   string    `json:"cover_image"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// StoryListResponse 作品列表响应
type StoryListResponse struct {
	Stories []StorySummaryResponse `json:"stories"`
	Total   int                    `json:"total"`
}

// DashboardEntryResponse 作者面板条目
type DashboardEntryResponse struct {
	Story         StorySummaryResponse `json:"story"`
	CommentCount  int64                `json:"comment_count"`
	RatingAverage float64              `json:"rating_average"`
	RatingCount   int                  `json:"rating_count"`
}

// DashboardResponse 作者面板响应
type DashboardResponse struct {
	Entries []DashboardEntryResponse `json:"entries"`
}

// CoverResponse 封面地址响应
type CoverResponse struct {
	URL string `json:"url"`
}

// ToStoryResponse 转换作品实体为响应
func ToStoryResponse(s *entity.Story) StoryResponse {
	chapters := make([]ChapterResponse, 0, len(s.Chapters))
	for _, ch := range s.Chapters {
		chapters = append(chapters, ChapterResponse{
			ID:      ch.ID,
			Title:   ch.Title,
			Content: ch.Content,
			Order:   ch.Order,
		})
	}

	return StoryResponse{
		ID:          s.ID,
		Title:       s.Title,
		Description: s.Description,
		Chapters:    chapters,
		Genres:      s.Genres,
		Tags:        s.Tags,
		AuthorID:    s.AuthorID,
		AuthorName:  s.AuthorName,
		Status:      string(s.Status),
		CoverImage:  s.CoverImage,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

// ToStorySummaryResponse 转换作品实体为摘要响应
func ToStorySummaryResponse(s *entity.Story) StorySummaryResponse {
	return StorySummaryResponse{
		ID:           s.ID,
		Title:        s.Title,
		Description:  s.Description,
		ChapterCount: len(s.Chapters),
		Genres:       s.Genres,
		Tags:         s.Tags,
		AuthorID:     s.AuthorID,
		AuthorName:   s.AuthorName,
		Status:       string(s.Status),
		CoverImage:   s.CoverImage,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}

// ToStoryListResponse 转换作品列表为响应
func ToStoryListResponse(stories []*entity.Story) StoryListResponse {
	items := make([]StorySummaryResponse, 0, len(stories))
	for _, s := range stories {
		items = append(items, ToStorySummaryResponse(s))
	}
	return StoryListResponse{
		Stories: items,
		Total:   len(items),
	}
}

// ToDashboardResponse 转换作者面板条目为响应
func ToDashboardResponse(entries []*story.DashboardEntry) DashboardResponse {
	items := make([]DashboardEntryResponse, 0, len(entries))
	for _, e := range entries {
		items = append(items, DashboardEntryResponse{
			Story:         ToStorySummaryResponse(e.Story),
			CommentCount:  e.CommentCount,
			RatingAverage: e.RatingAverage,
			RatingCount:   e.RatingCount,
		})
	}
	return DashboardResponse{Entries: items}
}
