// Package entity 定义领域实体
package entity

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// StoryStatus 作品状态
type StoryStatus string

const (
	StoryStatusDraft     StoryStatus = "draft"
	StoryStatusPublished StoryStatus = "published"
)

// DefaultCoverKey 默认封面在对象存储中的路径
const DefaultCoverKey = "placeholders/cover.png"

// LegacyChapterID 旧文档单 content 字段归一后生成的章节 ID
const LegacyChapterID = "default"

// Chapter 章节，作为有序列表内嵌在作品文档中
// Order 从 1 开始，连续且唯一，插入/删除/重排后重新编号
type Chapter struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
	Order   int    `json:"order"`
}

// ChapterList 章节列表（JSONB 存储）
type ChapterList []Chapter

// Story 作品实体
type Story struct {
	ID          string         `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Title       string         `json:"title" gorm:"type:varchar(255);not null"`
	Description string         `json:"description" gorm:"type:text"`
	Chapters    ChapterList    `json:"chapters" gorm:"type:jsonb;serializer:json"`
	Genres      pq.StringArray `json:"genres" gorm:"type:text[]"`
	Tags        pq.StringArray `json:"tags" gorm:"type:text[]"`
	AuthorID    string         `json:"author_id" gorm:"type:uuid;index;not null"`
	AuthorName  string         `json:"author_name" gorm:"type:varchar(255)"`
	Status      StoryStatus    `json:"status" gorm:"type:varchar(50)"`
	CoverImage  string         `json:"cover_image" gorm:"type:varchar(512)"`

	// 旧文档形态遗留字段：单 content 字符串与单数 genre
	// 读取时由 Normalize 归一，不出现在 JSON 输出中
	LegacyContent string `json:"-" gorm:"column:content;type:text"`
	LegacyGenre   string `json:"-" gorm:"column:genre;type:varchar(100)"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName 指定表名
func (Story) TableName() string {
	return "stories"
}

// NewStory 创建新作品
// chapters 缺省为空列表，coverImage 缺省为默认封面路径
func NewStory(title, description, authorID, authorName string, status StoryStatus) *Story {
	now := time.Now()
	if status == "" {
		status = StoryStatusDraft
	}
	return &Story{
		Title:       title,
		Description: description,
		Chapters:    ChapterList{},
		Genres:      pq.StringArray{},
		Tags:        pq.StringArray{},
		AuthorID:    authorID,
		AuthorName:  authorName,
		Status:      status,
		CoverImage:  DefaultCoverKey,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Normalize 将旧文档形态归一为当前数组形态
// 返回被归一的字段名列表（content/genre），供调用方记录指标
func (s *Story) Normalize() []string {
	var reconciled []string

	if s.Chapters == nil {
		if s.LegacyContent != "" {
			s.Chapters = ChapterList{{
				ID:      LegacyChapterID,
				Title:   "Chapter 1",
				Content: s.LegacyContent,
				Order:   1,
			}}
			reconciled = append(reconciled, "content")
		} else {
			s.Chapters = ChapterList{}
		}
	}
	s.LegacyContent = ""

	if len(s.Genres) == 0 && s.LegacyGenre != "" {
		s.Genres = pq.StringArray{s.LegacyGenre}
		reconciled = append(reconciled, "genre")
	}
	if s.Genres == nil {
		s.Genres = pq.StringArray{}
	}
	if s.Tags == nil {
		s.Tags = pq.StringArray{}
	}

	if s.Status == "" {
		s.Status = StoryStatusPublished
	}
	if s.UpdatedAt.IsZero() {
		s.UpdatedAt = s.CreatedAt
	}
	if s.CoverImage == "" {
		s.CoverImage = DefaultCoverKey
	}

	return reconciled
}

// IsOwnedBy 检查作品归属
func (s *Story) IsOwnedBy(userID string) bool {
	return s.AuthorID == userID
}

// FindChapter 根据 ID 查找章节
func (s *Story) FindChapter(chapterID string) *Chapter {
	for i := range s.Chapters {
		if s.Chapters[i].ID == chapterID {
			return &s.Chapters[i]
		}
	}
	return nil
}

// AddChapter 追加章节并返回新章节
func (s *Story) AddChapter(title, content string) *Chapter {
	chapter := Chapter{
		ID:      uuid.New().String(),
		Title:   title,
		Content: content,
		Order:   len(s.Chapters) + 1,
	}
	s.Chapters = append(s.Chapters, chapter)
	s.resequence()
	s.UpdatedAt = time.Now()
	return &s.Chapters[len(s.Chapters)-1]
}

// UpdateChapter 更新章节标题与内容
func (s *Story) UpdateChapter(chapterID, title, content string) bool {
	chapter := s.FindChapter(chapterID)
	if chapter == nil {
		return false
	}
	chapter.Title = title
	chapter.Content = content
	s.UpdatedAt = time.Now()
	return true
}

// RemoveChapter 删除章节并重新编号
func (s *Story) RemoveChapter(chapterID string) bool {
	for i := range s.Chapters {
		if s.Chapters[i].ID == chapterID {
			s.Chapters = append(s.Chapters[:i], s.Chapters[i+1:]...)
			s.resequence()
			s.UpdatedAt = time.Now()
			return true
		}
	}
	return false
}

// ReorderChapters 按给定的章节 ID 顺序重排
// ids 必须恰好覆盖现有全部章节，否则不做任何修改
func (s *Story) ReorderChapters(ids []string) bool {
	if len(ids) != len(s.Chapters) {
		return false
	}

	byID := make(map[string]Chapter, len(s.Chapters))
	for _, c := range s.Chapters {
		byID[c.ID] = c
	}

	reordered := make(ChapterList, 0, len(ids))
	for _, id := range ids {
		c, ok := byID[id]
		if !ok {
			return false
		}
		delete(byID, id)
		reordered = append(reordered, c)
	}

	for i := range reordered {
		reordered[i].Order = i + 1
	}
	s.Chapters = reordered
	s.UpdatedAt = time.Now()
	return true
}

// resequence 按现有顺序重新编号，保证 Order 从 1 连续
func (s *Story) resequence() {
	sort.SliceStable(s.Chapters, func(i, j int) bool {
		return s.Chapters[i].Order < s.Chapters[j].Order
	})
	for i := range s.Chapters {
		s.Chapters[i].Order = i + 1
	}
}
