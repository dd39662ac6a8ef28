package entity

import (
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_LegacyContent(t *testing.T) {
	s := &Story{
		Title:         "old story",
		LegacyContent: "once upon a time",
	}

	reconciled := s.Normalize()

	require.Len(t, s.Chapters, 1)
	assert.Equal(t, LegacyChapterID, s.Chapters[0].ID)
	assert.Equal(t, "Chapter 1", s.Chapters[0].Title)
	assert.Equal(t, "once upon a time", s.Chapters[0].Content)
	assert.Equal(t, 1, s.Chapters[0].Order)
	assert.Empty(t, s.LegacyContent)
	assert.Contains(t, reconciled, "content")
}

func TestNormalize_LegacyGenre(t *testing.T) {
	s := &Story{
		Title:       "old story",
		LegacyGenre: "fantasy",
	}

	reconciled := s.Normalize()

	assert.Equal(t, pq.StringArray{"fantasy"}, s.Genres)
	assert.Contains(t, reconciled, "genre")
}

func TestNormalize_GenresTakePrecedenceOverLegacyGenre(t *testing.T) {
	s := &Story{
		Genres:      pq.StringArray{"sci-fi"},
		LegacyGenre: "fantasy",
	}

	reconciled := s.Normalize()

	assert.Equal(t, pq.StringArray{"sci-fi"}, s.Genres)
	assert.NotContains(t, reconciled, "genre")
}

func TestNormalize_ChaptersTakePrecedenceOverLegacyContent(t *testing.T) {
	s := &Story{
		Chapters:      ChapterList{{ID: "c1", Title: "T", Content: "body", Order: 1}},
		LegacyContent: "stale content",
	}

	reconciled := s.Normalize()

	require.Len(t, s.Chapters, 1)
	assert.Equal(t, "c1", s.Chapters[0].ID)
	assert.Empty(t, s.LegacyContent)
	assert.NotContains(t, reconciled, "content")
}

func TestNormalize_Defaults(t *testing.T) {
	s := &Story{}

	reconciled := s.Normalize()

	assert.Empty(t, reconciled)
	assert.NotNil(t, s.Chapters)
	assert.NotNil(t, s.Genres)
	assert.NotNil(t, s.Tags)
	assert.Equal(t, StoryStatusPublished, s.Status)
	assert.Equal(t, DefaultCoverKey, s.CoverImage)
}

func TestNormalize_Idempotent(t *testing.T) {
	s := &Story{LegacyContent: "body", LegacyGenre: "horror"}

	first := s.Normalize()
	second := s.Normalize()

	assert.Len(t, first, 2)
	assert.Empty(t, second)
	assert.Len(t, s.Chapters, 1)
	assert.Equal(t, pq.StringArray{"horror"}, s.Genres)
}

func TestAddChapter_SequentialOrder(t *testing.T) {
	s := NewStory("title", "desc", "author-1", "Author", StoryStatusDraft)

	first := s.AddChapter("One", "a")
	second := s.AddChapter("Two", "b")

	assert.Equal(t, 1, first.Order)
	assert.Equal(t, 2, second.Order)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestRemoveChapter_Resequences(t *testing.T) {
	s := NewStory("title", "desc", "author-1", "Author", StoryStatusDraft)
	a := s.AddChapter("One", "a")
	s.AddChapter("Two", "b")
	c := s.AddChapter("Three", "c")

	require.True(t, s.RemoveChapter(s.Chapters[1].ID))

	require.Len(t, s.Chapters, 2)
	assert.Equal(t, a.ID, s.Chapters[0].ID)
	assert.Equal(t, 1, s.Chapters[0].Order)
	assert.Equal(t, c.ID, s.Chapters[1].ID)
	assert.Equal(t, 2, s.Chapters[1].Order)
}

func TestRemoveChapter_UnknownID(t *testing.T) {
	s := NewStory("title", "desc", "author-1", "Author", StoryStatusDraft)
	s.AddChapter("One", "a")

	assert.False(t, s.RemoveChapter("nope"))
	assert.Len(t, s.Chapters, 1)
}

func TestUpdateChapter(t *testing.T) {
	s := NewStory("title", "desc", "author-1", "Author", StoryStatusDraft)
	ch := s.AddChapter("One", "a")

	require.True(t, s.UpdateChapter(ch.ID, "Renamed", "rewritten"))

	got := s.FindChapter(ch.ID)
	require.NotNil(t, got)
	assert.Equal(t, "Renamed", got.Title)
	assert.Equal(t, "rewritten", got.Content)
}

func TestReorderChapters(t *testing.T) {
	s := NewStory("title", "desc", "author-1", "Author", StoryStatusDraft)
	a := s.AddChapter("One", "a")
	b := s.AddChapter("Two", "b")
	c := s.AddChapter("Three", "c")

	require.True(t, s.ReorderChapters([]string{c.ID, a.ID, b.ID}))

	assert.Equal(t, c.ID, s.Chapters[0].ID)
	assert.Equal(t, a.ID, s.Chapters[1].ID)
	assert.Equal(t, b.ID, s.Chapters[2].ID)
	for i, ch := range s.Chapters {
		assert.Equal(t, i+1, ch.Order)
	}
}

func TestReorderChapters_RejectsPartialOrUnknownIDs(t *testing.T) {
	s := NewStory("title", "desc", "author-1", "Author", StoryStatusDraft)
	a := s.AddChapter("One", "a")
	b := s.AddChapter("Two", "b")

	assert.False(t, s.ReorderChapters([]string{a.ID}))
	assert.False(t, s.ReorderChapters([]string{a.ID, "nope"}))
	assert.False(t, s.ReorderChapters([]string{a.ID, a.ID}))

	// 原始顺序保持不变
	assert.Equal(t, a.ID, s.Chapters[0].ID)
	assert.Equal(t, b.ID, s.Chapters[1].ID)
}

func TestIsOwnedBy(t *testing.T) {
	s := NewStory("title", "desc", "author-1", "Author", StoryStatusDraft)

	assert.True(t, s.IsOwnedBy("author-1"))
	assert.False(t, s.IsOwnedBy("author-2"))
}
