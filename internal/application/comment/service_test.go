package comment

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkwell-api/internal/domain/entity"
	apperrors "inkwell-api/pkg/errors"
)

type fakeCommentRepo struct {
	comments map[string]*entity.Comment
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{comments: map[string]*entity.Comment{}}
}

func (f *fakeCommentRepo) Create(ctx context.Context, comment *entity.Comment) error {
	if comment.ID == "" {
		comment.ID = uuid.New().String()
	}
	f.comments[comment.ID] = comment
	return nil
}

func (f *fakeCommentRepo) GetByID(ctx context.Context, id string) (*entity.Comment, error) {
	return f.comments[id], nil
}

func (f *fakeCommentRepo) ListByStory(ctx context.Context, storyID string) ([]*entity.Comment, error) {
	var out []*entity.Comment
	for _, c := range f.comments {
		if c.StoryID == storyID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeCommentRepo) CountByStory(ctx context.Context, storyID string) (int64, error) {
	list, _ := f.ListByStory(ctx, storyID)
	return int64(len(list)), nil
}

func (f *fakeCommentRepo) UpdateText(ctx context.Context, id, text string) error {
	if c, ok := f.comments[id]; ok {
		c.Text = text
	}
	return nil
}

func (f *fakeCommentRepo) Delete(ctx context.Context, id string) error {
	delete(f.comments, id)
	return nil
}

func (f *fakeCommentRepo) DeleteByStory(ctx context.Context, storyID string) error {
	for id, c := range f.comments {
		if c.StoryID == storyID {
			delete(f.comments, id)
		}
	}
	return nil
}

type fakeStoryRepo struct {
	stories map[string]*entity.Story
}

func (f *fakeStoryRepo) Create(ctx context.Context, story *entity.Story) error { return nil }

func (f *fakeStoryRepo) GetByID(ctx context.Context, id string) (*entity.Story, error) {
	return f.stories[id], nil
}

func (f *fakeStoryRepo) GetByIDs(ctx context.Context, ids []string) ([]*entity.Story, error) {
	return nil, nil
}

func (f *fakeStoryRepo) List(ctx context.Context, limit int) ([]*entity.Story, error) {
	return nil, nil
}

func (f *fakeStoryRepo) ListByAuthor(ctx context.Context, authorID string) ([]*entity.Story, error) {
	return nil, nil
}

func (f *fakeStoryRepo) Update(ctx context.Context, story *entity.Story) error { return nil }

func (f *fakeStoryRepo) UpdateFields(ctx context.Context, id string, fields map[string]interface{}) error {
	return nil
}

func (f *fakeStoryRepo) Delete(ctx context.Context, id string) error { return nil }

func newTestService() (*Service, *fakeCommentRepo) {
	comments := newFakeCommentRepo()
	stories := &fakeStoryRepo{stories: map[string]*entity.Story{
		"s1": {ID: "s1"},
	}}
	return NewService(comments, stories), comments
}

func TestCreate(t *testing.T) {
	svc, _ := newTestService()

	c, err := svc.Create(context.Background(), "s1", "u1", "Alice", nil, "great read")
	require.NoError(t, err)
	assert.NotEmpty(t, c.ID)
	assert.Equal(t, "s1", c.StoryID)
	assert.Equal(t, "u1", c.UserID)
	assert.Equal(t, "great read", c.Text)
}

func TestCreate_StoryNotFound(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Create(context.Background(), "missing", "u1", "Alice", nil, "hello")
	assert.ErrorIs(t, err, apperrors.ErrStoryNotFound)
}

func TestUpdate_OwnerOnly(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	c, err := svc.Create(ctx, "s1", "u1", "Alice", nil, "first draft")
	require.NoError(t, err)

	updated, err := svc.Update(ctx, "u1", c.ID, "second draft")
	require.NoError(t, err)
	assert.Equal(t, "second draft", updated.Text)

	_, err = svc.Update(ctx, "u2", c.ID, "hijacked")
	assert.ErrorIs(t, err, apperrors.ErrNotCommentOwner)
}

func TestUpdate_NotFound(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Update(context.Background(), "u1", "missing", "text")
	assert.ErrorIs(t, err, apperrors.ErrCommentNotFound)
}

func TestDelete_OwnerOnly(t *testing.T) {
	svc, comments := newTestService()
	ctx := context.Background()

	c, err := svc.Create(ctx, "s1", "u1", "Alice", nil, "to be removed")
	require.NoError(t, err)

	err = svc.Delete(ctx, "u2", c.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotCommentOwner)

	require.NoError(t, svc.Delete(ctx, "u1", c.ID))
	assert.Empty(t, comments.comments)
}

func TestDelete_Idempotent(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	c, err := svc.Create(ctx, "s1", "u1", "Alice", nil, "gone soon")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, "u1", c.ID))
	// 已删除的评论再次删除不报错
	require.NoError(t, svc.Delete(ctx, "u1", c.ID))
}
