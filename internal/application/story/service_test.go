package story

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkwell-api/internal/domain/entity"
	apperrors "inkwell-api/pkg/errors"
)

type fakeStoryRepo struct {
	stories map[string]*entity.Story
}

func newFakeStoryRepo() *fakeStoryRepo {
	return &fakeStoryRepo{stories: map[string]*entity.Story{}}
}

func (f *fakeStoryRepo) Create(ctx context.Context, story *entity.Story) error {
	if story.ID == "" {
		story.ID = uuid.New().String()
	}
	f.stories[story.ID] = story
	return nil
}

func (f *fakeStoryRepo) GetByID(ctx context.Context, id string) (*entity.Story, error) {
	return f.stories[id], nil
}

func (f *fakeStoryRepo) GetByIDs(ctx context.Context, ids []string) ([]*entity.Story, error) {
	var out []*entity.Story
	for _, id := range ids {
		if s, ok := f.stories[id]; ok {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeStoryRepo) List(ctx context.Context, limit int) ([]*entity.Story, error) {
	return nil, nil
}

func (f *fakeStoryRepo) ListByAuthor(ctx context.Context, authorID string) ([]*entity.Story, error) {
	var out []*entity.Story
	for _, s := range f.stories {
		if s.AuthorID == authorID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeStoryRepo) Update(ctx context.Context, story *entity.Story) error {
	f.stories[story.ID] = story
	return nil
}

func (f *fakeStoryRepo) UpdateFields(ctx context.Context, id string, fields map[string]interface{}) error {
	s, ok := f.stories[id]
	if !ok {
		return nil
	}
	if v, ok := fields["title"]; ok {
		s.Title = v.(string)
	}
	if v, ok := fields["description"]; ok {
		s.Description = v.(string)
	}
	if v, ok := fields["status"]; ok {
		s.Status = v.(entity.StoryStatus)
	}
	if v, ok := fields["cover_image"]; ok {
		s.CoverImage = v.(string)
	}
	return nil
}

func (f *fakeStoryRepo) Delete(ctx context.Context, id string) error {
	delete(f.stories, id)
	return nil
}

type fakeCommentRepo struct {
	byStory map[string][]*entity.Comment
}

func (f *fakeCommentRepo) Create(ctx context.Context, comment *entity.Comment) error { return nil }

func (f *fakeCommentRepo) GetByID(ctx context.Context, id string) (*entity.Comment, error) {
	return nil, nil
}

func (f *fakeCommentRepo) ListByStory(ctx context.Context, storyID string) ([]*entity.Comment, error) {
	return f.byStory[storyID], nil
}

func (f *fakeCommentRepo) CountByStory(ctx context.Context, storyID string) (int64, error) {
	return int64(len(f.byStory[storyID])), nil
}

func (f *fakeCommentRepo) UpdateText(ctx context.Context, id, text string) error { return nil }

func (f *fakeCommentRepo) Delete(ctx context.Context, id string) error { return nil }

func (f *fakeCommentRepo) DeleteByStory(ctx context.Context, storyID string) error {
	delete(f.byStory, storyID)
	return nil
}

type fakeRatingRepo struct {
	byStory map[string][]*entity.Rating
}

func (f *fakeRatingRepo) Upsert(ctx context.Context, rating *entity.Rating) error { return nil }

func (f *fakeRatingRepo) GetByStoryAndUser(ctx context.Context, storyID, userID string) (*entity.Rating, error) {
	return nil, nil
}

func (f *fakeRatingRepo) ListByStory(ctx context.Context, storyID string) ([]*entity.Rating, error) {
	return f.byStory[storyID], nil
}

func (f *fakeRatingRepo) DeleteByStory(ctx context.Context, storyID string) error {
	delete(f.byStory, storyID)
	return nil
}

type fakeTxManager struct{}

func (fakeTxManager) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeObjectStore struct {
	objects map[string][]byte
}

func newFakeObjectStore() *fakeObjectStore {
	return &fakeObjectStore{objects: map[string][]byte{}}
}

func (f *fakeObjectStore) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	f.objects[key] = data
	return nil
}

func (f *fakeObjectStore) Delete(ctx context.Context, key string) error {
	delete(f.objects, key)
	return nil
}

func (f *fakeObjectStore) Exists(ctx context.Context, key string) (bool, error) {
	_, ok := f.objects[key]
	return ok, nil
}

func (f *fakeObjectStore) PublicURL(key string) string {
	return "https://cdn.example.com/" + key
}

type fixture struct {
	svc      *Service
	stories  *fakeStoryRepo
	comments *fakeCommentRepo
	ratings  *fakeRatingRepo
	store    *fakeObjectStore
}

func newFixture() *fixture {
	stories := newFakeStoryRepo()
	comments := &fakeCommentRepo{byStory: map[string][]*entity.Comment{}}
	ratings := &fakeRatingRepo{byStory: map[string][]*entity.Rating{}}
	store := newFakeObjectStore()
	svc := NewService(stories, comments, ratings, fakeTxManager{}, nil, store)
	return &fixture{svc: svc, stories: stories, comments: comments, ratings: ratings, store: store}
}

func (f *fixture) seedStory(t *testing.T, authorID string) *entity.Story {
	t.Helper()
	story, err := f.svc.Create(context.Background(), authorID, "Author", CreateInput{
		Title:  "seed",
		Status: entity.StoryStatusDraft,
	})
	require.NoError(t, err)
	return story
}

func TestCreate_Defaults(t *testing.T) {
	f := newFixture()

	story, err := f.svc.Create(context.Background(), "u1", "Alice", CreateInput{Title: "My Story"})
	require.NoError(t, err)

	assert.NotEmpty(t, story.ID)
	assert.Equal(t, entity.StoryStatusDraft, story.Status)
	assert.Equal(t, entity.DefaultCoverKey, story.CoverImage)
	assert.NotNil(t, story.Chapters)
}

func TestGet_NotFound(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, apperrors.ErrStoryNotFound)
}

func TestUpdate_OwnerOnly(t *testing.T) {
	f := newFixture()
	story := f.seedStory(t, "u1")
	ctx := context.Background()

	title := "renamed"
	_, err := f.svc.Update(ctx, "intruder", story.ID, UpdateInput{Title: &title})
	assert.ErrorIs(t, err, apperrors.ErrNotStoryOwner)

	updated, err := f.svc.Update(ctx, "u1", story.ID, UpdateInput{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "renamed", updated.Title)
}

func TestUpdate_EmptyInputIsNoop(t *testing.T) {
	f := newFixture()
	story := f.seedStory(t, "u1")

	updated, err := f.svc.Update(context.Background(), "u1", story.ID, UpdateInput{})
	require.NoError(t, err)
	assert.Equal(t, story.Title, updated.Title)
}

func TestDelete_CascadesCommentsAndRatings(t *testing.T) {
	f := newFixture()
	story := f.seedStory(t, "u1")
	ctx := context.Background()

	f.comments.byStory[story.ID] = []*entity.Comment{{ID: "c1", StoryID: story.ID}}
	f.ratings.byStory[story.ID] = []*entity.Rating{{ID: "r1", StoryID: story.ID, Value: 5}}

	require.NoError(t, f.svc.Delete(ctx, "u1", story.ID))

	assert.NotContains(t, f.stories.stories, story.ID)
	assert.NotContains(t, f.comments.byStory, story.ID)
	assert.NotContains(t, f.ratings.byStory, story.ID)
}

func TestDelete_OwnerOnly(t *testing.T) {
	f := newFixture()
	story := f.seedStory(t, "u1")

	err := f.svc.Delete(context.Background(), "u2", story.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotStoryOwner)
	assert.Contains(t, f.stories.stories, story.ID)
}

func TestAddChapter(t *testing.T) {
	f := newFixture()
	story := f.seedStory(t, "u1")
	ctx := context.Background()

	ch, err := f.svc.AddChapter(ctx, "u1", story.ID, "Chapter One", "body")
	require.NoError(t, err)
	assert.Equal(t, 1, ch.Order)

	_, err = f.svc.AddChapter(ctx, "u2", story.ID, "Stolen", "body")
	assert.ErrorIs(t, err, apperrors.ErrNotStoryOwner)
}

func TestUpdateChapter_NotFound(t *testing.T) {
	f := newFixture()
	story := f.seedStory(t, "u1")

	_, err := f.svc.UpdateChapter(context.Background(), "u1", story.ID, "missing", "t", "c")
	assert.ErrorIs(t, err, apperrors.ErrChapterNotFound)
}

func TestDeleteChapter_Resequences(t *testing.T) {
	f := newFixture()
	story := f.seedStory(t, "u1")
	ctx := context.Background()

	first, err := f.svc.AddChapter(ctx, "u1", story.ID, "One", "a")
	require.NoError(t, err)
	_, err = f.svc.AddChapter(ctx, "u1", story.ID, "Two", "b")
	require.NoError(t, err)

	updated, err := f.svc.DeleteChapter(ctx, "u1", story.ID, first.ID)
	require.NoError(t, err)
	require.Len(t, updated.Chapters, 1)
	assert.Equal(t, 1, updated.Chapters[0].Order)
}

func TestReorderChapters_InvalidIDs(t *testing.T) {
	f := newFixture()
	story := f.seedStory(t, "u1")
	ctx := context.Background()

	_, err := f.svc.AddChapter(ctx, "u1", story.ID, "One", "a")
	require.NoError(t, err)

	_, err = f.svc.ReorderChapters(ctx, "u1", story.ID, []string{"bogus"})
	require.Error(t, err)
	appErr := apperrors.AsAppError(err)
	assert.Equal(t, apperrors.CodeInvalidChapter, appErr.Code)
}

func TestUploadCover(t *testing.T) {
	f := newFixture()
	story := f.seedStory(t, "u1")
	ctx := context.Background()

	payload := bytes.NewBufferString("png bytes")
	url, err := f.svc.UploadCover(ctx, "u1", story.ID, payload, int64(payload.Len()), "image/png", "cover.png")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(url, "https://cdn.example.com/covers/"+story.ID))
	assert.Equal(t, url, f.stories.stories[story.ID].CoverImage)
	require.Len(t, f.store.objects, 1)
}

func TestUploadCover_OwnerOnly(t *testing.T) {
	f := newFixture()
	story := f.seedStory(t, "u1")

	_, err := f.svc.UploadCover(context.Background(), "u2", story.ID, strings.NewReader("x"), 1, "image/png", "cover.png")
	assert.ErrorIs(t, err, apperrors.ErrNotStoryOwner)
	assert.Empty(t, f.store.objects)
}

func TestDashboard(t *testing.T) {
	f := newFixture()
	story := f.seedStory(t, "u1")
	f.seedStory(t, "someone-else")
	ctx := context.Background()

	f.comments.byStory[story.ID] = []*entity.Comment{{ID: "c1"}, {ID: "c2"}}
	f.ratings.byStory[story.ID] = []*entity.Rating{
		{Value: 4}, {Value: 5},
		{Value: 9}, // 历史脏值只计入分母
	}

	entries, err := f.svc.Dashboard(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, entries, 1)

	entry := entries[0]
	assert.Equal(t, story.ID, entry.Story.ID)
	assert.Equal(t, int64(2), entry.CommentCount)
	assert.Equal(t, 3, entry.RatingCount)
	assert.InDelta(t, 3.0, entry.RatingAverage, 1e-9)
}
