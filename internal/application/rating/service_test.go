package rating

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkwell-api/internal/domain/entity"
	apperrors "inkwell-api/pkg/errors"
)

type fakeRatingRepo struct {
	ratings []*entity.Rating
}

func (f *fakeRatingRepo) Upsert(ctx context.Context, rating *entity.Rating) error {
	for _, r := range f.ratings {
		if r.StoryID == rating.StoryID && r.UserID == rating.UserID {
			r.Value = rating.Value
			return nil
		}
	}
	f.ratings = append(f.ratings, rating)
	return nil
}

func (f *fakeRatingRepo) GetByStoryAndUser(ctx context.Context, storyID, userID string) (*entity.Rating, error) {
	for _, r := range f.ratings {
		if r.StoryID == storyID && r.UserID == userID {
			return r, nil
		}
	}
	return nil, nil
}

func (f *fakeRatingRepo) ListByStory(ctx context.Context, storyID string) ([]*entity.Rating, error) {
	var out []*entity.Rating
	for _, r := range f.ratings {
		if r.StoryID == storyID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRatingRepo) DeleteByStory(ctx context.Context, storyID string) error {
	var kept []*entity.Rating
	for _, r := range f.ratings {
		if r.StoryID != storyID {
			kept = append(kept, r)
		}
	}
	f.ratings = kept
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
	return nil, nil
}

func (f *fakeStoryRepo) Update(ctx context.Context, story *entity.Story) error { return nil }

func (f *fakeStoryRepo) UpdateFields(ctx context.Context, id string, fields map[string]interface{}) error {
	return nil
}

func (f *fakeStoryRepo) Delete(ctx context.Context, id string) error { return nil }

func newTestService(ratings *fakeRatingRepo, stories *fakeStoryRepo) *Service {
	return NewService(ratings, stories, nil, 0)
}

func TestSet_UpsertAndOverwrite(t *testing.T) {
	ratings := &fakeRatingRepo{}
	stories := &fakeStoryRepo{stories: map[string]*entity.Story{
		"s1": {ID: "s1"},
	}}
	svc := newTestService(ratings, stories)
	ctx := context.Background()

	require.NoError(t, svc.Set(ctx, "u1", "s1", 4))
	require.NoError(t, svc.Set(ctx, "u1", "s1", 2))

	require.Len(t, ratings.ratings, 1)
	assert.Equal(t, 2, ratings.ratings[0].Value)
}

func TestSet_InvalidValue(t *testing.T) {
	svc := newTestService(&fakeRatingRepo{}, &fakeStoryRepo{stories: map[string]*entity.Story{}})

	err := svc.Set(context.Background(), "u1", "s1", 0)
	assert.ErrorIs(t, err, apperrors.ErrInvalidRating)

	err = svc.Set(context.Background(), "u1", "s1", 6)
	assert.ErrorIs(t, err, apperrors.ErrInvalidRating)
}

func TestSet_StoryNotFound(t *testing.T) {
	svc := newTestService(&fakeRatingRepo{}, &fakeStoryRepo{stories: map[string]*entity.Story{}})

	err := svc.Set(context.Background(), "u1", "missing", 3)
	assert.ErrorIs(t, err, apperrors.ErrStoryNotFound)
}

func TestStats_WithoutCache(t *testing.T) {
	ratings := &fakeRatingRepo{ratings: []*entity.Rating{
		{StoryID: "s1", UserID: "u1", Value: 3},
		{StoryID: "s1", UserID: "u2", Value: 4},
		{StoryID: "s1", UserID: "u3", Value: 5},
		{StoryID: "other", UserID: "u1", Value: 1},
	}}
	svc := newTestService(ratings, &fakeStoryRepo{})

	stats, err := svc.Stats(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Count)
	assert.InDelta(t, 4.0, stats.Average, 1e-9)
}

func TestAggregate(t *testing.T) {
	ctx := context.Background()

	stats := Aggregate(ctx, "s1", []*entity.Rating{
		{Value: 3}, {Value: 4}, {Value: 5},
	})
	assert.Equal(t, 3, stats.Count)
	assert.InDelta(t, 4.0, stats.Average, 1e-9)
}

func TestAggregate_Empty(t *testing.T) {
	stats := Aggregate(context.Background(), "s1", nil)
	assert.Equal(t, 0, stats.Count)
	assert.Zero(t, stats.Average)
}

func TestAggregate_InvalidValuesCountInDenominatorOnly(t *testing.T) {
	stats := Aggregate(context.Background(), "s1", []*entity.Rating{
		{Value: 5},
		{Value: 10}, // 历史脏值
	})

	assert.Equal(t, 2, stats.Count)
	assert.InDelta(t, 2.5, stats.Average, 1e-9)
}
