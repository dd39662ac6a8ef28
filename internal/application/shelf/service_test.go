package shelf

import (
	"context"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkwell-api/internal/domain/entity"
	"inkwell-api/internal/domain/repository"
	apperrors "inkwell-api/pkg/errors"
)

type fakeUserRepo struct {
	users map[string]*entity.UserProfile
}

func (f *fakeUserRepo) Create(ctx context.Context, user *entity.UserProfile) error { return nil }

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*entity.UserProfile, error) {
	return f.users[id], nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*entity.UserProfile, error) {
	return nil, nil
}

func (f *fakeUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return false, nil
}

func (f *fakeUserRepo) UpdateFields(ctx context.Context, id string, fields map[string]interface{}) error {
	return nil
}

func (f *fakeUserRepo) ToggleShelf(ctx context.Context, userID string, field repository.ShelfField, storyID string) (bool, error) {
	user, ok := f.users[userID]
	if !ok {
		return false, apperrors.ErrProfileNotFound
	}

	ids := &user.Favorites
	if field == repository.ShelfReadLater {
		ids = &user.ReadLater
	}

	for i, id := range *ids {
		if id == storyID {
			*ids = append((*ids)[:i], (*ids)[i+1:]...)
			return false, nil
		}
	}
	*ids = append(*ids, storyID)
	return true, nil
}

func (f *fakeUserRepo) GetShelf(ctx context.Context, userID string, field repository.ShelfField) ([]string, error) {
	user, ok := f.users[userID]
	if !ok {
		return nil, nil
	}
	if field == repository.ShelfReadLater {
		return user.ReadLater, nil
	}
	return user.Favorites, nil
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

func newTestService() (*Service, *fakeUserRepo, *fakeStoryRepo) {
	users := &fakeUserRepo{users: map[string]*entity.UserProfile{
		"u1": {ID: "u1", Favorites: pq.StringArray{}, ReadLater: pq.StringArray{}},
	}}
	stories := &fakeStoryRepo{stories: map[string]*entity.Story{
		"s1": {ID: "s1", Title: "First"},
		"s2": {ID: "s2", Title: "Second"},
	}}
	return NewService(users, stories), users, stories
}

func TestToggle_AddThenRemove(t *testing.T) {
	svc, users, _ := newTestService()
	ctx := context.Background()

	member, err := svc.Toggle(ctx, "u1", repository.ShelfFavorites, "s1")
	require.NoError(t, err)
	assert.True(t, member)
	assert.True(t, users.users["u1"].HasFavorite("s1"))

	member, err = svc.Toggle(ctx, "u1", repository.ShelfFavorites, "s1")
	require.NoError(t, err)
	assert.False(t, member)
	assert.False(t, users.users["u1"].HasFavorite("s1"))
}

func TestToggle_ShelvesAreIndependent(t *testing.T) {
	svc, users, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Toggle(ctx, "u1", repository.ShelfFavorites, "s1")
	require.NoError(t, err)
	_, err = svc.Toggle(ctx, "u1", repository.ShelfReadLater, "s2")
	require.NoError(t, err)

	assert.True(t, users.users["u1"].HasFavorite("s1"))
	assert.False(t, users.users["u1"].HasReadLater("s1"))
	assert.True(t, users.users["u1"].HasReadLater("s2"))
}

func TestToggle_StoryNotFound(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Toggle(context.Background(), "u1", repository.ShelfFavorites, "missing")
	assert.ErrorIs(t, err, apperrors.ErrStoryNotFound)
}

func TestListStories_PreservesOrderAndSkipsDeleted(t *testing.T) {
	svc, users, _ := newTestService()
	ctx := context.Background()

	// s2 在前，中间夹一个已删除的作品 ID
	users.users["u1"].Favorites = pq.StringArray{"s2", "deleted", "s1"}

	stories, err := svc.ListStories(ctx, "u1", repository.ShelfFavorites)
	require.NoError(t, err)
	require.Len(t, stories, 2)
	assert.Equal(t, "s2", stories[0].ID)
	assert.Equal(t, "s1", stories[1].ID)
}

func TestListStories_EmptyShelf(t *testing.T) {
	svc, _, _ := newTestService()

	stories, err := svc.ListStories(context.Background(), "u1", repository.ShelfReadLater)
	require.NoError(t, err)
	assert.Empty(t, stories)
}

func TestListStories_ProfileNotFound(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.ListStories(context.Background(), "nobody", repository.ShelfFavorites)
	assert.ErrorIs(t, err, apperrors.ErrProfileNotFound)
}

func TestContains(t *testing.T) {
	svc, users, _ := newTestService()
	ctx := context.Background()

	users.users["u1"].Favorites = pq.StringArray{"s1"}

	member, err := svc.Contains(ctx, "u1", repository.ShelfFavorites, "s1")
	require.NoError(t, err)
	assert.True(t, member)

	member, err = svc.Contains(ctx, "u1", repository.ShelfFavorites, "s2")
	require.NoError(t, err)
	assert.False(t, member)
}

func TestContains_ProfileAbsent(t *testing.T) {
	svc, _, _ := newTestService()

	member, err := svc.Contains(context.Background(), "nobody", repository.ShelfFavorites, "s1")
	require.NoError(t, err)
	assert.False(t, member)
}
