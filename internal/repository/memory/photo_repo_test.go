package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iamasit07/photoshare/internal/domain"
)

func seed(t *testing.T) (*PhotoRepo, *domain.User, *domain.User) {
	t.Helper()
	r := NewPhotoRepo()
	alice, err := r.CreateUser("Alice", "alice@example.com", "hash")
	require.NoError(t, err)
	bob, err := r.CreateUser("Bob", "bob@example.com", "hash")
	require.NoError(t, err)
	return r, alice, bob
}

func TestCreateUserRejectsDuplicateEmail(t *testing.T) {
	r, _, _ := seed(t)
	_, err := r.CreateUser("Other", " ALICE@example.com ", "x")
	assert.ErrorIs(t, err, domain.ErrConflict)

	rec, ok := r.GetUserByEmail("Alice@Example.com")
	require.True(t, ok)
	assert.Equal(t, "Alice", rec.FullName)
	assert.Equal(t, "hash", rec.PasswordHash)
}

func TestLikes(t *testing.T) {
	r, alice, bob := seed(t)
	photo, err := r.CreatePhoto(alice.ID, "Lake", "", "/uploads/lake.jpg")
	require.NoError(t, err)
	assert.Equal(t, "Alice", photo.Author.FullName)

	_, err = r.SetLike(alice.ID, photo.ID, true)
	assert.ErrorIs(t, err, domain.ErrConflict, "owners cannot like their own photo")

	liked, err := r.SetLike(bob.ID, photo.ID, true)
	require.NoError(t, err)
	assert.True(t, liked.IsLiked)
	assert.Equal(t, 1, liked.LikesCount)

	again, err := r.SetLike(bob.ID, photo.ID, true)
	require.NoError(t, err)
	assert.Equal(t, 1, again.LikesCount, "liking twice is idempotent")

	asAlice, err := r.GetPhoto(alice.ID, photo.ID)
	require.NoError(t, err)
	assert.False(t, asAlice.IsLiked)
	assert.Equal(t, 1, asAlice.LikesCount)

	unliked, err := r.SetLike(bob.ID, photo.ID, false)
	require.NoError(t, err)
	assert.False(t, unliked.IsLiked)
	assert.Zero(t, unliked.LikesCount)

	_, err = r.SetLike(bob.ID, 999, true)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestFavoritesArePrivateAndNewestFirst(t *testing.T) {
	r, alice, bob := seed(t)
	p1, _ := r.CreatePhoto(alice.ID, "One", "", "")
	p2, _ := r.CreatePhoto(alice.ID, "Two", "", "")

	_, err := r.SetFavorite(bob.ID, p1.ID, true)
	require.NoError(t, err)
	_, err = r.SetFavorite(bob.ID, p2.ID, true)
	require.NoError(t, err)
	_, err = r.SetFavorite(alice.ID, p1.ID, true)
	require.NoError(t, err, "owners may favorite their own photos")

	favs, pagination := r.ListFavorites(bob.ID, 1, 10)
	require.Len(t, favs, 2)
	assert.Equal(t, p2.ID, favs[0].ID)
	assert.True(t, favs[0].IsFavorited)
	assert.Equal(t, 2, pagination.Total)

	_, err = r.SetFavorite(bob.ID, p2.ID, false)
	require.NoError(t, err)
	favs, _ = r.ListFavorites(bob.ID, 1, 10)
	require.Len(t, favs, 1)
	assert.Equal(t, p1.ID, favs[0].ID)

	none, _ := r.ListFavorites(0, 1, 10)
	assert.Empty(t, none)
}

func TestListPhotosPaginates(t *testing.T) {
	r, alice, _ := seed(t)
	for i := 0; i < 5; i++ {
		_, err := r.CreatePhoto(alice.ID, "p", "", "")
		require.NoError(t, err)
	}

	photos, pagination := r.ListPhotos(0, 2, 2)
	assert.Len(t, photos, 2)
	assert.Equal(t, domain.Pagination{Page: 2, Limit: 2, Total: 5, TotalPages: 3}, pagination)
	assert.True(t, pagination.HasNext())
	assert.True(t, pagination.HasPrev())

	photos, _ = r.ListPhotos(0, 9, 2)
	assert.Empty(t, photos)

	photos, pagination = r.ListPhotos(0, 0, 0)
	assert.Len(t, photos, 5)
	assert.Equal(t, 12, pagination.Limit)
	assert.Equal(t, int64(5), photos[0].ID, "newest first")
}

func TestDeletePhoto(t *testing.T) {
	r, alice, bob := seed(t)
	p, _ := r.CreatePhoto(alice.ID, "Lake", "", "")
	_, _ = r.SetFavorite(bob.ID, p.ID, true)

	assert.ErrorIs(t, r.DeletePhoto(bob.ID, p.ID), domain.ErrUnauthorized)
	require.NoError(t, r.DeletePhoto(alice.ID, p.ID))
	assert.ErrorIs(t, r.DeletePhoto(alice.ID, p.ID), domain.ErrNotFound)

	favs, _ := r.ListFavorites(bob.ID, 1, 10)
	assert.Empty(t, favs)
}

func TestSetProfilePictureUpdatesAuthor(t *testing.T) {
	r, alice, _ := seed(t)
	p, _ := r.CreatePhoto(alice.ID, "Lake", "", "")

	u, err := r.SetProfilePicture(alice.ID, "/uploads/a.jpg")
	require.NoError(t, err)
	assert.Equal(t, "/uploads/a.jpg", u.ProfilePicture)

	got, err := r.GetPhoto(0, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "/uploads/a.jpg", got.Author.ProfilePicture)

	_, err = r.SetProfilePicture(404, "x")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
