package view

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iamasit07/photoshare/internal/domain"
	"github.com/iamasit07/photoshare/internal/service/toggle"
)

type stubService struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (s *stubService) Activate(context.Context, int64) (toggle.Result, error) {
	return s.answer()
}

func (s *stubService) Deactivate(context.Context, int64) (toggle.Result, error) {
	return s.answer()
}

func (s *stubService) answer() (toggle.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	return toggle.Result{}, s.err
}

func (s *stubService) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func settle(t *testing.T, p *toggle.Pending) toggle.Outcome {
	t.Helper()
	require.NotNil(t, p)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	out, err := p.Wait(ctx)
	require.NoError(t, err)
	return out
}

func page(photos ...domain.Photo) *domain.PhotoPage {
	return &domain.PhotoPage{
		Photos:     photos,
		Pagination: domain.Pagination{Page: 1, Limit: 12, Total: len(photos), TotalPages: 1},
	}
}

var viewer = &domain.Identity{ID: 1, FullName: "Viewer"}

func TestCardClickIsolation(t *testing.T) {
	likes, favs := &stubService{}, &stubService{}
	var opened []int64
	g := NewGallery(Deps{Likes: likes, Favorites: favs}, viewer, func(id int64) { opened = append(opened, id) })
	g.ReplacePage(page(domain.Photo{ID: 10, UserID: 2, Title: "Lake", LikesCount: 1}))
	card := g.Card(10)
	require.NotNil(t, card)

	p, didOpen := card.Click(context.Background(), TargetLike)
	settle(t, p)
	assert.False(t, didOpen, "pressing like never opens the card")

	p, didOpen = card.Click(context.Background(), TargetFavorite)
	settle(t, p)
	assert.False(t, didOpen)

	p, didOpen = card.Click(context.Background(), TargetCard)
	assert.Nil(t, p)
	assert.True(t, didOpen)
	assert.Equal(t, []int64{10}, opened)

	assert.Equal(t, 1, likes.Calls())
	assert.Equal(t, 1, favs.Calls())
}

func TestOwnPhotoLikeIsBlocked(t *testing.T) {
	likes := &stubService{}
	var opened int
	g := NewGallery(Deps{Likes: likes, Favorites: &stubService{}}, viewer, func(int64) { opened++ })
	g.ReplacePage(page(
		domain.Photo{ID: 1, UserID: viewer.ID, LikesCount: 2},
		domain.Photo{ID: 2, UserID: 99},
	))

	own := g.Card(1)
	assert.True(t, own.Like.Blocked())
	assert.False(t, own.Favorite.Blocked())
	p, didOpen := own.Click(context.Background(), TargetLike)
	assert.Nil(t, p)
	assert.False(t, didOpen, "a blocked control still swallows the click")
	assert.Zero(t, likes.Calls())

	assert.False(t, g.Card(2).Like.Blocked())
}

func TestAnonymousViewerIsNeverBlocked(t *testing.T) {
	g := NewGallery(Deps{Likes: &stubService{}, Favorites: &stubService{}}, nil, nil)
	g.ReplacePage(page(domain.Photo{ID: 1, UserID: 0}))
	assert.False(t, g.Card(1).Like.Blocked())
}

func TestFavoritesListRemovesCardOnUnfavorite(t *testing.T) {
	g := NewFavoritesList(Deps{Likes: &stubService{}, Favorites: &stubService{}}, viewer, nil)
	g.ReplacePage(page(
		domain.Photo{ID: 1, UserID: 5, IsFavorited: true},
		domain.Photo{ID: 2, UserID: 5, IsFavorited: true},
	))

	settle(t, g.Card(1).Favorite.Press(context.Background(), NewClick(TargetFavorite)))

	assert.Nil(t, g.Card(1))
	assert.NotNil(t, g.Card(2))
	assert.Equal(t, 1, g.Pagination().Total)
}

func TestFavoritesListKeepsCardOnFailure(t *testing.T) {
	g := NewFavoritesList(Deps{Likes: &stubService{}, Favorites: &stubService{err: errors.New("offline")}}, viewer, nil)
	g.ReplacePage(page(domain.Photo{ID: 1, UserID: 5, IsFavorited: true}))

	out := settle(t, g.Card(1).Favorite.Press(context.Background(), NewClick(TargetFavorite)))
	assert.Equal(t, toggle.OutcomeRolledBack, out)
	require.NotNil(t, g.Card(1))
	assert.True(t, g.Card(1).Favorite.State().Active)
}

func TestPlainGalleryKeepsUnfavoritedCard(t *testing.T) {
	g := NewGallery(Deps{Likes: &stubService{}, Favorites: &stubService{}}, viewer, nil)
	g.ReplacePage(page(domain.Photo{ID: 1, UserID: 5, IsFavorited: true}))

	settle(t, g.Card(1).Favorite.Press(context.Background(), NewClick(TargetFavorite)))
	assert.NotNil(t, g.Card(1))
}

func TestApplyUpdate(t *testing.T) {
	g := NewGallery(Deps{Likes: &stubService{}, Favorites: &stubService{}}, viewer, nil)
	g.ReplacePage(page(domain.Photo{ID: 1, UserID: 5, LikesCount: 1}))

	g.ApplyUpdate(domain.PhotoUpdate{Type: domain.PhotoUpdatedMessage, PhotoID: 1, Liked: true, LikesCount: 8, Favorited: true})
	card := g.Card(1)
	assert.Equal(t, toggle.State{Active: true, Count: 8, HasCount: true}, card.Like.State())
	assert.True(t, card.Favorite.State().Active)

	// unknown photos are ignored
	g.ApplyUpdate(domain.PhotoUpdate{PhotoID: 404, LikesCount: 3})
}

func TestReplacePageReusesControls(t *testing.T) {
	g := NewGallery(Deps{Likes: &stubService{}, Favorites: &stubService{}}, viewer, nil)
	g.ReplacePage(page(domain.Photo{ID: 1, UserID: 5, LikesCount: 1}))
	before := g.Card(1).Like

	g.ReplacePage(page(domain.Photo{ID: 1, UserID: 5, LikesCount: 4, IsLiked: true}, domain.Photo{ID: 2, UserID: 5}))
	assert.Same(t, before, g.Card(1).Like)
	assert.Equal(t, 4, before.State().Count)
	assert.Len(t, g.Cards(), 2)
}

func TestRender(t *testing.T) {
	g := NewGallery(Deps{Likes: &stubService{}, Favorites: &stubService{}}, viewer, nil)

	var empty bytes.Buffer
	g.Render(&empty)
	assert.Equal(t, "No photos yet.\n", empty.String())

	g.ReplacePage(page(
		domain.Photo{ID: 3, UserID: 5, Title: "Lake", Author: domain.Author{FullName: "Bo"}, LikesCount: 1, IsFavorited: true},
		domain.Photo{ID: 4, UserID: viewer.ID, Title: "Mine"},
	))
	var out bytes.Buffer
	g.Render(&out)

	assert.Contains(t, out.String(), "#3     Lake by Bo  [Like] 1 like  [Unfavorite]")
	assert.Contains(t, out.String(), "#4     Mine  [You can't like your own photo]  [Favorite]")
	assert.Contains(t, out.String(), "page 1 of 1 (2 photos)")
}
