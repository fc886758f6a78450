package view

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/iamasit07/photoshare/internal/domain"
	"github.com/iamasit07/photoshare/internal/service/notify"
	"github.com/iamasit07/photoshare/internal/service/toggle"
)

type Deps struct {
	Likes     toggle.Service
	Favorites toggle.Service
	Notifier  notify.Sink
	Observer  toggle.Observer
	Logger    *zap.Logger
}

// Gallery holds the cards of one page. Controls survive a refetch of the
// same photos and are reconciled instead of rebuilt.
type Gallery struct {
	deps   Deps
	viewer int64
	onOpen func(int64)

	// drop cards whose favorite settles to inactive
	favoritesOnly bool

	mu    sync.Mutex
	cards []*Card
	page  domain.Pagination
}

func NewGallery(deps Deps, viewer *domain.Identity, onOpen func(int64)) *Gallery {
	if deps.Notifier == nil {
		deps.Notifier = notify.Nop{}
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	g := &Gallery{deps: deps, onOpen: onOpen}
	if viewer != nil {
		g.viewer = viewer.ID
	}
	return g
}

// NewFavoritesList is a gallery of the viewer's favorites. Unfavoriting a
// photo removes its card as soon as the backend confirms.
func NewFavoritesList(deps Deps, viewer *domain.Identity, onOpen func(int64)) *Gallery {
	g := NewGallery(deps, viewer, onOpen)
	g.favoritesOnly = true
	return g
}

func (g *Gallery) ReplacePage(page *domain.PhotoPage) {
	g.mu.Lock()
	defer g.mu.Unlock()

	existing := make(map[int64]*Card, len(g.cards))
	for _, c := range g.cards {
		existing[c.Photo.ID] = c
	}

	cards := make([]*Card, 0, len(page.Photos))
	for _, p := range page.Photos {
		if c, ok := existing[p.ID]; ok {
			c.Photo = p
			c.Like.Reconcile(likeState(p.IsLiked, p.LikesCount))
			c.Favorite.Reconcile(toggle.State{Active: p.IsFavorited})
			cards = append(cards, c)
			continue
		}
		cards = append(cards, g.newCard(p))
	}
	g.cards = cards
	g.page = page.Pagination
}

func (g *Gallery) newCard(p domain.Photo) *Card {
	card := &Card{Photo: p, OnOpen: g.onOpen}
	card.Like = toggle.New(toggle.Like, p.ID, g.deps.Likes, append(g.commonOptions(),
		toggle.WithInitialActive(p.IsLiked),
		toggle.WithInitialCount(p.LikesCount),
		toggle.WithBlocked(p.IsOwnedBy(g.viewer)),
	)...)

	favOpts := append(g.commonOptions(), toggle.WithInitialActive(p.IsFavorited))
	if g.favoritesOnly {
		favOpts = append(favOpts, toggle.WithOnSettled(func(id int64, settled toggle.State) {
			if !settled.Active {
				g.remove(id)
			}
		}))
	}
	card.Favorite = toggle.New(toggle.Favorite, p.ID, g.deps.Favorites, favOpts...)
	return card
}

func (g *Gallery) commonOptions() []toggle.Option {
	opts := []toggle.Option{
		toggle.WithNotifier(g.deps.Notifier),
		toggle.WithLogger(g.deps.Logger),
	}
	if g.deps.Observer != nil {
		opts = append(opts, toggle.WithObserver(g.deps.Observer))
	}
	return opts
}

func likeState(liked bool, count int) toggle.State {
	return toggle.State{Active: liked, Count: count, HasCount: true}
}

func (g *Gallery) remove(id int64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for i, c := range g.cards {
		if c.Photo.ID == id {
			g.cards = append(g.cards[:i:i], g.cards[i+1:]...)
			if g.page.Total > 0 {
				g.page.Total--
			}
			return
		}
	}
}

// ApplyUpdate reconciles the card for update.PhotoID, if shown.
func (g *Gallery) ApplyUpdate(update domain.PhotoUpdate) {
	card := g.Card(update.PhotoID)
	if card == nil {
		return
	}
	card.Like.Reconcile(likeState(update.Liked, update.LikesCount))
	if card.Favorite.Reconcile(toggle.State{Active: update.Favorited}) && g.favoritesOnly && !update.Favorited {
		g.remove(update.PhotoID)
	}
}

func (g *Gallery) Card(id int64) *Card {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, c := range g.cards {
		if c.Photo.ID == id {
			return c
		}
	}
	return nil
}

func (g *Gallery) Cards() []*Card {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]*Card(nil), g.cards...)
}

func (g *Gallery) Pagination() domain.Pagination {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.page
}

// Render writes one line per card followed by a paging footer.
func (g *Gallery) Render(w io.Writer) {
	cards := g.Cards()
	page := g.Pagination()

	if len(cards) == 0 {
		fmt.Fprintln(w, "No photos yet.")
		return
	}
	for _, c := range cards {
		fmt.Fprintln(w, RenderCard(c))
	}
	if page.TotalPages > 0 {
		fmt.Fprintf(w, "page %d of %d (%d photos)\n", page.Page, page.TotalPages, page.Total)
	}
}

func RenderCard(c *Card) string {
	var b strings.Builder
	fmt.Fprintf(&b, "#%-5d %s", c.Photo.ID, c.Photo.Title)
	if c.Photo.Author.FullName != "" {
		fmt.Fprintf(&b, " by %s", c.Photo.Author.FullName)
	}
	b.WriteString("  ")
	b.WriteString(renderControl(c.Like.View()))
	b.WriteString("  ")
	b.WriteString(renderControl(c.Favorite.View()))
	return b.String()
}

func renderControl(v toggle.View) string {
	label := "[" + v.Label + "]"
	if v.Busy {
		label += "…"
	}
	if v.CountText != "" {
		label += " " + v.CountText
	}
	return label
}
