package view

import (
	"context"

	"github.com/iamasit07/photoshare/internal/domain"
	"github.com/iamasit07/photoshare/internal/service/toggle"
)

// Card is one photo in a list: a clickable region holding a like and a
// favorite control.
type Card struct {
	Photo    domain.Photo
	Like     *toggle.Control
	Favorite *toggle.Control
	OnOpen   func(photoID int64)
}

// Click dispatches a click on target and bubbles it up to the card. The
// controls stop propagation, so pressing one never opens the card.
func (c *Card) Click(ctx context.Context, target Target) (pending *toggle.Pending, opened bool) {
	ev := NewClick(target)

	switch target {
	case TargetLike:
		if c.Like != nil {
			pending = c.Like.Press(ctx, ev)
		}
	case TargetFavorite:
		if c.Favorite != nil {
			pending = c.Favorite.Press(ctx, ev)
		}
	}

	if !ev.Stopped() && c.OnOpen != nil {
		c.OnOpen(c.Photo.ID)
		opened = true
	}
	return pending, opened
}
