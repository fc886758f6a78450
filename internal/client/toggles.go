package client

import (
	"context"
	"errors"

	"github.com/iamasit07/photoshare/internal/service/toggle"
)

// LikeService backs toggle.Like controls.
type LikeService struct {
	Client *Client
}

func (s LikeService) Activate(ctx context.Context, id int64) (toggle.Result, error) {
	return toResult(s.Client.LikePhoto(ctx, id))
}

func (s LikeService) Deactivate(ctx context.Context, id int64) (toggle.Result, error) {
	return toResult(s.Client.UnlikePhoto(ctx, id))
}

// FavoriteService backs toggle.Favorite controls.
type FavoriteService struct {
	Client *Client
}

func (s FavoriteService) Activate(ctx context.Context, id int64) (toggle.Result, error) {
	return toResult(s.Client.FavoritePhoto(ctx, id))
}

func (s FavoriteService) Deactivate(ctx context.Context, id int64) (toggle.Result, error) {
	return toResult(s.Client.UnfavoritePhoto(ctx, id))
}

// toResult keeps backend-described failures as structured results and lets
// transport failures through as errors.
func toResult(err error) (toggle.Result, error) {
	if err == nil {
		return toggle.Result{}, nil
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return toggle.Result{Err: &toggle.ResultError{Message: apiErr.Message}}, nil
	}
	return toggle.Result{}, err
}
