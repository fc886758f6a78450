package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"

	"github.com/iamasit07/photoshare/internal/domain"
)

type UploadRequest struct {
	Title       string
	Description string
	Filename    string
	Image       io.Reader
}

func (c *Client) ListPhotos(ctx context.Context, page, limit int) (*domain.PhotoPage, error) {
	return c.listPage(ctx, c.public, "/api/photos", page, limit)
}

// ListFavorites returns the signed-in user's private bookmarks.
func (c *Client) ListFavorites(ctx context.Context, page, limit int) (*domain.PhotoPage, error) {
	return c.listPage(ctx, c.authed, "/api/favorites", page, limit)
}

func (c *Client) listPage(ctx context.Context, hc *http.Client, path string, page, limit int) (*domain.PhotoPage, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(max(page, 1)))
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}

	var photos []domain.Photo
	env, err := c.doJSON(ctx, hc, http.MethodGet, path+"?"+q.Encode(), nil, &photos)
	if err != nil {
		return nil, err
	}
	out := &domain.PhotoPage{Photos: photos}
	if env.Pagination != nil {
		out.Pagination = *env.Pagination
	}
	return out, nil
}

func (c *Client) GetPhoto(ctx context.Context, id int64) (*domain.Photo, error) {
	var out domain.Photo
	if _, err := c.doJSON(ctx, c.public, http.MethodGet, photoPath(id, ""), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UploadPhoto(ctx context.Context, req UploadRequest) (*domain.Photo, error) {
	body, contentType, err := multipartBody("image", req.Filename, req.Image, map[string]string{
		"title":       req.Title,
		"description": req.Description,
	})
	if err != nil {
		return nil, err
	}
	var out domain.Photo
	if _, err := c.do(ctx, c.authed, http.MethodPost, "/api/photos", body, contentType, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeletePhoto(ctx context.Context, id int64) error {
	_, err := c.doJSON(ctx, c.authed, http.MethodDelete, photoPath(id, ""), nil, nil)
	return err
}

func (c *Client) UploadAvatar(ctx context.Context, filename string, image io.Reader) (*domain.User, error) {
	body, contentType, err := multipartBody("avatar", filename, image, nil)
	if err != nil {
		return nil, err
	}
	var out domain.User
	if _, err := c.do(ctx, c.authed, http.MethodPost, "/api/users/me/avatar", body, contentType, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) LikePhoto(ctx context.Context, id int64) error {
	_, err := c.doJSON(ctx, c.authed, http.MethodPost, photoPath(id, "/like"), nil, nil)
	return err
}

func (c *Client) UnlikePhoto(ctx context.Context, id int64) error {
	_, err := c.doJSON(ctx, c.authed, http.MethodDelete, photoPath(id, "/like"), nil, nil)
	return err
}

func (c *Client) FavoritePhoto(ctx context.Context, id int64) error {
	_, err := c.doJSON(ctx, c.authed, http.MethodPost, photoPath(id, "/favorite"), nil, nil)
	return err
}

func (c *Client) UnfavoritePhoto(ctx context.Context, id int64) error {
	_, err := c.doJSON(ctx, c.authed, http.MethodDelete, photoPath(id, "/favorite"), nil, nil)
	return err
}

func photoPath(id int64, suffix string) string {
	return fmt.Sprintf("/api/photos/%d%s", id, suffix)
}

// multipartBody buffers the whole form so the request can be replayed by
// transports that clone it.
func multipartBody(field, filename string, file io.Reader, fields map[string]string) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return nil, "", err
		}
	}
	part, err := w.CreateFormFile(field, filename)
	if err != nil {
		return nil, "", err
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, "", fmt.Errorf("failed to read upload: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}
