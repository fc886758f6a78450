package http

import (
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/iamasit07/photoshare/internal/forms"
	"github.com/iamasit07/photoshare/internal/repository/memory"
	"github.com/iamasit07/photoshare/internal/transport/http/middleware"
)

// Publisher fans photo changes out to live subscribers.
type Publisher interface {
	PublishPhoto(photoID int64)
}

type PhotoHandler struct {
	Repo      *memory.PhotoRepo
	Live      Publisher
	UploadDir string
	Logger    *zap.Logger
}

func NewPhotoHandler(repo *memory.PhotoRepo, live Publisher, uploadDir string, logger *zap.Logger) *PhotoHandler {
	return &PhotoHandler{
		Repo:      repo,
		Live:      live,
		UploadDir: uploadDir,
		Logger:    logger.Named("photos"),
	}
}

func (h *PhotoHandler) List(c *gin.Context) {
	page, limit := pageParams(c)
	photos, pagination := h.Repo.ListPhotos(middleware.UserID(c), page, limit)
	respondPage(c, photos, pagination)
}

func (h *PhotoHandler) Favorites(c *gin.Context) {
	page, limit := pageParams(c)
	photos, pagination := h.Repo.ListFavorites(middleware.UserID(c), page, limit)
	respondPage(c, photos, pagination)
}

func (h *PhotoHandler) Get(c *gin.Context) {
	id, ok := photoID(c)
	if !ok {
		return
	}
	photo, err := h.Repo.GetPhoto(middleware.UserID(c), id)
	if err != nil {
		respondDomainError(c, err, "")
		return
	}
	respondData(c, http.StatusOK, photo)
}

func (h *PhotoHandler) Upload(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		respondError(c, http.StatusBadRequest, "Image file is required")
		return
	}

	form := forms.UploadForm{
		Title:       strings.TrimSpace(c.PostForm("title")),
		Description: strings.TrimSpace(c.PostForm("description")),
		Path:        file.Filename,
	}
	if err := forms.Validate(form); err != nil {
		respondError(c, http.StatusBadRequest, forms.Summary(err))
		return
	}

	name := uuid.NewString() + strings.ToLower(filepath.Ext(file.Filename))
	if err := c.SaveUploadedFile(file, filepath.Join(h.UploadDir, name)); err != nil {
		h.Logger.Error("failed to save upload", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Failed to save image")
		return
	}

	photo, err := h.Repo.CreatePhoto(middleware.UserID(c), form.Title, form.Description, "/uploads/"+name)
	if err != nil {
		respondDomainError(c, err, "")
		return
	}
	respondData(c, http.StatusCreated, photo)
}

func (h *PhotoHandler) Delete(c *gin.Context) {
	id, ok := photoID(c)
	if !ok {
		return
	}
	if err := h.Repo.DeletePhoto(middleware.UserID(c), id); err != nil {
		respondDomainError(c, err, "")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *PhotoHandler) Like(c *gin.Context)   { h.setLike(c, true) }
func (h *PhotoHandler) Unlike(c *gin.Context) { h.setLike(c, false) }

func (h *PhotoHandler) setLike(c *gin.Context, liked bool) {
	id, ok := photoID(c)
	if !ok {
		return
	}
	photo, err := h.Repo.SetLike(middleware.UserID(c), id, liked)
	if err != nil {
		respondDomainError(c, err, "You can't like your own photo")
		return
	}
	if h.Live != nil {
		h.Live.PublishPhoto(id)
	}
	respondData(c, http.StatusOK, photo)
}

func (h *PhotoHandler) Favorite(c *gin.Context)   { h.setFavorite(c, true) }
func (h *PhotoHandler) Unfavorite(c *gin.Context) { h.setFavorite(c, false) }

func (h *PhotoHandler) setFavorite(c *gin.Context, favorited bool) {
	id, ok := photoID(c)
	if !ok {
		return
	}
	photo, err := h.Repo.SetFavorite(middleware.UserID(c), id, favorited)
	if err != nil {
		respondDomainError(c, err, "")
		return
	}
	if h.Live != nil {
		h.Live.PublishPhoto(id)
	}
	respondData(c, http.StatusOK, photo)
}

func photoID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(c, http.StatusBadRequest, "Invalid photo id")
		return 0, false
	}
	return id, true
}

func pageParams(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "12"))
	if limit > 50 {
		limit = 50
	}
	return max(page, 1), limit
}
