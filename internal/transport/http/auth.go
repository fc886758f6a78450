package http

import (
	"errors"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/iamasit07/photoshare/internal/domain"
	"github.com/iamasit07/photoshare/internal/forms"
	"github.com/iamasit07/photoshare/internal/repository/memory"
	"github.com/iamasit07/photoshare/internal/transport/http/middleware"
	"github.com/iamasit07/photoshare/pkg/auth"
)

type AuthHandler struct {
	Repo      *memory.PhotoRepo
	Signer    *auth.Signer
	UploadDir string
	Logger    *zap.Logger
}

func NewAuthHandler(repo *memory.PhotoRepo, signer *auth.Signer, uploadDir string, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		Repo:      repo,
		Signer:    signer,
		UploadDir: uploadDir,
		Logger:    logger.Named("auth"),
	}
}

type registerBody struct {
	FullName string `json:"fullName" binding:"required,min=2,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerBody
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, forms.Summary(err))
		return
	}

	hashedPwd, err := auth.HashPassword(req.Password)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	user, err := h.Repo.CreateUser(strings.TrimSpace(req.FullName), req.Email, hashedPwd)
	if errors.Is(err, domain.ErrConflict) {
		respondError(c, http.StatusConflict, "Email is already registered")
		return
	}
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to create user")
		return
	}

	token, err := h.Signer.GenerateAccessToken(user.ID, user.Email, user.FullName)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	h.Logger.Info("user registered", zap.Int64("user_id", user.ID))
	respondData(c, http.StatusCreated, domain.AuthResult{Token: token, User: *user})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req forms.LoginForm
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, forms.Summary(err))
		return
	}

	rec, ok := h.Repo.GetUserByEmail(req.Email)
	if !ok || !auth.CheckPasswordHash(req.Password, rec.PasswordHash) {
		respondError(c, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	token, err := h.Signer.GenerateAccessToken(rec.ID, rec.Email, rec.FullName)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	respondData(c, http.StatusOK, domain.AuthResult{Token: token, User: rec.User})
}

func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.Repo.GetUserByID(middleware.UserID(c))
	if err != nil {
		respondError(c, http.StatusNotFound, "User not found")
		return
	}
	respondData(c, http.StatusOK, user)
}

func (h *AuthHandler) UploadAvatar(c *gin.Context) {
	file, err := c.FormFile("avatar")
	if err != nil {
		respondError(c, http.StatusBadRequest, "Avatar file is required")
		return
	}
	if err := forms.Validate(forms.AvatarForm{Path: file.Filename}); err != nil {
		respondError(c, http.StatusBadRequest, forms.Summary(err))
		return
	}

	name := "avatar-" + uuid.NewString() + strings.ToLower(filepath.Ext(file.Filename))
	if err := c.SaveUploadedFile(file, filepath.Join(h.UploadDir, name)); err != nil {
		h.Logger.Error("failed to save avatar", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Failed to save avatar")
		return
	}

	user, err := h.Repo.SetProfilePicture(middleware.UserID(c), "/uploads/"+name)
	if err != nil {
		respondError(c, http.StatusNotFound, "User not found")
		return
	}
	respondData(c, http.StatusOK, user)
}
