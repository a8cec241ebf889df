package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/blog_backend/internal/apperrors"
	portssvc "github.com/SscSPs/blog_backend/internal/core/ports/services"
	"github.com/SscSPs/blog_backend/internal/dto"
	"github.com/SscSPs/blog_backend/internal/middleware"
	"github.com/SscSPs/blog_backend/internal/utils/mapping"
	"github.com/gin-gonic/gin"
)

// userHandler handles HTTP requests related to users.
type userHandler struct {
	userService portssvc.UserSvcFacade
}

func newUserHandler(us portssvc.UserSvcFacade) *userHandler {
	return &userHandler{userService: us}
}

// registerUserRoutes registers all user-related routes. signedIn must load the caller's profile.
func registerUserRoutes(rg *gin.RouterGroup, userService portssvc.UserSvcFacade, signedIn ...gin.HandlerFunc) {
	h := newUserHandler(userService)

	private := rg.Group("/user", signedIn...)
	{
		private.GET("/profile", h.getProfile)
		private.GET("/:id", h.getUser)
		private.PUT("/update", h.updateProfile)
	}
	rg.GET("/user/photo/:id", h.getPhoto)
	rg.GET("/profile/:username", h.getPublicProfile)
}

// getProfile godoc
// @Summary Get the signed-in user's profile
// @Tags users
// @Produce json
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /user/profile [get]
func (h *userHandler) getProfile(c *gin.Context) {
	profile, ok := middleware.GetProfileFromContext(c)
	if !ok {
		respondError(c, apperrors.NewUnauthorizedError("Unauthorized"))
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(profile))
}

func (h *userHandler) getUser(c *gin.Context) {
	user, err := h.userService.GetUserByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapping.ToAuthorRef(*user))
}

// getPublicProfile godoc
// @Summary Get a user's public page
// @Tags users
// @Produce json
// @Param username path string true "Username"
// @Success 200 {object} dto.PublicProfileResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /profile/{username} [get]
func (h *userHandler) getPublicProfile(c *gin.Context) {
	user, blogs, err := h.userService.GetPublicProfile(c.Request.Context(), c.Param("username"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.PublicProfileResponse{User: mapping.ToAuthorRef(*user), Blogs: blogs})
}

// updateProfile godoc
// @Summary Update the signed-in user's profile
// @Description Multipart form. Only name, username, about, password and photo can change.
// @Tags users
// @Accept mpfd
// @Produce json
// @Param name formData string false "Display name"
// @Param username formData string false "Username"
// @Param about formData string false "About"
// @Param password formData string false "New password"
// @Param photo formData file false "Profile photo, at most 10mb"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Username already exists"
// @Security BearerAuth
// @Router /user/update [put]
func (h *userHandler) updateProfile(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	profile, ok := middleware.GetProfileFromContext(c)
	if !ok {
		respondError(c, apperrors.NewUnauthorizedError("Unauthorized"))
		return
	}

	var form dto.UpdateProfileForm
	if err := c.ShouldBind(&form); err != nil {
		respondBindError(c, err)
		return
	}
	photo, err := readPhoto(c, "photo")
	if err != nil {
		respondError(c, err)
		return
	}
	if photo != nil && len(photo.Data) > 10<<20 {
		respondError(c, apperrors.NewBadRequestError("Image should be less than 10mb in size"))
		return
	}

	updated, err := h.userService.UpdateProfile(c.Request.Context(), profile.UserID, form.ToDomain(photo))
	if err != nil {
		respondError(c, err)
		return
	}
	logger.Info("Profile updated", slog.Bool("photo", photo != nil))
	c.JSON(http.StatusOK, dto.ToUserResponse(updated))
}

func (h *userHandler) getPhoto(c *gin.Context) {
	photo, err := h.userService.GetProfilePhoto(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	writePhoto(c, photo)
}
