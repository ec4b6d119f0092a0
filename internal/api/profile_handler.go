package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"wellvantage/fitness-app/internal/service"
)

type ProfileHandler struct {
	profileService service.ProfileService
	logger         zerolog.Logger
}

func NewProfileHandler(profileService service.ProfileService, logger zerolog.Logger) *ProfileHandler {
	return &ProfileHandler{profileService: profileService, logger: logger}
}

type PictureUploadRequest struct {
	ContentType string `json:"contentType" binding:"required"`
}

// GetProfile godoc
// @Summary Get the signed-in user's profile
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} domain.User
// @Router /users/profile [get]
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	user, err := h.profileService.Get(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.logger, err, "Failed to load profile")
		return
	}
	c.JSON(http.StatusOK, user)
}

// RequestPictureUpload godoc
// @Summary Get a presigned URL to upload a new profile picture
// @Description The client PUTs the image to uploadUrl with the same Content-Type.
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body PictureUploadRequest true "Image content type"
// @Success 200 {object} domain.PictureUpload
// @Failure 503 {object} gin.H "Uploads not configured"
// @Router /users/profile/picture [post]
func (h *ProfileHandler) RequestPictureUpload(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}
	var req PictureUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	upload, err := h.profileService.RequestPictureUpload(c.Request.Context(), userID, req.ContentType)
	if err != nil {
		respondError(c, h.logger, err, "Failed to prepare picture upload")
		return
	}
	c.JSON(http.StatusOK, upload)
}
