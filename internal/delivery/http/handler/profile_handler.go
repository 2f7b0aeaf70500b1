package handler

import (
	"net/http"

	"github.com/gdugdh24/faithmatch-backend/internal/domain"
	"github.com/gdugdh24/faithmatch-backend/internal/usecase/profile"
	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	profileUseCase *profile.ProfileUseCase
}

func NewProfileHandler(profileUseCase *profile.ProfileUseCase) *ProfileHandler {
	return &ProfileHandler{
		profileUseCase: profileUseCase,
	}
}

// GetMyProfile handles GET /profile/me
// @Summary Get my profile
// @Tags profile
// @Security BearerAuth
// @Produce json
// @Success 200 {object} domain.Profile
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /profile/me [get]
func (h *ProfileHandler) GetMyProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	p, err := h.profileUseCase.GetMyProfile(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "failed to get profile")
		return
	}

	c.JSON(http.StatusOK, p)
}

// UpdateMyProfile handles PUT /profile/me
// @Summary Update my profile
// @Description Partial update; numeric preferences are clamped to their allowed ranges
// @Tags profile
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body domain.ProfileUpdate true "Profile update data"
// @Success 200 {object} domain.Profile
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /profile/me [put]
func (h *ProfileHandler) UpdateMyProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req domain.ProfileUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	updated, err := h.profileUseCase.UpdateProfile(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err, "failed to update profile")
		return
	}

	c.JSON(http.StatusOK, updated)
}

// CompleteOnboarding handles POST /profile/complete-onboarding
// @Summary Complete onboarding
// @Description Store the onboarding payload as the user's profile
// @Tags profile
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body domain.OnboardingPayload true "Onboarding payload"
// @Success 201 {object} domain.Profile
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /profile/complete-onboarding [post]
func (h *ProfileHandler) CompleteOnboarding(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req domain.OnboardingPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	created, err := h.profileUseCase.CompleteOnboarding(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err, "failed to complete onboarding")
		return
	}

	c.JSON(http.StatusCreated, created)
}

// GetProfileByUserID handles GET /profile/:user_id
// @Summary Get user profile
// @Tags profile
// @Security BearerAuth
// @Produce json
// @Param user_id path string true "User ID"
// @Success 200 {object} profile.ProfileResponse
// @Failure 404 {object} ErrorResponse
// @Router /profile/{user_id} [get]
func (h *ProfileHandler) GetProfileByUserID(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	resp, err := h.profileUseCase.GetProfileByUserID(c.Request.Context(), c.Param("user_id"), userID)
	if err != nil {
		respondError(c, err, "failed to get profile")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GenerateBio handles POST /profile/generate-bio
// @Summary Generate bio with AI
// @Description Generate 3 bio drafts
// @Tags profile
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body profile.GenerateBioRequest true "Bio generation data"
// @Success 200 {object} map[string]string
// @Failure 400 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /profile/generate-bio [post]
func (h *ProfileHandler) GenerateBio(c *gin.Context) {
	if _, ok := currentUserID(c); !ok {
		return
	}

	var req profile.GenerateBioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	bios, err := h.profileUseCase.GenerateBio(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err, "failed to generate bio")
		return
	}

	c.JSON(http.StatusOK, bios)
}
