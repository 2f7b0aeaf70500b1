package handler

import (
	"net/http"

	"github.com/gdugdh24/faithmatch-backend/internal/domain"
	"github.com/gdugdh24/faithmatch-backend/internal/usecase/swipe"
	"github.com/gin-gonic/gin"
)

type SwipeHandler struct {
	swipeUseCase *swipe.SwipeUseCase
}

func NewSwipeHandler(swipeUseCase *swipe.SwipeUseCase) *SwipeHandler {
	return &SwipeHandler{
		swipeUseCase: swipeUseCase,
	}
}

// Like handles POST /swipe/:user_id/like
// @Summary Like a user
// @Description Idempotent; 409 while the same like is in flight
// @Tags swipe
// @Security BearerAuth
// @Produce json
// @Param user_id path string true "User ID"
// @Success 200 {object} domain.LikeResult
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /swipe/{user_id}/like [post]
func (h *SwipeHandler) Like(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	result, err := h.swipeUseCase.Like(c.Request.Context(), userID, c.Param("user_id"))
	if err != nil {
		respondError(c, err, "failed to like")
		return
	}

	c.JSON(http.StatusOK, result)
}

// Pass handles POST /swipe/:user_id/pass
// @Summary Pass on a user
// @Tags swipe
// @Security BearerAuth
// @Produce json
// @Param user_id path string true "User ID"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /swipe/{user_id}/pass [post]
func (h *SwipeHandler) Pass(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.swipeUseCase.Pass(c.Request.Context(), userID, c.Param("user_id")); err != nil {
		respondError(c, err, "failed to pass")
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "passed"})
}

// LikesReceivedResponse lists unanswered incoming likes.
type LikesReceivedResponse struct {
	Likes []domain.LikeReceived `json:"likes"`
}

// GetLikesReceived handles GET /swipe/likes-received
// @Summary Who liked me
// @Tags swipe
// @Security BearerAuth
// @Produce json
// @Param limit query int false "Limit"
// @Param offset query int false "Offset"
// @Success 200 {object} LikesReceivedResponse
// @Router /swipe/likes-received [get]
func (h *SwipeHandler) GetLikesReceived(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	limit, offset := pagination(c)
	likes, err := h.swipeUseCase.GetLikesReceived(c.Request.Context(), userID, limit, offset)
	if err != nil {
		respondError(c, err, "failed to get likes")
		return
	}

	c.JSON(http.StatusOK, LikesReceivedResponse{Likes: likes})
}
