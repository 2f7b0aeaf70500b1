package handler

import (
	"net/http"

	"github.com/gdugdh24/faithmatch-backend/internal/domain"
	"github.com/gdugdh24/faithmatch-backend/internal/usecase/feed"
	"github.com/gin-gonic/gin"
)

type DiscoverHandler struct {
	feedUseCase *feed.FeedUseCase
}

func NewDiscoverHandler(feedUseCase *feed.FeedUseCase) *DiscoverHandler {
	return &DiscoverHandler{
		feedUseCase: feedUseCase,
	}
}

// CandidatesResponse is the only shape GET /discover returns.
type CandidatesResponse struct {
	Candidates []domain.Candidate `json:"candidates"`
}

// Discover handles GET /discover
// @Summary Discover candidates
// @Description Ranked candidates; unset filters fall back to saved preferences
// @Tags discover
// @Security BearerAuth
// @Produce json
// @Param interests query []string false "Interests"
// @Param faith_journey query []string false "Faith journeys"
// @Param min_age query int false "Min age"
// @Param max_age query int false "Max age"
// @Param max_distance_km query int false "Max distance"
// @Param limit query int false "Limit"
// @Success 200 {object} CandidatesResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /discover [get]
func (h *DiscoverHandler) Discover(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var filter domain.CandidateFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		badRequest(c, err)
		return
	}

	candidates, err := h.feedUseCase.Discover(c.Request.Context(), userID, filter)
	if err != nil {
		respondError(c, err, "failed to load candidates")
		return
	}

	c.JSON(http.StatusOK, CandidatesResponse{Candidates: candidates})
}
