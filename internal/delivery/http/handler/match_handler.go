package handler

import (
	"net/http"

	"github.com/gdugdh24/faithmatch-backend/internal/domain"
	"github.com/gdugdh24/faithmatch-backend/internal/usecase/match"
	"github.com/gin-gonic/gin"
)

type MatchHandler struct {
	matchUseCase *match.MatchUseCase
}

func NewMatchHandler(matchUseCase *match.MatchUseCase) *MatchHandler {
	return &MatchHandler{
		matchUseCase: matchUseCase,
	}
}

// MatchesResponse is the only shape GET /matches returns.
type MatchesResponse struct {
	Matches []domain.MatchView `json:"matches"`
}

// ListMatches handles GET /matches
// @Summary My matches
// @Tags matches
// @Security BearerAuth
// @Produce json
// @Param limit query int false "Limit"
// @Param offset query int false "Offset"
// @Success 200 {object} MatchesResponse
// @Router /matches [get]
func (h *MatchHandler) ListMatches(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	limit, offset := pagination(c)
	views, err := h.matchUseCase.ListMatches(c.Request.Context(), userID, limit, offset)
	if err != nil {
		respondError(c, err, "failed to get matches")
		return
	}

	c.JSON(http.StatusOK, MatchesResponse{Matches: views})
}

// Unmatch handles DELETE /matches/:id
// @Summary Unmatch
// @Tags matches
// @Security BearerAuth
// @Produce json
// @Param id path string true "Match ID"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Router /matches/{id} [delete]
func (h *MatchHandler) Unmatch(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.matchUseCase.Unmatch(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondError(c, err, "failed to unmatch")
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "unmatched"})
}
