package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gdugdh24/faithmatch-backend/internal/delivery/http/middleware"
	"github.com/gdugdh24/faithmatch-backend/internal/domain"
	"github.com/gdugdh24/faithmatch-backend/internal/usecase/profile"
	"github.com/gin-gonic/gin"
)

// ErrorResponse represents error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// SuccessResponse represents success response
type SuccessResponse struct {
	Message string `json:"message"`
}

var errorStatus = []struct {
	err    error
	status int
}{
	{domain.ErrInvalidInput, http.StatusBadRequest},
	{domain.ErrCannotSwipeSelf, http.StatusBadRequest},
	{domain.ErrTooFewPhotos, http.StatusBadRequest},
	{domain.ErrTooManyPhotos, http.StatusBadRequest},
	{domain.ErrTooManyInterests, http.StatusBadRequest},
	{domain.ErrUnsupportedMedia, http.StatusUnsupportedMediaType},
	{domain.ErrPhotoTooLarge, http.StatusRequestEntityTooLarge},
	{domain.ErrInvalidIdentity, http.StatusUnauthorized},
	{domain.ErrInvalidToken, http.StatusUnauthorized},
	{domain.ErrSessionNotFound, http.StatusUnauthorized},
	{domain.ErrSessionExpired, http.StatusUnauthorized},
	{domain.ErrOnboardingIncomplete, http.StatusForbidden},
	{domain.ErrUserNotFound, http.StatusNotFound},
	{domain.ErrProfileNotFound, http.StatusNotFound},
	{domain.ErrSwipeNotFound, http.StatusNotFound},
	{domain.ErrMatchNotFound, http.StatusNotFound},
	{domain.ErrNotificationNotFound, http.StatusNotFound},
	{domain.ErrProfileAlreadyExists, http.StatusConflict},
	{domain.ErrSwipeInFlight, http.StatusConflict},
	{domain.ErrSwipeAlreadyExists, http.StatusConflict},
	{profile.ErrBioUnavailable, http.StatusServiceUnavailable},
}

// respondError maps domain errors to their status. Anything unknown is a
// 500 with the fallback message; the cause is attached for the request log.
func respondError(c *gin.Context, err error, fallback string) {
	for _, e := range errorStatus {
		if errors.Is(err, e.err) {
			c.JSON(e.status, ErrorResponse{Error: err.Error()})
			return
		}
	}
	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: fallback})
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request: " + err.Error()})
}

func currentUserID(c *gin.Context) (string, bool) {
	userID := c.GetString(middleware.UserIDKey)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return "", false
	}
	return userID, true
}

// pagination reads limit and offset query parameters. Invalid values fall
// back to zero, which use cases treat as their defaults.
func pagination(c *gin.Context) (int, int) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
