package handler

import (
	"net/http"

	"github.com/gdugdh24/faithmatch-backend/internal/domain"
	"github.com/gdugdh24/faithmatch-backend/internal/usecase/notification"
	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	notificationUseCase *notification.NotificationUseCase
}

func NewNotificationHandler(notificationUseCase *notification.NotificationUseCase) *NotificationHandler {
	return &NotificationHandler{
		notificationUseCase: notificationUseCase,
	}
}

// NotificationsResponse lists advisory events, newest first.
type NotificationsResponse struct {
	Notifications []*domain.Notification `json:"notifications"`
}

// List handles GET /notifications
// @Summary My notifications
// @Tags notifications
// @Security BearerAuth
// @Produce json
// @Param unread query bool false "Only unread"
// @Success 200 {object} NotificationsResponse
// @Router /notifications [get]
func (h *NotificationHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	limit, offset := pagination(c)
	unreadOnly := c.Query("unread") == "true"
	items, err := h.notificationUseCase.List(c.Request.Context(), userID, unreadOnly, limit, offset)
	if err != nil {
		respondError(c, err, "failed to get notifications")
		return
	}

	c.JSON(http.StatusOK, NotificationsResponse{Notifications: items})
}

// MarkRead handles POST /notifications/:id/read
// @Summary Mark notification read
// @Tags notifications
// @Security BearerAuth
// @Produce json
// @Param id path string true "Notification ID"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Router /notifications/{id}/read [post]
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.notificationUseCase.MarkRead(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondError(c, err, "failed to mark notification")
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "ok"})
}
