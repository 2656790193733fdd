package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/cleanit/cleanit_admin/internal/core/ports/services"
	"github.com/cleanit/cleanit_admin/internal/dto"
	"github.com/gin-gonic/gin"
)

type notificationHandler struct {
	notificationService portssvc.NotificationSvc
}

func registerNotificationRoutes(rg *gin.RouterGroup, notificationService portssvc.NotificationSvc) {
	h := &notificationHandler{notificationService: notificationService}
	rg.POST("/notifications", h.send)
}

// send godoc
// @Summary Send a notification
// @Description Queues a message to one user. Messages sent during the recipient's quiet hours are deferred until the window ends.
// @Tags notifications
// @Accept json
// @Produce json
// @Param notification body dto.SendNotificationRequest true "Message"
// @Success 201 {object} dto.NotificationResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Recipient not found"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /notifications [post]
func (h *notificationHandler) send(c *gin.Context) {
	var req dto.SendNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	senderID, ok := requireUserID(c)
	if !ok {
		return
	}

	n, err := h.notificationService.Send(c.Request.Context(), req, senderID)
	if err != nil {
		respondError(c, err, "Failed to send notification")
		return
	}

	loggerFor(c).Info("Notification queued", slog.String("notification_id", n.NotificationID), slog.String("status", string(n.Status)))
	c.JSON(http.StatusCreated, dto.ToNotificationResponse(*n))
}
