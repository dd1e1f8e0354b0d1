package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"diplomakids/internal/services"
	"diplomakids/pkg/utils"
)

type NotificationController struct {
	notificationService services.NotificationServiceInterface
}

func NewNotificationController(notificationService services.NotificationServiceInterface) *NotificationController {
	return &NotificationController{notificationService: notificationService}
}

// ListNotifications godoc
// @Summary The caller's notifications, newest first
// @Tags Notifications
// @Produce json
// @Param unread_only query bool false "Only unread notifications"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /notifications [get]
func (n *NotificationController) ListNotifications(c *gin.Context) {
	familyID, ok := callerFamily(c)
	if !ok {
		return
	}
	unreadOnly, _ := strconv.ParseBool(c.DefaultQuery("unread_only", "false"))

	notifications, err := n.notificationService.List(c.Request.Context(), familyID, unreadOnly)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, notifications, "")
}

// MarkRead godoc
// @Summary Mark a notification as read
// @Tags Notifications
// @Produce json
// @Param id path string true "Notification ID"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /notifications/{id}/read [put]
func (n *NotificationController) MarkRead(c *gin.Context) {
	familyID, ok := callerFamily(c)
	if !ok {
		return
	}
	notificationID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	updated, err := n.notificationService.MarkRead(c.Request.Context(), familyID, notificationID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, gin.H{"success": updated}, "")
}
