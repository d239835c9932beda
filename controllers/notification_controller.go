package controllers

import (
	"net/http"
	"time"

	"liftakids-api/config"
	"liftakids-api/models"

	"github.com/gin-gonic/gin"
)

// ===== NOTIFICATION CONTROLLERS =====

// GetNotifications lists the authenticated account's notifications, newest
// first.
func GetNotifications(c *gin.Context) {
	accountID, _ := c.Get("accountID")
	accountType, _ := c.Get("accountType")

	query := config.DB.Model(&models.Notification{}).
		Where("account_type = ? AND account_id = ?", accountType, accountID)

	if c.Query("unread_only") == "true" {
		query = query.Where("is_read = ?", false)
	}

	var notifications []models.Notification
	if err := query.Order("notification_id DESC").Limit(100).Find(&notifications).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch notifications"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": notifications, "count": len(notifications)})
}

// MarkNotificationRead marks one notification as read.
func MarkNotificationRead(c *gin.Context) {
	id := c.Param("id")
	accountID, _ := c.Get("accountID")
	accountType, _ := c.Get("accountType")

	now := time.Now()
	result := config.DB.Model(&models.Notification{}).
		Where("notification_id = ? AND account_type = ? AND account_id = ?", id, accountType, accountID).
		Updates(map[string]interface{}{"is_read": true, "update_at": now})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update notification"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Notification marked as read"})
}

// MarkAllNotificationsRead marks every unread notification as read.
func MarkAllNotificationsRead(c *gin.Context) {
	accountID, _ := c.Get("accountID")
	accountType, _ := c.Get("accountType")

	now := time.Now()
	if err := config.DB.Model(&models.Notification{}).
		Where("account_type = ? AND account_id = ? AND is_read = ?", accountType, accountID, false).
		Updates(map[string]interface{}{"is_read": true, "update_at": now}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update notifications"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "All notifications marked as read"})
}
