package controllers

import (
	"net/http"
	"time"

	"liftakids-api/config"
	"liftakids-api/models"

	"github.com/gin-gonic/gin"
)

// ===== ADMIN CONTROLLERS =====

type AdminRequest struct {
	AdminName string  `json:"admin_name" binding:"required"`
	Email     string  `json:"email" binding:"required,email"`
	Phone     *string `json:"phone"`
	Password  string  `json:"password" binding:"omitempty,min=8"`
	IsSuper   bool    `json:"is_super"`
}

// GetAdmins lists administrator accounts.
func GetAdmins(c *gin.Context) {
	var admins []models.Admin
	if err := config.DB.Where("delete_at IS NULL").Order("admin_id ASC").Find(&admins).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch admins"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": admins, "count": len(admins)})
}

// CreateAdmin adds an administrator account.
func CreateAdmin(c *gin.Context) {
	var req AdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Password is required"})
		return
	}

	var count int64
	config.DB.Model(&models.Admin{}).Where("email = ? AND delete_at IS NULL", req.Email).Count(&count)
	if count > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Email is already registered"})
		return
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create admin"})
		return
	}

	now := time.Now()
	admin := models.Admin{
		AdminName: req.AdminName,
		Email:     req.Email,
		Phone:     req.Phone,
		Password:  hash,
		IsSuper:   req.IsSuper,
		CreateAt:  &now,
		UpdateAt:  &now,
	}
	if err := config.DB.Create(&admin).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create admin"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "data": admin})
}

// UpdateAdmin edits an administrator account.
func UpdateAdmin(c *gin.Context) {
	id := c.Param("id")

	var admin models.Admin
	if err := config.DB.Where("admin_id = ? AND delete_at IS NULL", id).First(&admin).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Admin not found"})
		return
	}

	var req AdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	now := time.Now()
	admin.AdminName = req.AdminName
	admin.Phone = req.Phone
	admin.IsSuper = req.IsSuper
	admin.UpdateAt = &now
	if req.Password != "" {
		hash, err := HashPassword(req.Password)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update admin"})
			return
		}
		admin.Password = hash
	}

	if err := config.DB.Save(&admin).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update admin"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": admin})
}

// DeleteAdmin soft deletes an administrator account.
func DeleteAdmin(c *gin.Context) {
	id := c.Param("id")

	accountID, _ := c.Get("accountID")

	var admin models.Admin
	if err := config.DB.Where("admin_id = ? AND delete_at IS NULL", id).First(&admin).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Admin not found"})
		return
	}
	if admin.AdminID == accountID.(int) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot delete your own account"})
		return
	}

	now := time.Now()
	if err := config.DB.Model(&admin).
		Updates(map[string]interface{}{"delete_at": now, "update_at": now}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete admin"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Admin deleted"})
}
