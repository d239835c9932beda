package controllers

import (
	"net/http"
	"strings"
	"time"

	"liftakids-api/config"
	"liftakids-api/models"
	"liftakids-api/utils"

	"github.com/gin-gonic/gin"
)

// ===== DONOR CONTROLLERS =====

type DonorRegisterRequest struct {
	DonorName       string  `json:"donor_name" binding:"required"`
	Email           string  `json:"email" binding:"required,email"`
	Phone           *string `json:"phone"`
	Password        string  `json:"password" binding:"required,min=8"`
	ConfirmPassword string  `json:"confirm_password" binding:"required"`
}

// RegisterDonor self-registers a donor account.
func RegisterDonor(c *gin.Context) {
	var req DonorRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Password != req.ConfirmPassword {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Passwords do not match"})
		return
	}
	if req.Phone != nil && !utils.ValidatePhone(*req.Phone) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Phone number is invalid"})
		return
	}

	var count int64
	config.DB.Model(&models.Donor{}).Where("email = ? AND delete_at IS NULL", req.Email).Count(&count)
	if count > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Email is already registered"})
		return
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create account"})
		return
	}

	now := time.Now()
	donor := models.Donor{
		DonorName: req.DonorName,
		Email:     req.Email,
		Phone:     req.Phone,
		Password:  hash,
		CreateAt:  &now,
		UpdateAt:  &now,
	}
	if err := config.DB.Create(&donor).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create account"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "data": donor})
}

// GetDonors lists donors (admin view).
func GetDonors(c *gin.Context) {
	query := config.DB.Model(&models.Donor{}).Where("delete_at IS NULL")

	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch donors"})
		return
	}

	var donors []models.Donor
	if err := query.Scopes(Paginate(c)).Order("donor_id DESC").Find(&donors).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch donors"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "pagination": NewPaginatedResponse(c, donors, total)})
}

// GetDonor returns one donor.
func GetDonor(c *gin.Context) {
	id := c.Param("id")

	var donor models.Donor
	if err := config.DB.Where("donor_id = ? AND delete_at IS NULL", id).First(&donor).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Donor not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": donor})
}

// SearchDonors answers the directory search box: case-insensitive substring
// match on name or email.
func SearchDonors(c *gin.Context) {
	term := utils.SanitizeInput(c.Query("searchTerm"))
	if term == "" {
		c.JSON(http.StatusOK, gin.H{"success": true, "data": []models.Donor{}})
		return
	}

	pattern := "%" + strings.ToLower(term) + "%"
	var donors []models.Donor
	if err := config.DB.
		Where("delete_at IS NULL").
		Where("LOWER(donor_name) LIKE ? OR LOWER(email) LIKE ?", pattern, pattern).
		Order("donor_name ASC").
		Limit(50).
		Find(&donors).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search donors"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": donors})
}

// UpdateDonor edits a donor profile (self or admin).
func UpdateDonor(c *gin.Context) {
	id := c.Param("id")

	var donor models.Donor
	if err := config.DB.Where("donor_id = ? AND delete_at IS NULL", id).First(&donor).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Donor not found"})
		return
	}

	accountType, _ := c.Get("accountType")
	accountID, _ := c.Get("accountID")
	if accountType != models.AccountTypeAdmin &&
		!(accountType == models.AccountTypeDonor && accountID.(int) == donor.DonorID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
		return
	}

	type DonorUpdateRequest struct {
		DonorName string  `json:"donor_name" binding:"required"`
		Phone     *string `json:"phone"`
	}
	var req DonorUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	now := time.Now()
	donor.DonorName = req.DonorName
	donor.Phone = req.Phone
	donor.UpdateAt = &now

	if err := config.DB.Save(&donor).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update donor"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": donor})
}

// DeleteDonor soft deletes a donor (admin only).
func DeleteDonor(c *gin.Context) {
	id := c.Param("id")

	var donor models.Donor
	if err := config.DB.Where("donor_id = ? AND delete_at IS NULL", id).First(&donor).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Donor not found"})
		return
	}

	now := time.Now()
	if err := config.DB.Model(&donor).
		Updates(map[string]interface{}{"delete_at": now, "update_at": now}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete donor"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Donor deleted"})
}
