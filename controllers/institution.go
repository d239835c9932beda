package controllers

import (
	"errors"
	"net/http"
	"time"

	"liftakids-api/config"
	"liftakids-api/models"
	"liftakids-api/services"
	"liftakids-api/utils"

	"github.com/gin-gonic/gin"
)

// ===== INSTITUTION CONTROLLERS =====

type InstitutionRegisterRequest struct {
	InstitutionName string  `json:"institution_name" binding:"required"`
	InstitutionType string  `json:"institution_type" binding:"required,oneof=school madrasa orphanage other"`
	Email           string  `json:"email" binding:"required,email"`
	Phone           *string `json:"phone"`
	Password        string  `json:"password" binding:"required,min=8"`
	ConfirmPassword string  `json:"confirm_password" binding:"required"`
	Address         *string `json:"address"`
	DivisionID      *int    `json:"division_id"`
	DistrictID      *int    `json:"district_id"`
	ThanaID         *int    `json:"thana_id"`
	UnionID         *int    `json:"union_id"`
}

// RegisterInstitution self-registers an institution; it stays PENDING until
// an admin approves it.
func RegisterInstitution(c *gin.Context) {
	var req InstitutionRegisterRequest
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

	if err := validateInstitutionArea(c, req.DivisionID, req.DistrictID, req.ThanaID, req.UnionID); err != nil {
		return
	}

	var count int64
	config.DB.Model(&models.Institution{}).Where("email = ? AND delete_at IS NULL", req.Email).Count(&count)
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
	institution := models.Institution{
		InstitutionName: req.InstitutionName,
		InstitutionType: req.InstitutionType,
		Email:           req.Email,
		Phone:           req.Phone,
		Password:        hash,
		Address:         req.Address,
		DivisionID:      req.DivisionID,
		DistrictID:      req.DistrictID,
		ThanaID:         req.ThanaID,
		UnionID:         req.UnionID,
		ApprovalStatus:  models.InstitutionStatusPending,
		CreateAt:        &now,
		UpdateAt:        &now,
	}
	if err := config.DB.Create(&institution).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create account"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "data": institution})
}

// GetInstitutions lists institutions with filters (admin and donor browse).
func GetInstitutions(c *gin.Context) {
	query := config.DB.Model(&models.Institution{}).
		Preload("Division").Preload("District").Preload("Thana").Preload("Union").
		Where("delete_at IS NULL")

	if status := c.Query("approval_status"); status != "" {
		query = query.Where("approval_status = ?", status)
	}
	if institutionType := c.Query("institution_type"); institutionType != "" {
		query = query.Where("institution_type = ?", institutionType)
	}
	for _, column := range []string{"division_id", "district_id", "thana_id", "union_id"} {
		if v := c.Query(column); v != "" {
			query = query.Where(column+" = ?", v)
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch institutions"})
		return
	}

	var institutions []models.Institution
	if err := query.Scopes(Paginate(c)).Order("institution_id DESC").Find(&institutions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch institutions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "pagination": NewPaginatedResponse(c, institutions, total)})
}

// GetInstitution returns one institution.
func GetInstitution(c *gin.Context) {
	id := c.Param("id")

	var institution models.Institution
	if err := config.DB.Preload("Division").Preload("District").Preload("Thana").Preload("Union").
		Where("institution_id = ? AND delete_at IS NULL", id).
		First(&institution).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Institution not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": institution})
}

// UpdateInstitution edits an institution profile (self or admin). A changed
// parent area invalidates every descendant selection.
func UpdateInstitution(c *gin.Context) {
	id := c.Param("id")

	var institution models.Institution
	if err := config.DB.Where("institution_id = ? AND delete_at IS NULL", id).First(&institution).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Institution not found"})
		return
	}

	accountType, _ := c.Get("accountType")
	accountID, _ := c.Get("accountID")
	if accountType != models.AccountTypeAdmin &&
		!(accountType == models.AccountTypeInstitution && accountID.(int) == institution.InstitutionID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
		return
	}

	type InstitutionUpdateRequest struct {
		InstitutionName string  `json:"institution_name" binding:"required"`
		InstitutionType string  `json:"institution_type" binding:"required,oneof=school madrasa orphanage other"`
		Phone           *string `json:"phone"`
		Address         *string `json:"address"`
		DivisionID      *int    `json:"division_id"`
		DistrictID      *int    `json:"district_id"`
		ThanaID         *int    `json:"thana_id"`
		UnionID         *int    `json:"union_id"`
	}
	var req InstitutionUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := validateInstitutionArea(c, req.DivisionID, req.DistrictID, req.ThanaID, req.UnionID); err != nil {
		return
	}

	now := time.Now()
	institution.InstitutionName = req.InstitutionName
	institution.InstitutionType = req.InstitutionType
	institution.Phone = req.Phone
	institution.Address = req.Address
	institution.DivisionID = req.DivisionID
	institution.DistrictID = req.DistrictID
	institution.ThanaID = req.ThanaID
	institution.UnionID = req.UnionID
	institution.UpdateAt = &now

	if err := config.DB.Save(&institution).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update institution"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": institution})
}

// ApproveInstitution flips the approval state (admin only) and notifies the
// institution.
func ApproveInstitution(c *gin.Context) {
	id := c.Param("id")

	type ApprovalRequest struct {
		Approve bool `json:"approve"`
	}
	var req ApprovalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var institution models.Institution
	if err := config.DB.Where("institution_id = ? AND delete_at IS NULL", id).First(&institution).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Institution not found"})
		return
	}

	status := models.InstitutionStatusApproved
	if !req.Approve {
		status = models.InstitutionStatusRejected
	}

	now := time.Now()
	if err := config.DB.Model(&institution).
		Updates(map[string]interface{}{"approval_status": status, "update_at": now}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update approval"})
		return
	}
	institution.ApprovalStatus = status

	services.NotifyInstitutionApproval(institution, req.Approve)

	c.JSON(http.StatusOK, gin.H{"success": true, "data": institution})
}

// DeleteInstitution soft deletes an institution (admin only).
func DeleteInstitution(c *gin.Context) {
	id := c.Param("id")

	var institution models.Institution
	if err := config.DB.Where("institution_id = ? AND delete_at IS NULL", id).First(&institution).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Institution not found"})
		return
	}

	now := time.Now()
	if err := config.DB.Model(&institution).
		Updates(map[string]interface{}{"delete_at": now, "update_at": now}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete institution"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Institution deleted"})
}

// validateInstitutionArea runs the cascade check and writes the error
// response itself; callers just return on non-nil.
func validateInstitutionArea(c *gin.Context, divisionID, districtID, thanaID, unionID *int) error {
	err := services.ValidateAreaChain(services.AreaSelection{
		DivisionID: divisionID,
		DistrictID: districtID,
		ThanaID:    thanaID,
		UnionID:    unionID,
	})
	if err == nil {
		return nil
	}
	if errors.Is(err, services.ErrAreaChainMismatch) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Selected area does not match its parent"})
	} else {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Selected area not found"})
	}
	return err
}
