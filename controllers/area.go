package controllers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"liftakids-api/config"
	"liftakids-api/models"
	"liftakids-api/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ===== AREA HIERARCHY CONTROLLERS =====
//
// Children are served per parent so selectors can cascade lazily: divisions
// first, then districts of the chosen division, and so on down to unions.

type AreaRequest struct {
	Name   string  `json:"name" binding:"required"`
	BnName *string `json:"bn_name"`
}

// GetDivisions lists all divisions.
func GetDivisions(c *gin.Context) {
	divisions, err := services.GetDivisions(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch divisions"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": divisions})
}

// GetDistricts lists districts of a division.
func GetDistricts(c *gin.Context) {
	divisionID, err := strconv.Atoi(c.Query("division_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "division_id is required"})
		return
	}
	districts, err := services.GetDistricts(c.Request.Context(), divisionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch districts"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": districts})
}

// GetThanas lists thanas of a district.
func GetThanas(c *gin.Context) {
	districtID, err := strconv.Atoi(c.Query("district_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "district_id is required"})
		return
	}
	thanas, err := services.GetThanas(c.Request.Context(), districtID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch thanas"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": thanas})
}

// GetUnions lists unions of a thana.
func GetUnions(c *gin.Context) {
	thanaID, err := strconv.Atoi(c.Query("thana_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "thana_id is required"})
		return
	}
	unions, err := services.GetUnions(c.Request.Context(), thanaID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch unions"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": unions})
}

// CreateDivision adds a division (admin only).
func CreateDivision(c *gin.Context) {
	var req AreaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	now := time.Now()
	division := models.Division{Name: req.Name, BnName: req.BnName, CreateAt: &now, UpdateAt: &now}
	if err := config.DB.Create(&division).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create division"})
		return
	}

	services.InvalidateAreaCache(c.Request.Context(), "areas:divisions")
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": division})
}

// CreateDistrict adds a district under a division (admin only).
func CreateDistrict(c *gin.Context) {
	type DistrictRequest struct {
		AreaRequest
		DivisionID int `json:"division_id" binding:"required"`
	}
	var req DistrictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var division models.Division
	if err := config.DB.Where("division_id = ? AND delete_at IS NULL", req.DivisionID).First(&division).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Division not found"})
		return
	}

	now := time.Now()
	district := models.District{DivisionID: req.DivisionID, Name: req.Name, BnName: req.BnName, CreateAt: &now, UpdateAt: &now}
	if err := config.DB.Create(&district).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create district"})
		return
	}

	services.InvalidateAreaCache(c.Request.Context(), fmt.Sprintf("areas:districts:%d", req.DivisionID))
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": district})
}

// CreateThana adds a thana under a district (admin only).
func CreateThana(c *gin.Context) {
	type ThanaRequest struct {
		AreaRequest
		DistrictID int `json:"district_id" binding:"required"`
	}
	var req ThanaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var district models.District
	if err := config.DB.Where("district_id = ? AND delete_at IS NULL", req.DistrictID).First(&district).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "District not found"})
		return
	}

	now := time.Now()
	thana := models.Thana{DistrictID: req.DistrictID, Name: req.Name, BnName: req.BnName, CreateAt: &now, UpdateAt: &now}
	if err := config.DB.Create(&thana).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create thana"})
		return
	}

	services.InvalidateAreaCache(c.Request.Context(), fmt.Sprintf("areas:thanas:%d", req.DistrictID))
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": thana})
}

// CreateUnion adds a union under a thana (admin only).
func CreateUnion(c *gin.Context) {
	type UnionRequest struct {
		AreaRequest
		ThanaID int `json:"thana_id" binding:"required"`
	}
	var req UnionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var thana models.Thana
	if err := config.DB.Where("thana_id = ? AND delete_at IS NULL", req.ThanaID).First(&thana).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Thana not found"})
		return
	}

	now := time.Now()
	union := models.Union{ThanaID: req.ThanaID, Name: req.Name, BnName: req.BnName, CreateAt: &now, UpdateAt: &now}
	if err := config.DB.Create(&union).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create union"})
		return
	}

	services.InvalidateAreaCache(c.Request.Context(), fmt.Sprintf("areas:unions:%d", req.ThanaID))
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": union})
}

// DeleteDivision soft deletes a division and its descendants (admin only).
func DeleteDivision(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid division id"})
		return
	}

	var division models.Division
	if err := config.DB.Where("division_id = ? AND delete_at IS NULL", id).First(&division).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Division not found"})
		return
	}

	now := time.Now()
	err = config.DB.Transaction(func(tx *gorm.DB) error {
		var districtIDs []int
		if err := tx.Model(&models.District{}).Where("division_id = ?", id).Pluck("district_id", &districtIDs).Error; err != nil {
			return err
		}
		var thanaIDs []int
		if len(districtIDs) > 0 {
			if err := tx.Model(&models.Thana{}).Where("district_id IN ?", districtIDs).Pluck("thana_id", &thanaIDs).Error; err != nil {
				return err
			}
		}
		if len(thanaIDs) > 0 {
			if err := tx.Model(&models.Union{}).Where("thana_id IN ?", thanaIDs).Update("delete_at", now).Error; err != nil {
				return err
			}
			if err := tx.Model(&models.Thana{}).Where("thana_id IN ?", thanaIDs).Update("delete_at", now).Error; err != nil {
				return err
			}
		}
		if len(districtIDs) > 0 {
			if err := tx.Model(&models.District{}).Where("district_id IN ?", districtIDs).Update("delete_at", now).Error; err != nil {
				return err
			}
		}
		return tx.Model(&models.Division{}).Where("division_id = ?", id).Update("delete_at", now).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete division"})
		return
	}

	services.InvalidateAreaCache(c.Request.Context(), "areas:divisions", fmt.Sprintf("areas:districts:%d", id))
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Division deleted"})
}
