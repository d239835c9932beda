package controllers

import (
	"net/http"

	"liftakids-api/config"
	"liftakids-api/models"

	"github.com/gin-gonic/gin"
)

// ===== DASHBOARD CONTROLLERS =====

// GetDashboardStats summarizes the system for the admin dashboard.
func GetDashboardStats(c *gin.Context) {
	var (
		totalStudents       int64
		sponsoredStudents   int64
		totalDonors         int64
		totalInstitutions   int64
		pendingInstitutions int64
		activeSponsorships  int64
		totalCollected      float64
	)

	if err := config.DB.Model(&models.Student{}).Where("delete_at IS NULL").Count(&totalStudents).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch dashboard stats"})
		return
	}
	config.DB.Model(&models.Student{}).Where("delete_at IS NULL AND is_sponsored = ?", true).Count(&sponsoredStudents)
	config.DB.Model(&models.Donor{}).Where("delete_at IS NULL").Count(&totalDonors)
	config.DB.Model(&models.Institution{}).Where("delete_at IS NULL").Count(&totalInstitutions)
	config.DB.Model(&models.Institution{}).
		Where("delete_at IS NULL AND approval_status = ?", models.InstitutionStatusPending).
		Count(&pendingInstitutions)
	config.DB.Model(&models.Sponsorship{}).
		Where("delete_at IS NULL AND status IN ?", []string{
			models.SponsorshipStatusActive, models.SponsorshipStatusCompleted,
		}).
		Count(&activeSponsorships)

	row := config.DB.Model(&models.Payment{}).
		Where("delete_at IS NULL AND status = ?", models.PaymentStatusCompleted).
		Select("COALESCE(SUM(amount), 0)").
		Row()
	if err := row.Scan(&totalCollected); err != nil {
		totalCollected = 0
	}

	var recentPayments []models.Payment
	config.DB.Preload("Sponsorship").Preload("Sponsorship.Student").Preload("Sponsorship.Donor").
		Where("delete_at IS NULL AND status = ?", models.PaymentStatusCompleted).
		Order("payment_id DESC").
		Limit(10).
		Find(&recentPayments)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"total_students":       totalStudents,
			"sponsored_students":   sponsoredStudents,
			"total_donors":         totalDonors,
			"total_institutions":   totalInstitutions,
			"pending_institutions": pendingInstitutions,
			"active_sponsorships":  activeSponsorships,
			"total_collected":      totalCollected,
			"recent_payments":      recentPayments,
		},
	})
}
