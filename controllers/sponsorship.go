package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"liftakids-api/config"
	"liftakids-api/models"
	"liftakids-api/services"

	"github.com/gin-gonic/gin"
)

// ===== SPONSORSHIP CONTROLLERS =====

type MonthYearRequest struct {
	Month int `json:"month" binding:"required,min=1,max=12"`
	Year  int `json:"year" binding:"required,min=2000"`
}

func (m MonthYearRequest) toMonthYear() services.MonthYear {
	return services.MonthYear{Month: m.Month, Year: m.Year}
}

type CreateSponsorshipRequest struct {
	StudentID     int              `json:"student_id" binding:"required"`
	MonthlyAmount float64          `json:"monthly_amount"`
	From          MonthYearRequest `json:"from" binding:"required"`
	To            MonthYearRequest `json:"to" binding:"required"`
	PaymentMethod string           `json:"payment_method" binding:"required,oneof=CARD BANK_TRANSFER MOBILE_BANKING"`
}

// CreateSponsorship opens a sponsorship for the authenticated donor. When the
// donor already holds a non-cancelled sponsorship for the student, the
// response is 409 carrying the existing identity so the caller can adopt it
// for the payment step instead of duplicating.
func CreateSponsorship(c *gin.Context) {
	var req CreateSponsorshipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	accountID, _ := c.Get("accountID")
	sponsorship, err := services.DefaultSponsorshipService().Create(services.CreateSponsorshipInput{
		DonorID:       accountID.(int),
		StudentID:     req.StudentID,
		MonthlyAmount: req.MonthlyAmount,
		From:          req.From.toMonthYear(),
		To:            req.To.toMonthYear(),
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		var duplicate *services.DuplicateSponsorshipError
		switch {
		case errors.As(err, &duplicate):
			c.JSON(http.StatusConflict, gin.H{
				"error":                   "Sponsorship already exists for this student",
				"existing_sponsorship_id": duplicate.Existing.SponsorshipID,
				"existing_sponsorship":    duplicate.Existing,
			})
		case errors.Is(err, services.ErrStudentNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Student not found"})
		case errors.Is(err, services.ErrEmptyRange):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Select at least one month"})
		case errors.Is(err, services.ErrInvalidMonthlyAmount):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Monthly amount must be greater than zero"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create sponsorship"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "data": sponsorship})
}

// GetSponsorships lists sponsorships filtered by donorId/studentId/status.
func GetSponsorships(c *gin.Context) {
	query := config.DB.Model(&models.Sponsorship{}).
		Preload("Donor").Preload("Student").
		Where("delete_at IS NULL")

	if donorID := c.Query("donorId"); donorID != "" {
		query = query.Where("donor_id = ?", donorID)
	}
	if studentID := c.Query("studentId"); studentID != "" {
		query = query.Where("student_id = ?", studentID)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	// Donors only see their own sponsorships.
	if accountType, _ := c.Get("accountType"); accountType == models.AccountTypeDonor {
		accountID, _ := c.Get("accountID")
		query = query.Where("donor_id = ?", accountID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch sponsorships"})
		return
	}

	var sponsorships []models.Sponsorship
	if err := query.Scopes(Paginate(c)).Order("sponsorship_id DESC").Find(&sponsorships).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch sponsorships"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "pagination": NewPaginatedResponse(c, sponsorships, total)})
}

// GetSponsorship returns one sponsorship.
func GetSponsorship(c *gin.Context) {
	id := c.Param("id")

	var sponsorship models.Sponsorship
	if err := config.DB.Preload("Donor").Preload("Student").Preload("Student.Institution").
		Where("sponsorship_id = ? AND delete_at IS NULL", id).
		First(&sponsorship).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Sponsorship not found"})
		return
	}

	if !canViewSponsorship(c, sponsorship) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": sponsorship})
}

// GetDonorSponsorships lists a donor's sponsorships.
func GetDonorSponsorships(c *gin.Context) {
	donorID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid donor id"})
		return
	}

	accountType, _ := c.Get("accountType")
	accountID, _ := c.Get("accountID")
	if accountType == models.AccountTypeDonor && accountID.(int) != donorID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
		return
	}

	var sponsorships []models.Sponsorship
	if err := config.DB.Preload("Student").Preload("Student.Institution").
		Where("donor_id = ? AND delete_at IS NULL", donorID).
		Order("sponsorship_id DESC").
		Find(&sponsorships).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch sponsorships"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": sponsorships, "count": len(sponsorships)})
}

// GetStudentSponsorships lists the sponsorships covering a student.
func GetStudentSponsorships(c *gin.Context) {
	studentID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid student id"})
		return
	}

	var sponsorships []models.Sponsorship
	if err := config.DB.Preload("Donor").
		Where("student_id = ? AND delete_at IS NULL", studentID).
		Order("sponsorship_id DESC").
		Find(&sponsorships).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch sponsorships"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": sponsorships, "count": len(sponsorships)})
}

func canViewSponsorship(c *gin.Context, sponsorship models.Sponsorship) bool {
	accountType, _ := c.Get("accountType")
	switch accountType {
	case models.AccountTypeAdmin:
		return true
	case models.AccountTypeDonor:
		accountID, _ := c.Get("accountID")
		return accountID.(int) == sponsorship.DonorID
	case models.AccountTypeInstitution:
		accountID, _ := c.Get("accountID")
		var student models.Student
		if err := config.DB.Select("institution_id").
			Where("student_id = ?", sponsorship.StudentID).First(&student).Error; err != nil {
			return false
		}
		return accountID.(int) == student.InstitutionID
	default:
		return false
	}
}
