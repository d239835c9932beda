package controllers

import (
	"errors"
	"net/http"
	"regexp"
	"sort"
	"strconv"

	"liftakids-api/config"
	"liftakids-api/models"
	"liftakids-api/services"

	"github.com/gin-gonic/gin"
)

// ===== PAYMENT CONTROLLERS =====

var cardNumberPattern = regexp.MustCompile(`^[0-9]{13,19}$`)

// CardDetails is checked for shape and then discarded; nothing here is ever
// persisted or forwarded.
type CardDetails struct {
	CardNumber  string `json:"card_number" binding:"required"`
	CardHolder  string `json:"card_holder" binding:"required"`
	ExpiryMonth int    `json:"expiry_month" binding:"required,min=1,max=12"`
	ExpiryYear  int    `json:"expiry_year" binding:"required,min=2024"`
	CVV         string `json:"cvv" binding:"required,len=3"`
}

type SubmitPaymentRequest struct {
	From          MonthYearRequest `json:"from" binding:"required"`
	To            MonthYearRequest `json:"to" binding:"required"`
	PaymentMethod string           `json:"payment_method" binding:"omitempty,oneof=CARD BANK_TRANSFER MOBILE_BANKING"`
	Card          *CardDetails     `json:"card"`
}

// SubmitPayment charges the unpaid months of the requested range against a
// sponsorship. The covered range and amount are recomputed server-side from
// stored payment history; the client's own month math is advisory only.
func SubmitPayment(c *gin.Context) {
	sponsorshipID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid sponsorship id"})
		return
	}

	var req SubmitPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.PaymentMethod == models.PaymentMethodCard || (req.PaymentMethod == "" && req.Card != nil) {
		if req.Card == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Card details are required for card payments"})
			return
		}
		if !cardNumberPattern.MatchString(req.Card.CardNumber) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Card number is invalid"})
			return
		}
	}

	accountID, _ := c.Get("accountID")
	result, err := services.DefaultSponsorshipService().SubmitPayment(services.SubmitPaymentInput{
		SponsorshipID: sponsorshipID,
		DonorID:       accountID.(int),
		From:          req.From.toMonthYear(),
		To:            req.To.toMonthYear(),
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrSponsorshipNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Sponsorship not found"})
		case errors.Is(err, services.ErrNotSponsorshipOwner):
			c.JSON(http.StatusForbidden, gin.H{"error": "Sponsorship does not belong to this donor"})
		case errors.Is(err, services.ErrEmptyRange):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Select at least one month"})
		case errors.Is(err, services.ErrRangeAlreadyPaid):
			c.JSON(http.StatusBadRequest, gin.H{"error": "All months in the selected range are already paid"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit payment"})
		}
		return
	}

	// Receipt + notification are best-effort; the payment is already booked.
	var donor models.Donor
	var student models.Student
	if err := config.DB.Where("donor_id = ?", result.Sponsorship.DonorID).First(&donor).Error; err == nil {
		if err := config.DB.Where("student_id = ?", result.Sponsorship.StudentID).First(&student).Error; err == nil {
			services.NotifyPaymentSuccess(donor, student, result)
		}
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "data": result})
}

// GetSponsorshipPayments lists the payments of one sponsorship, oldest first.
func GetSponsorshipPayments(c *gin.Context) {
	sponsorshipID := c.Param("id")

	var sponsorship models.Sponsorship
	if err := config.DB.Where("sponsorship_id = ? AND delete_at IS NULL", sponsorshipID).
		First(&sponsorship).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Sponsorship not found"})
		return
	}

	if !canViewSponsorship(c, sponsorship) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
		return
	}

	var payments []models.Payment
	if err := config.DB.Where("sponsorship_id = ? AND delete_at IS NULL", sponsorshipID).
		Order("payment_id ASC").
		Find(&payments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch payments"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": payments, "count": len(payments)})
}

// GetStudentPaidMonths exposes the reconciled paid-month set for a student so
// pickers can disable covered months up front.
func GetStudentPaidMonths(c *gin.Context) {
	studentID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid student id"})
		return
	}

	history, err := services.DefaultSponsorshipService().PaymentHistory(studentID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch payment history"})
		return
	}

	paid := services.PaidMonthSet(history)
	months := make([]string, 0, len(paid))
	for key := range paid {
		months = append(months, key)
	}
	sort.Strings(months)

	c.JSON(http.StatusOK, gin.H{"success": true, "data": months, "count": len(months)})
}
