package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"liftakids-api/config"
	"liftakids-api/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SponsorCooldownDays throttles repeat sponsorship attempts on the same
// student while an earlier attempt is still awaiting payment.
const SponsorCooldownDays = 3

// Sponsor button states, from the donor's perspective.
const (
	SponsorStatusAvailable  = "available"
	SponsorStatusProcessing = "processing"
	SponsorStatusSponsored  = "sponsored"
)

var (
	ErrSponsorshipNotFound  = errors.New("sponsorship not found")
	ErrStudentNotFound      = errors.New("student not found")
	ErrNotSponsorshipOwner  = errors.New("sponsorship does not belong to this donor")
	ErrInvalidMonthlyAmount = errors.New("monthly amount must be greater than zero")
)

// DuplicateSponsorshipError rejects a create when the donor already holds a
// non-cancelled sponsorship for the student. It carries the existing identity
// so callers can adopt it instead of retrying.
type DuplicateSponsorshipError struct {
	Existing models.Sponsorship
}

func (e *DuplicateSponsorshipError) Error() string {
	return fmt.Sprintf("sponsorship already exists for this student (id %d)", e.Existing.SponsorshipID)
}

// SponsorButtonStatus drives the sponsor action in student listings.
type SponsorButtonStatus struct {
	Status        string `json:"status"`
	DaysLeft      int    `json:"days_left,omitempty"`
	SponsorshipID *int   `json:"sponsorship_id,omitempty"`
}

// ComputeSponsorButtonStatus derives the button state from the student flag
// and the donor's most recent blocking sponsorship. The cooldown is evaluated
// eagerly on every call; there is no timer behind it.
func ComputeSponsorButtonStatus(student models.Student, existing *models.Sponsorship, now time.Time) SponsorButtonStatus {
	if student.IsSponsored {
		status := SponsorButtonStatus{Status: SponsorStatusSponsored}
		if existing != nil {
			id := existing.SponsorshipID
			status.SponsorshipID = &id
		}
		return status
	}

	if existing != nil && existing.Status == models.SponsorshipStatusCompleted {
		id := existing.SponsorshipID
		return SponsorButtonStatus{Status: SponsorStatusSponsored, SponsorshipID: &id}
	}

	if existing != nil && existing.Status == models.SponsorshipStatusPendingPayment && existing.CreateAt != nil {
		elapsedDays := int(now.Sub(*existing.CreateAt).Hours() / 24)
		if elapsedDays < SponsorCooldownDays {
			id := existing.SponsorshipID
			return SponsorButtonStatus{
				Status:        SponsorStatusProcessing,
				DaysLeft:      SponsorCooldownDays - elapsedDays,
				SponsorshipID: &id,
			}
		}
	}

	return SponsorButtonStatus{Status: SponsorStatusAvailable}
}

type SponsorshipService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewSponsorshipService(db *gorm.DB) *SponsorshipService {
	return &SponsorshipService{db: db, now: time.Now}
}

// CreateSponsorshipInput is the resolved request for a new sponsorship.
type CreateSponsorshipInput struct {
	DonorID       int
	StudentID     int
	MonthlyAmount float64
	From          MonthYear
	To            MonthYear
	PaymentMethod string
}

// Create opens a sponsorship in PENDING_PAYMENT, or fails with
// *DuplicateSponsorshipError carrying the reusable identity when the donor
// already has a non-cancelled sponsorship for the student.
func (s *SponsorshipService) Create(input CreateSponsorshipInput) (*models.Sponsorship, error) {
	var student models.Student
	if err := s.db.Where("student_id = ? AND delete_at IS NULL", input.StudentID).First(&student).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		return nil, err
	}

	monthlyAmount := input.MonthlyAmount
	if monthlyAmount <= 0 {
		// Fall back to the student's requirement when the caller sends none.
		monthlyAmount = student.RequiredMonthlySupport
	}
	if monthlyAmount <= 0 {
		return nil, ErrInvalidMonthlyAmount
	}

	if _, err := s.validateRange(input.From, input.To); err != nil {
		return nil, err
	}

	if existing, err := s.FindBlocking(input.DonorID, input.StudentID); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, &DuplicateSponsorshipError{Existing: *existing}
	}

	now := s.now()
	sponsorship := models.Sponsorship{
		DonorID:       input.DonorID,
		StudentID:     input.StudentID,
		MonthlyAmount: monthlyAmount,
		StartMonth:    input.From.Key(),
		EndMonth:      input.To.Key(),
		PaymentMethod: input.PaymentMethod,
		Status:        models.SponsorshipStatusPendingPayment,
		CreateAt:      &now,
		UpdateAt:      &now,
	}
	if err := s.db.Create(&sponsorship).Error; err != nil {
		return nil, err
	}
	return &sponsorship, nil
}

// validateRange rejects malformed or inverted month ranges before any row is
// written.
func (s *SponsorshipService) validateRange(from, to MonthYear) ([]MonthYear, error) {
	months := MonthsInRange(from, to)
	if len(months) == 0 {
		return nil, ErrEmptyRange
	}
	return months, nil
}

// FindBlocking returns the donor's newest non-cancelled sponsorship for the
// student, or nil when there is none.
func (s *SponsorshipService) FindBlocking(donorID, studentID int) (*models.Sponsorship, error) {
	var existing []models.Sponsorship
	err := s.db.
		Where("donor_id = ? AND student_id = ? AND status <> ? AND delete_at IS NULL",
			donorID, studentID, models.SponsorshipStatusCancelled).
		Order("sponsorship_id DESC").
		Limit(1).
		Find(&existing).Error
	if err != nil {
		return nil, err
	}
	if len(existing) == 0 {
		return nil, nil
	}
	return &existing[0], nil
}

// PaymentHistory lists the completed payment intervals covering the student
// across all of the donor-independent sponsorship records.
func (s *SponsorshipService) PaymentHistory(studentID int) ([]PaymentInterval, error) {
	type row struct {
		StartMonth string
		EndMonth   string
	}
	var rows []row
	err := s.db.Model(&models.Payment{}).
		Select("payments.start_month, payments.end_month").
		Joins("JOIN sponsorships ON sponsorships.sponsorship_id = payments.sponsorship_id").
		Where("sponsorships.student_id = ? AND payments.status = ? AND payments.delete_at IS NULL",
			studentID, models.PaymentStatusCompleted).
		Order("payments.payment_id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	history := make([]PaymentInterval, 0, len(rows))
	for _, r := range rows {
		history = append(history, PaymentInterval{StartMonth: r.StartMonth, EndMonth: r.EndMonth})
	}
	return history, nil
}

// SubmitPaymentInput carries the checkout form. Card details are validated
// for shape upstream and are never written anywhere.
type SubmitPaymentInput struct {
	SponsorshipID int
	DonorID       int
	From          MonthYear
	To            MonthYear
	PaymentMethod string
}

// PaymentResult reports a successful checkout.
type PaymentResult struct {
	Payment      models.Payment     `json:"payment"`
	Sponsorship  models.Sponsorship `json:"sponsorship"`
	UnpaidMonths []string           `json:"covered_months"`
	TotalAmount  float64            `json:"total_amount"`
}

// SubmitPayment charges the unpaid months of the requested range. The range
// is re-reconciled against stored payment history here; client-side month
// math is a UX convenience, the service is the arbiter.
func (s *SponsorshipService) SubmitPayment(input SubmitPaymentInput) (*PaymentResult, error) {
	var sponsorship models.Sponsorship
	if err := s.db.Where("sponsorship_id = ? AND delete_at IS NULL", input.SponsorshipID).
		First(&sponsorship).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSponsorshipNotFound
		}
		return nil, err
	}
	if sponsorship.DonorID != input.DonorID {
		return nil, ErrNotSponsorshipOwner
	}

	history, err := s.PaymentHistory(sponsorship.StudentID)
	if err != nil {
		return nil, err
	}

	unpaid, err := ValidateChargeableRange(history, input.From, input.To)
	if err != nil {
		return nil, err
	}

	amount := ChargeAmount(len(unpaid), sponsorship.MonthlyAmount)
	now := s.now()
	method := input.PaymentMethod
	if method == "" {
		method = sponsorship.PaymentMethod
	}

	payment := models.Payment{
		SponsorshipID: sponsorship.SponsorshipID,
		ReferenceNo:   uuid.NewString(),
		Amount:        amount,
		StartMonth:    unpaid[0].Key(),
		EndMonth:      unpaid[len(unpaid)-1].Key(),
		PaymentMethod: method,
		Status:        models.PaymentStatusCompleted,
		PaidAt:        &now,
		CreateAt:      &now,
		UpdateAt:      &now,
	}
	if err := s.db.Create(&payment).Error; err != nil {
		return nil, err
	}

	if err := s.advanceAfterPayment(&sponsorship, payment, now); err != nil {
		return nil, err
	}

	covered := make([]string, 0, len(unpaid))
	for _, m := range unpaid {
		covered = append(covered, m.Key())
	}

	return &PaymentResult{
		Payment:      payment,
		Sponsorship:  sponsorship,
		UnpaidMonths: covered,
		TotalAmount:  amount,
	}, nil
}

// advanceAfterPayment moves the sponsorship and student forward: paid-up-to
// high-water mark, ACTIVE or COMPLETED status, and the sponsored flag once
// the agreed end month is covered.
func (s *SponsorshipService) advanceAfterPayment(sponsorship *models.Sponsorship, payment models.Payment, now time.Time) error {
	paidUpTo := payment.EndMonth
	if sponsorship.PaidUpTo != nil && *sponsorship.PaidUpTo > paidUpTo {
		paidUpTo = *sponsorship.PaidUpTo
	}

	status := models.SponsorshipStatusActive
	completed := paidUpTo >= sponsorship.EndMonth
	if completed {
		status = models.SponsorshipStatusCompleted
	}

	sponsorship.Status = status
	sponsorship.PaidUpTo = &paidUpTo
	sponsorship.UpdateAt = &now

	updates := map[string]interface{}{
		"status":     status,
		"paid_up_to": paidUpTo,
		"update_at":  now,
	}
	if err := s.db.Model(&models.Sponsorship{}).
		Where("sponsorship_id = ?", sponsorship.SponsorshipID).
		Updates(updates).Error; err != nil {
		return err
	}

	if completed {
		if err := s.db.Model(&models.Student{}).
			Where("student_id = ?", sponsorship.StudentID).
			Updates(map[string]interface{}{"is_sponsored": true, "update_at": now}).Error; err != nil {
			// The payment already went through; a stale flag is recomputed on
			// the next status query, so log and move on.
			log.Printf("failed to mark student %d sponsored: %v", sponsorship.StudentID, err)
		}
	}

	return nil
}

// StudentSponsorStatus computes the sponsor button state for one student as
// seen by one donor.
func (s *SponsorshipService) StudentSponsorStatus(donorID, studentID int) (*SponsorButtonStatus, error) {
	var student models.Student
	if err := s.db.Where("student_id = ? AND delete_at IS NULL", studentID).First(&student).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		return nil, err
	}

	existing, err := s.FindBlocking(donorID, studentID)
	if err != nil {
		return nil, err
	}

	status := ComputeSponsorButtonStatus(student, existing, s.now())
	return &status, nil
}

// ExpireStalePending cancels sponsorships stuck in PENDING_PAYMENT beyond the
// cooldown window. The button status never depends on this job; it only keeps
// abandoned records from blocking POSTs forever.
func (s *SponsorshipService) ExpireStalePending() (int64, error) {
	cutoff := s.now().AddDate(0, 0, -SponsorCooldownDays)
	result := s.db.Model(&models.Sponsorship{}).
		Where("status = ? AND create_at < ? AND delete_at IS NULL",
			models.SponsorshipStatusPendingPayment, cutoff).
		Updates(map[string]interface{}{
			"status":    models.SponsorshipStatusCancelled,
			"update_at": s.now(),
		})
	return result.RowsAffected, result.Error
}

// DefaultSponsorshipService builds a service on the global connection.
func DefaultSponsorshipService() *SponsorshipService {
	return NewSponsorshipService(config.DB)
}
