package models

import "time"

// Sponsorship statuses. PENDING_PAYMENT means a sponsorship record exists but
// no payment has cleared yet; it blocks new attempts on the same student for
// the cooldown window, then becomes reusable again.
const (
	SponsorshipStatusPendingPayment = "PENDING_PAYMENT"
	SponsorshipStatusActive         = "ACTIVE"
	SponsorshipStatusCompleted      = "COMPLETED"
	SponsorshipStatusCancelled      = "CANCELLED"
	SponsorshipStatusPaused         = "PAUSED"
)

// Payment methods accepted at checkout.
const (
	PaymentMethodCard         = "CARD"
	PaymentMethodBankTransfer = "BANK_TRANSFER"
	PaymentMethodMobile       = "MOBILE_BANKING"
)

// Sponsorship ties a donor to a student over a month-granularity range.
// StartMonth/EndMonth are stored as "YYYY-MM".
type Sponsorship struct {
	SponsorshipID int        `gorm:"primaryKey;column:sponsorship_id" json:"sponsorship_id"`
	DonorID       int        `gorm:"column:donor_id;index" json:"donor_id"`
	StudentID     int        `gorm:"column:student_id;index" json:"student_id"`
	MonthlyAmount float64    `gorm:"column:monthly_amount" json:"monthly_amount"`
	StartMonth    string     `gorm:"column:start_month" json:"start_month"`
	EndMonth      string     `gorm:"column:end_month" json:"end_month"`
	PaymentMethod string     `gorm:"column:payment_method" json:"payment_method"`
	Status        string     `gorm:"column:status;index" json:"status"`
	PaidUpTo      *string    `gorm:"column:paid_up_to" json:"paid_up_to,omitempty"`
	CreateAt      *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt      *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt      *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`

	// Relations
	Donor   Donor   `gorm:"foreignKey:DonorID" json:"donor,omitempty"`
	Student Student `gorm:"foreignKey:StudentID" json:"student,omitempty"`
}

func (Sponsorship) TableName() string {
	return "sponsorships"
}

// IsBlocking reports whether this sponsorship should stop the donor from
// opening another one for the same student.
func (s *Sponsorship) IsBlocking() bool {
	return s.Status != SponsorshipStatusCancelled
}
