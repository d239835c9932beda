package models

import "time"

// Payment statuses.
const (
	PaymentStatusPending   = "PENDING"
	PaymentStatusCompleted = "COMPLETED"
	PaymentStatusFailed    = "FAILED"
)

// Payment covers an inclusive month range ("YYYY-MM" endpoints) of a
// sponsorship. Card details are accepted on the request but never stored.
type Payment struct {
	PaymentID     int        `gorm:"primaryKey;column:payment_id" json:"payment_id"`
	SponsorshipID int        `gorm:"column:sponsorship_id;index" json:"sponsorship_id"`
	ReferenceNo   string     `gorm:"column:reference_no;unique" json:"reference_no"`
	Amount        float64    `gorm:"column:amount" json:"amount"`
	StartMonth    string     `gorm:"column:start_month" json:"start_month"`
	EndMonth      string     `gorm:"column:end_month" json:"end_month"`
	PaymentMethod string     `gorm:"column:payment_method" json:"payment_method"`
	Status        string     `gorm:"column:status;index" json:"status"`
	PaidAt        *time.Time `gorm:"column:paid_at" json:"paid_at,omitempty"`
	CreateAt      *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt      *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt      *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`

	// Relations
	Sponsorship Sponsorship `gorm:"foreignKey:SponsorshipID" json:"sponsorship,omitempty"`
}

func (Payment) TableName() string {
	return "payments"
}
