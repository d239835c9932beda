package models

import "time"

// Financial ranks order students by urgency of support.
const (
	FinancialRankPoor   = "POOR"
	FinancialRankOrphan = "ORPHAN"
	FinancialRankUrgent = "URGENT"
)

type Student struct {
	StudentID              int        `gorm:"primaryKey;column:student_id" json:"student_id"`
	StudentName            string     `gorm:"column:student_name" json:"student_name"`
	GuardianName           *string    `gorm:"column:guardian_name" json:"guardian_name,omitempty"`
	Contact                *string    `gorm:"column:contact" json:"contact,omitempty"`
	Address                *string    `gorm:"column:address" json:"address,omitempty"`
	DateOfBirth            *time.Time `gorm:"column:date_of_birth" json:"date_of_birth,omitempty"`
	Gender                 string     `gorm:"column:gender" json:"gender"`
	FinancialRank          string     `gorm:"column:financial_rank" json:"financial_rank"`
	RequiredMonthlySupport float64    `gorm:"column:required_monthly_support" json:"required_monthly_support"`
	IsSponsored            bool       `gorm:"column:is_sponsored" json:"is_sponsored"`
	PhotoPath              *string    `gorm:"column:photo_path" json:"photo_path,omitempty"`
	Bio                    *string    `gorm:"column:bio" json:"bio,omitempty"`
	InstitutionID          int        `gorm:"column:institution_id;index" json:"institution_id"`
	CreateAt               *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt               *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt               *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`

	// Relations
	Institution Institution `gorm:"foreignKey:InstitutionID" json:"institution,omitempty"`
}

func (Student) TableName() string {
	return "students"
}
