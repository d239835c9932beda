package models

import "time"

// Institution approval states. A freshly registered institution stays pending
// until an admin approves it; only approved institutions manage students.
const (
	InstitutionStatusPending  = "PENDING"
	InstitutionStatusApproved = "APPROVED"
	InstitutionStatusRejected = "REJECTED"
)

type Institution struct {
	InstitutionID   int        `gorm:"primaryKey;column:institution_id" json:"institution_id"`
	InstitutionName string     `gorm:"column:institution_name" json:"institution_name"`
	InstitutionType string     `gorm:"column:institution_type" json:"institution_type"` // school|madrasa|orphanage|other
	Email           string     `gorm:"column:email;unique" json:"email"`
	Phone           *string    `gorm:"column:phone" json:"phone,omitempty"`
	Password        string     `gorm:"column:password" json:"-"`
	Address         *string    `gorm:"column:address" json:"address,omitempty"`
	DivisionID      *int       `gorm:"column:division_id" json:"division_id,omitempty"`
	DistrictID      *int       `gorm:"column:district_id" json:"district_id,omitempty"`
	ThanaID         *int       `gorm:"column:thana_id" json:"thana_id,omitempty"`
	UnionID         *int       `gorm:"column:union_id" json:"union_id,omitempty"`
	ApprovalStatus  string     `gorm:"column:approval_status" json:"approval_status"`
	CreateAt        *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt        *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt        *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`

	// Relations
	Division *Division `gorm:"foreignKey:DivisionID" json:"division,omitempty"`
	District *District `gorm:"foreignKey:DistrictID" json:"district,omitempty"`
	Thana    *Thana    `gorm:"foreignKey:ThanaID" json:"thana,omitempty"`
	Union    *Union    `gorm:"foreignKey:UnionID" json:"union,omitempty"`
}

func (Institution) TableName() string {
	return "institutions"
}

func (i *Institution) IsApproved() bool {
	return i.ApprovalStatus == InstitutionStatusApproved
}
