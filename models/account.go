package models

import "time"

// Account types carried in JWT claims. Admins, donors and institutions each
// keep their own table and log in through the same endpoint.
const (
	AccountTypeAdmin       = "admin"
	AccountTypeDonor       = "donor"
	AccountTypeInstitution = "institution"
)

type Admin struct {
	AdminID   int        `gorm:"primaryKey;column:admin_id" json:"admin_id"`
	AdminName string     `gorm:"column:admin_name" json:"admin_name"`
	Email     string     `gorm:"column:email;unique" json:"email"`
	Phone     *string    `gorm:"column:phone" json:"phone,omitempty"`
	Password  string     `gorm:"column:password" json:"-"`
	IsSuper   bool       `gorm:"column:is_super" json:"is_super"`
	CreateAt  *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt  *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt  *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`
}

type Donor struct {
	DonorID   int        `gorm:"primaryKey;column:donor_id" json:"donor_id"`
	DonorName string     `gorm:"column:donor_name" json:"donor_name"`
	Email     string     `gorm:"column:email;unique" json:"email"`
	Phone     *string    `gorm:"column:phone" json:"phone,omitempty"`
	Password  string     `gorm:"column:password" json:"-"`
	CreateAt  *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt  *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt  *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`
}

// TableName overrides
func (Admin) TableName() string {
	return "admins"
}

func (Donor) TableName() string {
	return "donors"
}
