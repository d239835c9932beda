package models

import "time"

// Area hierarchy is a strict 4-level tree:
// Division -> District -> Thana -> Union.
// Children are fetched per parent, so each level keeps its parent key indexed.

type Division struct {
	DivisionID int        `gorm:"primaryKey;column:division_id" json:"division_id"`
	Name       string     `gorm:"column:name" json:"name"`
	BnName     *string    `gorm:"column:bn_name" json:"bn_name,omitempty"`
	CreateAt   *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt   *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt   *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`
}

type District struct {
	DistrictID int        `gorm:"primaryKey;column:district_id" json:"district_id"`
	DivisionID int        `gorm:"column:division_id;index" json:"division_id"`
	Name       string     `gorm:"column:name" json:"name"`
	BnName     *string    `gorm:"column:bn_name" json:"bn_name,omitempty"`
	CreateAt   *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt   *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt   *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`

	// Relations
	Division Division `gorm:"foreignKey:DivisionID" json:"division,omitempty"`
}

type Thana struct {
	ThanaID    int        `gorm:"primaryKey;column:thana_id" json:"thana_id"`
	DistrictID int        `gorm:"column:district_id;index" json:"district_id"`
	Name       string     `gorm:"column:name" json:"name"`
	BnName     *string    `gorm:"column:bn_name" json:"bn_name,omitempty"`
	CreateAt   *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt   *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt   *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`

	// Relations
	District District `gorm:"foreignKey:DistrictID" json:"district,omitempty"`
}

type Union struct {
	UnionID  int        `gorm:"primaryKey;column:union_id" json:"union_id"`
	ThanaID  int        `gorm:"column:thana_id;index" json:"thana_id"`
	Name     string     `gorm:"column:name" json:"name"`
	BnName   *string    `gorm:"column:bn_name" json:"bn_name,omitempty"`
	CreateAt *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`

	// Relations
	Thana Thana `gorm:"foreignKey:ThanaID" json:"thana,omitempty"`
}

// TableName overrides
func (Division) TableName() string {
	return "divisions"
}

func (District) TableName() string {
	return "districts"
}

func (Thana) TableName() string {
	return "thanas"
}

func (Union) TableName() string {
	return "unions"
}
