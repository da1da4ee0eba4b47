package model

import "time"

// ReferEnabled is the value stored in users.refer for accounts that opted into referrals.
const ReferEnabled = "true"

type User struct {
	Id        int64     `gorm:"primaryKey;autoIncrement"`
	Phone     string    `gorm:"type:varchar(32);uniqueIndex;not null"`
	Fname     *string   `gorm:"type:varchar(255)"`
	Lname     *string   `gorm:"type:varchar(255)"`
	Refer     string    `gorm:"type:varchar(8);not null;default:'false'"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (User) TableName() string {
	return "users"
}
