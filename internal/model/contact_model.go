package model

type Contact struct {
	Id    int64  `gorm:"primaryKey;autoIncrement"`
	Phone string `gorm:"type:varchar(32);index;not null"`
}

func (Contact) TableName() string {
	return "contacts"
}

// UserContact is an entry of a user's address book. DisplayName is the name the
// owner gave the contact and may be missing.
type UserContact struct {
	Id          int64   `gorm:"primaryKey;autoIncrement"`
	UserId      int64   `gorm:"not null;index:idx_user_contact,unique"`
	ContactId   int64   `gorm:"not null;index:idx_user_contact,unique"`
	DisplayName *string `gorm:"type:varchar(255)"`
}

func (UserContact) TableName() string {
	return "user_contacts"
}
