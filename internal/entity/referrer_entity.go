package entity

// Referrer is a contact of the caller who is also a platform user with referrals enabled.
type Referrer struct {
	UserId int64
	Name   *string
	Phone  string
}
