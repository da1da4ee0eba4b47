package entity

import "time"

type User struct {
	Id        int64
	Phone     string
	Fname     *string
	Lname     *string
	Refer     bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// FullName joins the first and last name, skipping missing parts.
func (u *User) FullName() string {
	name := ""
	if u.Fname != nil {
		name = *u.Fname
	}
	if u.Lname != nil && *u.Lname != "" {
		if name != "" {
			name += " "
		}
		name += *u.Lname
	}
	return name
}
