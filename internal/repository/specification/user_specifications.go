package specification

import "gorm.io/gorm"

type ByPhone struct {
	Phone string
}

func (s ByPhone) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("phone = ?", s.Phone)
}
