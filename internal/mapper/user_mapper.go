package mapper

import (
	"ai-contact-search-be/internal/entity"
	"ai-contact-search-be/internal/model"
)

type UserMapper struct{}

func NewUserMapper() *UserMapper {
	return &UserMapper{}
}

func (m *UserMapper) ToEntity(u *model.User) *entity.User {
	if u == nil {
		return nil
	}
	return &entity.User{
		Id:        u.Id,
		Phone:     u.Phone,
		Fname:     u.Fname,
		Lname:     u.Lname,
		Refer:     u.Refer == model.ReferEnabled,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
