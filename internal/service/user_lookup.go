package service

import (
	"context"
	"errors"
	"fmt"

	"ai-contact-search-be/internal/entity"
	"ai-contact-search-be/internal/repository/specification"
)

var ErrUserNotFound = errors.New("user not found")

type UserFinder interface {
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error)
}

func ensureUser(ctx context.Context, users UserFinder, userId int64) error {
	user, err := users.FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return fmt.Errorf("failed to load user %d: %w", userId, err)
	}
	if user == nil {
		return ErrUserNotFound
	}
	return nil
}
