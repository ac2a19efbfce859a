// Package usecases contains the user administration application services.
package usecases

import (
	"context"
	"fmt"

	"tavern/internal/domain/user"
)

// ListUsersUseCase pages through registered users for admin review
type ListUsersUseCase struct {
	userRepo user.Repository
}

func NewListUsersUseCase(userRepo user.Repository) *ListUsersUseCase {
	return &ListUsersUseCase{userRepo: userRepo}
}

func (uc *ListUsersUseCase) Execute(ctx context.Context, page, pageSize int) ([]*user.User, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	users, total, err := uc.userRepo.List(ctx, page, pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	return users, total, nil
}
