package auth

import (
	"context"

	"gorm.io/gorm"

	"museumguide/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	// DB exposes the handle so registration can create the museum and its
	// admin atomically.
	DB() *gorm.DB
}
