package user

import (
	"context"

	"github.com/antonminaichev/flower-shop/internal/types/user"
)

type UserRepository interface {
	Create(ctx context.Context, u *user.User) error
	FindByLogin(ctx context.Context, login string) (*user.User, error)
	FindByID(ctx context.Context, id int64) (*user.User, error)
	UpdateProfile(ctx context.Context, u *user.User) error
}
