package domain

//go:generate mockgen -destination=../../mocks/mock_user_repository.go -package=mocks github.com/void-adarsh/Notes-App/internal/auth/domain UserRepository

import "context"

// UserRepository is the credential store. Lookups return (nil, nil) when
// no user matches.
type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	Create(ctx context.Context, user *User) error
}
