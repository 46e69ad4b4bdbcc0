package auth

import (
	"context"
	"errors"
	"time"
)

var (
	ErrEmailExists        = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type User struct {
	ID        string
	Email     string
	FullName  string
	Phone     string
	Hash      []byte
	IsAdmin   bool
	CreatedAt time.Time
}

// Role is what ends up in the JWT role claim.
func (u User) Role() string {
	if u.IsAdmin {
		return "admin"
	}
	return "user"
}

type NewUser struct {
	ID       string
	Email    string
	Password string
	FullName string
	Phone    string
}

type UserStore interface {
	Create(ctx context.Context, nu NewUser) error
	Verify(ctx context.Context, email, password string) (User, error)
	Ping(ctx context.Context) error
}
