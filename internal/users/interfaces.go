package users

import (
	"context"
)

//go:generate mockgen -destination=mock/mock.go -package=mock_users github.com/userdir/userdir/internal/users UserStore,UserRepository

// UserStore is the persistence collaborator the directory delegates removal to.
// DeleteUser reports true when the store acknowledged the deletion.
type UserStore interface {
	DeleteUser(ctx context.Context, userID int64) (bool, error)
}

// UserRepository is a UserStore that also holds full user records
type UserRepository interface {
	UserStore
	SaveUser(ctx context.Context, user User) error
	// InsertUser stores user only when no record with its ID exists, deleted
	// records included. It reports whether the user was stored.
	InsertUser(ctx context.Context, user User) (bool, error)
	ListUsers(ctx context.Context) ([]User, error)
}

// UserDirectory defines the operations of the in-memory user directory
type UserDirectory interface {
	Add(users ...User)
	GetAll() []User
	GetAllConvertedByID() map[int64]User
	Delete(ctx context.Context, userID int64) (bool, error)
	Login(username, password string) (User, bool, error)
}
