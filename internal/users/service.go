package users

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

var _ UserDirectory = (*Directory)(nil)

// Directory holds known users in insertion order and answers lookups and
// logins against them. It is not safe for concurrent use.
type Directory struct {
	store  UserStore
	logger *zap.Logger
	users  []User
}

// NewDirectory creates an empty directory that delegates removals to store
func NewDirectory(store UserStore, logger *zap.Logger) *Directory {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Directory{
		store:  store,
		logger: logger,
		users:  make([]User, 0),
	}
}

// Add appends users, keeping their order. Duplicate IDs are accepted.
func (d *Directory) Add(users ...User) {
	d.users = append(d.users, users...)
	d.logger.Debug("Users added to directory",
		zap.Int("added", len(users)),
		zap.Int("total", len(d.users)))
}

// GetAll returns a copy of the held users in insertion order
func (d *Directory) GetAll() []User {
	all := make([]User, len(d.users))
	copy(all, d.users)
	return all
}

// GetAllConvertedByID indexes the held users by ID. When IDs repeat the
// later entry wins.
func (d *Directory) GetAllConvertedByID() map[int64]User {
	byID := make(map[int64]User, len(d.users))
	for _, u := range d.users {
		byID[u.ID] = u
	}
	return byID
}

// Delete forwards the removal to the store and returns its answer. An
// acknowledged deletion also drops every entry with that ID from the directory.
func (d *Directory) Delete(ctx context.Context, userID int64) (bool, error) {
	deleted, err := d.store.DeleteUser(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("failed to delete user %d: %w", userID, err)
	}

	if deleted {
		removed := d.remove(userID)
		d.logger.Info("User deleted",
			zap.Int64("user_id", userID),
			zap.Int("removed_entries", removed))
	} else {
		d.logger.Info("Store did not delete user", zap.Int64("user_id", userID))
	}

	return deleted, nil
}

// Login returns the first user whose username and password both match
// exactly. The boolean is false when nobody matches.
func (d *Directory) Login(username, password string) (User, bool, error) {
	if username == "" || password == "" {
		return User{}, false, NewInvalidArgumentError(msgMissingCredentials)
	}

	for _, u := range d.users {
		if u.Username == username && u.Password == password {
			d.logger.Debug("Login matched", zap.Int64("user_id", u.ID))
			return u, true, nil
		}
	}

	d.logger.Debug("Login did not match any user", zap.String("username", username))
	return User{}, false, nil
}

func (d *Directory) remove(userID int64) int {
	kept := d.users[:0]
	for _, u := range d.users {
		if u.ID != userID {
			kept = append(kept, u)
		}
	}
	removed := len(d.users) - len(kept)
	d.users = kept
	return removed
}
