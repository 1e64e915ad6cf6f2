package users

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// UserSchema represents the users table
type UserSchema struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	UUID      uuid.UUID  `bun:"uuid,pk,type:uuid" json:"uuid"`
	UserID    int64      `bun:"user_id,notnull,unique" json:"user_id"`
	Username  string     `bun:"username,notnull" json:"username"`
	Password  string     `bun:"password,notnull" json:"-"`
	CreatedAt time.Time  `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time  `bun:"updated_at,nullzero,notnull,default:current_timestamp" json:"updated_at"`
	DeletedAt *time.Time `bun:"deleted_at,soft_delete,nullzero" json:"deleted_at,omitempty"`
}

// SQLStore implements UserRepository on top of bun. It works with any
// dialect opened by the database package.
type SQLStore struct {
	db *bun.DB
}

// NewSQLStore creates a new user store instance
func NewSQLStore(db *bun.DB) *SQLStore {
	return &SQLStore{
		db: db,
	}
}

// SaveUser inserts the user or overwrites the row holding the same user_id,
// reviving it if it was soft deleted
func (s *SQLStore) SaveUser(ctx context.Context, user User) error {
	now := time.Now()
	schema := UserToUserSchema(user)
	schema.UUID = uuid.New()
	schema.CreatedAt = now
	schema.UpdatedAt = now

	_, err := s.db.NewInsert().
		Model(&schema).
		On("CONFLICT (user_id) DO UPDATE").
		Set("username = EXCLUDED.username").
		Set("password = EXCLUDED.password").
		Set("updated_at = EXCLUDED.updated_at").
		Set("deleted_at = NULL").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to save user %d: %w", user.ID, err)
	}

	return nil
}

// InsertUser inserts the user unless a row with the same user_id exists.
// Soft deleted rows count as existing, so they stay deleted.
func (s *SQLStore) InsertUser(ctx context.Context, user User) (bool, error) {
	now := time.Now()
	schema := UserToUserSchema(user)
	schema.UUID = uuid.New()
	schema.CreatedAt = now
	schema.UpdatedAt = now

	res, err := s.db.NewInsert().
		Model(&schema).
		On("CONFLICT (user_id) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to insert user %d: %w", user.ID, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}

	return affected > 0, nil
}

// ListUsers returns users that are not soft deleted, ordered by user_id
func (s *SQLStore) ListUsers(ctx context.Context) ([]User, error) {
	var schemas []UserSchema
	err := s.db.NewSelect().
		Model(&schemas).
		Order("user_id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	list := make([]User, 0, len(schemas))
	for _, schema := range schemas {
		list = append(list, UserSchemaToUser(schema))
	}
	return list, nil
}

// DeleteUser soft deletes the user and reports whether a live row was hit
func (s *SQLStore) DeleteUser(ctx context.Context, userID int64) (bool, error) {
	now := time.Now()
	res, err := s.db.NewUpdate().
		Model((*UserSchema)(nil)).
		Where("user_id = ?", userID).
		Where("deleted_at IS NULL").
		Set("deleted_at = ?", now).
		Set("updated_at = ?", now).
		Exec(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to delete user: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}

	return affected > 0, nil
}

// Helper conversion functions
func UserSchemaToUser(schema UserSchema) User {
	return NewUser(schema.UserID, schema.Username, schema.Password)
}

func UserToUserSchema(user User) UserSchema {
	return UserSchema{
		UserID:   user.ID,
		Username: user.Username,
		Password: user.Password,
	}
}
