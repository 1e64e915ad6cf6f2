package users

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type seedFile struct {
	Users []User `yaml:"users"`
}

// LoadSeedFile reads a YAML file with a top level "users" list
func LoadSeedFile(filename string) ([]User, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}

	var seed seedFile
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}

	for i, u := range seed.Users {
		if u.Username == "" || u.Password == "" {
			return nil, fmt.Errorf("seed user at position %d (id %d) needs a username and a password", i, u.ID)
		}
	}

	if seed.Users == nil {
		return []User{}, nil
	}
	return seed.Users, nil
}

// Seed inserts every seed user the repository does not already know.
// Existing records, including deleted ones, are left untouched so that
// changes made after the first seeding survive. It returns how many users
// were inserted.
func Seed(ctx context.Context, repo UserRepository, seed []User) (int, error) {
	inserted := 0
	for _, u := range seed {
		ok, err := repo.InsertUser(ctx, u)
		if err != nil {
			return inserted, fmt.Errorf("failed to seed user %d: %w", u.ID, err)
		}
		if ok {
			inserted++
		}
	}
	return inserted, nil
}
