package users

// User is a directory entry. It is handled by value; two users with the same
// fields are interchangeable.
type User struct {
	ID       int64  `json:"id" yaml:"id"`
	Username string `json:"username" yaml:"username"`
	Password string `json:"-" yaml:"password"`
}

// NewUser builds a User value
func NewUser(id int64, username, password string) User {
	return User{
		ID:       id,
		Username: username,
		Password: password,
	}
}
