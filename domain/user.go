package domain

import "time"

// Role defines the authorization level of a user account.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User represents a registered customer or administrator.
type User struct {
	ID            string     `bson:"_id,omitempty" json:"id"`
	Email         string     `bson:"email" json:"email"`
	PasswordHash  string     `bson:"password_hash" json:"-"`
	FirstName     string     `bson:"first_name,omitempty" json:"firstName,omitempty"`
	LastName      string     `bson:"last_name,omitempty" json:"lastName,omitempty"`
	Role          Role       `bson:"role" json:"role"`
	EmailVerified bool       `bson:"email_verified" json:"emailVerified"`
	CreatedAt     time.Time  `bson:"created_at" json:"createdAt"`
	UpdatedAt     time.Time  `bson:"updated_at" json:"updatedAt"`
	LastLoginAt   *time.Time `bson:"last_login_at,omitempty" json:"lastLoginAt,omitempty"`
}

// Principal is the immutable identity embedded in tokens and attached to
// authenticated requests.
type Principal struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Role   Role   `json:"role"`
}

// IsAdmin reports whether the principal carries the admin role.
func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// PrincipalOf derives the token identity from a user record.
func PrincipalOf(u *User) Principal {
	return Principal{UserID: u.ID, Email: u.Email, Role: u.Role}
}
