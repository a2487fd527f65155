package services

// PasswordHasher abstracts password hashing so services stay testable
// without paying bcrypt cost in unit tests.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(hashedPassword, password string) error
}
