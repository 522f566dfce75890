package user

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/amirasaad/amanah/pkg/domain"
	"golang.org/x/crypto/bcrypt"
)

const (
	MinPasswordLength = 6
	// dummyHash is compared against when the user does not exist so a failed
	// lookup costs as much as a wrong password.
	dummyHash = "$2a$10$7zFqzDbD3RrlkMTczbXG9OWZ0FLOXjIxXzSZ.QZxkVXjXcx7QZQiC"
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_.-]{3,50}$`)

// NormalizeUsername trims and lower-cases a username and checks its shape.
func NormalizeUsername(username string) (string, error) {
	u := strings.ToLower(strings.TrimSpace(username))
	if !usernamePattern.MatchString(u) {
		return "", fmt.Errorf("%w: username must be 3-50 letters, digits, '.', '_' or '-'", domain.ErrInvalidInput)
	}
	return u, nil
}

// HashPassword hashes a plain password with bcrypt.
func HashPassword(password string) (string, error) {
	if len(password) < MinPasswordLength {
		return "", fmt.Errorf("%w: password must be at least %d characters", domain.ErrInvalidInput, MinPasswordLength)
	}
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(b), err
}

// CheckPasswordHash compares a plain password with a bcrypt hash. An empty
// hash is checked against a dummy value so timing does not leak existence.
func CheckPasswordHash(password, hash string) bool {
	if hash == "" {
		_ = bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(password))
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
