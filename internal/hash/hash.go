package hash

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ErrPasswordTooLong is returned for passwords bcrypt would silently truncate.
var ErrPasswordTooLong = errors.New("password longer than 72 bytes")

const maxPasswordBytes = 72

// Cost is the bcrypt work factor used by HashPassword.
var Cost = bcrypt.DefaultCost

func HashPassword(password string) (string, error) {
	if len(password) > maxPasswordBytes {
		return "", ErrPasswordTooLong
	}

	pwHash, err := bcrypt.GenerateFromPassword([]byte(password), Cost)
	if err != nil {
		return "", fmt.Errorf("bcrypt: %w", err)
	}
	return string(pwHash), nil
}

func CheckPassword(pwHash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(pwHash), []byte(password)) == nil
}
