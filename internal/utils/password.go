package utils

import (
	"strings"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

// MinPasswordStrength is the lowest PasswordStrength score accepted at registration.
const MinPasswordStrength = 3

// HashPassword hashes a plaintext password using bcrypt.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(hash), err
}

// CheckPasswordHash compares a plaintext password with a bcrypt hash.
func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// PasswordStrength scores a password from 0 to 4. Passwords shorter than 8 characters
// score 0; otherwise one point each for length of 12 or more, mixed case, digits and
// symbols, capped at 4.
func PasswordStrength(password string) int {
	if len([]rune(password)) < 8 {
		return 0
	}
	var lower, upper, digit, symbol bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			symbol = true
		}
	}
	score := 0
	if len([]rune(password)) >= 12 {
		score++
	}
	if lower && upper {
		score++
	}
	if digit {
		score++
	}
	if symbol {
		score++
	}
	if score > 0 && strings.EqualFold(password, strings.Repeat(password[:1], len(password))) {
		score = 1
	}
	return score
}
