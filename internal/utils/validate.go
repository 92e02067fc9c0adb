package utils

import (
	"fmt"
	"unicode"
)

// ValidateCedula checks an Ecuadorian national identifier: 10 digits, a
// province prefix between 01 and 24, and a valid mod-10 check digit.
func ValidateCedula(cedula string) error {
	if len(cedula) != 10 {
		return fmt.Errorf("cedula must have 10 digits, got %d", len(cedula))
	}
	digits := make([]int, 10)
	for i, r := range cedula {
		if r < '0' || r > '9' {
			return fmt.Errorf("cedula must contain only digits")
		}
		digits[i] = int(r - '0')
	}

	province := digits[0]*10 + digits[1]
	if province < 1 || province > 24 {
		return fmt.Errorf("invalid province code: %02d", province)
	}
	if digits[2] > 5 {
		return fmt.Errorf("invalid third digit: %d", digits[2])
	}

	// Mod-10 check: odd positions doubled, digits above 9 reduced by 9.
	sum := 0
	for i := 0; i < 9; i++ {
		d := digits[i]
		if i%2 == 0 {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
	}
	check := (10 - sum%10) % 10
	if check != digits[9] {
		return fmt.Errorf("invalid check digit: want %d, got %d", check, digits[9])
	}
	return nil
}

// ValidatePassword enforces the password policy: at least 8 characters with
// at least one letter and one digit.
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}
	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		return fmt.Errorf("password must contain at least one letter and one digit")
	}
	return nil
}
