package auth

// PasswordStrength describes the result of scoring a candidate password.
type PasswordStrength string

const (
	PasswordWeak   PasswordStrength = "weak"
	PasswordMedium PasswordStrength = "medium"
	PasswordStrong PasswordStrength = "strong"
)

// CheckPasswordStrength scores a password by length and character-class
// variety: lowercase, uppercase, digits, and everything else each count once.
func CheckPasswordStrength(password string) PasswordStrength {
	if len(password) < 8 {
		return PasswordWeak
	}

	var lower, upper, digit, other bool
	for _, r := range password {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		default:
			other = true
		}
	}

	score := 0
	for _, ok := range []bool{lower, upper, digit, other} {
		if ok {
			score++
		}
	}

	switch {
	case score <= 2:
		return PasswordWeak
	case score == 3:
		return PasswordMedium
	default:
		return PasswordStrong
	}
}
