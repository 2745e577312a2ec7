package validator

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// PasswordTest is one character-class check of a password.
type PasswordTest func(string) bool

// DefaultPasswordTests checks for upper-case letters, lower-case letters,
// digits and characters outside ASCII letters and digits.
var DefaultPasswordTests = []PasswordTest{
	func(v string) bool { return strings.ToLower(v) != v },
	func(v string) bool { return strings.ToUpper(v) != v },
	func(v string) bool { return strings.ContainsAny(v, "0123456789") },
	func(v string) bool {
		return strings.ContainsFunc(v, func(r rune) bool {
			return !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9')
		})
	},
}

type PasswordStrengthConfig struct {
	MinLength int
	Tests     []PasswordTest
	// Threshold is the number of Tests that must pass.
	Threshold int
}

// DefaultPasswordStrength requires 8 characters and three of the four
// DefaultPasswordTests.
func DefaultPasswordStrength() PasswordStrengthConfig {
	return PasswordStrengthConfig{
		MinLength: 8,
		Tests:     DefaultPasswordTests,
		Threshold: 3,
	}
}

// PasswordMinLength fails for passwords shorter than min characters.
func PasswordMinLength(field, value string, min int) Rule {
	return Rule{
		Check: func() bool {
			return utf8.RuneCountInString(value) >= min
		},
		Error: ValidationError{
			Field:          field,
			Message:        fmt.Sprintf("The entered password is to short - it requires at least %d characters.", min),
			TranslationKey: "server.bones.passwordBone.tooShortMessage",
			TranslationValues: map[string]any{
				"length": min,
			},
		},
	}
}

// PasswordStrength fails unless at least config.Threshold tests pass.
func PasswordStrength(field, value string, config PasswordStrengthConfig) Rule {
	return Rule{
		Check: func() bool {
			passed := 0
			for _, test := range config.Tests {
				if test(value) {
					passed++
				}
			}
			return passed >= config.Threshold
		},
		Error: ValidationError{
			Field:          field,
			Message:        "The entered password is too weak.",
			TranslationKey: "server.bones.passwordBone.tooWeakMessage",
		},
	}
}

// StrongPassword combines PasswordMinLength and PasswordStrength.
func StrongPassword(field, value string, config PasswordStrengthConfig) []Rule {
	return []Rule{
		PasswordMinLength(field, value, config.MinLength),
		PasswordStrength(field, value, config),
	}
}
