package cardnum

import (
	"crypto/rand"
	"fmt"
	"strings"
)

// Length is the fixed number of digits in a card number.
const Length = 15

// Generate returns a uniformly random card number of Length digits.
func Generate() (string, error) {
	digits, err := randomDigits(Length)
	if err != nil {
		return "", fmt.Errorf("rand: %w", err)
	}
	return digits, nil
}

// GenerateUnique generates card numbers until the exists callback reports the
// candidate as unused. The callback is expected to be backed by the card
// store; collisions are vanishingly rare for small stores, so a handful of
// retries is plenty.
func GenerateUnique(maxRetries int, exists func(string) (bool, error)) (string, error) {
	if maxRetries <= 0 {
		maxRetries = 5
	}
	for i := 0; i <= maxRetries; i++ {
		number, err := Generate()
		if err != nil {
			return "", err
		}
		if exists == nil {
			return number, nil
		}
		used, err := exists(number)
		if err != nil {
			return "", fmt.Errorf("exists callback: %w", err)
		}
		if !used {
			return number, nil
		}
	}
	return "", fmt.Errorf("failed to generate unique card number after %d retries", maxRetries)
}

// randomDigits produces count digit characters using rejection sampling to
// avoid modulo bias: only bytes < 250 are accepted before reduction mod 10.
func randomDigits(count int) (string, error) {
	if count <= 0 {
		return "", nil
	}
	const threshold = 250 // 256 - (256 % 10)
	var sb strings.Builder
	sb.Grow(count)
	buf := make([]byte, 64)
	for sb.Len() < count {
		n, err := rand.Read(buf)
		if err != nil {
			return "", err
		}
		for i := 0; i < n && sb.Len() < count; i++ {
			b := buf[i]
			if b < threshold {
				sb.WriteByte('0' + (b % 10))
			}
		}
	}
	return sb.String(), nil
}

// IsValid reports whether number is exactly Length ASCII digits.
func IsValid(number string) bool {
	return len(number) == Length && IsDigits(number)
}

func IsDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// Mask returns the displayable form of a card number: the first 4 digits, a
// fixed redaction, and the last 3. Logs and error messages must never carry
// the raw number.
func Mask(number string) string {
	if len(number) != Length {
		return strings.Repeat("*", len(number))
	}
	return number[:4] + " **** **** " + number[12:]
}
