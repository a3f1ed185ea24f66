package otp

import (
	"crypto/rand"
)

const digits = "0123456789"

// CodeLength is the number of digits in every one-time passcode the API sends.
const CodeLength = 6

// GenerateCode generates a random numeric one-time passcode of the given
// length using crypto/rand.
func GenerateCode(length int) (string, error) {
	buffer := make([]byte, length)
	if _, err := rand.Read(buffer); err != nil {
		return "", err
	}

	for i := range length {
		buffer[i] = digits[int(buffer[i])%len(digits)]
	}

	return string(buffer), nil
}
