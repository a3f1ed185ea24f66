package security

import (
	"github.com/matthewhartstonge/argon2"
)

var hashConfig = argon2.DefaultConfig()

// HashPassword hashes a plaintext password using argon2id with the default
// parameters. The returned string is the full encoded hash including salt
// and parameters.
func HashPassword(password string) (string, error) {
	encoded, err := hashConfig.HashEncoded([]byte(password))
	if err != nil {
		return "", err
	}

	return string(encoded), nil
}

// VerifyPassword checks a plaintext password against an encoded argon2 hash.
func VerifyPassword(password, encodedHash string) (bool, error) {
	return argon2.VerifyEncoded([]byte(password), []byte(encodedHash))
}
