// Package security holds the one-way transforms used for credentials:
// argon2id password hashing and HMAC-keyed password reset tokens.
package security

import (
	"github.com/matthewhartstonge/argon2"
)

var argon = argon2.DefaultConfig()

// HashPassword derives an encoded argon2id hash with a random salt embedded in the output.
func HashPassword(password string) (string, error) {
	encoded, err := argon.HashEncoded([]byte(password))
	if err != nil {
		return "", err
	}

	return string(encoded), nil
}

// VerifyPassword reports whether password matches the encoded hash.
// A mismatch is (false, nil); an error means the stored hash could not be decoded.
func VerifyPassword(password, encodedHash string) (bool, error) {
	return argon2.VerifyEncoded([]byte(password), []byte(encodedHash))
}
