package security

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

const resetTokenBytes = 32

// ResetTokenGenerator issues single-use password reset tokens. Only the keyed hash
// of a token is meant to be stored; the plaintext goes to the user out-of-band.
type ResetTokenGenerator struct {
	secret []byte
	window time.Duration
	now    func() time.Time
}

// NewResetTokenGenerator creates a generator whose tokens expire after window.
func NewResetTokenGenerator(secret string, window time.Duration) *ResetTokenGenerator {
	return &ResetTokenGenerator{
		secret: []byte(secret),
		window: window,
		now:    time.Now,
	}
}

// Window returns how long a generated token stays valid.
func (g *ResetTokenGenerator) Window() time.Duration {
	return g.window
}

// Generate returns a fresh plaintext token, its hash and its expiry.
func (g *ResetTokenGenerator) Generate() (plain, hashed string, expiresAt time.Time, err error) {
	bytes := make([]byte, resetTokenBytes)
	if _, err := rand.Read(bytes); err != nil {
		return "", "", time.Time{}, err
	}

	plain = hex.EncodeToString(bytes)

	return plain, g.Hash(plain), g.now().Add(g.window), nil
}

// Hash re-derives the stored lookup key from a presented plaintext token.
func (g *ResetTokenGenerator) Hash(plain string) string {
	mac := hmac.New(sha256.New, g.secret)
	mac.Write([]byte(plain))

	return hex.EncodeToString(mac.Sum(nil))
}
