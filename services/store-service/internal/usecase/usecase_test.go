package usecase

import (
	"errors"
	"sync"
	"time"

	"github.com/vasapolrittideah/storefront-api/shared/auth"
	"github.com/vasapolrittideah/storefront-api/shared/mailer"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newTestAuthenticator() *auth.JWTAuthenticator {
	return auth.NewJWTAuthenticator(auth.Config{
		AccessTokenSecret:     testSecret,
		RefreshTokenSecret:    testSecret + "-refresh",
		AccessTokenExpiresIn:  time.Hour,
		RefreshTokenExpiresIn: 72 * time.Hour,
		Issuer:                "storefront-api",
	})
}

// fakeMailer records every email and optionally fails.
type fakeMailer struct {
	mu   sync.Mutex
	sent []mailer.Email
	err  error
}

func (m *fakeMailer) Send(email mailer.Email) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, email)

	return nil
}

func (m *fakeMailer) last() mailer.Email {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.sent[len(m.sent)-1]
}

var errSMTPDown = errors.New("smtp: connection refused")
