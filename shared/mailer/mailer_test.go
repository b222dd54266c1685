package mailer

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"
)

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	valid := Config{Host: "smtp.local", Port: 1025, From: "no-reply@storefront.local"}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name string
		cfg  Config
	}{
		{"missing host", Config{Port: 1025, From: "a@b.c"}},
		{"missing port", Config{Host: "smtp.local", From: "a@b.c"}},
		{"missing from", Config{Host: "smtp.local", Port: 1025}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.cfg.Validate())
		})
	}
}

func TestSend_NoRecipients(t *testing.T) {
	t.Parallel()

	m := NewMailer(Config{Host: "smtp.local", Port: 1025, From: "no-reply@storefront.local"})

	err := m.Send(Email{Subject: "hello"})
	assert.EqualError(t, err, "no recipients specified")
}

func TestSetEmailMessage_HTMLWithAlternative(t *testing.T) {
	t.Parallel()

	m := NewMailer(Config{Host: "smtp.local", Port: 1025, From: "no-reply@storefront.local"})
	msg := gomail.NewMessage()

	m.setEmailMessage(msg, Email{
		To:       []string{"a@x.com"},
		Bcc:      []string{"audit@x.com"},
		Subject:  "Password Reset Request",
		Body:     "plain body",
		HTMLBody: "<p>html body</p>",
	})

	assert.Equal(t, []string{"no-reply@storefront.local"}, msg.GetHeader("From"))
	assert.Equal(t, []string{"a@x.com"}, msg.GetHeader("To"))
	assert.Equal(t, []string{"audit@x.com"}, msg.GetHeader("Bcc"))
	assert.Empty(t, msg.GetHeader("Cc"))

	var buf bytes.Buffer
	_, err := msg.WriteTo(&buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "text/html")
	assert.Contains(t, buf.String(), "text/plain")
}
