package security

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("secret1")
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", hash)

	ok, err := VerifyPassword("secret1", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword("secret2", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHashPassword_SaltedPerCall(t *testing.T) {
	t.Parallel()

	first, err := HashPassword("same-password")
	require.NoError(t, err)
	second, err := HashPassword("same-password")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestVerifyPassword_MalformedHash(t *testing.T) {
	t.Parallel()

	ok, err := VerifyPassword("secret1", "not-an-argon2-hash")
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestResetTokenGenerator_Generate(t *testing.T) {
	t.Parallel()

	g := NewResetTokenGenerator("pepper", 10*time.Minute)
	before := time.Now()

	plain, hashed, expiresAt, err := g.Generate()
	require.NoError(t, err)

	assert.Len(t, plain, 2*resetTokenBytes)
	assert.NotEqual(t, plain, hashed)
	assert.Equal(t, hashed, g.Hash(plain))
	assert.WithinDuration(t, before.Add(10*time.Minute), expiresAt, 5*time.Second)

	otherPlain, otherHashed, _, err := g.Generate()
	require.NoError(t, err)
	assert.NotEqual(t, plain, otherPlain)
	assert.NotEqual(t, hashed, otherHashed)
}

func TestResetTokenGenerator_HashDependsOnSecret(t *testing.T) {
	t.Parallel()

	a := NewResetTokenGenerator("pepper-a", time.Minute)
	b := NewResetTokenGenerator("pepper-b", time.Minute)

	assert.NotEqual(t, a.Hash("token"), b.Hash("token"))
	assert.Equal(t, a.Hash("token"), a.Hash("token"))
}
