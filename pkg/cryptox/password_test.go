package cryptox_test

import (
	"path/filepath"
	"testing"

	"github.com/mapacultural/fomenta/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	// Each test binary gets its own pepper file so runs don't interfere.
	cryptox.SetPepperPath(filepath.Join(setupTempDir(), "pepper"))
	m.Run()
}

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := cryptox.HashPassword("correct horse battery")
	require.NoError(t, err)
	require.Contains(t, hash, "$argon2id$v=19$")

	require.NoError(t, cryptox.VerifyPassword("correct horse battery", hash))
	require.ErrorIs(t,
		cryptox.VerifyPassword("wrong password", hash),
		cryptox.ErrPasswordMismatch,
	)
}

func TestHashPasswordSaltsDiffer(t *testing.T) {
	a, err := cryptox.HashPassword("abcdef")
	require.NoError(t, err)
	b, err := cryptox.HashPassword("abcdef")
	require.NoError(t, err)
	require.NotEqual(t, a, b)
}

func TestVerifyPasswordRejectsMalformedHash(t *testing.T) {
	for _, hash := range []string{
		"",
		"plaintext",
		"$bcrypt$v=19$m=1,t=1,p=1$c2FsdA$aGFzaA",
		"$argon2id$v=18$m=1,t=1,p=1$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=1,t=1,p=1$not-base64!$aGFzaA",
	} {
		err := cryptox.VerifyPassword("whatever", hash)
		require.Error(t, err, "hash %q", hash)
		require.NotErrorIs(t, err, cryptox.ErrPasswordMismatch, "hash %q", hash)
	}
}

func TestGeneratePassword(t *testing.T) {
	pw, err := cryptox.GeneratePassword()
	require.NoError(t, err)
	require.Len(t, pw, 12)

	other, err := cryptox.GeneratePassword()
	require.NoError(t, err)
	require.NotEqual(t, pw, other)
}

func TestGetPepperIsStableUnderConcurrency(t *testing.T) {
	peppers := make(chan string, 16)
	for i := 0; i < 16; i++ {
		go func() { peppers <- cryptox.GetPepper() }()
	}

	first := <-peppers
	require.NotEmpty(t, first)
	for i := 1; i < 16; i++ {
		require.Equal(t, first, <-peppers)
	}
}
