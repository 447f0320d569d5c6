package cryptox_test

import (
	"os"
	"testing"

	"github.com/mapacultural/fomenta/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

func setupTempDir() string {
	dir, err := os.MkdirTemp("", "cryptox-test-*")
	if err != nil {
		panic(err)
	}
	return dir
}

func TestGenerateToken(t *testing.T) {
	tok, err := cryptox.GenerateToken(cryptox.TokenSize256)
	require.NoError(t, err)
	require.Len(t, tok, 43) // 32 bytes base64url, no padding

	other, err := cryptox.GenerateToken(cryptox.TokenSize256)
	require.NoError(t, err)
	require.NotEqual(t, tok, other)
}

func TestGenerateTokenRejectsNonPositiveSize(t *testing.T) {
	_, err := cryptox.GenerateToken(0)
	require.Error(t, err)
	_, err = cryptox.GenerateToken(-1)
	require.Error(t, err)
}

func TestFingerprintTokenDeterministic(t *testing.T) {
	require.Equal(t,
		cryptox.FingerprintToken("reset-token"),
		cryptox.FingerprintToken("reset-token"),
	)
	require.NotEqual(t,
		cryptox.FingerprintToken("reset-token"),
		cryptox.FingerprintToken("reset-token2"),
	)
	require.Len(t, cryptox.FingerprintToken("x"), 43)
}
