package app

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const secretLen = 32

// loadOrGenerateSecret reads the HS256 signing secret from file, generating
// one on first run. Losing this file invalidates every outstanding token,
// which is an acceptable failure mode: everyone just logs in again.
func loadOrGenerateSecret(file string) ([]byte, error) {
	file = filepath.Clean(file)
	if err := os.MkdirAll(filepath.Dir(file), 0o750); err != nil {
		return nil, fmt.Errorf("creating secret dir: %w", err)
	}

	data, err := os.ReadFile(file)
	if err == nil {
		secret := []byte(strings.TrimSpace(string(data)))
		if len(secret) == 0 {
			return nil, fmt.Errorf("secret file %s is empty", file)
		}
		return secret, nil
	}
	if !os.IsNotExist(err) {
		return nil, fmt.Errorf("reading secret file: %w", err)
	}

	raw := make([]byte, secretLen)
	if _, err := rand.Read(raw); err != nil {
		return nil, fmt.Errorf("generating secret: %w", err)
	}
	// Stored base64 so the file stays greppable text and whitespace
	// trimming on load can never corrupt the secret.
	secret := []byte(base64.RawURLEncoding.EncodeToString(raw))
	if err := os.WriteFile(file, secret, 0o600); err != nil {
		return nil, fmt.Errorf("writing secret file: %w", err)
	}
	return secret, nil
}
