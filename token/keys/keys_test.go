package keys_test

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"

	"github.com/jrsteele09/taskhub-auth/token/keys"
	"github.com/stretchr/testify/require"
)

func writeKeyFile(t *testing.T, contents string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "secret.key")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}

func TestLoadSymmetricKey(t *testing.T) {
	secret := []byte("0123456789abcdef0123456789abcdef")
	path := writeKeyFile(t, base64.StdEncoding.EncodeToString(secret)+"\n")

	loaded, err := keys.LoadSymmetricKey(path)
	require.NoError(t, err)
	require.Equal(t, secret, loaded)
}

func TestLoadSymmetricKeyMissingFile(t *testing.T) {
	_, err := keys.LoadSymmetricKey(filepath.Join(t.TempDir(), "nope.key"))
	require.Error(t, err)
}

func TestLoadSymmetricKeyBadEncoding(t *testing.T) {
	path := writeKeyFile(t, "!!! not base64 !!!")

	_, err := keys.LoadSymmetricKey(path)
	require.Error(t, err)
}

func TestLoadSymmetricKeyTooShort(t *testing.T) {
	path := writeKeyFile(t, base64.StdEncoding.EncodeToString([]byte("short")))

	_, err := keys.LoadSymmetricKey(path)
	require.Error(t, err)
}
