package keys

import (
	"encoding/base64"
	"os"
	"strings"

	"github.com/pkg/errors"
)

// Symmetric secrets are stored base64 (standard encoding) in files
// referenced by configuration, one secret per file. The decoded material
// must be at least this long to be usable for HMAC-SHA256.
const minKeyBytes = 32

// LoadSymmetricKey reads and decodes a base64-encoded symmetric secret.
// Keys are loaded once at process start; any failure here is a fatal
// startup condition for the caller.
func LoadSymmetricKey(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "[keys.LoadSymmetricKey] reading %q", path)
	}

	decoded, err := base64.StdEncoding.DecodeString(strings.TrimSpace(string(data)))
	if err != nil {
		return nil, errors.Wrapf(err, "[keys.LoadSymmetricKey] decoding %q", path)
	}

	if len(decoded) < minKeyBytes {
		return nil, errors.Errorf("[keys.LoadSymmetricKey] key in %q is %d bytes, need at least %d", path, len(decoded), minKeyBytes)
	}
	return decoded, nil
}
