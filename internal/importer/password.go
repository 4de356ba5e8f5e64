package importer

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// passwordBytes is the entropy of generated passwords. Imported crew never
// see these; they reset the password on first login.
const passwordBytes = 24

// generatePassword returns a random url-safe password.
func generatePassword() (string, error) {
	buf := make([]byte, passwordBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
