package secrets

import (
	"encoding/json"
	"fmt"
	"strings"
)

// UserSecret is a structured secret produced by a UserSecretMapper. Its shape
// is defined by the mapper, not by this package; engines return it unchanged.
type UserSecret any

// UserSecretMapper deserializes a raw secret payload into a UserSecret.
// The encoding hint comes from the reference's "encoding" parameter and may
// be empty.
type UserSecretMapper interface {
	Deserialize(data []byte, encoding string) (UserSecret, error)
}

// JSONMapper is the default UserSecretMapper. It decodes JSON payloads into
// a map[string]any and rejects any other encoding hint.
type JSONMapper struct{}

// Deserialize decodes data as a JSON object. An empty encoding defaults to
// "json".
func (JSONMapper) Deserialize(data []byte, encoding string) (UserSecret, error) {
	if encoding != "" && !strings.EqualFold(encoding, "json") {
		return nil, fmt.Errorf("unsupported user secret encoding %q", encoding)
	}

	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("decode user secret: %w", err)
	}
	return out, nil
}
