package secrets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONMapper_Deserialize(t *testing.T) {
	secret, err := JSONMapper{}.Deserialize([]byte(`{"username":"abc","nested":{"a":1}}`), "json")

	require.NoError(t, err)
	m, ok := secret.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "abc", m["username"])
}

func TestJSONMapper_EmptyEncodingDefaultsToJSON(t *testing.T) {
	secret, err := JSONMapper{}.Deserialize([]byte(`{"token":"xyz"}`), "")

	require.NoError(t, err)
	assert.Equal(t, map[string]any{"token": "xyz"}, secret)
}

func TestJSONMapper_UnsupportedEncoding(t *testing.T) {
	_, err := JSONMapper{}.Deserialize([]byte(`{}`), "cbor")

	assert.ErrorContains(t, err, "unsupported user secret encoding")
}

func TestJSONMapper_InvalidPayload(t *testing.T) {
	_, err := JSONMapper{}.Deserialize([]byte("not json"), "json")

	assert.Error(t, err)
}
