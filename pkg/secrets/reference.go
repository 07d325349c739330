package secrets

import (
	"net/url"
	"strconv"
	"strings"
)

// Stable parameter keys embedded in encoded secret strings. These exact
// names are part of the wire contract and must not change.
const (
	ParamName     = "s"
	ParamRegion   = "r"
	ParamKey      = "k"
	ParamEncoding = "encoding"
)

// Reference prefixes recognized in configuration values.
const (
	EncryptedPrefix     = "encrypted:"
	EncryptedFilePrefix = "encryptedFile:"
	UserSecretScheme    = "secret"
)

// EncryptedSecret is a parsed legacy secret reference.
//
// Wire format: encrypted:<engine>!<param>:<value>!<param>:<value>...
// The encryptedFile: prefix marks the reference as a whole-file secret.
type EncryptedSecret struct {
	EngineIdentifier string
	Params           map[string]string
	File             bool
}

// UserSecretReference is a parsed structured secret reference.
//
// Wire format: secret://<engine>?<param>=<value>&...
type UserSecretReference struct {
	EngineIdentifier string
	Params           map[string]string
}

// IsEncryptedSecret reports whether raw looks like a legacy reference.
func IsEncryptedSecret(raw string) bool {
	return strings.HasPrefix(raw, EncryptedPrefix) || strings.HasPrefix(raw, EncryptedFilePrefix)
}

// IsUserSecretReference reports whether raw looks like a structured reference.
func IsUserSecretReference(raw string) bool {
	return strings.HasPrefix(raw, UserSecretScheme+"://")
}

// ParseEncryptedSecret decodes a legacy reference string.
func ParseEncryptedSecret(raw string) (EncryptedSecret, error) {
	var ref EncryptedSecret
	switch {
	case strings.HasPrefix(raw, EncryptedFilePrefix):
		ref.File = true
		raw = strings.TrimPrefix(raw, EncryptedFilePrefix)
	case strings.HasPrefix(raw, EncryptedPrefix):
		raw = strings.TrimPrefix(raw, EncryptedPrefix)
	default:
		return EncryptedSecret{}, &FormatError{Reason: "missing encrypted: prefix"}
	}

	tokens := strings.Split(raw, "!")
	if tokens[0] == "" {
		return EncryptedSecret{}, &FormatError{Reason: "missing engine identifier"}
	}
	ref.EngineIdentifier = tokens[0]
	ref.Params = make(map[string]string, len(tokens)-1)

	for _, tok := range tokens[1:] {
		key, value, ok := strings.Cut(tok, ":")
		if !ok || key == "" {
			return EncryptedSecret{}, &FormatError{Reason: "malformed parameter " + strconv.Quote(tok)}
		}
		ref.Params[key] = value
	}
	return ref, nil
}

// ParseUserSecretReference decodes a structured reference URI.
func ParseUserSecretReference(raw string) (UserSecretReference, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return UserSecretReference{}, &FormatError{Reason: "malformed reference: " + err.Error()}
	}
	if u.Scheme != UserSecretScheme {
		return UserSecretReference{}, &FormatError{Reason: "unexpected scheme " + strconv.Quote(u.Scheme)}
	}
	if u.Host == "" {
		return UserSecretReference{}, &FormatError{Reason: "missing engine identifier"}
	}

	params := make(map[string]string)
	for key, values := range u.Query() {
		if len(values) > 0 {
			params[key] = values[len(values)-1]
		}
	}
	return UserSecretReference{EngineIdentifier: u.Host, Params: params}, nil
}
