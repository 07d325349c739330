// Package secretsmanager implements the AWS Secrets Manager secret engine.
//
// Secrets referenced with a key parameter are expected to be stored as JSON
// maps (e.g. {"username": "abc", "password": "xyz"}); file and plain
// references return the stored payload uninterpreted.
package secretsmanager

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/Checker-Finance/secrets/internal/metrics"
	"github.com/Checker-Finance/secrets/pkg/secrets"
)

// Identifier is the engine name used for registry dispatch.
const Identifier = "secrets-manager"

// Engine resolves secret references against AWS Secrets Manager. It satisfies
// secrets.Engine.
type Engine struct {
	logger *zap.Logger
	client Client
	cache  *ParseCache
	mapper secrets.UserSecretMapper
}

// New constructs an Engine. The client, cache and mapper are injected so the
// engine is testable without a real AWS dependency; pass AWSClient{} and
// NewParseCache() in production.
func New(logger *zap.Logger, client Client, cache *ParseCache, mapper secrets.UserSecretMapper) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		logger: logger,
		client: client,
		cache:  cache,
		mapper: mapper,
	}
}

// NewDefault constructs a production Engine backed by the AWS SDK and the
// default JSON user-secret mapper.
func NewDefault(logger *zap.Logger) *Engine {
	return New(logger, AWSClient{}, NewParseCache(), secrets.JSONMapper{})
}

// Identifier returns the registry dispatch name.
func (e *Engine) Identifier() string { return Identifier }

// Validate checks the legacy reference: secret name and region are required,
// and a file reference must not carry a key selector (file secrets are always
// whole-value).
func (e *Engine) Validate(ref secrets.EncryptedSecret) error {
	if _, ok := ref.Params[secrets.ParamName]; !ok {
		return &secrets.FormatError{Reason: "secret name parameter is missing (" + secrets.ParamName + "=...)"}
	}
	if _, ok := ref.Params[secrets.ParamRegion]; !ok {
		return &secrets.FormatError{Reason: "secret region parameter is missing (" + secrets.ParamRegion + "=...)"}
	}
	if ref.File {
		if _, ok := ref.Params[secrets.ParamKey]; ok {
			return &secrets.FormatError{Reason: "encrypted file should not specify key"}
		}
	}
	return nil
}

// ValidateUserSecret checks the structured reference: the engine identifier
// must match and name and region must be present.
func (e *Engine) ValidateUserSecret(ref secrets.UserSecretReference) error {
	if ref.EngineIdentifier != Identifier {
		return &secrets.FormatError{Reason: "reference does not target engine " + Identifier}
	}
	if _, ok := ref.Params[secrets.ParamName]; !ok {
		return &secrets.FormatError{Reason: "secret name parameter is missing (" + secrets.ParamName + "=...)"}
	}
	if _, ok := ref.Params[secrets.ParamRegion]; !ok {
		return &secrets.FormatError{Reason: "secret region parameter is missing (" + secrets.ParamRegion + "=...)"}
	}
	return nil
}

// Decrypt resolves a legacy reference. Three modes, selected by reference
// shape: file (whole payload, binary preferred), keyed (one field of a JSON
// object, served through the parse cache), plain (string payload
// uninterpreted).
func (e *Engine) Decrypt(ctx context.Context, ref secrets.EncryptedSecret) ([]byte, error) {
	name := ref.Params[secrets.ParamName]
	region := ref.Params[secrets.ParamRegion]
	key, hasKey := ref.Params[secrets.ParamKey]

	switch {
	case ref.File:
		value, err := e.fetch(ctx, region, name)
		if err != nil {
			return nil, err
		}
		if value.Binary != nil {
			return value.Binary, nil
		}
		return []byte(value.String), nil

	case hasKey:
		return e.lookupKey(ctx, region, name, key)

	default:
		value, err := e.fetch(ctx, region, name)
		if err != nil {
			return nil, err
		}
		return []byte(value.String), nil
	}
}

// DecryptUserSecret resolves a structured reference: validate, fetch, then
// hand the raw payload and the encoding hint to the mapper. Binary payloads
// take precedence over string payloads. This path never touches the parse
// cache.
func (e *Engine) DecryptUserSecret(ctx context.Context, ref secrets.UserSecretReference) (secrets.UserSecret, error) {
	if err := e.ValidateUserSecret(ref); err != nil {
		return nil, err
	}

	name := ref.Params[secrets.ParamName]
	region := ref.Params[secrets.ParamRegion]
	encoding := ref.Params[secrets.ParamEncoding]

	value, err := e.fetch(ctx, region, name)
	if err != nil {
		return nil, err
	}

	raw := value.Binary
	if raw == nil {
		raw = []byte(value.String)
	}
	return e.mapper.Deserialize(raw, encoding)
}

// ClearCache drops all cached parsed payloads.
func (e *Engine) ClearCache() {
	e.cache.Clear()
	e.logger.Info("secretsmanager.cache_cleared")
}

// fetch performs one synchronous backend call and wraps any failure in a
// BackendError annotated with the secret coordinates.
func (e *Engine) fetch(ctx context.Context, region, name string) (SecretValue, error) {
	start := time.Now()
	value, err := e.client.GetSecretValue(ctx, region, name)
	metrics.ObserveFetchDuration(Identifier, region, start)
	if err != nil {
		metrics.IncFetch(Identifier, region, "error")
		e.logger.Warn("secretsmanager.fetch_failed",
			zap.String("secret", name),
			zap.String("region", region),
			zap.Error(err))
		return SecretValue{}, &secrets.BackendError{Name: name, Region: region, Err: err}
	}
	metrics.IncFetch(Identifier, region, "ok")
	return value, nil
}

// lookupKey serves keyed mode: fetch-or-reuse the parsed JSON object for name,
// then select one field. The cache key is the secret name only.
func (e *Engine) lookupKey(ctx context.Context, region, name, key string) ([]byte, error) {
	fields, ok := e.cache.Get(name)
	if !ok {
		metrics.IncCacheMiss(Identifier)
		value, err := e.fetch(ctx, region, name)
		if err != nil {
			return nil, err
		}

		var parsed map[string]string
		if err := json.Unmarshal([]byte(value.String), &parsed); err != nil {
			return nil, &secrets.ParseError{Name: name, Region: region, Key: key, Err: err}
		}
		if parsed == nil {
			return nil, &secrets.ParseError{Name: name, Region: region, Key: key, Err: errors.New("payload is not a JSON object")}
		}
		fields = e.cache.PutIfAbsent(name, parsed)
	} else {
		metrics.IncCacheHit(Identifier)
	}

	raw, ok := fields[key]
	if !ok {
		return nil, &secrets.NotFoundError{Name: name, Region: region, Key: key}
	}
	return []byte(raw), nil
}
