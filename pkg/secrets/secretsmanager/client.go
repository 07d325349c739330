package secretsmanager

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
)

// SecretValue is the raw payload returned by the backend. Exactly one of
// Binary or String is populated per fetch.
type SecretValue struct {
	Binary []byte
	String string
}

// Client fetches a secret value by name in a region. Production code uses
// AWSClient; tests substitute a stub.
type Client interface {
	GetSecretValue(ctx context.Context, region, name string) (SecretValue, error)
}

// AWSClient implements Client against AWS Secrets Manager. A fresh SDK client
// bound to the requested region is constructed on every call; credential and
// endpoint resolution follow the default SDK chain. No retries beyond SDK
// defaults.
type AWSClient struct{}

func (AWSClient) GetSecretValue(ctx context.Context, region, name string) (SecretValue, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return SecretValue{}, fmt.Errorf("failed to load AWS config: %w", err)
	}
	client := secretsmanager.NewFromConfig(cfg)

	out, err := client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(name),
	})
	if err != nil {
		return SecretValue{}, err
	}

	value := SecretValue{Binary: out.SecretBinary}
	if out.SecretString != nil {
		value.String = *out.SecretString
	}
	return value, nil
}
