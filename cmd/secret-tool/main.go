package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Checker-Finance/secrets/internal/config"
	"github.com/Checker-Finance/secrets/internal/metrics"
	"github.com/Checker-Finance/secrets/pkg/secrets"
	"github.com/Checker-Finance/secrets/pkg/secrets/secretsmanager"
)

// Version is set at build time
var Version = "dev"

func main() {
	// Local overrides; missing .env is fine
	_ = godotenv.Load()
	cfg := config.Load()

	logConfig := zap.NewProductionConfig()
	logConfig.EncoderConfig.TimeKey = "timestamp"
	logConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if level, err := zapcore.ParseLevel(cfg.LogLevel); err == nil {
		logConfig.Level = zap.NewAtomicLevelAt(level)
	}

	logger, err := logConfig.Build()
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: secret-tool <reference>")
		fmt.Fprintln(os.Stderr, "  reference: encrypted:secrets-manager!s:<name>!r:<region>[!k:<key>]")
		fmt.Fprintln(os.Stderr, "             encryptedFile:secrets-manager!s:<name>!r:<region>")
		fmt.Fprintln(os.Stderr, "             secret://secrets-manager?s=<name>&r=<region>[&encoding=json]")
		os.Exit(2)
	}
	raw := os.Args[1]

	if cfg.MetricsAddr != "" {
		metrics.StartServer(cfg.MetricsAddr)
		logger.Info("Metrics endpoint started", zap.String("addr", cfg.MetricsAddr))
	}

	registry := secrets.NewRegistry()
	if err := registry.Register(secretsmanager.NewDefault(logger)); err != nil {
		logger.Fatal("Failed to register engine", zap.Error(err))
	}
	resolver := secrets.NewResolver(logger, registry)

	ctx := context.Background()

	if secrets.IsUserSecretReference(raw) {
		secret, err := resolver.DecryptUserSecret(ctx, raw)
		if err != nil {
			logger.Fatal("Failed to resolve user secret", zap.Error(err))
		}
		out, err := json.Marshal(secret)
		if err != nil {
			logger.Fatal("Failed to encode user secret", zap.Error(err))
		}
		fmt.Println(string(out))
		return
	}

	plaintext, err := resolver.Decrypt(ctx, raw)
	if err != nil {
		logger.Fatal("Failed to resolve secret", zap.Error(err))
	}
	os.Stdout.Write(plaintext)
}
