package main

import (
	"context"
	"os"

	"github.com/aws/aws-lambda-go/lambda"

	"screenboard/internal/app"
	"screenboard/internal/auth/authorizer"
	"screenboard/internal/platform/config"
	"screenboard/internal/platform/logger"
)

// main runs the API Gateway token authorizer in front of the serverless functions.
func main() {
	cfg := config.FromEnv()
	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	a, err := app.New(context.Background(), cfg, log)
	if err != nil {
		log.Error("authorizer init failed", "error", err)
		os.Exit(1)
	}
	lambda.Start(authorizer.New(a.Auth, log, a.AuthMetrics).Handle)
}
