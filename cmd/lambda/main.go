package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/aws/aws-lambda-go/lambda"

	"screenboard/internal/app"
	"screenboard/internal/platform/config"
	"screenboard/internal/platform/logger"
	lambdatransport "screenboard/internal/transport/lambda"
)

// main serves one API Gateway function. LAMBDA_FUNCTION names the operation
// ("createSolution", "login", ...); without it the function name's last dash
// segment is used, and "router" serves every route from one deployment.
func main() {
	cfg := config.FromEnv()
	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	handler, err := build(cfg, log)
	if err != nil {
		log.Error("lambda init failed", "error", err)
		os.Exit(1)
	}
	lambda.Start(handler)
}

func build(cfg config.Server, log *slog.Logger) (lambdatransport.Func, error) {
	a, err := app.New(context.Background(), cfg, log)
	if err != nil {
		return nil, err
	}
	handlers := lambdatransport.New(a.Auth, a.Workspace, log)

	name := functionName()
	if name == "" || name == "router" {
		return handlers.Route, nil
	}
	fn, ok := handlers.Function(name)
	if !ok {
		_ = a.Close()
		return nil, fmt.Errorf("unknown lambda function %q", name)
	}
	log.Info("lambda ready", "function", name, "store", cfg.StoreBackend)
	return fn, nil
}

func functionName() string {
	if name := os.Getenv("LAMBDA_FUNCTION"); name != "" {
		return name
	}
	deployed := os.Getenv("AWS_LAMBDA_FUNCTION_NAME")
	if i := strings.LastIndex(deployed, "-"); i >= 0 {
		return deployed[i+1:]
	}
	return deployed
}
