package main

import (
	"os"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/brendan.keane/imdburl/internal/config"
	"github.com/brendan.keane/imdburl/pkg/errors"
	"github.com/brendan.keane/imdburl/internal/logger"
	imdblambda "github.com/brendan.keane/imdburl/internal/lambda"
)

func main() {
	cfg := config.FromEnv()
	if os.Getenv(config.EnvLogFormat) == "" {
		// CloudWatch reads JSON lines
		cfg.Logger.Format = "json"
	}

	log := logger.Setup(cfg.Logger.Level, cfg.Logger.Format, cfg.Logger.WithCaller)
	if err := cfg.Validate(); err != nil {
		errors.PresentError(log, err)
		os.Exit(1)
	}

	lambda.Start(imdblambda.NewHandler(log, cfg).Handle)
}
