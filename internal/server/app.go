// Package server initializes and runs the backend. It loads configuration,
// wires the DynamoDB and SES clients into repositories and services, and
// hands the request router to the Lambda runtime.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"

	"github.com/betmaster21/blackjack-backend/internal/logging"
	"github.com/betmaster21/blackjack-backend/internal/server/api"
	"github.com/betmaster21/blackjack-backend/internal/server/auth"
	"github.com/betmaster21/blackjack-backend/internal/server/config"
	"github.com/betmaster21/blackjack-backend/internal/server/email"
	"github.com/betmaster21/blackjack-backend/internal/server/repositories/accounts"
	"github.com/betmaster21/blackjack-backend/internal/server/repositories/stats"
	"github.com/betmaster21/blackjack-backend/internal/server/services"
)

type App struct {
	config  *config.Config
	logger  logging.Logger
	handler *api.Handler
}

func NewApp(ctx context.Context) (*App, error) {

	slog := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(slog)

	cfg := config.LoadConfig()

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("aws config init error: %w", err)
	}

	dynamo := dynamodb.NewFromConfig(awsCfg)
	accountsRepo := accounts.NewDynamoRepository(dynamo, cfg.UsersTable)
	statsRepo := stats.NewDynamoRepository(dynamo, cfg.StatsTable)

	ses := sesv2.NewFromConfig(awsCfg, func(o *sesv2.Options) {
		o.Region = cfg.SESRegion
	})
	sender := email.NewSESSender(ses, cfg.SESFromEmail)

	tokens := auth.NewTokenIssuer(cfg.SecretKey, cfg.Algorithm, cfg.AccessTokenTTL, cfg.ResetTokenTTL)

	accountService := services.NewAccountService(accountsRepo, sender, tokens, cfg, logger)
	statsService := services.NewStatsService(statsRepo)

	handler := api.NewHandler(accountService, statsService, tokens, logger)

	return &App{config: cfg, logger: logger, handler: handler}, nil
}

// Run blocks serving Lambda invocations until the runtime shuts down.
func (app *App) Run() {
	app.logger.Info(context.Background(), "starting handler", "app", app.config.AppName)
	lambda.Start(app.handler.Route)
}
