package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/mohtashimnawaz/satoshiflow/pkg/config"
	wshandler "github.com/mohtashimnawaz/satoshiflow/pkg/handlers/websockets"
	dydbstore "github.com/mohtashimnawaz/satoshiflow/pkg/storage/dynamodb"
)

var handler *wshandler.Handler

func init() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if cfg.Tables.Connections == "" {
		log.Fatal("DYNAMODB_CONNECTIONS_TABLE_NAME environment variable not set")
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel})))

	awsCfg, err := awsconfig.LoadDefaultConfig(context.TODO())
	if err != nil {
		log.Fatalf("unable to load SDK config, %v", err)
	}

	// Only the connections table is touched here; API Gateway owns the sockets.
	handler = wshandler.NewHandler(dydbstore.New(dynamodb.NewFromConfig(awsCfg), cfg.Tables), nil)
}

func main() {
	lambda.Start(handler.HandleRequest)
}
