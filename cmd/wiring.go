package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	log "github.com/sirupsen/logrus"
	"github.com/truemediaorg/crosspostfields/config"
	"github.com/truemediaorg/crosspostfields/crosspost"
	"github.com/truemediaorg/crosspostfields/database"
	"github.com/truemediaorg/crosspostfields/schema"
	"github.com/truemediaorg/crosspostfields/service"
	"github.com/truemediaorg/crosspostfields/transcode"
)

// app holds everything the commands share once the config is loaded
type app struct {
	cfg       config.Config
	database  *database.Database
	sites     *service.SiteService
	extension *crosspost.Extension
}

func newApp(ctx context.Context) (*app, error) {
	cfg := config.FromEnvfile()
	cfg.ConfigureLogging()

	if cfg.TestModeEnabled {
		log.Info("TEST MODE ENABLED")
	}

	awsConfig, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, err
	}
	secretsManagerClient := secretsmanager.NewFromConfig(awsConfig)

	databaseURL := cfg.PostgresURL
	if databaseURL == "" {
		// Get the DB secrets from AWS Secrets Manager
		result, err := secretsManagerClient.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{SecretId: aws.String(cfg.PostgresSecretPath)})
		if err != nil {
			return nil, err
		}
		var pgSecrets config.PostgresSecretData
		err = json.Unmarshal([]byte(*result.SecretString), &pgSecrets)
		if err != nil {
			return nil, fmt.Errorf("postgres secrets read error: %w", err)
		}
		databaseURL = pgSecrets.ConnectionString
	}

	database := database.NewDatabase(databaseURL)
	if err = database.Connect(ctx); err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}

	// Without a schema export every payload passes through untouched
	fields := schema.NewResolver(nil)
	if cfg.FieldSchemaPath != "" {
		source, err := schema.LoadFile(cfg.FieldSchemaPath)
		if err != nil {
			database.Disconnect()
			return nil, err
		}
		fields = schema.NewResolver(source)
	}

	sites := service.NewSiteService(database, secretsManagerClient, cfg.HTTPTimeout)
	content := service.NewContentService(database)
	attachments := service.NewAttachmentService(database, sites, cfg.TestModeEnabled)

	var transcoder *transcode.Transcoder
	if cfg.CommerceEnabled {
		transcoder = transcode.NewTranscoder(attachments, content, content, sites, service.NewProductService(database, sites))
	} else {
		transcoder = transcode.NewTranscoder(attachments, content, content, sites, nil)
	}

	return &app{
		cfg:       cfg,
		database:  database,
		sites:     sites,
		extension: crosspost.NewExtension(fields, transcoder, content),
	}, nil
}

func (a *app) Close() {
	a.database.Disconnect()
}
