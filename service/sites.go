package service

import (
	"context"
	"encoding/json"
	"io"
	"net/url"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager/types"
	"github.com/pkg/errors"
	"github.com/truemediaorg/crosspostfields/config"
	"github.com/truemediaorg/crosspostfields/database/db"
	"github.com/truemediaorg/crosspostfields/model"
	"github.com/truemediaorg/crosspostfields/wordpress"

	log "github.com/sirupsen/logrus"
)

type SiteStore interface {
	GetSiteByHandle(ctx context.Context, handle string) (*db.Site, error)
}

type SecretGetter interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

// DestinationClient is the part of the destination REST API the services use.
type DestinationClient interface {
	UploadMedia(ctx context.Context, fileName string, mimeType string, body io.Reader) (*wordpress.Media, error)
	FindProductBySKU(ctx context.Context, sku string) (int64, error)
	CurrentUser(ctx context.Context) (*wordpress.User, error)
	Download(ctx context.Context, fileURL string) (io.ReadCloser, error)
}

// SiteService maps destination handles to registered sites and their API clients.
type SiteService struct {
	store   SiteStore
	secrets SecretGetter
	timeout time.Duration

	mu      sync.Mutex
	clients map[string]DestinationClient
}

func NewSiteService(store SiteStore, secrets SecretGetter, timeout time.Duration) *SiteService {
	return &SiteService{
		store:   store,
		secrets: secrets,
		timeout: timeout,
		clients: map[string]DestinationClient{},
	}
}

func (s *SiteService) SiteID(ctx context.Context, dest model.Destination) (int64, error) {
	site, err := s.site(ctx, dest)
	if err != nil {
		return 0, err
	}
	return site.ID, nil
}

// Client returns an API client for dest using the credentials stored for it.
// Clients are built once per destination.
func (s *SiteService) Client(ctx context.Context, dest model.Destination) (DestinationClient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if client, ok := s.clients[dest.Handle]; ok {
		return client, nil
	}

	site, err := s.site(ctx, dest)
	if err != nil {
		return nil, err
	}
	baseURL, err := url.Parse(site.URL)
	if err != nil {
		return nil, errors.Wrapf(model.ErrDestinationInvalid, "site %s has a bad url: %v", site.Handle, err)
	}
	credentials, err := s.credentials(ctx, site)
	if err != nil {
		return nil, err
	}

	client := wordpress.NewClient(ctx, *baseURL, credentials, s.timeout)
	log.WithField("site", site.Handle).Infof("destination client initialized. Host: %s", baseURL.String())
	s.clients[dest.Handle] = client
	return client, nil
}

func (s *SiteService) site(ctx context.Context, dest model.Destination) (*db.Site, error) {
	if dest.Handle == "" {
		return nil, errors.Wrap(model.ErrDestinationInvalid, "destination has no handle")
	}
	site, err := s.store.GetSiteByHandle(ctx, dest.Handle)
	if err != nil {
		return nil, errors.Wrapf(err, "looking up site %s", dest.Handle)
	}
	if site == nil {
		return nil, errors.Wrapf(model.ErrDestinationInvalid, "unknown site %s", dest.Handle)
	}
	return site, nil
}

func (s *SiteService) credentials(ctx context.Context, site *db.Site) (wordpress.Credentials, error) {
	// Get the site secrets from AWS Secrets Manager
	result, err := s.secrets.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{SecretId: aws.String(site.SecretPath)})
	if err != nil {
		var notFound *types.ResourceNotFoundException
		if errors.As(err, &notFound) {
			return wordpress.Credentials{}, errors.Wrapf(model.ErrDestinationInvalid, "no credentials for site %s", site.Handle)
		}
		return wordpress.Credentials{}, errors.Wrapf(err, "reading credentials for site %s", site.Handle)
	}
	var siteSecrets config.SiteSecretData
	if result.SecretString == nil {
		return wordpress.Credentials{}, errors.Wrapf(model.ErrDestinationInvalid, "empty credentials for site %s", site.Handle)
	}
	if err = json.Unmarshal([]byte(*result.SecretString), &siteSecrets); err != nil {
		return wordpress.Credentials{}, errors.Wrapf(model.ErrDestinationInvalid, "site %s secrets read error: %v", site.Handle, err)
	}
	return wordpress.Credentials{
		UserName:            siteSecrets.UserName,
		ApplicationPassword: siteSecrets.ApplicationPassword,
		ConsumerKey:         siteSecrets.ConsumerKey,
		ConsumerSecret:      siteSecrets.ConsumerSecret,
	}, nil
}
