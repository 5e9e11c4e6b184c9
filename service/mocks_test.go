package service

import (
	"context"
	"io"

	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/stretchr/testify/mock"
	"github.com/truemediaorg/crosspostfields/database/db"
	"github.com/truemediaorg/crosspostfields/model"
	"github.com/truemediaorg/crosspostfields/wordpress"
)

// MockStore stands in for the database in every service
type MockStore struct {
	mock.Mock
}

func (m *MockStore) GetSiteByHandle(ctx context.Context, handle string) (*db.Site, error) {
	args := m.Called(ctx, handle)
	return args.Get(0).(*db.Site), args.Error(1)
}

func (m *MockStore) GetPostType(ctx context.Context, postID int64) (string, error) {
	args := m.Called(ctx, postID)
	return args.Get(0).(string), args.Error(1)
}

func (m *MockStore) GetTermTaxonomy(ctx context.Context, termID int64) (string, error) {
	args := m.Called(ctx, termID)
	return args.Get(0).(string), args.Error(1)
}

func (m *MockStore) GetProductSKU(ctx context.Context, postID int64) (string, error) {
	args := m.Called(ctx, postID)
	return args.Get(0).(string), args.Error(1)
}

func (m *MockStore) GetAttachment(ctx context.Context, attachmentID int64) (*db.SourceAttachment, error) {
	args := m.Called(ctx, attachmentID)
	return args.Get(0).(*db.SourceAttachment), args.Error(1)
}

func (m *MockStore) FindCrosspost(ctx context.Context, kind db.ObjectKind, sourceID int64, siteID int64) (*db.CrosspostMap, error) {
	args := m.Called(ctx, kind, sourceID, siteID)
	return args.Get(0).(*db.CrosspostMap), args.Error(1)
}

func (m *MockStore) AddCrosspost(ctx context.Context, kind db.ObjectKind, sourceID int64, siteID int64, destID int64, destURL string) error {
	args := m.Called(ctx, kind, sourceID, siteID, destID, destURL)
	return args.Error(0)
}

type MockDestinations struct {
	mock.Mock
}

func (m *MockDestinations) SiteID(ctx context.Context, dest model.Destination) (int64, error) {
	args := m.Called(ctx, dest)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDestinations) Client(ctx context.Context, dest model.Destination) (DestinationClient, error) {
	args := m.Called(ctx, dest)
	return args.Get(0).(DestinationClient), args.Error(1)
}

type MockDestinationClient struct {
	mock.Mock
}

func (m *MockDestinationClient) UploadMedia(ctx context.Context, fileName string, mimeType string, body io.Reader) (*wordpress.Media, error) {
	args := m.Called(ctx, fileName, mimeType, body)
	return args.Get(0).(*wordpress.Media), args.Error(1)
}

func (m *MockDestinationClient) FindProductBySKU(ctx context.Context, sku string) (int64, error) {
	args := m.Called(ctx, sku)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDestinationClient) CurrentUser(ctx context.Context) (*wordpress.User, error) {
	args := m.Called(ctx)
	return args.Get(0).(*wordpress.User), args.Error(1)
}

func (m *MockDestinationClient) Download(ctx context.Context, fileURL string) (io.ReadCloser, error) {
	args := m.Called(ctx, fileURL)
	return args.Get(0).(io.ReadCloser), args.Error(1)
}

type MockSecretGetter struct {
	mock.Mock
}

func (m *MockSecretGetter) GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error) {
	args := m.Called(ctx, *params.SecretId)
	return args.Get(0).(*secretsmanager.GetSecretValueOutput), args.Error(1)
}
