package service

import (
	"context"

	"github.com/pkg/errors"
	"github.com/truemediaorg/crosspostfields/database/db"
	"github.com/truemediaorg/crosspostfields/model"

	log "github.com/sirupsen/logrus"
)

type AttachmentStore interface {
	GetAttachment(ctx context.Context, attachmentID int64) (*db.SourceAttachment, error)
	FindCrosspost(ctx context.Context, kind db.ObjectKind, sourceID int64, siteID int64) (*db.CrosspostMap, error)
	AddCrosspost(ctx context.Context, kind db.ObjectKind, sourceID int64, siteID int64, destID int64, destURL string) error
}

type Destinations interface {
	SiteID(ctx context.Context, dest model.Destination) (int64, error)
	Client(ctx context.Context, dest model.Destination) (DestinationClient, error)
}

type AttachmentService struct {
	store           AttachmentStore
	sites           Destinations
	testModeEnabled bool
}

func NewAttachmentService(store AttachmentStore, sites Destinations, isTestMode bool) *AttachmentService {
	return &AttachmentService{
		store:           store,
		sites:           sites,
		testModeEnabled: isTestMode,
	}
}

// CrosspostAttachment returns the destination copy of an attachment, uploading it
// first if it was never crossposted there. Returns nil if the source attachment is unknown.
func (s *AttachmentService) CrosspostAttachment(ctx context.Context, sourceID int64, dest model.Destination) (*model.Attachment, error) {
	siteID, err := s.sites.SiteID(ctx, dest)
	if err != nil {
		return nil, err
	}

	mapping, err := s.store.FindCrosspost(ctx, db.ObjectKindAttachment, sourceID, siteID)
	if err != nil {
		return nil, err
	}
	if mapping != nil {
		return &model.Attachment{ID: mapping.DestID, URL: mapping.DestURL}, nil
	}

	attachment, err := s.store.GetAttachment(ctx, sourceID)
	if err != nil {
		return nil, err
	}
	logger := log.WithField("attachmentID", sourceID).WithField("destination", dest.Handle)
	if attachment == nil {
		logger.Debug("attachment not found on source")
		return nil, nil
	}

	if s.testModeEnabled {
		logger.WithField("url", attachment.URL).Info("Simulating attachment upload")
		return nil, nil
	}

	client, err := s.sites.Client(ctx, dest)
	if err != nil {
		return nil, err
	}
	file, err := client.Download(ctx, attachment.URL)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	media, err := client.UploadMedia(ctx, attachment.FileName, attachment.MimeType, file)
	if err != nil {
		return nil, err
	}
	if media.ID <= 0 {
		return nil, errors.Errorf("upload of %s returned no id", attachment.FileName)
	}
	logger.WithField("destID", media.ID).Info("uploaded attachment")

	err = s.store.AddCrosspost(ctx, db.ObjectKindAttachment, sourceID, siteID, media.ID, media.SourceURL)
	if err != nil {
		logger.Warnf("Attachment uploaded as %d but wasn't recorded in the database", media.ID)
		return nil, err
	}
	return &model.Attachment{ID: media.ID, URL: media.SourceURL}, nil
}
