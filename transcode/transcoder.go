// Package transcode rewrites fields engine meta values that point at other objects
// (attachments, galleries, related posts) so they point at the crossposted copies
// on the destination site.
package transcode

import (
	"context"
	"errors"

	"github.com/truemediaorg/crosspostfields/model"

	log "github.com/sirupsen/logrus"
)

// AttachmentCrossposter returns the destination copy of a source attachment, creating
// it if needed. A nil attachment means there is no copy and none could be made.
type AttachmentCrossposter interface {
	CrosspostAttachment(ctx context.Context, sourceID int64, dest model.Destination) (*model.Attachment, error)
}

// ContentMapper returns the destination ID of an already crossposted post, or 0.
type ContentMapper interface {
	CrosspostedID(ctx context.Context, sourceID int64, siteID int64) (int64, error)
}

// ProductMapper is the commerce-aware version of ContentMapper.
type ProductMapper interface {
	CrosspostedProductID(ctx context.Context, productID int64, dest model.Destination) (int64, error)
}

type ContentTypes interface {
	PostType(ctx context.Context, id int64) (string, error)
}

type SiteResolver interface {
	SiteID(ctx context.Context, dest model.Destination) (int64, error)
}

type Transcoder struct {
	attachments AttachmentCrossposter
	content     ContentMapper
	types       ContentTypes
	sites       SiteResolver
	products    ProductMapper
}

// NewTranscoder takes a nil products when the commerce integration isn't present;
// product references then go through the generic content lookup.
func NewTranscoder(attachments AttachmentCrossposter, content ContentMapper, types ContentTypes, sites SiteResolver, products ProductMapper) *Transcoder {
	return &Transcoder{
		attachments: attachments,
		content:     content,
		types:       types,
		sites:       sites,
		products:    products,
	}
}

// Transcode returns value rewritten for dest according to field. Field types that
// don't reference other objects come back untouched. The only error is a destination
// that can't be used at all; references that don't resolve are encoded as absent.
func (t *Transcoder) Transcode(ctx context.Context, value any, field model.FieldDescriptor, dest model.Destination) (any, error) {
	switch field.Type {
	case model.FieldTypeMedia:
		return t.transcodeMedia(ctx, value, field.ValueFormat, dest)
	case model.FieldTypeGallery:
		return t.transcodeGallery(ctx, value, field.ValueFormat, dest)
	case model.FieldTypePosts:
		return t.transcodePosts(ctx, value, dest)
	default:
		// FieldTypeOther
		return value, nil
	}
}

// resolveAttachment returns nil for anything that didn't make it to the destination.
func (t *Transcoder) resolveAttachment(ctx context.Context, sourceID int64, dest model.Destination) (*model.Attachment, error) {
	if sourceID <= 0 {
		return nil, nil
	}
	upload, err := t.attachments.CrosspostAttachment(ctx, sourceID, dest)
	if err != nil {
		if isFatal(err) {
			return nil, err
		}
		log.WithField("attachmentID", sourceID).WithField("destination", dest.Handle).Debugf("attachment not crossposted: %v", err)
		return nil, nil
	}
	if upload == nil || upload.ID <= 0 {
		return nil, nil
	}
	return upload, nil
}

func isFatal(err error) bool {
	return errors.Is(err, model.ErrDestinationInvalid)
}
