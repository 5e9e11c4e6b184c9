package transcode

import (
	"context"

	"github.com/truemediaorg/crosspostfields/model"
)

// A media field holds one attachment: an ID, an {id, url} record, or a URL.
// URLs work on any site, so only the other two formats are rewritten.
func (t *Transcoder) transcodeMedia(ctx context.Context, value any, format model.ValueFormat, dest model.Destination) (any, error) {
	if format == model.ValueFormatURL {
		return value, nil
	}

	var sourceID int64
	if format == model.ValueFormatBoth {
		record, _ := decodeRecord(value)
		sourceID = record.ID
	} else {
		sourceID, _ = decodeID(value)
	}

	upload, err := t.resolveAttachment(ctx, sourceID, dest)
	if err != nil {
		return nil, err
	}

	if format == model.ValueFormatBoth {
		if upload == nil {
			return map[string]any{}, nil
		}
		return upload.Record(), nil
	}
	if upload == nil {
		return int64(0), nil
	}
	return upload.ID, nil
}
