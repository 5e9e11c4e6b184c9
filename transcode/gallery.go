package transcode

import (
	"context"
	"strconv"
	"strings"

	"github.com/truemediaorg/crosspostfields/model"
)

// A gallery holds attachments either as a list of {id, url} records or as a
// comma-separated string of IDs. Attachments that don't resolve are left out.
func (t *Transcoder) transcodeGallery(ctx context.Context, value any, format model.ValueFormat, dest model.Destination) (any, error) {
	if format == model.ValueFormatURL {
		return value, nil
	}

	var sourceIDs []int64
	if format == model.ValueFormatBoth {
		records, _ := decodeRecords(value)
		for _, record := range records {
			sourceIDs = append(sourceIDs, record.ID)
		}
	} else {
		sourceIDs = decodeIDList(value)
	}

	uploads := make([]model.Attachment, 0, len(sourceIDs))
	for _, sourceID := range sourceIDs {
		upload, err := t.resolveAttachment(ctx, sourceID, dest)
		if err != nil {
			return nil, err
		}
		if upload != nil {
			uploads = append(uploads, *upload)
		}
	}

	if format == model.ValueFormatBoth {
		records := make([]map[string]any, 0, len(uploads))
		for _, upload := range uploads {
			records = append(records, upload.Record())
		}
		return records, nil
	}
	ids := make([]string, 0, len(uploads))
	for _, upload := range uploads {
		ids = append(ids, strconv.FormatInt(upload.ID, 10))
	}
	return strings.Join(ids, ","), nil
}
