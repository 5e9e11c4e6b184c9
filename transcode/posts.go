package transcode

import (
	"context"

	"github.com/truemediaorg/crosspostfields/model"
	"github.com/truemediaorg/crosspostfields/phpserial"

	log "github.com/sirupsen/logrus"
)

// A posts field holds one post ID or a list of them. The result keeps that shape:
// a single ID (0 if it didn't resolve) or the list of IDs that did resolve.
func (t *Transcoder) transcodePosts(ctx context.Context, value any, dest model.Destination) (any, error) {
	decoded := phpserial.MaybeUnserialize(value)
	items, isList := decodeSequence(decoded)
	if !isList {
		items = []any{decoded}
	}

	lookup := contentLookup{transcoder: t, dest: dest}
	crossposted := make([]int64, 0, len(items))
	for _, item := range items {
		sourceID, ok := decodeID(item)
		if !ok {
			continue
		}
		destID, err := lookup.resolve(ctx, sourceID)
		if err != nil {
			return nil, err
		}
		if destID > 0 {
			crossposted = append(crossposted, destID)
		}
	}

	if isList {
		return crossposted, nil
	}
	if len(crossposted) == 0 {
		return int64(0), nil
	}
	return crossposted[0], nil
}

// contentLookup resolves post references for one field value. The destination's
// site ID is only looked up once, and only if a reference needs it.
type contentLookup struct {
	transcoder *Transcoder
	dest       model.Destination
	siteID     int64
	resolved   bool
}

func (l *contentLookup) resolve(ctx context.Context, sourceID int64) (int64, error) {
	t := l.transcoder
	logger := log.WithField("postID", sourceID).WithField("destination", l.dest.Handle)

	postType, err := t.types.PostType(ctx, sourceID)
	if err != nil {
		if isFatal(err) {
			return 0, err
		}
		logger.Debugf("unable to look up post type: %v", err)
		return 0, nil
	}

	var destID int64
	if postType == model.ProductPostType && t.products != nil {
		destID, err = t.products.CrosspostedProductID(ctx, sourceID, l.dest)
	} else {
		if !l.resolved {
			if l.siteID, err = t.sites.SiteID(ctx, l.dest); err != nil {
				return 0, err
			}
			l.resolved = true
		}
		destID, err = t.content.CrosspostedID(ctx, sourceID, l.siteID)
	}
	if err != nil {
		if isFatal(err) {
			return 0, err
		}
		logger.Debugf("post not crossposted: %v", err)
		return 0, nil
	}
	return destID, nil
}
