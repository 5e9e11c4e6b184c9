// Package crosspost hooks the field transcoder into the crosspost pipeline: it is
// handed each post or term payload right before it is sent to a destination site.
package crosspost

import (
	"context"
	"fmt"
	"sort"

	"github.com/truemediaorg/crosspostfields/model"
	"golang.org/x/exp/maps"

	log "github.com/sirupsen/logrus"
)

type FieldResolver interface {
	Available() bool
	Resolve(ctx context.Context, kind model.ContextKind, owner string, key string) (model.FieldDescriptor, bool)
}

type ValueTranscoder interface {
	Transcode(ctx context.Context, value any, field model.FieldDescriptor, dest model.Destination) (any, error)
}

// ObjectTypes tells which post type or taxonomy a source object belongs to.
type ObjectTypes interface {
	PostType(ctx context.Context, id int64) (string, error)
	TermTaxonomy(ctx context.Context, id int64) (string, error)
}

type Extension struct {
	fields     FieldResolver
	transcoder ValueTranscoder
	objects    ObjectTypes
}

func NewExtension(fields FieldResolver, transcoder ValueTranscoder, objects ObjectTypes) *Extension {
	return &Extension{
		fields:     fields,
		transcoder: transcoder,
		objects:    objects,
	}
}

// ProcessPostData is run on post payloads.
func (e *Extension) ProcessPostData(ctx context.Context, payload model.Payload, dest model.Destination) (model.Payload, error) {
	return e.process(ctx, model.ContextPostType, payload, dest)
}

// ProcessTermData is run on term payloads.
func (e *Extension) ProcessTermData(ctx context.Context, payload model.Payload, dest model.Destination) (model.Payload, error) {
	return e.process(ctx, model.ContextTaxonomy, payload, dest)
}

func (e *Extension) process(ctx context.Context, kind model.ContextKind, payload model.Payload, dest model.Destination) (model.Payload, error) {
	meta, ok := payload.Meta()
	if !ok {
		return payload, nil
	}
	if e.fields == nil || !e.fields.Available() {
		log.Debug("fields engine schema unavailable, passing payload through")
		return payload, nil
	}
	id := payload.ID()
	if id == 0 {
		return payload, nil
	}

	owner, err := e.owner(ctx, kind, id)
	if err != nil || owner == "" {
		log.WithField("id", id).WithField("context", kind).Warnf("unable to determine owner, passing payload through: %v", err)
		return payload, nil
	}

	// Sorted so the lookups (and any uploads they trigger) happen in a stable order
	keys := maps.Keys(meta)
	sort.Strings(keys)
	transcoded := maps.Clone(meta)
	for _, key := range keys {
		field, ok := e.fields.Resolve(ctx, kind, owner, key)
		if !ok {
			continue
		}
		value, err := e.transcoder.Transcode(ctx, meta[key], field, dest)
		if err != nil {
			// The payload's meta is only replaced once every field made it
			return payload, fmt.Errorf("transcoding %s %q for %s %d: %w", field.Type, key, owner, id, err)
		}
		log.WithField("key", key).WithField("type", field.Type).WithField("destination", dest.Handle).Debug("transcoded field")
		transcoded[key] = value
	}
	payload["meta"] = transcoded
	return payload, nil
}

func (e *Extension) owner(ctx context.Context, kind model.ContextKind, id int64) (string, error) {
	if kind == model.ContextTaxonomy {
		return e.objects.TermTaxonomy(ctx, id)
	}
	return e.objects.PostType(ctx, id)
}
