package schema

import (
	"context"

	"github.com/truemediaorg/crosspostfields/model"

	log "github.com/sirupsen/logrus"
)

// FieldSource is whatever knows the fields engine's schema.
type FieldSource interface {
	FieldsForContext(ctx context.Context, kind model.ContextKind, owner string) ([]model.FieldDescriptor, error)
}

type Resolver struct {
	source FieldSource
}

// NewResolver accepts a nil source, meaning the fields engine isn't available and
// nothing will resolve.
func NewResolver(source FieldSource) *Resolver {
	return &Resolver{source: source}
}

func (r *Resolver) Available() bool {
	return r != nil && r.source != nil
}

// Resolve finds the field declared for owner whose name is exactly key.
// Not finding one is normal: most meta keys aren't fields engine fields.
func (r *Resolver) Resolve(ctx context.Context, kind model.ContextKind, owner string, key string) (model.FieldDescriptor, bool) {
	if !r.Available() || owner == "" {
		return model.FieldDescriptor{}, false
	}
	fields, err := r.source.FieldsForContext(ctx, kind, owner)
	if err != nil {
		log.WithField("context", kind).WithField("owner", owner).Debugf("unable to load fields: %v", err)
		return model.FieldDescriptor{}, false
	}
	for _, field := range fields {
		if field.Name == key {
			return field, true
		}
	}
	return model.FieldDescriptor{}, false
}
