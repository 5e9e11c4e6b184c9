package service

import (
	"context"

	"github.com/truemediaorg/crosspostfields/database/db"
)

type ContentStore interface {
	GetPostType(ctx context.Context, postID int64) (string, error)
	GetTermTaxonomy(ctx context.Context, termID int64) (string, error)
	FindCrosspost(ctx context.Context, kind db.ObjectKind, sourceID int64, siteID int64) (*db.CrosspostMap, error)
}

// ContentService answers questions about source posts and terms and where they were crossposted.
type ContentService struct {
	store ContentStore
}

func NewContentService(store ContentStore) *ContentService {
	return &ContentService{store: store}
}

func (s *ContentService) PostType(ctx context.Context, id int64) (string, error) {
	return s.store.GetPostType(ctx, id)
}

func (s *ContentService) TermTaxonomy(ctx context.Context, id int64) (string, error) {
	return s.store.GetTermTaxonomy(ctx, id)
}

// CrosspostedID returns the post's ID on the site, or 0 if it hasn't been crossposted there.
func (s *ContentService) CrosspostedID(ctx context.Context, sourceID int64, siteID int64) (int64, error) {
	mapping, err := s.store.FindCrosspost(ctx, db.ObjectKindPost, sourceID, siteID)
	if err != nil || mapping == nil {
		return 0, err
	}
	return mapping.DestID, nil
}
