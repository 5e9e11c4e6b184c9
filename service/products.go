package service

import (
	"context"

	"github.com/truemediaorg/crosspostfields/database/db"
	"github.com/truemediaorg/crosspostfields/model"
)

type ProductStore interface {
	GetProductSKU(ctx context.Context, postID int64) (string, error)
	FindCrosspost(ctx context.Context, kind db.ObjectKind, sourceID int64, siteID int64) (*db.CrosspostMap, error)
}

// ProductService finds products on destinations, either because we crossposted them
// or because the destination has a product with the same SKU.
type ProductService struct {
	store ProductStore
	sites Destinations
}

func NewProductService(store ProductStore, sites Destinations) *ProductService {
	return &ProductService{
		store: store,
		sites: sites,
	}
}

func (s *ProductService) CrosspostedProductID(ctx context.Context, productID int64, dest model.Destination) (int64, error) {
	siteID, err := s.sites.SiteID(ctx, dest)
	if err != nil {
		return 0, err
	}
	mapping, err := s.store.FindCrosspost(ctx, db.ObjectKindPost, productID, siteID)
	if err != nil {
		return 0, err
	}
	if mapping != nil {
		return mapping.DestID, nil
	}

	sku, err := s.store.GetProductSKU(ctx, productID)
	if err != nil || sku == "" {
		return 0, err
	}
	client, err := s.sites.Client(ctx, dest)
	if err != nil {
		return 0, err
	}
	return client.FindProductBySKU(ctx, sku)
}
