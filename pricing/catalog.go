package pricing

import (
	"context"
	"fmt"

	"carpet-erp/models"
)

// ProductCatalogLookup is the read-only catalog the engine selects products from
type ProductCatalogLookup interface {
	GetByID(ctx context.Context, id string) (*models.CatalogRecord, error)
}

// SelectProduct looks up a product, resolves its dimensions and returns a
// fresh line item for it. An empty productType falls back to the record's own.
func SelectProduct(ctx context.Context, catalog ProductCatalogLookup, productID string, productType ProductType) (LineItem, error) {
	record, err := catalog.GetByID(ctx, productID)
	if err != nil {
		return LineItem{}, fmt.Errorf("failed to look up product %s: %w", productID, err)
	}
	if productType == "" {
		productType, err = ParseProductType(record.ProductType)
		if err != nil {
			return LineItem{}, fmt.Errorf("product %s: %w", productID, err)
		}
	}
	return NewLineItem(record.ID, Resolve(*record, productType)), nil
}
