package service

import (
	"context"

	"carpet-erp/models"
)

// SheetsServiceInterface defines the contract for reading spreadsheet ranges
type SheetsServiceInterface interface {
	ReadRows(ctx context.Context, spreadsheetID string, readRange string) ([][]interface{}, error)
}

// CatalogSyncServiceInterface defines the contract for catalog imports
type CatalogSyncServiceInterface interface {
	// SyncCatalog imports every sheet row with an id: inserted = new records,
	// updated = records that already existed, skipped = rows without an id
	// or with an unknown product type, total = data rows seen.
	SyncCatalog(ctx context.Context) (*models.CatalogSyncResponse, error)
}
