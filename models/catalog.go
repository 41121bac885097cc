package models

// CatalogRecord is a product or raw material as it comes from the catalog.
// Dimension fields are loosely typed: they hold whatever the source had,
// a number, a decorated string such as "120 cm", or nil.
type CatalogRecord struct {
	ID                      string  `json:"id"`
	Name                    string  `json:"name"`
	ProductType             string  `json:"productType"` // carpet or raw_material
	Unit                    string  `json:"unit"`
	Width                   any     `json:"width,omitempty"`
	Height                  any     `json:"height,omitempty"`
	Weight                  any     `json:"weight,omitempty"`
	GSM                     any     `json:"gsm,omitempty"`
	Denier                  any     `json:"denier,omitempty"`
	ThreadCount             any     `json:"threadCount,omitempty"`
	Stock                   float64 `json:"stock"`
	IndividualStockTracking bool    `json:"individualStockTracking"`
	UpdatedAt               string  `json:"updatedAt,omitempty"`
}

// CatalogListResponse represents the response for listing catalog records
type CatalogListResponse struct {
	Records []CatalogRecord `json:"records"`
}

// CatalogSyncResponse represents the result of a catalog import
// Example response:
// {
//   "inserted": 12,
//   "updated": 3,
//   "skipped": 1,
//   "total": 16
// }
type CatalogSyncResponse struct {
	Inserted int `json:"inserted"`
	Updated  int `json:"updated"`
	Skipped  int `json:"skipped"`
	Total    int `json:"total"`
}
