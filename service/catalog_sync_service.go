package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"

	"carpet-erp/metrics"
	"carpet-erp/models"
	"carpet-erp/pricing"
	"carpet-erp/repository"
)

// CatalogSyncService imports the catalog sheet into PostgreSQL
// Implements CatalogSyncServiceInterface
type CatalogSyncService struct {
	sheets        SheetsServiceInterface
	repository    repository.CatalogRepositoryInterface
	spreadsheetID string
	readRange     string
}

// NewCatalogSyncService creates a new CatalogSyncService
func NewCatalogSyncService(sheets SheetsServiceInterface, repo repository.CatalogRepositoryInterface, spreadsheetID string, readRange string) *CatalogSyncService {
	return &CatalogSyncService{
		sheets:        sheets,
		repository:    repo,
		spreadsheetID: spreadsheetID,
		readRange:     readRange,
	}
}

// Ensure CatalogSyncService implements CatalogSyncServiceInterface
var _ CatalogSyncServiceInterface = (*CatalogSyncService)(nil)

// headerAliases maps normalized sheet headers to catalog columns
var headerAliases = map[string]string{
	"id":                        "id",
	"sku":                       "id",
	"product_id":                "id",
	"name":                      "name",
	"product_name":              "name",
	"type":                      "product_type",
	"product_type":              "product_type",
	"unit":                      "unit",
	"width":                     "width",
	"width_cm":                  "width",
	"height":                    "height",
	"length":                    "height",
	"height_cm":                 "height",
	"weight":                    "weight",
	"weight_kg":                 "weight",
	"gsm":                       "gsm",
	"denier":                    "denier",
	"thread_count":              "thread_count",
	"threadcount":               "thread_count",
	"stock":                     "stock",
	"individual_stock_tracking": "individual_stock_tracking",
	"track_individually":        "individual_stock_tracking",
}

func normalizeHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	h = strings.NewReplacer(" ", "_", "-", "_", "(", "", ")", "").Replace(h)
	return h
}

// ParseCatalogRows turns sheet rows into catalog records. The first row is the
// header. Dimension cells are kept as the raw text the sheet shows; pricing
// resolves them later. Returns the records and the number of skipped rows.
func ParseCatalogRows(rows [][]interface{}) ([]models.CatalogRecord, int, error) {
	if len(rows) == 0 {
		return nil, 0, fmt.Errorf("sheet is empty")
	}

	columns := make(map[string]int)
	for i, h := range rows[0] {
		if col, ok := headerAliases[normalizeHeader(fmt.Sprint(h))]; ok {
			if _, seen := columns[col]; !seen {
				columns[col] = i
			}
		}
	}
	if _, ok := columns["id"]; !ok {
		return nil, 0, fmt.Errorf("sheet has no id column")
	}

	cell := func(row []interface{}, col string) string {
		i, ok := columns[col]
		if !ok || i >= len(row) || row[i] == nil {
			return ""
		}
		return strings.TrimSpace(fmt.Sprint(row[i]))
	}
	dimension := func(row []interface{}, col string) any {
		if v := cell(row, col); v != "" {
			return v
		}
		return nil
	}

	var records []models.CatalogRecord
	skipped := 0
	for n, row := range rows[1:] {
		id := cell(row, "id")
		if id == "" {
			skipped++
			continue
		}

		productType, err := pricing.ParseProductType(strings.ToLower(cell(row, "product_type")))
		if err != nil {
			log.Printf("⏭️  Skipping sheet row %d (%s): %v", n+2, id, err)
			skipped++
			continue
		}

		name := cell(row, "name")
		if name == "" {
			name = id
		}

		records = append(records, models.CatalogRecord{
			ID:                      id,
			Name:                    name,
			ProductType:             string(productType),
			Unit:                    strings.ToLower(cell(row, "unit")),
			Width:                   dimension(row, "width"),
			Height:                  dimension(row, "height"),
			Weight:                  dimension(row, "weight"),
			GSM:                     dimension(row, "gsm"),
			Denier:                  dimension(row, "denier"),
			ThreadCount:             dimension(row, "thread_count"),
			Stock:                   parseStock(cell(row, "stock")),
			IndividualStockTracking: parseFlag(cell(row, "individual_stock_tracking")),
		})
	}

	return records, skipped, nil
}

func parseStock(s string) float64 {
	s = strings.ReplaceAll(s, ",", "")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

func parseFlag(s string) bool {
	switch strings.ToLower(s) {
	case "true", "yes", "y", "1", "x":
		return true
	}
	return false
}

// SyncCatalog reads the configured sheet range and upserts every record
func (s *CatalogSyncService) SyncCatalog(ctx context.Context) (*models.CatalogSyncResponse, error) {
	log.Printf("🔄 Starting catalog sync from sheet %s range %s", s.spreadsheetID, s.readRange)

	rows, err := s.sheets.ReadRows(ctx, s.spreadsheetID, s.readRange)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog sheet: %w", err)
	}

	records, skipped, err := ParseCatalogRows(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to parse catalog sheet: %w", err)
	}
	log.Printf("📦 Processing %d catalog records from sheet (%d skipped)", len(records), skipped)

	inserted, updated := 0, 0
	if len(records) > 0 {
		inserted, updated, err = s.repository.Upsert(ctx, records)
		if err != nil {
			return nil, fmt.Errorf("failed to store catalog records: %w", err)
		}
	}

	metrics.CatalogRecordsSynced.WithLabelValues("inserted").Add(float64(inserted))
	metrics.CatalogRecordsSynced.WithLabelValues("updated").Add(float64(updated))
	metrics.CatalogRecordsSynced.WithLabelValues("skipped").Add(float64(skipped))

	stats := &models.CatalogSyncResponse{
		Inserted: inserted,
		Updated:  updated,
		Skipped:  skipped,
		Total:    len(rows) - 1,
	}
	log.Printf("🎉 Catalog sync completed: %d inserted, %d updated, %d skipped, %d total", inserted, updated, skipped, stats.Total)
	return stats, nil
}
