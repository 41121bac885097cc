package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"

	"carpet-erp/db"
	"carpet-erp/models"
)

// CatalogRepository handles database operations for catalog records
type CatalogRepository struct{}

// NewCatalogRepository creates a new CatalogRepository
func NewCatalogRepository() *CatalogRepository {
	return &CatalogRepository{}
}

// Ensure CatalogRepository implements CatalogRepositoryInterface
var _ CatalogRepositoryInterface = (*CatalogRepository)(nil)

const catalogColumns = `id, name, product_type, unit, width, height, weight, gsm, denier, thread_count,
		       stock, individual_stock_tracking, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCatalogRecord(row rowScanner) (*models.CatalogRecord, error) {
	var rec models.CatalogRecord
	var width, height, weight, gsm, denier, threadCount sql.NullString
	err := row.Scan(
		&rec.ID,
		&rec.Name,
		&rec.ProductType,
		&rec.Unit,
		&width,
		&height,
		&weight,
		&gsm,
		&denier,
		&threadCount,
		&rec.Stock,
		&rec.IndividualStockTracking,
		&rec.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	rec.Width = nullableText(width)
	rec.Height = nullableText(height)
	rec.Weight = nullableText(weight)
	rec.GSM = nullableText(gsm)
	rec.Denier = nullableText(denier)
	rec.ThreadCount = nullableText(threadCount)
	return &rec, nil
}

type rowIterator interface {
	rowScanner
	Next() bool
	Err() error
}

// scanCatalogRecords reads every row; one bad row fails the whole listing
func scanCatalogRecords(rows rowIterator) ([]models.CatalogRecord, error) {
	records := []models.CatalogRecord{}
	for rows.Next() {
		rec, err := scanCatalogRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan catalog record: %w", err)
		}
		records = append(records, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate catalog records: %w", err)
	}
	return records, nil
}

// nullableText keeps the raw column text; the pricing resolver parses it
func nullableText(s sql.NullString) any {
	if !s.Valid {
		return nil
	}
	return s.String
}

// dimensionText turns a loosely typed dimension into the text stored in the catalog
func dimensionText(v any) sql.NullString {
	switch t := v.(type) {
	case nil:
		return sql.NullString{}
	case string:
		if strings.TrimSpace(t) == "" {
			return sql.NullString{}
		}
		return sql.NullString{String: t, Valid: true}
	case float64:
		return sql.NullString{String: strconv.FormatFloat(t, 'f', -1, 64), Valid: true}
	case int:
		return sql.NullString{String: strconv.Itoa(t), Valid: true}
	default:
		return sql.NullString{String: fmt.Sprint(t), Valid: true}
	}
}

// GetByID retrieves a catalog record by its id
func (r *CatalogRepository) GetByID(ctx context.Context, id string) (*models.CatalogRecord, error) {
	log.Printf("🔍 GetByID: Fetching catalog record id=%s", id)

	query := `SELECT ` + catalogColumns + ` FROM catalog_records WHERE id = $1`

	rec, err := scanCatalogRecord(db.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Printf("❌ GetByID: Catalog record not found: id=%s", id)
			return nil, fmt.Errorf("catalog record %s: %w", id, ErrNotFound)
		}
		log.Printf("❌ GetByID: Error fetching catalog record: %v", err)
		return nil, fmt.Errorf("failed to get catalog record: %w", err)
	}

	return rec, nil
}

// List retrieves catalog records matching the provided filters
func (r *CatalogRepository) List(ctx context.Context, filters CatalogFilterParams) ([]models.CatalogRecord, error) {
	log.Printf("🔍 Listing catalog records with filters: productType=%v, search=%v", filters.ProductType, filters.Search)

	query := `SELECT ` + catalogColumns + ` FROM catalog_records`

	var conditions []string
	var args []any
	argIndex := 1

	if filters.ProductType != nil && *filters.ProductType != "" {
		conditions = append(conditions, fmt.Sprintf("product_type = $%d", argIndex))
		args = append(args, *filters.ProductType)
		argIndex++
	}

	if filters.Search != nil && strings.TrimSpace(*filters.Search) != "" {
		conditions = append(conditions, fmt.Sprintf("(name ILIKE $%d OR id ILIKE $%d)", argIndex, argIndex))
		args = append(args, "%"+strings.TrimSpace(*filters.Search)+"%")
		argIndex++
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY name ASC, id ASC"

	rows, err := db.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Printf("❌ Error listing catalog records: %v", err)
		return nil, fmt.Errorf("failed to list catalog records: %w", err)
	}
	defer rows.Close()

	records, err := scanCatalogRecords(rows)
	if err != nil {
		log.Printf("❌ Error reading catalog records: %v", err)
		return nil, err
	}

	log.Printf("✓ Successfully listed %d catalog records", len(records))
	return records, nil
}

// Upsert inserts or updates catalog records in one transaction
func (r *CatalogRepository) Upsert(ctx context.Context, records []models.CatalogRecord) (int, int, error) {
	log.Printf("📦 Upsert: Writing %d catalog records", len(records))

	tx, err := db.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Printf("❌ Error starting transaction: %v", err)
		return 0, 0, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	// xmax is 0 only for freshly inserted rows
	queryUpsert := `
		INSERT INTO catalog_records (id, name, product_type, unit, width, height, weight, gsm, denier, thread_count,
		                             stock, individual_stock_tracking, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW())
		ON CONFLICT (id)
		DO UPDATE SET
			name = EXCLUDED.name,
			product_type = EXCLUDED.product_type,
			unit = EXCLUDED.unit,
			width = EXCLUDED.width,
			height = EXCLUDED.height,
			weight = EXCLUDED.weight,
			gsm = EXCLUDED.gsm,
			denier = EXCLUDED.denier,
			thread_count = EXCLUDED.thread_count,
			stock = EXCLUDED.stock,
			individual_stock_tracking = EXCLUDED.individual_stock_tracking,
			updated_at = NOW()
		RETURNING (xmax = 0) AS inserted
	`

	var inserted, updated int
	for _, rec := range records {
		var wasInserted bool
		err := tx.QueryRowContext(ctx, queryUpsert,
			rec.ID,
			rec.Name,
			rec.ProductType,
			rec.Unit,
			dimensionText(rec.Width),
			dimensionText(rec.Height),
			dimensionText(rec.Weight),
			dimensionText(rec.GSM),
			dimensionText(rec.Denier),
			dimensionText(rec.ThreadCount),
			rec.Stock,
			rec.IndividualStockTracking,
		).Scan(&wasInserted)
		if err != nil {
			log.Printf("❌ Error upserting catalog record %s: %v", rec.ID, err)
			return 0, 0, fmt.Errorf("failed to upsert catalog record %s: %w", rec.ID, err)
		}
		if wasInserted {
			inserted++
		} else {
			updated++
		}
	}

	if err := tx.Commit(); err != nil {
		log.Printf("❌ Error committing transaction: %v", err)
		return 0, 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.Printf("✓ Successfully upserted catalog records: %d inserted, %d updated", inserted, updated)
	return inserted, updated, nil
}
