package controller

import (
	"errors"
	"fmt"
	"net/http"

	log "github.com/sirupsen/logrus"

	"carpet-erp/models"
	"carpet-erp/repository"
	"carpet-erp/service"
)

// CatalogController handles HTTP requests for catalog records
type CatalogController struct {
	repository  repository.CatalogRepositoryInterface
	syncService service.CatalogSyncServiceInterface
}

// NewCatalogController creates a new CatalogController. syncService may be
// nil when no catalog sheet is configured.
func NewCatalogController(repo repository.CatalogRepositoryInterface, syncService service.CatalogSyncServiceInterface) *CatalogController {
	return &CatalogController{
		repository:  repo,
		syncService: syncService,
	}
}

// ListRecords handles GET /catalog?productType=carpet&search=kashan
func (c *CatalogController) ListRecords(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	query := r.URL.Query()
	var filters repository.CatalogFilterParams
	if v := query.Get("productType"); v != "" {
		filters.ProductType = &v
	}
	if v := query.Get("search"); v != "" {
		filters.Search = &v
	}

	records, err := c.repository.List(r.Context(), filters)
	if err != nil {
		log.Printf("❌ ListRecords: Error listing catalog: %v", err)
		http.Error(w, fmt.Sprintf("Failed to list catalog: %v", err), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, models.CatalogListResponse{Records: records}, "ListRecords")
}

// GetRecord handles GET /catalog/{id}
func (c *CatalogController) GetRecord(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id, tail := pathID(r.URL.Path, "/catalog/")
	if id == "" || tail != "" {
		http.Error(w, "Catalog id is required", http.StatusBadRequest)
		return
	}

	record, err := c.repository.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			http.Error(w, "Catalog record not found", http.StatusNotFound)
			return
		}
		http.Error(w, fmt.Sprintf("Failed to get catalog record: %v", err), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, record, "GetRecord")
}

// Sync handles POST /catalog/sync
// Example response:
// {
//   "inserted": 12,
//   "updated": 3,
//   "skipped": 1,
//   "total": 16
// }
func (c *CatalogController) Sync(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 Sync: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if c.syncService == nil {
		http.Error(w, "Catalog sheet is not configured", http.StatusServiceUnavailable)
		return
	}

	stats, err := c.syncService.SyncCatalog(r.Context())
	if err != nil {
		log.Printf("❌ Sync: Error syncing catalog: %v", err)
		http.Error(w, fmt.Sprintf("Failed to sync catalog: %v", err), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, stats, "Sync")
}
