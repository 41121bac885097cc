package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strconv"

	log "github.com/sirupsen/logrus"

	"carpet-erp/app/controller"
	"carpet-erp/app/router"
	"carpet-erp/db"
	"carpet-erp/repository"
	"carpet-erp/service"
)

const (
	defaultGSTPercent   = 12.0
	defaultCatalogRange = "Catalog!A:L"
)

// gstPercent reads GST_PERCENT, falling back to the standard carpet rate
func gstPercent() (float64, error) {
	v := os.Getenv("GST_PERCENT")
	if v == "" {
		return defaultGSTPercent, nil
	}
	pct, err := strconv.ParseFloat(v, 64)
	if err != nil || pct < 0 || pct > 100 {
		return 0, fmt.Errorf("GST_PERCENT must be a number between 0 and 100, got %q", v)
	}
	return pct, nil
}

// newNotifier picks the webhook notifier when ALERT_WEBHOOK_URL is set
func newNotifier() service.Notifier {
	if url := os.Getenv("ALERT_WEBHOOK_URL"); url != "" {
		log.Printf("📣 Stock alerts will be posted to %s", url)
		return service.NewWebhookNotifier(url)
	}
	log.Warn("ALERT_WEBHOOK_URL is not set, stock alerts will only be logged")
	return service.LogNotifier{}
}

// Initialize initializes the application
func Initialize(ctx context.Context) error {
	// Initialize database connection
	if err := db.InitDB(); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	if err := db.Migrate(ctx); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	gst, err := gstPercent()
	if err != nil {
		return err
	}

	// Initialize repositories
	catalogRepo := repository.NewCatalogRepository()
	orderRepo := repository.NewOrderRepository()

	// Google integrations are optional
	credentialsPath := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS")

	var syncService service.CatalogSyncServiceInterface
	if sheetID := os.Getenv("CATALOG_SHEET_ID"); sheetID != "" && credentialsPath != "" {
		sheetsService, err := service.NewSheetsService(ctx, credentialsPath)
		if err != nil {
			return err
		}
		readRange := os.Getenv("CATALOG_SHEET_RANGE")
		if readRange == "" {
			readRange = defaultCatalogRange
		}
		syncService = service.NewCatalogSyncService(sheetsService, catalogRepo, sheetID, readRange)
	} else {
		log.Warn("CATALOG_SHEET_ID or GOOGLE_APPLICATION_CREDENTIALS is not set, catalog sync is disabled")
	}

	var driveService service.DriveServiceInterface
	folderID := os.Getenv("INVOICE_DRIVE_FOLDER_ID")
	if folderID != "" && credentialsPath != "" {
		ds, err := service.NewDriveService(ctx, credentialsPath)
		if err != nil {
			return err
		}
		driveService = ds
	} else {
		log.Warn("INVOICE_DRIVE_FOLDER_ID or GOOGLE_APPLICATION_CREDENTIALS is not set, invoices will not be archived")
	}

	logoDataURI := ""
	if logoPath := os.Getenv("INVOICE_LOGO_PATH"); logoPath != "" {
		if logoDataURI, err = service.LoadLogoDataURI(logoPath); err != nil {
			log.Printf("⚠️  Warning: Failed to load invoice logo: %v", err)
		}
	}

	// Initialize services
	alertService := service.NewStockAlertService(newNotifier())
	orderService := service.NewOrderService(catalogRepo, orderRepo, alertService, gst)
	invoiceService := service.NewInvoiceService(orderService, driveService, folderID, logoDataURI)

	// Create controllers
	controllers := &router.Controllers{
		Pricing: controller.NewPricingController(catalogRepo),
		Order:   controller.NewOrderController(orderService, invoiceService),
		Catalog: controller.NewCatalogController(catalogRepo, syncService),
	}

	// Setup routes using standard http router
	router.SetupRoutes(http.DefaultServeMux, controllers)

	log.Printf("✓ Application initialized (GST %.2f%%)", gst)
	return nil
}
