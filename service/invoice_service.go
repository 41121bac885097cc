package service

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"html/template"
	"os"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"carpet-erp/models"
	"carpet-erp/utils"
)

//go:embed templates/invoice.html
var invoiceTemplateHTML string

var invoiceTemplate = template.Must(template.New("invoice").Funcs(template.FuncMap{
	"inr": utils.FormatINR,
	"qty": formatQuantity,
}).Parse(invoiceTemplateHTML))

// formatQuantity prints a measured quantity with at most 3 decimals and no
// trailing zeros
func formatQuantity(v float64) string {
	return decimal.NewFromFloat(v).Round(3).String()
}

// InvoiceService renders order invoices and archives them in Drive
type InvoiceService struct {
	orders      OrderServiceInterface
	drive       DriveServiceInterface
	folderID    string
	logoDataURI string
}

// NewInvoiceService creates a new InvoiceService. drive may be nil, in which
// case invoices are not archived.
func NewInvoiceService(orders OrderServiceInterface, drive DriveServiceInterface, folderID string, logoDataURI string) *InvoiceService {
	return &InvoiceService{
		orders:      orders,
		drive:       drive,
		folderID:    folderID,
		logoDataURI: logoDataURI,
	}
}

// Ensure InvoiceService implements InvoiceServiceInterface
var _ InvoiceServiceInterface = (*InvoiceService)(nil)

// invoiceBrowsers are tried after CHROME_PATH when printing invoices
var invoiceBrowsers = []string{
	"/usr/bin/chromium",
	"/usr/bin/chromium-browser",
	"/usr/bin/google-chrome",
	"/usr/bin/google-chrome-stable",
	"/snap/bin/chromium",
}

// pdfAllocatorOptions configures the headless browser for the first
// executable in browsers that exists. It also returns that path, or "" when
// chromedp should fall back to its own lookup.
func pdfAllocatorOptions(browsers ...string) ([]chromedp.ExecAllocatorOption, string) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:], chromedp.NoSandbox)
	for _, browser := range browsers {
		if browser == "" {
			continue
		}
		if _, err := os.Stat(browser); err == nil {
			return append(opts, chromedp.ExecPath(browser)), browser
		}
	}
	return opts, ""
}

// InvoiceFileName is the name an order's invoice is served and archived under
func InvoiceFileName(order models.Order) string {
	return fmt.Sprintf("invoice-%s.pdf", order.Reference)
}

// RenderInvoiceHTML renders the invoice for a stored order
func (s *InvoiceService) RenderInvoiceHTML(order *models.OrderResponse) (string, error) {
	templateData := struct {
		Order       models.Order
		Lines       []models.OrderLine
		LogoDataURI template.URL
	}{
		Order:       order.Order,
		Lines:       order.Lines,
		LogoDataURI: template.URL(s.logoDataURI),
	}

	var buf bytes.Buffer
	if err := invoiceTemplate.Execute(&buf, templateData); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}

// GenerateInvoicePDF renders an order's invoice to PDF with headless Chrome.
// The PDF is archived to Drive when a folder is configured; archive failures
// are logged and do not fail the download.
func (s *InvoiceService) GenerateInvoicePDF(ctx context.Context, orderID int64) ([]byte, string, error) {
	order, err := s.orders.Get(ctx, orderID)
	if err != nil {
		return nil, "", err
	}

	html, err := s.RenderInvoiceHTML(order)
	if err != nil {
		return nil, "", err
	}

	pdf, err := printHTMLToPDF(ctx, html)
	if err != nil {
		return nil, "", err
	}

	name := InvoiceFileName(order.Order)
	log.Printf("🧾 Generated invoice %s (%d bytes)", name, len(pdf))

	if s.drive != nil && s.folderID != "" {
		if fileID, err := s.drive.UploadPDF(ctx, s.folderID, name, pdf); err != nil {
			log.Printf("⚠️  Warning: Failed to archive invoice %s to Drive: %v", name, err)
		} else {
			log.Printf("✓ Archived invoice %s (file_id: %s)", name, fileID)
		}
	}

	return pdf, name, nil
}

// printHTMLToPDF loads html into a blank tab and prints it on A4
func printHTMLToPDF(ctx context.Context, html string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	opts, browser := pdfAllocatorOptions(append([]string{os.Getenv("CHROME_PATH")}, invoiceBrowsers...)...)
	log.Printf("🖨️ Printing invoice with browser=%q", browser)
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	defer allocCancel()

	chromedpCtx, chromedpCancel := chromedp.NewContext(allocCtx)
	defer chromedpCancel()

	var pdfBuf []byte
	err := chromedp.Run(chromedpCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, html).Do(ctx)
		}),
		chromedp.WaitReady("body"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			// A4 is 8.27" x 11.69"; margins come from the template CSS
			pdfBuf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.27).
				WithPaperHeight(11.69).
				WithMarginTop(0).
				WithMarginBottom(0).
				WithMarginLeft(0).
				WithMarginRight(0).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	return pdfBuf, nil
}
