package service

import (
	"context"
	"fmt"
	"io"

	"harborsync/internal/model"
	"harborsync/internal/repository"
)

// Report is a read-only verification dump of the persisted snapshot:
// every invoice, categories by total cost descending, line items by
// line total descending.
type Report struct {
	Invoices   []model.Invoice         `json:"invoices"`
	Categories []model.InvoiceCategory `json:"categories"`
	LineItems  []model.InvoiceLineItem `json:"line_items"`
}

type ReportService interface {
	BuildReport(ctx context.Context) (*Report, error)
	BuildInvoiceReport(ctx context.Context, documentID string) (*Report, error)
	ListInvoices(ctx context.Context, page, limit int) ([]model.Invoice, int64, error)
	GetInvoice(ctx context.Context, documentID string) (*model.Invoice, error)
	ListRuns(ctx context.Context, page, limit int) ([]model.IngestRun, int64, error)
}

type reportService struct {
	invoiceRepo  repository.InvoiceRepository
	categoryRepo repository.CategoryRepository
	lineItemRepo repository.LineItemRepository
	runRepo      repository.IngestRunRepository
}

func NewReportService(
	invoiceRepo repository.InvoiceRepository,
	categoryRepo repository.CategoryRepository,
	lineItemRepo repository.LineItemRepository,
	runRepo repository.IngestRunRepository,
) ReportService {
	return &reportService{
		invoiceRepo:  invoiceRepo,
		categoryRepo: categoryRepo,
		lineItemRepo: lineItemRepo,
		runRepo:      runRepo,
	}
}

func (s *reportService) BuildReport(ctx context.Context) (*Report, error) {
	invoices, _, err := s.invoiceRepo.List(ctx, 1, 1000)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}

	categories, err := s.categoryRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	lineItems, err := s.lineItemRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list line items: %w", err)
	}

	return &Report{Invoices: invoices, Categories: categories, LineItems: lineItems}, nil
}

func (s *reportService) BuildInvoiceReport(ctx context.Context, documentID string) (*Report, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("invoice %s: %w", documentID, err)
	}

	categories, err := s.categoryRepo.ListByInvoice(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("invoice %s: list categories: %w", documentID, err)
	}

	lineItems, err := s.lineItemRepo.ListByInvoice(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("invoice %s: list line items: %w", documentID, err)
	}

	return &Report{
		Invoices:   []model.Invoice{*invoice},
		Categories: categories,
		LineItems:  lineItems,
	}, nil
}

func (s *reportService) ListInvoices(ctx context.Context, page, limit int) ([]model.Invoice, int64, error) {
	return s.invoiceRepo.List(ctx, page, limit)
}

func (s *reportService) GetInvoice(ctx context.Context, documentID string) (*model.Invoice, error) {
	return s.invoiceRepo.FindByIDWithChildren(ctx, documentID)
}

func (s *reportService) ListRuns(ctx context.Context, page, limit int) ([]model.IngestRun, int64, error) {
	return s.runRepo.List(ctx, page, limit)
}

// RenderReport writes the human-readable verification dump.
func RenderReport(w io.Writer, report *Report) {
	fmt.Fprintf(w, "\n=== Snapshot Contents ===\n")

	fmt.Fprintf(w, "\nInvoices found: %d\n", len(report.Invoices))
	for _, inv := range report.Invoices {
		fmt.Fprintf(w, "Invoice %s: %s - %s - $%s\n",
			inv.DocumentID, inv.DocumentType, inv.BillToName, inv.InvoiceTotal.StringFixed(2))
	}

	fmt.Fprintf(w, "\nCategories found: %d\n", len(report.Categories))
	for _, cat := range report.Categories {
		fmt.Fprintf(w, "Invoice %s: %s - %d items - $%s\n",
			cat.InvoiceID, cat.CategoryName, cat.ItemCount, cat.TotalCost.StringFixed(2))
	}

	fmt.Fprintf(w, "\nLine items found: %d\n", len(report.LineItems))
	for _, item := range report.LineItems {
		description := "(no description)"
		if item.ItemDescription != nil {
			description = *item.ItemDescription
		}
		srp := "-"
		if item.SRP != nil {
			srp = "$" + item.SRP.StringFixed(2)
		}
		fmt.Fprintf(w, "Invoice %s: %s - %s - $%s x %d (SRP: %s) = $%s\n",
			item.InvoiceID, item.ItemID, description,
			item.UnitPrice.StringFixed(2), item.Quantity, srp, item.LineTotal.StringFixed(2))
	}
}
