package service

import (
	"context"
	"fmt"
	"time"

	"harborsync/internal/harbor"
	"harborsync/internal/model"
	"harborsync/internal/repository"

	"github.com/rs/zerolog"
)

// VendorClient is the subset of the vendor API the ingestion needs.
type VendorClient interface {
	GetDocumentHeader(ctx context.Context, documentID string) (harbor.DocumentHeader, error)
	GetLineItems(ctx context.Context, documentID string) (harbor.LineItemsResponse, error)
	GetCategories(ctx context.Context, documentID string) (harbor.CategoryMap, error)
	GetItems(ctx context.Context, itemIDs []string) (harbor.ItemsResponse, error)
}

// DocumentBundle holds the four raw payloads for one document,
// assembled in memory before anything is written.
type DocumentBundle struct {
	DocumentID string
	Header     harbor.DocumentHeader
	Categories harbor.CategoryMap
	LineItems  harbor.LineItemsResponse
	Items      harbor.ItemsResponse
}

type IngestService interface {
	// FetchDocument pulls the header, categories, line items, and item
	// details for one document. Any transport failure aborts with no
	// partial result.
	FetchDocument(ctx context.Context, documentID string) (*DocumentBundle, error)
	// Ingest normalizes the bundle and replaces the document's snapshot
	// (document row, category rows, line-item rows) in one transaction.
	Ingest(ctx context.Context, bundle *DocumentBundle) error
	// Run performs one full fetch-and-ingest for a document and records
	// the attempt in the run history.
	Run(ctx context.Context, documentID string) error
}

type ingestService struct {
	client       VendorClient
	invoiceRepo  repository.InvoiceRepository
	categoryRepo repository.CategoryRepository
	lineItemRepo repository.LineItemRepository
	runRepo      repository.IngestRunRepository
	txManager    repository.TransactionManager
	log          zerolog.Logger
}

func NewIngestService(
	client VendorClient,
	invoiceRepo repository.InvoiceRepository,
	categoryRepo repository.CategoryRepository,
	lineItemRepo repository.LineItemRepository,
	runRepo repository.IngestRunRepository,
	txManager repository.TransactionManager,
	log zerolog.Logger,
) IngestService {
	return &ingestService{
		client:       client,
		invoiceRepo:  invoiceRepo,
		categoryRepo: categoryRepo,
		lineItemRepo: lineItemRepo,
		runRepo:      runRepo,
		txManager:    txManager,
		log:          log,
	}
}

func (s *ingestService) FetchDocument(ctx context.Context, documentID string) (*DocumentBundle, error) {
	header, err := s.client.GetDocumentHeader(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("document %s: fetch header: %w", documentID, err)
	}

	categories, err := s.client.GetCategories(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("document %s: fetch categories: %w", documentID, err)
	}

	lineItems, err := s.client.GetLineItems(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("document %s: fetch line items: %w", documentID, err)
	}

	itemIDs := collectItemIDs(lineItems)
	if len(itemIDs) < len(lineItems.Value) {
		s.log.Warn().
			Str("document_id", documentID).
			Int("lines", len(lineItems.Value)).
			Int("item_ids", len(itemIDs)).
			Msg("some line items carry no item id")
	}

	items, err := s.client.GetItems(ctx, itemIDs)
	if err != nil {
		return nil, fmt.Errorf("document %s: fetch item details: %w", documentID, err)
	}

	return &DocumentBundle{
		DocumentID: documentID,
		Header:     header,
		Categories: categories,
		LineItems:  lineItems,
		Items:      items,
	}, nil
}

func (s *ingestService) Ingest(ctx context.Context, bundle *DocumentBundle) error {
	invoice, err := buildInvoice(bundle)
	if err != nil {
		return fmt.Errorf("document %s: %w", bundle.DocumentID, err)
	}

	categories := buildCategoryRows(invoice.DocumentID, bundle.Categories)
	lineItems := buildLineItemRows(invoice.DocumentID, bundle.LineItems, bundle.Items)

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.invoiceRepo.Upsert(txCtx, invoice); err != nil {
			return fmt.Errorf("upsert document: %w", err)
		}
		if err := s.categoryRepo.ReplaceForInvoice(txCtx, invoice.DocumentID, categories); err != nil {
			return fmt.Errorf("replace categories: %w", err)
		}
		if err := s.lineItemRepo.ReplaceForInvoice(txCtx, invoice.DocumentID, lineItems); err != nil {
			return fmt.Errorf("replace line items: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("document %s: %w", bundle.DocumentID, err)
	}

	s.log.Info().
		Str("document_id", invoice.DocumentID).
		Int("categories", len(categories)).
		Int("line_items", len(lineItems)).
		Msg("snapshot committed")
	return nil
}

func (s *ingestService) Run(ctx context.Context, documentID string) error {
	run := &model.IngestRun{
		DocumentID: documentID,
		Status:     model.RunStatusRunning,
		StartedAt:  time.Now(),
	}
	if err := s.runRepo.Create(ctx, run); err != nil {
		// Run history is best-effort; the snapshot write path decides
		// success or failure.
		s.log.Warn().Err(err).Str("document_id", documentID).Msg("failed to record ingest run")
	}

	runErr := s.runDocument(ctx, documentID, run)

	now := time.Now()
	run.FinishedAt = &now
	if runErr != nil {
		run.Status = model.RunStatusFailed
		run.Error = runErr.Error()
	} else {
		run.Status = model.RunStatusSucceeded
	}
	if err := s.runRepo.Finish(ctx, run); err != nil {
		s.log.Warn().Err(err).Str("document_id", documentID).Msg("failed to finalize ingest run")
	}

	return runErr
}

func (s *ingestService) runDocument(ctx context.Context, documentID string, run *model.IngestRun) error {
	bundle, err := s.FetchDocument(ctx, documentID)
	if err != nil {
		return err
	}

	run.CategoryCount = bundle.Categories.Len()
	run.LineItemCount = len(bundle.LineItems.Value)
	run.ItemCount = len(bundle.Items.Value)

	return s.Ingest(ctx, bundle)
}
