package service

import (
	"encoding/json"
	"fmt"

	"harborsync/internal/harbor"
	"harborsync/internal/model"

	"github.com/shopspring/decimal"
)

// rawBundle is the audit copy of the full API exchange stored on the
// document row.
type rawBundle struct {
	Header     harbor.DocumentHeader    `json:"header"`
	Categories harbor.CategoryMap       `json:"categories"`
	Items      harbor.ItemsResponse     `json:"items"`
	LineItems  harbor.LineItemsResponse `json:"line_items"`
}

// buildInvoice projects a validated header into the document row and
// serializes the auxiliary payloads as audit blobs. A missing required
// header field fails the whole document.
func buildInvoice(bundle *DocumentBundle) (*model.Invoice, error) {
	header := &bundle.Header
	if err := header.Validate(); err != nil {
		return nil, err
	}

	categoriesJSON, err := json.Marshal(bundle.Categories)
	if err != nil {
		return nil, fmt.Errorf("serialize categories: %w", err)
	}
	itemsJSON, err := json.Marshal(bundle.Items)
	if err != nil {
		return nil, fmt.Errorf("serialize items: %w", err)
	}
	rawJSON, err := json.Marshal(rawBundle{
		Header:     bundle.Header,
		Categories: bundle.Categories,
		Items:      bundle.Items,
		LineItems:  bundle.LineItems,
	})
	if err != nil {
		return nil, fmt.Errorf("serialize raw bundle: %w", err)
	}

	return &model.Invoice{
		DocumentID:      *header.DocumentID,
		DocumentType:    *header.DocumentType,
		BillToID:        *header.BillToID,
		BillToName:      *header.BillToName,
		BillToAddress:   *header.BillToAddress,
		BillToCity:      *header.BillToCity,
		BillToState:     *header.BillToState,
		BillToZip:       *header.BillToZip,
		OrderID:         *header.OrderID,
		PostedDate:      *header.PostedDate,
		OrderDate:       *header.OrderDate,
		DueDate:         *header.DueDate,
		ShipToName:      *header.ShipToName,
		ShipToAddress:   *header.ShipToAddress,
		ShipToCity:      *header.ShipToCity,
		ShipToState:     *header.ShipToState,
		ShipToZip:       *header.ShipToZip,
		PaymentTerms:    *header.PaymentTerms,
		PaymentMethod:   *header.PaymentMethod,
		TransactionType: *header.TransactionType,
		Allowances:      *header.Allowances,
		Charges:         *header.Charges,
		Discounts:       *header.Discounts,
		SalesTax:        *header.SalesTax,
		Subtotal:        *header.SubTotal,
		InvoiceTotal:    *header.InvoiceTotal,
		CategoriesJSON:  string(categoriesJSON),
		ItemsJSON:       string(itemsJSON),
		RawJSON:         string(rawJSON),
	}, nil
}

// buildCategoryRows flattens the category map into rows, preserving the
// vendor's input order. Absent count/cost already defaulted to zero at
// decode time.
func buildCategoryRows(documentID string, categories harbor.CategoryMap) []model.InvoiceCategory {
	rows := make([]model.InvoiceCategory, 0, categories.Len())
	for _, name := range categories.Names() {
		entry, _ := categories.Get(name)
		rows = append(rows, model.InvoiceCategory{
			InvoiceID:    documentID,
			CategoryName: name,
			CategoryID:   entry.CategoryID,
			ItemCount:    entry.Count,
			TotalCost:    entry.Cost,
		})
	}
	return rows
}

// buildLineItemRows joins line items against the item-detail records by
// item id. A line with no matching detail keeps its core fields and
// null enrichment; this never fails.
func buildLineItemRows(documentID string, lines harbor.LineItemsResponse, items harbor.ItemsResponse) []model.InvoiceLineItem {
	details := make(map[string]harbor.ItemDetail, len(items.Value))
	for _, detail := range items.Value {
		details[detail.ItemID] = detail
	}

	rows := make([]model.InvoiceLineItem, 0, len(lines.Value))
	for _, line := range lines.Value {
		itemID := line.Item.ItemID

		row := model.InvoiceLineItem{
			InvoiceID:     documentID,
			ItemID:        itemID,
			UnitPrice:     line.UnitPrice,
			NetPrice:      line.NetPrice,
			Quantity:      line.Quantity,
			UnitOfMeasure: line.UnitOfMeasure,
			LineTotal:     decimal.NewFromInt(int64(line.Quantity)).Mul(line.UnitPrice),
		}

		if detail, ok := details[itemID]; ok {
			row.ItemDescription = detail.ItemDescription
			row.BrandName = detail.BrandName
			row.CategoryID = detail.CategoryID
			row.RetailUPC = detail.RetailUPC
			row.VendorID = detail.VendorID
			if len(detail.UOMs) > 0 {
				uom := detail.UOMs[0]
				row.SRP = uom.SRP
				row.MarginPct = uom.MarginPct
				row.PackageDescription = uom.PackageDescription
			}
		}

		rows = append(rows, row)
	}
	return rows
}

// collectItemIDs gathers the item ids referenced by the line items,
// skipping lines without one.
func collectItemIDs(lines harbor.LineItemsResponse) []string {
	ids := make([]string, 0, len(lines.Value))
	for _, line := range lines.Value {
		if line.Item.ItemID != "" {
			ids = append(ids, line.Item.ItemID)
		}
	}
	return ids
}
