package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice is the persisted snapshot of one posted vendor document.
// The row is replaced wholesale on every ingestion run; it is never
// partially updated.
type Invoice struct {
	DocumentID      string            `gorm:"column:document_id;type:varchar(30);primaryKey" json:"document_id"`
	DocumentType    string            `gorm:"type:varchar(30)" json:"document_type"`
	BillToID        string            `gorm:"column:bill_to_id;type:varchar(30)" json:"bill_to_id"`
	BillToName      string            `gorm:"type:varchar(255)" json:"bill_to_name"`
	BillToAddress   string            `gorm:"type:varchar(255)" json:"bill_to_address"`
	BillToCity      string            `gorm:"type:varchar(100)" json:"bill_to_city"`
	BillToState     string            `gorm:"type:varchar(30)" json:"bill_to_state"`
	BillToZip       string            `gorm:"type:varchar(20)" json:"bill_to_zip"`
	OrderID         string            `gorm:"column:order_id;type:varchar(30)" json:"order_id"`
	PostedDate      string            `gorm:"type:varchar(40)" json:"posted_date"`
	OrderDate       string            `gorm:"type:varchar(40)" json:"order_date"`
	DueDate         string            `gorm:"type:varchar(40)" json:"due_date"`
	ShipToName      string            `gorm:"type:varchar(255)" json:"ship_to_name"`
	ShipToAddress   string            `gorm:"type:varchar(255)" json:"ship_to_address"`
	ShipToCity      string            `gorm:"type:varchar(100)" json:"ship_to_city"`
	ShipToState     string            `gorm:"type:varchar(30)" json:"ship_to_state"`
	ShipToZip       string            `gorm:"type:varchar(20)" json:"ship_to_zip"`
	PaymentTerms    string            `gorm:"type:varchar(100)" json:"payment_terms"`
	PaymentMethod   string            `gorm:"type:varchar(100)" json:"payment_method"`
	TransactionType string            `gorm:"type:varchar(50)" json:"transaction_type"`
	Allowances      decimal.Decimal   `gorm:"type:decimal(18,4);not null" json:"allowances"`
	Charges         decimal.Decimal   `gorm:"type:decimal(18,4);not null" json:"charges"`
	Discounts       decimal.Decimal   `gorm:"type:decimal(18,4);not null" json:"discounts"`
	SalesTax        decimal.Decimal   `gorm:"type:decimal(18,4);not null" json:"sales_tax"`
	Subtotal        decimal.Decimal   `gorm:"type:decimal(18,4);not null" json:"subtotal"`
	InvoiceTotal    decimal.Decimal   `gorm:"type:decimal(18,4);not null" json:"invoice_total"`
	CategoriesJSON  string            `gorm:"column:categories_json;type:text" json:"-"` // raw category payload, kept for audit/debug
	ItemsJSON       string            `gorm:"column:items_json;type:text" json:"-"`      // raw item-detail payload
	RawJSON         string            `gorm:"column:raw_json;type:text" json:"-"`        // complete API response bundle
	Categories      []InvoiceCategory `gorm:"foreignKey:InvoiceID;references:DocumentID;constraint:OnDelete:CASCADE" json:"categories,omitempty"`
	LineItems       []InvoiceLineItem `gorm:"foreignKey:InvoiceID;references:DocumentID;constraint:OnDelete:CASCADE" json:"line_items,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
}

func (Invoice) TableName() string { return "documents" }

// InvoiceCategory is one vendor category summary row for an invoice.
// The set is fully replaced (delete-then-insert) whenever its invoice
// is re-ingested.
type InvoiceCategory struct {
	ID           uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	InvoiceID    string          `gorm:"column:invoice_id;type:varchar(30);not null;index" json:"invoice_id"`
	CategoryName string          `gorm:"type:varchar(255);not null" json:"category_name"`
	CategoryID   string          `gorm:"column:category_id;type:varchar(30)" json:"category_id"`
	ItemCount    int             `gorm:"not null;default:0" json:"item_count"`
	TotalCost    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"total_cost"`
}

func (InvoiceCategory) TableName() string { return "categories" }

// InvoiceLineItem is one purchased line on an invoice, enriched with
// item-detail data where a matching item record exists. Enrichment
// columns are nullable: a line whose item id has no detail record still
// persists with its core quantity/price fields.
type InvoiceLineItem struct {
	ID                 uint             `gorm:"primaryKey;autoIncrement" json:"id"`
	InvoiceID          string           `gorm:"column:invoice_id;type:varchar(30);not null;index" json:"invoice_id"`
	ItemID             string           `gorm:"column:item_id;type:varchar(30)" json:"item_id"`
	ItemDescription    *string          `gorm:"type:varchar(255)" json:"item_description"`
	BrandName          *string          `gorm:"type:varchar(255)" json:"brand_name"`
	CategoryID         *string          `gorm:"column:category_id;type:varchar(30)" json:"category_id"`
	UnitPrice          decimal.Decimal  `gorm:"type:decimal(18,4);not null" json:"unit_price"`
	NetPrice           *decimal.Decimal `gorm:"type:decimal(18,4)" json:"net_price"`
	Quantity           int              `gorm:"not null;default:0" json:"quantity"`
	UnitOfMeasure      *string          `gorm:"column:uom;type:varchar(30)" json:"uom"`
	RetailUPC          *string          `gorm:"column:retail_upc;type:varchar(30)" json:"retail_upc"`
	VendorID           *string          `gorm:"column:vendor_id;type:varchar(30)" json:"vendor_id"`
	SRP                *decimal.Decimal `gorm:"column:srp;type:decimal(18,4)" json:"srp"`
	MarginPct          *decimal.Decimal `gorm:"column:margin_pct;type:decimal(18,4)" json:"margin_pct"`
	PackageDescription *string          `gorm:"type:varchar(255)" json:"package_description"`
	LineTotal          decimal.Decimal  `gorm:"type:decimal(18,4);not null" json:"line_total"` // quantity * unit_price, computed at ingest
}

func (InvoiceLineItem) TableName() string { return "line_items" }
