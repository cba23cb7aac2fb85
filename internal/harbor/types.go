package harbor

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// MissingFieldError reports a required header field absent from the
// vendor payload.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field %s", e.Field)
}

// DocumentHeader is the posted-document header payload. All fields are
// pointers so Validate can tell an absent field from a zero value; the
// vendor sends monetary totals as either bare numbers or quoted strings,
// both of which decimal handles.
type DocumentHeader struct {
	DocumentID      *string          `json:"DocumentId"`
	DocumentType    *string          `json:"DocumentType"`
	BillToID        *string          `json:"BillToId"`
	BillToName      *string          `json:"BillToName"`
	BillToAddress   *string          `json:"BillToAddress"`
	BillToCity      *string          `json:"BillToCity"`
	BillToState     *string          `json:"BillToState"`
	BillToZip       *string          `json:"BillToZip"`
	OrderID         *string          `json:"OrderId"`
	PostedDate      *string          `json:"PostedDate"`
	OrderDate       *string          `json:"OrderDate"`
	DueDate         *string          `json:"DueDate"`
	ShipToName      *string          `json:"ShipToName"`
	ShipToAddress   *string          `json:"ShipToAddress"`
	ShipToCity      *string          `json:"ShipToCity"`
	ShipToState     *string          `json:"ShipToState"`
	ShipToZip       *string          `json:"ShipToZip"`
	PaymentTerms    *string          `json:"PaymentTerms"`
	PaymentMethod   *string          `json:"PaymentMethod"`
	TransactionType *string          `json:"TransactionType"`
	Allowances      *decimal.Decimal `json:"Allowances"`
	Charges         *decimal.Decimal `json:"Charges"`
	Discounts       *decimal.Decimal `json:"Discounts"`
	SalesTax        *decimal.Decimal `json:"SalesTax"`
	SubTotal        *decimal.Decimal `json:"SubTotal"`
	InvoiceTotal    *decimal.Decimal `json:"InvoiceTotal"`
}

// Validate returns a MissingFieldError for the first absent required
// field. Every header field is required: a header that cannot be fully
// projected must fail the whole ingestion before anything is written.
func (h *DocumentHeader) Validate() error {
	checks := []struct {
		name string
		ok   bool
	}{
		{"DocumentId", h.DocumentID != nil},
		{"DocumentType", h.DocumentType != nil},
		{"BillToId", h.BillToID != nil},
		{"BillToName", h.BillToName != nil},
		{"BillToAddress", h.BillToAddress != nil},
		{"BillToCity", h.BillToCity != nil},
		{"BillToState", h.BillToState != nil},
		{"BillToZip", h.BillToZip != nil},
		{"OrderId", h.OrderID != nil},
		{"PostedDate", h.PostedDate != nil},
		{"OrderDate", h.OrderDate != nil},
		{"DueDate", h.DueDate != nil},
		{"ShipToName", h.ShipToName != nil},
		{"ShipToAddress", h.ShipToAddress != nil},
		{"ShipToCity", h.ShipToCity != nil},
		{"ShipToState", h.ShipToState != nil},
		{"ShipToZip", h.ShipToZip != nil},
		{"PaymentTerms", h.PaymentTerms != nil},
		{"PaymentMethod", h.PaymentMethod != nil},
		{"TransactionType", h.TransactionType != nil},
		{"Allowances", h.Allowances != nil},
		{"Charges", h.Charges != nil},
		{"Discounts", h.Discounts != nil},
		{"SalesTax", h.SalesTax != nil},
		{"SubTotal", h.SubTotal != nil},
		{"InvoiceTotal", h.InvoiceTotal != nil},
	}
	for _, c := range checks {
		if !c.ok {
			return &MissingFieldError{Field: c.name}
		}
	}
	return nil
}

// CategorySummary is one entry of the category payload. Count and Cost
// default to zero when the vendor omits them.
type CategorySummary struct {
	CategoryID string          `json:"CategoryID"`
	Count      int             `json:"Count"`
	Cost       decimal.Decimal `json:"Cost"`
}

// CategoryMap is the category payload: a JSON object keyed by category
// name. Decoding preserves the vendor's key order, which a plain Go map
// would randomize; a duplicate name keeps its first position but takes
// the last value.
type CategoryMap struct {
	names   []string
	entries map[string]CategorySummary
}

func (m *CategoryMap) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("category payload is not a JSON object")
	}

	m.names = nil
	m.entries = make(map[string]CategorySummary)
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		name := keyTok.(string)

		var entry CategorySummary
		if err := dec.Decode(&entry); err != nil {
			return fmt.Errorf("category %q: %w", name, err)
		}

		if _, seen := m.entries[name]; !seen {
			m.names = append(m.names, name)
		}
		m.entries[name] = entry
	}
	// consume closing brace
	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}

func (m CategoryMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range m.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(m.entries[name])
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Names returns the category names in vendor payload order.
func (m CategoryMap) Names() []string { return m.names }

func (m CategoryMap) Get(name string) (CategorySummary, bool) {
	entry, ok := m.entries[name]
	return entry, ok
}

func (m CategoryMap) Len() int { return len(m.names) }

// ItemRef is the nested item reference on a line item.
type ItemRef struct {
	ItemID string `json:"ItemId"`
}

// LineItem is one line of the posted-document lines payload.
type LineItem struct {
	Item          ItemRef          `json:"Item"`
	Quantity      int              `json:"Quantity"`
	UnitPrice     decimal.Decimal  `json:"UnitPrice"`
	NetPrice      *decimal.Decimal `json:"NetPrice"`
	UnitOfMeasure *string          `json:"UnitOfMeasure"`
}

// LineItemsResponse wraps the lines payload.
type LineItemsResponse struct {
	Value []LineItem `json:"Value"`
}

// UOM is one unit-of-measure variant of an item (case, each, ...).
type UOM struct {
	SRP                *decimal.Decimal `json:"SRP"`
	MarginPct          *decimal.Decimal `json:"MarginPct"`
	PackageDescription *string          `json:"PackageDescription"`
}

// ItemDetail is one record of the item-lookup payload. Everything past
// the id is optional enrichment data.
type ItemDetail struct {
	ItemID          string  `json:"ItemId"`
	ItemDescription *string `json:"ItemDescription"`
	BrandName       *string `json:"BrandName"`
	CategoryID      *string `json:"CategoryID"`
	RetailUPC       *string `json:"RetailUPC"`
	VendorID        *string `json:"VendorID"`
	UOMs            []UOM   `json:"UOMs"`
}

// ItemsResponse wraps the item-lookup payload.
type ItemsResponse struct {
	Value []ItemDetail `json:"Value"`
}
