package harbor

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentHeaderDecode(t *testing.T) {
	// The vendor mixes quoted and bare numbers for monetary totals.
	payload := `{
		"DocumentId": "2349466",
		"DocumentType": "Invoice",
		"BillToId": "700030",
		"BillToName": "Acme Market",
		"BillToAddress": "1 Main St",
		"BillToCity": "Portland",
		"BillToState": "OR",
		"BillToZip": "97201",
		"OrderId": "SO-1001",
		"PostedDate": "2024-11-02",
		"OrderDate": "2024-11-01",
		"DueDate": "2024-11-16",
		"ShipToName": "Acme Market #2",
		"ShipToAddress": "2 Main St",
		"ShipToCity": "Salem",
		"ShipToState": "OR",
		"ShipToZip": "97301",
		"PaymentTerms": "NET 14",
		"PaymentMethod": "ACH",
		"TransactionType": "Sale",
		"Allowances": "0.00",
		"Charges": 12.5,
		"Discounts": "1.25",
		"SalesTax": 0,
		"SubTotal": "100.00",
		"InvoiceTotal": "111.25"
	}`

	var header DocumentHeader
	require.NoError(t, json.Unmarshal([]byte(payload), &header))
	require.NoError(t, header.Validate())

	assert.Equal(t, "2349466", *header.DocumentID)
	assert.True(t, header.Charges.Equal(decimal.NewFromFloat(12.5)))
	assert.True(t, header.SubTotal.Equal(decimal.RequireFromString("100.00")))
	assert.True(t, header.InvoiceTotal.Equal(decimal.RequireFromString("111.25")))
}

func TestDocumentHeaderValidate(t *testing.T) {
	testCases := []struct {
		name          string
		mutate        func(h *DocumentHeader)
		expectedField string
	}{
		{
			name:          "missing document id",
			mutate:        func(h *DocumentHeader) { h.DocumentID = nil },
			expectedField: "DocumentId",
		},
		{
			name:          "missing bill-to name",
			mutate:        func(h *DocumentHeader) { h.BillToName = nil },
			expectedField: "BillToName",
		},
		{
			name:          "missing invoice total",
			mutate:        func(h *DocumentHeader) { h.InvoiceTotal = nil },
			expectedField: "InvoiceTotal",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			header := completeHeader()
			tc.mutate(&header)

			err := header.Validate()
			require.Error(t, err)

			var missing *MissingFieldError
			require.ErrorAs(t, err, &missing)
			assert.Equal(t, tc.expectedField, missing.Field)
			assert.Contains(t, err.Error(), "missing required field "+tc.expectedField)
		})
	}
}

func TestCategoryMapDecodePreservesOrder(t *testing.T) {
	payload := `{
		"Grocery": {"CategoryID": "G1", "Count": 2, "Cost": 10.0},
		"Dairy": {"CategoryID": "D1", "Count": 5, "Cost": 42.75},
		"Frozen": {"CategoryID": "F1"}
	}`

	var categories CategoryMap
	require.NoError(t, json.Unmarshal([]byte(payload), &categories))

	assert.Equal(t, []string{"Grocery", "Dairy", "Frozen"}, categories.Names())
	assert.Equal(t, 3, categories.Len())

	grocery, ok := categories.Get("Grocery")
	require.True(t, ok)
	assert.Equal(t, "G1", grocery.CategoryID)
	assert.Equal(t, 2, grocery.Count)
	assert.True(t, grocery.Cost.Equal(decimal.NewFromFloat(10.0)))

	// Count and Cost default to zero when the vendor omits them.
	frozen, ok := categories.Get("Frozen")
	require.True(t, ok)
	assert.Equal(t, 0, frozen.Count)
	assert.True(t, frozen.Cost.IsZero())
}

func TestCategoryMapDuplicateNameLastWins(t *testing.T) {
	payload := `{
		"Grocery": {"CategoryID": "G1", "Count": 2, "Cost": 10.0},
		"Dairy": {"CategoryID": "D1", "Count": 1, "Cost": 5.0},
		"Grocery": {"CategoryID": "G2", "Count": 7, "Cost": 99.0}
	}`

	var categories CategoryMap
	require.NoError(t, json.Unmarshal([]byte(payload), &categories))

	// The duplicate keeps its first position but takes the last value.
	assert.Equal(t, []string{"Grocery", "Dairy"}, categories.Names())
	grocery, _ := categories.Get("Grocery")
	assert.Equal(t, "G2", grocery.CategoryID)
	assert.Equal(t, 7, grocery.Count)
}

func TestCategoryMapRoundTrip(t *testing.T) {
	payload := `{"Grocery":{"CategoryID":"G1","Count":2,"Cost":"10"},"Dairy":{"CategoryID":"D1","Count":1,"Cost":"5"}}`

	var categories CategoryMap
	require.NoError(t, json.Unmarshal([]byte(payload), &categories))

	encoded, err := json.Marshal(categories)
	require.NoError(t, err)

	var decoded CategoryMap
	require.NoError(t, json.Unmarshal(encoded, &decoded))
	assert.Equal(t, categories.Names(), decoded.Names())
}

func TestCategoryMapRejectsNonObject(t *testing.T) {
	var categories CategoryMap
	err := json.Unmarshal([]byte(`[1, 2, 3]`), &categories)
	assert.Error(t, err)
}

// completeHeader returns a header with every required field present.
func completeHeader() DocumentHeader {
	str := func(s string) *string { return &s }
	dec := func(s string) *decimal.Decimal {
		d := decimal.RequireFromString(s)
		return &d
	}
	return DocumentHeader{
		DocumentID:      str("2349466"),
		DocumentType:    str("Invoice"),
		BillToID:        str("700030"),
		BillToName:      str("Acme Market"),
		BillToAddress:   str("1 Main St"),
		BillToCity:      str("Portland"),
		BillToState:     str("OR"),
		BillToZip:       str("97201"),
		OrderID:         str("SO-1001"),
		PostedDate:      str("2024-11-02"),
		OrderDate:       str("2024-11-01"),
		DueDate:         str("2024-11-16"),
		ShipToName:      str("Acme Market #2"),
		ShipToAddress:   str("2 Main St"),
		ShipToCity:      str("Salem"),
		ShipToState:     str("OR"),
		ShipToZip:       str("97301"),
		PaymentTerms:    str("NET 14"),
		PaymentMethod:   str("ACH"),
		TransactionType: str("Sale"),
		Allowances:      dec("0"),
		Charges:         dec("12.5"),
		Discounts:       dec("1.25"),
		SalesTax:        dec("0"),
		SubTotal:        dec("100.00"),
		InvoiceTotal:    dec("111.25"),
	}
}
