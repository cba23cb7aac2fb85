package harbor

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetDocumentHeader(t *testing.T) {
	var gotPath, gotAuth, gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotQuery = r.URL.Query().Get("documentId")
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"DocumentId": "2349466", "DocumentType": "Invoice"}`)
	}))
	defer server.Close()

	client := NewClient("700030", "secret-token", WithBaseURL(server.URL))

	header, err := client.GetDocumentHeader(context.Background(), "2349466")
	require.NoError(t, err)

	assert.Equal(t, "/v2.0/OrderHistory/700030/GetPostedDocumentHeader", gotPath)
	assert.Equal(t, "Bearer secret-token", gotAuth)
	assert.Equal(t, "2349466", gotQuery)
	require.NotNil(t, header.DocumentID)
	assert.Equal(t, "2349466", *header.DocumentID)
}

func TestGetLineItems(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v2.0/OrderHistory/700030/GetPostedDocumentLines", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "2349466", body["documentId"])

		io.WriteString(w, `{"Value": [{"Item": {"ItemId": "X1"}, "Quantity": 2, "UnitPrice": 5.0}]}`)
	}))
	defer server.Close()

	client := NewClient("700030", "token", WithBaseURL(server.URL))

	lines, err := client.GetLineItems(context.Background(), "2349466")
	require.NoError(t, err)
	require.Len(t, lines.Value, 1)
	assert.Equal(t, "X1", lines.Value[0].Item.ItemID)
	assert.Equal(t, 2, lines.Value[0].Quantity)
}

func TestGetItemsFilter(t *testing.T) {
	var gotBody map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1.0/Item/700030/items", r.URL.Path)
		assert.Equal(t, "false", r.URL.Query().Get("includeNonSellableUOMs"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		io.WriteString(w, `{"Value": [{"ItemId": "X1"}]}`)
	}))
	defer server.Close()

	client := NewClient("700030", "token", WithBaseURL(server.URL))

	items, err := client.GetItems(context.Background(), []string{"X1", "X2"})
	require.NoError(t, err)
	require.Len(t, items.Value, 1)

	assert.Equal(t, "(ItemID eq 'X1' or ItemID eq 'X2')", gotBody["Filter"])
	assert.Equal(t, float64(100), gotBody["Top"])
	assert.Equal(t, "ItemDescription asc", gotBody["OrderBy"])
}

func TestGetItemsEmptyShortCircuits(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		io.WriteString(w, `{"Value": []}`)
	}))
	defer server.Close()

	client := NewClient("700030", "token", WithBaseURL(server.URL))

	items, err := client.GetItems(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, items.Value)
	assert.Equal(t, 0, calls, "zero item ids must not hit the network")
}

func TestClientErrors(t *testing.T) {
	testCases := []struct {
		name       string
		handler    http.HandlerFunc
		checkError func(t *testing.T, err error)
	}{
		{
			name: "non-2xx status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
			},
			checkError: func(t *testing.T, err error) {
				var apiErr *APIError
				require.ErrorAs(t, err, &apiErr)
				assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
				assert.Equal(t, "GetDocumentHeader", apiErr.Operation)
			},
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				io.WriteString(w, `{not json`)
			},
			checkError: func(t *testing.T, err error) {
				assert.Contains(t, err.Error(), "decode response")
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(tc.handler)
			defer server.Close()

			client := NewClient("700030", "token", WithBaseURL(server.URL))
			_, err := client.GetDocumentHeader(context.Background(), "2349466")
			require.Error(t, err)
			tc.checkError(t, err)
		})
	}
}
