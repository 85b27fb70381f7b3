package order_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront_api/internal/storefront/business/errs"
	"storefront_api/internal/storefront/business/models"
	"storefront_api/internal/storefront/business/services"
	"storefront_api/internal/storefront/business/services/order"
	"storefront_api/internal/storefront/pkg/clients"
)

type mapResolver map[string]models.Product

func (m mapResolver) GetByIDs(_ context.Context, ids []string) (map[string]models.Product, error) {
	out := map[string]models.Product{}
	for _, id := range ids {
		if p, ok := m[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

func newHistory(url string, resolver order.ProductResolver) *order.History {
	auth := services.NewBearerAuth("secret")
	return order.NewHistory(
		clients.NewPurchaseClient(url, io.Discard, auth, nil),
		clients.NewPurchaseItemClient(url, io.Discard, auth, nil),
		clients.NewAddressClient(url, io.Discard, auth, nil),
		resolver,
		io.Discard,
	)
}

func historyBackend(t *testing.T, purchaseStatus string, addressFails bool) (*httptest.Server, *[]string) {
	t.Helper()
	var patched []string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/purchase/900":
			w.Write([]byte(`{"id": 900, "user_id": 7, "address_id": 501, "total_amount": 2975, "status": "` + purchaseStatus + `"}`))
		case r.Method == http.MethodPatch && r.URL.Path == "/purchase/900":
			body, _ := io.ReadAll(r.Body)
			patched = append(patched, string(body))
			w.Write([]byte(`{"id": 900, "user_id": 7, "address_id": 501, "total_amount": 2975, "status": "approved"}`))
		case r.Method == http.MethodGet && r.URL.Path == "/address/501":
			if addressFails {
				http.Error(w, `{"error":"gone"}`, http.StatusNotFound)
				return
			}
			w.Write([]byte(`{"id": 501, "address_line_1": "Av. Providencia 1234", "commune": "Santiago", "region": "Metropolitana", "user_id": 7}`))
		case r.Method == http.MethodGet && r.URL.Path == "/purchase_item" && r.URL.Query().Get("purchase_id") == "900":
			w.Write([]byte(`[
				{"id": 1, "purchase_id": 900, "product_id": 10, "quantity": 2, "price_at_purchase": 1000},
				{"id": 2, "purchase_id": 900, "product_id": 11, "quantity": 1, "price_at_purchase": 500}
			]`))
		default:
			http.Error(w, "unexpected call: "+r.Method+" "+r.URL.String(), http.StatusTeapot)
		}
	})
	return httptest.NewServer(handler), &patched
}

func TestPurchaseDetails_AssemblesHeaderAddressAndItems(t *testing.T) {
	server, _ := historyBackend(t, "pending", false)
	defer server.Close()

	resolver := mapResolver{
		"10": {ID: "10", Name: "Mate cup", Image: "https://cdn.example/x1.jpg"},
	}
	details, err := newHistory(server.URL, resolver).PurchaseDetails(context.Background(), 900)
	require.NoError(t, err)

	assert.Equal(t, 900, details.Purchase.ID)
	require.NotNil(t, details.Address)
	assert.Equal(t, "Santiago", details.Address.Commune)

	require.Len(t, details.Items, 2)
	assert.Equal(t, "Mate cup", details.Items[0].ProductName)
	assert.Equal(t, "https://cdn.example/x1.jpg", details.Items[0].ProductImage)
	// product 11 left the catalog; the item still shows, nameless
	assert.Equal(t, 11, details.Items[1].Item.ProductID)
	assert.Empty(t, details.Items[1].ProductName)
}

func TestPurchaseDetails_ToleratesMissingAddress(t *testing.T) {
	server, _ := historyBackend(t, "pending", true)
	defer server.Close()

	details, err := newHistory(server.URL, mapResolver{}).PurchaseDetails(context.Background(), 900)
	require.NoError(t, err)
	assert.Nil(t, details.Address)
	assert.Len(t, details.Items, 2)
}

func TestUpdateStatus_MovesPendingToApproved(t *testing.T) {
	server, patched := historyBackend(t, "pending", false)
	defer server.Close()

	updated, err := newHistory(server.URL, mapResolver{}).UpdateStatus(context.Background(), 900, models.StatusApproved)
	require.NoError(t, err)
	assert.Equal(t, "approved", updated.Status)
	require.Len(t, *patched, 1)
	assert.JSONEq(t, `{"status":"approved"}`, (*patched)[0])
}

func TestUpdateStatus_RejectsTerminalPurchase(t *testing.T) {
	server, patched := historyBackend(t, "rejected", false)
	defer server.Close()

	_, err := newHistory(server.URL, mapResolver{}).UpdateStatus(context.Background(), 900, models.StatusApproved)
	require.ErrorIs(t, err, errs.ErrTerminalStatus)
	assert.Empty(t, *patched)
}

func TestUpdateStatus_RejectsPendingAsTarget(t *testing.T) {
	_, err := newHistory("http://unused.invalid", mapResolver{}).UpdateStatus(context.Background(), 900, models.StatusPending)
	var verr *errs.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "status", verr.Field)
}
