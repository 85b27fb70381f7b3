package order

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"storefront_api/internal/storefront/business/errs"
	"storefront_api/internal/storefront/business/models"
	"storefront_api/internal/storefront/business/models/dto/response"
	"storefront_api/internal/storefront/pkg/clients"
	"storefront_api/pkg/logger"
)

// ProductResolver resolves cached products for item display.
type ProductResolver interface {
	GetByIDs(ctx context.Context, ids []string) (map[string]models.Product, error)
}

// ItemWithProduct pairs a remote purchase item with the cached product it
// referenced, for display. Product fields are empty when the product has
// left the catalog.
type ItemWithProduct struct {
	Item         response.PurchaseItemResponse
	ProductName  string
	ProductImage string
}

// PurchaseWithDetails is the assembled view of one purchase: header,
// address (nil when unreadable) and items.
type PurchaseWithDetails struct {
	Purchase response.PurchaseResponse
	Address  *response.AddressResponse
	Items    []ItemWithProduct
}

// History reads purchases back and carries the administrative status
// transition. The client that placed an order never changes its status.
type History struct {
	purchases *clients.PurchaseClient
	items     *clients.PurchaseItemClient
	addresses *clients.AddressClient
	resolver  ProductResolver
	log       logger.Logger
}

func NewHistory(
	purchases *clients.PurchaseClient,
	items *clients.PurchaseItemClient,
	addresses *clients.AddressClient,
	resolver ProductResolver,
	writer io.Writer,
) *History {
	return &History{
		purchases: purchases,
		items:     items,
		addresses: addresses,
		resolver:  resolver,
		log:       logger.NewLogger(writer, "[PurchaseHistory]"),
	}
}

func (h *History) UserPurchases(ctx context.Context, userID int) ([]response.PurchaseResponse, error) {
	return h.purchases.ListByUser(ctx, userID)
}

// AllPurchases is the administrative listing.
func (h *History) AllPurchases(ctx context.Context) ([]response.PurchaseResponse, error) {
	return h.purchases.List(ctx)
}

// PurchaseDetails assembles header, address and items. The address read
// is tolerated to fail (the view shows the purchase without it); items
// resolve product names from the local cache.
func (h *History) PurchaseDetails(ctx context.Context, purchaseID int) (*PurchaseWithDetails, error) {
	purchase, err := h.purchases.Get(ctx, purchaseID)
	if err != nil {
		return nil, fmt.Errorf("fetching purchase %d: %w", purchaseID, err)
	}

	details := &PurchaseWithDetails{Purchase: *purchase}

	address, err := h.addresses.Get(ctx, purchase.AddressID)
	if err != nil {
		h.log.Log("failed to fetch address %d for purchase %d: %v", purchase.AddressID, purchaseID, err)
	} else {
		details.Address = address
	}

	items, err := h.items.ListByPurchase(ctx, purchaseID)
	if err != nil {
		return nil, fmt.Errorf("fetching items of purchase %d: %w", purchaseID, err)
	}

	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, strconv.Itoa(item.ProductID))
	}
	products, err := h.resolver.GetByIDs(ctx, ids)
	if err != nil {
		h.log.Log("failed to resolve products for purchase %d: %v", purchaseID, err)
		products = map[string]models.Product{}
	}

	for _, item := range items {
		entry := ItemWithProduct{Item: item}
		if p, ok := products[strconv.Itoa(item.ProductID)]; ok {
			entry.ProductName = p.Name
			entry.ProductImage = p.Image
		}
		details.Items = append(details.Items, entry)
	}
	return details, nil
}

// UpdateStatus moves a purchase to approved or rejected. Both are
// terminal: once a purchase left pending it stays where it is.
func (h *History) UpdateStatus(ctx context.Context, purchaseID int, status models.PurchaseStatus) (*response.PurchaseResponse, error) {
	if !status.Terminal() {
		return nil, &errs.ValidationError{Field: "status", Reason: "transition target must be approved or rejected"}
	}

	current, err := h.purchases.Get(ctx, purchaseID)
	if err != nil {
		return nil, fmt.Errorf("fetching purchase %d: %w", purchaseID, err)
	}
	if models.ParseStatus(current.Status).Terminal() {
		return nil, errs.ErrTerminalStatus
	}

	updated, err := h.purchases.UpdateStatus(ctx, purchaseID, string(status))
	if err != nil {
		return nil, fmt.Errorf("updating status of purchase %d: %w", purchaseID, err)
	}
	h.log.Log("purchase %d moved to %s", purchaseID, updated.Status)
	return updated, nil
}
