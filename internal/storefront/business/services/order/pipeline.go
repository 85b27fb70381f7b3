package order

import (
	"context"
	"io"
	"strconv"

	"storefront_api/internal/storefront/business/errs"
	"storefront_api/internal/storefront/business/models"
	"storefront_api/internal/storefront/business/models/dto/request"
	"storefront_api/internal/storefront/pkg/clients"
	"storefront_api/pkg/business/service"
	"storefront_api/pkg/logger"
)

// CartAccess is what the pipeline needs from the cart store.
type CartAccess interface {
	Lines(ctx context.Context) ([]models.CartLine, error)
	ClearCart(ctx context.Context) error
}

// AddressInput is the checkout form. Region and commune come from the
// client-side referential data in models; the backend does not validate
// the pairing.
type AddressInput struct {
	AddressLine1         string
	ApartmentNumber      string
	Region               string
	Commune              string
	ShippingInstructions string
}

// Pipeline turns the cart into a purchase through a sequence of dependent
// remote writes the backend offers no transaction around: address, then
// header, then one item per line. Steps are strictly sequential because
// each needs the id the previous one produced.
type Pipeline struct {
	session   models.Session
	addresses *clients.AddressClient
	purchases *clients.PurchaseClient
	items     *clients.PurchaseItemClient
	cart      CartAccess
	taxRate   float64
	prices    *service.PriceFormatter
	log       logger.Logger
}

func NewPipeline(
	session models.Session,
	addresses *clients.AddressClient,
	purchases *clients.PurchaseClient,
	items *clients.PurchaseItemClient,
	cart CartAccess,
	taxRate float64,
	writer io.Writer,
) *Pipeline {
	return &Pipeline{
		session:   session,
		addresses: addresses,
		purchases: purchases,
		items:     items,
		cart:      cart,
		taxRate:   taxRate,
		prices:    service.NewPriceFormatter(),
		log:       logger.NewLogger(writer, "[OrderPipeline]"),
	}
}

// PlaceOrder runs the five checkout steps.
//
// Failure semantics, by step:
//  1. validation aborts before any remote call;
//  2. totals are computed from the cart snapshot, before any write;
//  3. address creation failure aborts with nothing created (safe abort);
//  4. purchase creation failure aborts, the step-3 address stays orphaned;
//  5. item failures are recorded on the receipt and the loop continues —
//     the purchase total may overstate the items actually persisted;
//  6. the cart is cleared unconditionally once the loop finishes.
//
// There is no rollback and no retry anywhere in the sequence.
func (p *Pipeline) PlaceOrder(ctx context.Context, input AddressInput) (*models.OrderReceipt, error) {
	if !p.session.Authenticated() {
		return nil, errs.ErrNoSession
	}
	if input.AddressLine1 == "" {
		return nil, &errs.ValidationError{Field: "address_line_1", Reason: "must not be empty"}
	}
	if input.Commune == "" {
		return nil, &errs.ValidationError{Field: "commune", Reason: "must not be empty"}
	}
	if !models.ValidCommune(input.Region, input.Commune) {
		return nil, &errs.ValidationError{Field: "commune", Reason: "does not belong to region " + input.Region}
	}

	lines, err := p.cart.Lines(ctx)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, errs.ErrEmptyCart
	}

	var subtotal float64
	for _, line := range lines {
		subtotal += line.Price * float64(line.Quantity)
	}
	tax := subtotal * p.taxRate
	total := subtotal + tax
	p.log.Log("placing order for user %d: subtotal=%s tax=%s total=%s",
		p.session.UserID, p.prices.Format(subtotal), p.prices.Format(tax), p.prices.Format(total))

	address, err := p.addresses.Create(ctx, &request.AddressRequest{
		AddressLine1:         input.AddressLine1,
		ApartmentNumber:      input.ApartmentNumber,
		Region:               input.Region,
		Commune:              input.Commune,
		ShippingInstructions: input.ShippingInstructions,
		UserID:               p.session.UserID,
	})
	if err != nil {
		// safe abort: nothing was created, the cart is intact
		return nil, err
	}

	purchase, err := p.purchases.Create(ctx, &request.PurchaseRequest{
		UserID:      p.session.UserID,
		AddressID:   address.ID,
		TotalAmount: total,
		Status:      string(models.StatusPending),
	})
	if err != nil {
		// the address row from the previous step stays orphaned
		return nil, err
	}

	receipt := &models.OrderReceipt{
		PurchaseID: purchase.ID,
		AddressID:  address.ID,
		Subtotal:   subtotal,
		Tax:        tax,
		Total:      total,
		Status:     models.ParseStatus(purchase.Status),
	}

	// one item per line, in cart order, one at a time; a failed item is
	// recorded and the loop keeps going
	for _, line := range lines {
		productID, convErr := strconv.Atoi(line.ProductID)
		if convErr != nil {
			p.log.Log("skipping item with non-numeric product id %q: %v", line.ProductID, convErr)
			receipt.FailedItems = append(receipt.FailedItems, models.FailedItem{
				ProductID: line.ProductID, Quantity: line.Quantity, Err: convErr,
			})
			continue
		}
		_, itemErr := p.items.Create(ctx, &request.PurchaseItemRequest{
			PurchaseID:      purchase.ID,
			ProductID:       productID,
			Quantity:        line.Quantity,
			PriceAtPurchase: line.Price,
		})
		if itemErr != nil {
			p.log.Log("failed to create item for product %s: %v", line.ProductID, itemErr)
			receipt.FailedItems = append(receipt.FailedItems, models.FailedItem{
				ProductID: line.ProductID, Quantity: line.Quantity, Err: itemErr,
			})
			continue
		}
		receipt.SucceededItems++
	}

	if !receipt.Consistent() {
		p.log.Log("%v", &errs.InconsistencyError{
			PurchaseID: purchase.ID, Expected: len(lines), Actual: receipt.SucceededItems,
		})
	}

	if err := p.cart.ClearCart(ctx); err != nil {
		p.log.Log("failed to clear cart after purchase %d: %v", purchase.ID, err)
	}
	p.log.Log("order %d placed: %d/%d items created", purchase.ID, receipt.SucceededItems, len(lines))
	return receipt, nil
}
