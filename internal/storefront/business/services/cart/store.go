package cart

import (
	"context"
	"io"
	"sync"

	"storefront_api/internal/storefront/business/errs"
	"storefront_api/internal/storefront/business/models"
	"storefront_api/pkg/logger"
)

// Storage is the slice of the local store the cart needs. The delta
// merge lives in the storage layer so "read existing then add" never
// happens as two steps.
type Storage interface {
	GetAll(ctx context.Context) ([]models.CartLine, error)
	GetByProductID(ctx context.Context, productID string) (*models.CartLine, error)
	UpsertDelta(ctx context.Context, line models.CartLine) error
	SetQuantity(ctx context.Context, productID string, quantity int) error
	Delete(ctx context.Context, productID string) error
	Clear(ctx context.Context) error
	Total(ctx context.Context) (float64, error)
}

// Summary is the live cart view pushed to subscribers after every
// mutation.
type Summary struct {
	Lines    int
	Subtotal float64
}

// Store owns cart mutation semantics on top of the cart_items rows.
type Store struct {
	storage Storage
	log     logger.Logger

	mu   sync.Mutex // guards subs
	subs []chan Summary
}

func NewStore(storage Storage, writer io.Writer) *Store {
	return &Store{
		storage: storage,
		log:     logger.NewLogger(writer, "[CartStore]"),
	}
}

// AddToCart merges by addition: adding an existing product increments its
// quantity rather than replacing it. Persists immediately.
func (s *Store) AddToCart(ctx context.Context, line models.CartLine) error {
	if line.ProductID == "" {
		return &errs.ValidationError{Field: "productId", Reason: "must not be empty"}
	}
	if line.Quantity <= 0 {
		return &errs.ValidationError{Field: "quantity", Reason: "must be positive"}
	}
	if err := s.storage.UpsertDelta(ctx, line); err != nil {
		return err
	}
	s.notify(ctx)
	return nil
}

// UpdateQuantity overwrites the quantity; zero or less deletes the line.
// "Set to zero" and "remove" are the same operation.
func (s *Store) UpdateQuantity(ctx context.Context, productID string, quantity int) error {
	var err error
	if quantity <= 0 {
		err = s.storage.Delete(ctx, productID)
	} else {
		err = s.storage.SetQuantity(ctx, productID, quantity)
	}
	if err != nil {
		return err
	}
	s.notify(ctx)
	return nil
}

func (s *Store) RemoveFromCart(ctx context.Context, productID string) error {
	if err := s.storage.Delete(ctx, productID); err != nil {
		return err
	}
	s.notify(ctx)
	return nil
}

func (s *Store) ClearCart(ctx context.Context) error {
	if err := s.storage.Clear(ctx); err != nil {
		return err
	}
	s.notify(ctx)
	return nil
}

func (s *Store) Lines(ctx context.Context) ([]models.CartLine, error) {
	return s.storage.GetAll(ctx)
}

func (s *Store) Line(ctx context.Context, productID string) (*models.CartLine, error) {
	return s.storage.GetByProductID(ctx, productID)
}

// Total is the reactive sum of quantity x price across all lines. It is
// recomputed from storage on every call, so it is always current.
func (s *Store) Total(ctx context.Context) (float64, error) {
	return s.storage.Total(ctx)
}

// Subscribe returns a channel receiving a Summary after every mutation
// and a cancel func. Slow consumers miss updates rather than blocking
// mutations.
func (s *Store) Subscribe() (<-chan Summary, func()) {
	ch := make(chan Summary, 1)

	s.mu.Lock()
	s.subs = append(s.subs, ch)
	s.mu.Unlock()

	cancel := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, sub := range s.subs {
			if sub == ch {
				s.subs = append(s.subs[:i], s.subs[i+1:]...)
				close(ch)
				return
			}
		}
	}
	return ch, cancel
}

func (s *Store) notify(ctx context.Context) {
	lines, err := s.storage.GetAll(ctx)
	if err != nil {
		s.log.Log("failed to read cart for notification: %v", err)
		return
	}
	total, err := s.storage.Total(ctx)
	if err != nil {
		s.log.Log("failed to total cart for notification: %v", err)
		return
	}
	summary := Summary{Lines: len(lines), Subtotal: total}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sub := range s.subs {
		select {
		case sub <- summary:
		default:
			// drop the stale summary, keep only the freshest
			select {
			case <-sub:
			default:
			}
			select {
			case sub <- summary:
			default:
			}
		}
	}
}
