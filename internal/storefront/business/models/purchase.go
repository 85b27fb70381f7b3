package models

// PurchaseStatus values are the exact lowercase wire strings the remote
// service stores. Anything else silently defaults the status label, so
// unknown values parse back to pending.
type PurchaseStatus string

const (
	StatusPending  PurchaseStatus = "pending"
	StatusApproved PurchaseStatus = "approved"
	StatusRejected PurchaseStatus = "rejected"
)

func ParseStatus(value string) PurchaseStatus {
	switch PurchaseStatus(value) {
	case StatusApproved:
		return StatusApproved
	case StatusRejected:
		return StatusRejected
	default:
		return StatusPending
	}
}

// Terminal reports whether no further transition is allowed. Only the
// administrative actor moves a purchase out of pending.
func (s PurchaseStatus) Terminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// FailedItem records one purchase item the pipeline could not create.
type FailedItem struct {
	ProductID string
	Quantity  int
	Err       error
}

// OrderReceipt is what PlaceOrder returns. SucceededItems and FailedItems
// surface the per-item outcome of step 5; the pipeline itself still
// reports success once the purchase header exists.
type OrderReceipt struct {
	PurchaseID     int
	AddressID      int
	Subtotal       float64
	Tax            float64
	Total          float64
	Status         PurchaseStatus
	SucceededItems int
	FailedItems    []FailedItem
}

// Consistent reports whether every cart line made it into a remote
// purchase item. A false value means the stored total_amount overstates
// the items actually persisted.
func (r *OrderReceipt) Consistent() bool {
	return len(r.FailedItems) == 0
}

// ImageAssetDescriptor is the hosted asset representation the remote
// storage attaches to a resource. It is only ever produced by the server.
type ImageAssetDescriptor struct {
	Path   string
	Name   string
	Type   string
	Size   int
	Mime   string
	URL    string
	Width  int
	Height int
}
