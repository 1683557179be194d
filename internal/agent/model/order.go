package model

import (
	"fmt"
	"math"
	"time"
)

// DefaultUnitPrice is the catalog price applied to extracted orders.
const DefaultUnitPrice = 15.99

// OrderDraft is an order recovered from a transcript. Pointer fields are nil
// when nothing was extracted.
type OrderDraft struct {
	CustomerName    *string        `json:"customer_name"`
	CustomerContact *string        `json:"customer_id"`
	BookTitle       *string        `json:"book_title"`
	Author          *string        `json:"author"`
	Genre           *string        `json:"genre"`
	Quantity        *int           `json:"quantity"`
	UnitPrice       float64        `json:"unit_price"`
	TotalAmount     *float64       `json:"total_amount"`
	PaymentMethod   *string        `json:"payment_method"`
	DeliveryOption  DeliveryOption `json:"delivery_option"`
	DeliveryAddress *string        `json:"delivery_address"`
	SpecialRequests *string        `json:"special_requests"`
	Status          OrderStatus    `json:"order_status"`
	OrderID         *string        `json:"order_id,omitempty"`
	OrderDate       *time.Time     `json:"order_date,omitempty"`
}

// NewOrderDraft returns an empty draft with the catalog price.
func NewOrderDraft() OrderDraft {
	return OrderDraft{UnitPrice: DefaultUnitPrice, DeliveryOption: HomeDelivery, Status: OrderDraftStatus}
}

// SetQuantity stores q and recomputes the total.
func (o *OrderDraft) SetQuantity(q int) {
	o.Quantity = &q
	total := math.Round(float64(q)*o.UnitPrice*100) / 100
	o.TotalAmount = &total
}

// IsConfirmed reports whether an explicit confirmation happened.
func (o OrderDraft) IsConfirmed() bool { return o.Status == OrderConfirmed }

// Confirm promotes a draft. It is the only way an order leaves draft status.
func (o OrderDraft) Confirm(orderID string, at time.Time) (OrderDraft, error) {
	if o.IsConfirmed() {
		return o, fmt.Errorf("order %s already confirmed", deref(o.OrderID))
	}
	if o.BookTitle == nil {
		return o, fmt.Errorf("cannot confirm an order without a book title")
	}
	if o.Quantity == nil {
		o.SetQuantity(1)
	}
	o.Status = OrderConfirmed
	o.OrderID = &orderID
	o.OrderDate = &at
	return o, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
