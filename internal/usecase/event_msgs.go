package usecase

import (
	"time"

	domain "orderintake/internal/entity"
)

// OrderSubmittedMsg is the queue wire contract between submission and
// processing. Field names are load-bearing: the processor deserializes
// by name, so they must not change.
type OrderSubmittedMsg struct {
	ID           string    `json:"id"`
	CustomerRef  string    `json:"customerRef"`
	ProductRef   string    `json:"productRef"`
	CustomerName string    `json:"customerName"`
	ProductName  string    `json:"productName"`
	Quantity     int       `json:"quantity"`
	UnitPrice    float64   `json:"unitPrice"`
	TotalAmount  float64   `json:"totalAmount"`
	Status       string    `json:"status"`
	Notes        string    `json:"notes"`
	CreatedAt    time.Time `json:"createdAt"`
}

func NewOrderSubmittedMsg(o *domain.Order) OrderSubmittedMsg {
	return OrderSubmittedMsg{
		ID:           o.ID,
		CustomerRef:  o.CustomerRef,
		ProductRef:   o.ProductRef,
		CustomerName: o.CustomerName,
		ProductName:  o.ProductName,
		Quantity:     o.Quantity,
		UnitPrice:    o.UnitPrice,
		TotalAmount:  o.TotalAmount,
		Status:       string(o.Status),
		Notes:        o.Notes,
		CreatedAt:    o.CreatedAt,
	}
}

// Order reconstructs a fresh domain value from the wire copy. The
// processor mutates this copy, never the submitter's original.
func (m OrderSubmittedMsg) Order() *domain.Order {
	return &domain.Order{
		ID:           m.ID,
		CustomerRef:  m.CustomerRef,
		ProductRef:   m.ProductRef,
		CustomerName: m.CustomerName,
		ProductName:  m.ProductName,
		Quantity:     m.Quantity,
		UnitPrice:    m.UnitPrice,
		TotalAmount:  m.TotalAmount,
		Status:       domain.Status(m.Status),
		Notes:        m.Notes,
		CreatedAt:    m.CreatedAt,
	}
}

// OrderStatusChangedMsg is sent by fulfillment on Kafka.
type OrderStatusChangedMsg struct {
	OrderID string `json:"orderId"`
	Status  string `json:"status"` // e.g. "SUCCESS", "REJECTED"
}
