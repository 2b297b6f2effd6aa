package domain

import (
	"errors"
	"time"
)

type Status string

const (
	StatusPending    Status = "Pending"
	StatusProcessing Status = "Processing"
	StatusCompleted  Status = "Completed"
	StatusFailed     Status = "Failed"
)

var (
	ErrMissingCustomerRef = errors.New("customerRef must not be empty")
	ErrMissingProductRef  = errors.New("productRef must not be empty")
	ErrInvalidQuantity    = errors.New("quantity must be a positive integer")
	ErrInvalidUnitPrice   = errors.New("unitPrice must be non-negative")
)

// Order is the single domain entity of the intake pipeline.
// TotalAmount is computed once at construction and never recomputed;
// Status starts at Pending and is only advanced by the processor
// (Processing) and the fulfillment feedback listener (Completed/Failed).
type Order struct {
	ID           string
	CustomerRef  string
	ProductRef   string
	CustomerName string
	ProductName  string
	Quantity     int
	UnitPrice    float64
	TotalAmount  float64
	Status       Status
	Notes        string
	CreatedAt    time.Time
}

// NewOrder validates the submission fields and builds a Pending order.
// The id is supplied by the caller so submission owns id generation.
func NewOrder(id, customerRef, productRef, customerName, productName string, quantity int, unitPrice float64, notes string, now time.Time) (*Order, error) {
	if err := errors.Join(
		validateRef(customerRef, ErrMissingCustomerRef),
		validateRef(productRef, ErrMissingProductRef),
		validateQuantity(quantity),
		validateUnitPrice(unitPrice),
	); err != nil {
		return nil, err
	}

	return &Order{
		ID:           id,
		CustomerRef:  customerRef,
		ProductRef:   productRef,
		CustomerName: customerName,
		ProductName:  productName,
		Quantity:     quantity,
		UnitPrice:    unitPrice,
		TotalAmount:  float64(quantity) * unitPrice,
		Status:       StatusPending,
		Notes:        notes,
		CreatedAt:    now.UTC(),
	}, nil
}

func validateRef(ref string, sentinel error) error {
	if ref == "" {
		return sentinel
	}
	return nil
}

func validateQuantity(q int) error {
	if q <= 0 {
		return ErrInvalidQuantity
	}
	return nil
}

func validateUnitPrice(p float64) error {
	if p < 0 {
		return ErrInvalidUnitPrice
	}
	return nil
}
