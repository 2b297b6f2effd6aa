package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	domain "orderintake/internal/entity"
	"orderintake/internal/usecase"
)

type OrderHandler struct {
	submit *usecase.SubmitOrder
	query  usecase.OrderStore
}

func NewOrderHandler(submit *usecase.SubmitOrder, query usecase.OrderStore) *OrderHandler {
	return &OrderHandler{submit: submit, query: query}
}

type submitOrderReq struct {
	CustomerRef  string  `json:"customerRef"`
	ProductRef   string  `json:"productRef"`
	CustomerName string  `json:"customerName"`
	ProductName  string  `json:"productName"`
	Quantity     int     `json:"quantity"`
	UnitPrice    float64 `json:"unitPrice"`
	Notes        string  `json:"notes"`
}

type submitOrderResp struct {
	OrderID     string    `json:"orderId"`
	TotalAmount float64   `json:"totalAmount"`
	Timestamp   time.Time `json:"timestamp"`
}

// SubmitOrder accepts a submission, enqueues it, and answers as soon as
// the broker confirmed the publish. No storage I/O happens here.
func (h *OrderHandler) SubmitOrder(c *gin.Context) {
	var req submitOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}

	idemKey := c.GetHeader("X-Idempotency-Key") // optional client retry dedupe

	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	out, err := h.submit.Execute(ctx, usecase.SubmitOrderInput{
		CustomerRef:    req.CustomerRef,
		ProductRef:     req.ProductRef,
		CustomerName:   req.CustomerName,
		ProductName:    req.ProductName,
		Quantity:       req.Quantity,
		UnitPrice:      req.UnitPrice,
		Notes:          req.Notes,
		IdempotencyKey: idemKey,
	})

	if err != nil {
		status := http.StatusInternalServerError
		switch {
		case isValidationErr(err):
			status = http.StatusBadRequest
		case errors.Is(err, usecase.ErrDuplicate):
			status = http.StatusConflict
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, submitOrderResp{
		OrderID:     out.OrderID,
		TotalAmount: out.TotalAmount,
		Timestamp:   out.CreatedAt,
	})
}

func isValidationErr(err error) bool {
	return errors.Is(err, domain.ErrMissingCustomerRef) ||
		errors.Is(err, domain.ErrMissingProductRef) ||
		errors.Is(err, domain.ErrInvalidQuantity) ||
		errors.Is(err, domain.ErrInvalidUnitPrice)
}

func (h *OrderHandler) GetOrderByID(c *gin.Context) {
	id := c.Param("id")
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	o, err := h.query.GetByID(ctx, id)
	if err != nil || o == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not_found"})
		return
	}
	c.JSON(http.StatusOK, orderJSON(o))
}

func (h *OrderHandler) ListOrders(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	orders, err := h.query.List(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error"})
		return
	}
	out := make([]gin.H, 0, len(orders))
	for _, o := range orders {
		out = append(out, orderJSON(o))
	}
	c.JSON(http.StatusOK, out)
}

func orderJSON(o *domain.Order) gin.H {
	return gin.H{
		"id":           o.ID,
		"customerRef":  o.CustomerRef,
		"productRef":   o.ProductRef,
		"customerName": o.CustomerName,
		"productName":  o.ProductName,
		"quantity":     o.Quantity,
		"unitPrice":    o.UnitPrice,
		"totalAmount":  o.TotalAmount,
		"status":       string(o.Status),
		"notes":        o.Notes,
		"createdAt":    o.CreatedAt,
	}
}
