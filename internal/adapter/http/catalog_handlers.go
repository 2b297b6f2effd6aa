package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"orderintake/internal/usecase"
)

// Plain request/response CRUD for the catalog collaborators. These
// handlers write their repos directly; they are not part of the queue
// pipeline and must stay out of it.

type CustomerHandler struct {
	repo usecase.CustomerRepo
}

func NewCustomerHandler(repo usecase.CustomerRepo) *CustomerHandler {
	return &CustomerHandler{repo: repo}
}

type createCustomerReq struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
}

func (h *CustomerHandler) Create(c *gin.Context) {
	var req createCustomerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	rec := &usecase.CustomerRecord{ID: uuid.NewString(), Name: req.Name, Email: req.Email}
	if err := h.repo.Create(ctx, rec); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": rec.ID, "name": rec.Name, "email": rec.Email})
}

func (h *CustomerHandler) GetByID(c *gin.Context) {
	ctx, cancel := reqCtx(c)
	defer cancel()

	rec, err := h.repo.GetByID(ctx, c.Param("id"))
	if err != nil || rec == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not_found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": rec.ID, "name": rec.Name, "email": rec.Email})
}

func (h *CustomerHandler) List(c *gin.Context) {
	ctx, cancel := reqCtx(c)
	defer cancel()

	recs, err := h.repo.List(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error"})
		return
	}
	out := make([]gin.H, 0, len(recs))
	for _, rec := range recs {
		out = append(out, gin.H{"id": rec.ID, "name": rec.Name, "email": rec.Email})
	}
	c.JSON(http.StatusOK, out)
}

type ProductHandler struct {
	repo usecase.ProductRepo
}

func NewProductHandler(repo usecase.ProductRepo) *ProductHandler {
	return &ProductHandler{repo: repo}
}

type createProductReq struct {
	Name      string  `json:"name" binding:"required"`
	UnitPrice float64 `json:"unitPrice" binding:"gte=0"`
}

func (h *ProductHandler) Create(c *gin.Context) {
	var req createProductReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	rec := &usecase.ProductRecord{ID: uuid.NewString(), Name: req.Name, UnitPrice: req.UnitPrice}
	if err := h.repo.Create(ctx, rec); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": rec.ID, "name": rec.Name, "unitPrice": rec.UnitPrice})
}

func (h *ProductHandler) GetByID(c *gin.Context) {
	ctx, cancel := reqCtx(c)
	defer cancel()

	rec, err := h.repo.GetByID(ctx, c.Param("id"))
	if err != nil || rec == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not_found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": rec.ID, "name": rec.Name, "unitPrice": rec.UnitPrice})
}

func (h *ProductHandler) List(c *gin.Context) {
	ctx, cancel := reqCtx(c)
	defer cancel()

	recs, err := h.repo.List(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error"})
		return
	}
	out := make([]gin.H, 0, len(recs))
	for _, rec := range recs {
		out = append(out, gin.H{"id": rec.ID, "name": rec.Name, "unitPrice": rec.UnitPrice})
	}
	c.JSON(http.StatusOK, out)
}

func reqCtx(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), 2*time.Second)
}
