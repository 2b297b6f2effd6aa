package http

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"orderintake/internal/adapter/http/middleware"
	"orderintake/internal/logging"
)

type Handlers struct {
	Orders    *OrderHandler
	Customers *CustomerHandler
	Products  *ProductHandler
	Tokens    *TokenHandler
}

func NewRouter(h Handlers, authz *middleware.Authz, log *slog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.MetricsMiddleware())
	r.Use(middleware.Logging(logging.Child(log, "http")))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})
	// Prometheus endpoint (scraped by Prometheus)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.POST("/v1/token", h.Tokens.IssueToken)

	// Submission contract route: fire-and-forget intake.
	r.POST("/orders/submit", h.Orders.SubmitOrder)

	v1 := r.Group("/v1")
	{
		v1.POST("/orders", authz.Require("orders.write"), h.Orders.SubmitOrder)
		v1.GET("/orders/:id", authz.Require("orders.read"), h.Orders.GetOrderByID)
		v1.GET("/orders", authz.Require("orders.read"), h.Orders.ListOrders)

		v1.POST("/customers", authz.Require("catalog.write"), h.Customers.Create)
		v1.GET("/customers/:id", authz.Require("catalog.read"), h.Customers.GetByID)
		v1.GET("/customers", authz.Require("catalog.read"), h.Customers.List)

		v1.POST("/products", authz.Require("catalog.write"), h.Products.Create)
		v1.GET("/products/:id", authz.Require("catalog.read"), h.Products.GetByID)
		v1.GET("/products", authz.Require("catalog.read"), h.Products.List)
	}

	return r
}
