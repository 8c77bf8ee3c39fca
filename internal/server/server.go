package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/matthieukhl/oms/internal/apperr"
	"github.com/matthieukhl/oms/internal/database"
	"github.com/matthieukhl/oms/internal/metrics"
	"github.com/matthieukhl/oms/internal/models"
	"github.com/matthieukhl/oms/internal/orders"
)

// OrderService is the order workflow engine surface the handlers call.
type OrderService interface {
	Create(ctx context.Context, in orders.CreateOrderInput) (*models.Order, error)
	FindAll(ctx context.Context) ([]models.Order, error)
	FindOne(ctx context.Context, id string) (*models.Order, error)
	Update(ctx context.Context, id string, in orders.UpdateOrderInput) (*models.Order, error)
	Remove(ctx context.Context, id string) error
}

// ProductStore is the product catalog surface the handlers call.
type ProductStore interface {
	Create(ctx context.Context, p *models.Product) error
	FindAll(ctx context.Context) ([]models.Product, error)
	FindOne(ctx context.Context, id string) (*models.Product, error)
	Update(ctx context.Context, p *models.Product) error
	Remove(ctx context.Context, id string) error
}

// WorkerStore is the worker configuration surface the handlers call.
type WorkerStore interface {
	Create(ctx context.Context, w *models.WorkerConfiguration) error
	FindAll(ctx context.Context) ([]models.WorkerConfiguration, error)
	FindOne(ctx context.Context, id string) (*models.WorkerConfiguration, error)
	Update(ctx context.Context, w *models.WorkerConfiguration) error
	Remove(ctx context.Context, id string) error
}

type Server struct {
	router   *gin.Engine
	db       *database.DB
	orders   OrderService
	products ProductStore
	workers  WorkerStore
	metrics  *metrics.Metrics
}

// NewServer creates a new server instance
func NewServer(db *database.DB, orderSvc OrderService, products ProductStore, workers WorkerStore, m *metrics.Metrics) *Server {
	router := gin.Default()

	server := &Server{
		router:   router,
		db:       db,
		orders:   orderSvc,
		products: products,
		workers:  workers,
		metrics:  m,
	}

	server.setupRoutes()
	return server
}

// setupRoutes configures all API routes
func (s *Server) setupRoutes() {
	s.router.GET("/metrics", gin.WrapH(s.metrics.Handler()))

	api := s.router.Group("/api")
	{
		api.GET("/health", s.healthCheck)

		api.POST("/orders", s.createOrder)
		api.GET("/orders", s.listOrders)
		api.GET("/orders/:id", s.getOrder)
		api.PATCH("/orders/:id", s.updateOrder)
		api.DELETE("/orders/:id", s.deleteOrder)

		api.POST("/products", s.createProduct)
		api.GET("/products", s.listProducts)
		api.GET("/products/:id", s.getProduct)
		api.PATCH("/products/:id", s.updateProduct)
		api.DELETE("/products/:id", s.deleteProduct)

		api.POST("/workers", s.createWorker)
		api.GET("/workers", s.listWorkers)
		api.GET("/workers/:id", s.getWorker)
		api.PATCH("/workers/:id", s.updateWorker)
		api.DELETE("/workers/:id", s.deleteWorker)
	}
}

// healthCheck endpoint for monitoring
func (s *Server) healthCheck(c *gin.Context) {
	// Check database health
	if err := s.db.HealthCheck(); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "error",
			"error":  "database connection failed",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "oms",
		"version": "0.1.0",
	})
}

// renderError maps domain errors to HTTP status codes: missing resources to
// 404, business-rule violations to 400, anything else to 500.
func (s *Server) renderError(c *gin.Context, err error) {
	status := http.StatusInternalServerError

	var notFound *apperr.NotFoundError
	var stock *apperr.InsufficientStockError
	switch {
	case errors.As(err, &notFound):
		status = http.StatusNotFound
	case errors.As(err, &stock):
		status = http.StatusBadRequest
	}

	c.JSON(status, gin.H{"error": err.Error()})
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

// Start starts the HTTP server
func (s *Server) Start(addr string) error {
	return s.router.Run(addr)
}
