package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/RodolfoDevApp/skaterstore-inventory-go/internal/application"
	"github.com/RodolfoDevApp/skaterstore-inventory-go/internal/config"
	"github.com/RodolfoDevApp/skaterstore-inventory-go/internal/logger"
)

// Services agrupa los casos de uso expuestos por HTTP.
type Services struct {
	Admin    *application.ProductAdminService
	Resolver *application.AvailabilityResolver
	Checkout *application.CheckoutService
	Sales    *application.SalesService
}

// Server agrupa deps para la capa HTTP.
type Server struct {
	cfg     config.Config
	svc     Services
	storage string
	logger  *zap.Logger
}

// NewServer builds the HTTP layer. storage names the backend in use and is reported
// by /health.
func NewServer(cfg config.Config, svc Services, storage string, logger *zap.Logger) *Server {
	return &Server{
		cfg:     cfg,
		svc:     svc,
		storage: storage,
		logger:  logger,
	}
}

// Router returns a gin engine with the middleware chain and every route registered.
func (s *Server) Router() *gin.Engine {
	if s.cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(logger.GinMiddleware(s.logger))
	s.RegisterRoutes(router)
	return router
}

// RegisterRoutes registra todas las rutas HTTP.
func (s *Server) RegisterRoutes(r gin.IRouter) {
	r.GET("/health", s.handleHealth)
	r.GET("/swagger.json", s.handleSwaggerJson)

	api := r.Group("/api")
	{
		products := api.Group("/products")
		products.GET("", s.handleListProducts)
		products.POST("", s.handleCreateProduct)
		products.GET("/:id", s.handleGetProduct)
		products.PUT("/:id", s.handleUpdateProduct)
		products.DELETE("/:id", s.handleDeleteProduct)
		products.PUT("/:id/variants", s.handleSetVariants)
		products.POST("/:id/clone", s.handleCloneProduct)
		products.GET("/:id/availability", s.handleAvailability)

		api.POST("/checkout", s.handleCheckout)

		sales := api.Group("/sales")
		sales.GET("", s.handleListSales)
		sales.GET("/:id", s.handleGetSale)
		sales.DELETE("/:id", s.handleDeleteSale)
	}
}

// Handler /health
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, healthResponse{Status: "ok", Storage: s.storage})
}

// Handler GET /swagger.json
func (s *Server) handleSwaggerJson(c *gin.Context) {
	c.Data(http.StatusOK, "application/json", []byte(openAPISpec))
}
