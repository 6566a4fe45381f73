package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/mgluxury/boutique/docs"
	"github.com/mgluxury/boutique/internal/api/handler"
	"github.com/mgluxury/boutique/internal/api/middleware"
	"github.com/mgluxury/boutique/internal/core/domain"
	"github.com/mgluxury/boutique/internal/core/money"
)

// AuthService signs users in and resolves their sessions.
type AuthService interface {
	handler.AuthService
	middleware.SessionResolver
}

// Dependencies are the services and settings the router wires into handlers.
type Dependencies struct {
	Log           zerolog.Logger
	JWTSecret     string
	Formatter     money.Formatter
	PageSize      int
	MaxImageBytes int64

	Catalog    handler.CatalogService
	Cart       handler.CartService
	Checkout   handler.CheckoutService
	Auth       AuthService
	Account    handler.AccountService
	Admin      handler.AdminService
	Images     handler.ImageService
	Dispatcher handler.EventDispatcher

	// Health lists the backends the readiness probe pings, by name.
	Health map[string]handler.Pinger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(d.Log))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		ExposeHeaders: []string{middleware.HeaderCartID},
	}))
	e.Use(echoprometheus.NewMiddleware("boutique"))

	// --- Handlers ---
	catalogHandler := handler.NewCatalogHandler(d.Catalog, d.Formatter, d.PageSize)
	cartHandler := handler.NewCartHandler(d.Cart, d.Formatter)
	checkoutHandler := handler.NewCheckoutHandler(d.Checkout)
	authHandler := handler.NewAuthHandler(d.Auth)
	accountHandler := handler.NewAccountHandler(d.Account, d.Formatter)
	adminHandler := handler.NewAdminHandler(d.Admin, d.Formatter)
	imageHandler := handler.NewImageHandler(d.Images, d.MaxImageBytes)
	eventHandler := handler.NewEventHandler(d.Dispatcher)

	requireAuth := middleware.Auth(d.JWTSecret, d.Auth)
	optionalAuth := middleware.OptionalAuth(d.JWTSecret, d.Auth)
	adminOnly := middleware.RBAC(domain.RoleAdmin)
	cartSession := middleware.CartSession()

	// --- Health probes and tooling (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(d.Health)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Auth routes ---
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout, requireAuth)
	e.GET("/auth/me", authHandler.Me, requireAuth)

	v1 := e.Group("/v1")

	// --- Storefront catalog ---
	v1.GET("/categories", catalogHandler.Categories)
	v1.GET("/categories/:id", catalogHandler.Category)
	v1.GET("/products", catalogHandler.Products)
	v1.GET("/products/featured", catalogHandler.Featured)
	v1.GET("/products/new", catalogHandler.Newest)
	v1.GET("/products/:id", catalogHandler.Product)

	// --- Cart and checkout ---
	carts := v1.Group("/cart", cartSession)
	carts.GET("", cartHandler.Get)
	carts.DELETE("", cartHandler.Clear)
	carts.POST("/items", cartHandler.AddItem)
	carts.PATCH("/items/:product_id", cartHandler.UpdateItem)
	carts.DELETE("/items/:product_id", cartHandler.RemoveItem)

	v1.POST("/checkout", checkoutHandler.Submit, cartSession, optionalAuth)

	// --- Customer account ---
	v1.GET("/me/orders", accountHandler.Orders, requireAuth)

	// --- Back office ---
	admin := v1.Group("/admin", requireAuth, adminOnly)
	admin.GET("/stats", adminHandler.Stats)
	admin.GET("/stats/products", adminHandler.ProductStats)

	admin.POST("/categories", adminHandler.CreateCategory)
	admin.PUT("/categories/:id", adminHandler.UpdateCategory)
	admin.DELETE("/categories/:id", adminHandler.DeleteCategory)

	admin.POST("/products", adminHandler.CreateProduct)
	admin.PUT("/products/:id", adminHandler.UpdateProduct)
	admin.DELETE("/products/:id", adminHandler.DeleteProduct)
	admin.POST("/images", imageHandler.Upload)

	admin.GET("/orders", adminHandler.Orders)
	admin.POST("/orders/event", eventHandler.Receive)
	admin.POST("/orders/events", eventHandler.ReceiveBatch)
	admin.GET("/orders/:id", adminHandler.Order)
	admin.DELETE("/orders/:id", adminHandler.DeleteOrder)
	admin.POST("/orders/:id/approve", adminHandler.Approve)
	admin.POST("/orders/:id/reject", adminHandler.Reject)
	admin.PATCH("/orders/:id/status", adminHandler.UpdateStatus)

	return e
}

// requestLogger writes one structured line per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Status >= 500 {
				ev = log.Error().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
