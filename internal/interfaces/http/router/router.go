package router

import (
	"github.com/gin-gonic/gin"
	"github.com/wms/backend/internal/infrastructure/auth"
	"github.com/wms/backend/internal/infrastructure/config"
	"github.com/wms/backend/internal/infrastructure/logger"
	"github.com/wms/backend/internal/interfaces/http/handler"
	"github.com/wms/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// Handlers bundles every HTTP handler the router mounts
type Handlers struct {
	System    *handler.SystemHandler
	Auth      *handler.AuthHandler
	User      *handler.UserHandler
	Product   *handler.ProductHandler
	Customer  *handler.CustomerHandler
	Supplier  *handler.SupplierHandler
	Location  *handler.LocationHandler
	Inventory *handler.InventoryHandler
	Inbound   *handler.InboundOrderHandler
	Outbound  *handler.OutboundOrderHandler
}

// New builds the gin engine with the full middleware chain and route table.
// Viewers can read everything; mutating routes require operator or admin,
// and user administration requires admin.
func New(cfg *config.Config, log *zap.Logger, jwtService *auth.JWTService, blacklist auth.TokenBlacklist, h Handlers) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		_ = engine.SetTrustedProxies(cfg.HTTP.TrustedProxies)
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.GinMiddleware(log))
	engine.Use(logger.Recovery(log))
	engine.Use(middleware.CORS(cfg.HTTP))
	engine.Use(middleware.Secure())

	engine.GET("/health", h.System.Health)
	engine.GET("/ready", h.System.Ready)

	api := engine.Group("/api/v1")

	authPublic := api.Group("/auth")
	{
		authPublic.POST("/login", h.Auth.Login)
		authPublic.POST("/refresh", h.Auth.Refresh)
	}

	protected := api.Group("")
	protected.Use(middleware.JWTAuthMiddleware(jwtService, blacklist, log))

	authPrivate := protected.Group("/auth")
	{
		authPrivate.POST("/logout", h.Auth.Logout)
		authPrivate.GET("/me", h.Auth.Me)
		authPrivate.POST("/change-password", h.Auth.ChangePassword)
	}

	users := protected.Group("/users", middleware.RequireAdmin())
	{
		users.POST("", h.User.Create)
		users.GET("", h.User.List)
		users.GET("/:id", h.User.Get)
		users.PUT("/:id", h.User.Update)
		users.POST("/:id/reset-password", h.User.ResetPassword)
		users.POST("/:id/activate", h.User.Activate)
		users.POST("/:id/deactivate", h.User.Deactivate)
		users.POST("/:id/unlock", h.User.Unlock)
	}

	products := protected.Group("/products")
	{
		products.GET("", h.Product.List)
		products.GET("/:id", h.Product.Get)

		write := products.Group("", middleware.RequireWriter())
		write.POST("", h.Product.Create)
		write.PUT("/:id", h.Product.Update)
		write.POST("/:id/activate", h.Product.Activate)
		write.POST("/:id/deactivate", h.Product.Deactivate)
		write.POST("/:id/discontinue", h.Product.Discontinue)
		write.DELETE("/:id", h.Product.Delete)
	}

	customers := protected.Group("/customers")
	{
		customers.GET("", h.Customer.List)
		customers.GET("/:id", h.Customer.Get)

		write := customers.Group("", middleware.RequireWriter())
		write.POST("", h.Customer.Create)
		write.PUT("/:id", h.Customer.Update)
		write.POST("/:id/activate", h.Customer.Activate)
		write.POST("/:id/deactivate", h.Customer.Deactivate)
		write.DELETE("/:id", h.Customer.Delete)
	}

	suppliers := protected.Group("/suppliers")
	{
		suppliers.GET("", h.Supplier.List)
		suppliers.GET("/:id", h.Supplier.Get)

		write := suppliers.Group("", middleware.RequireWriter())
		write.POST("", h.Supplier.Create)
		write.PUT("/:id", h.Supplier.Update)
		write.POST("/:id/activate", h.Supplier.Activate)
		write.POST("/:id/deactivate", h.Supplier.Deactivate)
		write.DELETE("/:id", h.Supplier.Delete)
	}

	locations := protected.Group("/locations")
	{
		locations.GET("", h.Location.List)
		locations.GET("/:id", h.Location.Get)

		write := locations.Group("", middleware.RequireWriter())
		write.POST("", h.Location.Create)
		write.PUT("/:id", h.Location.Update)
		write.POST("/:id/activate", h.Location.Activate)
		write.POST("/:id/deactivate", h.Location.Deactivate)
		write.DELETE("/:id", h.Location.Delete)
	}

	inv := protected.Group("/inventory")
	{
		inv.GET("/lots", h.Inventory.ListLots)
		inv.GET("/lots/:id", h.Inventory.GetLot)
		inv.GET("/movements", h.Inventory.ListMovements)
		inv.GET("/availability/:id", h.Inventory.GetAvailability)
		inv.POST("/adjustments", middleware.RequireWriter(), h.Inventory.AdjustStock)
	}

	inbound := protected.Group("/inbound-orders")
	{
		inbound.GET("", h.Inbound.List)
		inbound.GET("/:id", h.Inbound.Get)

		write := inbound.Group("", middleware.RequireWriter())
		write.POST("", h.Inbound.Create)
		write.POST("/:id/receive", h.Inbound.Receive)
		write.POST("/:id/cancel", h.Inbound.Cancel)
	}

	outbound := protected.Group("/outbound-orders")
	{
		outbound.GET("", h.Outbound.List)
		outbound.GET("/:id", h.Outbound.Get)

		write := outbound.Group("", middleware.RequireWriter())
		write.POST("", h.Outbound.Create)
		write.POST("/:id/dispatch", h.Outbound.Dispatch)
		write.POST("/:id/amend", h.Outbound.Amend)
		write.POST("/:id/cancel", h.Outbound.Cancel)
	}

	return engine
}
