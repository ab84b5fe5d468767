package httpserver

import (
	"log"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	cartsvc "wreathworks/internal/service/cart"
	ordersvc "wreathworks/internal/service/order"
)

// Deps carries the services the handlers need.
type Deps struct {
	Catalog  catalogReader
	CartSvc  *cartsvc.Service
	OrderSvc *ordersvc.Service
}

// buildRouter wires routes for the configurator API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowAllOrigins = true
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "X-Session-ID", "X-Customer-ID")
	router.Use(cors.New(corsCfg))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	api := router.Group("/api")
	{
		api.GET("/products", listProductsHandler(deps.Catalog))
		api.GET("/products/:id", getProductHandler(deps.Catalog))
		api.GET("/products/:id/customization-options", getOptionsHandler(deps.Catalog))
		api.POST("/products/:id/quote", quoteHandler(deps.CartSvc))

		api.GET("/cart", getCartHandler(deps.CartSvc))
		api.POST("/cart/items", createCartItemHandler(deps.CartSvc))
		api.PATCH("/cart/items/:id", updateCartItemHandler(deps.CartSvc))
		api.DELETE("/cart/items/:id", deleteCartItemHandler(deps.CartSvc))

		api.POST("/orders", createOrderHandler(deps.OrderSvc))
	}

	return router
}

// sessionID extracts the explicit session identity. No ambient cookie
// lookups: the header is the only source.
func sessionID(c *gin.Context) string {
	return c.GetHeader("X-Session-ID")
}

func customerID(c *gin.Context) *string {
	if v := c.GetHeader("X-Customer-ID"); v != "" {
		return &v
	}
	return nil
}

func locale(c *gin.Context) string {
	if v := c.Query("locale"); v != "" {
		return v
	}
	lang := c.GetHeader("Accept-Language")
	if i := strings.IndexAny(lang, ",;-"); i > 0 {
		lang = lang[:i]
	}
	return lang
}
