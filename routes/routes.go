package routes

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/infpro/storefront-api/auth"
	ordercontroller "github.com/infpro/storefront-api/controllers/order"
	productcontroller "github.com/infpro/storefront-api/controllers/product"
	"github.com/infpro/storefront-api/middleware"
	"github.com/infpro/storefront-api/respond"
)

// Dependencies are the services the HTTP layer dispatches to.
type Dependencies struct {
	Catalog *productcontroller.Catalog
	Auth    *auth.Service
	Orders  *ordercontroller.Service
	Hub     *ordercontroller.Hub

	AdminAPIKey string
	// TrustedProxies may set X-Forwarded-For; nil trusts none, so the
	// client IP used for rate limiting is the socket peer.
	TrustedProxies []string
	// PublicDir is served for non-API paths when set.
	PublicDir string
	// RateLimiter is optional; nil disables rate limiting.
	RateLimiter *middleware.RateLimiter
}

// NewRouter builds the engine with the standard middleware chain and every
// route group.
func NewRouter(deps Dependencies) *gin.Engine {
	r := gin.New()
	if err := r.SetTrustedProxies(deps.TrustedProxies); err != nil {
		slog.Warn("invalid trusted proxies, trusting none", "proxies", deps.TrustedProxies, "error", err)
		_ = r.SetTrustedProxies(nil)
	}

	// Allow spreadsheet uploads up to 32 MB in memory
	r.MaxMultipartMemory = 32 << 20

	r.Use(middleware.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Accept", "Authorization", "X-API-KEY"},
		ExposeHeaders:   []string{"Content-Length", "Content-Disposition"},
		MaxAge:          12 * time.Hour,
	}))
	if deps.RateLimiter != nil {
		r.Use(middleware.RateLimit(deps.RateLimiter))
	}

	SetupRoutes(r, deps)
	return r
}

// SetupRoutes is the single entry-point that wires up every route group.
func SetupRoutes(r *gin.Engine, deps Dependencies) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Public auth routes, plus the token-protected profile
	SetupAuthRoutes(r, deps)

	SetupProductRoutes(r, deps)
	SetupOrderRoutes(r, deps)
	SetupReviewRoutes(r)

	// Admin routes (API-Key-protected)
	SetupAdminRoutes(r, deps)

	r.NoRoute(noRoute(deps.PublicDir))
}

// noRoute serves the storefront's static files for non-API GETs and answers
// everything else with a JSON 404.
func noRoute(publicDir string) gin.HandlerFunc {
	var files http.Handler
	if publicDir != "" {
		files = http.FileServer(http.Dir(publicDir))
	}
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		isRead := c.Request.Method == http.MethodGet || c.Request.Method == http.MethodHead
		if files == nil || !isRead || path == "/api" || strings.HasPrefix(path, "/api/") {
			respond.Message(c, http.StatusNotFound, "not found")
			return
		}
		files.ServeHTTP(c.Writer, c.Request)
	}
}
