package handlers

import (
	"time"

	"github.com/SscSPs/blog_backend/cmd/docs"
	portssvc "github.com/SscSPs/blog_backend/internal/core/ports/services"
	"github.com/SscSPs/blog_backend/internal/dto"
	"github.com/SscSPs/blog_backend/internal/middleware"
	"github.com/SscSPs/blog_backend/internal/platform/config"
	"github.com/SscSPs/blog_backend/internal/utils"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
)

// Options carries the optional collaborators of the router. Nil fields disable the feature.
type Options struct {
	AuthLimiter *limiter.Limiter
	Analytics   *utils.PosthogClientWrapper
}

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	opts Options,
) {
	dto.RegisterValidators()
	r.Use(corsMiddleware(cfg))

	r.GET("/health", getHealth)

	setupAPIRoutes(r, cfg, services, opts)

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)
}

// setupAPIRoutes configures the /api group and delegates to specific entity route registrations
func setupAPIRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	opts Options,
) {
	api := r.Group("/api", middleware.PosthogMiddleware(opts.Analytics))

	limit := func(c *gin.Context) { c.Next() }
	if opts.AuthLimiter != nil {
		limit = middleware.RateLimit(opts.AuthLimiter)
	}

	requireSignin := middleware.RequireSignin(services.Token, cfg.SessionCookieName)
	signedIn := []gin.HandlerFunc{requireSignin, middleware.AuthMiddleware(services.User)}
	admin := []gin.HandlerFunc{requireSignin, middleware.AdminMiddleware(services.User)}

	registerAuthRoutes(api, cfg, services.Auth, limit)
	registerGoogleOAuthRoutes(api, cfg, services.Auth)
	registerUserRoutes(api, services.User, signedIn...)
	registerBlogRoutes(api, services.Blog, blogGates{
		admin:  admin,
		author: signedIn,
		owner:  middleware.CanUpdateDeleteBlog(services.Blog),
	})
	registerTaxonomyRoutes(api, services.Category, "categories", admin...)
	registerTaxonomyRoutes(api, services.Tag, "tags", admin...)
	registerContactRoutes(api, services.Contact)
}

// corsMiddleware allows the configured origins, or the client app when none are set.
func corsMiddleware(cfg *config.Config) gin.HandlerFunc {
	origins := cfg.CORSAllowedOrigins
	if len(origins) == 0 && cfg.ClientURL != "" {
		origins = []string{cfg.ClientURL}
	}
	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(origins) == 0 {
		corsCfg.AllowAllOrigins = true
		corsCfg.AllowCredentials = false
	} else {
		corsCfg.AllowOrigins = origins
	}
	return cors.New(corsCfg)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
