package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"book-manage/internal/shared"
	"book-manage/internal/shared/middleware"
	"book-manage/internal/shared/response"
	"book-manage/pkg/container"
)

// SetupRouter wires every route. The returned handler applies the
// _method override before gin sees the request.
func SetupRouter(c *container.Container) http.Handler {
	router := gin.New()
	router.SetHTMLTemplate(c.Templates)

	cookieName := c.Config.Session.CookieName

	// Global middlewares
	router.Use(
		middleware.RequestID(),
		middleware.Logger(),
		middleware.Locale(c.I18n),
		middleware.Recovery(),
		middleware.ErrorPage(),
		middleware.Session(c.JWTManager, c.AuthService, cookieName),
	)

	router.GET("/health", healthCheckHandler(c))
	router.NoRoute(func(ctx *gin.Context) {
		response.ErrorResponse(ctx, http.StatusNotFound, "NOT_FOUND", "route not found")
	})

	setupAuthRoutes(router, c)
	setupBookRoutes(router, c, cookieName)
	setupAdminRoutes(router, c, cookieName)

	return middleware.MethodOverride(router)
}

// ========================================
// AUTH ROUTES
// ========================================
func setupAuthRoutes(r *gin.Engine, c *container.Container) {
	r.GET("/", c.BookHandler.Index)
	r.GET("/login", c.AuthHandler.LoginPage)
	r.POST("/authenticate", c.AuthHandler.Authenticate)
	r.GET("/loginfailure", c.AuthHandler.LoginFailure)
	r.GET("/logout", c.AuthHandler.Logout)
	r.POST("/logout", c.AuthHandler.Logout)
	r.GET("/logoutsuccess", c.AuthHandler.LogoutSuccess)
	r.GET("/invalidsession", c.AuthHandler.InvalidSession)
}

// ========================================
// BOOK ROUTES
// ========================================
func setupBookRoutes(r *gin.Engine, c *container.Container, cookieName string) {
	books := r.Group("/books")
	books.Use(middleware.RequireAuth(cookieName))
	{
		books.GET("", c.BookHandler.List)
		books.GET("/:id", c.BookHandler.ReadOne)
		books.POST("", c.BookHandler.Create)
		books.PUT("/:id", c.BookHandler.Update)
		books.DELETE("/:id", c.BookHandler.Delete)
	}
}

// ========================================
// ADMIN ROUTES
// ========================================
func setupAdminRoutes(r *gin.Engine, c *container.Container, cookieName string) {
	admin := r.Group("/admin")
	admin.Use(middleware.RequireAuth(cookieName), middleware.RequireAuthority(shared.RoleAdmin))
	{
		admin.GET("", c.BookHandler.Admin)
		admin.GET("/books.xlsx", c.BookHandler.Export)
	}
}

// ========================================
// HEALTH CHECK HANDLER
// ========================================
func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		health := gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   appCtx.Config.App.Version,
			"store":     appCtx.Config.App.Store,
		}

		// Check database (memory store không có DB)
		dbStatus := "ok"
		if appCtx.DB != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := appCtx.DB.Ping(ctx); err != nil {
				dbStatus = fmt.Sprintf("error: %v", err)
				health["status"] = "degraded"
			}

			if stats, err := appCtx.DB.Stats(); err == nil {
				health["database_pool"] = stats
			}
		} else {
			dbStatus = "not_used"
		}

		// Check redis
		redisStatus := "ok"
		if appCtx.Cache == nil {
			redisStatus = "disconnected"
			health["status"] = "degraded"
		} else {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := appCtx.Cache.Ping(ctx); err != nil {
				redisStatus = fmt.Sprintf("error: %v", err)
				health["status"] = "degraded"
			}
		}

		health["services"] = gin.H{
			"database": dbStatus,
			"redis":    redisStatus,
		}

		statusCode := http.StatusOK
		if dbStatus != "ok" && dbStatus != "not_used" {
			statusCode = http.StatusServiceUnavailable
		}

		response.JSON(c, statusCode, health)
	}
}
