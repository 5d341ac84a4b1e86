package httpx

import (
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/manishadtanii/varalobackendv.0/internal/http/handlers"
	"github.com/manishadtanii/varalobackendv.0/internal/http/middleware"
	"github.com/manishadtanii/varalobackendv.0/internal/services"
)

// formOverhead is allowed on top of file payloads for the other form fields
const formOverhead = 1 << 20

// Handlers groups the route handlers
type Handlers struct {
	Auth     *handlers.AuthHandlers
	Pages    *handlers.PageHandlers
	Contacts *handlers.ContactHandlers
	Uploads  *handlers.UploadHandlers
	Admin    *handlers.AdminHandlers
}

// Options tune the router's cross-cutting middleware
type Options struct {
	AllowedOrigins     []string
	AuthRateLimitRPS   float64
	AuthRateLimitBurst int
	MaxUploadSize      int64
	MaxContentSize     int64
}

// corsConfig returns false when no origin is allowed. "*" allows any origin.
func corsConfig(origins []string) (cors.Config, bool) {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(origins) == 0 {
		return cfg, false
	}
	if slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
		return cfg, true
	}
	cfg.AllowOrigins = origins
	return cfg, true
}

func BuildRouter(h Handlers, authMW *middleware.AuthMW, cb *middleware.CasbinMW, logger *slog.Logger, opts Options) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.RequestLogger(logger))
	if cfg, ok := corsConfig(opts.AllowedOrigins); ok {
		r.Use(cors.New(cfg))
	}

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) })

	admin := []gin.HandlerFunc{authMW.RequireAdmin(), cb.Enforce()}
	contentLimit := middleware.MaxBodySize(opts.MaxContentSize + formOverhead)
	uploadLimit := middleware.MaxBodySize(opts.MaxUploadSize + formOverhead)

	api := r.Group("/api")

	auth := api.Group("/auth/admin", middleware.RateLimit(opts.AuthRateLimitRPS, opts.AuthRateLimitBurst), contentLimit)
	auth.POST("/request-otp", h.Auth.RequestOTP)
	auth.POST("/resend-otp", h.Auth.ResendOTP)
	auth.POST("/verify-otp", h.Auth.VerifyOTP)
	auth.POST("/login", h.Auth.Login)
	auth.POST("/request-password-change-otp", h.Auth.RequestPasswordChangeOTP)
	auth.POST("/resend-password-change-otp", h.Auth.ResendPasswordChangeOTP)
	auth.POST("/verify-password-change-otp", h.Auth.VerifyPasswordChangeOTP)
	auth.POST("/change-password", h.Auth.ChangePassword)
	auth.POST("/forgot-password/request-otp", h.Auth.ForgotPasswordRequestOTP)
	auth.POST("/forgot-password/resend-otp", h.Auth.ForgotPasswordResendOTP)
	auth.POST("/forgot-password/verify-otp", h.Auth.ForgotPasswordVerifyOTP)
	auth.POST("/forgot-password/reset", h.Auth.ForgotPasswordReset)
	auth.GET("/me", authMW.RequireAdmin(), h.Auth.Me)

	pages := api.Group("/pages")
	pages.GET("", h.Pages.ListPages)
	pages.GET("/services/:slug", h.Pages.GetServicePage)
	pages.GET("/:slug", h.Pages.GetPage)
	pagesAdmin := pages.Group("", admin...)
	pagesAdmin.PATCH("/:slug", contentLimit, h.Pages.UpdatePage)
	pagesAdmin.PATCH("/sections/:pageSlug/:sectionKey",
		middleware.MaxBodySize(opts.MaxContentSize+opts.MaxUploadSize+formOverhead), h.Pages.UpdateSection)

	contacts := api.Group("/contacts")
	contacts.POST("", middleware.RateLimit(opts.AuthRateLimitRPS, opts.AuthRateLimitBurst), uploadLimit, h.Contacts.Create)
	contactsAdmin := contacts.Group("", admin...)
	contactsAdmin.GET("", h.Contacts.List)
	contactsAdmin.GET("/:id", h.Contacts.Get)
	contactsAdmin.PATCH("/:id", contentLimit, h.Contacts.Update)
	contactsAdmin.DELETE("/:id", h.Contacts.Delete)

	upload := api.Group("/upload", admin...)
	upload.POST("", uploadLimit, h.Uploads.Upload)
	upload.POST("/section", uploadLimit, h.Uploads.UploadSection)
	upload.POST("/multiple", middleware.MaxBodySize(services.MaxBatchUpload*opts.MaxUploadSize+formOverhead), h.Uploads.UploadMultiple)
	upload.DELETE("/*publicId", h.Uploads.Delete)

	adm := api.Group("/admin", admin...)
	adm.GET("/users", h.Admin.ListUsers)
	adm.GET("/policies", h.Admin.ListPolicies)
	adm.POST("/policies", contentLimit, h.Admin.AddPolicy)
	adm.DELETE("/policies", contentLimit, h.Admin.RemovePolicy)

	return r
}
