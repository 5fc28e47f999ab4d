package api

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/portaldev/portal-admin/internal/auth"
)

// SetupRoutes configures all API routes.
func SetupRoutes(h *Handlers, authManager *auth.Manager, corsOrigins []string) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestID)

	// CORS - allow credentials for auth cookies; explicit origins only
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   corsOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check (no auth required)
	r.Get("/health", h.HealthCheck)

	// Auth routes (no auth required)
	if authManager != nil {
		r.Get("/auth/login", authManager.HandleLogin)
		r.Get("/auth/callback", authManager.HandleCallback)
		r.Get("/auth/logout", authManager.HandleLogout)
		r.Get("/auth/user", authManager.HandleUserInfo)
	}

	// API routes (protected by auth middleware)
	devMode := os.Getenv("DEV_MODE") == "true" || os.Getenv("ENVIRONMENT") == "development"

	r.Route("/api", func(r chi.Router) {
		// Apply auth middleware to all API routes (skip in dev mode)
		if authManager != nil && !devMode {
			r.Use(authManager.RequireAuth)
		}

		// Dashboard - all KPIs in one call
		r.Get("/dashboard", h.GetDashboard)

		// Newsletter subscriber routes
		r.Route("/newsletter/subscribers", func(r chi.Router) {
			r.Get("/", h.ListSubscribers)
			r.Post("/", h.AddSubscriber)
			r.Get("/export", h.ExportSubscribers)
			r.Delete("/{id}", h.RemoveSubscriber)
			r.Post("/{id}/unsubscribe", h.UnsubscribeSubscriber)
		})

		// Newsletter campaign routes
		r.Route("/newsletter/campaigns", func(r chi.Router) {
			r.Get("/", h.ListCampaigns)
			r.Post("/", h.SaveCampaign)
			r.Get("/audience", h.EstimateAudience)
			r.Get("/analytics", h.GetAnalytics)
			r.Post("/test-send", h.SendTestEmail)
			r.Post("/digest", h.CreateDigestDraft)
			r.Get("/{id}", h.GetCampaign)
			r.Put("/{id}", h.SaveCampaign)
			r.Delete("/{id}", h.RemoveCampaign)
		})

		// Blog routes
		r.Route("/blog", func(r chi.Router) {
			r.Get("/", h.ListPosts)
			r.Post("/", h.CreatePost)
			r.Get("/slug/{slug}", h.GetPostBySlug)
			r.Get("/{id}", h.GetPost)
			r.Put("/{id}", h.UpdatePost)
			r.Post("/{id}/publish", h.PublishPost)
			r.Delete("/{id}", h.DeletePost)
		})

		// Admin user routes
		r.Route("/users", func(r chi.Router) {
			r.Get("/", h.ListUsers)
			r.Post("/", h.CreateUser)
			r.Put("/{id}", h.UpdateUser)
			r.Patch("/{id}/status", h.SetUserStatus)
			r.Delete("/{id}", h.DeleteUser)
		})

		// Showcase routes
		r.Route("/showcases", func(r chi.Router) {
			r.Get("/", h.ListShowcases)
			r.Post("/", h.SubmitShowcase)
			r.Patch("/{id}/status", h.ModerateShowcase)
			r.Delete("/{id}", h.DeleteShowcase)
		})

		// Settings routes (pricing + theme)
		r.Route("/settings", func(r chi.Router) {
			r.Get("/plans", h.ListPlans)
			r.Put("/plans/{id}", h.UpdatePlan)
			r.Get("/theme", h.GetTheme)
			r.Put("/theme", h.UpdateTheme)
			r.Post("/theme/reset", h.ResetTheme)
		})

		// Notification routes
		r.Route("/notifications", func(r chi.Router) {
			r.Get("/", h.ListNotifications)
			r.Post("/{id}/read", h.MarkNotificationRead)
			r.Post("/read-all", h.MarkAllNotificationsRead)
		})
	})

	// Serve static files for the React frontend (SPA with index.html fallback)
	spaHandler(r, "./web/dist")

	return r
}

// spaHandler serves static files and falls back to index.html for SPA routing
func spaHandler(r chi.Router, staticPath string) {
	r.Get("/*", func(w http.ResponseWriter, req *http.Request) {
		path := req.URL.Path
		if strings.HasPrefix(path, "/api") || strings.HasPrefix(path, "/health") {
			http.NotFound(w, req)
			return
		}

		filePath := filepath.Join(staticPath, path)
		if _, err := os.Stat(filePath); err == nil {
			http.ServeFile(w, req, filePath)
			return
		}

		http.ServeFile(w, req, filepath.Join(staticPath, "index.html"))
	})
}
