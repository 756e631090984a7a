package routes

import (
	"net/http"

	"github.com/templui/smartgoals/assets"
	"github.com/templui/smartgoals/internal/app"
	"github.com/templui/smartgoals/internal/handler"
	"github.com/templui/smartgoals/internal/middleware"
)

func SetupRoutes(app *app.App) http.Handler {
	// Handlers
	home := handler.NewHomeHandler()
	goal := handler.NewGoalHandler(app.GoalService)
	help := handler.NewHelpHandler(app.HelpService)
	seo := handler.NewSEOHandler(app.SitemapService)

	mux := http.NewServeMux()

	// Static files
	mux.Handle("GET /assets/", http.StripPrefix("/assets/", http.FileServer(http.FS(assets.AssetsFS))))

	// SEO
	mux.HandleFunc("GET /robots.txt", seo.Robots)
	mux.HandleFunc("GET /sitemap.xml", seo.Sitemap)

	// Observability
	if app.MetricsHandler != nil {
		mux.Handle("GET /metrics", app.MetricsHandler)
	}

	// Pages
	mux.HandleFunc("GET /{$}", home.HomePage)
	mux.HandleFunc("GET /help", help.HelpPage)

	// Goals
	mux.HandleFunc("GET /goals", goal.GoalsPage)
	mux.HandleFunc("GET /goals/export", goal.Export)
	mux.HandleFunc("POST /add", goal.Create)
	mux.HandleFunc("GET /edit/{id}", goal.EditPage)
	mux.HandleFunc("POST /edit/{id}", goal.Update)
	mux.HandleFunc("GET /delete/{id}", goal.Delete)
	mux.HandleFunc("GET /toggle_complete/{id}", goal.ToggleComplete)
	mux.HandleFunc("POST /checkin/{id}", goal.CreateCheckin)

	// 404
	mux.HandleFunc("/{path...}", home.NotFoundPage)

	// Global middleware - executed in order (top to bottom)
	handler := middleware.Chain(
		mux,
		middleware.Config(app.Cfg),             // Config must be first (CSRF reads APP_ENV for the cookie)
		middleware.NonceMiddleware,             // Generate CSP nonce for each request (must be before SecurityHeaders)
		middleware.SecurityHeaders,             // Security headers for all responses (XSS, clickjacking, etc.)
		middleware.RequestLogging(app.Metrics), // Request id, access log and request metrics
		middleware.RateLimitWrites(app.Cfg.WriteRateLimit, app.Cfg.WriteRateBurst),
		middleware.CSRFProtection, // CSRF protection for all state-changing requests
		middleware.WithURLPath,
	)

	return handler
}
