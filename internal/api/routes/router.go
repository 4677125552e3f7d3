package routes

import (
	"net/http"

	"github.com/pad2skills/backend/internal/api/handlers"
	"github.com/pad2skills/backend/internal/api/middleware"
	"github.com/pad2skills/backend/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	dashboardHandler *handlers.DashboardHandler
	sessionHandler   *handlers.SessionHandler
	chatHandler      *handlers.ChatHandler

	cacheMiddleware *middleware.CacheMiddleware
	metrics         *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(
	dashboardHandler *handlers.DashboardHandler,
	sessionHandler *handlers.SessionHandler,
	chatHandler *handlers.ChatHandler,
	cacheMiddleware *middleware.CacheMiddleware,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux:              http.NewServeMux(),
		dashboardHandler: dashboardHandler,
		sessionHandler:   sessionHandler,
		chatHandler:      chatHandler,
		cacheMiddleware:  cacheMiddleware,
		metrics:          metrics,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	// Health check endpoint
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	// Filter option endpoints
	r.mux.HandleFunc("GET /api/projects", r.dashboardHandler.ListProjects)
	r.mux.HandleFunc("GET /api/industries", r.dashboardHandler.ListIndustries)

	// Dashboard view endpoints
	r.mux.HandleFunc("GET /api/dashboard/occupations/chart", r.dashboardHandler.GetIndustryChart)
	r.mux.HandleFunc("GET /api/dashboard/skills/heatmap", r.dashboardHandler.GetHeatmap)
	r.mux.HandleFunc("GET /api/dashboard/tables/{table}", r.dashboardHandler.GetTablePage)
	r.mux.HandleFunc("GET /api/dashboard/tables/{table}/sample", r.dashboardHandler.GetTableSample)
	r.mux.HandleFunc("GET /api/dashboard/tables/{table}/export", r.dashboardHandler.ExportTable)

	// Session endpoints
	r.mux.HandleFunc("GET /api/session", r.sessionHandler.GetSession)
	r.mux.HandleFunc("DELETE /api/session", r.sessionHandler.EndSession)
	r.mux.HandleFunc("POST /api/session/filters", r.sessionHandler.UpdateFilter)
	r.mux.HandleFunc("POST /api/session/tables/{table}/page", r.sessionHandler.NavigatePage)

	// Chat endpoints
	r.mux.HandleFunc("POST /api/chat", r.chatHandler.SubmitChat)
	r.mux.HandleFunc("GET /api/chat/presets", r.chatHandler.ListPresets)

	// Apply middleware in reverse order (last middleware wraps first)
	// CORS must be outermost so cached responses also get CORS headers.

	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)

	// Apply cache middleware if available
	if r.cacheMiddleware != nil {
		handler = r.cacheMiddleware.Middleware(handler)
	}

	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)

	// Apply HTTP performance optimizations (compression, ETag, cache headers)
	handler = middleware.ResponseOptimization(handler)

	// Session resolution must precede caching and logging so both see the id
	handler = middleware.SessionMiddleware(handler)

	// CORS wraps everything so headers are set even on cache HITs
	handler = middleware.CORSMiddleware(handler)

	return handler
}
