package rest

import (
	"net/http"

	"careervision/internal/catalog"
	"careervision/internal/service"
	"careervision/internal/session"
	"careervision/internal/transport/rest/handler"
	"careervision/internal/transport/rest/middleware"
	"careervision/internal/transport/ws"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Container holds all dependencies for the router
type Container struct {
	AuthService    *service.AuthService
	SessionService *service.SessionService
	RecordService  *service.RecordService
	Catalog        *catalog.Catalog
	Scale          session.Scale
	WSHub          *ws.Hub
	CORSOrigins    string
	Logger         *zap.Logger
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	// Initialize handlers
	authHandler := handler.NewAuthHandler(c.AuthService)
	catalogHandler := handler.NewCatalogHandler(c.Catalog, c.Scale)
	sessionHandler := handler.NewSessionHandler(c.SessionService, c.Catalog, c.Logger)
	recordHandler := handler.NewRecordHandler(c.RecordService, c.Logger)
	wsHandler := ws.NewHandler(c.WSHub, c.AuthService, c.Logger)

	// Initialize middleware
	authMW := middleware.NewAuthMiddleware(c.AuthService)

	// API v1 routes
	v1 := r.PathPrefix("/v1").Subrouter()

	// Public routes
	v1.HandleFunc("/catalog", catalogHandler.Get).Methods("GET", "OPTIONS")
	v1.HandleFunc("/sessions", sessionHandler.Create).Methods("POST", "OPTIONS")
	v1.HandleFunc("/sessions/{id}", sessionHandler.Get).Methods("GET", "OPTIONS")
	v1.HandleFunc("/sessions/{id}", sessionHandler.Delete).Methods("DELETE")
	v1.HandleFunc("/sessions/{id}/start", sessionHandler.Start).Methods("POST", "OPTIONS")
	v1.HandleFunc("/sessions/{id}/answers", sessionHandler.Answer).Methods("POST", "OPTIONS")
	v1.HandleFunc("/sessions/{id}/profile", sessionHandler.SubmitProfile).Methods("POST", "OPTIONS")
	v1.HandleFunc("/sessions/{id}/restart", sessionHandler.Restart).Methods("POST", "OPTIONS")
	v1.HandleFunc("/admin/login", authHandler.Login).Methods("POST", "OPTIONS")

	// WebSocket routes (public with token in query param)
	v1.HandleFunc("/ws/admin", wsHandler.AdminWS).Methods("GET")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	// Admin routes (require admin auth)
	adminRoutes := v1.PathPrefix("/admin").Subrouter()
	adminRoutes.Use(authMW.RequireAdmin)

	adminRoutes.HandleFunc("/records", recordHandler.List).Methods("GET")
	adminRoutes.HandleFunc("/records", recordHandler.Clear).Methods("DELETE")

	// Preflight requests are answered before route matching
	return middleware.Logging(c.Logger)(middleware.CORS(c.CORSOrigins)(r))
}
