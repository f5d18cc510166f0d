// File: internal/handlers/router.go
package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/iyunix/go-vendornexus/internal/middleware"
	"github.com/iyunix/go-vendornexus/internal/ratelimit"
)

// RouterConfig collects what NewRouter mounts. Nil handlers leave their
// routes out, so a server without a bot token still serves the UI API.
type RouterConfig struct {
	Webhook   *WebhookHandler
	Sourcing  *SourcingHandler
	Vault     *VaultHandler
	Export    *ExportHandler
	Documents *DocumentHandler
	Log       *LogHandler

	JWTSecret     []byte
	CORSOrigins   []string
	APILimiter    *ratelimit.MemoryRateLimiter
	UploadLimiter *ratelimit.MemoryRateLimiter
	Logger        Logger
}

func NewRouter(cfg RouterConfig) *mux.Router {
	mwLog := cfg.Logger

	r := mux.NewRouter()
	r.Use(middleware.RecoverPanic(mwLog))
	r.Use(middleware.LoggingMiddleware(mwLog))

	// --- Public Routes ---
	r.HandleFunc("/health", Health).Methods(http.MethodGet)
	if cfg.Webhook != nil {
		r.HandleFunc("/webhook/telegram", Health).Methods(http.MethodGet)
		r.HandleFunc("/webhook/telegram", cfg.Webhook.Receive).Methods(http.MethodPost)
	}

	// --- UI API ---
	api := r.PathPrefix("/api").Subrouter()
	api.Use(middleware.CORS(cfg.CORSOrigins))
	if cfg.APILimiter != nil {
		api.Use(middleware.RateLimitMiddleware(cfg.APILimiter, "api", mwLog))
	}
	// Preflight requests never reach a method-specific route.
	api.Methods(http.MethodOptions).HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

	if cfg.Log != nil {
		api.HandleFunc("/log", cfg.Log.LogFrontendEvent).Methods(http.MethodPost)
	}
	if cfg.Export != nil {
		api.HandleFunc("/export/{format:csv|pdf}", cfg.Export.Export).Methods(http.MethodPost)
	}
	if cfg.Documents != nil {
		docs := api.PathPrefix("/documents").Subrouter()
		if cfg.UploadLimiter != nil {
			docs.Use(middleware.RateLimitMiddleware(cfg.UploadLimiter, "upload", mwLog))
		}
		docs.HandleFunc("", cfg.Documents.Upload).Methods(http.MethodPost)
	}

	owned := api.NewRoute().Subrouter()
	owned.Use(middleware.NewOwnerMiddleware(cfg.JWTSecret, mwLog))
	if cfg.Sourcing != nil {
		owned.HandleFunc("/sourcing/start", cfg.Sourcing.Start).Methods(http.MethodPost)
		owned.HandleFunc("/sourcing/turn", cfg.Sourcing.Turn).Methods(http.MethodPost)
		owned.HandleFunc("/sourcing/more", cfg.Sourcing.More).Methods(http.MethodPost)
	}
	if cfg.Vault != nil {
		owned.HandleFunc("/vault/sessions", cfg.Vault.List).Methods(http.MethodGet)
		owned.HandleFunc("/vault/sessions", cfg.Vault.Save).Methods(http.MethodPut)
		owned.HandleFunc("/vault/sessions/{id}", cfg.Vault.Get).Methods(http.MethodGet)
		owned.HandleFunc("/vault/sessions/{id}", cfg.Vault.Delete).Methods(http.MethodDelete)
	}

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, "Not found", http.StatusNotFound)
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
	})
	return r
}
