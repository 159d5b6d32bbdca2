// Package server implements the HTTP server and routing logic.
package server

import (
	"net/http"

	"github.com/rs/cors"

	"github.com/abrar360/unidrive/internal/server/handlers"
	"github.com/abrar360/unidrive/internal/server/ratelimit"
	"github.com/abrar360/unidrive/internal/storage"
)

// NewRouter creates and configures the HTTP router. The caller owns the
// returned Tiers and must Close it on shutdown.
func NewRouter(svc *handlers.Services, cfg *handlers.Config, limits storage.RateLimits, corsOrigins []string) (http.Handler, *ratelimit.Tiers) {
	tiers := ratelimit.NewTiers(limits.ReadRatePerMin, limits.WriteRatePerMin)
	mux := &http.ServeMux{}

	dh := handlers.NewDocumentHandler(svc)
	fh := handlers.NewFolderHandler(svc)
	ph := handlers.NewPreviewHandler(svc)
	hh := handlers.NewHealthHandler(cfg.Version)

	// Health check
	mux.Handle("GET /health", Wrap(hh.Health, svc, cfg, tiers))

	// Document endpoints
	mux.Handle("GET /documents", Wrap(dh.ListDocuments, svc, cfg, tiers))
	mux.Handle("POST /documents", Wrap(dh.CreateDocument, svc, cfg, tiers))
	mux.Handle("GET /documents/{id}", Wrap(dh.GetDocument, svc, cfg, tiers))
	mux.Handle("PUT /documents/{id}", Wrap(dh.UpdateDocument, svc, cfg, tiers))
	mux.Handle("DELETE /documents/{id}", Wrap(dh.DeleteDocument, svc, cfg, tiers))
	mux.Handle("PUT /documents/{id}/move", Wrap(dh.MoveDocument, svc, cfg, tiers))

	// Folder endpoints
	mux.Handle("GET /folders", Wrap(fh.ListFolders, svc, cfg, tiers))
	mux.Handle("POST /folders", Wrap(fh.CreateFolder, svc, cfg, tiers))
	mux.Handle("GET /folders/{id}", Wrap(fh.GetFolder, svc, cfg, tiers))
	mux.Handle("PUT /folders/{id}", Wrap(fh.RenameFolder, svc, cfg, tiers))
	mux.Handle("DELETE /folders/{id}", Wrap(fh.DeleteFolder, svc, cfg, tiers))

	// Preview endpoints (raw file serving)
	mux.Handle("GET /previews/{filename}", WrapRaw(ph.ServePreviewFile, cfg, tiers))
	mux.Handle("POST /generate-previews", Wrap(ph.GeneratePreviews, svc, cfg, tiers))

	c := cors.New(cors.Options{
		AllowedOrigins: corsOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders: []string{"*"},
	})
	return c.Handler(LogRequests(mux)), tiers
}
