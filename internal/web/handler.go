package web

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/a-h/templ"

	"github.com/regwatch/regwatch/internal/aggregate"
	"github.com/regwatch/regwatch/internal/web/templates"
)

// SnapshotSource serves cached aggregation snapshots and derived views.
type SnapshotSource interface {
	Get(ctx context.Context) (*aggregate.Snapshot, error)
	ForceRefresh(ctx context.Context) (*aggregate.Snapshot, error)
	RecentDocuments(ctx context.Context) ([]aggregate.Document, error)
	AgencyDetail(ctx context.Context, slug string) (aggregate.Agency, error)
	Populated() bool
}

type handler struct {
	source SnapshotSource
}

// NewHandler builds the HTTP handler for the tracker.
func NewHandler(source SnapshotSource) http.Handler {
	h := &handler{source: source}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", h.dashboard)
	mux.HandleFunc("GET /recent", h.recentPage)
	mux.HandleFunc("GET /api/agency-stats", h.agencyStats)
	mux.HandleFunc("GET /api/recent", h.recentDocuments)
	mux.HandleFunc("GET /api/agency/{slug}", h.agencyDetail)
	mux.HandleFunc("GET /api/health", h.health)
	mux.HandleFunc("GET /refresh", h.refresh)
	mux.HandleFunc("POST /refresh", h.refresh)
	return mux
}

func (h *handler) dashboard(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.source.Get(r.Context())
	if err != nil {
		log.Printf("dashboard snapshot: %v", err)
		w.WriteHeader(http.StatusServiceUnavailable)
		renderPage(w, r, templates.Error("The Federal Register API is currently unreachable."))
		return
	}
	renderPage(w, r, templates.Dashboard(dashboardData(snapshot)))
}

func (h *handler) recentPage(w http.ResponseWriter, r *http.Request) {
	docs, err := h.source.RecentDocuments(r.Context())
	if err != nil {
		log.Printf("recent page: %v", err)
		w.WriteHeader(http.StatusServiceUnavailable)
		renderPage(w, r, templates.Error("The Federal Register API is currently unreachable."))
		return
	}
	renderPage(w, r, templates.Recent(recentData(docs)))
}

type agencyStatsResponse struct {
	LastUpdated   string             `json:"last_updated"`
	TotalAgencies int                `json:"total_agencies"`
	Agencies      []aggregate.Agency `json:"agencies"`
}

func (h *handler) agencyStats(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.source.Get(r.Context())
	if err != nil {
		writeJSONError(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, agencyStatsResponse{
		LastUpdated:   snapshot.BuiltAt.Format(time.RFC3339),
		TotalAgencies: len(snapshot.Agencies),
		Agencies:      snapshot.Agencies,
	})
}

type recentResponse struct {
	Count     int                  `json:"count"`
	Documents []aggregate.Document `json:"documents"`
}

func (h *handler) recentDocuments(w http.ResponseWriter, r *http.Request) {
	docs, err := h.source.RecentDocuments(r.Context())
	if err != nil {
		writeJSONError(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	if docs == nil {
		docs = []aggregate.Document{}
	}
	writeJSON(w, http.StatusOK, recentResponse{Count: len(docs), Documents: docs})
}

func (h *handler) agencyDetail(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	agency, err := h.source.AgencyDetail(r.Context(), slug)
	if err != nil {
		if errors.Is(err, aggregate.ErrAgencyNotFound) {
			writeJSONError(w, http.StatusNotFound, "agency with slug '"+slug+"' not found")
			return
		}
		writeJSONError(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, agency)
}

func (h *handler) health(w http.ResponseWriter, r *http.Request) {
	cacheStatus := "empty"
	if h.source.Populated() {
		cacheStatus = "populated"
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status":       "healthy",
		"timestamp":    time.Now().UTC().Format(time.RFC3339),
		"cache_status": cacheStatus,
	})
}

func (h *handler) refresh(w http.ResponseWriter, r *http.Request) {
	log.Printf("manual cache refresh requested")
	snapshot, err := h.source.ForceRefresh(r.Context())
	if err != nil {
		writeJSONError(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":         "success",
		"last_updated":   snapshot.BuiltAt.Format(time.RFC3339),
		"total_agencies": len(snapshot.Agencies),
	})
}

func renderPage(w http.ResponseWriter, r *http.Request, page templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := page.Render(r.Context(), w); err != nil {
		log.Printf("render page: %v", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("encode response: %v", err)
	}
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
