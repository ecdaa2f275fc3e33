package handler

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/hive-corporation/statuswatch/internal/adapter/exporter"
	"github.com/hive-corporation/statuswatch/internal/core/ports"
)

type RestHandler struct {
	repo ports.ReportRepository
	now  func() time.Time
}

func NewRestHandler(repo ports.ReportRepository) *RestHandler {
	return &RestHandler{
		repo: repo,
		now:  time.Now,
	}
}

// Routes registers every API endpoint on the given router.
func (h *RestHandler) Routes(r *mux.Router) {
	r.HandleFunc("/health", h.Health).Methods(http.MethodGet)
	r.HandleFunc("/api/v1/reports/latest", h.LatestReports).Methods(http.MethodGet)
	r.HandleFunc("/api/v1/reports", h.ReportsSince).Methods(http.MethodGet)
	r.HandleFunc("/api/v1/reports/{vendor}", h.VendorReport).Methods(http.MethodGet)
	r.HandleFunc("/api/v1/digest", h.Digest).Methods(http.MethodGet)
}

// Health check endpoint
func (h *RestHandler) Health(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status":    "healthy",
		"timestamp": h.now().UTC().Format(time.RFC3339),
		"service":   "statuswatch-api",
	}
	writeJSON(w, http.StatusOK, response)
}

// LatestReports returns the most recent report of every vendor.
func (h *RestHandler) LatestReports(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	reports, err := h.repo.LatestPerVendor(ctx)
	if err != nil {
		log.Printf("Failed to load latest reports: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to load reports")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"count":   len(reports),
		"reports": reports,
	})
}

// ReportsSince returns report history filtered by a relative duration,
// e.g. ?since=24h&limit=50.
func (h *RestHandler) ReportsSince(w http.ResponseWriter, r *http.Request) {
	since := r.URL.Query().Get("since")
	if since == "" {
		since = "24h"
	}
	duration, err := time.ParseDuration(since)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid 'since' parameter (use format like '24h', '30m')")
		return
	}

	limit := 100
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 1 {
			writeError(w, http.StatusBadRequest, "invalid 'limit' parameter")
			return
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	reports, err := h.repo.FindSince(ctx, h.now().Add(-duration), limit)
	if err != nil {
		log.Printf("Failed to query reports: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to load reports")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"since":   since,
		"count":   len(reports),
		"reports": reports,
	})
}

// VendorReport returns the latest report of a single vendor.
func (h *RestHandler) VendorReport(w http.ResponseWriter, r *http.Request) {
	vendor := mux.Vars(r)["vendor"]

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	reports, err := h.repo.LatestPerVendor(ctx)
	if err != nil {
		log.Printf("Failed to load latest reports: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to load reports")
		return
	}

	for _, report := range reports {
		if report.Vendor == vendor {
			writeJSON(w, http.StatusOK, report)
			return
		}
	}
	writeError(w, http.StatusNotFound, "no report for vendor "+vendor)
}

// Digest merges the latest report of every vendor into one rollup.
// Supported formats: json (default), text, html.
func (h *RestHandler) Digest(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	reports, err := h.repo.LatestPerVendor(ctx)
	if err != nil {
		log.Printf("Failed to load latest reports: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to load reports")
		return
	}

	digest := exporter.BuildDigest(reports, h.now())

	switch r.URL.Query().Get("format") {
	case "text":
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(digest.Text())); err != nil {
			log.Printf("Error writing text digest response: %v", err)
		}

	case "html":
		page, err := digest.HTML()
		if err != nil {
			log.Printf("Failed to render digest HTML: %v", err)
			writeError(w, http.StatusInternalServerError, "failed to render digest")
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(page)); err != nil {
			log.Printf("Error writing HTML digest response: %v", err)
		}

	case "json", "":
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"id":           digest.ID,
			"generated_at": digest.GeneratedAt.Format(time.RFC3339),
			"vendors":      digest.Vendors,
			"ok":           digest.OK,
			"attention":    digest.Attention,
			"reports":      digest.Reports,
		})

	default:
		writeError(w, http.StatusBadRequest, "unsupported format (use 'json', 'text', or 'html')")
	}
}

// Helper functions

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
