package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/pad2skills/backend/internal/api/middleware"
	"github.com/pad2skills/backend/internal/application/services"
	"github.com/pad2skills/backend/internal/domain/entities"
	apperrors "github.com/pad2skills/backend/pkg/errors"
)

// DashboardHandler serves the read-only dashboard views: project and
// industry lists, the donut chart, the heatmap, detail table pages,
// samples, and CSV exports. Selections come from the caller's session.
type DashboardHandler struct {
	dashboard *services.DashboardService
	sessions  *services.SessionService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboard *services.DashboardService, sessions *services.SessionService) *DashboardHandler {
	return &DashboardHandler{
		dashboard: dashboard,
		sessions:  sessions,
	}
}

// ListProjects handles GET /api/projects
func (h *DashboardHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.dashboard.Projects(r.Context())
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"all_option": entities.AllProjects,
		"projects":   projects,
		"count":      len(projects),
	})
}

// ListIndustries handles GET /api/industries. The options reflect the
// session's project filter so the industry selector never offers a value
// with zero rows behind it.
func (h *DashboardHandler) ListIndustries(w http.ResponseWriter, r *http.Request) {
	view, err := h.sessions.View(r.Context(), middleware.SessionIDFromContext(r.Context()))
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	industries, err := h.dashboard.Industries(r.Context(), view.Filters)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"industries": industries,
		"count":      len(industries),
	})
}

// GetIndustryChart handles GET /api/dashboard/occupations/chart
func (h *DashboardHandler) GetIndustryChart(w http.ResponseWriter, r *http.Request) {
	view, err := h.sessions.View(r.Context(), middleware.SessionIDFromContext(r.Context()))
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	chart, err := h.dashboard.IndustryChart(r.Context(), view.Filters)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"segments": chart,
		"count":    len(chart),
	})
}

// GetHeatmap handles GET /api/dashboard/skills/heatmap
func (h *DashboardHandler) GetHeatmap(w http.ResponseWriter, r *http.Request) {
	view, err := h.sessions.View(r.Context(), middleware.SessionIDFromContext(r.Context()))
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	grid, err := h.dashboard.Heatmap(r.Context(), view.Filters)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, grid)
}

// GetTablePage handles GET /api/dashboard/tables/{table}
func (h *DashboardHandler) GetTablePage(w http.ResponseWriter, r *http.Request) {
	table := entities.TableID(r.PathValue("table"))

	page, err := h.sessions.TablePage(r.Context(), middleware.SessionIDFromContext(r.Context()), table)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, page)
}

// GetTableSample handles GET /api/dashboard/tables/{table}/sample
func (h *DashboardHandler) GetTableSample(w http.ResponseWriter, r *http.Request) {
	table := entities.TableID(r.PathValue("table"))
	if !table.IsValid() {
		respondWithError(w, http.StatusBadRequest, "unknown detail table: "+string(table))
		return
	}

	view, err := h.sessions.View(r.Context(), middleware.SessionIDFromContext(r.Context()))
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	sample, err := h.dashboard.Sample(r.Context(), table, view.Filters, view.SkillFilters)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"table_id": sample.TableID,
		"columns":  sample.Columns,
		"rows":     sample.Rows,
	})
}

// ExportTable handles GET /api/dashboard/tables/{table}/export. The
// download contains the full filtered result, not just the visible page.
func (h *DashboardHandler) ExportTable(w http.ResponseWriter, r *http.Request) {
	table := entities.TableID(r.PathValue("table"))
	if !table.IsValid() {
		respondWithError(w, http.StatusBadRequest, "unknown detail table: "+string(table))
		return
	}

	view, err := h.sessions.View(r.Context(), middleware.SessionIDFromContext(r.Context()))
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	data, fileName, err := h.dashboard.ExportCSV(r.Context(), table, view.Filters, view.SkillFilters)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+fileName+`"`)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// Helper functions
func respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	respondWithJSON(w, statusCode, map[string]string{
		"error": message,
	})
}

// respondWithAppError maps domain errors onto HTTP statuses. Unavailable
// covers unreachable or malformed fact sources; everything unrecognized
// stays an opaque 500.
func respondWithAppError(w http.ResponseWriter, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		switch appErr.Type {
		case apperrors.ErrorTypeNotFound:
			respondWithError(w, http.StatusNotFound, appErr.Message)
		case apperrors.ErrorTypeValidation:
			respondWithError(w, http.StatusBadRequest, appErr.Message)
		case apperrors.ErrorTypeUnavailable:
			respondWithError(w, http.StatusServiceUnavailable, appErr.Message)
		default:
			respondWithError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}
	respondWithError(w, http.StatusInternalServerError, "internal server error")
}
