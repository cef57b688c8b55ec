package api

import (
	"net/http"

	"github.com/osr-alliance/backend-service-leads/store"
)

// ReportLastWeek lists the leads still in status New. An empty list is a valid report.
func (h *handler) ReportLastWeek(w http.ResponseWriter, r *http.Request) {
	leads, err := h.store.LeadsByStatus(r.Context(), store.StatusNew)
	if err != nil {
		h.fail(w, r, http.StatusInternalServerError, "Failed to fetch reports of last week.", err)
		return
	}
	if leads == nil {
		leads = []store.Lead{}
	}

	writeJSON(w, http.StatusOK, leads)
}

// ReportPipeline lists the closed leads.
func (h *handler) ReportPipeline(w http.ResponseWriter, r *http.Request) {
	leads, err := h.store.LeadsByStatus(r.Context(), store.StatusClosed)
	if err != nil {
		h.fail(w, r, http.StatusInternalServerError, "Failed to Fetch Lead.", err)
		return
	}
	if len(leads) == 0 {
		h.fail(w, r, http.StatusNotFound, "Lead not found.", nil)
		return
	}

	writeJSON(w, http.StatusOK, leads)
}
