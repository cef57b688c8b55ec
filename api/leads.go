package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/lib/pq"
	storage "github.com/osr-alliance/backend-service-leads"
	"github.com/osr-alliance/backend-service-leads/store"
)

type createLeadRequest struct {
	Name        string   `json:"name"`
	Source      string   `json:"source"`
	SalesAgent  *string  `json:"salesAgent"`
	Status      string   `json:"status"`
	Tags        []string `json:"tags"`
	TimeToClose int32    `json:"timeToClose"`
	Priority    string   `json:"priority"`
}

func (req createLeadRequest) lead() *store.Lead {
	lead := &store.Lead{
		Name:        strings.TrimSpace(req.Name),
		Source:      strings.TrimSpace(req.Source),
		Status:      req.Status,
		Tags:        pq.StringArray(req.Tags),
		TimeToClose: req.TimeToClose,
		Priority:    req.Priority,
	}
	if req.SalesAgent != nil && *req.SalesAgent != "" {
		agent := *req.SalesAgent
		lead.SalesAgent = &agent
	}
	return lead
}

func (h *handler) CreateLead(w http.ResponseWriter, r *http.Request) {
	var req createLeadRequest
	if err := decodeJSON(w, r, &req, false); err != nil {
		h.fail(w, r, http.StatusBadRequest, "Invalid request body.", err)
		return
	}

	lead := req.lead()
	if lead.Name == "" {
		h.fail(w, r, http.StatusBadRequest, "Lead name is required.", nil)
		return
	}
	if lead.SalesAgent != nil {
		agent, ok := parseID(*lead.SalesAgent)
		if !ok {
			h.fail(w, r, http.StatusBadRequest, "Invalid sales agent id.", nil)
			return
		}
		lead.SalesAgent = &agent
	}

	err := h.store.CreateLead(r.Context(), lead)
	switch {
	case errors.Is(err, storage.ErrInvalid):
		h.fail(w, r, http.StatusBadRequest, "Invalid lead data.", err)
		return
	case err != nil:
		h.fail(w, r, http.StatusInternalServerError, "Failed to add Lead", err)
		return
	}

	writeJSON(w, http.StatusCreated, messageResponse{
		Message: "Lead Added Successfully",
		Lead:    lead,
	})
}

func (h *handler) ListLeads(w http.ResponseWriter, r *http.Request) {
	leads, err := h.store.ListLeads(r.Context())
	if err != nil {
		h.fail(w, r, http.StatusInternalServerError, "Failed to fetch Lead.", err)
		return
	}
	if len(leads) == 0 {
		h.fail(w, r, http.StatusNotFound, "No Lead Found.", nil)
		return
	}

	writeJSON(w, http.StatusOK, leads)
}

func (h *handler) UpdateLead(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		h.fail(w, r, http.StatusNotFound, "Lead does not exist.", nil)
		return
	}

	var patch store.LeadPatch
	if err := decodeJSON(w, r, &patch, true); err != nil {
		h.fail(w, r, http.StatusBadRequest, "Invalid request body.", err)
		return
	}
	if patch.SalesAgent != nil {
		agent, ok := parseID(*patch.SalesAgent)
		if !ok {
			h.fail(w, r, http.StatusBadRequest, "Invalid sales agent id.", nil)
			return
		}
		patch.SalesAgent = &agent
	}

	lead, err := h.store.UpdateLead(r.Context(), id, patch)
	switch {
	case errors.Is(err, store.ErrLeadNotFound):
		h.fail(w, r, http.StatusNotFound, "Lead does not exist.", err)
		return
	case errors.Is(err, storage.ErrInvalid):
		h.fail(w, r, http.StatusBadRequest, "Invalid lead data.", err)
		return
	case err != nil:
		h.fail(w, r, http.StatusInternalServerError, "Failed to update lead", err)
		return
	}

	writeJSON(w, http.StatusCreated, messageResponse{
		Message: "Lead updated successfully.",
		Lead:    lead,
	})
}

func (h *handler) DeleteLead(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		h.fail(w, r, http.StatusBadRequest, fmt.Sprintf("Lead with ID %s not found.", id), nil)
		return
	}

	_, err := h.store.DeleteLead(r.Context(), id)
	switch {
	case errors.Is(err, store.ErrLeadNotFound):
		h.fail(w, r, http.StatusBadRequest, fmt.Sprintf("Lead with ID %s not found.", id), err)
		return
	case err != nil:
		h.fail(w, r, http.StatusInternalServerError, "Failed to delete lead", err)
		return
	}

	writeJSON(w, http.StatusCreated, messageResponse{
		Message: "Lead delete successfully.",
	})
}
