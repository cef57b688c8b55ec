package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	storage "github.com/osr-alliance/backend-service-leads"
	"github.com/osr-alliance/backend-service-leads/store"
)

type createAgentRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (h *handler) CreateAgent(w http.ResponseWriter, r *http.Request) {
	var req createAgentRequest
	if err := decodeJSON(w, r, &req, false); err != nil {
		h.fail(w, r, http.StatusBadRequest, "Invalid request body.", err)
		return
	}

	agent := &store.Agent{
		Name:  strings.TrimSpace(req.Name),
		Email: strings.TrimSpace(req.Email),
	}
	if agent.Name == "" || agent.Email == "" {
		h.fail(w, r, http.StatusBadRequest, "Sales agent name and email are required.", nil)
		return
	}

	err := h.store.CreateAgent(r.Context(), agent)
	switch {
	case errors.Is(err, store.ErrEmailExists):
		h.fail(w, r, http.StatusConflict, fmt.Sprintf("Sales agent with email %s already exists.", agent.Email), err)
		return
	case errors.Is(err, storage.ErrInvalid):
		h.fail(w, r, http.StatusBadRequest, "Invalid agent data.", err)
		return
	case err != nil:
		h.fail(w, r, http.StatusInternalServerError, "Failed to add agent", err)
		return
	}

	writeJSON(w, http.StatusCreated, messageResponse{
		Message: "Agent added successfully.",
		Agent:   agent,
	})
}

func (h *handler) ListAgents(w http.ResponseWriter, r *http.Request) {
	agents, err := h.store.ListAgents(r.Context())
	if err != nil {
		h.fail(w, r, http.StatusInternalServerError, "Failed to fetch agent", err)
		return
	}
	if len(agents) == 0 {
		h.fail(w, r, http.StatusNotFound, "No Agent found.", nil)
		return
	}

	writeJSON(w, http.StatusOK, agents)
}
