package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	storage "github.com/osr-alliance/backend-service-leads"
	"github.com/osr-alliance/backend-service-leads/store"
)

type createCommentRequest struct {
	Author      string `json:"author"`
	CommentText string `json:"commentText"`
}

func leadNotFound(id string) string {
	return fmt.Sprintf("Lead with ID '%s' not found.", id)
}

func (h *handler) CreateComment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		h.fail(w, r, http.StatusNotFound, leadNotFound(id), nil)
		return
	}

	var req createCommentRequest
	if err := decodeJSON(w, r, &req, false); err != nil {
		h.fail(w, r, http.StatusBadRequest, "Invalid request body.", err)
		return
	}

	comment := &store.Comment{
		LeadID:      id,
		AuthorID:    strings.TrimSpace(req.Author),
		CommentText: strings.TrimSpace(req.CommentText),
	}
	if comment.AuthorID == "" || comment.CommentText == "" {
		h.fail(w, r, http.StatusBadRequest, "Comment author and commentText are required.", nil)
		return
	}
	author, ok := parseID(comment.AuthorID)
	if !ok {
		h.fail(w, r, http.StatusBadRequest, "Invalid author id.", nil)
		return
	}
	comment.AuthorID = author

	err := h.store.CreateComment(r.Context(), comment)
	switch {
	case errors.Is(err, store.ErrLeadNotFound):
		h.fail(w, r, http.StatusNotFound, leadNotFound(id), err)
		return
	case errors.Is(err, store.ErrAgentNotFound):
		h.fail(w, r, http.StatusNotFound, fmt.Sprintf("Sales agent with ID '%s' not found.", comment.AuthorID), err)
		return
	case errors.Is(err, storage.ErrInvalid):
		h.fail(w, r, http.StatusBadRequest, "Invalid comment data.", err)
		return
	case err != nil:
		h.fail(w, r, http.StatusInternalServerError, "Failed to add comment", err)
		return
	}

	writeJSON(w, http.StatusCreated, messageResponse{
		Message: "Reached out to lead, waiting for response.",
		Comment: comment,
	})
}

func (h *handler) ListComments(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		h.fail(w, r, http.StatusNotFound, leadNotFound(id), nil)
		return
	}

	comments, err := h.store.ListComments(r.Context(), id)
	switch {
	case errors.Is(err, store.ErrLeadNotFound):
		h.fail(w, r, http.StatusNotFound, leadNotFound(id), err)
		return
	case err != nil:
		h.fail(w, r, http.StatusInternalServerError, "Failed to fetch comment", err)
		return
	}
	if len(comments) == 0 {
		h.fail(w, r, http.StatusNotFound, "no comment found", nil)
		return
	}

	writeJSON(w, http.StatusOK, comments)
}
