package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	storage "github.com/osr-alliance/backend-service-leads"
	"github.com/sirupsen/logrus"
)

// maxBodyBytes caps request bodies; every payload here is a handful of short fields
const maxBodyBytes = 1 << 20

type messageResponse struct {
	Message string      `json:"message"`
	Lead    interface{} `json:"lead,omitempty"`
	Agent   interface{} `json:"agent,omitempty"`
	Comment interface{} `json:"comment,omitempty"`
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}, strict bool) error {
	defer r.Body.Close()
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if strict {
		dec.DisallowUnknownFields()
	}
	if err := dec.Decode(dst); err != nil {
		return err
	}
	// a second value means the body wasn't a single JSON object
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errors.New("request body must hold a single JSON object")
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// fail logs the cause and answers with message only; the cause never reaches the client
func (h *handler) fail(w http.ResponseWriter, r *http.Request, status int, message string, err error) {
	entry := h.log.WithFields(logrus.Fields{
		"method": r.Method,
		"path":   r.URL.Path,
		"status": status,
	})
	if err != nil {
		entry = entry.WithError(err)
	}

	switch {
	case status >= http.StatusInternalServerError:
		entry.Error(message)
	case errors.Is(err, storage.ErrInvalid):
		entry.Info(message)
	default:
		entry.Debug(message)
	}

	writeError(w, status, message)
}

// pathID returns the {id} route variable in canonical form and whether it is a well-formed id.
// A malformed id is returned as sent so it can be echoed back.
func pathID(r *http.Request) (string, bool) {
	return parseID(mux.Vars(r)["id"])
}

// parseID accepts any spelling uuid.Parse does and returns the lowercase hyphenated form
func parseID(id string) (string, bool) {
	u, err := uuid.Parse(id)
	if err != nil {
		return id, false
	}
	return u.String(), true
}
