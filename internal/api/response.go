package api

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"
)

// errorBody is the JSON error shape of the website endpoints.
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Details string `json:"details,omitempty"`
}

// jsonResponse writes v as JSON with the given status.
func jsonResponse(w http.ResponseWriter, v interface{}, status int) error {
	payload, err := json.Marshal(v)
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return err
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, err = w.Write(payload)
	return err
}

// writeJSON is jsonResponse with write errors logged.
func writeJSON(w http.ResponseWriter, logger logrus.FieldLogger, v interface{}, status int) {
	if err := jsonResponse(w, v, status); err != nil {
		logger.WithError(err).Error("error writing response")
	}
}

// decodeBody decodes a size-limited JSON request body.
func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBodyBytes))
	return dec.Decode(v)
}
