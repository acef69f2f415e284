// Package render writes JSON responses for the HTTP handlers.
package render

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/georgemunganga/retailos/internal/apperror"
)

// JSON writes body with the given status.
func JSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("render: encode response: %v", err)
	}
}

// Error writes {"error": msg} with the status mapped from err.
func Error(w http.ResponseWriter, err error) {
	status := apperror.Status(err)
	if status >= http.StatusInternalServerError {
		log.Printf("request failed: %v", err)
	}
	JSON(w, status, map[string]string{"error": err.Error()})
}

// Success writes the {"success": true} acknowledgement used by write actions.
func Success(w http.ResponseWriter, status int) {
	JSON(w, status, map[string]bool{"success": true})
}
