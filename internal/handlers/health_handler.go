// File: internal/handlers/health_handler.go
package handlers

import "net/http"

// LivenessMessage is returned by GET on the health and webhook routes.
const LivenessMessage = "Vendor Nexus Telegram Bot is active!"

// Health answers liveness probes.
func Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(LivenessMessage))
}
