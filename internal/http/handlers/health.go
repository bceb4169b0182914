package handlers

import (
	"net/http"
)

// Health answers liveness probes. It deliberately skips the database:
// a degraded pool should surface on real endpoints, not flap the probe.
func (a *App) Health(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, map[string]string{"status": "ok", "service": "wishshare"})
}
