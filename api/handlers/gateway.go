package handlers

import (
	"net/http"

	"github.com/linesmerrill/dl-generator-api/gateway"
)

// GatewayStatus reports on the rendering service
type GatewayStatus struct {
	Gateway gateway.Gateway
}

// GatewayStatusHandler probes the rendering service and returns its
// availability
func (g GatewayStatus) GatewayStatusHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, g.Gateway.Probe(r.Context()))
}
