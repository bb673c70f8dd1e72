// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/fia-offline-sync/internal/logger"
	"github.com/MKhiriev/fia-offline-sync/internal/utils"
)

type healthResponse struct {
	Status string `json:"status"`
}

// health answers the reachability probe. It reports 503 when the database
// does not answer, which clients still treat as "online": the API itself
// was reached.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	if err := h.services.RecordService.Health(r.Context()); err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.health").Msg("database is not reachable")
		_, _ = utils.WriteJSON(w, healthResponse{Status: "degraded"}, http.StatusServiceUnavailable)
		return
	}

	_, _ = utils.WriteJSON(w, healthResponse{Status: "ok"}, http.StatusOK)
}
