// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/fia-offline-sync/internal/logger"
	"github.com/MKhiriev/fia-offline-sync/internal/utils"
	"github.com/MKhiriev/fia-offline-sync/models"
)

// storeParam resolves {store}; unknown collections are answered with 404.
func storeParam(w http.ResponseWriter, r *http.Request) (models.StoreName, bool) {
	storeName, err := models.ParseStoreName(chi.URLParam(r, "store"))
	if err != nil {
		utils.WriteError(w, err.Error(), http.StatusNotFound)
		return "", false
	}
	return storeName, true
}

func (h *Handler) getAll(w http.ResponseWriter, r *http.Request) {
	storeName, ok := storeParam(w, r)
	if !ok {
		return
	}

	records, err := h.services.RecordService.GetAll(r.Context(), storeName)
	if err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.getAll").Str("store", storeName.String()).Msg("error getting records")
		utils.WriteError(w, "error getting records", statusFromError(err))
		return
	}
	if records == nil {
		records = []models.Record{}
	}

	_, _ = utils.WriteJSON(w, records, http.StatusOK)
}

func (h *Handler) getByID(w http.ResponseWriter, r *http.Request) {
	storeName, ok := storeParam(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "id")

	record, err := h.services.RecordService.GetByID(r.Context(), storeName, id)
	if err != nil {
		status := statusFromError(err)
		if status >= http.StatusInternalServerError {
			logger.FromRequest(r).Err(err).Str("func", "*Handler.getByID").Str("store", storeName.String()).Str("id", id).Msg("error getting record")
		}
		utils.WriteError(w, err.Error(), status)
		return
	}

	_, _ = utils.WriteJSON(w, record, http.StatusOK)
}

// upsertBatch replaces every record of the JSON array body in one
// transaction. A repeated id is stored with its last occurrence.
func (h *Handler) upsertBatch(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	storeName, ok := storeParam(w, r)
	if !ok {
		return
	}

	var records []models.Record
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBatchBodySize)).Decode(&records); err != nil {
		log.Err(err).Str("func", "*Handler.upsertBatch").Msg(ErrInvalidJSON.Error())
		utils.WriteError(w, ErrInvalidJSON.Error()+": "+err.Error(), http.StatusBadRequest)
		return
	}

	affected, err := h.services.RecordService.UpsertBatch(r.Context(), storeName, records)
	if err != nil {
		log.Err(err).Str("func", "*Handler.upsertBatch").Str("store", storeName.String()).Int("records", len(records)).Msg("error upserting records")
		utils.WriteError(w, err.Error(), statusFromError(err))
		return
	}

	_, _ = utils.WriteJSON(w, models.BatchResponse{Store: storeName, Affected: affected}, http.StatusOK)
}

// deleteBatch removes the ids of {"ids": [...]}. Unknown ids are ignored.
func (h *Handler) deleteBatch(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	storeName, ok := storeParam(w, r)
	if !ok {
		return
	}

	var request models.BatchDeleteRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBatchBodySize)).Decode(&request); err != nil {
		log.Err(err).Str("func", "*Handler.deleteBatch").Msg(ErrInvalidJSON.Error())
		utils.WriteError(w, ErrInvalidJSON.Error(), http.StatusBadRequest)
		return
	}

	affected, err := h.services.RecordService.DeleteBatch(r.Context(), storeName, request.IDs)
	if err != nil {
		log.Err(err).Str("func", "*Handler.deleteBatch").Str("store", storeName.String()).Msg("error deleting records")
		utils.WriteError(w, err.Error(), statusFromError(err))
		return
	}

	_, _ = utils.WriteJSON(w, models.BatchResponse{Store: storeName, Affected: affected}, http.StatusOK)
}
