package http

import (
	"net/http"

	"github.com/MKhiriev/go-page-builder/internal/logger"
	"github.com/MKhiriev/go-page-builder/internal/utils"
	"github.com/MKhiriev/go-page-builder/models"
)

func (h *Handler) createEntity(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var request models.CreateEntityRequest
	if err := decodeBody(r, &request); err != nil {
		log.Err(err).Str("func", "*Handler.createEntity").Msg("invalid JSON was passed")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	entity, err := h.services.BuilderService.CreateEntity(r.Context(), request)
	if err != nil {
		log.Err(err).Str("func", "*Handler.createEntity").Msg("error creating entity")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, entity, http.StatusCreated)
}

func (h *Handler) getEntity(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	id, err := entityIDParam(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	entity, err := h.services.BuilderService.GetEntity(r.Context(), id)
	if err != nil {
		log.Err(err).Str("func", "*Handler.getEntity").Int64("entity_id", id).Msg("error getting entity")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, entity, http.StatusOK)
}

// updateBody is the host-side body save. The host stores a snapshot of the
// previous state and fires an option-updated event for the entity.
func (h *Handler) updateBody(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	id, err := entityIDParam(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var request models.BodyUpdateRequest
	if err = decodeBody(r, &request); err != nil {
		log.Err(err).Str("func", "*Handler.updateBody").Msg("invalid JSON was passed")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err = h.services.BuilderService.UpdateBody(r.Context(), id, request.Body); err != nil {
		log.Err(err).Str("func", "*Handler.updateBody").Int64("entity_id", id).Msg("error updating entity body")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
