package http

import (
	"net/http"

	"github.com/MKhiriev/go-page-builder/internal/logger"
	"github.com/MKhiriev/go-page-builder/internal/utils"
	"github.com/MKhiriev/go-page-builder/models"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) getBuilderStatus(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	id, err := entityIDParam(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ok, err := h.services.BuilderService.IsBuilderEntity(r.Context(), id)
	if err != nil {
		log.Err(err).Str("func", "*Handler.getBuilderStatus").Int64("entity_id", id).Msg("error checking builder state")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, models.BuilderStatusResponse{EntityID: id, Builder: ok}, http.StatusOK)
}

// saveBuilderOption stores the builder option the way the editor does; the
// host event it fires drives synchronization.
func (h *Handler) saveBuilderOption(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	id, err := entityIDParam(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var option models.BuilderOption
	if err = decodeBody(r, &option); err != nil {
		log.Err(err).Str("func", "*Handler.saveBuilderOption").Msg("invalid JSON was passed")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err = h.services.BuilderService.SaveBuilderOption(r.Context(), id, option); err != nil {
		log.Err(err).Str("func", "*Handler.saveBuilderOption").Int64("entity_id", id).Msg("error saving builder option")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) optionUpdated(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	id, err := entityIDParam(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var request models.OptionUpdatedRequest
	if err = decodeBody(r, &request); err != nil {
		log.Err(err).Str("func", "*Handler.optionUpdated").Msg("invalid JSON was passed")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	event := models.OptionUpdatedEvent{
		EntityID:       id,
		OptionKey:      request.OptionKey,
		ChangedSubkeys: request.ChangedSubkeys,
	}
	result, err := h.services.BuilderService.NotifyOptionUpdated(r.Context(), event)
	if err != nil {
		log.Err(err).Str("func", "*Handler.optionUpdated").Int64("entity_id", id).Msg("error synchronizing entity")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, models.NewSyncResponse(id, result), http.StatusOK)
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	id, err := entityIDParam(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var request models.RenderRequest
	if err = decodeBody(r, &request); err != nil {
		log.Err(err).Str("func", "*Handler.render").Msg("invalid JSON was passed")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	html, err := h.services.BuilderService.RenderContent(r.Context(), id, request.Content)
	if err != nil {
		log.Err(err).Str("func", "*Handler.render").Int64("entity_id", id).Msg("error rendering content")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, models.RenderResponse{EntityID: id, HTML: html}, http.StatusOK)
}

func (h *Handler) importOptions(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	id, err := entityIDParam(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var request models.ImportRequest
	if err = decodeBody(r, &request); err != nil {
		log.Err(err).Str("func", "*Handler.importOptions").Msg("invalid JSON was passed")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	request.EntityID = id

	applied, err := h.services.BuilderService.ImportOptions(r.Context(), request)
	if err != nil {
		log.Err(err).Str("func", "*Handler.importOptions").Int64("entity_id", id).Msg("error importing options")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, models.ImportResponse{Applied: applied}, http.StatusOK)
}

func (h *Handler) getOptionsDescriptor(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	entityType := chi.URLParam(r, "type")

	descriptor, err := h.services.BuilderService.BuilderOptionsDescriptor(r.Context(), entityType)
	if err != nil {
		log.Err(err).Str("func", "*Handler.getOptionsDescriptor").Str("entity_type", entityType).Msg("error building descriptor")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}
	if descriptor == nil {
		http.Error(w, "entity type does not support the builder", http.StatusNotFound)
		return
	}

	utils.WriteJSON(w, descriptor, http.StatusOK)
}

func (h *Handler) declareSupport(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	entityType := chi.URLParam(r, "type")

	if err := h.services.BuilderService.DeclareSupport(r.Context(), entityType); err != nil {
		log.Err(err).Str("func", "*Handler.declareSupport").Str("entity_type", entityType).Msg("error declaring support")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) decodeShortcodeAtts(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var atts map[string]string
	if err := decodeBody(r, &atts); err != nil {
		log.Err(err).Str("func", "*Handler.decodeShortcodeAtts").Msg("invalid JSON was passed")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	utils.WriteJSON(w, h.services.BuilderService.DecodeShortcodeAtts(atts), http.StatusOK)
}

func (h *Handler) resync(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	response, err := h.services.BuilderService.ResyncAll(r.Context())
	if err != nil {
		log.Err(err).Str("func", "*Handler.resync").Msg("error resynchronizing entities")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, response, http.StatusOK)
}
