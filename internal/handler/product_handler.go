package handler

import (
	"errors"
	"net/http"

	"product-catalog/internal/model"
	"product-catalog/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// Client-facing messages for each operation.
const (
	msgCreateFailed     = "Erro ao criar produto"
	msgListFailed       = "Erro ao buscar produtos"
	msgCategoriesFailed = "Erro ao buscar categorias"
	msgUpdateFailed     = "Erro ao editar produto"
	msgDeleteFailed     = "Erro ao deletar produto"
	msgDeleted          = "Produto deletado com sucesso"
	msgBodyTooLarge     = "Arquivo de imagem muito grande"
)

// ProductHandler handles product-related HTTP requests.
type ProductHandler struct {
	service        service.ProductService
	maxUploadBytes int64
	logger         zerolog.Logger
}

// NewProductHandler creates a new product handler.
func NewProductHandler(service service.ProductService, maxUploadBytes int64, logger zerolog.Logger) *ProductHandler {
	return &ProductHandler{
		service:        service,
		maxUploadBytes: maxUploadBytes,
		logger:         logger.With().Str("handler", "product").Logger(),
	}
}

// Create handles POST /produtos requests.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	req, cleanup, err := decodeProductRequest(w, r, h.maxUploadBytes)
	if err != nil {
		h.writeDecodeError(w, err)
		return
	}
	defer cleanup()

	product, err := h.service.Create(r.Context(), req.toInput())
	if err != nil {
		h.writeServiceError(w, err, msgCreateFailed)
		return
	}

	writeJSON(w, http.StatusCreated, product, h.logger)
}

// List handles GET /produtos requests.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.List(r.Context())
	if err != nil {
		h.writeServiceError(w, err, msgListFailed)
		return
	}

	writeJSON(w, http.StatusOK, products, h.logger)
}

// ListCategories handles GET /categorias requests.
func (h *ProductHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.ListCategories(r.Context())
	if err != nil {
		h.writeServiceError(w, err, msgCategoriesFailed)
		return
	}

	writeJSON(w, http.StatusOK, categories, h.logger)
}

// Update handles PUT /produtos/{id} requests.
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	req, cleanup, err := decodeProductRequest(w, r, h.maxUploadBytes)
	if err != nil {
		h.writeDecodeError(w, err)
		return
	}
	defer cleanup()

	product, err := h.service.Update(r.Context(), id, req.toUpdate())
	if err != nil {
		h.writeServiceError(w, err, msgUpdateFailed)
		return
	}

	writeJSON(w, http.StatusOK, product, h.logger)
}

// Delete handles DELETE /produtos/{id} requests.
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.writeServiceError(w, err, msgDeleteFailed)
		return
	}

	writeJSON(w, http.StatusOK, MessageResponse{Message: msgDeleted}, h.logger)
}

func (h *ProductHandler) writeDecodeError(w http.ResponseWriter, err error) {
	if errors.Is(err, errBodyTooLarge) {
		writeError(w, http.StatusRequestEntityTooLarge, msgBodyTooLarge, h.logger)
		return
	}
	writeError(w, http.StatusBadRequest, model.ErrInvalidJSON.Message, h.logger)
}

// writeServiceError maps domain errors to statuses. Causes of internal
// failures are logged and replaced by the operation's generic message.
func (h *ProductHandler) writeServiceError(w http.ResponseWriter, err error, fallback string) {
	var domainErr *model.DomainError

	switch {
	case model.IsNotFound(err):
		writeError(w, http.StatusNotFound, model.ErrProductNotFound.Message, h.logger)
	case model.IsValidation(err) && errors.As(err, &domainErr):
		writeError(w, http.StatusBadRequest, domainErr.Message, h.logger)
	default:
		h.logger.Error().Err(err).Msg(fallback)
		writeError(w, http.StatusInternalServerError, fallback, h.logger)
	}
}
