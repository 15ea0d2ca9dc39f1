// Package catalog обслуживает справочники: услуги, специалисты, клиенты,
// товары и способы оплаты
package catalog

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-BoxScheduler/internal/api/handlers"
	catalogService "github.com/m04kA/SMC-BoxScheduler/internal/service/catalog"
	"github.com/m04kA/SMC-BoxScheduler/internal/service/catalog/models"
)

const (
	msgInvalidRequestBody    = "некорректное тело запроса"
	msgInvalidOfferingID     = "некорректный ID услуги"
	msgInvalidProfessionalID = "некорректный ID специалиста"
	msgInvalidActive         = "некорректное значение active, ожидается true или false"
	msgProfessionalInUse     = "на специалиста ссылаются записи"
)

type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// respond пишет результат или ошибку сервиса
func (h *Handler) respond(w http.ResponseWriter, route string, status int, v interface{}, err error) {
	if err != nil {
		if handlers.RespondDomainError(w, err) {
			h.logger.Warn("%s - Rejected: %v", route, err)
			return
		}
		h.logger.Error("%s - Failed: %v", route, err)
		handlers.RespondInternalError(w)
		return
	}
	handlers.RespondJSON(w, status, v)
}

// ListOfferings GET /api/v1/offerings
func (h *Handler) ListOfferings(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.ListOfferings(r.Context())
	h.respond(w, "GET /offerings", http.StatusOK, resp, err)
}

// GetOffering GET /api/v1/offerings/{offeringId}
func (h *Handler) GetOffering(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.ParseIDVar(r, "offeringId")
	if err != nil {
		h.logger.Warn("GET /offerings/{id} - Invalid offering ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidOfferingID)
		return
	}
	resp, err := h.service.GetOffering(r.Context(), id)
	h.respond(w, "GET /offerings/{id}", http.StatusOK, resp, err)
}

// CreateOffering POST /api/v1/offerings
func (h *Handler) CreateOffering(w http.ResponseWriter, r *http.Request) {
	var req models.CreateOfferingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /offerings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	resp, err := h.service.CreateOffering(r.Context(), &req)
	if err == nil {
		h.logger.Info("POST /offerings - Offering created: offering_id=%d", resp.ID)
	}
	h.respond(w, "POST /offerings", http.StatusCreated, resp, err)
}

// ListProfessionals GET /api/v1/professionals
func (h *Handler) ListProfessionals(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.ListProfessionals(r.Context())
	h.respond(w, "GET /professionals", http.StatusOK, resp, err)
}

// CreateProfessional POST /api/v1/professionals
func (h *Handler) CreateProfessional(w http.ResponseWriter, r *http.Request) {
	var req models.CreateProfessionalRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /professionals - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	resp, err := h.service.CreateProfessional(r.Context(), &req)
	if err == nil {
		h.logger.Info("POST /professionals - Professional created: professional_id=%d", resp.ID)
	}
	h.respond(w, "POST /professionals", http.StatusCreated, resp, err)
}

// DeleteProfessional DELETE /api/v1/professionals/{professionalId}
func (h *Handler) DeleteProfessional(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.ParseIDVar(r, "professionalId")
	if err != nil {
		h.logger.Warn("DELETE /professionals/{id} - Invalid professional ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProfessionalID)
		return
	}

	err = h.service.DeleteProfessional(r.Context(), id)
	switch {
	case err == nil:
		h.logger.Info("DELETE /professionals/{id} - Professional deleted: professional_id=%d", id)
		handlers.RespondNoContent(w)
	case errors.Is(err, catalogService.ErrProfessionalInUse):
		h.logger.Warn("DELETE /professionals/{id} - Professional in use: professional_id=%d", id)
		handlers.RespondError(w, http.StatusConflict, msgProfessionalInUse)
	default:
		h.respond(w, "DELETE /professionals/{id}", http.StatusNoContent, nil, err)
	}
}

// ListClients GET /api/v1/clients
func (h *Handler) ListClients(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.ListClients(r.Context())
	h.respond(w, "GET /clients", http.StatusOK, resp, err)
}

// CreateClient POST /api/v1/clients
func (h *Handler) CreateClient(w http.ResponseWriter, r *http.Request) {
	var req models.CreateClientRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /clients - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	resp, err := h.service.CreateClient(r.Context(), &req)
	h.respond(w, "POST /clients", http.StatusCreated, resp, err)
}

// ListProducts GET /api/v1/products
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.ListProducts(r.Context())
	h.respond(w, "GET /products", http.StatusOK, resp, err)
}

// CreateProduct POST /api/v1/products
func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req models.CreateProductRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /products - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	resp, err := h.service.CreateProduct(r.Context(), &req)
	h.respond(w, "POST /products", http.StatusCreated, resp, err)
}

// ListPaymentMethods GET /api/v1/payment-methods?active=true
func (h *Handler) ListPaymentMethods(w http.ResponseWriter, r *http.Request) {
	activeOnly := false
	if raw := r.URL.Query().Get("active"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			h.logger.Warn("GET /payment-methods - Invalid active: %q", raw)
			handlers.RespondBadRequest(w, msgInvalidActive)
			return
		}
		activeOnly = v
	}
	resp, err := h.service.ListPaymentMethods(r.Context(), activeOnly)
	h.respond(w, "GET /payment-methods", http.StatusOK, resp, err)
}
