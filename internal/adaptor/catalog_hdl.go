package adaptor

import (
	"encoding/json"
	"net/http"
	"strings"

	"wellness-booking/internal/dto/request"
	"wellness-booking/internal/usecase"
	"wellness-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type CatalogHandler struct {
	service usecase.CatalogService
	log     *zap.Logger
}

func NewCatalogHandler(service usecase.CatalogService, log *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		service: service,
		log:     log.With(zap.String("handler", "catalog")),
	}
}

// ListPrograms handles GET /api/programs (public). The public view only
// shows active programs; admins pass include_inactive=true.
func (h *CatalogHandler) ListPrograms(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	page := request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 20),
	}
	activeOnly := query.Get("include_inactive") != "true"

	programs, err := h.service.ListPrograms(r.Context(), query.Get("type"), activeOnly, page)
	if err != nil {
		h.handleServiceError(w, err, "list programs")
		return
	}

	utils.ResponseSuccess(w, "success", programs)
}

// GetProgram handles GET /api/programs/{idOrSlug} (public)
func (h *CatalogHandler) GetProgram(w http.ResponseWriter, r *http.Request) {
	idOrSlug := chi.URLParam(r, "idOrSlug")
	if idOrSlug == "" {
		utils.ResponseBadRequest(w, "Program ID or slug is required", nil)
		return
	}

	program, err := h.service.GetProgram(r.Context(), idOrSlug)
	if err != nil {
		h.handleServiceError(w, err, "get program")
		return
	}

	utils.ResponseSuccess(w, "success", program)
}

// ListHotels handles GET /api/hotels (public)
func (h *CatalogHandler) ListHotels(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("include_inactive") != "true"

	hotels, err := h.service.ListHotels(r.Context(), activeOnly)
	if err != nil {
		h.handleServiceError(w, err, "list hotels")
		return
	}

	utils.ResponseSuccess(w, "success", hotels)
}

// ==================== ADMIN METHODS ====================

// CreateProgram handles POST /api/admin/programs (admin only)
func (h *CatalogHandler) CreateProgram(w http.ResponseWriter, r *http.Request) {
	var req request.ProgramRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	program, err := h.service.CreateProgram(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err, "create program")
		return
	}

	utils.ResponseCreated(w, "success", program)
}

// UpdateProgram handles PUT /api/admin/programs/{id} (admin only)
func (h *CatalogHandler) UpdateProgram(w http.ResponseWriter, r *http.Request) {
	programID := chi.URLParam(r, "id")
	if programID == "" {
		utils.ResponseBadRequest(w, "Program ID is required", nil)
		return
	}

	var req request.ProgramRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	program, err := h.service.UpdateProgram(r.Context(), programID, &req)
	if err != nil {
		h.handleServiceError(w, err, "update program")
		return
	}

	utils.ResponseSuccess(w, "success", program)
}

// DeleteProgram handles DELETE /api/admin/programs/{id} (admin only)
func (h *CatalogHandler) DeleteProgram(w http.ResponseWriter, r *http.Request) {
	programID := chi.URLParam(r, "id")
	if programID == "" {
		utils.ResponseBadRequest(w, "Program ID is required", nil)
		return
	}

	if err := h.service.DeleteProgram(r.Context(), programID); err != nil {
		h.handleServiceError(w, err, "delete program")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// CreateHotel handles POST /api/admin/hotels (admin only)
func (h *CatalogHandler) CreateHotel(w http.ResponseWriter, r *http.Request) {
	var req request.HotelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	hotel, err := h.service.CreateHotel(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err, "create hotel")
		return
	}

	utils.ResponseCreated(w, "success", hotel)
}

// UpdateHotel handles PUT /api/admin/hotels/{id} (admin only)
func (h *CatalogHandler) UpdateHotel(w http.ResponseWriter, r *http.Request) {
	hotelID := chi.URLParam(r, "id")
	if hotelID == "" {
		utils.ResponseBadRequest(w, "Hotel ID is required", nil)
		return
	}

	var req request.HotelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	hotel, err := h.service.UpdateHotel(r.Context(), hotelID, &req)
	if err != nil {
		h.handleServiceError(w, err, "update hotel")
		return
	}

	utils.ResponseSuccess(w, "success", hotel)
}

// DeleteHotel handles DELETE /api/admin/hotels/{id} (admin only)
func (h *CatalogHandler) DeleteHotel(w http.ResponseWriter, r *http.Request) {
	hotelID := chi.URLParam(r, "id")
	if hotelID == "" {
		utils.ResponseBadRequest(w, "Hotel ID is required", nil)
		return
	}

	if err := h.service.DeleteHotel(r.Context(), hotelID); err != nil {
		h.handleServiceError(w, err, "delete hotel")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// handleServiceError maps service errors for catalog operations
func (h *CatalogHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	errMsg := err.Error()

	switch {
	case strings.Contains(errMsg, "not found"):
		h.log.Warn(operation+" failed - not found",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseNotFound(w, errMsg)

	case strings.Contains(errMsg, "validation failed"):
		h.log.Warn(operation+" validation failed",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, errMsg, nil)

	case strings.Contains(errMsg, "invalid"):
		h.log.Warn("Invalid input for "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, errMsg, nil)

	case strings.Contains(errMsg, "already exists"):
		h.log.Warn(operation+" failed - duplicate",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, errMsg, nil)

	default:
		h.log.Error("Failed to "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
