package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"eduportal/http/response"
	"eduportal/models"
	"eduportal/services"
	"eduportal/utils"
)

// RegistrationHandler serves the public signup flow and the admin
// registration surface.
type RegistrationHandler struct {
	registrations *services.RegistrationService
}

func NewRegistrationHandler(registrations *services.RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{registrations: registrations}
}

// Create handles POST /register.
func (h *RegistrationHandler) Create(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		response.ErrorResponse(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var in services.CreateRegistrationInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.ErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	in.ClientIP = utils.ClientIP(r)

	id, err := h.registrations.Create(r.Context(), &in)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.SuccessResponse(w, http.StatusCreated, "registration created", map[string]int{"id": id})
}

// Get handles GET /registration?id=, used by the receipt page.
func (h *RegistrationHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ParseIDParam(r, "id")
	if err != nil {
		response.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	reg, err := h.registrations.GetByID(r.Context(), id)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.SuccessResponse(w, http.StatusOK, "", reg)
}

// Search handles GET /admin/registrations with filters and pagination.
func (h *RegistrationHandler) Search(w http.ResponseWriter, r *http.Request) {
	filter, err := searchFilterFromQuery(r)
	if err != nil {
		response.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	p := utils.ParsePagination(r)

	result, err := h.registrations.Search(r.Context(), filter, p.Page, p.PageSize)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.SuccessResponse(w, http.StatusOK, "", result)
}

// Delete handles POST /admin/registrations/delete?id=.
func (h *RegistrationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost && r.Method != http.MethodDelete {
		response.ErrorResponse(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	id, err := utils.ParseIDParam(r, "id")
	if err != nil {
		response.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.registrations.Delete(r.Context(), id); err != nil {
		response.Error(w, err)
		return
	}
	response.SuccessResponse(w, http.StatusOK, "registration deleted", nil)
}

// BatchDelete handles POST /admin/registrations/batch-delete with {"ids": [...]}.
func (h *RegistrationHandler) BatchDelete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		response.ErrorResponse(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var req struct {
		IDs []int `json:"ids"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.ErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	deleted, err := h.registrations.BatchDelete(r.Context(), req.IDs)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.SuccessResponse(w, http.StatusOK, "registrations deleted", map[string]int{"deleted": deleted})
}

func searchFilterFromQuery(r *http.Request) (*models.RegistrationSearch, error) {
	filter := &models.RegistrationSearch{
		StudentName:   strings.TrimSpace(r.URL.Query().Get("student_name")),
		PaymentStatus: r.URL.Query().Get("payment_status"),
	}
	if str := r.URL.Query().Get("activity_id"); str != "" {
		id, err := strconv.Atoi(str)
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("invalid activity_id")
		}
		filter.ActivityID = id
	}
	times, err := utils.ParseTimeFilters(r)
	if err != nil {
		return nil, err
	}
	filter.StartDate = times.StartDate
	filter.EndDate = times.EndDate
	return filter, nil
}
