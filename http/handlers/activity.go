package handlers

import (
	"encoding/json"
	"net/http"

	"eduportal/http/middleware"
	"eduportal/http/response"
	"eduportal/models"
	"eduportal/services"
	"eduportal/utils"
)

// ActivityHandler serves the public activity pages and the admin activity
// management endpoints.
type ActivityHandler struct {
	activities *services.ActivityService
}

func NewActivityHandler(activities *services.ActivityService) *ActivityHandler {
	return &ActivityHandler{activities: activities}
}

// List handles GET /activities and GET /admin/activities. The public sees
// active activities only; all=true is honored for admin sessions.
func (h *ActivityHandler) List(w http.ResponseWriter, r *http.Request) {
	activeOnly := !listAll(r)
	items, err := h.activities.List(r.Context(), activeOnly)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.SuccessResponse(w, http.StatusOK, "", items)
}

// Get handles GET /activity?id=.
func (h *ActivityHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ParseIDParam(r, "id")
	if err != nil {
		response.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	activity, err := h.activities.GetByID(r.Context(), id)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.SuccessResponse(w, http.StatusOK, "", activity)
}

// Create handles POST /admin/create-activity.
func (h *ActivityHandler) Create(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		response.ErrorResponse(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var in services.CreateActivityInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.ErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	claims := middleware.AdminFrom(r.Context())
	activity, err := h.activities.Create(r.Context(), &in, claims.AdminID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.SuccessResponse(w, http.StatusCreated, "activity created", activity)
}

// Update handles POST /admin/update-activity?id=.
func (h *ActivityHandler) Update(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost && r.Method != http.MethodPut {
		response.ErrorResponse(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	id, err := utils.ParseIDParam(r, "id")
	if err != nil {
		response.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	var upd models.ActivityUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		response.ErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	activity, err := h.activities.Update(r.Context(), id, &upd)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.SuccessResponse(w, http.StatusOK, "activity updated", activity)
}
