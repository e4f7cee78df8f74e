package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"eduportal/http/middleware"
	"eduportal/http/response"
	"eduportal/models"
	"eduportal/services"
	"eduportal/utils"
)

// CompetitionHandler serves the competition directory.
type CompetitionHandler struct {
	competitions *services.CompetitionService
}

func NewCompetitionHandler(competitions *services.CompetitionService) *CompetitionHandler {
	return &CompetitionHandler{competitions: competitions}
}

// List handles GET /competitions with category/level/status/whitelisted/search
// filters. Public callers only see published entries; all=true is honored
// for admin sessions on /admin/competitions.
func (h *CompetitionHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := utils.ParseLimitOffset(r)
	filter := &models.CompetitionFilter{
		Category:      r.URL.Query().Get("category"),
		Level:         r.URL.Query().Get("level"),
		Status:        r.URL.Query().Get("status"),
		Search:        strings.TrimSpace(r.URL.Query().Get("search")),
		PublishedOnly: !listAll(r),
		Limit:         limit,
		Offset:        offset,
	}
	if str := r.URL.Query().Get("whitelisted"); str != "" {
		v := str == "true"
		filter.IsWhitelisted = &v
	}

	items, err := h.competitions.List(r.Context(), filter)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.SuccessResponse(w, http.StatusOK, "", items)
}

// Get handles GET /competition?id=.
func (h *CompetitionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ParseIDParam(r, "id")
	if err != nil {
		response.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	c, err := h.competitions.GetByID(r.Context(), id)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.SuccessResponse(w, http.StatusOK, "", c)
}

// Categories handles GET /competition-categories.
func (h *CompetitionHandler) Categories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.competitions.Categories(r.Context())
	if err != nil {
		response.Error(w, err)
		return
	}
	response.SuccessResponse(w, http.StatusOK, "", categories)
}

// Create handles POST /admin/create-competition.
func (h *CompetitionHandler) Create(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		response.ErrorResponse(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var c models.Competition
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		response.ErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	claims := middleware.AdminFrom(r.Context())
	created, err := h.competitions.Create(r.Context(), &c, claims.AdminID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.SuccessResponse(w, http.StatusCreated, "competition created", created)
}

// Update handles POST /admin/update-competition?id=.
func (h *CompetitionHandler) Update(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost && r.Method != http.MethodPut {
		response.ErrorResponse(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	id, err := utils.ParseIDParam(r, "id")
	if err != nil {
		response.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	var upd models.CompetitionUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		response.ErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	c, err := h.competitions.Update(r.Context(), id, &upd)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.SuccessResponse(w, http.StatusOK, "competition updated", c)
}

// Delete handles POST /admin/delete-competition?id=.
func (h *CompetitionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost && r.Method != http.MethodDelete {
		response.ErrorResponse(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	id, err := utils.ParseIDParam(r, "id")
	if err != nil {
		response.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.competitions.Delete(r.Context(), id); err != nil {
		response.Error(w, err)
		return
	}
	response.SuccessResponse(w, http.StatusOK, "competition deleted", nil)
}
