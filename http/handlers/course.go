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

// CourseHandler serves the tutoring course catalog.
type CourseHandler struct {
	courses *services.CourseService
}

func NewCourseHandler(courses *services.CourseService) *CourseHandler {
	return &CourseHandler{courses: courses}
}

// List handles GET /courses with subject/grade/search filters. Public
// callers only see active courses; all=true is honored for admin sessions
// on /admin/courses.
func (h *CourseHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := utils.ParseLimitOffset(r)
	filter := &models.CourseFilter{
		Subject:    r.URL.Query().Get("subject"),
		Grade:      r.URL.Query().Get("grade"),
		Search:     strings.TrimSpace(r.URL.Query().Get("search")),
		ActiveOnly: !listAll(r),
		Limit:      limit,
		Offset:     offset,
	}
	items, err := h.courses.List(r.Context(), filter)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.SuccessResponse(w, http.StatusOK, "", items)
}

// Get handles GET /course?id=.
func (h *CourseHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ParseIDParam(r, "id")
	if err != nil {
		response.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	c, err := h.courses.GetByID(r.Context(), id)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.SuccessResponse(w, http.StatusOK, "", c)
}

// Create handles POST /admin/create-course.
func (h *CourseHandler) Create(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		response.ErrorResponse(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var c models.Course
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		response.ErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	claims := middleware.AdminFrom(r.Context())
	created, err := h.courses.Create(r.Context(), &c, claims.AdminID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.SuccessResponse(w, http.StatusCreated, "course created", created)
}

// Update handles POST /admin/update-course?id=.
func (h *CourseHandler) Update(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost && r.Method != http.MethodPut {
		response.ErrorResponse(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	id, err := utils.ParseIDParam(r, "id")
	if err != nil {
		response.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	var upd models.CourseUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		response.ErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	c, err := h.courses.Update(r.Context(), id, &upd)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.SuccessResponse(w, http.StatusOK, "course updated", c)
}

// Delete handles POST /admin/delete-course?id=.
func (h *CourseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost && r.Method != http.MethodDelete {
		response.ErrorResponse(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	id, err := utils.ParseIDParam(r, "id")
	if err != nil {
		response.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.courses.Delete(r.Context(), id); err != nil {
		response.Error(w, err)
		return
	}
	response.SuccessResponse(w, http.StatusOK, "course deleted", nil)
}
