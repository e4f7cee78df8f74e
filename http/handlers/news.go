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

// NewsHandler serves the news feed and the admin news management endpoints.
type NewsHandler struct {
	news *services.NewsService
}

func NewNewsHandler(news *services.NewsService) *NewsHandler {
	return &NewsHandler{news: news}
}

// List handles GET /news and GET /admin/news. Public callers only see
// published articles; all=true is honored for admin sessions.
func (h *NewsHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := utils.ParseLimitOffset(r)
	filter := &models.NewsFilter{
		Category:      r.URL.Query().Get("category"),
		Search:        strings.TrimSpace(r.URL.Query().Get("search")),
		PublishedOnly: !listAll(r),
		Limit:         limit,
		Offset:        offset,
	}
	items, err := h.news.List(r.Context(), filter)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.SuccessResponse(w, http.StatusOK, "", items)
}

// Get handles GET /news-item?id=.
func (h *NewsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ParseIDParam(r, "id")
	if err != nil {
		response.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	article, err := h.news.GetByID(r.Context(), id)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.SuccessResponse(w, http.StatusOK, "", article)
}

// Categories handles GET /news-categories.
func (h *NewsHandler) Categories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.news.Categories(r.Context())
	if err != nil {
		response.Error(w, err)
		return
	}
	response.SuccessResponse(w, http.StatusOK, "", categories)
}

// Create handles POST /admin/create-news.
func (h *NewsHandler) Create(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		response.ErrorResponse(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var in services.CreateNewsInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.ErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	claims := middleware.AdminFrom(r.Context())
	article, err := h.news.Create(r.Context(), &in, claims.AdminID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.SuccessResponse(w, http.StatusCreated, "news created", article)
}

// Update handles POST /admin/update-news?id=.
func (h *NewsHandler) Update(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost && r.Method != http.MethodPut {
		response.ErrorResponse(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	id, err := utils.ParseIDParam(r, "id")
	if err != nil {
		response.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	var upd models.NewsUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		response.ErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	article, err := h.news.Update(r.Context(), id, &upd)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.SuccessResponse(w, http.StatusOK, "news updated", article)
}

// Delete handles POST /admin/delete-news?id=.
func (h *NewsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost && r.Method != http.MethodDelete {
		response.ErrorResponse(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	id, err := utils.ParseIDParam(r, "id")
	if err != nil {
		response.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.news.Delete(r.Context(), id); err != nil {
		response.Error(w, err)
		return
	}
	response.SuccessResponse(w, http.StatusOK, "news deleted", nil)
}
