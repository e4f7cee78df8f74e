package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"eduportal/http/middleware"
	"eduportal/http/response"
	"eduportal/models"
	"eduportal/services"
	"eduportal/utils"
)

// AdminHandler serves back-office authentication and account management.
type AdminHandler struct {
	admins *services.AdminService
}

func NewAdminHandler(admins *services.AdminService) *AdminHandler {
	return &AdminHandler{admins: admins}
}

// Login handles POST /admin/login and sets the session cookie.
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		response.ErrorResponse(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.ErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	admin, token, err := h.admins.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		response.Error(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.AdminCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(24 * time.Hour),
	})
	response.SuccessResponse(w, http.StatusOK, "login successful", map[string]interface{}{
		"admin": admin,
		"token": token,
	})
}

// Logout handles POST /admin/logout by expiring the session cookie.
func (h *AdminHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.AdminCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
	response.SuccessResponse(w, http.StatusOK, "logged out", nil)
}

// Me handles GET /admin/me for the authenticated admin.
func (h *AdminHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims := middleware.AdminFrom(r.Context())
	admin, err := h.admins.GetByID(r.Context(), claims.AdminID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.SuccessResponse(w, http.StatusOK, "", admin)
}

// List handles GET /admin/accounts.
func (h *AdminHandler) List(w http.ResponseWriter, r *http.Request) {
	admins, err := h.admins.List(r.Context())
	if err != nil {
		response.Error(w, err)
		return
	}
	response.SuccessResponse(w, http.StatusOK, "", admins)
}

// Create handles POST /admin/create-account.
func (h *AdminHandler) Create(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		response.ErrorResponse(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var in services.CreateAdminInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.ErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	claims := middleware.AdminFrom(r.Context())
	admin, err := h.admins.Create(r.Context(), &in, claims.AdminID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.SuccessResponse(w, http.StatusCreated, "admin created", admin)
}

// Update handles POST /admin/update-account?id=.
func (h *AdminHandler) Update(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost && r.Method != http.MethodPut {
		response.ErrorResponse(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	id, err := utils.ParseIDParam(r, "id")
	if err != nil {
		response.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	var upd models.AdminUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		response.ErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	admin, err := h.admins.Update(r.Context(), id, &upd)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.SuccessResponse(w, http.StatusOK, "admin updated", admin)
}

// Delete handles POST /admin/delete-account?id=.
func (h *AdminHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost && r.Method != http.MethodDelete {
		response.ErrorResponse(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	id, err := utils.ParseIDParam(r, "id")
	if err != nil {
		response.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	claims := middleware.AdminFrom(r.Context())
	if err := h.admins.Delete(r.Context(), id, claims.AdminID); err != nil {
		response.Error(w, err)
		return
	}
	response.SuccessResponse(w, http.StatusOK, "admin deleted", nil)
}
