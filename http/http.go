package http

import (
	"net/http"

	"eduportal/http/handlers"
	"eduportal/http/middleware"
	"eduportal/services"
)

// Handlers bundles the constructed handler set for route registration.
type Handlers struct {
	Registrations *handlers.RegistrationHandler
	Payments      *handlers.PaymentHandler
	Activities    *handlers.ActivityHandler
	News          *handlers.NewsHandler
	Competitions  *handlers.CompetitionHandler
	Courses       *handlers.CourseHandler
	Admins        *handlers.AdminHandler
	Exports       *handlers.ExportHandler
}

// SetupRoutes configures all HTTP routes and middleware. adminService backs
// the session guard on /admin routes.
func SetupRoutes(mux *http.ServeMux, h *Handlers, adminService *services.AdminService) {
	public := func(fn http.HandlerFunc) http.HandlerFunc {
		return middleware.EnableCORS(fn)
	}
	admin := func(fn http.HandlerFunc) http.HandlerFunc {
		return middleware.EnableCORS(middleware.RequireAdmin(adminService, fn))
	}

	// Registration & payment APIs
	mux.HandleFunc("/register", public(h.Registrations.Create))
	mux.HandleFunc("/registration", public(h.Registrations.Get))
	mux.HandleFunc("/create-payment-intent", public(h.Payments.CreateIntent))
	mux.HandleFunc("/payment-status", public(h.Payments.Status))
	mux.HandleFunc("/receipt-pdf", public(h.Exports.Receipt))

	// Provider webhook (no CORS; the caller is a server)
	mux.HandleFunc("/webhook/stripe", h.Payments.Webhook)

	// Public content APIs
	mux.HandleFunc("/activities", public(h.Activities.List))
	mux.HandleFunc("/activity", public(h.Activities.Get))
	mux.HandleFunc("/news", public(h.News.List))
	mux.HandleFunc("/news-item", public(h.News.Get))
	mux.HandleFunc("/news-categories", public(h.News.Categories))
	mux.HandleFunc("/competitions", public(h.Competitions.List))
	mux.HandleFunc("/competition", public(h.Competitions.Get))
	mux.HandleFunc("/competition-categories", public(h.Competitions.Categories))
	mux.HandleFunc("/courses", public(h.Courses.List))
	mux.HandleFunc("/course", public(h.Courses.Get))

	// Admin session
	mux.HandleFunc("/admin/login", public(h.Admins.Login))
	mux.HandleFunc("/admin/logout", public(h.Admins.Logout))
	mux.HandleFunc("/admin/me", admin(h.Admins.Me))

	// Admin account management
	mux.HandleFunc("/admin/accounts", admin(h.Admins.List))
	mux.HandleFunc("/admin/create-account", admin(h.Admins.Create))
	mux.HandleFunc("/admin/update-account", admin(h.Admins.Update))
	mux.HandleFunc("/admin/delete-account", admin(h.Admins.Delete))

	// Admin registration surface
	mux.HandleFunc("/admin/registrations", admin(h.Registrations.Search))
	mux.HandleFunc("/admin/registrations/delete", admin(h.Registrations.Delete))
	mux.HandleFunc("/admin/registrations/batch-delete", admin(h.Registrations.BatchDelete))
	mux.HandleFunc("/admin/registrations/export", admin(h.Exports.Registrations))

	// Admin content management. The admin list routes serve drafts and
	// deactivated items that the public routes filter out.
	mux.HandleFunc("/admin/activities", admin(h.Activities.List))
	mux.HandleFunc("/admin/news", admin(h.News.List))
	mux.HandleFunc("/admin/competitions", admin(h.Competitions.List))
	mux.HandleFunc("/admin/courses", admin(h.Courses.List))
	mux.HandleFunc("/admin/create-activity", admin(h.Activities.Create))
	mux.HandleFunc("/admin/update-activity", admin(h.Activities.Update))
	mux.HandleFunc("/admin/create-news", admin(h.News.Create))
	mux.HandleFunc("/admin/update-news", admin(h.News.Update))
	mux.HandleFunc("/admin/delete-news", admin(h.News.Delete))
	mux.HandleFunc("/admin/create-competition", admin(h.Competitions.Create))
	mux.HandleFunc("/admin/update-competition", admin(h.Competitions.Update))
	mux.HandleFunc("/admin/delete-competition", admin(h.Competitions.Delete))
	mux.HandleFunc("/admin/create-course", admin(h.Courses.Create))
	mux.HandleFunc("/admin/update-course", admin(h.Courses.Update))
	mux.HandleFunc("/admin/delete-course", admin(h.Courses.Delete))
}
