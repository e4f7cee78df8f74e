package handlers

import (
	"fmt"
	"net/http"
	"time"

	"eduportal/http/response"
	"eduportal/models"
	"eduportal/services"
	"eduportal/utils"
)

// exportPageSize bounds one export. Large enough for any realistic activity.
const exportPageSize = 10000

// ExportHandler serves the registrations Excel export and the receipt PDF
// download.
type ExportHandler struct {
	registrations *services.RegistrationService
	payments      *services.PaymentService
	activities    *services.ActivityService
}

func NewExportHandler(registrations *services.RegistrationService, payments *services.PaymentService, activities *services.ActivityService) *ExportHandler {
	return &ExportHandler{registrations: registrations, payments: payments, activities: activities}
}

// Registrations handles GET /admin/registrations/export, streaming the
// filtered registrations as an .xlsx download.
func (h *ExportHandler) Registrations(w http.ResponseWriter, r *http.Request) {
	filter, err := searchFilterFromQuery(r)
	if err != nil {
		response.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.registrations.Search(r.Context(), filter, 1, exportPageSize)
	if err != nil {
		response.Error(w, err)
		return
	}

	data, err := services.ExportRegistrationsExcel(result.Items)
	if err != nil {
		response.ErrorResponse(w, http.StatusInternalServerError, "error generating export")
		return
	}

	filename := fmt.Sprintf("registrations_%s.xlsx", time.Now().Format("20060102_150405"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	w.Write(data)
}

// Receipt handles GET /receipt-pdf?registration_id=, rendering the payment
// receipt for a paid registration.
func (h *ExportHandler) Receipt(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ParseIDParam(r, "registration_id")
	if err != nil {
		response.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	reg, err := h.registrations.GetByID(r.Context(), id)
	if err != nil {
		response.Error(w, err)
		return
	}
	if reg.PaymentStatus != models.RegistrationPaymentPaid {
		response.ErrorResponse(w, http.StatusBadRequest, "registration is not paid")
		return
	}

	payment, err := h.payments.GetByRegistrationID(r.Context(), id)
	if err != nil {
		response.Error(w, err)
		return
	}
	if payment == nil {
		response.ErrorResponse(w, http.StatusNotFound, "payment not found")
		return
	}

	activityTitle := ""
	if activity, err := h.activities.GetByID(r.Context(), reg.ActivityID); err == nil {
		activityTitle = activity.Title
	}

	data, err := services.GenerateReceiptPDF(reg, payment, activityTitle)
	if err != nil {
		response.ErrorResponse(w, http.StatusInternalServerError, "error generating receipt")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="receipt_%d.pdf"`, id))
	w.Write(data)
}
