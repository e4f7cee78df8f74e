package services

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"eduportal/models"
)

// GenerateReceiptPDF renders the payment receipt for a completed
// registration and returns the PDF bytes.
func GenerateReceiptPDF(reg *models.Registration, payment *models.Payment, activityTitle string) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "Payment Receipt")
	pdf.Ln(14)

	pdf.SetFont("Arial", "", 12)
	line := func(label, value string) {
		pdf.SetFont("Arial", "B", 12)
		pdf.Cell(50, 8, label)
		pdf.SetFont("Arial", "", 12)
		pdf.Cell(0, 8, tr(value))
		pdf.Ln(8)
	}

	line("Receipt No:", fmt.Sprintf("R%06d", payment.ID))
	line("Registration:", fmt.Sprintf("#%d", reg.ID))
	line("Activity:", activityTitle)
	line("Student:", reg.StudentName)
	line("Amount:", fmt.Sprintf("%s %s", payment.Amount, payment.Currency))
	line("Method:", payment.PaymentMethod)
	line("Status:", payment.Status)
	if payment.TransactionID != "" {
		line("Transaction:", payment.TransactionID)
	}
	if payment.PaidAt != nil {
		line("Paid At:", payment.PaidAt.Format("2006-01-02 15:04:05"))
	}

	pdf.Ln(8)
	pdf.SetFont("Arial", "I", 10)
	pdf.Cell(0, 8, fmt.Sprintf("Generated %s", time.Now().Format("2006-01-02 15:04:05")))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("error generating receipt PDF: %w", err)
	}
	return buf.Bytes(), nil
}
