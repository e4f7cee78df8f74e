package services

import (
	"fmt"
	"io"
	"strconv"

	"gopkg.in/gomail.v2"

	"eduportal/config"
	"eduportal/logger"
	"eduportal/models"
)

// EmailNotifier sends guardian notifications over SMTP.
type EmailNotifier struct {
	host string
	port int
	user string
	pass string
	from string
}

// NewEmailNotifier builds a notifier from the loaded configuration. Returns
// nil when SMTP credentials are missing, which downstream code treats as
// "email disabled".
func NewEmailNotifier() *EmailNotifier {
	cfg := config.AppConfig
	if cfg.SMTPUser == "" || cfg.SMTPPass == "" {
		logger.Warn("SMTP credentials not configured, email notifications disabled")
		return nil
	}

	port := 587
	if v, err := strconv.Atoi(cfg.SMTPPort); err == nil {
		port = v
	}
	from := cfg.EmailFrom
	if from == "" {
		from = cfg.SMTPUser
	}

	return &EmailNotifier{
		host: cfg.SMTPHost,
		port: port,
		user: cfg.SMTPUser,
		pass: cfg.SMTPPass,
		from: from,
	}
}

// SendReceipt emails the payment confirmation, with the PDF receipt
// attached, to the registration's guardian. Runs in the background and only
// logs failures.
func (n *EmailNotifier) SendReceipt(reg *models.Registration, payment *models.Payment, activityTitle string) {
	go func() {
		if err := n.sendReceipt(reg, payment, activityTitle); err != nil {
			logger.Error("Failed to send receipt email for registration %d: %v", reg.ID, err)
			return
		}
		logger.Info("Receipt email sent for registration %d", reg.ID)
	}()
}

func (n *EmailNotifier) sendReceipt(reg *models.Registration, payment *models.Payment, activityTitle string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", n.from)
	m.SetHeader("To", reg.GuardianEmail)
	m.SetHeader("Subject", "缴费成功通知")

	body := fmt.Sprintf(`<p>%s 家长，您好：</p>
<p>学生 <b>%s</b> 报名「%s」的缴费已成功。</p>
<p>报名编号：%d<br>缴费金额：%s %s</p>
<p>电子回执见附件。</p>`,
		reg.GuardianName, reg.StudentName, activityTitle, reg.ID, payment.Amount, payment.Currency)
	m.SetBody("text/html", body)

	if pdf, err := GenerateReceiptPDF(reg, payment, activityTitle); err == nil {
		name := fmt.Sprintf("receipt_%d.pdf", reg.ID)
		m.Attach(name, gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(pdf)
			return err
		}))
	} else {
		logger.Warn("Receipt PDF generation failed for registration %d: %v", reg.ID, err)
	}

	d := gomail.NewDialer(n.host, n.port, n.user, n.pass)
	return d.DialAndSend(m)
}
