package models

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/gomail.v2"
)

type EmailService struct {
	dialer *gomail.Dialer
}

func NewEmailService() (*EmailService, error) {
	smtpHost := os.Getenv("SMTP_HOST")
	smtpPort := os.Getenv("SMTP_PORT")
	smtpUser := os.Getenv("SMTP_USER")
	smtpPass := os.Getenv("SMTP_PASS")

	if smtpHost == "" || smtpUser == "" || smtpPass == "" {
		return nil, fmt.Errorf("SMTP configuration missing")
	}

	port, err := strconv.Atoi(smtpPort)
	if err != nil {
		port = 587
	}

	dialer := gomail.NewDialer(smtpHost, port, smtpUser, smtpPass)

	return &EmailService{dialer: dialer}, nil
}

func (s *EmailService) SendOrderConfirmation(toEmail string, order *Order, formattedTotal string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", os.Getenv("SMTP_FROM"))
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", fmt.Sprintf("Order %s confirmed", order.OrderNumber))

	var rows strings.Builder
	for _, item := range order.Items {
		rows.WriteString(fmt.Sprintf(
			`<tr><td style="padding:8px;border-bottom:1px solid #eee;">%s</td><td style="padding:8px;border-bottom:1px solid #eee;text-align:center;">%d</td><td style="padding:8px;border-bottom:1px solid #eee;text-align:right;">%.2f</td></tr>`,
			item.ProductName, item.Quantity, item.Total))
	}

	body := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <style>
        body { font-family: Arial, sans-serif; background-color: #f4f4f4; padding: 20px; }
        .container { max-width: 600px; margin: 0 auto; background-color: white; padding: 30px; border-radius: 10px; box-shadow: 0 2px 10px rgba(0,0,0,0.1); }
        .header { text-align: center; margin-bottom: 30px; }
        .logo { font-size: 24px; font-weight: bold; color: #0f766e; }
        .total-box { background-color: #f0fdfa; border: 2px dashed #0f766e; padding: 20px; text-align: center; margin: 30px 0; border-radius: 8px; }
        .total { font-size: 28px; font-weight: bold; color: #0f766e; }
        .footer { text-align: center; margin-top: 30px; color: #666; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <div class="logo">Storefront</div>
        </div>
        <h2 style="color: #333;">Thanks for your order!</h2>
        <p>Your order <strong>%s</strong> has been received and is being processed.</p>
        <table style="width:100%%;border-collapse:collapse;">%s</table>
        <div class="total-box">
            <div style="color: #666; font-size: 14px; margin-bottom: 10px;">Order Total</div>
            <div class="total">%s</div>
        </div>
        <p>We will email you again once your order ships.</p>
        <div class="footer">Storefront &middot; automated message, please do not reply</div>
    </div>
</body>
</html>`, order.OrderNumber, rows.String(), formattedTotal)

	m.SetBody("text/html", body)

	return s.dialer.DialAndSend(m)
}
