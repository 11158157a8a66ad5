package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"curaise/internal/models"
)

// EmailService sends transactional email
type EmailService interface {
	SendOrderConfirmation(buyer *models.User, order *models.Order, fundraiser *models.Fundraiser, items []*models.OrderItemDetail) error
}

// ResendConfig represents Resend email service configuration
type ResendConfig struct {
	APIKey    string
	FromEmail string
	FromName  string
}

// ResendEmailService handles email sending via the Resend API
type ResendEmailService struct {
	config ResendConfig
	client *http.Client
	apiURL string
}

// NewResendEmailService creates a new Resend email service
func NewResendEmailService(config ResendConfig) *ResendEmailService {
	return &ResendEmailService{
		config: config,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		apiURL: "https://api.resend.com/emails",
	}
}

// resendEmailRequest represents the request structure for the Resend API
type resendEmailRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html,omitempty"`
	Text    string   `json:"text,omitempty"`
}

// resendErrorResponse represents an error response from the Resend API
type resendErrorResponse struct {
	Message string `json:"message"`
	Name    string `json:"name"`
}

// getFromField constructs the from field properly
func (s *ResendEmailService) getFromField() string {
	if s.config.FromName != "" {
		return fmt.Sprintf("%s <%s>", s.config.FromName, s.config.FromEmail)
	}
	return s.config.FromEmail
}

// SendOrderConfirmation sends an order confirmation email to the buyer with
// the line items, the exact total, and the manual payment instructions.
func (s *ResendEmailService) SendOrderConfirmation(buyer *models.User, order *models.Order, fundraiser *models.Fundraiser, items []*models.OrderItemDetail) error {
	subject := fmt.Sprintf("Order Confirmation - %s", fundraiser.Name)

	return s.send(resendEmailRequest{
		From:    s.getFromField(),
		To:      []string{buyer.Email},
		Subject: subject,
		HTML:    s.orderConfirmationHTML(buyer, order, fundraiser, items),
		Text:    s.orderConfirmationText(buyer, order, fundraiser, items),
	})
}

func (s *ResendEmailService) send(req resendEmailRequest) error {
	if s.config.APIKey == "" {
		return fmt.Errorf("resend API key not configured")
	}

	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("failed to encode email request: %w", err)
	}

	httpReq, err := http.NewRequest(http.MethodPost, s.apiURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create email request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+s.config.APIKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp resendErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil && errResp.Message != "" {
			return fmt.Errorf("resend API error: %s", errResp.Message)
		}
		return fmt.Errorf("resend API returned status %d", resp.StatusCode)
	}

	return nil
}

func (s *ResendEmailService) orderConfirmationHTML(buyer *models.User, order *models.Order, fundraiser *models.Fundraiser, items []*models.OrderItemDetail) string {
	var lines strings.Builder
	for _, detail := range items {
		lines.WriteString(fmt.Sprintf(
			`<div class="order-item"><strong>%s</strong> x%d - $%s</div>`,
			detail.Item.Name, detail.Quantity, FormatAmount(LineSubtotal(detail)),
		))
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Order Confirmation</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background-color: #B31B1B; color: white; padding: 20px; text-align: center; border-radius: 8px 8px 0 0; }
        .content { padding: 20px; background-color: #f9f9f9; }
        .order-item { background-color: white; padding: 12px; margin: 8px 0; border-radius: 4px; border: 1px solid #e5e7eb; }
        .total { font-size: 18px; font-weight: bold; margin: 16px 0; }
        .footer { text-align: center; padding: 20px; color: #666; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>Order Confirmed!</h1>
            <p>Thank you for supporting %s</p>
        </div>
        <div class="content">
            <p>Dear %s,</p>
            <p>Your order has been received. Payment is verified manually by the organization, so your order will show as pending until they confirm your Venmo payment.</p>

            %s

            <p class="total">Total: $%s</p>

            <p>Pickup window: %s to %s. Please bring your order confirmation to the pickup event.</p>
        </div>
        <div class="footer">
            <p>CURaise</p>
            <p>This email was sent to %s</p>
        </div>
    </div>
</body>
</html>`,
		fundraiser.Name,
		buyer.Name,
		lines.String(),
		FormatAmount(order.TotalAmount),
		fundraiser.PickupStartsAt.Format("Jan 2, 2006 3:04 PM"),
		fundraiser.PickupEndsAt.Format("Jan 2, 2006 3:04 PM"),
		buyer.Email,
	)
}

func (s *ResendEmailService) orderConfirmationText(buyer *models.User, order *models.Order, fundraiser *models.Fundraiser, items []*models.OrderItemDetail) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Order Confirmation - %s\n\n", fundraiser.Name)
	fmt.Fprintf(&b, "Dear %s,\n\n", buyer.Name)
	b.WriteString("Your order has been received. Payment is verified manually by the organization.\n\n")

	for _, detail := range items {
		fmt.Fprintf(&b, "- %s x%d: $%s\n", detail.Item.Name, detail.Quantity, FormatAmount(LineSubtotal(detail)))
	}

	fmt.Fprintf(&b, "\nTotal: $%s\n", FormatAmount(order.TotalAmount))
	fmt.Fprintf(&b, "Pickup window: %s to %s\n",
		fundraiser.PickupStartsAt.Format("Jan 2, 2006 3:04 PM"),
		fundraiser.PickupEndsAt.Format("Jan 2, 2006 3:04 PM"))

	return b.String()
}
