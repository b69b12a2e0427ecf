package sendgrid

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// OrderConfirmation is everything the confirmation template needs.
type OrderConfirmation struct {
	To        string
	Name      string
	OrderID   int64
	Total     float64
	ItemCount int
}

type EmailService interface {
	SendOrderConfirmation(ctx context.Context, req *OrderConfirmation) error
}

type emailService struct {
	client    *sendgrid.Client
	fromEmail string
	fromName  string
}

func NewEmailService(apiKey, fromEmail, fromName string) EmailService {
	return &emailService{client: sendgrid.NewSendClient(apiKey), fromEmail: fromEmail, fromName: fromName}
}

// GetSendGridClient exposes the underlying client.
func (e *emailService) GetSendGridClient() *sendgrid.Client {
	return e.client
}

func (e *emailService) SendOrderConfirmation(ctx context.Context, req *OrderConfirmation) error {

	from := mail.NewEmail(e.fromName, e.fromEmail)
	to := mail.NewEmail(req.Name, req.To)

	subject := fmt.Sprintf("Pedido #%d confirmado", req.OrderID)

	plain := fmt.Sprintf(
		"Hola %s,\n\nTu pedido #%d fue registrado exitosamente.\nProductos: %d\nTotal: $%.2f\n\nGracias por tu compra.",
		req.Name, req.OrderID, req.ItemCount, req.Total)

	html := fmt.Sprintf(
		"<p>Hola %s,</p><p>Tu pedido <strong>#%d</strong> fue registrado exitosamente.</p><p>Productos: %d<br>Total: <strong>$%.2f</strong></p><p>Gracias por tu compra.</p>",
		req.Name, req.OrderID, req.ItemCount, req.Total)

	message := mail.NewSingleEmail(from, subject, to, plain, html)

	response, err := e.client.SendWithContext(ctx, message)
	if err != nil {
		return err
	}

	if response.StatusCode >= 400 {
		return fmt.Errorf("failed to send email, status code: %d", response.StatusCode)
	}

	return nil
}
