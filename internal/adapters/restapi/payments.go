package restapi

import (
	"context"
	"net/url"

	"github.com/ecomsuite/storefront-client/internal/ports"
)

// PaymentsAPI implements ports.PaymentAPI against the payment provider bridge.
type PaymentsAPI struct {
	client *Client
}

// NewPaymentsAPI builds the payments adapter over the shared HTTP client.
func NewPaymentsAPI(client *Client) *PaymentsAPI {
	return &PaymentsAPI{client: client}
}

func (a *PaymentsAPI) CreateCheckoutSession(ctx context.Context, req ports.OrderRequest) (ports.PaymentSession, error) {
	var resp struct {
		SessionID   string `json:"session_id"`
		CheckoutURL string `json:"checkout_url"`
	}
	if err := a.client.post(ctx, "/stripe/checkout", req, &resp); err != nil {
		return ports.PaymentSession{}, err
	}
	return ports.PaymentSession{SessionID: resp.SessionID, CheckoutURL: resp.CheckoutURL}, nil
}

func (a *PaymentsAPI) ConfirmPayment(ctx context.Context, sessionID string) (ports.PaymentConfirmation, error) {
	var resp struct {
		SessionID string `json:"session_id"`
		Paid      bool   `json:"paid"`
		OrderID   int64  `json:"order_id"`
	}
	path := "/stripe/success?session_id=" + url.QueryEscape(sessionID)
	if err := a.client.get(ctx, path, &resp); err != nil {
		return ports.PaymentConfirmation{}, err
	}
	return ports.PaymentConfirmation{SessionID: resp.SessionID, Paid: resp.Paid, OrderID: resp.OrderID}, nil
}

var _ ports.PaymentAPI = (*PaymentsAPI)(nil)
