package restapi

import (
	"context"
	"fmt"

	"github.com/ecomsuite/storefront-client/internal/ports"
)

// OrdersAPI implements ports.OrderAPI against the order endpoints.
type OrdersAPI struct {
	client *Client
}

// NewOrdersAPI builds the orders adapter over the shared HTTP client.
func NewOrdersAPI(client *Client) *OrdersAPI {
	return &OrdersAPI{client: client}
}

func (a *OrdersAPI) Create(ctx context.Context, req ports.OrderRequest) (ports.Order, error) {
	var out ports.Order
	if err := a.client.post(ctx, "/orders", req, &out); err != nil {
		return ports.Order{}, err
	}
	return out, nil
}

func (a *OrdersAPI) List(ctx context.Context) ([]ports.Order, error) {
	var out []ports.Order
	if err := a.client.get(ctx, "/orders", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *OrdersAPI) Get(ctx context.Context, id int64) (ports.Order, error) {
	var out ports.Order
	if err := a.client.get(ctx, fmt.Sprintf("/orders/%d", id), &out); err != nil {
		return ports.Order{}, err
	}
	return out, nil
}

var _ ports.OrderAPI = (*OrdersAPI)(nil)
