package restapi

import (
	"context"
	"fmt"

	"github.com/ecomsuite/storefront-client/internal/domain/cart"
	"github.com/ecomsuite/storefront-client/internal/ports"
)

// CartAPI implements ports.CartAPI against the remote cart mirror endpoints.
type CartAPI struct {
	client *Client
}

// NewCartAPI builds the cart adapter over the shared HTTP client.
func NewCartAPI(client *Client) *CartAPI {
	return &CartAPI{client: client}
}

type remoteCartItem struct {
	ProductID int64         `json:"product_id"`
	Quantity  int           `json:"quantity"`
	Price     decimalString `json:"price"`
}

func (a *CartAPI) Fetch(ctx context.Context) ([]cart.RemoteItem, error) {
	var resp struct {
		Items []remoteCartItem `json:"items"`
	}
	if err := a.client.get(ctx, "/cart", &resp); err != nil {
		return nil, err
	}

	items := make([]cart.RemoteItem, 0, len(resp.Items))
	for _, it := range resp.Items {
		items = append(items, cart.RemoteItem{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.Price.Cents(),
		})
	}
	return items, nil
}

func (a *CartAPI) Sync(ctx context.Context, entries []ports.CartEntry) error {
	body := struct {
		Items []ports.CartEntry `json:"items"`
	}{entries}
	return a.client.post(ctx, "/cart/sync", body, nil)
}

func (a *CartAPI) AddItem(ctx context.Context, entry ports.CartEntry) error {
	return a.client.post(ctx, "/cart/add", entry, nil)
}

func (a *CartAPI) UpdateItem(ctx context.Context, entry ports.CartEntry) error {
	return a.client.put(ctx, "/cart/update", entry, nil)
}

func (a *CartAPI) RemoveItem(ctx context.Context, productID int64) error {
	return a.client.delete(ctx, fmt.Sprintf("/cart/item/%d", productID))
}

func (a *CartAPI) Clear(ctx context.Context) error {
	return a.client.delete(ctx, "/cart/clear")
}

var _ ports.CartAPI = (*CartAPI)(nil)
