package restapi

import (
	"context"
	"fmt"
	"net/url"

	"github.com/ecomsuite/storefront-client/internal/ports"
)

// ProductsAPI implements ports.ProductCatalog against the catalog endpoints.
type ProductsAPI struct {
	client *Client
}

// NewProductsAPI builds the catalog adapter over the shared HTTP client.
func NewProductsAPI(client *Client) *ProductsAPI {
	return &ProductsAPI{client: client}
}

type wireProduct struct {
	ID          int64         `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Price       decimalString `json:"price"`
	Stock       int           `json:"stock"`
	Images      []struct {
		ImageURL string `json:"image_url"`
	} `json:"images"`
}

func (p wireProduct) toPort() ports.Product {
	out := ports.Product{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price.Cents(),
		Stock:       p.Stock,
	}
	for _, img := range p.Images {
		out.Images = append(out.Images, img.ImageURL)
	}
	return out
}

func toPortProducts(in []wireProduct) []ports.Product {
	out := make([]ports.Product, 0, len(in))
	for _, p := range in {
		out = append(out, p.toPort())
	}
	return out
}

// Details performs the batch product lookup used for cart hydration.
func (a *ProductsAPI) Details(ctx context.Context, ids []int64) ([]ports.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	body := struct {
		IDs []int64 `json:"ids"`
	}{ids}

	var resp []wireProduct
	if err := a.client.post(ctx, "/products/details", body, &resp); err != nil {
		return nil, err
	}
	return toPortProducts(resp), nil
}

func (a *ProductsAPI) List(ctx context.Context) ([]ports.Product, error) {
	var resp []wireProduct
	if err := a.client.get(ctx, "/products", &resp); err != nil {
		return nil, err
	}
	return toPortProducts(resp), nil
}

func (a *ProductsAPI) Get(ctx context.Context, id int64) (ports.Product, error) {
	var resp wireProduct
	if err := a.client.get(ctx, fmt.Sprintf("/products/%d", id), &resp); err != nil {
		return ports.Product{}, err
	}
	return resp.toPort(), nil
}

func (a *ProductsAPI) Search(ctx context.Context, term string) ([]ports.Product, error) {
	var resp []wireProduct
	if err := a.client.get(ctx, "/products/search?q="+url.QueryEscape(term), &resp); err != nil {
		return nil, err
	}
	return toPortProducts(resp), nil
}

var _ ports.ProductCatalog = (*ProductsAPI)(nil)
