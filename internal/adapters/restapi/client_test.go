package restapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecomsuite/storefront-client/internal/domain/money"
	apperrors "github.com/ecomsuite/storefront-client/internal/errors"
	"github.com/ecomsuite/storefront-client/internal/ports"
)

type staticTokens struct{ token string }

func (s staticTokens) Token() string { return s.token }

type unauthorizedRecorder struct{ calls int }

func (r *unauthorizedRecorder) HandleUnauthorized() { r.calls++ }

func newTestClient(t *testing.T, handler http.Handler, transport http.RoundTripper) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewClient(Config{BaseURL: srv.URL, Transport: transport})
	require.NoError(t, err)
	return client
}

func TestNewClient_RequiresBaseURL(t *testing.T) {
	_, err := NewClient(Config{})
	require.Error(t, err)
}

func TestBearerTransport_AttachesToken(t *testing.T) {
	var gotAuth string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{}`))
	})

	transport := &BearerTransport{Tokens: staticTokens{token: "tok-123"}}
	client := newTestClient(t, handler, transport)

	require.NoError(t, client.get(context.Background(), "/cart", nil))
	assert.Equal(t, "Bearer tok-123", gotAuth)
}

func TestBearerTransport_SkipsAnonymousEndpoints(t *testing.T) {
	auths := map[string]string{}
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auths[r.URL.Path] = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{}`))
	})

	transport := &BearerTransport{Tokens: staticTokens{token: "tok-123"}}
	client := newTestClient(t, handler, transport)
	ctx := context.Background()

	require.NoError(t, client.post(ctx, "/login", struct{}{}, nil))
	require.NoError(t, client.post(ctx, "/logout", struct{}{}, nil))
	require.NoError(t, client.get(ctx, "/cart", nil))

	assert.Empty(t, auths["/login"])
	assert.Empty(t, auths["/logout"])
	assert.Equal(t, "Bearer tok-123", auths["/cart"])
}

func TestBearerTransport_NoTokenNoHeader(t *testing.T) {
	var gotAuth string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{}`))
	})

	transport := &BearerTransport{Tokens: staticTokens{}}
	client := newTestClient(t, handler, transport)

	require.NoError(t, client.get(context.Background(), "/cart", nil))
	assert.Empty(t, gotAuth)
}

func TestBearerTransport_UnauthorizedHookFires(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	recorder := &unauthorizedRecorder{}
	transport := &BearerTransport{Tokens: staticTokens{token: "stale"}, OnUnauthorized: recorder}
	client := newTestClient(t, handler, transport)

	err := client.get(context.Background(), "/cart", nil)
	require.Error(t, err)
	assert.True(t, apperrors.IsUnauthorized(err))
	assert.Equal(t, 1, recorder.calls)
}

func TestClient_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		check  func(error) bool
	}{
		{"401 unauthorized", http.StatusUnauthorized, `{"message":"token expired"}`, apperrors.IsUnauthorized},
		{"404 not found", http.StatusNotFound, `{"message":"no cart"}`, apperrors.IsNotFound},
		{"422 validation", http.StatusUnprocessableEntity, `{"message":"invalid","errors":{"email":["taken"]}}`, apperrors.IsValidation},
		{"400 validation", http.StatusBadRequest, `{"message":"bad request"}`, apperrors.IsValidation},
		{"500 transient", http.StatusInternalServerError, ``, apperrors.IsTransient},
		{"503 transient", http.StatusServiceUnavailable, ``, apperrors.IsTransient},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})
			client := newTestClient(t, handler, nil)

			err := client.get(context.Background(), "/whatever", nil)
			require.Error(t, err)
			assert.True(t, tt.check(err), "unexpected error class: %v", err)
		})
	}
}

func TestClient_ValidationFieldErrors(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"message":"validation failed","errors":{"email":["email already taken"]}}`))
	})
	client := newTestClient(t, handler, nil)

	err := client.post(context.Background(), "/register", struct{}{}, nil)
	require.Error(t, err)

	fields := apperrors.GetFields(err)
	require.Contains(t, fields, "email")
	assert.Equal(t, "email already taken", fields["email"][0])
}

func TestClient_NetworkErrorIsTransient(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close() // connection refused from here on

	client, err := NewClient(Config{BaseURL: url})
	require.NoError(t, err)

	err = client.get(context.Background(), "/cart", nil)
	require.Error(t, err)
	assert.True(t, apperrors.IsTransient(err))
}

func TestAuthAPI_Login(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/login", r.URL.Path)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "ada@example.com", body["email"])
		assert.Equal(t, "cli-1", body["device_name"])

		_, _ = w.Write([]byte(`{
			"message": "ok",
			"access_token": "tok-1",
			"user": {"id": 7, "first_name": "Ada", "last_name": "Lovelace", "email": "ada@example.com", "role": "user"}
		}`))
	})
	api := NewAuthAPI(newTestClient(t, handler, nil))

	res, err := api.Login(context.Background(), ports.Credentials{
		Email: "ada@example.com", Password: "secret", DeviceName: "cli-1",
	})

	require.NoError(t, err)
	assert.Equal(t, "tok-1", res.Token)
	assert.Equal(t, int64(7), res.User.ID)
	assert.Equal(t, "Ada Lovelace", res.User.FullName())
}

func TestAuthAPI_Login_MissingToken(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"message":"ok"}`))
	})
	api := NewAuthAPI(newTestClient(t, handler, nil))

	_, err := api.Login(context.Background(), ports.Credentials{Email: "a@b.c", Password: "x"})
	require.Error(t, err)
}

func TestAuthAPI_VerifyToken(t *testing.T) {
	status := http.StatusOK
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/verify-token", r.URL.Path)
		w.WriteHeader(status)
	})
	api := NewAuthAPI(newTestClient(t, handler, nil))
	ctx := context.Background()

	require.NoError(t, api.VerifyToken(ctx))

	status = http.StatusUnauthorized
	err := api.VerifyToken(ctx)
	require.Error(t, err)
	assert.True(t, apperrors.IsUnauthorized(err))
}

func TestCartAPI_Fetch(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/cart", r.URL.Path)
		_, _ = w.Write([]byte(`{"items":[
			{"product_id": 1, "quantity": 2, "price": 19.99},
			{"product_id": 2, "quantity": 3, "price": "7.50"}
		]}`))
	})
	api := NewCartAPI(newTestClient(t, handler, nil))

	items, err := api.Fetch(context.Background())

	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, money.MustParseDecimal("19.99"), items[0].UnitPrice, "numeric price decoded")
	assert.Equal(t, money.MustParseDecimal("7.50"), items[1].UnitPrice, "string price decoded")
}

func TestCartAPI_Fetch_NoCart(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	api := NewCartAPI(newTestClient(t, handler, nil))

	_, err := api.Fetch(context.Background())
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestCartAPI_Sync(t *testing.T) {
	var got struct {
		Items []ports.CartEntry `json:"items"`
	}
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/cart/sync", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{}`))
	})
	api := NewCartAPI(newTestClient(t, handler, nil))

	entries := []ports.CartEntry{{ProductID: 1, Quantity: 2}, {ProductID: 2, Quantity: 3}}
	require.NoError(t, api.Sync(context.Background(), entries))
	assert.Equal(t, entries, got.Items)
}

func TestCartAPI_RemoveItem(t *testing.T) {
	var path, method string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path, method = r.URL.Path, r.Method
	})
	api := NewCartAPI(newTestClient(t, handler, nil))

	require.NoError(t, api.RemoveItem(context.Background(), 42))
	assert.Equal(t, "/cart/item/42", path)
	assert.Equal(t, http.MethodDelete, method)
}

func TestProductsAPI_Details(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/products/details", r.URL.Path)
		var body struct {
			IDs []int64 `json:"ids"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, []int64{2, 5}, body.IDs)

		// Product 5 was deleted; only 2 comes back.
		_, _ = w.Write([]byte(`[
			{"id": 2, "name": "Mug", "price": "7.50", "stock": 10, "images": [{"image_url": "mug.jpg"}]}
		]`))
	})
	api := NewProductsAPI(newTestClient(t, handler, nil))

	products, err := api.Details(context.Background(), []int64{2, 5})

	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, int64(2), products[0].ID)
	assert.Equal(t, money.MustParseDecimal("7.50"), products[0].Price)
	assert.Equal(t, "mug.jpg", products[0].FirstImage())
}

func TestProductsAPI_Details_EmptyInput(t *testing.T) {
	api := NewProductsAPI(newTestClient(t, http.NotFoundHandler(), nil))

	products, err := api.Details(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, products, "no call issued for an empty id list")
}

func TestProductsAPI_Search(t *testing.T) {
	var query string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.RawQuery
		_, _ = w.Write([]byte(`[]`))
	})
	api := NewProductsAPI(newTestClient(t, handler, nil))

	_, err := api.Search(context.Background(), "blue shirt")
	require.NoError(t, err)
	assert.Equal(t, "q=blue+shirt", query)
}

func TestOrdersAPI_Create(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/orders", r.URL.Path)
		_, _ = w.Write([]byte(`{"id": 11, "status": "pending", "total": 6248}`))
	})
	api := NewOrdersAPI(newTestClient(t, handler, nil))

	order, err := api.Create(context.Background(), ports.OrderRequest{
		Items: []ports.CartEntry{{ProductID: 1, Quantity: 2}},
	})

	require.NoError(t, err)
	assert.Equal(t, int64(11), order.ID)
	assert.Equal(t, "pending", order.Status)
}

func TestPaymentsAPI_ConfirmPayment(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/stripe/success", r.URL.Path)
		assert.Equal(t, "sess_1", r.URL.Query().Get("session_id"))
		_, _ = w.Write([]byte(`{"session_id": "sess_1", "paid": true, "order_id": 11}`))
	})
	api := NewPaymentsAPI(newTestClient(t, handler, nil))

	conf, err := api.ConfirmPayment(context.Background(), "sess_1")

	require.NoError(t, err)
	assert.True(t, conf.Paid)
	assert.Equal(t, int64(11), conf.OrderID)
}
