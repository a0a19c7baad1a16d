package bootstrap

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecomsuite/storefront-client/config"
	mockapi "github.com/ecomsuite/storefront-client/internal/mocks/api"
	"github.com/ecomsuite/storefront-client/internal/ports"
)

// fakeStorefront is a minimal in-memory rendition of the storefront API used
// for end-to-end wiring tests.
type fakeStorefront struct {
	mu        sync.Mutex
	cartItems []map[string]any
	syncs     int
	lastAuth  string
}

func (f *fakeStorefront) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /login", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{
			"access_token": "srv-token",
			"token_type":   "Bearer",
			"user": map[string]any{
				"id": 7, "first_name": "Ada", "last_name": "L", "email": "ada@example.com", "role": "user",
			},
		})
	})
	mux.HandleFunc("GET /user", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{"user": map[string]any{
			"id": 7, "first_name": "Ada", "last_name": "L", "email": "ada@example.com", "role": "user",
		}})
	})
	mux.HandleFunc("GET /cart", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.lastAuth = r.Header.Get("Authorization")
		writeJSON(w, map[string]any{"items": f.cartItems})
	})
	mux.HandleFunc("POST /cart/sync", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.syncs++
		f.mu.Unlock()
		writeJSON(w, map[string]any{"message": "ok"})
	})
	mux.HandleFunc("POST /products/details", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, []map[string]any{
			{"id": 2, "name": "Teapot", "price": "24.00", "stock": 9},
		})
	})
	return mux
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func newTestClient(t *testing.T, baseURL string) (*Client, *mockapi.MemoryKVStore) {
	t.Helper()

	cfg := config.AppConfig{API: config.APIConfig{BaseURL: baseURL}}
	cfg.Sanitize()

	store := mockapi.NewMemoryKVStore()
	client, err := NewClient(ClientOptions{
		Config:    cfg,
		Navigator: &mockapi.RecordingNavigator{},
		Store:     store,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return client, store
}

func TestNewClient_LoginTriggersCartMerge(t *testing.T) {
	api := &fakeStorefront{
		cartItems: []map[string]any{{"product_id": 2, "quantity": 2, "price": "24.00"}},
	}
	server := httptest.NewServer(api.handler())
	defer server.Close()

	client, _ := newTestClient(t, server.URL)
	require.NoError(t, client.Restore(context.Background()))

	_, err := client.Session.Login(context.Background(), "ada@example.com", "pw")
	require.NoError(t, err)

	// The event pump picks up the sign-in and merges the remote cart.
	require.Eventually(t, func() bool {
		items := client.Cart.Items()
		return len(items) == 1 && items[0].ProductID == 2
	}, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, 2, client.Cart.Items()[0].Quantity)

	// The remote fetch carried the fresh bearer token.
	api.mu.Lock()
	defer api.mu.Unlock()
	assert.Equal(t, "Bearer srv-token", api.lastAuth)
	// Local contributed nothing, so no write-back.
	assert.Zero(t, api.syncs)
}

func TestNewClient_LocalItemsPushedOnLogin(t *testing.T) {
	api := &fakeStorefront{}
	server := httptest.NewServer(api.handler())
	defer server.Close()

	client, _ := newTestClient(t, server.URL)
	client.Cart.AddToCart(context.Background(), testTeapot())

	_, err := client.Session.Login(context.Background(), "ada@example.com", "pw")
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		api.mu.Lock()
		defer api.mu.Unlock()
		return api.syncs == 1
	}, 2*time.Second, 10*time.Millisecond)
}

func TestClient_Restore_WithoutStoredSession(t *testing.T) {
	server := httptest.NewServer((&fakeStorefront{}).handler())
	defer server.Close()

	client, _ := newTestClient(t, server.URL)
	require.NoError(t, client.Restore(context.Background()))
	assert.False(t, client.Session.IsAuthenticated())
}

func TestClient_Run_WithoutVerifierWaitsForCancel(t *testing.T) {
	server := httptest.NewServer((&fakeStorefront{}).handler())
	defer server.Close()

	client, _ := newTestClient(t, server.URL)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- client.Run(ctx) }()
	cancel()
	require.NoError(t, <-done)
}

func testTeapot() ports.Product {
	return ports.Product{ID: 3, Name: "Kettle", Price: 1500, Stock: 4}
}
