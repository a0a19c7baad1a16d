package api

// Package api contains simple hand-written test doubles for the HTTP API
// ports. These are lightweight and suitable for unit tests without codegen:
// set the func field you care about, leave the rest nil for benign defaults.

import (
	"context"
	"sync"

	domainauth "github.com/ecomsuite/storefront-client/internal/domain/auth"
	"github.com/ecomsuite/storefront-client/internal/domain/cart"
	"github.com/ecomsuite/storefront-client/internal/ports"
)

// Ensure compile-time conformance to ports.
var (
	_ ports.AuthAPI        = (*MockAuthAPI)(nil)
	_ ports.CartAPI        = (*MockCartAPI)(nil)
	_ ports.ProductCatalog = (*MockCatalog)(nil)
	_ ports.OrderAPI       = (*MockOrderAPI)(nil)
	_ ports.UserAPI        = (*MockUserAPI)(nil)
	_ ports.KVStore        = (*MemoryKVStore)(nil)
	_ ports.Navigator      = (*RecordingNavigator)(nil)
)

// MockAuthAPI simulates the authentication endpoints.
type MockAuthAPI struct {
	LoginFunc          func(ctx context.Context, creds ports.Credentials) (ports.AuthResult, error)
	RegisterFunc       func(ctx context.Context, in ports.RegisterInput) (ports.AuthResult, error)
	LogoutFunc         func(ctx context.Context) error
	CurrentUserFunc    func(ctx context.Context) (domainauth.User, error)
	VerifyTokenFunc    func(ctx context.Context) error
	ForgotPasswordFunc func(ctx context.Context, email string) error
	ResetPasswordFunc  func(ctx context.Context, in ports.ResetPasswordInput) error

	// DefaultResult is returned by Login and Register when their func fields
	// are nil.
	DefaultResult ports.AuthResult

	mu          sync.Mutex
	loginCalls  int
	logoutCalls int
}

// NewMockAuthAPI creates a MockAuthAPI with a sensible default identity.
func NewMockAuthAPI() *MockAuthAPI {
	return &MockAuthAPI{
		DefaultResult: ports.AuthResult{
			Token: "test-token",
			User: domainauth.User{
				ID:        1,
				FirstName: "Test",
				LastName:  "Shopper",
				Email:     "shopper@example.com",
				Role:      domainauth.RoleUser,
			},
		},
	}
}

func (m *MockAuthAPI) Login(ctx context.Context, creds ports.Credentials) (ports.AuthResult, error) {
	m.mu.Lock()
	m.loginCalls++
	m.mu.Unlock()
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, creds)
	}
	return m.DefaultResult, nil
}

func (m *MockAuthAPI) Register(ctx context.Context, in ports.RegisterInput) (ports.AuthResult, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, in)
	}
	return m.DefaultResult, nil
}

func (m *MockAuthAPI) Logout(ctx context.Context) error {
	m.mu.Lock()
	m.logoutCalls++
	m.mu.Unlock()
	if m.LogoutFunc != nil {
		return m.LogoutFunc(ctx)
	}
	return nil
}

func (m *MockAuthAPI) CurrentUser(ctx context.Context) (domainauth.User, error) {
	if m.CurrentUserFunc != nil {
		return m.CurrentUserFunc(ctx)
	}
	return m.DefaultResult.User, nil
}

func (m *MockAuthAPI) VerifyToken(ctx context.Context) error {
	if m.VerifyTokenFunc != nil {
		return m.VerifyTokenFunc(ctx)
	}
	return nil
}

func (m *MockAuthAPI) ForgotPassword(ctx context.Context, email string) error {
	if m.ForgotPasswordFunc != nil {
		return m.ForgotPasswordFunc(ctx, email)
	}
	return nil
}

func (m *MockAuthAPI) ResetPassword(ctx context.Context, in ports.ResetPasswordInput) error {
	if m.ResetPasswordFunc != nil {
		return m.ResetPasswordFunc(ctx, in)
	}
	return nil
}

// LoginCalls returns how many times Login was invoked.
func (m *MockAuthAPI) LoginCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loginCalls
}

// LogoutCalls returns how many times Logout was invoked.
func (m *MockAuthAPI) LogoutCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.logoutCalls
}

// MockCartAPI simulates the remote cart mirror and records writes.
type MockCartAPI struct {
	FetchFunc      func(ctx context.Context) ([]cart.RemoteItem, error)
	SyncFunc       func(ctx context.Context, entries []ports.CartEntry) error
	AddItemFunc    func(ctx context.Context, entry ports.CartEntry) error
	UpdateItemFunc func(ctx context.Context, entry ports.CartEntry) error
	RemoveItemFunc func(ctx context.Context, productID int64) error
	ClearFunc      func(ctx context.Context) error

	mu          sync.Mutex
	syncCalls   [][]ports.CartEntry
	addCalls    []ports.CartEntry
	updateCalls []ports.CartEntry
	removeCalls []int64
	clearCalls  int
}

func (m *MockCartAPI) Fetch(ctx context.Context) ([]cart.RemoteItem, error) {
	if m.FetchFunc != nil {
		return m.FetchFunc(ctx)
	}
	return nil, nil
}

func (m *MockCartAPI) Sync(ctx context.Context, entries []ports.CartEntry) error {
	m.mu.Lock()
	m.syncCalls = append(m.syncCalls, append([]ports.CartEntry(nil), entries...))
	m.mu.Unlock()
	if m.SyncFunc != nil {
		return m.SyncFunc(ctx, entries)
	}
	return nil
}

func (m *MockCartAPI) AddItem(ctx context.Context, entry ports.CartEntry) error {
	m.mu.Lock()
	m.addCalls = append(m.addCalls, entry)
	m.mu.Unlock()
	if m.AddItemFunc != nil {
		return m.AddItemFunc(ctx, entry)
	}
	return nil
}

func (m *MockCartAPI) UpdateItem(ctx context.Context, entry ports.CartEntry) error {
	m.mu.Lock()
	m.updateCalls = append(m.updateCalls, entry)
	m.mu.Unlock()
	if m.UpdateItemFunc != nil {
		return m.UpdateItemFunc(ctx, entry)
	}
	return nil
}

func (m *MockCartAPI) RemoveItem(ctx context.Context, productID int64) error {
	m.mu.Lock()
	m.removeCalls = append(m.removeCalls, productID)
	m.mu.Unlock()
	if m.RemoveItemFunc != nil {
		return m.RemoveItemFunc(ctx, productID)
	}
	return nil
}

func (m *MockCartAPI) Clear(ctx context.Context) error {
	m.mu.Lock()
	m.clearCalls++
	m.mu.Unlock()
	if m.ClearFunc != nil {
		return m.ClearFunc(ctx)
	}
	return nil
}

// SyncCalls returns the recorded bulk upserts, oldest first.
func (m *MockCartAPI) SyncCalls() [][]ports.CartEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([][]ports.CartEntry(nil), m.syncCalls...)
}

// AddCalls returns the recorded single-item adds.
func (m *MockCartAPI) AddCalls() []ports.CartEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]ports.CartEntry(nil), m.addCalls...)
}

// UpdateCalls returns the recorded single-item updates.
func (m *MockCartAPI) UpdateCalls() []ports.CartEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]ports.CartEntry(nil), m.updateCalls...)
}

// RemoveCalls returns the recorded removals.
func (m *MockCartAPI) RemoveCalls() []int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]int64(nil), m.removeCalls...)
}

// ClearCalls returns how many times Clear was invoked.
func (m *MockCartAPI) ClearCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.clearCalls
}

// MockCatalog serves product lookups from a fixed set.
type MockCatalog struct {
	Products    []ports.Product
	DetailsFunc func(ctx context.Context, ids []int64) ([]ports.Product, error)

	mu           sync.Mutex
	detailsCalls [][]int64
}

func (m *MockCatalog) Details(ctx context.Context, ids []int64) ([]ports.Product, error) {
	m.mu.Lock()
	m.detailsCalls = append(m.detailsCalls, append([]int64(nil), ids...))
	m.mu.Unlock()
	if m.DetailsFunc != nil {
		return m.DetailsFunc(ctx, ids)
	}

	byID := make(map[int64]ports.Product, len(m.Products))
	for _, p := range m.Products {
		byID[p.ID] = p
	}
	var out []ports.Product
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *MockCatalog) List(ctx context.Context) ([]ports.Product, error) {
	return append([]ports.Product(nil), m.Products...), nil
}

func (m *MockCatalog) Get(ctx context.Context, id int64) (ports.Product, error) {
	for _, p := range m.Products {
		if p.ID == id {
			return p, nil
		}
	}
	return ports.Product{}, ErrNotFound
}

func (m *MockCatalog) Search(ctx context.Context, term string) ([]ports.Product, error) {
	return append([]ports.Product(nil), m.Products...), nil
}

// DetailsCalls returns the recorded batch lookups, oldest first.
func (m *MockCatalog) DetailsCalls() [][]int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([][]int64(nil), m.detailsCalls...)
}

// ErrNotFound is returned by mocks when an entity is not present.
type notFoundError struct{}

func (notFoundError) Error() string { return "not found" }

var ErrNotFound error = notFoundError{}

// MockOrderAPI simulates the order endpoints.
type MockOrderAPI struct {
	CreateFunc func(ctx context.Context, req ports.OrderRequest) (ports.Order, error)
	ListFunc   func(ctx context.Context) ([]ports.Order, error)
	GetFunc    func(ctx context.Context, id int64) (ports.Order, error)

	mu          sync.Mutex
	createCalls []ports.OrderRequest
}

func (m *MockOrderAPI) Create(ctx context.Context, req ports.OrderRequest) (ports.Order, error) {
	m.mu.Lock()
	m.createCalls = append(m.createCalls, req)
	m.mu.Unlock()
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, req)
	}
	return ports.Order{ID: 1, Status: "pending"}, nil
}

func (m *MockOrderAPI) List(ctx context.Context) ([]ports.Order, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, nil
}

func (m *MockOrderAPI) Get(ctx context.Context, id int64) (ports.Order, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	return ports.Order{ID: id}, nil
}

// CreateCalls returns the recorded order creations.
func (m *MockOrderAPI) CreateCalls() []ports.OrderRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]ports.OrderRequest(nil), m.createCalls...)
}

// MockUserAPI simulates the profile endpoints.
type MockUserAPI struct {
	UpdateProfileFunc  func(ctx context.Context, in ports.ProfileUpdate) (domainauth.User, error)
	ChangePasswordFunc func(ctx context.Context, in ports.PasswordChange) error
}

func (m *MockUserAPI) UpdateProfile(ctx context.Context, in ports.ProfileUpdate) (domainauth.User, error) {
	if m.UpdateProfileFunc != nil {
		return m.UpdateProfileFunc(ctx, in)
	}
	return domainauth.User{}, nil
}

func (m *MockUserAPI) ChangePassword(ctx context.Context, in ports.PasswordChange) error {
	if m.ChangePasswordFunc != nil {
		return m.ChangePasswordFunc(ctx, in)
	}
	return nil
}

// MemoryKVStore is an in-memory KVStore for unit tests.
type MemoryKVStore struct {
	mu     sync.Mutex
	values map[string][]byte

	// SetErr and GetErr, when non-nil, are returned by every Set/Get call.
	SetErr error
	GetErr error
}

// NewMemoryKVStore creates a new in-memory store.
func NewMemoryKVStore() *MemoryKVStore {
	return &MemoryKVStore{values: make(map[string][]byte)}
}

func (m *MemoryKVStore) Set(_ context.Context, key string, value []byte) error {
	if m.SetErr != nil {
		return m.SetErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = append([]byte(nil), value...)
	return nil
}

func (m *MemoryKVStore) Get(_ context.Context, key string) ([]byte, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	value, ok := m.values[key]
	if !ok {
		return nil, ports.ErrKeyNotFound
	}
	return append([]byte(nil), value...), nil
}

func (m *MemoryKVStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

// Has reports whether a key currently holds a value.
func (m *MemoryKVStore) Has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.values[key]
	return ok
}

// Navigation is one recorded NavigateTo call.
type Navigation struct {
	Path     string
	ReturnTo string
}

// RecordingNavigator records navigation requests for assertions.
type RecordingNavigator struct {
	mu   sync.Mutex
	path string
	log  []Navigation
}

// SetCurrentPath sets the path CurrentPath reports.
func (n *RecordingNavigator) SetCurrentPath(path string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.path = path
}

func (n *RecordingNavigator) CurrentPath() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.path
}

func (n *RecordingNavigator) NavigateTo(path, returnTo string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.path = path
	n.log = append(n.log, Navigation{Path: path, ReturnTo: returnTo})
}

// Navigations returns the recorded navigation calls, oldest first.
func (n *RecordingNavigator) Navigations() []Navigation {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]Navigation(nil), n.log...)
}
