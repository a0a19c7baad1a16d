package ports

// Package ports defines interfaces (hexagonal ports) for the storefront
// client. Implementations live in internal/adapters; orchestration in
// internal/service.

import (
	"context"
	"time"

	domainauth "github.com/ecomsuite/storefront-client/internal/domain/auth"
	"github.com/ecomsuite/storefront-client/internal/domain/cart"
	"github.com/ecomsuite/storefront-client/internal/domain/money"
)

// Credentials carries a login request.
type Credentials struct {
	Email      string
	Password   string
	DeviceName string
}

// RegisterInput carries an account registration request.
type RegisterInput struct {
	FirstName            string
	LastName             string
	Email                string
	Password             string
	PasswordConfirmation string
	DeviceName           string
}

// ResetPasswordInput carries a password reset completion request.
type ResetPasswordInput struct {
	Token                string
	Email                string
	Password             string
	PasswordConfirmation string
}

// AuthResult is the outcome of a successful login or registration.
type AuthResult struct {
	Token     string
	User      domainauth.User
	ExpiresAt time.Time
}

// AuthAPI talks to the authentication endpoints. Login, Register, and the
// password flows are anonymous; the rest require the bearer credential.
type AuthAPI interface {
	Login(ctx context.Context, creds Credentials) (AuthResult, error)
	Register(ctx context.Context, in RegisterInput) (AuthResult, error)
	Logout(ctx context.Context) error
	CurrentUser(ctx context.Context) (domainauth.User, error)
	VerifyToken(ctx context.Context) error
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, in ResetPasswordInput) error
}

// CartEntry is the wire form of one cart line for writes to the remote mirror.
type CartEntry struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

// CartAPI talks to the remote cart mirror.
type CartAPI interface {
	// Fetch returns the server-held cart items. A missing cart surfaces as a
	// not_found error.
	Fetch(ctx context.Context) ([]cart.RemoteItem, error)
	// Sync overwrites the server-held cart wholesale with the given entries.
	Sync(ctx context.Context, entries []CartEntry) error
	AddItem(ctx context.Context, entry CartEntry) error
	UpdateItem(ctx context.Context, entry CartEntry) error
	RemoveItem(ctx context.Context, productID int64) error
	Clear(ctx context.Context) error
}

// Product is a catalog record as returned by the product endpoints.
type Product struct {
	ID          int64
	Name        string
	Description string
	Price       money.Cents
	Stock       int
	Images      []string
}

// FirstImage returns the product's primary image reference, or "".
func (p Product) FirstImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

// ProductCatalog resolves product details from the storefront catalog.
type ProductCatalog interface {
	// Details performs a batch lookup. Unknown ids are simply absent from the
	// result; only transport failures produce an error.
	Details(ctx context.Context, ids []int64) ([]Product, error)
	List(ctx context.Context) ([]Product, error)
	Get(ctx context.Context, id int64) (Product, error)
	Search(ctx context.Context, term string) ([]Product, error)
}

// OrderRequest is the payload for creating an order at checkout.
type OrderRequest struct {
	Items           []CartEntry `json:"items"`
	ShippingStreet  string      `json:"street,omitempty"`
	ShippingCity    string      `json:"city,omitempty"`
	ShippingState   string      `json:"state,omitempty"`
	ShippingPostal  string      `json:"postal_code,omitempty"`
	ShippingCountry string      `json:"country_code,omitempty"`
}

// Order is an order record from the order history endpoints.
type Order struct {
	ID        int64       `json:"id"`
	Status    string      `json:"status"`
	Total     money.Cents `json:"total"`
	CreatedAt time.Time   `json:"created_at"`
	Items     []cart.Item `json:"items,omitempty"`
}

// OrderAPI creates orders and reads order history.
type OrderAPI interface {
	Create(ctx context.Context, req OrderRequest) (Order, error)
	List(ctx context.Context) ([]Order, error)
	Get(ctx context.Context, id int64) (Order, error)
}

// PaymentSession is a provider-hosted checkout session.
type PaymentSession struct {
	SessionID   string
	CheckoutURL string
}

// PaymentConfirmation is the provider's answer to a confirmation query.
type PaymentConfirmation struct {
	SessionID string
	Paid      bool
	OrderID   int64
}

// PaymentAPI drives the payment provider integration.
type PaymentAPI interface {
	CreateCheckoutSession(ctx context.Context, req OrderRequest) (PaymentSession, error)
	ConfirmPayment(ctx context.Context, sessionID string) (PaymentConfirmation, error)
}

// ProfileUpdate carries a profile edit; zero-valued fields are left unchanged
// server-side.
type ProfileUpdate struct {
	FirstName        string `json:"first_name,omitempty"`
	LastName         string `json:"last_name,omitempty"`
	Email            string `json:"email,omitempty"`
	PhoneCountryCode string `json:"phone_country_code,omitempty"`
	PhoneNumber      string `json:"phone_number,omitempty"`
	Street           string `json:"street,omitempty"`
	City             string `json:"city,omitempty"`
	State            string `json:"state,omitempty"`
	PostalCode       string `json:"postal_code,omitempty"`
	CountryCode      string `json:"country_code,omitempty"`
}

// PasswordChange carries a password change request for the logged-in user.
type PasswordChange struct {
	CurrentPassword      string `json:"current_password"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
}

// UserAPI manages the authenticated user's profile.
type UserAPI interface {
	UpdateProfile(ctx context.Context, in ProfileUpdate) (domainauth.User, error)
	ChangePassword(ctx context.Context, in PasswordChange) error
}
