package restapi

import (
	"context"
	"fmt"
	"time"

	domainauth "github.com/ecomsuite/storefront-client/internal/domain/auth"
	"github.com/ecomsuite/storefront-client/internal/ports"
)

// AuthAPI implements ports.AuthAPI against the storefront auth endpoints.
type AuthAPI struct {
	client *Client
}

// NewAuthAPI builds the auth adapter over the shared HTTP client.
func NewAuthAPI(client *Client) *AuthAPI {
	return &AuthAPI{client: client}
}

// authResponse is the wire shape shared by login and registration.
type authResponse struct {
	Message     string           `json:"message"`
	TokenType   string           `json:"token_type"`
	AccessToken string           `json:"access_token"`
	User        *domainauth.User `json:"user"`
	ExpiresAt   int64            `json:"expires_at"`
}

func (r authResponse) toResult() (ports.AuthResult, error) {
	if r.AccessToken == "" || r.User == nil {
		return ports.AuthResult{}, fmt.Errorf("auth response missing token or user")
	}
	out := ports.AuthResult{Token: r.AccessToken, User: *r.User}
	if r.ExpiresAt > 0 {
		out.ExpiresAt = time.Unix(r.ExpiresAt, 0)
	}
	return out, nil
}

func (a *AuthAPI) Login(ctx context.Context, creds ports.Credentials) (ports.AuthResult, error) {
	body := struct {
		Email      string `json:"email"`
		Password   string `json:"password"`
		DeviceName string `json:"device_name"`
	}{creds.Email, creds.Password, creds.DeviceName}

	var resp authResponse
	if err := a.client.post(ctx, "/login", body, &resp); err != nil {
		return ports.AuthResult{}, err
	}
	return resp.toResult()
}

func (a *AuthAPI) Register(ctx context.Context, in ports.RegisterInput) (ports.AuthResult, error) {
	body := struct {
		FirstName            string `json:"first_name"`
		LastName             string `json:"last_name"`
		Email                string `json:"email"`
		Password             string `json:"password"`
		PasswordConfirmation string `json:"password_confirmation"`
		DeviceName           string `json:"device_name"`
	}{in.FirstName, in.LastName, in.Email, in.Password, in.PasswordConfirmation, in.DeviceName}

	var resp authResponse
	if err := a.client.post(ctx, "/register", body, &resp); err != nil {
		return ports.AuthResult{}, err
	}
	return resp.toResult()
}

func (a *AuthAPI) Logout(ctx context.Context) error {
	return a.client.post(ctx, "/logout", struct{}{}, nil)
}

func (a *AuthAPI) CurrentUser(ctx context.Context) (domainauth.User, error) {
	var resp struct {
		User domainauth.User `json:"user"`
	}
	if err := a.client.get(ctx, "/user", &resp); err != nil {
		return domainauth.User{}, err
	}
	return resp.User, nil
}

func (a *AuthAPI) VerifyToken(ctx context.Context) error {
	return a.client.get(ctx, "/verify-token", nil)
}

func (a *AuthAPI) ForgotPassword(ctx context.Context, email string) error {
	body := struct {
		Email string `json:"email"`
	}{email}
	return a.client.post(ctx, "/forgot-password", body, nil)
}

func (a *AuthAPI) ResetPassword(ctx context.Context, in ports.ResetPasswordInput) error {
	body := struct {
		Token                string `json:"token"`
		Email                string `json:"email"`
		Password             string `json:"password"`
		PasswordConfirmation string `json:"password_confirmation"`
	}{in.Token, in.Email, in.Password, in.PasswordConfirmation}
	return a.client.post(ctx, "/reset-password", body, nil)
}

var _ ports.AuthAPI = (*AuthAPI)(nil)
