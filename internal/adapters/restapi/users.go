package restapi

import (
	"context"

	domainauth "github.com/ecomsuite/storefront-client/internal/domain/auth"
	"github.com/ecomsuite/storefront-client/internal/ports"
)

// UsersAPI implements ports.UserAPI against the profile endpoints.
type UsersAPI struct {
	client *Client
}

// NewUsersAPI builds the users adapter over the shared HTTP client.
func NewUsersAPI(client *Client) *UsersAPI {
	return &UsersAPI{client: client}
}

func (a *UsersAPI) UpdateProfile(ctx context.Context, in ports.ProfileUpdate) (domainauth.User, error) {
	var out domainauth.User
	if err := a.client.put(ctx, "/users/profile", in, &out); err != nil {
		return domainauth.User{}, err
	}
	return out, nil
}

func (a *UsersAPI) ChangePassword(ctx context.Context, in ports.PasswordChange) error {
	return a.client.post(ctx, "/users/change-password", in, nil)
}

var _ ports.UserAPI = (*UsersAPI)(nil)
