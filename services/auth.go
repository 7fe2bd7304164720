package services

import (
	"context"

	"github.com/devlink/desktop/internal/auth"
)

const (
	loginEndpoint    = "/users/login"
	registerEndpoint = "/users/register"
)

// AuthService implements auth.Service interface
type AuthService struct {
	apiClient *ApiClient
}

// NewAuthService creates a new instance of AuthService
func NewAuthService(apiClient *ApiClient) auth.Service {
	return &AuthService{
		apiClient: apiClient,
	}
}

// Login authenticates a user with their email and password.
// Values are forwarded as given; validation is left to the server.
func (s *AuthService) Login(ctx context.Context, email, password string) (auth.Result, error) {
	payload := auth.Credentials{
		Email:    email,
		Password: password,
	}
	return s.apiClient.PostJSON(ctx, auth.OpLogin, loginEndpoint, payload)
}

// Register creates a new account.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (auth.Result, error) {
	payload := auth.Registration{
		Username: username,
		Email:    email,
		Password: password,
	}
	return s.apiClient.PostJSON(ctx, auth.OpRegister, registerEndpoint, payload)
}
