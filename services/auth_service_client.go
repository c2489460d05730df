// services/auth_service_client.go
package services

import (
	"context"
	"errors"
	"net/http"

	"match-tracker/models"
	"match-tracker/utils"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountConflict    = errors.New("username or email already in use")
)

type SignUpInput struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthService struct {
	API *utils.APIClient
}

func NewAuthService(api *utils.APIClient) *AuthService {
	return &AuthService{API: api}
}

type signInResponse struct {
	AccessToken string      `json:"accessToken"`
	User        models.User `json:"user"`
}

// Login calls /auth/signin without the stored token, so a wrong password
// leaves an existing session alone. A 401 is reported as ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, identifier, password string) (*models.AuthResponse, error) {
	body := map[string]string{
		"identifier": identifier,
		"password":   password,
	}

	var out signInResponse
	if err := s.API.PostAnonymous(ctx, "/auth/signin", body, &out); err != nil {
		if utils.StatusCode(err) == http.StatusUnauthorized {
			return nil, errors.Join(ErrInvalidCredentials, err)
		}
		return nil, err
	}
	return &models.AuthResponse{Token: out.AccessToken, User: out.User}, nil
}

// SignUp calls /auth/signup. A 400 means the username or email is taken.
func (s *AuthService) SignUp(ctx context.Context, in SignUpInput) (*models.AuthResponse, error) {
	var out signInResponse
	if err := s.API.PostAnonymous(ctx, "/auth/signup", in, &out); err != nil {
		if utils.StatusCode(err) == http.StatusBadRequest {
			return nil, errors.Join(ErrAccountConflict, err)
		}
		return nil, err
	}
	return &models.AuthResponse{Token: out.AccessToken, User: out.User}, nil
}

func (s *AuthService) GetProfile(ctx context.Context) (*models.User, error) {
	var u models.User
	if err := s.API.Get(ctx, "/auth/profile", &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *AuthService) UpdateProfile(ctx context.Context, patch models.UserPatch) (*models.User, error) {
	var u models.User
	if err := s.API.Patch(ctx, "/auth/profile", patch, &u); err != nil {
		return nil, err
	}
	return &u, nil
}
