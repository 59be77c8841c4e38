package commission

import (
	"context"
	"net/http"
)

type authService struct {
	client *Client
}

func (s *authService) Login(ctx context.Context, creds Credentials) (*TokenPair, error) {
	const route = "auth/login"
	return s.login(ctx, route, creds)
}

func (s *authService) AdminLogin(ctx context.Context, creds Credentials) (*TokenPair, error) {
	const route = "auth/admin/login"
	return s.login(ctx, route, creds)
}

func (s *authService) login(ctx context.Context, route string, creds Credentials) (*TokenPair, error) {
	var pair TokenPair
	if err := s.client.do(ctx, http.MethodPost, route, nil, creds, &pair, nil); err != nil {
		return nil, err
	}
	return &pair, nil
}

type profileService struct {
	client *Client
}

func (s *profileService) Me(ctx context.Context) (*UserProfile, error) {
	const route = "auth/me"

	var profile UserProfile
	if err := s.client.do(ctx, http.MethodGet, route, nil, nil, &profile, nil); err != nil {
		return nil, err
	}
	return &profile, nil
}
