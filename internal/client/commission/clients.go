package commission

import (
	"context"
	"net/http"
	"net/url"
)

type clientService struct {
	client *Client
}

func (s *clientService) List(ctx context.Context, params *ListParams) (*Page[Customer], error) {
	const route = "clients"

	var page Page[Customer]
	if err := s.client.do(ctx, http.MethodGet, route, params.values(), nil, &page, nil); err != nil {
		return nil, err
	}
	return &page, nil
}

func (s *clientService) Get(ctx context.Context, id string) (*Customer, error) {
	route := "clients/" + url.PathEscape(id)

	var customer Customer
	if err := s.client.do(ctx, http.MethodGet, route, nil, nil, &customer, nil); err != nil {
		return nil, err
	}
	return &customer, nil
}

type saleService struct {
	client *Client
}

func (s *saleService) List(ctx context.Context, params *ListParams) (*Page[Sale], error) {
	const route = "sales"

	var page Page[Sale]
	if err := s.client.do(ctx, http.MethodGet, route, params.values(), nil, &page, nil); err != nil {
		return nil, err
	}
	return &page, nil
}
