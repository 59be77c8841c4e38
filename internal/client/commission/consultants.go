package commission

import (
	"context"
	"net/http"
	"net/url"
)

type consultantService struct {
	client *Client
}

func (s *consultantService) List(ctx context.Context, params *ListParams) (*Page[Consultant], error) {
	const route = "consultants"

	var page Page[Consultant]
	if err := s.client.do(ctx, http.MethodGet, route, params.values(), nil, &page, nil); err != nil {
		return nil, err
	}
	return &page, nil
}

func (s *consultantService) Get(ctx context.Context, id string) (*Consultant, error) {
	route := "consultants/" + url.PathEscape(id)

	var c Consultant
	if err := s.client.do(ctx, http.MethodGet, route, nil, nil, &c, s.client.privileged()); err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *consultantService) Clients(ctx context.Context, id string, params *ListParams) (*Page[Customer], error) {
	route := "consultants/" + url.PathEscape(id) + "/clients"

	var page Page[Customer]
	if err := s.client.do(ctx, http.MethodGet, route, params.values(), nil, &page, s.client.privileged()); err != nil {
		return nil, err
	}
	return &page, nil
}

type metaService struct {
	client *Client
}

func (s *metaService) List(ctx context.Context) ([]Meta, error) {
	const route = "metas"

	var metas []Meta
	if err := s.client.do(ctx, http.MethodGet, route, nil, nil, &metas, nil); err != nil {
		return nil, err
	}
	return metas, nil
}

func (s *metaService) Create(ctx context.Context, meta Meta) (*Meta, error) {
	const route = "metas"

	var created Meta
	if err := s.client.do(ctx, http.MethodPost, route, nil, meta, &created, nil); err != nil {
		return nil, err
	}
	return &created, nil
}

func (s *metaService) Assign(ctx context.Context, consultantID string, metaID string) error {
	route := "consultants/" + url.PathEscape(consultantID) + "/meta"

	body := struct {
		MetaID string `json:"metaId"`
	}{MetaID: metaID}

	return s.client.do(ctx, http.MethodPut, route, nil, body, nil, nil)
}

type dashboardService struct {
	client *Client
}

func (s *dashboardService) StartGeneration(ctx context.Context) (*StatusMessage, error) {
	const route = "dashboard/start-data-generation"

	var msg StatusMessage
	if err := s.client.do(ctx, http.MethodPost, route, nil, nil, &msg, nil); err != nil {
		return nil, err
	}
	return &msg, nil
}
