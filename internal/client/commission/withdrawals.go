package commission

import (
	"context"
	"net/http"
)

type withdrawalService struct {
	client *Client
}

func (s *withdrawalService) List(ctx context.Context, params *ListParams) (*Page[Withdrawal], error) {
	const route = "withdrawals"

	var page Page[Withdrawal]
	if err := s.client.do(ctx, http.MethodGet, route, params.values(), nil, &page, nil); err != nil {
		return nil, err
	}
	return &page, nil
}

// Request submits a withdrawal. Limits and balance checks happen server side.
func (s *withdrawalService) Request(ctx context.Context, amount float64) (*Withdrawal, error) {
	const route = "withdrawals"

	var w Withdrawal
	if err := s.client.do(ctx, http.MethodPost, route, nil, WithdrawalRequest{Amount: amount}, &w, nil); err != nil {
		return nil, err
	}
	return &w, nil
}

type statementService struct {
	client *Client
}

func (s *statementService) Get(ctx context.Context, params *ListParams) (*Statement, error) {
	const route = "commissions/statement"

	var st Statement
	if err := s.client.do(ctx, http.MethodGet, route, params.values(), nil, &st, nil); err != nil {
		return nil, err
	}
	return &st, nil
}
