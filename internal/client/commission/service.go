package commission

import "context"

type AuthService interface {
	Login(ctx context.Context, creds Credentials) (*TokenPair, error)
	AdminLogin(ctx context.Context, creds Credentials) (*TokenPair, error)
}

type ProfileService interface {
	Me(ctx context.Context) (*UserProfile, error)
}

type ClientService interface {
	List(ctx context.Context, params *ListParams) (*Page[Customer], error)
	Get(ctx context.Context, id string) (*Customer, error)
}

type SaleService interface {
	List(ctx context.Context, params *ListParams) (*Page[Sale], error)
}

type WithdrawalService interface {
	List(ctx context.Context, params *ListParams) (*Page[Withdrawal], error)
	Request(ctx context.Context, amount float64) (*Withdrawal, error)
}

type StatementService interface {
	Get(ctx context.Context, params *ListParams) (*Statement, error)
}

type ConsultantService interface {
	List(ctx context.Context, params *ListParams) (*Page[Consultant], error)
	Get(ctx context.Context, id string) (*Consultant, error)
	// Clients reads a consultant's clients on the admin's behalf.
	Clients(ctx context.Context, id string, params *ListParams) (*Page[Customer], error)
}

type MetaService interface {
	List(ctx context.Context) ([]Meta, error)
	Create(ctx context.Context, meta Meta) (*Meta, error)
	Assign(ctx context.Context, consultantID string, metaID string) error
}

type DashboardService interface {
	// StartGeneration asks the backend to compute dashboard data; the results
	// arrive on the push channel, not in the response.
	StartGeneration(ctx context.Context) (*StatusMessage, error)
}
