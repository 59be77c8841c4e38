package commission

import "time"

type Role string

const (
	RoleConsultant Role = "consultant"
	RoleAdmin      Role = "admin"
)

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenPair is what both login endpoints return.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type UserProfile struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Email  string  `json:"email"`
	Phone  string  `json:"phone,omitempty"`
	Role   Role    `json:"role"`
	MetaID *string `json:"metaId,omitempty"`
}

// Customer is a consultant's client. Named to avoid clashing with Client.
type Customer struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Document   string    `json:"document"`
	Platform   string    `json:"platform"`
	TotalSales float64   `json:"totalSales"`
	CreatedAt  time.Time `json:"createdAt"`
}

type SaleStatus string

const (
	SaleStatusPending   SaleStatus = "pending"
	SaleStatusConfirmed SaleStatus = "confirmed"
	SaleStatusCancelled SaleStatus = "cancelled"
)

type Sale struct {
	ID         string     `json:"id"`
	ClientID   string     `json:"clientId"`
	ClientName string     `json:"clientName"`
	Platform   string     `json:"platform"`
	Amount     float64    `json:"amount"`
	Commission float64    `json:"commission"`
	Status     SaleStatus `json:"status"`
	Date       time.Time  `json:"date"`
}

type WithdrawalStatus string

const (
	WithdrawalStatusPending  WithdrawalStatus = "pending"
	WithdrawalStatusApproved WithdrawalStatus = "approved"
	WithdrawalStatusRejected WithdrawalStatus = "rejected"
	WithdrawalStatusPaid     WithdrawalStatus = "paid"
)

type Withdrawal struct {
	ID          string           `json:"id"`
	Amount      float64          `json:"amount"`
	Status      WithdrawalStatus `json:"status"`
	Note        string           `json:"note,omitempty"`
	RequestedAt time.Time        `json:"requestedAt"`
	ProcessedAt *time.Time       `json:"processedAt,omitempty"`
}

type WithdrawalRequest struct {
	Amount float64 `json:"amount"`
}

type EntryKind string

const (
	EntryKindCredit EntryKind = "credit"
	EntryKindDebit  EntryKind = "debit"
)

type StatementEntry struct {
	Date        time.Time `json:"date"`
	Description string    `json:"description"`
	Kind        EntryKind `json:"kind"`
	Amount      float64   `json:"amount"`
	Balance     float64   `json:"balance"`
}

type Statement struct {
	Balance        float64          `json:"balance"`
	TotalEarned    float64          `json:"totalEarned"`
	TotalWithdrawn float64          `json:"totalWithdrawn"`
	Entries        []StatementEntry `json:"entries"`
}

type Consultant struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Active    bool      `json:"active"`
	MetaID    *string   `json:"metaId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// MetaTier pays Percentage once cumulative sales reach MinValue.
type MetaTier struct {
	MinValue   float64 `json:"minValue"`
	Percentage float64 `json:"percentage"`
}

// Meta is a named set of commission tiers assignable to a consultant.
type Meta struct {
	ID    string     `json:"id,omitempty"`
	Name  string     `json:"name"`
	Tiers []MetaTier `json:"tiers"`
}

type StatusMessage struct {
	Message string `json:"message"`
}

// Push channel payloads. Each replaces its dashboard slot wholesale.

type TierProgress struct {
	MetaName      string  `json:"metaName"`
	Percentage    float64 `json:"percentage"`
	NextThreshold float64 `json:"nextThreshold"`
	Progress      float64 `json:"progress"` // 0-1 toward NextThreshold
}

type CommissionData struct {
	TotalCommission    float64       `json:"totalCommission"`
	AvailableBalance   float64       `json:"availableBalance"`
	PendingWithdrawals float64       `json:"pendingWithdrawals"`
	MonthSales         float64       `json:"monthSales"`
	CurrentTier        *TierProgress `json:"currentTier,omitempty"`
}

type HistoricalCommission struct {
	Month  string  `json:"month"` // YYYY-MM
	Amount float64 `json:"amount"`
}

type TotalClients struct {
	Total int `json:"total"`
}

type PlatformCount struct {
	Platform string `json:"platform"`
	Count    int    `json:"count"`
}

type TopClient struct {
	ClientID   string  `json:"clientId"`
	Name       string  `json:"name"`
	TotalSales float64 `json:"totalSales"`
}

type PlatformSales struct {
	Platform   string  `json:"platform"`
	TotalSales float64 `json:"totalSales"`
	Count      int     `json:"count"`
}
