package commission

import (
	"net/url"
	"strconv"
	"time"
)

type ListParams struct {
	Page     int
	PageSize int
	Search   string
	Status   string
	From     *time.Time
	To       *time.Time
}

func (p *ListParams) values() url.Values {
	if p == nil {
		return nil
	}

	v := make(url.Values)

	if p.Page > 0 {
		v.Set("page", strconv.Itoa(p.Page))
	}
	if p.PageSize > 0 {
		v.Set("pageSize", strconv.Itoa(p.PageSize))
	}
	if p.Search != "" {
		v.Set("search", p.Search)
	}
	if p.Status != "" {
		v.Set("status", p.Status)
	}
	if p.From != nil {
		v.Set("from", p.From.Format(time.DateOnly))
	}
	if p.To != nil {
		v.Set("to", p.To.Format(time.DateOnly))
	}

	return v
}

type Page[T any] struct {
	Items    []T `json:"items"`
	Total    int `json:"total"`
	Page     int `json:"page"`
	PageSize int `json:"pageSize"`
}

func (p *Page[T]) HasMore() bool {
	return p.PageSize > 0 && p.Page*p.PageSize < p.Total
}
