package commission

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	go_json "github.com/goccy/go-json"
)

type APIError struct {
	StatusCode int
	Message    string
	RetryAfter time.Duration // zero unless the server sent Retry-After
}

func (e *APIError) Error() string {
	return fmt.Sprintf("commission api: %d %s", e.StatusCode, e.Message)
}

func parseAPIError(resp *http.Response) error {
	apiErr := parseAPIErrorBody(resp)
	apiErr.RetryAfter = parseRetryAfter(resp.Header.Get("Retry-After"))
	return apiErr
}

func parseAPIErrorBody(resp *http.Response) *APIError {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    resp.Status,
		}
	}

	var errResp struct {
		Message string `json:"message"`
		Title   string `json:"title"`
		Error   string `json:"error"`
	}

	if err := go_json.Unmarshal(body, &errResp); err != nil {
		msg := string(body)
		if msg == "" {
			msg = resp.Status
		}
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    msg,
		}
	}

	msg := errResp.Message
	for _, fallback := range []string{errResp.Title, errResp.Error, resp.Status} {
		if msg != "" {
			break
		}
		msg = fallback
	}

	return &APIError{
		StatusCode: resp.StatusCode,
		Message:    msg,
	}
}

// parseRetryAfter handles the delay-seconds form only.
func parseRetryAfter(s string) time.Duration {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	seconds, err := strconv.ParseInt(s, 10, 64)
	if err != nil || seconds < 0 {
		return 0
	}
	return time.Duration(seconds) * time.Second
}

func AsAPIError(err error) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return nil
}

func IsUnauthorized(err error) bool {
	apiErr := AsAPIError(err)
	return apiErr != nil && apiErr.StatusCode == http.StatusUnauthorized
}
