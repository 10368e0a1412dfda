package postal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

var ErrNotFound = errors.New("postal code not found")

// Client resolves Hungarian postal codes against a zippopotam.us compatible API.
type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// ValidCode reports whether code is exactly four ASCII digits.
func ValidCode(code string) bool {
	if len(code) != 4 {
		return false
	}
	for i := 0; i < len(code); i++ {
		if code[i] < '0' || code[i] > '9' {
			return false
		}
	}
	return true
}

type lookupResponse struct {
	Places []struct {
		PlaceName string `json:"place name"`
	} `json:"places"`
}

// Settlement returns the first place name for code. ErrNotFound covers both an
// upstream miss and a response without places.
func (c *Client) Settlement(ctx context.Context, code string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/hu/"+code, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("postal lookup: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", ErrNotFound
	}

	var body lookupResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("decode postal lookup: %w", err)
	}
	if len(body.Places) == 0 || strings.TrimSpace(body.Places[0].PlaceName) == "" {
		return "", ErrNotFound
	}
	return strings.TrimSpace(body.Places[0].PlaceName), nil
}
