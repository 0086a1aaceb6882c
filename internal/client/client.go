// Package client talks to the tracker HTTP API.
package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"food-donation-tracker/domain"

	"github.com/gofiber/fiber/v2"
)

const defaultTimeout = 10 * time.Second

var ErrNotAuthenticated = errors.New("not logged in")

type (
	Client struct {
		baseURL string
		token   string
		timeout time.Duration
	}

	// APIError is a failure envelope returned by the server.
	APIError struct {
		StatusCode int
		Message    string
		Detail     string
		Fields     map[string]string
	}

	envelope struct {
		Status  bool              `json:"status"`
		Message string            `json:"message"`
		Data    json.RawMessage   `json:"data"`
		Error   string            `json:"error"`
		Errors  map[string]string `json:"errors"`
	}
)

func (e *APIError) Error() string {
	var b strings.Builder
	b.WriteString(e.Message)
	if e.Detail != "" && len(e.Fields) == 0 {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	fields := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	for _, f := range fields {
		fmt.Fprintf(&b, "\n  %s: %s", f, e.Fields[f])
	}
	return b.String()
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: defaultTimeout,
	}
}

// WithToken returns a copy of c that authenticates with token.
func (c *Client) WithToken(token string) *Client {
	cp := *c
	cp.token = token
	return &cp
}

func (c *Client) Register(req domain.RegisterRequest) (*domain.AuthResponse, error) {
	var resp domain.AuthResponse
	if err := c.do(fiber.MethodPost, "/api/v1/users/register", nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Login(req domain.LoginRequest) (*domain.AuthResponse, error) {
	var resp domain.AuthResponse
	if err := c.do(fiber.MethodPost, "/api/v1/users/login", nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Me() (*domain.UserResponse, error) {
	var resp domain.UserResponse
	if err := c.authed(fiber.MethodGet, "/api/v1/users/me", nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) ListDonations(req domain.ListDonationsRequest) (*domain.DonationList, error) {
	query := url.Values{}
	setString(query, "q", req.Query)
	setString(query, "status", req.Status)
	setInt(query, "page", req.Page)
	setInt(query, "limit", req.Limit)

	var resp domain.DonationList
	if err := c.authed(fiber.MethodGet, "/api/v1/donations", query, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) CreateDonation(req domain.DonationRequest) (*domain.Donation, error) {
	var resp domain.Donation
	if err := c.authed(fiber.MethodPost, "/api/v1/donations", nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) UpdateDonationStatus(id string, status string) (*domain.Donation, error) {
	var resp domain.Donation
	path := "/api/v1/donations/" + url.PathEscape(id) + "/status"
	if err := c.authed(fiber.MethodPatch, path, nil, domain.UpdateDonationStatusRequest{Status: status}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) DonationStatistics() (*domain.DonationStatistics, error) {
	var resp domain.DonationStatistics
	if err := c.authed(fiber.MethodGet, "/api/v1/donations/statistics", nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) ListFoodItems(req domain.ListFoodItemsRequest) (*domain.FoodItemList, error) {
	query := url.Values{}
	setString(query, "q", req.Query)
	setString(query, "category", req.Category)
	setInt(query, "page", req.Page)
	setInt(query, "limit", req.Limit)

	var resp domain.FoodItemList
	if err := c.authed(fiber.MethodGet, "/api/v1/food-items", query, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) AddFoodItem(req domain.AddFoodItemRequest) (*domain.FoodItemResponse, error) {
	var resp domain.FoodItemResponse
	if err := c.authed(fiber.MethodPost, "/api/v1/food-items", nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) ExpiryOverview() (*domain.ExpiryOverview, error) {
	var resp domain.ExpiryOverview
	if err := c.authed(fiber.MethodGet, "/api/v1/food-items/expiry", nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) ListOrganizations(req domain.ListOrganizationsRequest) ([]*domain.Organization, error) {
	query := url.Values{}
	setString(query, "q", req.Query)
	setString(query, "need", req.Need)
	if req.MaxDistance != nil {
		query.Set("max_distance", strconv.FormatFloat(*req.MaxDistance, 'f', -1, 64))
	}

	var resp []*domain.Organization
	if err := c.authed(fiber.MethodGet, "/api/v1/organizations", query, nil, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *Client) Dashboard() (*domain.DashboardResponse, error) {
	var resp domain.DashboardResponse
	if err := c.authed(fiber.MethodGet, "/api/v1/dashboard", nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) authed(method, path string, query url.Values, body, out any) error {
	if c.token == "" {
		return ErrNotAuthenticated
	}
	return c.do(method, path, query, body, out)
}

func (c *Client) do(method, path string, query url.Values, body, out any) error {
	uri := c.baseURL + path
	if len(query) > 0 {
		uri += "?" + query.Encode()
	}

	agent := fiber.AcquireAgent()
	defer fiber.ReleaseAgent(agent)

	req := agent.Request()
	req.Header.SetMethod(method)
	req.SetRequestURI(uri)
	agent.Timeout(c.timeout)
	agent.Set(fiber.HeaderAccept, fiber.MIMEApplicationJSON)
	if c.token != "" {
		agent.Set(fiber.HeaderAuthorization, "Bearer "+c.token)
	}
	if body != nil {
		agent.JSON(body)
	}

	if err := agent.Parse(); err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	code, raw, errs := agent.Bytes()
	if len(errs) > 0 {
		return fmt.Errorf("%s %s: %w", method, path, errors.Join(errs...))
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("%s %s: unexpected response (status %d): %w", method, path, code, err)
	}

	if code >= fiber.StatusBadRequest || !env.Status {
		return &APIError{
			StatusCode: code,
			Message:    env.Message,
			Detail:     env.Error,
			Fields:     env.Errors,
		}
	}

	if out == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("%s %s: failed to decode data: %w", method, path, err)
	}
	return nil
}

func setString(q url.Values, key, value string) {
	if value = strings.TrimSpace(value); value != "" {
		q.Set(key, value)
	}
}

func setInt(q url.Values, key string, value int) {
	if value > 0 {
		q.Set(key, strconv.Itoa(value))
	}
}
