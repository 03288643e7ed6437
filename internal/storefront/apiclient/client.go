// Package apiclient is the storefront's HTTP client for the metromobiles API.
// Read failures are reported so callers can degrade to cached state; write
// failures never leave partial local state behind.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"metromobiles/internal/domain/catalog"
	"metromobiles/internal/pkg/errs"
)

var (
	// ErrUnavailable covers network errors and non-success statuses on reads.
	ErrUnavailable  = errors.New("api unavailable")
	ErrUnauthorized = errors.New("unauthorized")
)

// RejectedError carries the server's user-facing message for a rejected request.
type RejectedError struct {
	Status  int
	Message string
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("request rejected (%d): %s", e.Status, e.Message)
}

type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
	}
}

func (c *Client) FetchProducts(ctx context.Context) ([]catalog.Product, error) {
	var products []catalog.Product
	if err := c.doJSON(ctx, http.MethodGet, "/products", "", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *Client) FetchProduct(ctx context.Context, id catalog.ID) (*catalog.Product, error) {
	var product catalog.Product
	if err := c.doJSON(ctx, http.MethodGet, "/products/"+id.String(), "", nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

type Profile struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Picture string `json:"picture,omitempty"`
	Role    string `json:"role"`
}

type AuthResult struct {
	Token string  `json:"token"`
	User  Profile `json:"user"`
}

func (c *Client) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	body := map[string]string{"email": email, "password": password}
	var result AuthResult
	if err := c.doJSON(ctx, http.MethodPost, "/auth/login", "", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) Register(ctx context.Context, name, email, password string) (*AuthResult, error) {
	body := map[string]string{"name": name, "email": email, "password": password}
	var result AuthResult
	if err := c.doJSON(ctx, http.MethodPost, "/auth/register", "", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

type GoogleSignInRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Picture  string `json:"picture,omitempty"`
	GoogleID string `json:"google_id"`
}

func (c *Client) GoogleSignIn(ctx context.Context, req GoogleSignInRequest) (*AuthResult, error) {
	var result AuthResult
	if err := c.doJSON(ctx, http.MethodPost, "/auth/google", "", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) FetchProfile(ctx context.Context, token string) (*Profile, error) {
	var profile Profile
	if err := c.doJSON(ctx, http.MethodGet, "/auth/profile", token, nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

type OrderLine struct {
	ProductID  catalog.ID `json:"id"`
	Name       string     `json:"name"`
	Brand      string     `json:"brand"`
	PriceCents int64      `json:"price_cents"`
	Image      string     `json:"image"`
	Quantity   int        `json:"quantity"`
}

type PlaceOrderRequest struct {
	Items        []OrderLine     `json:"items"`
	DeliveryTier string          `json:"delivery_tier"`
	Address      json.RawMessage `json:"address"`
}

type OrderView struct {
	ID            string      `json:"id"`
	Items         []OrderLine `json:"items"`
	DeliveryTier  string      `json:"delivery_tier"`
	SubtotalCents int64       `json:"subtotal_cents"`
	TaxCents      int64       `json:"tax_cents"`
	DeliveryCents int64       `json:"delivery_cents"`
	TotalCents    int64       `json:"total_cents"`
	Status        string      `json:"status"`
	CreatedAt     string      `json:"created_at"`
}

func (c *Client) PlaceOrder(ctx context.Context, token string, req PlaceOrderRequest) (*OrderView, error) {
	var view OrderView
	if err := c.doJSON(ctx, http.MethodPost, "/orders", token, req, &view); err != nil {
		return nil, err
	}
	return &view, nil
}

func (c *Client) FetchOrders(ctx context.Context, token string) ([]OrderView, error) {
	var views []OrderView
	if err := c.doJSON(ctx, http.MethodGet, "/orders", token, nil, &views); err != nil {
		return nil, err
	}
	return views, nil
}

type errorEnvelope struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (c *Client) doJSON(ctx context.Context, method, path, token string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return errs.Wrap(err, "failed to encode request body")
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return errs.Wrap(err, "failed to build request")
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return errs.Mark(err, ErrUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		return errs.Mark(errs.New(resp.Status), ErrUnavailable)
	}
	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return errs.Mark(rejection(resp), ErrUnauthorized)
	}
	if resp.StatusCode >= 400 {
		return rejection(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errs.Mark(errs.Wrap(err, "failed to decode response"), ErrUnavailable)
	}
	return nil
}

func rejection(resp *http.Response) error {
	var envelope errorEnvelope
	msg := resp.Status
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err == nil && envelope.Error.Message != "" {
		msg = envelope.Error.Message
	}
	return &RejectedError{Status: resp.StatusCode, Message: msg}
}
