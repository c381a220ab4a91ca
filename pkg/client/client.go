// Package client is the REST client for the user-account API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/oyildirim/kimlik/pkg/domain"
)

// SignUpRequest is the payload for registering a new account.
type SignUpRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Client is the user-account API client.
type Client struct {
	baseURL    string
	decorate   RequestDecorator
	httpClient *http.Client
}

// New creates a new API client. The decorator runs on every request; pass
// nil to send requests undecorated.
func New(baseURL string, decorate RequestDecorator) *Client {
	return &Client{
		baseURL:  baseURL,
		decorate: decorate,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// SignUp registers a new account. Field-level problems come back as a
// *ValidationError.
func (c *Client) SignUp(ctx context.Context, req SignUpRequest) error {
	if err := c.post(ctx, "/api/1.0/users", req, nil); err != nil {
		return fmt.Errorf("client.SignUp: %w", err)
	}
	return nil
}

// Activate redeems an emailed activation token.
func (c *Client) Activate(ctx context.Context, token string) error {
	if err := c.post(ctx, "/api/1.0/users/token/"+url.PathEscape(token), nil, nil); err != nil {
		return fmt.Errorf("client.Activate: %w", err)
	}
	return nil
}

// ListUsers fetches one page of the user listing.
func (c *Client) ListUsers(ctx context.Context, page, size int) (*domain.UserPage, error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	params.Set("size", strconv.Itoa(size))

	var up domain.UserPage
	if err := c.get(ctx, "/api/1.0/users?"+params.Encode(), &up); err != nil {
		return nil, fmt.Errorf("client.ListUsers: %w", err)
	}
	return &up, nil
}

// GetUser fetches a single user by ID.
func (c *Client) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	var u domain.User
	if err := c.get(ctx, "/api/1.0/users/"+strconv.FormatInt(id, 10), &u); err != nil {
		return nil, fmt.Errorf("client.GetUser: %w", err)
	}
	return &u, nil
}

// LogIn authenticates with email and password. A wrong credential surfaces
// as an HTTPError with status 401 and the server's message.
func (c *Client) LogIn(ctx context.Context, email, password string) (*domain.User, error) {
	body := map[string]string{"email": email, "password": password}
	var u domain.User
	if err := c.post(ctx, "/api/1.0/auth", body, &u); err != nil {
		return nil, fmt.Errorf("client.LogIn: %w", err)
	}
	return &u, nil
}

// UpdateUser changes a user's username. Requires an authorized session.
func (c *Client) UpdateUser(ctx context.Context, id int64, username string) (*domain.User, error) {
	body := map[string]string{"username": username}
	var u domain.User
	if err := c.doRequest(ctx, http.MethodPut, "/api/1.0/users/"+strconv.FormatInt(id, 10), body, &u); err != nil {
		return nil, fmt.Errorf("client.UpdateUser: %w", err)
	}
	return &u, nil
}

// DeleteUser removes an account. Requires an authorized session.
func (c *Client) DeleteUser(ctx context.Context, id int64) error {
	if err := c.doRequest(ctx, http.MethodDelete, "/api/1.0/users/"+strconv.FormatInt(id, 10), nil, nil); err != nil {
		return fmt.Errorf("client.DeleteUser: %w", err)
	}
	return nil
}

// LogOut tells the server to end the session. Callers treat this as
// best-effort; local state clears regardless.
func (c *Client) LogOut(ctx context.Context) error {
	if err := c.post(ctx, "/api/1.0/logout", nil, nil); err != nil {
		return fmt.Errorf("client.LogOut: %w", err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.doRequest(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body any, out any) error {
	return c.doRequest(ctx, http.MethodPost, path, body, out)
}

func (c *Client) doRequest(ctx context.Context, method, path string, body any, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.decorate != nil {
		c.decorate(req)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close

	if resp.StatusCode >= 400 {
		respBody, readErr := io.ReadAll(io.LimitReader(resp.Body, 1<<20)) // 1 MB max error body
		if readErr != nil {
			return &HTTPError{StatusCode: resp.StatusCode, Message: fmt.Sprintf("failed to read body: %v", readErr)}
		}
		var apiErr struct {
			Message          string            `json:"message"`
			ValidationErrors map[string]string `json:"validationErrors"`
		}
		if json.Unmarshal(respBody, &apiErr) == nil {
			if resp.StatusCode == http.StatusBadRequest && len(apiErr.ValidationErrors) > 0 {
				return &ValidationError{Errors: apiErr.ValidationErrors}
			}
			if apiErr.Message != "" {
				return &HTTPError{StatusCode: resp.StatusCode, Message: apiErr.Message}
			}
		}
		return &HTTPError{StatusCode: resp.StatusCode, Message: string(respBody)}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
