// Package apiclient is the typed client for the user API. Failures come back
// as values a caller can branch on: ErrNotFound for 404, *APIError carrying
// the server's status and error body for everything else.
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
	"time"

	"user-console/internal/user"
)

var ErrNotFound = errors.New("user not found")

// APIError is a non-2xx response decoded into a value.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d %s", e.Status, e.Message)
}

type Client struct {
	base string
	hc   *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		base: strings.TrimRight(baseURL, "/"),
		hc:   &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *Client) List(ctx context.Context) ([]user.User, error) {
	var out []user.User
	if err := c.do(ctx, http.MethodGet, "/user", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Get(ctx context.Context, id int64) (*user.User, error) {
	var out user.User
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/user/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Create(ctx context.Context, username, email, token string) (*user.User, error) {
	in := map[string]string{"username": username, "email": email, "token": token}
	var out user.User
	if err := c.do(ctx, http.MethodPost, "/user", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateToken sends only the token; username/email stay untouched server-side.
func (c *Client) UpdateToken(ctx context.Context, id int64, token string) (*user.User, error) {
	in := map[string]string{"token": token}
	var out user.User
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/user/%d", id), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Delete(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/user/%d", id), nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.hc.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode >= 200 && res.StatusCode < 300 {
		if out == nil {
			return nil
		}
		return json.NewDecoder(res.Body).Decode(out)
	}
	if res.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}

	var eb struct {
		Error string `json:"error"`
	}
	_ = json.NewDecoder(res.Body).Decode(&eb)
	if eb.Error == "" {
		eb.Error = http.StatusText(res.StatusCode)
	}
	return &APIError{Status: res.StatusCode, Message: eb.Error}
}
