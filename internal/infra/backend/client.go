package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"example.com/fieldops/internal/domain/listquery"
	"example.com/fieldops/internal/domain/overview"
	"example.com/fieldops/internal/domain/paging"
	authuc "example.com/fieldops/internal/usecase/auth"
)

const maxErrorBody = 4 << 10

// Client talks to the field-service REST API.
type Client struct {
	base *url.URL
	http *http.Client
	log  *zap.Logger
}

func NewClient(baseURL string, timeout time.Duration, log *zap.Logger) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse backend url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("backend url %q must be absolute", baseURL)
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		base: u,
		http: &http.Client{Timeout: timeout},
		log:  log,
	}, nil
}

// As returns a caller that authenticates with token.
func (c *Client) As(token string) *Caller {
	return &Caller{client: c, token: token}
}

// Caller is a Client bound to one bearer token.
type Caller struct {
	client *Client
	token  string
}

func (c *Client) endpoint(path string, q url.Values) string {
	u := *c.base
	u.Path = strings.TrimRight(c.base.Path, "/") + "/" + strings.TrimLeft(path, "/")
	if len(q) > 0 {
		u.RawQuery = q.Encode()
	}
	return u.String()
}

func (c *Client) do(ctx context.Context, token, method, path string, q url.Values, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path, q), reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("backend request failed",
			zap.String("method", method), zap.String("path", path), zap.Error(err))
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	c.log.Debug("backend request",
		zap.String("method", method),
		zap.String("path", path),
		zap.String("query", req.URL.RawQuery),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(started)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && err != io.EOF {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if json.Unmarshal(raw, &payload) == nil {
		apiErr.Message = payload.Message
		if apiErr.Message == "" {
			apiErr.Message = payload.Error
		}
	}
	return apiErr
}

// List fetches one page of a collection.
func List[T any](ctx context.Context, c *Caller, path string, p listquery.Params) (*paging.Page[T], error) {
	var page paging.Page[T]
	if err := c.client.do(ctx, c.token, http.MethodGet, path, p.Values(), nil, &page); err != nil {
		return nil, err
	}
	if page.Data == nil {
		page.Data = []T{}
	}
	return &page, nil
}

// Get fetches one record. Both {"data": {...}} and a bare object are accepted.
func Get[T any](ctx context.Context, c *Caller, path string, id int64) (*T, error) {
	var env envelope
	if err := c.client.do(ctx, c.token, http.MethodGet, path+"/"+strconv.FormatInt(id, 10), nil, nil, &env); err != nil {
		return nil, err
	}
	return unwrap[T](env)
}

// Create posts in to the collection and returns the stored record.
func Create[T any](ctx context.Context, c *Caller, path string, in any) (*T, error) {
	var env envelope
	if err := c.client.do(ctx, c.token, http.MethodPost, path, nil, in, &env); err != nil {
		return nil, err
	}
	return unwrap[T](env)
}

func (c *Caller) Overview(ctx context.Context) (*overview.Stats, error) {
	var env envelope
	if err := c.client.do(ctx, c.token, http.MethodGet, "/overview", nil, nil, &env); err != nil {
		return nil, err
	}
	return unwrap[overview.Stats](env)
}

// envelope keeps the raw body so a response can be read either wrapped in
// "data" or bare.
type envelope struct {
	raw json.RawMessage
}

func (e *envelope) UnmarshalJSON(b []byte) error {
	e.raw = append(e.raw[:0], b...)
	return nil
}

func unwrap[T any](e envelope) (*T, error) {
	out := new(T)
	if len(e.raw) == 0 {
		return out, nil
	}
	var wrapped struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(e.raw, &wrapped); err == nil && len(wrapped.Data) > 0 && string(wrapped.Data) != "null" {
		return out, json.Unmarshal(wrapped.Data, out)
	}
	return out, json.Unmarshal(e.raw, out)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token       string `json:"token"`
	AccessToken string `json:"access_token"`
	User        struct {
		ID    int64  `json:"id"`
		Name  string `json:"name"`
		Email string `json:"email"`
		Role  string `json:"role"`
	} `json:"user"`
}

// Login exchanges credentials for a backend token.
func (c *Client) Login(ctx context.Context, email, password string) (*authuc.Identity, error) {
	var resp loginResponse
	err := c.do(ctx, "", http.MethodPost, "/auth/login", nil, loginRequest{Email: email, Password: password}, &resp)
	if err != nil {
		return nil, err
	}
	token := resp.Token
	if token == "" {
		token = resp.AccessToken
	}
	if token == "" {
		return nil, &APIError{Status: http.StatusBadGateway, Message: "login response without token"}
	}
	return &authuc.Identity{
		Token:  token,
		UserID: resp.User.ID,
		Name:   resp.User.Name,
		Email:  resp.User.Email,
		Role:   resp.User.Role,
	}, nil
}
