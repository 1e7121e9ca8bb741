package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"skill-community/internal/domain/filter"
	"skill-community/internal/domain/user"
	"skill-community/internal/pkg/logger"
)

const (
	maxBodyBytes  = 8 << 20
	maxErrorBytes = 4096
)

// Client is the community subset of the backend REST API. Every call is
// authenticated with the session's bearer token.
type Client interface {
	GetUser(ctx context.Context, token string, id user.ID) (user.User, error)
	ListUsers(ctx context.Context, token string) ([]user.User, error)
	FilterUsers(ctx context.Context, token string, f filter.State) ([]user.User, error)
	ListPending(ctx context.Context, token string, id user.ID) ([]user.User, error)
	ListConnections(ctx context.Context, token string, id user.ID) ([]user.User, error)
	Connect(ctx context.Context, token string, sender, receiver user.ID) (ConnectResult, error)
}

type ConnectResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type httpClient struct {
	baseURL string
	client  *http.Client
	logger  logger.Logger
}

type connectRequest struct {
	SenderID   user.ID `json:"senderId"`
	ReceiverID user.ID `json:"receiverId"`
}

func NewClient(baseURL string, timeout time.Duration, log logger.Logger) Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &httpClient{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		client:  &http.Client{Timeout: timeout},
		logger:  log,
	}
}

func (c *httpClient) GetUser(ctx context.Context, token string, id user.ID) (user.User, error) {
	body, err := c.do(ctx, http.MethodGet, "/api/auth/user/"+url.PathEscape(id.String()), token, nil)
	if err != nil {
		return user.User{}, err
	}

	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return user.User{}, ErrUnexpectedResponse
	}
	var u user.User
	if err := json.Unmarshal(trimmed, &u); err != nil {
		return user.User{}, fmt.Errorf("%w: %v", ErrUnexpectedResponse, err)
	}
	if u.ID.IsZero() {
		return user.User{}, ErrUnexpectedResponse
	}
	return u, nil
}

func (c *httpClient) ListUsers(ctx context.Context, token string) ([]user.User, error) {
	return c.list(ctx, "/api/auth/users", token)
}

func (c *httpClient) FilterUsers(ctx context.Context, token string, f filter.State) ([]user.User, error) {
	path := "/api/auth/filter"
	if q := f.QueryParams().Encode(); q != "" {
		path += "?" + q
	}
	return c.list(ctx, path, token)
}

func (c *httpClient) ListPending(ctx context.Context, token string, id user.ID) ([]user.User, error) {
	return c.list(ctx, "/api/auth/pending/"+url.PathEscape(id.String()), token)
}

func (c *httpClient) ListConnections(ctx context.Context, token string, id user.ID) ([]user.User, error) {
	return c.list(ctx, "/api/auth/connections/"+url.PathEscape(id.String()), token)
}

func (c *httpClient) Connect(ctx context.Context, token string, sender, receiver user.ID) (ConnectResult, error) {
	payload, err := json.Marshal(connectRequest{SenderID: sender, ReceiverID: receiver})
	if err != nil {
		return ConnectResult{}, err
	}

	body, err := c.do(ctx, http.MethodPost, "/api/auth/connect", token, payload)
	if err != nil {
		return ConnectResult{}, err
	}

	var out ConnectResult
	if err := json.Unmarshal(body, &out); err != nil {
		return ConnectResult{}, fmt.Errorf("%w: %v", ErrUnexpectedResponse, err)
	}
	return out, nil
}

// list decodes a JSON array of users; any other payload is ErrUnexpectedResponse.
func (c *httpClient) list(ctx context.Context, path, token string) ([]user.User, error) {
	body, err := c.do(ctx, http.MethodGet, path, token, nil)
	if err != nil {
		return nil, err
	}

	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		c.logger.Warn("Backend", "non-array list payload", map[string]any{"path": path})
		return nil, ErrUnexpectedResponse
	}

	var users []user.User
	if err := json.Unmarshal(trimmed, &users); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnexpectedResponse, err)
	}
	if users == nil {
		users = []user.User{}
	}
	return users, nil
}

func (c *httpClient) do(ctx context.Context, method, path, token string, payload []byte) ([]byte, error) {
	if c == nil || c.client == nil {
		return nil, errors.New("nil backend client")
	}
	endpoint := c.baseURL + path

	var rdr io.Reader
	if payload != nil {
		rdr = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, rdr)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Warn("Backend", "request failed", map[string]any{
			"method": method, "path": path, "error": err.Error(),
		})
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		rb, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBytes))
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: messageFromBody(rb)}
		c.logger.Warn("Backend", "non-2xx response", map[string]any{
			"method": method, "path": path, "status": resp.StatusCode, "message": apiErr.Message,
		})
		return nil, apiErr
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, err
	}
	c.logger.Debug("Backend", "request ok", map[string]any{
		"method": method, "path": path, "status": resp.StatusCode, "latency": time.Since(start).String(),
	})
	return body, nil
}

var _ Client = (*httpClient)(nil)
